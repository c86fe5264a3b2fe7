package typist

import (
	"reflect"
	"testing"
)

func TestTypeArgs(t *testing.T) {
	ty := New("xdotool")
	got := ty.TypeArgs("secret123")
	want := []string{"type", "--delay", "25", "--", "secret123"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TypeArgs = %v, want %v", got, want)
	}
}

func TestTypeArgsLeadingDash(t *testing.T) {
	// The "--" separator must protect text that looks like a flag.
	ty := New("xdotool")
	got := ty.TypeArgs("--delay")
	if got[len(got)-2] != "--" || got[len(got)-1] != "--delay" {
		t.Fatalf("flag-like text not protected: %v", got)
	}
}

func TestPressArgs(t *testing.T) {
	ty := New("xdotool")
	got := ty.PressArgs(EnterKey)
	want := []string{"key", "Return"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PressArgs = %v, want %v", got, want)
	}
}
