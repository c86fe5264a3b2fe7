package model

import "testing"

func TestFieldProjection(t *testing.T) {
	r := Record{
		Name:        "db1",
		Address:     "10.0.0.5",
		User:        "admin",
		Credential:  "secret123",
		Description: "Primary DB",
		Port:        "5432",
	}

	cases := []struct {
		field string
		want  string
	}{
		{FieldAddress, "10.0.0.5"},
		{FieldUser, "admin"},
		{FieldCredential, "secret123"},
		{FieldDescription, "Primary DB"},
		{FieldPort, "5432"},
		{"nonsense", ""},
	}
	for _, c := range cases {
		if got := r.Field(c.field); got != c.want {
			t.Errorf("Field(%q) = %q, want %q", c.field, got, c.want)
		}
	}
}

func TestPortDefaultsAtAccess(t *testing.T) {
	r := Record{Name: "web", Address: "web.example.com"}
	if got := r.Field(FieldPort); got != DefaultPort {
		t.Fatalf("blank port resolved to %q, want %q", got, DefaultPort)
	}
	// The stored value stays blank; only the accessor applies the default.
	if r.Port != "" {
		t.Fatalf("stored port mutated to %q", r.Port)
	}

	r.Port = "  "
	if got := r.EffectivePort(); got != DefaultPort {
		t.Fatalf("whitespace port resolved to %q, want %q", got, DefaultPort)
	}
}

func TestTarget(t *testing.T) {
	r := Record{Address: "10.0.0.5", User: "admin"}
	if got := r.Target(); got != "admin@10.0.0.5" {
		t.Fatalf("Target() = %q", got)
	}
	r.User = ""
	if got := r.Target(); got != "10.0.0.5" {
		t.Fatalf("Target() without user = %q", got)
	}
}
