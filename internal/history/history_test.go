package history

import (
	"testing"
	"time"
)

func TestTouchAndLastUsed(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := Touch("db1"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	got, err := LastUsed()
	if err != nil {
		t.Fatalf("last used: %v", err)
	}
	if got["db1"] <= 0 {
		t.Fatalf("expected timestamp for db1, got %+v", got)
	}
}

func TestSortNamesRecent(t *testing.T) {
	now := time.Now().Unix()
	sorted := SortNamesRecent([]string{"db", "api", "cache"}, map[string]int64{
		"api": now,
		"db":  now - 60,
	})
	if sorted[0] != "api" {
		t.Fatalf("expected api first, got %s", sorted[0])
	}
	// Untouched names keep lexical order at the tail.
	if sorted[2] != "cache" {
		t.Fatalf("expected cache last, got %v", sorted)
	}
}
