package doctor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeInventory(t *testing.T, xdg, content string, perm os.FileMode) string {
	t.Helper()
	dir := filepath.Join(xdg, "sshpad")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "hosts.csv")
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
	return path
}

func hasCheck(issues []Issue, check string) bool {
	for _, i := range issues {
		if i.Check == check {
			return true
		}
	}
	return false
}

func TestRunFlagsBadPortAndMissingAddress(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeInventory(t, xdg,
		"Name,Address,User,Password,Description,Port\n"+
			"db1,10.0.0.5,admin,s,ok,notaport\n"+
			"ghost,,root,s,no address,22\n",
		0o600)

	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	if !hasCheck(report.Issues, "record-port") {
		t.Fatalf("expected record-port issue, got %+v", report.Issues)
	}
	if !hasCheck(report.Issues, "record-address") {
		t.Fatalf("expected record-address issue, got %+v", report.Issues)
	}
}

func TestRunFlagsBroadInventoryPermissions(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeInventory(t, xdg, "db1,10.0.0.5,admin,s,ok,22\n", 0o644)

	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	if !hasCheck(report.Issues, "file-permissions") {
		t.Fatalf("expected file-permissions issue, got %+v", report.Issues)
	}
}

func TestRunFirstRunInventoryIsLowSeverity(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range report.Issues {
		if i.Check == "inventory-empty" {
			if i.Severity != SeverityLow {
				t.Fatalf("first-run inventory should be low severity, got %s", i.Severity)
			}
			return
		}
	}
	t.Fatalf("expected inventory-empty issue, got %+v", report.Issues)
}

func TestRunJSONShapeDeterministic(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeInventory(t, xdg, "db1,10.0.0.5,admin,s,ok,22\n", 0o600)

	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["issues"]; !ok {
		t.Fatalf("expected issues key in json output: %s", string(b))
	}
}
