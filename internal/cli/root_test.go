package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sshpad/internal/journal"
	"sshpad/internal/model"
)

// setupInventoryForCLI isolates config state and seeds a small inventory.
func setupInventoryForCLI(t *testing.T, rows ...string) {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "sshpad")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	content := "Name,Address,User,Password,Description,Port\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "hosts.csv"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestListTextOutput(t *testing.T) {
	setupInventoryForCLI(t,
		"db1,10.0.0.5,admin,secret123,Primary DB,5432",
		"web,web.example.com,deploy,,Frontend,",
	)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--list"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "db1") || !strings.Contains(out, "10.0.0.5") {
		t.Fatalf("missing db1 row: %s", out)
	}
	// Blank port renders with the resolved default.
	webLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "web") {
			webLine = line
		}
	}
	if !strings.Contains(webLine, "22") {
		t.Fatalf("expected default port on web row: %s", webLine)
	}
	// Credentials must never appear in list output.
	if strings.Contains(out, "secret123") {
		t.Fatalf("credential leaked into list output: %s", out)
	}
}

func TestListJSONOutput(t *testing.T) {
	setupInventoryForCLI(t, "db1,10.0.0.5,admin,secret123,Primary DB,5432")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--list", "--json"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rows []map[string]string
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("json parse: %v; output=%s", err, out)
	}
	if len(rows) != 1 || rows[0]["name"] != "db1" || rows[0]["port"] != "5432" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if _, ok := rows[0]["credential"]; ok {
		t.Fatal("credential leaked into json output")
	}
}

func TestListFirstRunBootstraps(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--list"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("first run must exit cleanly, got: %v", err)
	}
	if !strings.Contains(out, "created inventory template") {
		t.Fatalf("expected bootstrap hint, got: %s", out)
	}
}

func TestActionFlagsMutuallyExclusive(t *testing.T) {
	setupInventoryForCLI(t, "db1,10.0.0.5,admin,s,ok,22")

	cmd := NewRootCommand()
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--list", "--describe"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for combined action flags")
	}
}

func TestUnknownFlagFails(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--frobnicate"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestNoFlagsShowsHelp(t *testing.T) {
	setupInventoryForCLI(t)
	cmd := NewRootCommand()
	var buf strings.Builder
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("bare invocation must not fail: %v", err)
	}
	if !strings.Contains(buf.String(), "--connect") {
		t.Fatalf("expected usage output, got: %s", buf.String())
	}
}

func TestHistoryOutput(t *testing.T) {
	setupInventoryForCLI(t, "db1,10.0.0.5,admin,s,ok,22")
	if err := (journal.NewStore()).Append(journal.Event{
		Timestamp: time.Now().UTC(),
		Record:    "db1",
		EventType: journal.EventConnect,
		Detail:    "direct",
	}); err != nil {
		t.Fatalf("append event: %v", err)
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--history"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "db1") || !strings.Contains(out, "connect") {
		t.Fatalf("expected connect event in history, got: %s", out)
	}
}

func TestDoctorJSONOutput(t *testing.T) {
	setupInventoryForCLI(t, "db1,10.0.0.5,admin,s,ok,22")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--doctor", "--json"})
	out, err := captureStdout(func() error { return cmd.Execute() })
	if err != nil {
		t.Fatalf("doctor json: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid doctor json: %v", err)
	}
	if _, ok := payload["issues"]; !ok {
		t.Fatalf("expected issues key in doctor output: %s", out)
	}
}

// cancellingPicker simulates the operator pressing Esc.
type cancellingPicker struct{}

func (cancellingPicker) Pick(string, []string) (string, bool) { return "", false }

// scriptedPicker always answers with a fixed choice.
type scriptedPicker struct{ choice string }

func (s scriptedPicker) Pick(string, []string) (string, bool) { return s.choice, true }

func TestSelectRecordCancelledIsNone(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	records := map[string]model.Record{"db1": {Name: "db1"}}
	if _, ok := selectRecord(cancellingPicker{}, records); ok {
		t.Fatal("cancelled pick must be none")
	}
}

func TestSelectRecordEmptyInventoryIsNone(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, ok := selectRecord(scriptedPicker{choice: "db1"}, map[string]model.Record{}); ok {
		t.Fatal("empty inventory must select nothing")
	}
}

func TestSelectRecordReturnsChosen(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	records := map[string]model.Record{
		"db1": {Name: "db1", Address: "10.0.0.5"},
		"web": {Name: "web"},
	}
	rec, ok := selectRecord(scriptedPicker{choice: "db1"}, records)
	if !ok || rec.Address != "10.0.0.5" {
		t.Fatalf("unexpected selection: ok=%v rec=%+v", ok, rec)
	}
}

func TestDescribeLinesOmitEmptyFields(t *testing.T) {
	rec := model.Record{Name: "db1", Description: "Primary DB", Address: "10.0.0.5"}
	lines := describeLines(rec)
	if len(lines) != 3 {
		t.Fatalf("unexpected lines: %v", lines)
	}

	rec = model.Record{Name: "bare"}
	lines = describeLines(rec)
	if len(lines) != 1 || lines[0] != "Name: bare" {
		t.Fatalf("empty fields must be omitted: %v", lines)
	}
}

func TestClipboardExpireCommandHidden(t *testing.T) {
	root := NewRootCommand()
	for _, c := range root.Commands() {
		if c.Name() == "clipboard-expire" {
			if !c.Hidden {
				t.Fatal("clipboard-expire must be hidden")
			}
			return
		}
	}
	t.Fatal("clipboard-expire command not registered")
}

func captureStdout(fn func() error) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w
	runErr := fn()
	_ = w.Close()
	os.Stdout = orig
	b, readErr := io.ReadAll(r)
	if readErr != nil {
		return "", readErr
	}
	return string(b), runErr
}
