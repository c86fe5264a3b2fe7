// Package cli provides the command-line interface for sshpad.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sshpad/internal/appconfig"
	"sshpad/internal/automation"
	"sshpad/internal/clipboard"
	"sshpad/internal/doctor"
	"sshpad/internal/history"
	"sshpad/internal/inventory"
	"sshpad/internal/journal"
	"sshpad/internal/model"
	"sshpad/internal/picker"
	"sshpad/internal/session"
	"sshpad/internal/typist"
	"sshpad/internal/util"
)

// NewRootCommand creates the root cobra command. The action flags are
// mutually exclusive; running without any prints usage.
func NewRootCommand() *cobra.Command {
	var (
		flagConnect     bool
		flagProxy       bool
		flagDescribe    bool
		flagCopy        bool
		flagConvenience bool
		flagList        bool
		flagHistory     bool
		flagDoctor      bool
		flagJSON        bool
	)

	root := &cobra.Command{
		Use:   "sshpad",
		Short: "Pick a host from the inventory, connect, and automate the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			switch {
			case flagConnect:
				return runConnect(false)
			case flagProxy:
				return runConnect(true)
			case flagDescribe:
				return runDescribe()
			case flagCopy:
				return runCopyPassword()
			case flagConvenience:
				return runConvenience()
			case flagList:
				return runList(flagJSON)
			case flagHistory:
				return runHistory(flagJSON)
			case flagDoctor:
				return runDoctor(flagJSON)
			}
			return cmd.Help()
		},
	}

	root.Flags().BoolVarP(&flagConnect, "connect", "c", false, "pick a host and open an SSH session")
	root.Flags().BoolVarP(&flagProxy, "proxy-connect", "x", false, "like --connect, routed through the proxy command")
	root.Flags().BoolVarP(&flagDescribe, "describe", "d", false, "pick a host and print its details; copies the address")
	root.Flags().BoolVarP(&flagCopy, "copy-password", "P", false, "pick a host and copy its password (auto-clears)")
	root.Flags().BoolVarP(&flagConvenience, "convenience", "r", false, "pick a host and run one automation action")
	root.Flags().BoolVarP(&flagList, "list", "l", false, "list inventory records")
	root.Flags().BoolVar(&flagHistory, "history", false, "show recent launcher activity")
	root.Flags().BoolVar(&flagDoctor, "doctor", false, "diagnose external tools and inventory health")
	root.Flags().BoolVar(&flagJSON, "json", false, "JSON output for --list, --history, --doctor")
	root.MarkFlagsMutuallyExclusive(
		"connect", "proxy-connect", "describe", "copy-password",
		"convenience", "list", "history", "doctor",
	)

	root.AddCommand(newClipboardExpireCmd())
	return root
}

// newClipboardExpireCmd is the hidden helper command spawned detached by the
// clipboard guard. It sleeps out the TTL and blanks the clipboard, outliving
// whichever flow copied the credential.
func newClipboardExpireCmd() *cobra.Command {
	var after time.Duration
	cmd := &cobra.Command{
		Use:    clipboard.ExpireCommand,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clipboard.ExpireAfter(after)
		},
	}
	cmd.Flags().DurationVar(&after, "after", util.ClipboardTTL, "delay before clearing the clipboard")
	return cmd
}

// loadRecords loads config and inventory. ok=false means the pipeline should
// stop without an error: either the first-run template was just created (a
// hint is printed) or the inventory has no rows yet.
func loadRecords(cfg appconfig.Config) (map[string]model.Record, bool, error) {
	path, err := cfg.InventoryPath()
	if err != nil {
		return nil, false, err
	}
	records, err := inventory.Load(path)
	if err != nil {
		if errors.Is(err, inventory.ErrFirstRun) {
			fmt.Printf("created inventory template at %s — add hosts to it\n", path)
			return nil, false, nil
		}
		return nil, false, err
	}
	return records, true, nil
}

// selectRecord presents the record names, most recently used first, and
// returns the chosen record. ok=false means the operator cancelled (or there
// was nothing to offer); callers abort silently.
func selectRecord(p picker.Picker, records map[string]model.Record) (model.Record, bool) {
	names := inventory.Names(records)
	if lastUsed, err := history.LastUsed(); err == nil {
		names = history.SortNamesRecent(names, lastUsed)
	}
	choice, ok := p.Pick("Host: ", names)
	if !ok {
		return model.Record{}, false
	}
	rec, ok := records[choice]
	return rec, ok
}

// newAutomation wires the engine with the configured picker and typist.
func newAutomation(cfg appconfig.Config, p picker.Picker) *automation.Engine {
	ty := typist.New(cfg.Typist.Command)
	confirm := func(prompt string) bool { return picker.Confirm(p, prompt) }
	return automation.New(ty, confirm, p.Pick, cfg.StepDelay(), cfg.EscalateDelay())
}

// appendEvent records journal activity; journal failures never block a flow.
func appendEvent(evt journal.Event) {
	if err := journal.NewStore().Append(evt); err != nil {
		slog.Warn("failed to append journal event", "error", err)
	}
}

func runConnect(proxied bool) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	if err := session.EnsureSSHBinary(); err != nil {
		return err
	}
	records, ok, err := loadRecords(cfg)
	if err != nil || !ok {
		return err
	}
	p := picker.New(cfg.Picker.Command, cfg.Picker.Args)
	rec, ok := selectRecord(p, records)
	if !ok {
		return nil
	}

	if err := history.Touch(rec.Name); err != nil {
		slog.Warn("failed to record history", "error", err)
	}
	detail := "direct"
	if proxied {
		detail = "proxied"
	}
	appendEvent(journal.Event{Record: rec.Name, EventType: journal.EventConnect, Detail: detail})

	launcher := session.NewLauncher(newAutomation(cfg, p), cfg.ProxyCommand)
	// Long timeout for interactive sessions; the operator may work for hours.
	ctx, cancel := context.WithTimeout(context.Background(), 24*time.Hour)
	defer cancel()
	return launcher.Connect(ctx, rec, proxied)
}

// describeLines renders the non-sensitive summary printed by --describe.
// Empty fields are omitted rather than shown blank.
func describeLines(rec model.Record) []string {
	lines := []string{"Name: " + rec.Name}
	if rec.Description != "" {
		lines = append(lines, "Description: "+rec.Description)
	}
	if rec.Address != "" {
		lines = append(lines, "Address: "+rec.Address)
	}
	return lines
}

func runDescribe() error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	records, ok, err := loadRecords(cfg)
	if err != nil || !ok {
		return err
	}
	rec, ok := selectRecord(picker.New(cfg.Picker.Command, cfg.Picker.Args), records)
	if !ok {
		return nil
	}

	for _, line := range describeLines(rec) {
		fmt.Println(line)
	}
	// The address is not a secret: copy it without the auto-clear.
	if rec.Address != "" {
		guard := clipboard.NewGuard(cfg.ClipboardTTL())
		if err := guard.CopyPlain(rec.Address); err != nil {
			return err
		}
		fmt.Println("Address copied to clipboard.")
	}
	return nil
}

func runCopyPassword() error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	records, ok, err := loadRecords(cfg)
	if err != nil || !ok {
		return err
	}
	rec, ok := selectRecord(picker.New(cfg.Picker.Command, cfg.Picker.Args), records)
	if !ok {
		return nil
	}

	guard := clipboard.NewGuard(cfg.ClipboardTTL())
	if err := guard.CopySensitive(rec.Field(model.FieldCredential)); err != nil {
		return err
	}
	appendEvent(journal.Event{Record: rec.Name, EventType: journal.EventCopy})
	fmt.Printf("Password copied to clipboard; clears in %s.\n", cfg.ClipboardTTL())
	return nil
}

// Convenience action labels, offered in this order.
const (
	actionTypePassword = "Type password"
	actionEscalate     = "Escalate privilege (su)"
	actionRecolor      = "Recolor prompt"
	actionClear        = "Clear screen"
)

func runConvenience() error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	records, ok, err := loadRecords(cfg)
	if err != nil || !ok {
		return err
	}
	p := picker.New(cfg.Picker.Command, cfg.Picker.Args)
	rec, ok := selectRecord(p, records)
	if !ok {
		return nil
	}
	action, ok := p.Pick("Action: ", []string{actionTypePassword, actionEscalate, actionRecolor, actionClear})
	if !ok {
		return nil
	}

	eng := newAutomation(cfg, p)
	var ran bool
	switch action {
	case actionTypePassword:
		ran, err = eng.TypeCredential(rec.Field(model.FieldCredential))
	case actionEscalate:
		ran, err = eng.EscalatePrivilege(rec.Field(model.FieldCredential))
	case actionRecolor:
		// Empty color: the engine offers the palette picker.
		ran, err = eng.RecolorPrompt("")
	case actionClear:
		ran, err = eng.ClearScreen()
	}
	if err != nil {
		return err
	}
	if ran {
		appendEvent(journal.Event{Record: rec.Name, EventType: journal.EventAutomation, Detail: action})
	}
	return nil
}

func runList(jsonOut bool) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	records, ok, err := loadRecords(cfg)
	if err != nil || !ok {
		return err
	}

	names := inventory.Names(records)
	if jsonOut {
		out := make([]map[string]string, 0, len(names))
		for _, name := range names {
			rec := records[name]
			out = append(out, map[string]string{
				"name":        rec.Name,
				"address":     rec.Address,
				"user":        rec.User,
				"port":        rec.EffectivePort(),
				"description": rec.Description,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%-20s %-24s %-16s %-8s %s\n", "NAME", "ADDRESS", "USER", "PORT", "DESCRIPTION")
	for _, name := range names {
		rec := records[name]
		fmt.Printf("%-20s %-24s %-16s %-8s %s\n",
			rec.Name, util.EmptyDash(rec.Address), util.EmptyDash(rec.User),
			rec.EffectivePort(), util.EmptyDash(rec.Description))
	}
	return nil
}

func runHistory(jsonOut bool) error {
	events, err := journal.NewStore().Read(journal.Query{Limit: 20})
	if err != nil {
		return err
	}
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}
	fmt.Printf("%-20s %-16s %-20s %s\n", "TIME", "EVENT", "RECORD", "DETAIL")
	for _, evt := range events {
		fmt.Printf("%-20s %-16s %-20s %s\n",
			evt.Timestamp.Local().Format("2006-01-02 15:04:05"),
			evt.EventType, util.EmptyDash(evt.Record), util.EmptyDash(evt.Detail))
	}
	return nil
}

func runDoctor(jsonOut bool) error {
	report, err := doctor.Run()
	if err != nil {
		return err
	}
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if len(report.Issues) == 0 {
		fmt.Println("no issues found")
		return nil
	}
	for _, issue := range report.Issues {
		fmt.Printf("[%s] %s %s: %s — %s\n",
			issue.Severity, issue.Check, issue.Target, issue.Message, issue.Recommendation)
	}
	if report.HasHigh() {
		fmt.Println("high-severity issues found; connect and automation flows will likely fail")
	}
	return nil
}
