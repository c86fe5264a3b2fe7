// Package doctor diagnoses the external collaborators sshpad depends on.
//
// The launcher deliberately carries no resilience layer of its own: missing
// pickers, input tools, or shell clients fail at the moment they're invoked,
// with whatever behavior the missing tool exhibits. Doctor exists so the
// operator can catch those problems ahead of time instead.
package doctor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"sshpad/internal/appconfig"
	"sshpad/internal/inventory"
	"sshpad/internal/session"
	"sshpad/internal/util"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Issue struct {
	Severity       Severity `json:"severity"`
	Check          string   `json:"check"`
	Target         string   `json:"target"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

func (r Report) HasHigh() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// Run executes local diagnostics for sshpad operations.
func Run() (Report, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		return Report{}, err
	}

	var issues []Issue

	if err := session.EnsureSSHBinary(); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "ssh-binary",
			Target:         "PATH",
			Message:        err.Error(),
			Recommendation: "install OpenSSH client and ensure `ssh` is on PATH",
		})
	}
	if _, err := exec.LookPath(cfg.Typist.Command); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "typist-binary",
			Target:         cfg.Typist.Command,
			Message:        "simulated-input tool not found in PATH",
			Recommendation: "install it or set typist.command in config.yaml",
		})
	}
	if _, err := exec.LookPath(cfg.Picker.Command); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityLow,
			Check:          "picker-binary",
			Target:         cfg.Picker.Command,
			Message:        "external picker not found; the built-in picker will be used",
			Recommendation: "install it or set picker.command for fuzzy matching",
		})
	}
	if _, err := exec.LookPath(cfg.ProxyCommand); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityLow,
			Check:          "proxy-binary",
			Target:         cfg.ProxyCommand,
			Message:        "proxy command not found; --proxy-connect will fail",
			Recommendation: "install it or set proxy_command in config.yaml",
		})
	}

	if cfgDir, err := appconfig.ConfigDir(); err == nil {
		checkPathPerm(&issues, cfgDir, 0o700, false)
		checkPathPerm(&issues, filepath.Join(cfgDir, "config.yaml"), 0o600, true)
		checkPathPerm(&issues, filepath.Join(cfgDir, "history.json"), 0o600, true)
		checkPathPerm(&issues, filepath.Join(cfgDir, "events.jsonl"), 0o600, true)
	}

	issues = append(issues, inventoryIssues(cfg)...)

	sort.Slice(issues, func(i, j int) bool {
		ri := severityRank(issues[i].Severity)
		rj := severityRank(issues[j].Severity)
		if ri != rj {
			return ri > rj
		}
		if issues[i].Check != issues[j].Check {
			return issues[i].Check < issues[j].Check
		}
		if issues[i].Target != issues[j].Target {
			return issues[i].Target < issues[j].Target
		}
		return issues[i].Message < issues[j].Message
	})
	return Report{Issues: issues}, nil
}

// inventoryIssues audits the inventory file itself: permissions (it holds
// credentials in the clear) and per-record field sanity.
func inventoryIssues(cfg appconfig.Config) []Issue {
	path, err := cfg.InventoryPath()
	if err != nil {
		return nil
	}

	var issues []Issue
	records, err := inventory.Load(path)
	if err != nil {
		if errors.Is(err, inventory.ErrFirstRun) {
			issues = append(issues, Issue{
				Severity:       SeverityLow,
				Check:          "inventory-empty",
				Target:         path,
				Message:        "inventory was just created and has no hosts",
				Recommendation: "add rows: name,address,user,password,description,port",
			})
			return issues
		}
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "inventory-read",
			Target:         path,
			Message:        err.Error(),
			Recommendation: "fix the inventory file so it can be read",
		})
		return issues
	}

	// The inventory stores plaintext credentials; it must be owner-only.
	checkPathPerm(&issues, path, 0o600, true)

	for _, name := range inventory.Names(records) {
		rec := records[name]
		if rec.Address == "" {
			issues = append(issues, Issue{
				Severity:       SeverityMedium,
				Check:          "record-address",
				Target:         name,
				Message:        "record has no address",
				Recommendation: "fill in the address column",
			})
		}
		if err := util.ValidatePortString(rec.EffectivePort()); err != nil {
			issues = append(issues, Issue{
				Severity:       SeverityMedium,
				Check:          "record-port",
				Target:         name,
				Message:        err.Error(),
				Recommendation: "set the port column to a number between 1 and 65535, or leave it blank for 22",
			})
		}
	}
	return issues
}

func checkPathPerm(issues *[]Issue, path string, max os.FileMode, isFile bool) {
	st, err := os.Stat(path)
	if err != nil {
		// Absent runtime files are fine; they appear on first use.
		return
	}
	mode := st.Mode().Perm()
	if mode > max {
		kind := "directory"
		if isFile {
			kind = "file"
		}
		*issues = append(*issues, Issue{
			Severity:       SeverityMedium,
			Check:          "file-permissions",
			Target:         path,
			Message:        fmt.Sprintf("%s permissions are too broad (%#o)", kind, mode),
			Recommendation: fmt.Sprintf("restrict permissions to %#o or tighter", max),
		})
	}
}

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}
