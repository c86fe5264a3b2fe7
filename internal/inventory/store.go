// Package inventory loads the host inventory file into immutable records.
//
// The inventory is a plain comma-delimited file with six positional columns:
//
//	name,address,user,credential,description,port
//
// The file is the only persistence the application has. It is edited by the
// operator directly; sshpad never writes rows back, it only creates the
// header-only template on first run.
package inventory

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sshpad/internal/model"
)

// ErrFirstRun signals that no inventory existed and a header-only template was
// created. It is a bootstrap condition, not a failure: callers print a hint
// pointing at the new file and exit cleanly.
var ErrFirstRun = errors.New("inventory created, add hosts to it")

const header = "Name,Address,User,Password,Description,Port"

const columns = 6

// Load reads the inventory file at path into a map keyed by record name.
// A later row with a duplicate name overwrites the earlier one. Rows with a
// blank name are skipped. Short rows are padded with empty fields rather than
// rejected; the port default is applied downstream at the point of use.
func Load(path string) (map[string]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := bootstrap(path); err != nil {
				return nil, err
			}
			return nil, ErrFirstRun
		}
		return nil, fmt.Errorf("open inventory %s: %w", path, err)
	}
	defer f.Close()

	records := map[string]model.Record{}
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if first {
			first = false
			if isHeader(line) {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := parseRow(line)
		if r.Name == "" {
			continue
		}
		records[r.Name] = r
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan inventory %s: %w", path, err)
	}
	return records, nil
}

// Names returns the record names sorted lexically.
func Names(records map[string]model.Record) []string {
	out := make([]string, 0, len(records))
	for name := range records {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func parseRow(line string) model.Record {
	fields := strings.Split(line, ",")
	for len(fields) < columns {
		fields = append(fields, "")
	}
	return model.Record{
		Name:        strings.TrimSpace(fields[0]),
		Address:     strings.TrimSpace(fields[1]),
		User:        strings.TrimSpace(fields[2]),
		Credential:  fields[3],
		Description: strings.TrimSpace(fields[4]),
		Port:        strings.TrimSpace(fields[5]),
	}
}

// isHeader reports whether the first line is the literal column header. Only
// the first column name is checked, matching how loosely the file is parsed
// everywhere else.
func isHeader(line string) bool {
	first := strings.SplitN(line, ",", 2)[0]
	return strings.EqualFold(strings.TrimSpace(first), "Name")
}

// bootstrap creates a header-only inventory so the operator has a template to
// fill in. The file holds credentials, so it is created owner-only.
func bootstrap(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create inventory dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(header+"\n"), 0o600); err != nil {
		return fmt.Errorf("create inventory %s: %w", path, err)
	}
	return nil
}
