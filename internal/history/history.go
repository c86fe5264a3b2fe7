package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"sshpad/internal/appconfig"
)

type store struct {
	LastUsed map[string]int64 `json:"last_used"`
}

// Touch records successful activity for a record name.
func Touch(name string) error {
	st, err := load()
	if err != nil {
		return err
	}
	if st.LastUsed == nil {
		st.LastUsed = map[string]int64{}
	}
	st.LastUsed[name] = time.Now().Unix()
	return save(st)
}

// LastUsed returns last successful activity timestamps by record name.
func LastUsed() (map[string]int64, error) {
	st, err := load()
	if err != nil {
		return nil, err
	}
	return st.LastUsed, nil
}

// SortNamesRecent returns a new slice sorted by recent activity (desc), then name.
func SortNamesRecent(names []string, lastUsed map[string]int64) []string {
	out := append([]string(nil), names...)
	sort.Slice(out, func(i, j int) bool {
		ti := lastUsed[out[i]]
		tj := lastUsed[out[j]]
		if ti != tj {
			return ti > tj
		}
		return out[i] < out[j]
	})
	return out
}

func load() (store, error) {
	path, err := appconfig.HistoryFilePath()
	if err != nil {
		return store{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store{LastUsed: map[string]int64{}}, nil
		}
		return store{}, err
	}
	var st store
	if err := json.Unmarshal(b, &st); err != nil {
		return store{LastUsed: map[string]int64{}}, nil
	}
	if st.LastUsed == nil {
		st.LastUsed = map[string]int64{}
	}
	return st, nil
}

func save(st store) error {
	path, err := appconfig.HistoryFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
