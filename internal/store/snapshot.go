// Package store persists revenue snapshots as per-date JSON files and
// keeps a SQLite cache of fetched model-page analytics.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/johnbean393/orstats/internal/model"
)

// SnapshotStore reads and writes data/<date>.json revenue snapshots.
// Downstream tooling diffs and charts these files, so the on-disk field
// names never change.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store rooted at dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Save writes one report to <dir>/<date>.json.
func (s *SnapshotStore) Save(report model.RevenueReport) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	path := filepath.Join(s.dir, report.Date+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// LoadHistory reads all snapshots sorted by date ascending. Unreadable
// files are skipped; the count of skipped files is returned so callers
// can surface a warning.
func (s *SnapshotStore) LoadHistory() ([]model.RevenueReport, int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("reading data dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var reports []model.RevenueReport
	skipped := 0
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			skipped++
			continue
		}
		var r model.RevenueReport
		if err := json.Unmarshal(data, &r); err != nil {
			skipped++
			continue
		}
		reports = append(reports, r)
	}

	return reports, skipped, nil
}

// FindRecent reports whether a snapshot already exists within daysBack
// days of today (inclusive), returning its date. Used to avoid a second
// collection inside the same reporting week.
func (s *SnapshotStore) FindRecent(today string, daysBack int) (string, bool) {
	t, err := time.Parse("2006-01-02", today)
	if err != nil {
		return "", false
	}

	for offset := 0; offset <= daysBack; offset++ {
		date := t.AddDate(0, 0, -offset).Format("2006-01-02")
		if _, err := os.Stat(filepath.Join(s.dir, date+".json")); err == nil {
			return date, true
		}
	}
	return "", false
}
