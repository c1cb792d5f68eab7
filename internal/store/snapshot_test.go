package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnbean393/orstats/internal/model"
)

func sampleReport(date string) model.RevenueReport {
	return model.RevenueReport{
		Date:         date,
		TotalRevenue: 1234.56,
		TotalTokens:  9_000_000,
		TotalModels:  2,
		PaidModels:   1,
		FreeModels:   1,
		Models: []model.RevenueRecord{
			{
				Rank:             1,
				Slug:             "openai/gpt-5",
				Name:             "GPT-5",
				TotalTokens:      8_000_000,
				EstimatedRevenue: 1234.56,
			},
			{
				Rank:        2,
				Slug:        "meta-llama/llama-4:free",
				Name:        "Llama 4",
				TotalTokens: 1_000_000,
				IsFree:      true,
			},
		},
	}
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	s := NewSnapshotStore(t.TempDir())

	if err := s.Save(sampleReport("2025-08-24")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(sampleReport("2025-08-17")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	history, skipped, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(history) != 2 {
		t.Fatalf("got %d reports, want 2", len(history))
	}
	if history[0].Date != "2025-08-17" || history[1].Date != "2025-08-24" {
		t.Errorf("order = %q, %q, want ascending", history[0].Date, history[1].Date)
	}

	got := history[1]
	if got.TotalRevenue != 1234.56 || len(got.Models) != 2 {
		t.Errorf("report = %+v", got)
	}
	if got.Models[1].Slug != "meta-llama/llama-4:free" || !got.Models[1].IsFree {
		t.Errorf("model record not preserved: %+v", got.Models[1])
	}
}

func TestSnapshotStore_FieldNames(t *testing.T) {
	dir := t.TempDir()
	s := NewSnapshotStore(dir)
	if err := s.Save(sampleReport("2025-08-24")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "2025-08-24.json"))
	if err != nil {
		t.Fatal(err)
	}

	// External tooling reads these keys; renames break it.
	for _, key := range []string{
		`"date"`, `"total_revenue"`, `"total_tokens"`, `"total_models"`,
		`"paid_models"`, `"free_models"`, `"token_breakdown"`,
		`"estimated_revenue"`, `"is_free"`, `"percent_change"`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("snapshot JSON missing key %s", key)
		}
	}
}

func TestSnapshotStore_SkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	s := NewSnapshotStore(dir)
	if err := s.Save(sampleReport("2025-08-24")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "2025-08-10.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	history, skipped, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(history) != 1 || skipped != 1 {
		t.Errorf("history=%d skipped=%d, want 1/1", len(history), skipped)
	}
}

func TestSnapshotStore_LoadMissingDir(t *testing.T) {
	s := NewSnapshotStore(filepath.Join(t.TempDir(), "nope"))
	history, skipped, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory on missing dir: %v", err)
	}
	if len(history) != 0 || skipped != 0 {
		t.Errorf("history=%d skipped=%d, want empty", len(history), skipped)
	}
}

func TestSnapshotStore_FindRecent(t *testing.T) {
	s := NewSnapshotStore(t.TempDir())
	if err := s.Save(sampleReport("2025-08-20")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if date, ok := s.FindRecent("2025-08-24", 6); !ok || date != "2025-08-20" {
		t.Errorf("FindRecent = %q,%v, want 2025-08-20 within window", date, ok)
	}
	if _, ok := s.FindRecent("2025-08-28", 6); ok {
		t.Error("FindRecent matched a snapshot outside the window")
	}
	if _, ok := s.FindRecent("garbage", 6); ok {
		t.Error("FindRecent matched with an unparsable date")
	}
}
