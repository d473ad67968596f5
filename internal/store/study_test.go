package store

import (
	"testing"
	"time"

	"github.com/mwaldman/huntboard/internal/database"
)

func setupStudyTestDB(t *testing.T) *StudyStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStudyStore(db)
}

func TestLogTimeOverwritesSameDate(t *testing.T) {
	ss := setupStudyTestDB(t)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entry, err := ss.LogTime(date, 30, "morning session")
	if err != nil {
		t.Fatalf("log time: %v", err)
	}
	if entry.Duration != 30 {
		t.Errorf("duration = %d, want 30", entry.Duration)
	}

	// Logging again on the same date replaces, not accumulates.
	entry, err = ss.LogTime(date, 45, "evening instead")
	if err != nil {
		t.Fatalf("log time again: %v", err)
	}
	if entry.Duration != 45 {
		t.Errorf("duration = %d, want 45 (overwrite, not 75)", entry.Duration)
	}
	if entry.Notes != "evening instead" {
		t.Errorf("notes = %q, want %q", entry.Notes, "evening instead")
	}

	entries, err := ss.ListEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single row per date, got %d", len(entries))
	}
}

func TestLogTimeIgnoresTimeOfDay(t *testing.T) {
	ss := setupStudyTestDB(t)

	morning := time.Date(2026, 3, 10, 8, 15, 0, 0, time.UTC)
	night := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)

	if _, err := ss.LogTime(morning, 20, ""); err != nil {
		t.Fatalf("log time: %v", err)
	}
	if _, err := ss.LogTime(night, 50, ""); err != nil {
		t.Fatalf("log time: %v", err)
	}

	entries, err := ss.ListEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected both logs to land on one date, got %d rows", len(entries))
	}
	if entries[0].Duration != 50 {
		t.Errorf("duration = %d, want 50", entries[0].Duration)
	}
}

func TestEntriesSince(t *testing.T) {
	ss := setupStudyTestDB(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		if _, err := ss.LogTime(base.AddDate(0, 0, i), 30, ""); err != nil {
			t.Fatalf("log time: %v", err)
		}
	}

	recent, err := ss.EntriesSince(base.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("entries since: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("expected 3 recent entries, got %d", len(recent))
	}
}

func TestStudyReset(t *testing.T) {
	ss := setupStudyTestDB(t)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := ss.LogTime(date, 30, ""); err != nil {
		t.Fatalf("log time: %v", err)
	}
	if err := ss.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	entries, err := ss.ListEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty log after reset, got %d rows", len(entries))
	}

	got, err := ss.GetByDate(date)
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got != nil {
		t.Error("expected nil entry after reset")
	}
}
