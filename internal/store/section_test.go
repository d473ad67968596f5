package store

import (
	"strings"
	"testing"
	"time"

	"github.com/mwaldman/huntboard/internal/database"
	"github.com/mwaldman/huntboard/internal/model"
)

func setupSectionTestDB(t *testing.T) (*SectionStore, *AchievementStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSectionStore(db), NewAchievementStore(db)
}

func TestSeededSections(t *testing.T) {
	ss, as := setupSectionTestDB(t)

	sections, err := ss.List()
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 5 {
		t.Fatalf("expected 5 seeded sections, got %d", len(sections))
	}
	if sections[0].Name != "General Probability" {
		t.Errorf("sections[0].Name = %q, want %q", sections[0].Name, "General Probability")
	}
	for i, sec := range sections {
		if sec.Completed {
			t.Errorf("section %d seeded as completed", i)
		}
		if sec.DateCompleted != nil {
			t.Errorf("section %d seeded with date_completed", i)
		}
	}

	// Every seeded section has its paired achievement.
	for _, sec := range sections {
		a, err := as.GetByID("complete_" + sec.ID)
		if err != nil {
			t.Fatalf("get paired achievement: %v", err)
		}
		if a == nil {
			t.Errorf("missing achievement for section %s", sec.ID)
			continue
		}
		if a.Type != model.AchievementSection {
			t.Errorf("achievement type = %q, want SECTION", a.Type)
		}
		if a.Threshold != 1 {
			t.Errorf("section achievement threshold = %d, want 1", a.Threshold)
		}
	}
}

func TestSectionCreateGeneratesAchievement(t *testing.T) {
	ss, as := setupSectionTestDB(t)

	sec, err := ss.Create("Order Statistics", "Distributions of ordered samples", 6)
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if !strings.HasPrefix(sec.ID, "section_") {
		t.Errorf("section id = %q, want section_ prefix", sec.ID)
	}

	a, err := as.GetByID("complete_" + sec.ID)
	if err != nil {
		t.Fatalf("get achievement: %v", err)
	}
	if a == nil {
		t.Fatal("expected generated achievement")
	}
	if a.Name != "Mastered: Order Statistics" {
		t.Errorf("achievement name = %q", a.Name)
	}
}

func TestSectionRenameKeepsAchievementInSync(t *testing.T) {
	ss, as := setupSectionTestDB(t)

	sec, err := ss.Create("Old Name", "", 6)
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	renamed, err := ss.Rename(sec.ID, "New Name", "fresh description")
	if err != nil {
		t.Fatalf("rename section: %v", err)
	}
	if renamed.Name != "New Name" {
		t.Errorf("name = %q, want %q", renamed.Name, "New Name")
	}

	a, err := as.GetByID("complete_" + sec.ID)
	if err != nil {
		t.Fatalf("get achievement: %v", err)
	}
	if a.Name != "Mastered: New Name" {
		t.Errorf("achievement name = %q, want %q", a.Name, "Mastered: New Name")
	}
}

func TestSectionCompleteUnlocksAtomically(t *testing.T) {
	ss, as := setupSectionTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	fresh, err := ss.Complete("section_1", now)
	if err != nil {
		t.Fatalf("complete section: %v", err)
	}
	if !fresh {
		t.Error("expected first completion to report a new unlock")
	}

	sec, err := ss.GetByID("section_1")
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if !sec.Completed {
		t.Error("expected completed flag set")
	}
	if sec.DateCompleted == nil {
		t.Fatal("expected date_completed set")
	}

	rec, err := as.GetUnlock("complete_section_1")
	if err != nil {
		t.Fatalf("get unlock: %v", err)
	}
	if rec == nil {
		t.Fatal("expected unlock record")
	}

	// Completing again is a no-op on the unlock.
	fresh, err = ss.Complete("section_1", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("complete section again: %v", err)
	}
	if fresh {
		t.Error("second completion should not report a new unlock")
	}
}

func TestSectionIncompleteKeepsUnlock(t *testing.T) {
	ss, as := setupSectionTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if _, err := ss.Complete("section_2", now); err != nil {
		t.Fatalf("complete section: %v", err)
	}
	if err := ss.Incomplete("section_2"); err != nil {
		t.Fatalf("mark incomplete: %v", err)
	}

	sec, err := ss.GetByID("section_2")
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if sec.Completed {
		t.Error("expected completed cleared")
	}
	if sec.DateCompleted != nil {
		t.Error("expected date_completed cleared")
	}

	// The unlock stays: unlocks are monotonic.
	rec, err := as.GetUnlock("complete_section_2")
	if err != nil {
		t.Fatalf("get unlock: %v", err)
	}
	if rec == nil {
		t.Error("expected unlock record to survive marking incomplete")
	}
}

func TestSectionDeleteRemovesAchievementAndUnlock(t *testing.T) {
	ss, as := setupSectionTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	sec, err := ss.Create("Doomed", "", 9)
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if _, err := ss.Complete(sec.ID, now); err != nil {
		t.Fatalf("complete section: %v", err)
	}

	if err := ss.Delete(sec.ID); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	got, err := ss.GetByID(sec.ID)
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if got != nil {
		t.Error("expected section gone")
	}

	a, err := as.GetByID("complete_" + sec.ID)
	if err != nil {
		t.Fatalf("get achievement: %v", err)
	}
	if a != nil {
		t.Error("expected paired achievement gone")
	}

	rec, err := as.GetUnlock("complete_" + sec.ID)
	if err != nil {
		t.Fatalf("get unlock: %v", err)
	}
	if rec != nil {
		t.Error("expected unlock cascade-deleted with achievement")
	}
}
