package store

import (
	"testing"
	"time"

	"github.com/mwaldman/huntboard/internal/database"
	"github.com/mwaldman/huntboard/internal/model"
)

func setupAchievementTestDB(t *testing.T) *AchievementStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAchievementStore(db)
}

func TestSeededAchievements(t *testing.T) {
	as := setupAchievementTestDB(t)

	statuses, err := as.ListWithStatus()
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	// 5 study time + 4 streak + 5 section achievements.
	if len(statuses) != 14 {
		t.Fatalf("expected 14 seeded achievements, got %d", len(statuses))
	}
	for _, st := range statuses {
		if st.Unlocked {
			t.Errorf("achievement %s seeded unlocked", st.ID)
		}
	}

	a, err := as.GetByID("time_30")
	if err != nil {
		t.Fatalf("get achievement: %v", err)
	}
	if a == nil {
		t.Fatal("expected time_30")
	}
	if a.Threshold != 1800 {
		t.Errorf("time_30 threshold = %d, want 1800 minutes", a.Threshold)
	}
	if a.Type != model.AchievementStudyTime {
		t.Errorf("time_30 type = %q, want STUDY_TIME", a.Type)
	}
}

func TestUnlockIdempotent(t *testing.T) {
	as := setupAchievementTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	fresh, err := as.Unlock("streak_3", now)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !fresh {
		t.Error("first unlock should report newly unlocked")
	}

	fresh, err = as.Unlock("streak_3", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unlock again: %v", err)
	}
	if fresh {
		t.Error("second unlock should be a no-op")
	}

	// The original unlock time survives the repeat call.
	rec, err := as.GetUnlock("streak_3")
	if err != nil {
		t.Fatalf("get unlock: %v", err)
	}
	if rec == nil {
		t.Fatal("expected unlock record")
	}
	if !rec.DateUnlocked.Equal(now) {
		t.Errorf("date_unlocked = %v, want %v", rec.DateUnlocked, now)
	}
}

func TestListLockedByType(t *testing.T) {
	as := setupAchievementTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	locked, err := as.ListLockedByType(model.AchievementStudyTime)
	if err != nil {
		t.Fatalf("list locked: %v", err)
	}
	if len(locked) != 5 {
		t.Fatalf("expected 5 locked study time achievements, got %d", len(locked))
	}
	// Ordered by threshold ascending.
	for i := 1; i < len(locked); i++ {
		if locked[i-1].Threshold > locked[i].Threshold {
			t.Errorf("locked achievements out of order at %d", i)
		}
	}

	if _, err := as.Unlock("time_30", now); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	locked, err = as.ListLockedByType(model.AchievementStudyTime)
	if err != nil {
		t.Fatalf("list locked: %v", err)
	}
	if len(locked) != 4 {
		t.Errorf("expected 4 locked after one unlock, got %d", len(locked))
	}
	for _, a := range locked {
		if a.ID == "time_30" {
			t.Error("unlocked achievement still listed as locked")
		}
	}
}

func TestListUnlockedOrdering(t *testing.T) {
	as := setupAchievementTestDB(t)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	as.Unlock("time_30", base)
	as.Unlock("streak_3", base.Add(2*time.Hour))

	unlocked, err := as.ListUnlocked()
	if err != nil {
		t.Fatalf("list unlocked: %v", err)
	}
	if len(unlocked) != 2 {
		t.Fatalf("expected 2 unlocked, got %d", len(unlocked))
	}
	// Most recent first.
	if unlocked[0].ID != "streak_3" {
		t.Errorf("unlocked[0].ID = %q, want streak_3", unlocked[0].ID)
	}
	if !unlocked[0].Unlocked || unlocked[0].DateUnlocked == nil {
		t.Error("unlocked entry missing status fields")
	}
}
