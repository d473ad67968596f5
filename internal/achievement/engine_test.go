package achievement

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mwaldman/huntboard/internal/database"
	"github.com/mwaldman/huntboard/internal/model"
	"github.com/mwaldman/huntboard/internal/store"
)

func setupEngine(t *testing.T) (*Engine, *store.AchievementStore, *store.SectionStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	as := store.NewAchievementStore(db)
	ss := store.NewSectionStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(as, ss, logger), as, ss
}

func ids(achievements []model.Achievement) []string {
	var out []string
	for _, a := range achievements {
		out = append(out, a.ID)
	}
	return out
}

func TestCheckAndUnlockStudyTime(t *testing.T) {
	engine, _, _ := setupEngine(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Crossing 30 hours unlocks time_30 only; higher thresholds stay locked.
	newly, err := engine.CheckAndUnlock(model.StudyStats{TotalMinutes: 1810}, now)
	if err != nil {
		t.Fatalf("check and unlock: %v", err)
	}
	if len(newly) != 1 || newly[0].ID != "time_30" {
		t.Fatalf("newly unlocked = %v, want [time_30]", ids(newly))
	}

	// Same metrics again: nothing new.
	newly, err = engine.CheckAndUnlock(model.StudyStats{TotalMinutes: 1810}, now)
	if err != nil {
		t.Fatalf("check and unlock again: %v", err)
	}
	if len(newly) != 0 {
		t.Errorf("expected no new unlocks on repeat, got %v", ids(newly))
	}

	// A big jump unlocks everything up to the crossed threshold at once.
	newly, err = engine.CheckAndUnlock(model.StudyStats{TotalMinutes: 9100}, now)
	if err != nil {
		t.Fatalf("check and unlock: %v", err)
	}
	if len(newly) != 2 {
		t.Fatalf("newly unlocked = %v, want [time_75 time_150]", ids(newly))
	}
	if newly[0].ID != "time_75" || newly[1].ID != "time_150" {
		t.Errorf("newly unlocked = %v, want threshold order", ids(newly))
	}
}

func TestCheckAndUnlockStreak(t *testing.T) {
	engine, as, _ := setupEngine(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	newly, err := engine.CheckAndUnlock(model.StudyStats{CurrentStreak: 7}, now)
	if err != nil {
		t.Fatalf("check and unlock: %v", err)
	}
	if len(newly) != 2 {
		t.Fatalf("newly unlocked = %v, want [streak_3 streak_7]", ids(newly))
	}

	// A broken streak does not re-lock anything.
	newly, err = engine.CheckAndUnlock(model.StudyStats{CurrentStreak: 0}, now.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("check and unlock: %v", err)
	}
	if len(newly) != 0 {
		t.Errorf("expected no new unlocks after broken streak, got %v", ids(newly))
	}
	rec, err := as.GetUnlock("streak_7")
	if err != nil {
		t.Fatalf("get unlock: %v", err)
	}
	if rec == nil {
		t.Error("streak_7 unlock should survive a broken streak")
	}
}

func TestCheckAndUnlockIgnoresSections(t *testing.T) {
	engine, as, _ := setupEngine(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Metrics that trip every numeric threshold still leave SECTION
	// achievements locked: those unlock only via CompleteSection.
	if _, err := engine.CheckAndUnlock(model.StudyStats{TotalMinutes: 100000, CurrentStreak: 100}, now); err != nil {
		t.Fatalf("check and unlock: %v", err)
	}

	locked, err := as.ListLockedByType(model.AchievementSection)
	if err != nil {
		t.Fatalf("list locked sections: %v", err)
	}
	if len(locked) != 5 {
		t.Errorf("expected all 5 section achievements still locked, got %d", len(locked))
	}
}

func TestCompleteSection(t *testing.T) {
	engine, _, ss := setupEngine(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a, err := engine.CompleteSection("section_1", now)
	if err != nil {
		t.Fatalf("complete section: %v", err)
	}
	if a == nil {
		t.Fatal("expected newly unlocked achievement")
	}
	if a.ID != "complete_section_1" {
		t.Errorf("achievement id = %q", a.ID)
	}

	// Completing again reports nothing new.
	a, err = engine.CompleteSection("section_1", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("complete section again: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil on repeat completion, got %s", a.ID)
	}

	// Marking incomplete keeps the achievement unlocked.
	if err := engine.IncompleteSection("section_1"); err != nil {
		t.Fatalf("incomplete section: %v", err)
	}
	sec, err := ss.GetByID("section_1")
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if sec.Completed {
		t.Error("expected section no longer completed")
	}

	a, err = engine.CompleteSection("section_1", now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("re-complete section: %v", err)
	}
	if a != nil {
		t.Error("re-completing must not report a new unlock")
	}
}
