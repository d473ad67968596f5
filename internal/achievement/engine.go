// Package achievement decides when milestone achievements unlock. Unlocking
// is monotonic: once a threshold has been crossed the unlock stays, even if
// the underlying metric later drops back below it.
package achievement

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mwaldman/huntboard/internal/model"
	"github.com/mwaldman/huntboard/internal/store"
)

type Engine struct {
	achievements *store.AchievementStore
	sections     *store.SectionStore
	logger       *slog.Logger
}

func NewEngine(as *store.AchievementStore, ss *store.SectionStore, logger *slog.Logger) *Engine {
	return &Engine{achievements: as, sections: ss, logger: logger}
}

// CheckAndUnlock compares the given study metrics against every still-locked
// STUDY_TIME and STREAK achievement and records first-time crossings.
// SECTION achievements are excluded; they unlock only through
// CompleteSection. Safe to call repeatedly: re-crossing an unlocked
// threshold is a no-op.
func (e *Engine) CheckAndUnlock(stats model.StudyStats, now time.Time) ([]model.Achievement, error) {
	var newly []model.Achievement

	locked, err := e.achievements.ListLockedByType(model.AchievementStudyTime)
	if err != nil {
		return nil, fmt.Errorf("list locked study time achievements: %w", err)
	}
	for _, a := range locked {
		if stats.TotalMinutes < a.Threshold {
			continue
		}
		fresh, err := e.achievements.Unlock(a.ID, now)
		if err != nil {
			return nil, err
		}
		if fresh {
			e.logger.Info("achievement unlocked", "id", a.ID, "type", a.Type, "threshold", a.Threshold)
			newly = append(newly, a)
		}
	}

	locked, err = e.achievements.ListLockedByType(model.AchievementStreak)
	if err != nil {
		return nil, fmt.Errorf("list locked streak achievements: %w", err)
	}
	for _, a := range locked {
		if stats.CurrentStreak < a.Threshold {
			continue
		}
		fresh, err := e.achievements.Unlock(a.ID, now)
		if err != nil {
			return nil, err
		}
		if fresh {
			e.logger.Info("achievement unlocked", "id", a.ID, "type", a.Type, "threshold", a.Threshold)
			newly = append(newly, a)
		}
	}

	return newly, nil
}

// CompleteSection marks a study section finished and unlocks its paired
// SECTION achievement atomically. The returned achievement is non-nil only
// when the unlock is new.
func (e *Engine) CompleteSection(id string, now time.Time) (*model.Achievement, error) {
	fresh, err := e.sections.Complete(id, now)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, nil
	}

	e.logger.Info("section completed", "section_id", id)
	return e.achievements.GetByID("complete_" + id)
}

// IncompleteSection clears a section's completed state. The SECTION
// achievement, if already unlocked, is deliberately left in place.
func (e *Engine) IncompleteSection(id string) error {
	return e.sections.Incomplete(id)
}
