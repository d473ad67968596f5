package model

import "time"

type AchievementType string

const (
	AchievementStudyTime AchievementType = "STUDY_TIME"
	AchievementStreak    AchievementType = "STREAK"
	AchievementSection   AchievementType = "SECTION"
)

type Achievement struct {
	ID          string          `json:"id"`
	Type        AchievementType `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Threshold   int             `json:"threshold"`
	Icon        string          `json:"icon"`
}

// UnlockRecord marks the moment an achievement was first unlocked.
// At most one row exists per achievement id; unlocks never revert.
type UnlockRecord struct {
	AchievementID string    `json:"achievement_id"`
	DateUnlocked  time.Time `json:"date_unlocked"`
}

// AchievementStatus is an achievement joined with its unlock state.
type AchievementStatus struct {
	Achievement
	Unlocked     bool       `json:"unlocked"`
	DateUnlocked *time.Time `json:"date_unlocked"`
}
