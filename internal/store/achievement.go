package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mwaldman/huntboard/internal/model"
)

type AchievementStore struct {
	db *sql.DB
}

func NewAchievementStore(db *sql.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

func scanAchievement(scanner interface{ Scan(...any) error }) (*model.Achievement, error) {
	var a model.Achievement
	var typ string

	err := scanner.Scan(&a.ID, &typ, &a.Name, &a.Description, &a.Threshold, &a.Icon)
	if err != nil {
		return nil, err
	}

	a.Type = model.AchievementType(typ)
	return &a, nil
}

const achievementCols = `id, type, name, description, threshold, icon`

func (s *AchievementStore) GetByID(id string) (*model.Achievement, error) {
	row := s.db.QueryRow(`SELECT `+achievementCols+` FROM achievements WHERE id = ?`, id)
	a, err := scanAchievement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get achievement: %w", err)
	}
	return a, nil
}

// ListWithStatus returns every achievement joined with its unlock state,
// ordered by type then threshold.
func (s *AchievementStore) ListWithStatus() ([]model.AchievementStatus, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.type, a.name, a.description, a.threshold, a.icon, u.date_unlocked
		FROM achievements a
		LEFT JOIN achievement_unlocks u ON a.id = u.achievement_id
		ORDER BY a.type ASC, a.threshold ASC, a.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var statuses []model.AchievementStatus
	for rows.Next() {
		var st model.AchievementStatus
		var typ string
		var dateUnlocked sql.NullTime

		err := rows.Scan(&st.ID, &typ, &st.Name, &st.Description, &st.Threshold, &st.Icon, &dateUnlocked)
		if err != nil {
			return nil, fmt.Errorf("scan achievement status: %w", err)
		}

		st.Type = model.AchievementType(typ)
		if dateUnlocked.Valid {
			st.Unlocked = true
			st.DateUnlocked = &dateUnlocked.Time
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}

// ListUnlocked returns unlocked achievements, most recent unlock first.
func (s *AchievementStore) ListUnlocked() ([]model.AchievementStatus, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.type, a.name, a.description, a.threshold, a.icon, u.date_unlocked
		FROM achievements a
		JOIN achievement_unlocks u ON a.id = u.achievement_id
		ORDER BY u.date_unlocked DESC, a.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list unlocked achievements: %w", err)
	}
	defer rows.Close()

	var statuses []model.AchievementStatus
	for rows.Next() {
		var st model.AchievementStatus
		var typ string
		var dateUnlocked time.Time

		err := rows.Scan(&st.ID, &typ, &st.Name, &st.Description, &st.Threshold, &st.Icon, &dateUnlocked)
		if err != nil {
			return nil, fmt.Errorf("scan unlocked achievement: %w", err)
		}

		st.Type = model.AchievementType(typ)
		st.Unlocked = true
		st.DateUnlocked = &dateUnlocked
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}

// ListLockedByType returns achievements of the given type that have no unlock
// record yet, ordered by threshold.
func (s *AchievementStore) ListLockedByType(typ model.AchievementType) ([]model.Achievement, error) {
	rows, err := s.db.Query(`
		SELECT `+achievementCols+` FROM achievements
		WHERE type = ? AND id NOT IN (SELECT achievement_id FROM achievement_unlocks)
		ORDER BY threshold ASC, id ASC`, string(typ))
	if err != nil {
		return nil, fmt.Errorf("list locked achievements: %w", err)
	}
	defer rows.Close()

	var achievements []model.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, *a)
	}
	return achievements, rows.Err()
}

// Unlock records the first-time unlock of an achievement. It is idempotent:
// the insert is keyed on achievement_id, and a repeat call reports false.
func (s *AchievementStore) Unlock(id string, at time.Time) (bool, error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO achievement_unlocks (achievement_id, date_unlocked) VALUES (?, ?)`,
		id, at.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("unlock achievement: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return inserted > 0, nil
}

func (s *AchievementStore) GetUnlock(id string) (*model.UnlockRecord, error) {
	var rec model.UnlockRecord
	err := s.db.QueryRow(
		`SELECT achievement_id, date_unlocked FROM achievement_unlocks WHERE achievement_id = ?`,
		id,
	).Scan(&rec.AchievementID, &rec.DateUnlocked)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get unlock: %w", err)
	}
	return &rec, nil
}
