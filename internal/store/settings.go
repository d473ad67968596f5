package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Setting keys recognized by the study tracker. Values stored here override
// the file-based configuration at runtime.
const (
	SettingTestDate           = "study_test_date"
	SettingDailyTargetMinutes = "study_daily_target_minutes"
)

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SettingsStore) GetAll() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("get all settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// GetTestDate returns the persisted exam date override, if one is set.
func (s *SettingsStore) GetTestDate() (time.Time, bool, error) {
	value, ok, err := s.Get(SettingTestDate)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse test date setting: %w", err)
	}
	return d, true, nil
}

func (s *SettingsStore) SetTestDate(d time.Time) error {
	return s.Set(SettingTestDate, d.Format("2006-01-02"))
}

// GetDailyTargetMinutes returns the persisted manual daily target override.
func (s *SettingsStore) GetDailyTargetMinutes() (int, bool, error) {
	value, ok, err := s.Get(SettingDailyTargetMinutes)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse daily target setting: %w", err)
	}
	return n, true, nil
}

func (s *SettingsStore) SetDailyTargetMinutes(minutes int) error {
	return s.Set(SettingDailyTargetMinutes, strconv.Itoa(minutes))
}
