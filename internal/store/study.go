package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mwaldman/huntboard/internal/model"
)

type StudyStore struct {
	db *sql.DB
}

func NewStudyStore(db *sql.DB) *StudyStore {
	return &StudyStore{db: db}
}

func scanStudyEntry(scanner interface{ Scan(...any) error }) (*model.StudyLogEntry, error) {
	var e model.StudyLogEntry
	err := scanner.Scan(&e.ID, &e.Date, &e.Duration, &e.Notes)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

const studyCols = `id, date, duration, notes`

// LogTime records study time for a calendar date. A second log on the same
// date replaces the stored duration and notes rather than accumulating.
func (s *StudyStore) LogTime(date time.Time, durationMinutes int, notes string) (*model.StudyLogEntry, error) {
	day := startOfDay(date)

	_, err := s.db.Exec(
		`INSERT INTO study_log (date, duration, notes) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET duration = excluded.duration, notes = excluded.notes`,
		day, durationMinutes, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("log study time: %w", err)
	}

	return s.GetByDate(day)
}

func (s *StudyStore) GetByDate(date time.Time) (*model.StudyLogEntry, error) {
	row := s.db.QueryRow(`SELECT `+studyCols+` FROM study_log WHERE date = ?`, startOfDay(date))
	e, err := scanStudyEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get study entry: %w", err)
	}
	return e, nil
}

func (s *StudyStore) ListEntries() ([]model.StudyLogEntry, error) {
	rows, err := s.db.Query(`SELECT ` + studyCols + ` FROM study_log ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list study entries: %w", err)
	}
	defer rows.Close()

	var entries []model.StudyLogEntry
	for rows.Next() {
		e, err := scanStudyEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *StudyStore) EntriesSince(date time.Time) ([]model.StudyLogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+studyCols+` FROM study_log WHERE date >= ? ORDER BY date DESC`,
		startOfDay(date),
	)
	if err != nil {
		return nil, fmt.Errorf("list study entries since: %w", err)
	}
	defer rows.Close()

	var entries []model.StudyLogEntry
	for rows.Next() {
		e, err := scanStudyEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *StudyStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM study_log`)
	if err != nil {
		return fmt.Errorf("reset study log: %w", err)
	}
	return nil
}
