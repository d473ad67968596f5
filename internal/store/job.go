package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mwaldman/huntboard/internal/model"
)

type JobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

func scanJob(scanner interface{ Scan(...any) error }) (*model.Job, error) {
	var j model.Job
	var resumePath sql.NullString
	var coverLetterPath sql.NullString

	err := scanner.Scan(
		&j.ID, &j.Company, &j.Position, &j.DateApplied, &j.Status,
		&j.LastUpdated, &j.Notes, &resumePath, &coverLetterPath, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resumePath.Valid {
		j.ResumePath = &resumePath.String
	}
	if coverLetterPath.Valid {
		j.CoverLetterPath = &coverLetterPath.String
	}
	return &j, nil
}

const jobCols = `id, company, position, date_applied, status, last_updated, notes, resume_path, cover_letter_path, created_at`

func (s *JobStore) Create(company, position string, dateApplied time.Time, status, notes string, resumePath, coverLetterPath *string, now time.Time) (*model.Job, error) {
	var rPath sql.NullString
	if resumePath != nil {
		rPath = sql.NullString{String: *resumePath, Valid: true}
	}
	var cPath sql.NullString
	if coverLetterPath != nil {
		cPath = sql.NullString{String: *coverLetterPath, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO jobs (company, position, date_applied, status, last_updated, notes, resume_path, cover_letter_path) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		company, position, startOfDay(dateApplied), status, startOfDay(now), notes, rPath, cPath,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *JobStore) GetByID(id int64) (*model.Job, error) {
	row := s.db.QueryRow(`SELECT `+jobCols+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (s *JobStore) List() ([]model.Job, error) {
	rows, err := s.db.Query(`SELECT ` + jobCols + ` FROM jobs ORDER BY date_applied DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// JobUpdate carries the fields of an update. Nil fields keep the stored value.
type JobUpdate struct {
	Status          *string
	Notes           *string
	ResumePath      *string
	CoverLetterPath *string
}

// Update applies the given fields and refreshes last_updated. When the status
// actually changes, the row update and the appended status transition commit
// in a single transaction.
func (s *JobStore) Update(id int64, upd JobUpdate, now time.Time) (*model.Job, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	status := existing.Status
	if upd.Status != nil {
		status = *upd.Status
	}
	notes := existing.Notes
	if upd.Notes != nil {
		notes = *upd.Notes
	}
	resumePath := existing.ResumePath
	if upd.ResumePath != nil {
		resumePath = upd.ResumePath
	}
	coverLetterPath := existing.CoverLetterPath
	if upd.CoverLetterPath != nil {
		coverLetterPath = upd.CoverLetterPath
	}

	var rPath sql.NullString
	if resumePath != nil {
		rPath = sql.NullString{String: *resumePath, Valid: true}
	}
	var cPath sql.NullString
	if coverLetterPath != nil {
		cPath = sql.NullString{String: *coverLetterPath, Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE jobs SET status = ?, notes = ?, last_updated = ?, resume_path = ?, cover_letter_path = ? WHERE id = ?`,
		status, notes, startOfDay(now), rPath, cPath, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	if status != existing.Status {
		_, err = tx.Exec(
			`INSERT INTO status_transitions (job_id, from_status, to_status, changed_at) VALUES (?, ?, ?, ?)`,
			id, existing.Status, status, now.UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert status transition: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the job. Its status transitions go with it via the foreign
// key cascade; attached files are the caller's to clean up.
func (s *JobStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *JobStore) CountAppliedSince(date time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM jobs WHERE date_applied >= ?`,
		startOfDay(date),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count applied since: %w", err)
	}
	return n, nil
}

func (s *JobStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM jobs`)
	if err != nil {
		return fmt.Errorf("reset jobs: %w", err)
	}
	return nil
}

// --- Status transition methods ---

func scanTransition(scanner interface{ Scan(...any) error }) (*model.StatusTransition, error) {
	var t model.StatusTransition
	err := scanner.Scan(&t.ID, &t.JobID, &t.FromStatus, &t.ToStatus, &t.ChangedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const transitionCols = `id, job_id, from_status, to_status, changed_at`

// ListTransitions returns a job's status history, oldest first.
func (s *JobStore) ListTransitions(jobID int64) ([]model.StatusTransition, error) {
	rows, err := s.db.Query(
		`SELECT `+transitionCols+` FROM status_transitions WHERE job_id = ? ORDER BY changed_at ASC, id ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var transitions []model.StatusTransition
	for rows.Next() {
		t, err := scanTransition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		transitions = append(transitions, *t)
	}
	return transitions, rows.Err()
}

func (s *JobStore) ListAllTransitions() ([]model.StatusTransition, error) {
	rows, err := s.db.Query(`SELECT ` + transitionCols + ` FROM status_transitions ORDER BY job_id ASC, changed_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list all transitions: %w", err)
	}
	defer rows.Close()

	var transitions []model.StatusTransition
	for rows.Next() {
		t, err := scanTransition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		transitions = append(transitions, *t)
	}
	return transitions, rows.Err()
}

// AppendTransition inserts a history row directly, bypassing the status
// comparison in Update. Used when importing legacy marker-formatted notes.
func (s *JobStore) AppendTransition(jobID int64, fromStatus, toStatus string, changedAt time.Time) (*model.StatusTransition, error) {
	result, err := s.db.Exec(
		`INSERT INTO status_transitions (job_id, from_status, to_status, changed_at) VALUES (?, ?, ?, ?)`,
		jobID, fromStatus, toStatus, changedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert status transition: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+transitionCols+` FROM status_transitions WHERE id = ?`, id)
	return scanTransition(row)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
