package model

import "time"

type Job struct {
	ID              int64     `json:"id"`
	Company         string    `json:"company"`
	Position        string    `json:"position"`
	DateApplied     time.Time `json:"date_applied"`
	Status          string    `json:"status"`
	LastUpdated     time.Time `json:"last_updated"`
	Notes           string    `json:"notes"`
	ResumePath      *string   `json:"resume_path"`
	CoverLetterPath *string   `json:"cover_letter_path"`
	CreatedAt       time.Time `json:"created_at"`
}

// StatusTransition is one entry in a job's status history. Rows are
// append-only and ordered oldest first.
type StatusTransition struct {
	ID         int64     `json:"id"`
	JobID      int64     `json:"job_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedAt  time.Time `json:"changed_at"`
}
