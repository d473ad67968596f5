package model

import "time"

// StudyLogEntry is one day of logged study time. The date column is unique:
// logging twice on the same date replaces the stored duration.
type StudyLogEntry struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration_minutes"`
	Notes    string    `json:"notes"`
}

type StudySection struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Completed     bool       `json:"completed"`
	DateCompleted *time.Time `json:"date_completed"`
	OrderNum      int        `json:"order_num"`
}
