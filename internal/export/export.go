// Package export renders tracker data as downloadable CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mwaldman/huntboard/internal/model"
)

// Data is the full snapshot handed to the exporters. Handlers assemble it
// from the stores; the exporters never touch the database themselves.
type Data struct {
	Jobs         []model.Job
	StudyLog     []model.StudyLogEntry
	Sections     []model.StudySection
	Achievements []model.AchievementStatus
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var jobsHeader = []string{"id", "company", "position", "date_applied", "status", "last_updated", "notes", "resume_path", "cover_letter_path"}

func jobRow(j model.Job) []string {
	return []string{
		strconv.FormatInt(j.ID, 10),
		j.Company,
		j.Position,
		formatDate(j.DateApplied),
		j.Status,
		j.LastUpdated.Format(time.RFC3339),
		j.Notes,
		derefString(j.ResumePath),
		derefString(j.CoverLetterPath),
	}
}

// WriteJobsCSV writes every job application as one CSV row.
func WriteJobsCSV(w io.Writer, jobs []model.Job) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(jobsHeader); err != nil {
		return fmt.Errorf("write jobs header: %w", err)
	}
	for _, j := range jobs {
		if err := cw.Write(jobRow(j)); err != nil {
			return fmt.Errorf("write job row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var studyLogHeader = []string{"date", "duration_minutes", "notes"}

func studyLogRow(e model.StudyLogEntry) []string {
	return []string{formatDate(e.Date), strconv.Itoa(e.Duration), e.Notes}
}

// WriteStudyLogCSV writes the study log, one row per calendar day.
func WriteStudyLogCSV(w io.Writer, entries []model.StudyLogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(studyLogHeader); err != nil {
		return fmt.Errorf("write study log header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(studyLogRow(e)); err != nil {
			return fmt.Errorf("write study log row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var sectionsHeader = []string{"id", "name", "description", "completed", "date_completed"}

func sectionRow(s model.StudySection) []string {
	return []string{s.ID, s.Name, s.Description, strconv.FormatBool(s.Completed), formatDatePtr(s.DateCompleted)}
}

// WriteSectionsCSV writes the study sections with their completion state.
func WriteSectionsCSV(w io.Writer, sections []model.StudySection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sectionsHeader); err != nil {
		return fmt.Errorf("write sections header: %w", err)
	}
	for _, s := range sections {
		if err := cw.Write(sectionRow(s)); err != nil {
			return fmt.Errorf("write section row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var achievementsHeader = []string{"id", "name", "description", "type", "threshold", "unlocked", "date_unlocked"}

func achievementRow(a model.AchievementStatus) []string {
	return []string{
		a.ID,
		a.Name,
		a.Description,
		string(a.Type),
		strconv.Itoa(a.Threshold),
		strconv.FormatBool(a.Unlocked),
		formatDatePtr(a.DateUnlocked),
	}
}

// WriteAchievementsCSV writes every achievement with its unlock state.
func WriteAchievementsCSV(w io.Writer, achievements []model.AchievementStatus) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(achievementsHeader); err != nil {
		return fmt.Errorf("write achievements header: %w", err)
	}
	for _, a := range achievements {
		if err := cw.Write(achievementRow(a)); err != nil {
			return fmt.Errorf("write achievement row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
