package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwaldman/huntboard/internal/model"
)

type SectionStore struct {
	db *sql.DB
}

func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

func scanSection(scanner interface{ Scan(...any) error }) (*model.StudySection, error) {
	var s model.StudySection
	var completed int
	var dateCompleted sql.NullTime

	err := scanner.Scan(&s.ID, &s.Name, &s.Description, &completed, &dateCompleted, &s.OrderNum)
	if err != nil {
		return nil, err
	}

	s.Completed = completed != 0
	if dateCompleted.Valid {
		s.DateCompleted = &dateCompleted.Time
	}
	return &s, nil
}

const sectionCols = `id, name, description, completed, date_completed, order_num`

func (s *SectionStore) List() ([]model.StudySection, error) {
	rows, err := s.db.Query(`SELECT ` + sectionCols + ` FROM study_sections ORDER BY order_num ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var sections []model.StudySection
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, *sec)
	}
	return sections, rows.Err()
}

func (s *SectionStore) GetByID(id string) (*model.StudySection, error) {
	row := s.db.QueryRow(`SELECT `+sectionCols+` FROM study_sections WHERE id = ?`, id)
	sec, err := scanSection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get section: %w", err)
	}
	return sec, nil
}

// Create inserts a section together with its paired SECTION achievement.
// The achievement id is always "complete_" + section id.
func (s *SectionStore) Create(name, description string, orderNum int) (*model.StudySection, error) {
	id := "section_" + uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO study_sections (id, name, description, order_num) VALUES (?, ?, ?, ?)`,
		id, name, description, orderNum,
	)
	if err != nil {
		return nil, fmt.Errorf("insert section: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO achievements (id, type, name, description, threshold, icon) VALUES (?, ?, ?, ?, 1, ?)`,
		"complete_"+id, string(model.AchievementSection),
		"Mastered: "+name, "Complete the "+name+" section of the study manual", "📚",
	)
	if err != nil {
		return nil, fmt.Errorf("insert section achievement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.GetByID(id)
}

// Rename updates a section's name and description along with its paired
// achievement so the two never drift apart.
func (s *SectionStore) Rename(id, name, description string) (*model.StudySection, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE study_sections SET name = ?, description = ? WHERE id = ?`,
		name, description, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE achievements SET name = ?, description = ? WHERE id = ?`,
		"Mastered: "+name, "Complete the "+name+" section of the study manual", "complete_"+id,
	)
	if err != nil {
		return nil, fmt.Errorf("update section achievement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a section and its paired achievement. The achievement's
// unlock record, if any, goes with it via the foreign key cascade.
func (s *SectionStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM study_sections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM achievements WHERE id = ?`, "complete_"+id); err != nil {
		return fmt.Errorf("delete section achievement: %w", err)
	}

	return tx.Commit()
}

// Complete marks the section completed and unlocks its paired achievement in
// one transaction, so a crash cannot leave the two out of step. Reports
// whether the achievement was newly unlocked.
func (s *SectionStore) Complete(id string, now time.Time) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE study_sections SET completed = 1, date_completed = ? WHERE id = ?`,
		now.UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("complete section: %w", err)
	}

	result, err := tx.Exec(
		`INSERT OR IGNORE INTO achievement_unlocks (achievement_id, date_unlocked) VALUES (?, ?)`,
		"complete_"+id, now.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("unlock section achievement: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return inserted > 0, nil
}

// Incomplete clears the completed flag and date. The paired achievement stays
// unlocked: unlocks are monotonic.
func (s *SectionStore) Incomplete(id string) error {
	_, err := s.db.Exec(
		`UPDATE study_sections SET completed = 0, date_completed = NULL WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark section incomplete: %w", err)
	}
	return nil
}
