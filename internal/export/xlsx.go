package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SheetJobs         = "Jobs"
	SheetStudyLog     = "Study Log"
	SheetSections     = "Study Sections"
	SheetAchievements = "Achievements"
)

// WriteWorkbook writes the whole snapshot as a single XLSX workbook with one
// sheet per table.
func WriteWorkbook(w io.Writer, data Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetJobs); err != nil {
		return fmt.Errorf("rename jobs sheet: %w", err)
	}

	jobRows := [][]string{jobsHeader}
	for _, j := range data.Jobs {
		jobRows = append(jobRows, jobRow(j))
	}
	if err := writeSheet(f, SheetJobs, jobRows); err != nil {
		return err
	}

	logRows := [][]string{studyLogHeader}
	for _, e := range data.StudyLog {
		logRows = append(logRows, studyLogRow(e))
	}
	if err := addSheet(f, SheetStudyLog, logRows); err != nil {
		return err
	}

	sectionRows := [][]string{sectionsHeader}
	for _, s := range data.Sections {
		sectionRows = append(sectionRows, sectionRow(s))
	}
	if err := addSheet(f, SheetSections, sectionRows); err != nil {
		return err
	}

	achievementRows := [][]string{achievementsHeader}
	for _, a := range data.Achievements {
		achievementRows = append(achievementRows, achievementRow(a))
	}
	if err := addSheet(f, SheetAchievements, achievementRows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	return writeSheet(f, name, rows)
}

func writeSheet(f *excelize.File, name string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for sheet %s row %d: %w", name, i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("write sheet %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}
