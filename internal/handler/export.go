package handler

import (
	"log/slog"
	"net/http"

	"github.com/mwaldman/huntboard/internal/export"
	"github.com/mwaldman/huntboard/internal/store"
)

type ExportHandler struct {
	jobStore         *store.JobStore
	studyStore       *store.StudyStore
	sectionStore     *store.SectionStore
	achievementStore *store.AchievementStore
	logger           *slog.Logger
}

func NewExportHandler(js *store.JobStore, ss *store.StudyStore, secs *store.SectionStore, as *store.AchievementStore, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{jobStore: js, studyStore: ss, sectionStore: secs, achievementStore: as, logger: logger}
}

// Download serves one of the export files by name: jobs.csv, study_log.csv,
// sections.csv, achievements.csv, or workbook.xlsx.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")

	data, err := h.collect()
	if err != nil {
		h.logger.Error("failed to collect export data", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to export"})
		return
	}

	switch file {
	case "jobs.csv":
		h.serveCSV(w, file, func() error { return export.WriteJobsCSV(w, data.Jobs) })
	case "study_log.csv":
		h.serveCSV(w, file, func() error { return export.WriteStudyLogCSV(w, data.StudyLog) })
	case "sections.csv":
		h.serveCSV(w, file, func() error { return export.WriteSectionsCSV(w, data.Sections) })
	case "achievements.csv":
		h.serveCSV(w, file, func() error { return export.WriteAchievementsCSV(w, data.Achievements) })
	case "workbook.xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="huntboard.xlsx"`)
		if err := export.WriteWorkbook(w, data); err != nil {
			h.logger.Error("failed to write workbook", "error", err)
		}
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown export file"})
	}
}

func (h *ExportHandler) serveCSV(w http.ResponseWriter, filename string, write func() error) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := write(); err != nil {
		h.logger.Error("failed to write csv export", "file", filename, "error", err)
	}
}

func (h *ExportHandler) collect() (export.Data, error) {
	var data export.Data

	jobs, err := h.jobStore.List()
	if err != nil {
		return data, err
	}
	entries, err := h.studyStore.ListEntries()
	if err != nil {
		return data, err
	}
	sections, err := h.sectionStore.List()
	if err != nil {
		return data, err
	}
	achievements, err := h.achievementStore.ListWithStatus()
	if err != nil {
		return data, err
	}

	data.Jobs = jobs
	data.StudyLog = entries
	data.Sections = sections
	data.Achievements = achievements
	return data, nil
}
