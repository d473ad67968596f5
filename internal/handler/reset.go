package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mwaldman/huntboard/internal/store"
)

// ResetHandler implements the settings-page bulk resets. Achievement unlocks
// earned from study time are cleared with the study log they derive from;
// section state is untouched by a jobs reset and vice versa.
type ResetHandler struct {
	jobStore   *store.JobStore
	studyStore *store.StudyStore
	logger     *slog.Logger
}

func NewResetHandler(js *store.JobStore, ss *store.StudyStore, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{jobStore: js, studyStore: ss, logger: logger}
}

func (h *ResetHandler) ResetJobs(w http.ResponseWriter, r *http.Request) {
	if !h.resetJobs(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "jobs reset"})
}

func (h *ResetHandler) ResetStudy(w http.ResponseWriter, r *http.Request) {
	if err := h.studyStore.Reset(); err != nil {
		h.logger.Error("failed to reset study log", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset study data"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "study data reset"})
}

func (h *ResetHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if !h.resetJobs(w) {
		return
	}
	if err := h.studyStore.Reset(); err != nil {
		h.logger.Error("failed to reset study log", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset study data"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "all data reset"})
}

func (h *ResetHandler) resetJobs(w http.ResponseWriter) bool {
	jobs, err := h.jobStore.List()
	if err != nil {
		h.logger.Error("failed to list jobs for reset", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset jobs"})
		return false
	}

	if err := h.jobStore.Reset(); err != nil {
		h.logger.Error("failed to reset jobs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset jobs"})
		return false
	}

	for _, j := range jobs {
		h.removeFile(j.ResumePath)
		h.removeFile(j.CoverLetterPath)
	}
	return true
}

func (h *ResetHandler) removeFile(path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := os.Remove(*path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("failed to remove attachment", "path", *path, "error", err)
	}
}
