package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mwaldman/huntboard/internal/history"
	"github.com/mwaldman/huntboard/internal/model"
	"github.com/mwaldman/huntboard/internal/store"
)

const dateParamLayout = "2006-01-02"

type JobHandler struct {
	jobStore *store.JobStore
	logger   *slog.Logger
}

func NewJobHandler(js *store.JobStore, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobStore: js, logger: logger}
}

type jobCreateRequest struct {
	Company         string  `json:"company"`
	Position        string  `json:"position"`
	DateApplied     string  `json:"date_applied"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`
	ResumePath      *string `json:"resume_path"`
	CoverLetterPath *string `json:"cover_letter_path"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jobCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Company = strings.TrimSpace(req.Company)
	req.Position = strings.TrimSpace(req.Position)
	if req.Company == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "company is required"})
		return
	}
	if req.Position == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "position is required"})
		return
	}

	now := time.Now().UTC()
	dateApplied := now
	if req.DateApplied != "" {
		d, err := time.Parse(dateParamLayout, req.DateApplied)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date_applied must be YYYY-MM-DD"})
			return
		}
		dateApplied = d
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "Applied"
	}

	job, err := h.jobStore.Create(req.Company, req.Position, dateApplied, status, req.Notes, req.ResumePath, req.CoverLetterPath, now)
	if err != nil {
		h.logger.Error("failed to create job", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create job"})
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobStore.List()
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list jobs"})
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	job, err := h.jobStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get job"})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type jobUpdateRequest struct {
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
	ResumePath      *string `json:"resume_path"`
	CoverLetterPath *string `json:"cover_letter_path"`
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req jobUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Status != nil && strings.TrimSpace(*req.Status) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must not be blank"})
		return
	}

	job, err := h.jobStore.Update(id, store.JobUpdate{
		Status:          req.Status,
		Notes:           req.Notes,
		ResumePath:      req.ResumePath,
		CoverLetterPath: req.CoverLetterPath,
	}, time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to update job", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update job"})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	job, err := h.jobStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get job"})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	if err := h.jobStore.Delete(id); err != nil {
		h.logger.Error("failed to delete job", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete job"})
		return
	}

	// The database row owns the attachment paths; remove the files with it.
	h.removeAttachment(job.ResumePath)
	h.removeAttachment(job.CoverLetterPath)

	w.WriteHeader(http.StatusNoContent)
}

func (h *JobHandler) removeAttachment(path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := os.Remove(*path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("failed to remove attachment", "path", *path, "error", err)
	}
}

// History returns a job's status transitions plus the combined notes in the
// legacy marker format that older exports embedded in the notes field.
func (h *JobHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	job, err := h.jobStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get job"})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	transitions, err := h.jobStore.ListTransitions(id)
	if err != nil {
		h.logger.Error("failed to list transitions", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get history"})
		return
	}
	if transitions == nil {
		transitions = []model.StatusTransition{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transitions":     transitions,
		"formatted_notes": history.FormatNotes(job.Notes, transitions),
	})
}

// ImportHistory parses marker-formatted notes from an older export and
// appends the recovered transitions to the job's structured history.
func (h *JobHandler) ImportHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	job, err := h.jobStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get job"})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	parsed := history.ParseLegacy(req.Notes)
	imported := make([]model.StatusTransition, 0, len(parsed))
	for _, t := range parsed {
		saved, err := h.jobStore.AppendTransition(id, t.FromStatus, t.ToStatus, t.ChangedAt)
		if err != nil {
			h.logger.Error("failed to import transition", "id", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to import history"})
			return
		}
		imported = append(imported, *saved)
	}

	writeJSON(w, http.StatusOK, map[string]any{"imported": imported})
}
