package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwaldman/huntboard/internal/achievement"
	"github.com/mwaldman/huntboard/internal/config"
	"github.com/mwaldman/huntboard/internal/model"
	"github.com/mwaldman/huntboard/internal/progress"
	"github.com/mwaldman/huntboard/internal/store"
)

type StudyHandler struct {
	studyStore    *store.StudyStore
	settingsStore *store.SettingsStore
	engine        *achievement.Engine
	cfg           config.StudyTrackingConfig
	logger        *slog.Logger
}

func NewStudyHandler(ss *store.StudyStore, sets *store.SettingsStore, engine *achievement.Engine, cfg config.StudyTrackingConfig, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{studyStore: ss, settingsStore: sets, engine: engine, cfg: cfg, logger: logger}
}

type studyLogRequest struct {
	Date     string `json:"date"`
	Duration int    `json:"duration_minutes"`
	Notes    string `json:"notes"`
}

func (h *StudyHandler) LogTime(w http.ResponseWriter, r *http.Request) {
	var req studyLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Duration <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "duration_minutes must be > 0"})
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		d, err := time.Parse(dateParamLayout, req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = d
	}

	entry, err := h.studyStore.LogTime(date, req.Duration, req.Notes)
	if err != nil {
		h.logger.Error("failed to log study time", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log study time"})
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *StudyHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.studyStore.ListEntries()
	if err != nil {
		h.logger.Error("failed to list study entries", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list study entries"})
		return
	}
	if entries == nil {
		entries = []model.StudyLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Stats computes the study metrics and runs the achievement check against
// them, so a threshold crossed by the latest log unlocks on the next read.
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ComputeStats(time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to compute study stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute stats"})
		return
	}

	newly, err := h.engine.CheckAndUnlock(stats, time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to check achievements", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check achievements"})
		return
	}
	if newly == nil {
		newly = []model.Achievement{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":          stats,
		"newly_unlocked": newly,
	})
}

// ComputeStats derives the study metrics for "today", layering persisted
// setting overrides on top of the file configuration.
func (h *StudyHandler) ComputeStats(today time.Time) (model.StudyStats, error) {
	entries, err := h.studyStore.ListEntries()
	if err != nil {
		return model.StudyStats{}, err
	}

	opts := progress.Options{
		TotalTargetHours:    h.cfg.TotalTargetHours,
		DailyTargetOverride: h.cfg.DailyTargetMinutes,
	}
	if d, ok := h.cfg.TestDay(); ok {
		opts.TestDate = d
		opts.HasTestDate = true
	}

	if d, ok, err := h.settingsStore.GetTestDate(); err == nil && ok {
		opts.TestDate = d
		opts.HasTestDate = true
	}
	if n, ok, err := h.settingsStore.GetDailyTargetMinutes(); err == nil && ok {
		opts.DailyTargetOverride = n
	}

	return progress.Stats(entries, today, opts), nil
}
