package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mwaldman/huntboard/internal/progress"
	"github.com/mwaldman/huntboard/internal/store"
)

// DashboardHandler aggregates the application and study metrics into the
// single payload the dashboard renders from.
type DashboardHandler struct {
	jobStore   *store.JobStore
	study      *StudyHandler
	weeklyGoal int
	logger     *slog.Logger
}

func NewDashboardHandler(js *store.JobStore, study *StudyHandler, weeklyGoal int, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{jobStore: js, study: study, weeklyGoal: weeklyGoal, logger: logger}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC()

	jobs, err := h.jobStore.List()
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load dashboard"})
		return
	}
	transitions, err := h.jobStore.ListAllTransitions()
	if err != nil {
		h.logger.Error("failed to list transitions", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load dashboard"})
		return
	}

	jobStats := progress.JobStats(jobs, transitions, today)

	studyStats, err := h.study.ComputeStats(today)
	if err != nil {
		h.logger.Error("failed to compute study stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load dashboard"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"job_stats":       jobStats,
		"study_stats":     studyStats,
		"weekly_goal":     h.weeklyGoal,
		"weekly_goal_met": jobStats.AppliedThisWeek >= h.weeklyGoal,
	})
}
