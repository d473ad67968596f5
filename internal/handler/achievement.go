package handler

import (
	"log/slog"
	"net/http"

	"github.com/mwaldman/huntboard/internal/model"
	"github.com/mwaldman/huntboard/internal/store"
)

type AchievementHandler struct {
	achievementStore *store.AchievementStore
	logger           *slog.Logger
}

func NewAchievementHandler(as *store.AchievementStore, logger *slog.Logger) *AchievementHandler {
	return &AchievementHandler{achievementStore: as, logger: logger}
}

func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.achievementStore.ListWithStatus()
	if err != nil {
		h.logger.Error("failed to list achievements", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list achievements"})
		return
	}
	if achievements == nil {
		achievements = []model.AchievementStatus{}
	}
	writeJSON(w, http.StatusOK, achievements)
}

func (h *AchievementHandler) ListUnlocked(w http.ResponseWriter, r *http.Request) {
	unlocked, err := h.achievementStore.ListUnlocked()
	if err != nil {
		h.logger.Error("failed to list unlocked achievements", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list achievements"})
		return
	}
	if unlocked == nil {
		unlocked = []model.AchievementStatus{}
	}
	writeJSON(w, http.StatusOK, unlocked)
}
