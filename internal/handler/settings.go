package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwaldman/huntboard/internal/store"
)

// SettingsHandler exposes the persisted study-plan overrides. Values set here
// take precedence over the file configuration until cleared.
type SettingsHandler struct {
	settingsStore *store.SettingsStore
	logger        *slog.Logger
}

func NewSettingsHandler(ss *store.SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settingsStore: ss, logger: logger}
}

type studySettings struct {
	TestDate           string `json:"test_date"`
	DailyTargetMinutes int    `json:"daily_target_minutes"`
}

func (h *SettingsHandler) GetStudy(w http.ResponseWriter, r *http.Request) {
	var out studySettings

	if d, ok, err := h.settingsStore.GetTestDate(); err != nil {
		h.logger.Error("failed to get test date", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get settings"})
		return
	} else if ok {
		out.TestDate = d.Format(dateParamLayout)
	}

	if n, ok, err := h.settingsStore.GetDailyTargetMinutes(); err != nil {
		h.logger.Error("failed to get daily target", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get settings"})
		return
	} else if ok {
		out.DailyTargetMinutes = n
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *SettingsHandler) UpdateStudy(w http.ResponseWriter, r *http.Request) {
	var req studySettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.DailyTargetMinutes < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "daily_target_minutes must be >= 0"})
		return
	}

	if req.TestDate == "" {
		if err := h.settingsStore.Delete(store.SettingTestDate); err != nil {
			h.logger.Error("failed to clear test date", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save settings"})
			return
		}
	} else {
		d, err := time.Parse(dateParamLayout, req.TestDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "test_date must be YYYY-MM-DD"})
			return
		}
		if err := h.settingsStore.SetTestDate(d); err != nil {
			h.logger.Error("failed to set test date", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save settings"})
			return
		}
	}

	if req.DailyTargetMinutes == 0 {
		if err := h.settingsStore.Delete(store.SettingDailyTargetMinutes); err != nil {
			h.logger.Error("failed to clear daily target", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save settings"})
			return
		}
	} else {
		if err := h.settingsStore.SetDailyTargetMinutes(req.DailyTargetMinutes); err != nil {
			h.logger.Error("failed to set daily target", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save settings"})
			return
		}
	}

	h.GetStudy(w, r)
}
