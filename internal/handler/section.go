package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mwaldman/huntboard/internal/achievement"
	"github.com/mwaldman/huntboard/internal/model"
	"github.com/mwaldman/huntboard/internal/store"
)

type SectionHandler struct {
	sectionStore *store.SectionStore
	engine       *achievement.Engine
	logger       *slog.Logger
}

func NewSectionHandler(ss *store.SectionStore, engine *achievement.Engine, logger *slog.Logger) *SectionHandler {
	return &SectionHandler{sectionStore: ss, engine: engine, logger: logger}
}

func (h *SectionHandler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sectionStore.List()
	if err != nil {
		h.logger.Error("failed to list sections", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list sections"})
		return
	}
	if sections == nil {
		sections = []model.StudySection{}
	}
	writeJSON(w, http.StatusOK, sections)
}

type sectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderNum    int    `json:"order_num"`
}

func (h *SectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	section, err := h.sectionStore.Create(req.Name, req.Description, req.OrderNum)
	if err != nil {
		h.logger.Error("failed to create section", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create section"})
		return
	}

	writeJSON(w, http.StatusCreated, section)
}

func (h *SectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.sectionStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get section"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "section not found"})
		return
	}

	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	section, err := h.sectionStore.Rename(id, req.Name, req.Description)
	if err != nil {
		h.logger.Error("failed to update section", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update section"})
		return
	}

	writeJSON(w, http.StatusOK, section)
}

func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.sectionStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get section"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "section not found"})
		return
	}

	if err := h.sectionStore.Delete(id); err != nil {
		h.logger.Error("failed to delete section", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete section"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete marks a section finished. The response carries the paired
// achievement when this completion unlocked it.
func (h *SectionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.sectionStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get section"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "section not found"})
		return
	}

	unlocked, err := h.engine.CompleteSection(id, time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to complete section", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to complete section"})
		return
	}

	section, err := h.sectionStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get section"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"section":        section,
		"newly_unlocked": unlocked,
	})
}

func (h *SectionHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.sectionStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get section"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "section not found"})
		return
	}

	if err := h.engine.IncompleteSection(id); err != nil {
		h.logger.Error("failed to mark section incomplete", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to mark section incomplete"})
		return
	}

	section, err := h.sectionStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get section"})
		return
	}

	writeJSON(w, http.StatusOK, section)
}
