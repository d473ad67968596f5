package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mwaldman/huntboard/internal/achievement"
	"github.com/mwaldman/huntboard/internal/config"
	"github.com/mwaldman/huntboard/internal/handler"
	"github.com/mwaldman/huntboard/internal/middleware"
	"github.com/mwaldman/huntboard/internal/store"
)

type Server struct {
	db           *sql.DB
	cfg          *config.Config
	jobH         *handler.JobHandler
	studyH       *handler.StudyHandler
	sectionH     *handler.SectionHandler
	achievementH *handler.AchievementHandler
	dashboardH   *handler.DashboardHandler
	exportH      *handler.ExportHandler
	settingsH    *handler.SettingsHandler
	resetH       *handler.ResetHandler
	logger       *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	jobStore := store.NewJobStore(db)
	studyStore := store.NewStudyStore(db)
	sectionStore := store.NewSectionStore(db)
	achievementStore := store.NewAchievementStore(db)
	settingsStore := store.NewSettingsStore(db)

	engine := achievement.NewEngine(achievementStore, sectionStore, logger.With("component", "achievement"))
	studyH := handler.NewStudyHandler(studyStore, settingsStore, engine, cfg.StudyTracking, logger.With("component", "study"))

	return &Server{
		db:           db,
		cfg:          cfg,
		jobH:         handler.NewJobHandler(jobStore, logger.With("component", "job")),
		studyH:       studyH,
		sectionH:     handler.NewSectionHandler(sectionStore, engine, logger.With("component", "section")),
		achievementH: handler.NewAchievementHandler(achievementStore, logger.With("component", "achievement_handler")),
		dashboardH:   handler.NewDashboardHandler(jobStore, studyH, cfg.JobTracking.WeeklyGoal, logger.With("component", "dashboard")),
		exportH:      handler.NewExportHandler(jobStore, studyStore, sectionStore, achievementStore, logger.With("component", "export")),
		settingsH:    handler.NewSettingsHandler(settingsStore, logger.With("component", "settings")),
		resetH:       handler.NewResetHandler(jobStore, studyStore, logger.With("component", "reset")),
		logger:       logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/statuses", s.statusesHandler)

	// Job API routes
	mux.HandleFunc("POST /api/jobs", s.jobH.Create)
	mux.HandleFunc("GET /api/jobs", s.jobH.List)
	mux.HandleFunc("GET /api/jobs/{id}", s.jobH.Get)
	mux.HandleFunc("PUT /api/jobs/{id}", s.jobH.Update)
	mux.HandleFunc("DELETE /api/jobs/{id}", s.jobH.Delete)
	mux.HandleFunc("GET /api/jobs/{id}/history", s.jobH.History)
	mux.HandleFunc("POST /api/jobs/{id}/history/import", s.jobH.ImportHistory)

	// Study API routes
	mux.HandleFunc("POST /api/study/log", s.studyH.LogTime)
	mux.HandleFunc("GET /api/study/log", s.studyH.ListEntries)
	mux.HandleFunc("GET /api/study/stats", s.studyH.Stats)

	// Section API routes
	mux.HandleFunc("GET /api/sections", s.sectionH.List)
	mux.HandleFunc("POST /api/sections", s.sectionH.Create)
	mux.HandleFunc("PUT /api/sections/{id}", s.sectionH.Update)
	mux.HandleFunc("DELETE /api/sections/{id}", s.sectionH.Delete)
	mux.HandleFunc("POST /api/sections/{id}/complete", s.sectionH.Complete)
	mux.HandleFunc("POST /api/sections/{id}/incomplete", s.sectionH.Incomplete)

	// Achievement API routes
	mux.HandleFunc("GET /api/achievements", s.achievementH.List)
	mux.HandleFunc("GET /api/achievements/unlocked", s.achievementH.ListUnlocked)

	// Dashboard + export
	mux.HandleFunc("GET /api/dashboard", s.dashboardH.Get)
	mux.HandleFunc("GET /api/export/{file}", s.exportH.Download)

	// Settings + resets
	mux.HandleFunc("GET /api/settings/study", s.settingsH.GetStudy)
	mux.HandleFunc("PUT /api/settings/study", s.settingsH.UpdateStudy)
	mux.HandleFunc("POST /api/reset/jobs", s.resetH.ResetJobs)
	mux.HandleFunc("POST /api/reset/study", s.resetH.ResetStudy)
	mux.HandleFunc("POST /api/reset/all", s.resetH.ResetAll)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) statusesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"statuses": s.cfg.JobTracking.Statuses})
}
