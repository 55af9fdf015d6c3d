package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"life-os/internal/database"
	"life-os/internal/pillars"
	"life-os/internal/services"
)

const maxBodyBytes = 1 << 16

// Server exposes the tracker as JSON over HTTP for the offline web client.
type Server struct {
	services *services.ServiceManager
	logger   *zap.Logger
}

func NewServer(sm *services.ServiceManager, logger *zap.Logger) *Server {
	return &Server{services: sm, logger: logger.Named("api")}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	mux.HandleFunc("GET /api/pillars/{date}", s.handleGetPillars)
	mux.HandleFunc("PUT /api/pillars/{date}/{pillar}", s.handleSetPillar)
	mux.HandleFunc("GET /api/logs/{date}", s.handleGetLog)
	mux.HandleFunc("PUT /api/logs/{date}", s.handlePutLog)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/export", s.handleExport)
	return mux
}

// HTTPServer builds an http.Server listening on port.
func (s *Server) HTTPServer(port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) date(w http.ResponseWriter, raw string) (time.Time, bool) {
	t, err := s.services.Calendar.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", raw))
		return time.Time{}, false
	}
	return t, true
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, msg)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	t, ok := s.date(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.services.Calendar.Info(t))
}

func (s *Server) handleGetPillars(w http.ResponseWriter, r *http.Request) {
	t, ok := s.date(w, r.PathValue("date"))
	if !ok {
		return
	}
	state, err := s.services.Pillars.Get(r.Context(), s.services.Calendar.Key(t))
	if err != nil {
		s.internalError(w, "load pillars", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type pillarUpdate struct {
	Completed *bool `json:"completed"`
}

func (s *Server) handleSetPillar(w http.ResponseWriter, r *http.Request) {
	t, ok := s.date(w, r.PathValue("date"))
	if !ok {
		return
	}

	var body pillarUpdate
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Completed == nil {
		writeError(w, http.StatusBadRequest, "completed is required")
		return
	}

	state, err := s.services.Pillars.Set(r.Context(), s.services.Calendar.Key(t), pillars.Pillar(r.PathValue("pillar")), *body.Completed)
	if errors.Is(err, pillars.ErrUnknownPillar) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "save pillar", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	t, ok := s.date(w, r.PathValue("date"))
	if !ok {
		return
	}
	log, err := s.services.Logs.Get(r.Context(), t)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no log for "+s.services.Calendar.Key(t))
		return
	}
	if err != nil {
		s.internalError(w, "load log", err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handlePutLog(w http.ResponseWriter, r *http.Request) {
	t, ok := s.date(w, r.PathValue("date"))
	if !ok {
		return
	}

	var entry services.LogEntry
	if !decodeJSON(w, r, &entry) {
		return
	}
	if !database.ValidSleepHours(entry.SleepHours) {
		writeError(w, http.StatusBadRequest, "sleep_hours must be between 0 and 24")
		return
	}

	log, err := s.services.Logs.Record(r.Context(), t, entry)
	if err != nil {
		s.internalError(w, "save log", err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	t, ok := s.date(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	report, err := s.services.Summary.Weekly(r.Context(), t)
	if err != nil {
		s.internalError(w, "weekly summary", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	t, ok := s.date(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	md, err := s.services.Export.Preview(r.Context(), t)
	if err != nil {
		s.internalError(w, "render export", err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
