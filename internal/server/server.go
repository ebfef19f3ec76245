// Package server exposes the organizer over HTTP: document analysis with
// folder suggestion, the confirmed upload, raw folder scans, and cache
// control. Request and response bodies use the camelCase field names the
// web client already speaks.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ptiller/driveorg/internal/config"
	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/history"
	"github.com/ptiller/driveorg/internal/logger"
	"github.com/ptiller/driveorg/internal/organizer"
)

// Recorder persists upload records. *history.Manager implements it; tests
// use a stub and a nil Recorder disables history entirely.
type Recorder interface {
	SaveUpload(record history.UploadRecord) error
}

// Server is the HTTP surface over the organizer.
type Server struct {
	org     *organizer.Organizer
	hist    Recorder
	cfg     config.ServerConfig
	scanCfg config.ScanConfig
	log     logger.Logger
	router  chi.Router
}

// New assembles the router. A nil Recorder skips history persistence.
func New(org *organizer.Organizer, hist Recorder, cfg config.ServerConfig, scanCfg config.ScanConfig) *Server {
	s := &Server{
		org:     org,
		hist:    hist,
		cfg:     cfg,
		scanCfg: scanCfg,
		log:     logger.Get(),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(requestID)
	r.Use(s.cors)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/process-document", s.handleProcessDocument)
		r.Post("/upload-document", s.handleUploadDocument)
		r.Get("/folders", s.handleFolders)
		r.Delete("/cache", s.handleClearCache)
	})

	s.router = r
	return s
}

// Handler returns the assembled http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error to an HTTP status and a FastAPI-style
// detail body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrCredential):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrMalformedPath):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRemoteUnavailable):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func badRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"detail": detail})
}
