// Package web serves the flight board as JSON over HTTP.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"torn_flight_board/internal/domain/travel"
	"torn_flight_board/internal/processing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// ErrorDetail is the body of a failed request
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail the way every error is returned
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse reports liveness and when flight logs were last fetched
type HealthResponse struct {
	Status      string    `json:"status"`
	LastFetched time.Time `json:"last_fetched,omitzero"`
}

// Server holds the HTTP handlers
type Server struct {
	viewer processing.BoardViewer
	now    func() time.Time
}

// NewServer creates handlers reading from viewer
func NewServer(viewer processing.BoardViewer) *Server {
	return &Server{
		viewer: viewer,
		now:    time.Now,
	}
}

// NewRouter builds the chi router with middleware and routes
func NewRouter(s *Server, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(allowedOrigins))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/board", s.handleBoard)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/destinations", s.handleDestinations)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		LastFetched: s.viewer.LastFetched(),
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.viewer.Board(s.now()))
}

// handleRefresh fetches immediately and returns the new board
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.viewer.Refresh(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error: ErrorDetail{Code: "upstream_error", Message: err.Error()},
		})
		return
	}
	writeJSON(w, http.StatusOK, s.viewer.Board(s.now()))
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, travel.Destinations())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}
