package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Jearnest94/extendo-reborn/internal/api"
	"github.com/Jearnest94/extendo-reborn/internal/constants"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
	"github.com/Jearnest94/extendo-reborn/internal/metrics"
)

// Aggregator is the slice of the aggregation service the handlers consume.
type Aggregator interface {
	AggregatePlayers(ctx context.Context, nicknames []string) []domain.PlayerResult
}

// RosterResolver is the slice of the roster service the handlers consume.
type RosterResolver interface {
	ResolveMatchRoster(ctx context.Context, matchID string) (*domain.MatchRoster, error)
}

// Server holds the JSON handlers the extension talks to.
type Server struct {
	aggregator Aggregator
	rosters    RosterResolver
	logger     zerolog.Logger
}

func New(aggregator Aggregator, rosters RosterResolver, logger zerolog.Logger) *Server {
	return &Server{
		aggregator: aggregator,
		rosters:    rosters,
		logger:     logger,
	}
}

// Routes assembles the served mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /players", s.instrument("/players", s.handlePlayers))
	mux.Handle("GET /matches/{id}/players", s.instrument("/matches/{id}/players", s.handleRoster))
	mux.Handle("GET /health", s.instrument("/health", s.handleHealth))
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

type playersRequest struct {
	Nicknames []string `json:"nicknames"`
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	var req playersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Nicknames) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No nicknames provided"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	results := s.aggregator.AggregatePlayers(ctx, req.Nicknames)
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	if matchID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No match id provided"})
		return
	}

	roster, err := s.rosters.ResolveMatchRoster(r.Context(), matchID)
	if err != nil {
		status := http.StatusBadRequest
		if api.IsAuthError(err) {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// instrument records the request counter and latency histogram for one route.
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
