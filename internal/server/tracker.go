package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/database"
	"brawl-tracker/internal/domain/value"
	"brawl-tracker/internal/metrics"
	"brawl-tracker/internal/service"

	"github.com/rs/zerolog"
)

type TrackerServer struct {
	playerSvc *service.PlayerService
	battleSvc *service.BattleService
	metrics   *metrics.Metrics
	db        *sql.DB
	logger    zerolog.Logger
}

func NewTrackerServer(playerSvc *service.PlayerService, battleSvc *service.BattleService, m *metrics.Metrics, db *sql.DB, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{playerSvc: playerSvc, battleSvc: battleSvc, metrics: m, db: db, logger: logger}
}

// Handler routes every tracker endpoint.
func (s *TrackerServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /players/{tag}", s.GetPlayer)
	mux.HandleFunc("GET /players/{tag}/battles", s.GetBattles)
	mux.HandleFunc("GET /players/{tag}/battles/summary", s.GetSummary)
	mux.HandleFunc("GET /players/{tag}/history", s.GetHistory)
	mux.HandleFunc("GET /battles/summary", s.GetSummaries)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /healthz", s.Health)
	return mux
}

func (s *TrackerServer) Health(w http.ResponseWriter, r *http.Request) {
	if err := database.Ping(r.Context(), s.db); err != nil {
		s.logger.Error().Err(err).Msg("database unreachable")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *TrackerServer) GetPlayer(w http.ResponseWriter, r *http.Request) {
	tag, err := value.NewPlayerTag(r.PathValue("tag"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	player, err := s.playerSvc.Profile(r.Context(), tag, refreshRequested(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerResponse(player))
}

func (s *TrackerServer) GetBattles(w http.ResponseWriter, r *http.Request) {
	tag, err := value.NewPlayerTag(r.PathValue("tag"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	log, err := s.battleSvc.BattleLog(r.Context(), tag, refreshRequested(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBattleLogResponse(log, s.battleSvc.Policy()))
}

func (s *TrackerServer) GetSummary(w http.ResponseWriter, r *http.Request) {
	tag, err := value.NewPlayerTag(r.PathValue("tag"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sum, err := s.battleSvc.Summary(r.Context(), tag)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(*sum))
}

func (s *TrackerServer) GetHistory(w http.ResponseWriter, r *http.Request) {
	tag, err := value.NewPlayerTag(r.PathValue("tag"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
	}

	stored, err := s.battleSvc.Recent(r.Context(), tag, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]storedBattleResponse, 0, len(stored))
	for _, b := range stored {
		resp = append(resp, toStoredBattleResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSummaries answers /battles/summary?tag=A&tag=B.
func (s *TrackerServer) GetSummaries(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query()["tag"]
	if len(raw) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at least one tag is required"})
		return
	}

	tags := make([]value.PlayerTag, 0, len(raw))
	for _, t := range raw {
		tag, err := value.NewPlayerTag(t)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		tags = append(tags, tag)
	}

	sums, err := s.battleSvc.SummaryForMany(r.Context(), tags)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]summaryResponse, 0, len(sums))
	for _, sum := range sums {
		resp = append(resp, toSummaryResponse(sum))
	}
	writeJSON(w, http.StatusOK, resp)
}

func refreshRequested(r *http.Request) bool {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return refresh
}

func statusFor(err error) int {
	var apiErr *api.Error
	switch {
	case errors.Is(err, value.ErrInvalidValue), errors.Is(err, service.ErrTooManyTags):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = &s.logger
	}
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }
