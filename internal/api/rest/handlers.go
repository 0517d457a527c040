package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/hardwood/internal/cache"
	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/store/repository"
)

// cacheTTL bounds staleness of cached query responses.
const cacheTTL = 60 * time.Second

// SeasonRowsQuerier is the joined stat+roster read query.
type SeasonRowsQuerier interface {
	QuerySeasonRows(ctx context.Context, filter repository.SeasonRowsFilter) ([]*store.PlayerSeasonRow, error)
}

// PlayerQuerier is the player lookup surface.
type PlayerQuerier interface {
	GetByName(ctx context.Context, name string) (*store.Player, error)
	Search(ctx context.Context, name string) ([]*store.Player, error)
}

// ConferenceQuerier is the conference lookup surface.
type ConferenceQuerier interface {
	GetByKey(ctx context.Context, key string) (*store.Conference, error)
}

// TeamQuerier lists teams by conference.
type TeamQuerier interface {
	GetByConference(ctx context.Context, conferenceKey string) ([]*store.Team, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db          *store.Database
	stats       SeasonRowsQuerier
	players     PlayerQuerier
	conferences ConferenceQuerier
	teams       TeamQuerier
	queryCache  *cache.RedisCache
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, queryCache *cache.RedisCache) *Handler {
	return &Handler{
		db:          db,
		stats:       repository.NewStatsRepository(db),
		players:     repository.NewPlayerRepository(db),
		conferences: repository.NewConferenceRepository(db),
		teams:       repository.NewTeamRepository(db),
		queryCache:  queryCache,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			status = "degraded"
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"service": "hardwood",
	})
}

// GetSeasonPlayers returns joined stat+roster rows for a conference/season,
// optionally filtered by team slug and player-name substring, ordered by
// team then player name.
func (h *Handler) GetSeasonPlayers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season year", err)
		return
	}

	filter := repository.SeasonRowsFilter{
		ConferenceKey: vars["key"],
		SeasonEndYear: year,
		TeamSlug:      r.URL.Query().Get("team"),
		NameContains:  r.URL.Query().Get("q"),
	}

	cacheKey := "seasonrows:" + r.URL.RequestURI()
	if h.queryCache != nil {
		if payload, ok := h.queryCache.GetBytes(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	rows, err := h.stats.QuerySeasonRows(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to query season rows", err)
		return
	}
	if rows == nil {
		rows = []*store.PlayerSeasonRow{}
	}

	response := map[string]interface{}{
		"conference_key":  filter.ConferenceKey,
		"season_end_year": filter.SeasonEndYear,
		"count":           len(rows),
		"players":         rows,
	}

	if h.queryCache != nil {
		if payload, err := json.Marshal(response); err == nil {
			h.queryCache.SetBytes(r.Context(), cacheKey, payload, cacheTTL)
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// GetConference returns one conference and its member teams.
func (h *Handler) GetConference(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	conf, err := h.conferences.GetByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Conference not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to query conference", err)
		return
	}

	teams, err := h.teams.GetByConference(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to query teams", err)
		return
	}
	if teams == nil {
		teams = []*store.Team{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"conference": conf,
		"teams":      teams,
		"team_count": len(teams),
	})
}

// SearchPlayers returns players whose name contains the query string.
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "Missing search query", nil)
		return
	}

	players, err := h.players.Search(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search players", err)
		return
	}
	if players == nil {
		players = []*store.Player{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   q,
		"count":   len(players),
		"players": players,
	})
}

// GetPlayer returns one player identity by exact name.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	player, err := h.players.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Player not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to query player", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
