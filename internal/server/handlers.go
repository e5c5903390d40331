package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmorales/seatscout/internal/listings"
	"github.com/jmorales/seatscout/internal/model"
	"github.com/jmorales/seatscout/internal/pricing"
	"github.com/jmorales/seatscout/internal/track"
	"github.com/jmorales/seatscout/internal/version"
)

// PriceSource serves aggregated game prices.
type PriceSource interface {
	GamePrices(ctx context.Context, gameID string, opts pricing.Options) (*listings.Result, error)
}

// CatalogSource serves reference data.
type CatalogSource interface {
	Categories(ctx context.Context) []model.Category
	Sources(ctx context.Context) []model.VendorSource
}

// HistorySource serves recorded price points.
type HistorySource interface {
	GamePoints(ctx context.Context, gameID string, limit int) ([]model.PricePoint, error)
}

// Handlers holds the API's dependencies.
type Handlers struct {
	prices  PriceSource
	catalog CatalogSource
	tracks  track.Store
	history HistorySource
	logger  *slog.Logger
	started time.Time
}

// NewHandlers creates the handler set. History may be nil when no
// database is configured.
func NewHandlers(prices PriceSource, catalog CatalogSource, tracks track.Store, history HistorySource, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		prices:  prices,
		catalog: catalog,
		tracks:  tracks,
		history: history,
		logger:  logger,
		started: time.Now(),
	}
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status handles GET /api/status.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"version": version.Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// GamePrices handles GET /api/v1/games/{gameID}/prices.
//
// Query parameters:
//
//	include_fees  "true"/"false", default true
//	sort          "asc" (default) or "desc"
//	sections      comma-separated exact section names
//	min_quantity  integer quantity hint, 0 disables the filter
func (h *Handlers) GamePrices(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		respondError(w, badRequest("gameID is required"))
		return
	}

	opts, err := priceOptionsFromQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}

	res, err := h.prices.GamePrices(r.Context(), gameID, opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func priceOptionsFromQuery(r *http.Request) (pricing.Options, error) {
	q := r.URL.Query()
	opts := pricing.Options{IncludeFees: true}

	if raw := q.Get("include_fees"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, badRequest("include_fees must be true or false")
		}
		opts.IncludeFees = v
	}

	switch q.Get("sort") {
	case "", "asc":
	case "desc":
		opts.SortDescending = true
	default:
		return opts, badRequest("sort must be asc or desc")
	}

	if raw := q.Get("sections"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				opts.SectionFilter = append(opts.SectionFilter, s)
			}
		}
	}

	if raw := q.Get("min_quantity"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return opts, badRequest("min_quantity must be a non-negative integer")
		}
		opts.MinQuantityHint = v
	}

	return opts, nil
}

// Categories handles GET /api/v1/catalog/categories.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Categories(r.Context()))
}

// Sources handles GET /api/v1/catalog/sources.
func (h *Handlers) Sources(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Sources(r.Context()))
}

type createTrackRequest struct {
	GameID      string `json:"game_id"`
	TargetCents int64  `json:"target_cents"`
	Label       string `json:"label"`
}

// CreateTrack handles POST /api/v1/tracks.
func (h *Handlers) CreateTrack(w http.ResponseWriter, r *http.Request) {
	var req createTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, badRequest("invalid JSON body"))
		return
	}
	if req.GameID == "" {
		respondError(w, badRequest("game_id is required"))
		return
	}
	if req.TargetCents < 0 {
		respondError(w, badRequest("target_cents must not be negative"))
		return
	}

	tg := track.NewTrackedGame(req.GameID, req.TargetCents, req.Label, time.Now().UnixMicro())
	if err := h.tracks.Create(r.Context(), tg); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tg)
}

// ListTracks handles GET /api/v1/tracks.
func (h *Handlers) ListTracks(w http.ResponseWriter, r *http.Request) {
	out, err := h.tracks.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if out == nil {
		out = []model.TrackedGame{}
	}
	respondJSON(w, http.StatusOK, out)
}

// GetTrack handles GET /api/v1/tracks/{trackID}.
func (h *Handlers) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "trackID"))
	if err != nil {
		respondError(w, badRequest("trackID must be a UUID"))
		return
	}

	tg, err := h.tracks.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tg)
}

// DeleteTrack handles DELETE /api/v1/tracks/{trackID}.
func (h *Handlers) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "trackID"))
	if err != nil {
		respondError(w, badRequest("trackID must be a UUID"))
		return
	}

	if err := h.tracks.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GameHistory handles GET /api/v1/games/{gameID}/history.
func (h *Handlers) GameHistory(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		respondError(w, badRequest("gameID is required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(w, badRequest("limit must be a non-negative integer"))
			return
		}
		limit = v
	}

	if h.history == nil {
		respondJSON(w, http.StatusOK, []model.PricePoint{})
		return
	}

	points, err := h.history.GamePoints(r.Context(), gameID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if points == nil {
		points = []model.PricePoint{}
	}
	respondJSON(w, http.StatusOK, points)
}
