package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	apperrors "github.com/chedi-ouerghi/shop-mobilenative/pkg/errors"
	"github.com/chedi-ouerghi/shop-mobilenative/pkg/httputil"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/geo"
)

// StoreHandler handles HTTP requests for store location endpoints.
type StoreHandler struct {
	locations []domain.StoreLocation
	logger    *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler over a fixed set of
// locations.
func NewStoreHandler(locations []domain.StoreLocation, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		locations: locations,
		logger:    logger,
	}
}

// rankedStoreResponse carries a ranked store with its distance rounded for
// presentation.
type rankedStoreResponse struct {
	Title      string  `json:"title"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// ListStores handles GET /api/v1/stores
func (h *StoreHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"stores": h.locations,
	}})
}

// NearestStores handles GET /api/v1/stores/nearest
//
// Query parameters: lat, lon (the user coordinate in degrees) and k (how
// many stores to return, default all). When lat/lon are absent the user's
// position is unknown and the ranking is empty; the client falls back to
// the unranked store list.
func (h *StoreHandler) NearestStores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var user *domain.Coordinate
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("lat must be a number"), h.logger)
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("lon must be a number"), h.logger)
			return
		}
		if lat < -90 || lat > 90 {
			httputil.WriteError(w, r, apperrors.InvalidInput("lat must be between -90 and 90"), h.logger)
			return
		}
		if lon < -180 || lon > 180 {
			httputil.WriteError(w, r, apperrors.InvalidInput("lon must be between -180 and 180"), h.logger)
			return
		}
		user = &domain.Coordinate{Latitude: lat, Longitude: lon}
	}

	k := len(h.locations)
	if kStr := q.Get("k"); kStr != "" {
		parsed, err := strconv.Atoi(kStr)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, r, apperrors.InvalidInput("k must be a positive integer"), h.logger)
			return
		}
		k = parsed
	}

	ranked := geo.Nearest(h.locations, user, k)

	stores := make([]rankedStoreResponse, len(ranked))
	for i, rs := range ranked {
		stores[i] = rankedStoreResponse{
			Title:      rs.Title,
			Latitude:   rs.Latitude,
			Longitude:  rs.Longitude,
			DistanceKm: math.Round(rs.DistanceKm*100) / 100,
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"stores": stores,
	}})
}
