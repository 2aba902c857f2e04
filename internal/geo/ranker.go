// Package geo ranks store locations by great-circle distance from a user
// coordinate.
package geo

import (
	"math"
	"sort"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// RankedStore is a store location paired with its distance from the user,
// in kilometers at full precision. Rounding happens at presentation time.
type RankedStore struct {
	domain.StoreLocation
	DistanceKm float64 `json:"distance_km"`
}

// Distance returns the great-circle distance in kilometers between two
// coordinates given in degrees, using the haversine formula.
func Distance(from, to domain.Coordinate) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	dLat := toRadians(to.Latitude - from.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Nearest returns the k closest locations to the user coordinate, ordered by
// non-decreasing distance. Ties keep the input order. A nil coordinate means
// the user's position is unknown; the result is then empty rather than an
// error, and callers fall back to an unranked view.
func Nearest(locations []domain.StoreLocation, user *domain.Coordinate, k int) []RankedStore {
	if user == nil || k <= 0 {
		return []RankedStore{}
	}

	ranked := make([]RankedStore, 0, len(locations))
	for _, loc := range locations {
		ranked = append(ranked, RankedStore{
			StoreLocation: loc,
			DistanceKm:    Distance(*user, domain.Coordinate{Latitude: loc.Latitude, Longitude: loc.Longitude}),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
