package domain

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StoreLocation is a physical store with a fixed position.
type StoreLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Title     string  `json:"title"`
}

// DefaultStoreLocations returns the fixed set of store locations known to
// the storefront.
func DefaultStoreLocations() []StoreLocation {
	return []StoreLocation{
		{Latitude: 36.8065, Longitude: 10.1815, Title: "Boutique Tunis Centre Ville"},
		{Latitude: 36.8478, Longitude: 10.3303, Title: "Boutique Lac 1"},
	}
}
