package model

import "time"

// Hotel is a catalog entry for the public hotel listing.
// The catalog is static demo data; hotels are not persisted.
type Hotel struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Rating         float64   `json:"rating"`
	PriceTier      string    `json:"price_tier"`
	ThumbnailImage string    `json:"thumbnail_image"`
	Description    string    `json:"description"`
	Amenities      []string  `json:"amenities"`
	CreatedAt      time.Time `json:"created_at"`
}
