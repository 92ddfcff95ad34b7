package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/staynest/internal/model"
)

// HotelHandler serves the public hotel catalog.
type HotelHandler struct {
	catalog []model.Hotel
}

// NewHotelHandler creates a HotelHandler with the demo catalog.
// IDs and timestamps are assigned once at startup so repeated requests
// return stable entries.
func NewHotelHandler() *HotelHandler {
	catalog := luxuryHotels()
	now := time.Now().UTC()
	for i := range catalog {
		catalog[i].ID = uuid.New().String()
		catalog[i].CreatedAt = now
	}
	return &HotelHandler{catalog: catalog}
}

// List handles GET /api/hotels
// Public endpoint, no authentication required.
func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog)
}

// luxuryHotels returns the static demo catalog.
func luxuryHotels() []model.Hotel {
	return []model.Hotel{
		{
			Name:           "The Ritz-Carlton New York",
			Location:       "New York, NY",
			Rating:         4.8,
			PriceTier:      "Ultra-Luxury",
			ThumbnailImage: "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=400&h=300&fit=crop&crop=faces",
			Description:    "Iconic luxury hotel in the heart of Manhattan with world-class service.",
			Amenities:      []string{"Spa", "Fine Dining", "Concierge", "Fitness Center", "Business Center"},
		},
		{
			Name:           "Four Seasons Hotel George V",
			Location:       "Paris, France",
			Rating:         4.9,
			PriceTier:      "Presidential",
			ThumbnailImage: "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=400&h=300&fit=crop&crop=faces",
			Description:    "Palace hotel offering unparalleled luxury near the Champs-Élysées.",
			Amenities:      []string{"Michelin Star Restaurant", "Luxury Spa", "Personal Butler", "Private Gardens"},
		},
		{
			Name:           "Burj Al Arab",
			Location:       "Dubai, UAE",
			Rating:         4.7,
			PriceTier:      "Ultra-Luxury",
			ThumbnailImage: "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=400&h=300&fit=crop&crop=faces",
			Description:    "The world's most luxurious hotel, shaped like the sail of a dhow.",
			Amenities:      []string{"Private Beach", "Helicopter Service", "Royal Suite", "Underwater Restaurant"},
		},
		{
			Name:           "Aman Tokyo",
			Location:       "Tokyo, Japan",
			Rating:         4.6,
			PriceTier:      "Luxury",
			ThumbnailImage: "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=400&h=300&fit=crop&crop=faces",
			Description:    "Serene urban sanctuary combining traditional Japanese aesthetics with modern luxury.",
			Amenities:      []string{"Traditional Spa", "Zen Gardens", "Kaiseki Restaurant", "Tea Ceremony"},
		},
		{
			Name:           "Hotel Plaza Athénée",
			Location:       "Paris, France",
			Rating:         4.8,
			PriceTier:      "Ultra-Luxury",
			ThumbnailImage: "https://images.unsplash.com/photo-1564501049412-61c2a3083791?w=400&h=300&fit=crop&crop=faces",
			Description:    "Parisian palace hotel with breathtaking views of the Eiffel Tower.",
			Amenities:      []string{"Eiffel Tower Views", "Haute Couture Shopping", "Alain Ducasse Restaurant", "Dior Spa"},
		},
		{
			Name:           "The St. Regis Bora Bora",
			Location:       "Bora Bora, French Polynesia",
			Rating:         4.9,
			PriceTier:      "Presidential",
			ThumbnailImage: "https://images.unsplash.com/photo-1439066615861-d1af74d74000?w=400&h=300&fit=crop&crop=faces",
			Description:    "Overwater villas in a tropical paradise with crystal-clear lagoon views.",
			Amenities:      []string{"Overwater Villas", "Private Beach", "Lagoon Spa", "Sunset Sailing"},
		},
		{
			Name:           "The Savoy London",
			Location:       "London, UK",
			Rating:         4.7,
			PriceTier:      "Luxury",
			ThumbnailImage: "https://images.unsplash.com/photo-1551632811-561732d1e306?w=400&h=300&fit=crop&crop=faces",
			Description:    "Historic luxury hotel on the Strand with legendary afternoon tea service.",
			Amenities:      []string{"Thames River Views", "Afternoon Tea", "Art Deco Bar", "Royal Suite"},
		},
		{
			Name:           "One&Only Cape Town",
			Location:       "Cape Town, South Africa",
			Rating:         4.6,
			PriceTier:      "Ultra-Luxury",
			ThumbnailImage: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=300&fit=crop&crop=faces",
			Description:    "Contemporary luxury resort with stunning views of Table Mountain.",
			Amenities:      []string{"Mountain Views", "Marina Access", "Wine Cellar", "Spa Island"},
		},
	}
}
