package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staynest/staynest/internal/model"
)

func TestHotelHandler_List(t *testing.T) {
	t.Parallel()

	h := NewHotelHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var hotels []model.Hotel
	if err := json.NewDecoder(rec.Body).Decode(&hotels); err != nil {
		t.Fatalf("decode hotels: %v", err)
	}

	if len(hotels) != 8 {
		t.Errorf("expected 8 hotels, got %d", len(hotels))
	}
	for _, hotel := range hotels {
		if hotel.ID == "" {
			t.Errorf("hotel %q missing ID", hotel.Name)
		}
		if hotel.Rating < 1 || hotel.Rating > 5 {
			t.Errorf("hotel %q has out-of-range rating %f", hotel.Name, hotel.Rating)
		}
	}
}

func TestHotelHandler_StableIDs(t *testing.T) {
	t.Parallel()

	h := NewHotelHandler()

	ids := func() []string {
		req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		var hotels []model.Hotel
		if err := json.NewDecoder(rec.Body).Decode(&hotels); err != nil {
			t.Fatalf("decode hotels: %v", err)
		}
		out := make([]string, len(hotels))
		for i, hotel := range hotels {
			out[i] = hotel.ID
		}
		return out
	}

	first := ids()
	second := ids()
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("catalog IDs should be stable across requests")
		}
	}
}
