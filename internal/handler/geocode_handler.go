package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/arjun/bikewash/internal/model"
	"github.com/arjun/bikewash/pkg/geocode"
)

// GeocodeHandler resolves coordinates to a human-readable address for
// the location banner.
type GeocodeHandler struct {
	geocoder *geocode.Client
}

// NewGeocodeHandler creates a geocode handler.
func NewGeocodeHandler(geocoder *geocode.Client) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder}
}

type geocodeResponse struct {
	Address geocode.Address `json:"address"`
	Display string          `json:"display"`
}

// Reverse handles GET /api/v1/geocode/reverse?lat=&lon=
func (h *GeocodeHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "lat and lon must both be valid numbers")
		return
	}

	addr, err := h.geocoder.Reverse(r.Context(), model.Location{Lat: lat, Lon: lon})
	if err != nil {
		log.Printf("[handler] reverse geocode: %v", err)
		writeError(w, http.StatusBadGateway, "geocode_failed", "could not resolve location")
		return
	}
	writeJSON(w, http.StatusOK, geocodeResponse{Address: addr, Display: addr.Display()})
}
