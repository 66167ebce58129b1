package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/arjun/bikewash/internal/model"
	"github.com/arjun/bikewash/internal/service"
)

// CenterHandler serves the wash-center catalog.
type CenterHandler struct {
	centers *service.CenterService
}

// NewCenterHandler creates a center handler.
func NewCenterHandler(centers *service.CenterService) *CenterHandler {
	return &CenterHandler{centers: centers}
}

// List handles GET /api/v1/centers?lat=&lon=
//
// With coordinates, each center carries its distance from the customer
// and the list is sorted nearest-first.
func (h *CenterHandler) List(w http.ResponseWriter, r *http.Request) {
	var from *model.Location

	latStr, lonStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if latStr != "" || lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "lat and lon must both be valid numbers")
			return
		}
		from = &model.Location{Lat: lat, Lon: lon}
	}

	centers, err := h.centers.List(r.Context(), from)
	if err != nil {
		log.Printf("[handler] list centers: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not load wash centers")
		return
	}
	writeJSON(w, http.StatusOK, centers)
}

// Get handles GET /api/v1/centers/{id}
func (h *CenterHandler) Get(w http.ResponseWriter, r *http.Request) {
	center, err := h.centers.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrCenterNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Wash center not found.")
			return
		}
		log.Printf("[handler] get center: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not load wash center")
		return
	}
	writeJSON(w, http.StatusOK, center)
}
