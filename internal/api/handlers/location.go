package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// LocationHandler exposes the loaded city directories
type LocationHandler struct {
	directories map[string]CityDirectory
}

func NewLocationHandler(directories ...CityDirectory) *LocationHandler {
	byName := make(map[string]CityDirectory, len(directories))
	for _, d := range directories {
		byName[d.Name()] = d
	}
	return &LocationHandler{directories: byName}
}

// GetCities lists the canonical cities a mode can resolve
func (h *LocationHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	dir, ok := h.directories[mode]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "Unknown mode",
			"message": "Mode " + mode + " is not one of bus, rail",
		})
		return
	}

	cities := dir.Cities()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mode":    mode,
		"count":   len(cities),
		"cities":  cities,
	})
}
