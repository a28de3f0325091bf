package handlers

import (
	"net/http"
)

// Version is reported by / and /health
const Version = "1.0.0"

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "tripmate",
		"description": "Bus and rail options plus day-by-day itineraries for Korean city trips",
		"version":     Version,
		"endpoints": map[string]string{
			"GET /":                              "API information",
			"GET /health":                        "Health check",
			"GET /metrics":                       "Prometheus metrics",
			"GET /api/locations/{mode}":          "Cities a mode (bus, rail) can resolve",
			"GET /api/transport/search":          "Paginated transport options (departure, arrival, date, time, page, size)",
			"POST /api/transport/search":         "Transport options as display strings",
			"POST /api/schedule/auto-generate":   "Single-day itinerary",
			"POST /api/schedule/generate-multi":  "Multi-day itinerary",
			"GET /api/schedule/places/recommend": "Recommended attractions for a keyword",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the root endpoint (/) for available routes",
	})
}

func (h *RootHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"error":   "Method not allowed",
		"message": r.Method + " is not supported on " + r.URL.Path,
	})
}
