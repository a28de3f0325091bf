// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	startTime   time.Time
	directories []CityDirectory
}

func NewHealthHandler(directories ...CityDirectory) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), directories: directories}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	loaded := make(map[string]int, len(h.directories))
	for _, d := range h.directories {
		loaded[d.Name()] = len(d.Cities())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"version":     Version,
		"uptime":      time.Since(h.startTime).String(),
		"directories": loaded,
	})
}
