package handlers

import (
	"net/http"

	"github.com/randytsao24/tripmate/internal/models"
)

const (
	defaultPage = 0
	defaultSize = 5
)

// TransportHandler serves bus and rail search
type TransportHandler struct {
	transport TransportSearcher
}

func NewTransportHandler(transport TransportSearcher) *TransportHandler {
	return &TransportHandler{transport: transport}
}

// Search returns every option as a display string, grouped by mode
func (h *TransportHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.TransportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.transport.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SearchPage returns one page of structured options, rail first
func (h *TransportHandler) SearchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := models.TransportRequest{
		DepartureCity: q.Get("departure"),
		ArrivalCity:   q.Get("arrival"),
		Date:          q.Get("date"),
		DepartureTime: q.Get("time"),
	}

	page, err := parseIntQueryParam(r, "page", defaultPage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size, err := parseIntQueryParam(r, "size", defaultSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.transport.RecommendPage(r.Context(), req, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
