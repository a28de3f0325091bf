package handlers

import (
	"net/http"
	"time"

	"github.com/randytsao24/tripmate/internal/validation"
)

// scheduleRequest is the body of both schedule endpoints. Days is ignored by auto-generate.
type scheduleRequest struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival" validate:"required"`
	Date      string `json:"date"`
	Days      int    `json:"days"`
}

// ScheduleHandler serves itinerary generation and place recommendations
type ScheduleHandler struct {
	planner SchedulePlanner
	now     func() time.Time
}

func NewScheduleHandler(planner SchedulePlanner) *ScheduleHandler {
	return &ScheduleHandler{planner: planner, now: time.Now}
}

func (h *ScheduleHandler) decode(r *http.Request) (scheduleRequest, error) {
	var req scheduleRequest
	if err := decodeBody(r, &req); err != nil {
		return req, err
	}
	return req, validation.ValidateStruct(req)
}

// AutoGenerate builds a single-day plan. The date defaults to today.
func (h *ScheduleHandler) AutoGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	date := h.now().Format(validation.DashedDateLayout)
	if req.Date != "" {
		parsed, err := validation.ParseDate("date", req.Date)
		if err != nil {
			writeError(w, r, err)
			return
		}
		date = parsed.Format(validation.DashedDateLayout)
	}

	writeJSON(w, http.StatusOK, h.planner.Plan(r.Context(), req.Departure, req.Arrival, date))
}

// GenerateMulti builds a plan spanning req.Days consecutive days
func (h *ScheduleHandler) GenerateMulti(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if req.Date == "" {
		req.Date = h.now().Format(validation.DashedDateLayout)
	}

	schedule, err := h.planner.PlanMultiDay(r.Context(), req.Departure, req.Arrival, req.Date, req.Days)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// RecommendPlaces returns ranked attractions for ?keyword=
func (h *ScheduleHandler) RecommendPlaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.planner.Recommend(r.Context(), r.URL.Query().Get("keyword")))
}
