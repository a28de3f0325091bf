package handlers

import (
	"context"

	"github.com/randytsao24/tripmate/internal/models"
)

// TransportSearcher abstracts the transport aggregation service for testability.
type TransportSearcher interface {
	Recommend(ctx context.Context, req models.TransportRequest) (models.TransportResult, error)
	RecommendPage(ctx context.Context, req models.TransportRequest, page, size int) (models.TransportPage, error)
}

// SchedulePlanner abstracts the itinerary planner.
type SchedulePlanner interface {
	Plan(ctx context.Context, departure, arrival, date string) models.Schedule
	PlanMultiDay(ctx context.Context, departure, arrival, startDate string, days int) (models.MultiDaySchedule, error)
	Recommend(ctx context.Context, keyword string) []models.Place
}

// CityDirectory lists the canonical cities one mode can resolve.
type CityDirectory interface {
	Name() string
	Cities() []string
}
