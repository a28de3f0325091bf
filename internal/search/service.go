package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/randytsao24/tripmate/internal/location"
	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/models"
	"github.com/randytsao24/tripmate/internal/validation"
)

// ModeBackend is everything needed to search one mode
type ModeBackend struct {
	Directory *location.Store
	Fanout    *Fanout
}

// Service runs bus and rail searches for a city pair
type Service struct {
	bus  ModeBackend
	rail ModeBackend
}

// NewService creates a transport search service
func NewService(bus, rail ModeBackend) *Service {
	return &Service{bus: bus, rail: rail}
}

// PageRequest is the pagination part of a search
type PageRequest struct {
	Page int `json:"page" validate:"gte=0"`
	Size int `json:"size" validate:"gt=0"`
}

// Recommend returns display lines per mode, with a sentinel line for an empty mode
func (s *Service) Recommend(ctx context.Context, req models.TransportRequest) (models.TransportResult, error) {
	rail, bus, err := s.search(ctx, req)
	if err != nil {
		return models.TransportResult{}, err
	}
	return models.TransportResult{
		BusOptions:  RenderAll(bus, models.ModeBus),
		RailOptions: RenderAll(rail, models.ModeRail),
	}, nil
}

// RecommendPage returns one page of the merged rail-then-bus sequence
func (s *Service) RecommendPage(ctx context.Context, req models.TransportRequest, page, size int) (models.TransportPage, error) {
	if err := validation.ValidateStruct(PageRequest{Page: page, Size: size}); err != nil {
		return models.TransportPage{}, err
	}

	rail, bus, err := s.search(ctx, req)
	if err != nil {
		return models.TransportPage{}, err
	}
	return Paginate(rail, bus, page, size), nil
}

// search validates input and runs both modes concurrently
func (s *Service) search(ctx context.Context, req models.TransportRequest) (rail, bus []models.TransportOption, err error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, nil, err
	}
	day, err := validation.ParseDate("date", req.Date)
	if err != nil {
		return nil, nil, err
	}
	date := day.Format(validation.CompactDateLayout)
	filter := ParseTimeFilter(req.DepartureTime)

	logging.Ctx(ctx).Info().
		Str("departure", req.DepartureCity).
		Str("arrival", req.ArrivalCity).
		Str("date", date).
		Bool("time_filter", filter.Present()).
		Msg("transport search")

	var g errgroup.Group
	g.Go(func() error {
		rail = s.searchMode(ctx, models.ModeRail, s.rail, req, date, filter)
		return nil
	})
	g.Go(func() error {
		bus = s.searchMode(ctx, models.ModeBus, s.bus, req, date, filter)
		return nil
	})
	_ = g.Wait()

	return rail, bus, nil
}

func (s *Service) searchMode(ctx context.Context, mode models.Mode, b ModeBackend, req models.TransportRequest, date string, filter TimeFilter) []models.TransportOption {
	if b.Directory == nil || b.Fanout == nil {
		return nil
	}

	origins := b.Directory.Resolve(req.DepartureCity)
	destinations := b.Directory.Resolve(req.ArrivalCity)
	if len(origins) == 0 || len(destinations) == 0 {
		logging.Ctx(ctx).Info().
			Str("mode", string(mode)).
			Str("departure", req.DepartureCity).
			Str("arrival", req.ArrivalCity).
			Int("origins", len(origins)).
			Int("destinations", len(destinations)).
			Msg("no provider locations for city pair")
		return nil
	}

	records := b.Fanout.Query(ctx, origins, destinations, date)
	return Shape(records, mode, filter)
}
