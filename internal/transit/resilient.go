package transit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/randytsao24/tripmate/internal/cache"
	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/metrics"
	"github.com/randytsao24/tripmate/internal/models"
)

// GuardConfig tunes the breaker and limiter in front of one upstream
type GuardConfig struct {
	RatePerSecond float64 // 0 disables limiting
	Burst         int
	CacheTTL      time.Duration // 0 disables caching
}

// Guard rate-limits calls to one upstream and opens a circuit when it keeps failing
type Guard struct {
	name    string
	breaker *gobreaker.CircuitBreaker[any]
	limiter *rate.Limiter
}

// NewGuard creates a guard. The circuit opens at a 60% failure rate over at
// least 10 calls and probes again after 30s.
func NewGuard(name string, cfg GuardConfig) *Guard {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	metrics.BreakerState.WithLabelValues(name).Set(0)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("upstream", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// a cancelled caller says nothing about the upstream's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Guard{
		name:    name,
		breaker: breaker,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Name returns the upstream name
func (g *Guard) Name() string {
	return g.name
}

// State returns the breaker state
func (g *Guard) State() gobreaker.State {
	return g.breaker.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Call waits for the limiter then runs fn through the breaker
func Call[T any](ctx context.Context, g *Guard, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if !g.limiter.Allow() {
		metrics.RateLimitWaits.WithLabelValues(g.name).Inc()
		if err := g.limiter.Wait(ctx); err != nil {
			return zero, fmt.Errorf("%s rate limit: %w", g.name, err)
		}
	}

	res, err := g.breaker.Execute(func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s unavailable: %w", g.name, err)
		}
		return zero, err
	}
	return res.(T), nil
}

// DepartureSource is one mode's departure search
type DepartureSource interface {
	Query(ctx context.Context, originID, destinationID, date string) ([]models.RawTransportRecord, error)
}

// ResilientDepartures guards and caches a DepartureSource
type ResilientDepartures struct {
	src   DepartureSource
	guard *Guard
	cache *cache.Cache[[]models.RawTransportRecord]
}

// NewResilientDepartures wraps src under the given upstream name
func NewResilientDepartures(name string, src DepartureSource, cfg GuardConfig) *ResilientDepartures {
	return &ResilientDepartures{
		src:   src,
		guard: NewGuard(name, cfg),
		cache: cache.New[[]models.RawTransportRecord](name, cfg.CacheTTL),
	}
}

// Query serves from cache, coalescing identical in-flight queries
func (r *ResilientDepartures) Query(ctx context.Context, originID, destinationID, date string) ([]models.RawTransportRecord, error) {
	key := strings.Join([]string{originID, destinationID, date}, "|")
	return r.cache.Fetch(ctx, key, func(ctx context.Context) ([]models.RawTransportRecord, error) {
		return Call(ctx, r.guard, func(ctx context.Context) ([]models.RawTransportRecord, error) {
			return r.src.Query(ctx, originID, destinationID, date)
		})
	})
}

// Close stops the cache janitor
func (r *ResilientDepartures) Close() {
	r.cache.Close()
}

// PlaceSource is a keyword place search
type PlaceSource interface {
	Search(ctx context.Context, keyword string, category models.Category) ([]models.Place, error)
}

// ResilientPlaces guards and caches a PlaceSource
type ResilientPlaces struct {
	src   PlaceSource
	guard *Guard
	cache *cache.Cache[[]models.Place]
}

// NewResilientPlaces wraps src under the given upstream name
func NewResilientPlaces(name string, src PlaceSource, cfg GuardConfig) *ResilientPlaces {
	return &ResilientPlaces{
		src:   src,
		guard: NewGuard(name, cfg),
		cache: cache.New[[]models.Place](name, cfg.CacheTTL),
	}
}

// Search serves from cache, coalescing identical in-flight searches
func (r *ResilientPlaces) Search(ctx context.Context, keyword string, category models.Category) ([]models.Place, error) {
	key := keyword + "|" + string(category)
	return r.cache.Fetch(ctx, key, func(ctx context.Context) ([]models.Place, error) {
		return Call(ctx, r.guard, func(ctx context.Context) ([]models.Place, error) {
			return r.src.Search(ctx, keyword, category)
		})
	})
}

// Close stops the cache janitor
func (r *ResilientPlaces) Close() {
	r.cache.Close()
}
