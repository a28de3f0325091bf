// Package search turns a city-pair request into sorted, paginated bus and rail
// options by querying every origin/destination pair of provider locations.
package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/metrics"
	"github.com/randytsao24/tripmate/internal/models"
)

// Provider queries one mode's departures between two provider locations
type Provider interface {
	Query(ctx context.Context, originID, destinationID, date string) ([]models.RawTransportRecord, error)
}

// FanoutOptions bounds a fan-out. Zero values mean unbounded.
type FanoutOptions struct {
	Concurrency int
	CallTimeout time.Duration
}

// Fanout issues the full origin x destination cross product against one provider
type Fanout struct {
	mode     models.Mode
	provider Provider
	opts     FanoutOptions
}

// NewFanout creates a fan-out for mode
func NewFanout(mode models.Mode, provider Provider, opts FanoutOptions) *Fanout {
	return &Fanout{mode: mode, provider: provider, opts: opts}
}

// callResult is the outcome of one provider call
type callResult struct {
	origin      string
	destination string
	records     []models.RawTransportRecord
	err         error
}

// Query calls the provider once per (origin, destination) pair and waits for
// every call. Failed calls are logged and contribute nothing; Query never fails.
// The result order is unspecified.
func (f *Fanout) Query(ctx context.Context, originIDs, destinationIDs []string, date string) []models.RawTransportRecord {
	if len(originIDs) == 0 || len(destinationIDs) == 0 {
		return nil
	}

	start := time.Now()
	results := make([]callResult, len(originIDs)*len(destinationIDs))

	var g errgroup.Group
	if f.opts.Concurrency > 0 {
		g.SetLimit(f.opts.Concurrency)
	}
	for i, origin := range originIDs {
		for j, destination := range destinationIDs {
			slot := i*len(destinationIDs) + j
			g.Go(func() error {
				results[slot] = f.call(ctx, origin, destination, date)
				return nil
			})
		}
	}
	_ = g.Wait()

	metrics.FanoutDuration.WithLabelValues(string(f.mode)).Observe(time.Since(start).Seconds())

	var (
		out    []models.RawTransportRecord
		failed int
	)
	log := logging.Ctx(ctx)
	for _, res := range results {
		if res.err != nil {
			failed++
			log.Warn().Err(res.err).
				Str("mode", string(f.mode)).
				Str("origin", res.origin).
				Str("destination", res.destination).
				Msg("provider call failed")
			continue
		}
		out = append(out, res.records...)
	}

	log.Debug().
		Str("mode", string(f.mode)).
		Int("calls", len(results)).
		Int("failed", failed).
		Int("records", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("fan-out complete")
	return out
}

// call runs one provider query under the per-call timeout. Panics are
// converted to errors so one bad payload cannot take down the barrier.
func (f *Fanout) call(ctx context.Context, origin, destination, date string) (res callResult) {
	res.origin = origin
	res.destination = destination

	defer func() {
		if r := recover(); r != nil {
			res.records = nil
			res.err = fmt.Errorf("provider panic: %v", r)
		}
		outcome := "ok"
		if res.err != nil {
			outcome = "error"
		}
		metrics.FanoutCalls.WithLabelValues(string(f.mode), outcome).Inc()
	}()

	if f.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.CallTimeout)
		defer cancel()
	}

	res.records, res.err = f.provider.Query(ctx, origin, destination, date)
	return res
}
