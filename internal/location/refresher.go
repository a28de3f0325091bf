package location

import (
	"context"
	"time"

	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/metrics"
)

// Refresher periodically rebuilds a Store's directory. It is a suture.Service.
// A failed refresh keeps the current directory.
type Refresher struct {
	store    *Store
	provider DirectoryProvider
	interval time.Duration
}

// NewRefresher creates a refresher; interval <= 0 makes Serve idle until shutdown
func NewRefresher(store *Store, provider DirectoryProvider, interval time.Duration) *Refresher {
	return &Refresher{store: store, provider: provider, interval: interval}
}

// Serve runs until ctx is cancelled
func (r *Refresher) Serve(ctx context.Context) error {
	if r.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Refresh(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Refresh fetches once and swaps the result in on success
func (r *Refresher) Refresh(ctx context.Context) bool {
	name := r.store.Name()
	candidates, err := r.provider.FetchAll(ctx)
	if err != nil {
		metrics.DirectoryRefreshes.WithLabelValues(name, "error").Inc()
		logging.Warn().Err(err).Str("directory", name).Msg("directory refresh failed, keeping current")
		return false
	}

	d := NewDirectory(candidates)
	r.store.Swap(d)
	metrics.DirectoryRefreshes.WithLabelValues(name, "ok").Inc()
	logging.Debug().Str("directory", name).Int("entries", d.Len()).Msg("directory refreshed")
	return true
}

func (r *Refresher) String() string {
	return "directory-refresher-" + r.store.Name()
}
