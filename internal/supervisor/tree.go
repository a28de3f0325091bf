// Package supervisor runs the long-lived services (HTTP server, directory
// refreshers) under a suture tree so a crashed service is restarted with
// backoff instead of taking the process down.
package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/randytsao24/tripmate/internal/logging"
)

// TreeConfig holds supervisor tree configuration. Zero values take defaults.
type TreeConfig struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

// DefaultTreeConfig matches suture's own defaults
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

// Tree has two layers. A refresher crash never restarts the HTTP server.
//
//	tripmate
//	├── directory-layer (one refresher per mode)
//	└── api-layer (http server)
type Tree struct {
	root      *suture.Supervisor
	directory *suture.Supervisor
	api       *suture.Supervisor
	config    TreeConfig
}

// NewTree builds the supervisor hierarchy
func NewTree(config TreeConfig) *Tree {
	config = config.withDefaults()

	rootSpec := suture.Spec{
		EventHook:        logEvent,
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	// children inherit the event hook when added to root
	childSpec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	root := suture.New("tripmate", rootSpec)
	directory := suture.New("directory-layer", childSpec)
	api := suture.New("api-layer", childSpec)
	root.Add(directory)
	root.Add(api)

	return &Tree{root: root, directory: directory, api: api, config: config}
}

// AddDirectoryService adds a service to the directory layer
func (t *Tree) AddDirectoryService(svc suture.Service) suture.ServiceToken {
	return t.directory.Add(svc)
}

// AddAPIService adds a service to the API layer
func (t *Tree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve blocks until ctx is cancelled
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground starts the tree and returns a channel receiving its exit error
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that missed the shutdown timeout
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// logEvent routes suture events to zerolog
func logEvent(e suture.Event) {
	l := logging.Logger()
	l.WithLevel(eventLevel(e.Type())).
		Fields(e.Map()).
		Str("event", e.String()).
		Msg("supervisor event")
}

func eventLevel(t suture.EventType) zerolog.Level {
	switch t {
	case suture.EventTypeServicePanic, suture.EventTypeStopTimeout:
		return zerolog.ErrorLevel
	case suture.EventTypeServiceTerminate, suture.EventTypeBackoff:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
