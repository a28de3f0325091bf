package cli

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/supervisor"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app := NewApp(ctx, cfg)
			defer app.Close()

			server := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      app.Router(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			tree := supervisor.NewTree(supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout})
			for _, r := range app.Refreshers() {
				tree.AddDirectoryService(r)
			}
			tree.AddAPIService(supervisor.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

			logging.Info().
				Str("port", cfg.Port).
				Str("env", cfg.Env).
				Msg("tripmate starting")

			err := tree.Serve(ctx)
			if ctx.Err() != nil {
				// signalled shutdown
				logging.Info().Msg("tripmate stopped")
				return nil
			}
			return err
		},
	}
}
