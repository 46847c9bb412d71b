package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/api"
	"github.com/example/stagepatch/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

Serves the planning API (catalog, events, bands, matrix, export) on the
address from the config file. Interactive toggles arriving over the API
are debounced before the patch is reconciled. Stops cleanly on SIGINT
or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			serverCfg := cfg.Server
			if host != "" {
				serverCfg.Host = host
			}
			if port != "" {
				serverCfg.Port = port
			}

			server := api.NewServer(
				serverCfg,
				wire.CatalogService(),
				wire.EventService(),
				wire.PatchService(),
				cfg.NewLogger(),
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Bind host (overrides config)")
	cmd.Flags().StringVar(&port, "port", "", "Bind port (overrides config)")

	return cmd
}
