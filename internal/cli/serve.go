package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgraph/internal/server"
	"github.com/matzehuels/trackgraph/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		config   string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

  POST /render?format=svg   render the timetable in the request body
  GET  /healthz             liveness probe

With --redis, artifacts are cached in Redis and shared between instances;
otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			defaults, err := loadOptions(config, pipeline.Options{})
			if err != nil {
				return err
			}

			runner, err := c.newSharedRunner(ctx, redisURL, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			return server.New(runner, c.Logger, defaults).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML file with default options")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache, e.g. redis://localhost:6379/0")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
