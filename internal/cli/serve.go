package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/highweigh/internal/api"
	"github.com/matzehuels/highweigh/pkg/errors"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve roadmap renders over HTTP",
		Long: `Run the HTTP render service.

  GET  /healthz
  POST /render?format=svg|json|png|pdf   render the request body
  GET  /roadmaps                         names in the configured store
  GET  /roadmaps/{name}[.{format}]       render a stored roadmap

The service shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := c.openStore(ctx)
	if err != nil {
		c.Logger.Warn("roadmap store unavailable, /roadmaps disabled", "err", err)
		store = nil
	} else {
		defer store.Close(context.Background())
	}

	srv := api.New(runner, store, c.Logger)
	if path := c.Config.Render.Stylesheet; path != "" {
		css, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "read stylesheet")
		}
		srv.Stylesheet = string(css)
	}
	return srv.ListenAndServe(ctx, addr)
}
