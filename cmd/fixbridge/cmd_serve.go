package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fixbridge/internal/infrastructure/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fix endpoint",
	Long:  `Serves POST /fix on FIXBRIDGE_HOST:FIXBRIDGE_PORT (localhost:5010 by default).`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := newContainer(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := httpapi.NewServer(c.Config.Addr(), httpapi.NewRouter(c.Fix, c.Logger), c.Logger)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return srv.Run(ctx)
	})
	return g.Wait()
}
