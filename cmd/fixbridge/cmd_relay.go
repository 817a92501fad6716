package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/application/service"
	"fixbridge/internal/domain/entity"
	"fixbridge/internal/infrastructure/httpapi"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Serve the selection relay for a plugin UI",
	Long: `Accepts a UI over a websocket at ws://FIXBRIDGE_HOST:FIXBRIDGE_RELAY_PORT/relay.
On connect the UI is asked to show itself at FIXBRIDGE_UI_WIDTH x FIXBRIDGE_UI_HEIGHT;
get-selection requests are answered with the current selection, which
follows the elements captured by "fixbridge watch".`,
	Args: cobra.NoArgs,
	RunE: runRelay,
}

func runRelay(cmd *cobra.Command, args []string) error {
	c, err := newContainer(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	if captured, ok, err := c.Elements.Load(); err == nil && ok {
		c.Selection.Set(service.SelectionItemFor(captured))
	}

	session := func(ctx context.Context, h output.MessagingHost) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		relay := c.NewRelay(h, cancel)
		remove := c.Selection.OnChange(func() { relay.NotifySelectionChanged(ctx) })
		defer remove()

		relay.Bootstrap(ctx, c.Config.Surface)
		err := relay.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	srv := httpapi.NewServer(c.Config.RelayAddr(), httpapi.NewRelayRouter(session, c.Logger), c.Logger)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		return c.Elements.Watch(ctx, func(captured entity.CapturedElement) {
			c.Selection.Set(service.SelectionItemFor(captured))
		})
	})
	return g.Wait()
}
