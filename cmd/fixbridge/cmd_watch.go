package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fixbridge/internal/domain/entity"
)

var watchSnapshotDir string

var watchCmd = &cobra.Command{
	Use:   "watch <url>",
	Short: "Open a page and capture right-clicked elements",
	Long: `Launches a browser on the given page. Every right-click updates the recorded
position and captures the element under it into the state dir, where
"preview", "fix" and "relay" pick it up.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSnapshotDir, "snapshot-dir", "", "save a JPEG thumbnail per capture into this dir")
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := newContainer(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	browser, err := c.Browser(cmd.Context())
	if err != nil {
		return err
	}
	if err := browser.Open(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	c.Recorder.Reset(c.Config.Viewport)

	capturer := c.Capturer(browser, watchSnapshotDir)
	c.Console.ShowStatus(cmd.Context(), "Watching "+browser.CurrentURL()+", right-click an element", false)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		err := browser.WatchPointer(ctx, func(ev entity.PointerEvent) {
			if captured := capturer.HandlePointer(ctx, ev); captured != nil {
				c.Console.ShowElement(ctx, captured)
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
