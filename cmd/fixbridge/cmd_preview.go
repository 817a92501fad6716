package main

import (
	"github.com/spf13/cobra"

	"fixbridge/internal/domain/entity"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the last captured element and follow new captures",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	c, err := newContainer(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()

	captured, ok, err := c.Elements.Load()
	switch {
	case err != nil:
		c.Console.ShowStatus(ctx, err.Error(), true)
	case ok:
		c.Console.ShowElement(ctx, &captured)
	default:
		c.Console.ShowElement(ctx, nil)
	}

	return c.Elements.Watch(ctx, func(captured entity.CapturedElement) {
		c.Console.ShowElement(ctx, &captured)
	})
}
