package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fixbridge/internal/di"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fixbridge",
	Short: "Turn right-clicked page elements into fix prompts",
	Long: `fixbridge records the element under your last right-click in a browser page,
describes it as compact HTML and embeds it with a fix request into an
assistant prompt served over a local HTTP endpoint.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file layered beneath the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, watchCmd, previewCmd, fixCmd, describeCmd, relayCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newContainer(cmd *cobra.Command) (*di.Container, error) {
	return di.NewContainer(cmd.Context(), di.Options{
		ConfigFile: configFile,
		Verbose:    verbose,
	})
}
