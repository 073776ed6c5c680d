package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel = new(slog.LevelVar)
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
)

func main() {
	slog.SetDefault(logger)

	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "snaptile",
		Short:         "Keyboard-driven grid snapping for X11 windows",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newDaemonCmd())
	root.AddCommand(newTileCmd())
	root.AddCommand(newSnapCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newMonitorsCmd())
	root.AddCommand(newReloadCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newTUICmd())
	return root
}
