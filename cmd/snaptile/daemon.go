package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/snaptile/internal/daemon"
)

func newDaemonCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the snaptile daemon",
		Long: "Run the snaptile daemon: grab the configured keys, serve the IPC socket,\n" +
			"and draw the tiling overlay and active hint until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.Run(cmd.Context(), daemon.Options{
				ConfigPath: path,
				Logger:     logger,
				Level:      logLevel,
			})
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
	return cmd
}
