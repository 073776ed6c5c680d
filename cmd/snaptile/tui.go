package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/snaptile/internal/tui"
)

func newTUICmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit grid settings and key bindings interactively",
		Long: "Interactive editor for the snaptile config. Works offline; when the daemon\n" +
			"is running, saving asks it to reload.\n\n" +
			"Keybindings:\n" +
			"  tab, 1/2   Switch tabs\n" +
			"  e          Edit the selected settings or binding\n" +
			"  x          Reset the selected binding to its default\n" +
			"  ctrl+s     Review and save changes\n" +
			"  r          Refresh daemon status\n" +
			"  q, ctrl+c  Quit",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
	return cmd
}
