package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/snaptile/internal/ipc"
)

// parseTileArgs validates a tile invocation before dialing the daemon.
func parseTileArgs(args []string) (ipc.TileAction, string, error) {
	action, err := ipc.ParseTileAction(args[0])
	if err != nil {
		return "", "", err
	}
	payload := ipc.TilePayload{Action: action}
	if len(args) > 1 {
		payload.Direction = strings.ToLower(args[1])
		if !action.NeedsDirection() {
			return "", "", fmt.Errorf("%s takes no direction", action)
		}
	}
	if _, err := payload.Validate(); err != nil {
		return "", "", err
	}
	return action, payload.Direction, nil
}

func newTileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tile <enter|accept|exit|move|resize|swap|orientation> [left|down|up|right]",
		Short: "Drive the tiling session",
		Long: "Drive the daemon's tiling session.\n\n" +
			"  enter        start a session on the focused window\n" +
			"  accept       apply the previewed placement and leave the session\n" +
			"  exit         leave the session without moving anything\n" +
			"  move DIR     move the overlay one cell\n" +
			"  resize DIR   grow or shrink the overlay one cell\n" +
			"  swap DIR     select the neighbor to swap with\n" +
			"  orientation  toggle the focused fork's orientation",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, dir, err := parseTileArgs(args)
			if err != nil {
				return err
			}
			return ipc.NewClient().Tile(action, dir)
		},
	}
}

func newSnapCmd() *cobra.Command {
	var window uint32

	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Align a window to the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ipc.NewClient().Snap(window)
		},
	}
	cmd.Flags().Uint32Var(&window, "window", 0, "X11 window id (default: the focused window)")
	return cmd
}
