package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/1broseidon/snaptile/internal/ipc"
)

func newStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ipc.NewClient().GetStatus()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "daemon_running: %v\n", status.DaemonRunning)
	fmt.Fprintf(w, "uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Fprintf(w, "auto_tile:      %v\n", status.AutoTile)
	fmt.Fprintf(w, "session_active: %v\n", status.SessionActive)
	if status.SessionActive {
		fmt.Fprintf(w, "session_id:     %s\n", status.SessionID)
		fmt.Fprintf(w, "window:         %d\n", status.Window)
		fmt.Fprintf(w, "overlay:        %s\n", formatRect(status.Overlay))
		if status.SwapWindow != 0 {
			fmt.Fprintf(w, "swap_window:    %d\n", status.SwapWindow)
		}
	}
	if status.HintWindow != 0 {
		fmt.Fprintf(w, "hint_window:    %d\n", status.HintWindow)
	}
}

func newMonitorsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List monitors and their work areas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ipc.NewClient().GetMonitors()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), data)
			}
			printMonitors(cmd.OutOrStdout(), data.Monitors)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printMonitors(w io.Writer, monitors []ipc.MonitorInfo) {
	for _, m := range monitors {
		name := m.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%d  %-10s bounds=%s  work_area=%s\n", m.ID, name, formatRect(m.Bounds), formatRect(m.WorkArea))
	}
}

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the daemon to reload its config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipc.NewClient().Reload(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reloaded")
			return nil
		},
	}
}

func formatRect(r ipc.RectData) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
