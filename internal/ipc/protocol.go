package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/snaptile/internal/tiling"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandTile        CommandType = "TILE"
	CommandSnap        CommandType = "SNAP"
)

// TileAction is a tiling session command.
type TileAction string

const (
	TileEnter       TileAction = "enter"
	TileAccept      TileAction = "accept"
	TileExit        TileAction = "exit"
	TileMove        TileAction = "move"
	TileResize      TileAction = "resize"
	TileSwap        TileAction = "swap"
	TileOrientation TileAction = "orientation"
)

// NeedsDirection reports whether the action takes a direction.
func (a TileAction) NeedsDirection() bool {
	switch a {
	case TileMove, TileResize, TileSwap:
		return true
	default:
		return false
	}
}

// ParseTileAction validates an action name.
func ParseTileAction(s string) (TileAction, error) {
	switch a := TileAction(s); a {
	case TileEnter, TileAccept, TileExit, TileMove, TileResize, TileSwap, TileOrientation:
		return a, nil
	default:
		return "", fmt.Errorf("unknown tile action %q", s)
	}
}

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// TilePayload is the payload of TILE.
type TilePayload struct {
	Action    TileAction `json:"action"`
	Direction string     `json:"direction,omitempty"`
}

// Validate checks the action and, where one is needed, the direction.
func (p TilePayload) Validate() (tiling.Direction, error) {
	if _, err := ParseTileAction(string(p.Action)); err != nil {
		return 0, err
	}
	if !p.Action.NeedsDirection() {
		return 0, nil
	}
	if p.Direction == "" {
		return 0, fmt.Errorf("%s requires a direction", p.Action)
	}
	return tiling.ParseDirection(p.Direction)
}

// SnapPayload is the payload of SNAP. A zero window means the focused one.
type SnapPayload struct {
	Window uint32 `json:"window,omitempty"`
}

// RectData is a rectangle on the wire.
type RectData struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectData converts a tiling rectangle.
func NewRectData(r tiling.Rect) RectData {
	return RectData{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	SessionActive bool     `json:"session_active"`
	SessionID     string   `json:"session_id,omitempty"`
	Window        uint32   `json:"window,omitempty"`
	SwapWindow    uint32   `json:"swap_window,omitempty"`
	Overlay       RectData `json:"overlay"`
	AutoTile      bool     `json:"auto_tile"`
	HintWindow    uint32   `json:"hint_window,omitempty"`
	UptimeSeconds int64    `json:"uptime_seconds"`
	DaemonRunning bool     `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Bounds   RectData `json:"bounds"`
	WorkArea RectData `json:"work_area"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
