package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/1broseidon/snaptile/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	// An unresolvable path surfaces as ErrDaemonNotRunning on first use.
	socketPath, _ := runtimepath.SocketPath()
	return NewClientWithPath(socketPath)
}

// NewClientWithPath creates a client for the daemon listening on socketPath.
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// ErrDaemonNotRunning is returned when nothing listens on the socket.
var ErrDaemonNotRunning = errors.New("daemon is not running")

// DaemonError is an ERROR response from the daemon.
type DaemonError struct {
	Command CommandType
	Message string
}

func (e *DaemonError) Error() string {
	return fmt.Sprintf("daemon error: %s", e.Message)
}

// sendRequest writes one request line and decodes the one-line response.
func (c *Client) sendRequest(req *Request) (*Response, error) {
	if c.socketPath == "" {
		return nil, ErrDaemonNotRunning
	}
	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.Dial("unix", c.socketPath)
	if err != nil {
		if errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED) {
			return nil, fmt.Errorf("%w (no socket at %s)", ErrDaemonNotRunning, c.socketPath)
		}
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	// Encode terminates the request with the newline the server reads up to.
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Command, err)
	}

	var resp Response
	if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Command, err)
	}
	if resp.Status == "ERROR" {
		return nil, &DaemonError{Command: req.Command, Message: resp.Error}
	}
	return &resp, nil
}

func (c *Client) send(cmd CommandType, payload any) (*Response, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	return c.sendRequest(req)
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.send(CommandReload, nil)
	return err
}

// Tile sends a tiling session command. dir is ignored by actions that take
// no direction.
func (c *Client) Tile(action TileAction, dir string) error {
	payload := TilePayload{Action: action}
	if action.NeedsDirection() {
		payload.Direction = dir
	}
	_, err := c.send(CommandTile, payload)
	return err
}

// Snap aligns a window (zero for the focused one) to the grid.
func (c *Client) Snap(window uint32) error {
	_, err := c.send(CommandSnap, SnapPayload{Window: window})
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.send(CommandGetStatus, nil)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetMonitors retrieves monitor information
func (c *Client) GetMonitors() (*MonitorsData, error) {
	resp, err := c.send(CommandGetMonitors, nil)
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}

	return &monitors, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
