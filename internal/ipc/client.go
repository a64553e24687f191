package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/platform"
	"github.com/1broseidon/launchbar/internal/runtimepath"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithPath(socketPath)
}

// NewClientWithPath creates a client for the socket at socketPath.
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response. Error responses are
// returned as *RemoteError.
func (c *Client) sendRequest(cmd CommandType, payload interface{}) (*Response, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = data
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == StatusError {
		return nil, &RemoteError{Kind: resp.Kind, Message: resp.Error}
	}

	return &resp, nil
}

// call sends cmd and decodes the response data into out when out is non-nil.
func (c *Client) call(cmd CommandType, payload, out interface{}) error {
	resp, err := c.sendRequest(cmd, payload)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetState returns the daemon's toolbar state.
func (c *Client) GetState() (*StateData, error) {
	var state StateData
	if err := c.call(CommandGetState, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GetDisplays lists the displays the daemon can see.
func (c *Client) GetDisplays() ([]platform.Display, error) {
	var data DisplaysData
	if err := c.call(CommandGetDisplays, nil, &data); err != nil {
		return nil, err
	}
	return data.Displays, nil
}

// SetDisplay reports the display area and window size to the daemon.
func (c *Client) SetDisplay(display layout.Rect, window layout.Size) (*PositionData, error) {
	var pos PositionData
	err := c.call(CommandSetGeometry, GeometryPayload{Display: &display, Window: window}, &pos)
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

// SetGeometry reports new screen and window sizes to the daemon.
func (c *Client) SetGeometry(screen, window layout.Size) (*PositionData, error) {
	var pos PositionData
	err := c.call(CommandSetGeometry, GeometryPayload{Screen: screen, Window: window}, &pos)
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

// BeginDrag starts a drag at the given global pointer position.
func (c *Client) BeginDrag(pointer layout.Point) (*PositionData, error) {
	return c.pointer(CommandBeginDrag, pointer)
}

// PointerMove reports pointer motion during a drag.
func (c *Client) PointerMove(pointer layout.Point) (*PositionData, error) {
	return c.pointer(CommandPointerMove, pointer)
}

func (c *Client) pointer(cmd CommandType, p layout.Point) (*PositionData, error) {
	var pos PositionData
	if err := c.call(cmd, PointerPayload{X: p.X, Y: p.Y}, &pos); err != nil {
		return nil, err
	}
	return &pos, nil
}

// Release ends a drag.
func (c *Client) Release() (*PositionData, error) {
	var pos PositionData
	if err := c.call(CommandRelease, nil, &pos); err != nil {
		return nil, err
	}
	return &pos, nil
}

// Mutate applies an edit in the daemon and optionally saves the document.
func (c *Client) Mutate(m toolbar.Mutation, save bool) (int, error) {
	var data MutateData
	if err := c.call(CommandMutate, MutatePayload{Mutation: m, Save: save}, &data); err != nil {
		return -1, err
	}
	return data.Index, nil
}

// SetSettings changes the settings named in p.
func (c *Client) SetSettings(p SettingsPayload) (*config.Settings, error) {
	var s config.Settings
	if err := c.call(CommandSetSettings, p, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Launch starts a shortcut. An empty category selects a quick shortcut.
func (c *Client) Launch(category string, index int) error {
	return c.call(CommandLaunch, LaunchPayload{Category: category, Index: index}, nil)
}

// Save writes the daemon's document to disk.
func (c *Client) Save() error {
	return c.call(CommandSave, nil, nil)
}

// Reload makes the daemon re-read its document.
func (c *Client) Reload() (*ReloadData, error) {
	var data ReloadData
	if err := c.call(CommandReload, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
