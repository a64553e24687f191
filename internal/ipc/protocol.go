package ipc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/launch"
	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/platform"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetState    CommandType = "GET_STATE"
	CommandGetDisplays CommandType = "GET_DISPLAYS"
	CommandSetGeometry CommandType = "SET_GEOMETRY"
	CommandBeginDrag   CommandType = "BEGIN_DRAG"
	CommandPointerMove CommandType = "POINTER_MOVE"
	CommandRelease     CommandType = "RELEASE"
	CommandMutate      CommandType = "MUTATE"
	CommandSetSettings CommandType = "SET_SETTINGS"
	CommandLaunch      CommandType = "LAUNCH"
	CommandSave        CommandType = "SAVE"
	CommandReload      CommandType = "RELOAD"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Error kinds let clients tell rejected input from failed I/O.
const (
	KindValidation = "validation"
	KindWrite      = "write"
	KindLaunch     = "launch"
	KindAutostart  = "autostart"
	KindProtocol   = "protocol"
)

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
	Kind   string          `json:"kind,omitempty"`
}

// StateData is returned by GET_STATE.
type StateData struct {
	toolbar.State
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// DisplaysData is returned by GET_DISPLAYS.
type DisplaysData struct {
	Displays []platform.Display `json:"displays"`
}

// GeometryPayload is the payload of SET_GEOMETRY. Display, when set, places
// the bar on a display that does not start at the origin and Screen is
// ignored.
type GeometryPayload struct {
	Screen  layout.Size  `json:"screen"`
	Display *layout.Rect `json:"display,omitempty"`
	Window  layout.Size  `json:"window"`
}

// PointerPayload is the payload of BEGIN_DRAG and POINTER_MOVE.
type PointerPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PositionData reports where the bar is after a geometry or pointer command.
type PositionData struct {
	WindowPosition layout.Point `json:"window_position"`
	Zone           layout.Zone  `json:"zone"`
	Phase          string       `json:"phase"`
	Handled        bool         `json:"handled"`
}

// MutatePayload is the payload of MUTATE. Save writes the document after a
// successful edit.
type MutatePayload struct {
	toolbar.Mutation
	Save bool `json:"save,omitempty"`
}

// MutateData is returned by MUTATE.
type MutateData struct {
	Index int `json:"index"`
}

// SettingsPayload is the payload of SET_SETTINGS. Omitted fields keep their
// current value.
type SettingsPayload struct {
	Position  *string `json:"position,omitempty"`
	Opacity   *int    `json:"opacity,omitempty"`
	Autostart *bool   `json:"autostart,omitempty"`
	Margin    *int    `json:"margin,omitempty"`
	Save      bool    `json:"save,omitempty"`
}

// LaunchPayload is the payload of LAUNCH. An empty category means a quick
// shortcut.
type LaunchPayload struct {
	Category string `json:"category,omitempty"`
	Index    int    `json:"index"`
}

// ReloadData is returned by RELOAD.
type ReloadData struct {
	Origin   config.Origin `json:"origin"`
	Warnings []string      `json:"warnings,omitempty"`
	Error    string        `json:"error,omitempty"`
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
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// newErrResponse classifies err for the client.
func newErrResponse(err error) *Response {
	resp := NewErrorResponse(err.Error())
	resp.Kind = ErrorKind(err)
	return resp
}

// ErrorKind returns the Kind string for an error from the controller.
func ErrorKind(err error) string {
	var (
		verr *config.ValidationError
		werr *config.WriteError
		lerr *launch.Error
		aerr *toolbar.AutostartError
	)
	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.As(err, &werr):
		return KindWrite
	case errors.As(err, &lerr):
		return KindLaunch
	case errors.As(err, &aerr):
		return KindAutostart
	default:
		return ""
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

// RemoteError is an error reported by the daemon.
type RemoteError struct {
	Kind    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("daemon error: %s", e.Message)
}
