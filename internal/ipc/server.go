package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/platform"
	"github.com/1broseidon/launchbar/internal/runtimepath"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

// Server exposes a toolbar controller over a unix socket. Requests are
// applied one at a time, so the controller always sees a single caller.
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         *toolbar.Controller
	mu           sync.Mutex // guards ctrl
	backend      platform.Backend
	logger       *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server for ctrl. An empty socketPath uses the default
// runtime location. backend may be nil.
func NewServer(socketPath string, ctrl *toolbar.Controller, backend platform.Backend, logger *slog.Logger) (*Server, error) {
	if socketPath == "" {
		p, err := runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
		socketPath = p
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Remove a stale socket left by a crashed daemon.
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		backend:    backend,
		logger:     logger,
		startTime:  time.Now(),
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Do runs fn with exclusive access to the controller. In-process callers such
// as hotkey actions use it to share the IPC server's lock.
func (s *Server) Do(fn func(*toolbar.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ctrl)
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		resp := NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
		resp.Kind = KindProtocol
		s.send(conn, resp)
		return
	}

	s.send(conn, s.handleCommand(req))
}

func (s *Server) send(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	// Pointer moves arrive many times a second; keep them out of info logs.
	if req.Command == CommandPointerMove {
		s.logger.Debug("IPC command", "command", req.Command)
	} else {
		s.logger.Info("IPC command", "command", req.Command)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Command {
	case CommandGetState:
		return ok(StateData{
			State:         s.ctrl.Snapshot(),
			UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		})
	case CommandGetDisplays:
		return s.handleGetDisplays()
	case CommandSetGeometry:
		return s.handleSetGeometry(req.Payload)
	case CommandBeginDrag:
		var p PointerPayload
		if resp := decode(req.Payload, &p); resp != nil {
			return resp
		}
		s.ctrl.BeginDrag(layout.Point{X: p.X, Y: p.Y})
		return ok(s.position(true))
	case CommandPointerMove:
		var p PointerPayload
		if resp := decode(req.Payload, &p); resp != nil {
			return resp
		}
		_, _, handled := s.ctrl.PointerMove(layout.Point{X: p.X, Y: p.Y})
		return ok(s.position(handled))
	case CommandRelease:
		handled := s.ctrl.Release()
		return ok(s.position(handled))
	case CommandMutate:
		return s.handleMutate(req.Payload)
	case CommandSetSettings:
		return s.handleSetSettings(req.Payload)
	case CommandLaunch:
		var p LaunchPayload
		if resp := decode(req.Payload, &p); resp != nil {
			return resp
		}
		var err error
		if p.Category == "" {
			err = s.ctrl.LaunchQuick(p.Index)
		} else {
			err = s.ctrl.LaunchCategory(p.Category, p.Index)
		}
		if err != nil {
			return newErrResponse(err)
		}
		return ok(nil)
	case CommandSave:
		if err := s.ctrl.Save(); err != nil {
			return newErrResponse(err)
		}
		return ok(nil)
	case CommandReload:
		res := s.ctrl.Reload()
		data := ReloadData{Origin: res.Origin, Warnings: res.Warnings}
		if res.Err != nil {
			data.Error = res.Err.Error()
		}
		return ok(data)
	default:
		resp := NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
		resp.Kind = KindProtocol
		return resp
	}
}

func (s *Server) handleGetDisplays() *Response {
	if s.backend == nil {
		return NewErrorResponse("no screen backend available")
	}
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get displays: %v", err))
	}
	return ok(DisplaysData{Displays: displays})
}

func (s *Server) handleSetGeometry(payload json.RawMessage) *Response {
	var p GeometryPayload
	if resp := decode(payload, &p); resp != nil {
		return resp
	}
	display := layout.Rect{Width: p.Screen.Width, Height: p.Screen.Height}
	if p.Display != nil {
		display = *p.Display
	}
	if display.Width <= 0 || display.Height <= 0 {
		resp := NewErrorResponse("screen size must be positive")
		resp.Kind = KindValidation
		return resp
	}
	s.ctrl.SetDisplay(display, p.Window)
	return ok(s.position(true))
}

func (s *Server) handleMutate(payload json.RawMessage) *Response {
	var p MutatePayload
	if resp := decode(payload, &p); resp != nil {
		return resp
	}
	idx, err := s.ctrl.Apply(p.Mutation)
	if err != nil {
		return newErrResponse(err)
	}
	if p.Save {
		if err := s.ctrl.Save(); err != nil {
			return newErrResponse(err)
		}
	}
	return ok(MutateData{Index: idx})
}

func (s *Server) handleSetSettings(payload json.RawMessage) *Response {
	var p SettingsPayload
	if resp := decode(payload, &p); resp != nil {
		return resp
	}

	next := s.ctrl.Settings()
	if p.Position != nil {
		next.Position = *p.Position
	}
	if p.Opacity != nil {
		next.Opacity = *p.Opacity
	}
	if p.Autostart != nil {
		next.Autostart = *p.Autostart
	}
	if p.Margin != nil {
		next.Margin = *p.Margin
	}

	// An autostart failure still leaves the other settings applied and
	// saveable.
	applyErr := s.ctrl.ApplySettings(next)
	var aerr *toolbar.AutostartError
	if applyErr != nil && !errors.As(applyErr, &aerr) {
		return newErrResponse(applyErr)
	}
	if p.Save {
		if err := s.ctrl.Save(); err != nil {
			return newErrResponse(err)
		}
	}
	if applyErr != nil {
		return newErrResponse(applyErr)
	}
	return ok(s.ctrl.Settings())
}

func (s *Server) position(handled bool) PositionData {
	return PositionData{
		WindowPosition: s.ctrl.WindowPosition(),
		Zone:           s.ctrl.Zone(),
		Phase:          s.ctrl.Phase().String(),
		Handled:        handled,
	}
}

func ok(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func decode(payload json.RawMessage, v interface{}) *Response {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		resp := NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
		resp.Kind = KindProtocol
		return resp
	}
	return nil
}

// Stop closes the listener and removes the socket. In-flight requests finish
// on their own connections.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
