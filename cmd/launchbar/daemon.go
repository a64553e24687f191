package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/hotkeys"
	"github.com/1broseidon/launchbar/internal/ipc"
	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/logging"
	"github.com/1broseidon/launchbar/internal/palette"
	"github.com/1broseidon/launchbar/internal/platform"
	"github.com/1broseidon/launchbar/internal/runtimepath"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

// eventLooper is implemented by backends that dispatch X events.
type eventLooper interface {
	EventLoop()
	Quit()
}

func runDaemon(args []string) int {
	fs := newFlagSet("daemon", "launchbar daemon [flags]",
		"Load the configuration, anchor the bar on the active display and serve\n"+
			"presentation and CLI clients over the IPC socket until SIGINT/SIGTERM.\n"+
			"SIGHUP reloads the configuration. The document is saved on exit.")
	common := addCommonFlags(fs)
	screen := fs.String("screen", "", "Screen size WxH instead of asking the display server")
	window := fs.String("window", "400x56", "Initial bar size WxH until a presentation client reports it")
	hotkey := fs.String("hotkey", "", "Global key sequence that opens the shortcut palette (e.g. Mod4-space)")
	paletteName := fs.String("palette", "auto", "Palette backend for --hotkey: auto, rofi, fuzzel, wofi, dmenu")
	logFile := fs.String("log-file", "", "Also write logs to this size-rotated file")
	logToFile := fs.Bool("log-to-file", false, "Write logs to launchbar.log in the runtime dir")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	if *logToFile && *logFile == "" {
		p, err := runtimepath.LogPath()
		if err != nil {
			printErr(err)
			return 1
		}
		*logFile = p
	}
	logger, closer, err := logging.New(logging.Options{Level: common.logLevel, File: *logFile})
	if err != nil {
		printErr(err)
		return 2
	}
	defer closer.Close()
	slog.SetDefault(logger)

	windowSize, err := platform.ParseSize(*window)
	if err != nil {
		printErr(fmt.Errorf("--window: %w", err))
		return 2
	}

	path, err := common.path()
	if err != nil {
		printErr(err)
		return 1
	}
	ctrl, _ := toolbar.Open(path, controllerOptions(logger, path))
	if ctrl.Unreadable() {
		logger.Warn("running on defaults; the config file is left as is until an explicit save", "path", path)
	}

	backend, err := openBackend(*screen)
	if err != nil {
		if *screen != "" {
			printErr(err)
			return 2
		}
		logger.Warn("no screen backend; waiting for SET_GEOMETRY", "error", err)
	} else {
		defer backend.Disconnect()
		anchorOnActiveDisplay(ctrl, backend, windowSize, logger)
	}

	server, err := ipc.NewServer(common.socket, ctrl, backend, logger)
	if err != nil {
		printErr(err)
		return 1
	}
	if err := server.Start(); err != nil {
		printErr(err)
		return 1
	}

	var looper eventLooper
	if *hotkey != "" {
		looper, err = bindPaletteHotkey(server, backend, *hotkey, *paletteName, logger)
		if err != nil {
			logger.Warn("palette hotkey disabled", "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading config")
				server.Do(func(c *toolbar.Controller) error {
					c.Reload()
					return nil
				})
				continue
			}
			logger.Info("shutting down launchbar daemon", "signal", sig.String())
			return
		}
	}()

	if looper != nil {
		go func() {
			<-done
			looper.Quit()
		}()
		logger.Info("entering event loop")
		looper.EventLoop()
		<-done
	} else {
		<-done
	}

	signal.Stop(sigCh)
	server.Stop()
	if err := server.Do(func(c *toolbar.Controller) error { return c.Close() }); err != nil {
		logger.Error("failed to save on exit", "error", err)
		return 1
	}
	return 0
}

func openBackend(screen string) (platform.Backend, error) {
	if screen != "" {
		size, err := platform.ParseSize(screen)
		if err != nil {
			return nil, fmt.Errorf("--screen: %w", err)
		}
		return platform.NewStatic(size.Width, size.Height), nil
	}
	return platform.NewDefault()
}

// anchorOnActiveDisplay places the bar in the usable area of the display under
// the pointer.
func anchorOnActiveDisplay(ctrl *toolbar.Controller, backend platform.Backend, window layout.Size, logger *slog.Logger) {
	display, err := backend.ActiveDisplay()
	if err != nil {
		logger.Warn("failed to read active display", "error", err)
		return
	}
	area := display.Usable
	if area.Width <= 0 || area.Height <= 0 {
		area = display.Bounds
	}
	pos := ctrl.SetDisplay(area, window)
	logger.Info("bar anchored",
		"display", display.Name,
		"area", fmt.Sprintf("%dx%d+%d+%d", area.Width, area.Height, area.X, area.Y),
		"zone", ctrl.Zone(),
		"x", pos.X, "y", pos.Y)
}

func bindPaletteHotkey(server *ipc.Server, backend platform.Backend, keys, backendName string, logger *slog.Logger) (eventLooper, error) {
	if backend == nil {
		return nil, errors.New("no screen backend")
	}
	looper, ok := backend.(eventLooper)
	if !ok {
		return nil, errors.New("backend has no event loop")
	}
	pal, err := palette.NewBackend(backendName)
	if err != nil {
		return nil, err
	}
	handler, err := hotkeys.NewHandler(backend, logger)
	if err != nil {
		return nil, err
	}

	busy := make(chan struct{}, 1)
	err = handler.Bind(keys, "palette", func() error {
		// The palette blocks on a child process; keep the event loop free.
		select {
		case busy <- struct{}{}:
		default:
			return nil
		}
		go func() {
			defer func() { <-busy }()
			if err := choosePalette(server, pal); err != nil && !errors.Is(err, palette.ErrCancelled) {
				logger.Error("palette launch failed", "error", err)
			}
		}()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return looper, nil
}

// choosePalette shows the palette on a config snapshot so the daemon keeps
// serving while the user picks, then launches the choice under the lock.
func choosePalette(server *ipc.Server, pal palette.Backend) error {
	var cfg *config.Config
	server.Do(func(c *toolbar.Controller) error {
		cfg = c.Config()
		return nil
	})

	target, _, err := palette.Choose(pal, cfg, appName)
	if err != nil {
		return err
	}
	return server.Do(func(c *toolbar.Controller) error {
		if target.Category == "" {
			return c.LaunchQuick(target.Index)
		}
		return c.LaunchCategory(target.Category, target.Index)
	})
}
