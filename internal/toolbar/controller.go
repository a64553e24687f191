// Package toolbar owns the in-memory configuration and the bar's interaction
// state. A presentation layer drives it with pointer events and edits and
// reads back positions and styles; nothing here draws.
//
// A Controller is not safe for concurrent use. Callers that serve several
// clients (the IPC and MCP servers) serialize access themselves.
package toolbar

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/launchbar/internal/autostart"
	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/launch"
	"github.com/1broseidon/launchbar/internal/layout"
)

// Options wires a Controller to its collaborators. Every field is optional.
type Options struct {
	// Path is where Save writes. Empty disables saving.
	Path      string
	Launcher  launch.Launcher
	Autostart autostart.Registrar
	Logger    *slog.Logger
}

// Controller is the single owner of the configuration document.
type Controller struct {
	cfg  *config.Config
	opts Options
	log  *slog.Logger

	display layout.Rect // usable area, virtual-screen coordinates
	window  layout.Size
	topLeft layout.Point
	drag    dragState

	dirty bool

	// unreadable is set while the document on disk could not be parsed and
	// the controller holds the defaults instead. Close then leaves the file
	// alone; an explicit Save or a successful Reload clears it.
	unreadable bool
}

// New returns a controller owning cfg. The caller must not use cfg afterwards.
func New(cfg *config.Config, opts Options) *Controller {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{cfg: cfg, opts: opts, log: logger}
}

// Open loads the document at path and returns a controller for it. Load never
// fails; problems are logged and reported through the returned result.
func Open(path string, opts Options) (*Controller, *config.LoadResult) {
	opts.Path = path
	res := config.Load(path)
	c := New(res.Config, opts)
	c.unreadable = isReadError(res.Err)
	c.logLoad(res)
	return c, res
}

func isReadError(err error) bool {
	var rerr *config.ReadError
	return errors.As(err, &rerr)
}

func (c *Controller) logLoad(res *config.LoadResult) {
	for _, w := range res.Warnings {
		c.log.Warn("config adjusted", "path", res.Path, "detail", w)
	}
	if res.Err != nil {
		c.log.Error("config unusable; using defaults", "path", res.Path, "error", res.Err)
		return
	}
	c.log.Info("config loaded", "path", res.Path, "origin", res.Origin,
		"quick_shortcuts", len(res.Config.QuickShortcuts),
		"categories", len(res.Config.Categories))
}

// Config returns a copy of the current document.
func (c *Controller) Config() *config.Config { return c.cfg.Clone() }

// Settings returns the current settings.
func (c *Controller) Settings() config.Settings { return c.cfg.Settings }

// Path returns the document path, or "" when saving is disabled.
func (c *Controller) Path() string { return c.opts.Path }

// Dirty reports whether the document changed since it was loaded or saved.
func (c *Controller) Dirty() bool { return c.dirty }

// Save writes the document. This is the only way edits reach the disk besides
// Close. Failures are returned as *config.WriteError and do not affect the
// in-memory document.
func (c *Controller) Save() error {
	if c.opts.Path == "" {
		return nil
	}
	if err := config.Save(c.cfg, c.opts.Path); err != nil {
		c.log.Error("failed to save config", "path", c.opts.Path, "error", err)
		return err
	}
	c.dirty = false
	c.unreadable = false
	c.log.Debug("config saved", "path", c.opts.Path)
	return nil
}

// Close ends any drag and saves, so a position chosen by dragging survives a
// restart. When the document could not be read at load time nothing is
// written, so the user's file stays available for repair.
func (c *Controller) Close() error {
	c.Release()
	if c.unreadable {
		c.log.Warn("config was unreadable; not saving on close", "path", c.opts.Path)
		return nil
	}
	return c.Save()
}

// Unreadable reports whether the controller is running on defaults because
// the document on disk could not be read.
func (c *Controller) Unreadable() bool { return c.unreadable }

// Reload discards unsaved edits and re-reads the document. Without a path the
// document is kept as is.
func (c *Controller) Reload() *config.LoadResult {
	if c.opts.Path == "" {
		return &config.LoadResult{Config: c.cfg.Clone(), Origin: config.OriginDefault}
	}
	res := config.Load(c.opts.Path)
	c.Release()
	c.cfg = res.Config
	c.dirty = false
	c.unreadable = isReadError(res.Err)
	c.logLoad(res)
	c.reanchor()
	return res
}

func (c *Controller) changed() { c.dirty = true }
