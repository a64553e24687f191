// Package hotkeys binds global X11 key sequences for the daemon.
package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/launchbar/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// x11Accessor is implemented by backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler returns a handler for backend, which must be an X11 backend.
func NewHandler(backend platform.Backend, logger *slog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("global hotkeys need an X11 display")
	}
	if logger == nil {
		logger = slog.Default()
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{xu: xu, root: accessor.RootWindow(), logger: logger}, nil
}

// Bind runs action whenever keySequence (e.g. "Mod4-space") is pressed.
// Errors from action are logged.
func (h *Handler) Bind(keySequence, name string, action func() error) error {
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		h.logger.Debug("hotkey pressed", "keys", keySequence, "action", name)
		if err := action(); err != nil {
			h.logger.Error("hotkey action failed", "keys", keySequence, "action", name, "error", err)
		}
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return fmt.Errorf("failed to bind %s to %s: %w", keySequence, name, err)
	}
	h.logger.Info("hotkey registered", "keys", keySequence, "action", name)
	return nil
}

// configureIgnoreMods makes bindings fire regardless of CapsLock, NumLock and
// ScrollLock.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	locks := []uint16{uint16(xproto.ModMaskLock)}
	for _, keysym := range []string{"Num_Lock", "Scroll_Lock"} {
		mask := modMaskForKeysym(xu, keysym)
		if mask == 0 {
			continue
		}
		dup := false
		for _, m := range locks {
			if m == mask {
				dup = true
			}
		}
		if !dup {
			locks = append(locks, mask)
		}
	}

	ignore := make([]uint16, 0, 1<<len(locks))
	for subset := 0; subset < (1 << len(locks)); subset++ {
		var mask uint16
		for bit, m := range locks {
			if subset&(1<<bit) != 0 {
				mask |= m
			}
		}
		ignore = append(ignore, mask)
	}
	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
