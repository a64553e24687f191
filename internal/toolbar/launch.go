package toolbar

import (
	"errors"
	"fmt"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/launch"
)

var errNoLauncher = errors.New("no launcher configured")

// Launch starts a shortcut's program. Failures are logged and returned as
// *launch.Error; they never affect the controller.
func (c *Controller) Launch(s config.Shortcut) error {
	var err error
	if c.opts.Launcher == nil {
		err = &launch.Error{Exe: s.Exe, Err: errNoLauncher}
	} else if err = c.opts.Launcher.Launch(s.Exe, s.Args); err != nil {
		var le *launch.Error
		if !errors.As(err, &le) {
			err = &launch.Error{Exe: s.Exe, Err: err}
		}
	}
	if err != nil {
		c.log.Error("launch failed", "shortcut", s.Name, "error", err)
		return err
	}
	return nil
}

// LaunchQuick starts quick shortcut i.
func (c *Controller) LaunchQuick(i int) error {
	if err := checkIndex(quickPath, c.cfg.QuickShortcuts, i); err != nil {
		return err
	}
	return c.Launch(c.cfg.QuickShortcuts[i])
}

// LaunchCategory starts shortcut i of a category.
func (c *Controller) LaunchCategory(category string, i int) error {
	ci, err := c.category(category)
	if err != nil {
		return err
	}
	list := c.cfg.Categories[ci].Shortcuts
	if err := checkIndex(fmt.Sprintf("categories.%s", category), list, i); err != nil {
		return err
	}
	return c.Launch(list[i])
}
