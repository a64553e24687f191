package toolbar

import (
	"fmt"

	"github.com/1broseidon/launchbar/internal/autostart"
	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/style"
)

// AutostartError reports that session autostart could not be changed. The
// stored flag is left as it was; other settings are unaffected.
type AutostartError struct {
	Enable bool
	Err    error
}

func (e *AutostartError) Error() string {
	verb := "disable"
	if e.Enable {
		verb = "enable"
	}
	return fmt.Sprintf("failed to %s autostart: %v", verb, e.Err)
}

func (e *AutostartError) Unwrap() error { return e.Err }

func checkPosition(pos string) (layout.Zone, error) {
	z, ok := layout.ParseZone(pos)
	if !ok {
		return "", invalid("settings.position", fmt.Errorf("%w: %q", config.ErrInvalidPosition, pos))
	}
	return z, nil
}

func checkOpacity(pct int) error {
	if pct < config.MinOpacity || pct > config.MaxOpacity {
		return invalid("settings.opacity", fmt.Errorf("%w: %d not in [%d,%d]", config.ErrInvalidOpacity, pct, config.MinOpacity, config.MaxOpacity))
	}
	return nil
}

func checkMargin(px int) error {
	if px < 0 {
		return invalid("settings.margin", fmt.Errorf("margin must be >= 0, got %d", px))
	}
	return nil
}

// SetPosition stores a zone and moves the bar to its anchor.
func (c *Controller) SetPosition(pos string) error {
	z, err := checkPosition(pos)
	if err != nil {
		return err
	}
	if c.cfg.Settings.Position != string(z) {
		c.cfg.Settings.Position = string(z)
		c.changed()
	}
	c.reanchor()
	return nil
}

// SetOpacity stores the background opacity percentage.
func (c *Controller) SetOpacity(pct int) error {
	if err := checkOpacity(pct); err != nil {
		return err
	}
	if c.cfg.Settings.Opacity != pct {
		c.cfg.Settings.Opacity = pct
		c.changed()
	}
	return nil
}

// SetMargin stores the distance between the bar and the screen edge.
func (c *Controller) SetMargin(px int) error {
	if err := checkMargin(px); err != nil {
		return err
	}
	if c.cfg.Settings.Margin != px {
		c.cfg.Settings.Margin = px
		c.changed()
	}
	c.reanchor()
	return nil
}

// SetAutostart asks the registrar to enable or disable autostart and records
// the flag only if that worked.
func (c *Controller) SetAutostart(enable bool) error {
	reg := c.opts.Autostart
	if reg == nil {
		return &AutostartError{Enable: enable, Err: autostart.ErrUnsupported}
	}
	if err := reg.Set(enable); err != nil {
		c.log.Warn("autostart change failed", "enable", enable, "error", err)
		return &AutostartError{Enable: enable, Err: err}
	}
	if c.cfg.Settings.Autostart != enable {
		c.cfg.Settings.Autostart = enable
		c.changed()
	}
	return nil
}

// ApplySettings validates and stores a whole settings value, as the settings
// dialog does on accept. Position, opacity and margin are applied together or
// not at all. Autostart is attempted last; its failure is returned as an
// *AutostartError with the other settings already applied.
func (c *Controller) ApplySettings(s config.Settings) error {
	if _, err := checkPosition(s.Position); err != nil {
		return err
	}
	if err := checkOpacity(s.Opacity); err != nil {
		return err
	}
	if err := checkMargin(s.Margin); err != nil {
		return err
	}

	_ = c.SetPosition(s.Position)
	_ = c.SetOpacity(s.Opacity)
	_ = c.SetMargin(s.Margin)
	if s.Autostart != c.cfg.Settings.Autostart {
		return c.SetAutostart(s.Autostart)
	}
	return nil
}

// Alpha returns the frame background alpha for the current opacity.
func (c *Controller) Alpha() int { return style.AlphaFromPercent(c.cfg.Settings.Opacity) }

// Stylesheet returns the bar's stylesheet for the current opacity.
func (c *Controller) Stylesheet() *style.Stylesheet {
	return style.ToolbarStylesheet(c.cfg.Settings.Opacity)
}
