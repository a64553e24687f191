package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/ipc"
	"github.com/1broseidon/launchbar/internal/layout"
	"github.com/1broseidon/launchbar/internal/style"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

// applySettings changes the settings named in p and saves, through the daemon
// when one is running. An autostart failure is reported but the other
// settings are still saved.
func applySettings(common *commonFlags, logger *slog.Logger, p ipc.SettingsPayload) (config.Settings, error) {
	p.Save = true
	if client, _ := common.daemon(); client != nil {
		s, err := client.SetSettings(p)
		if err != nil {
			var rerr *ipc.RemoteError
			if errors.As(err, &rerr) && rerr.Kind == ipc.KindAutostart {
				state, serr := client.GetState()
				if serr == nil {
					return state.Config.Settings, err
				}
			}
			return config.Settings{}, err
		}
		return *s, nil
	}

	ctrl, err := common.openLocal(logger)
	if err != nil {
		return config.Settings{}, err
	}
	next := ctrl.Settings()
	if p.Position != nil {
		next.Position = *p.Position
	}
	if p.Opacity != nil {
		next.Opacity = *p.Opacity
	}
	if p.Margin != nil {
		next.Margin = *p.Margin
	}
	if p.Autostart != nil {
		next.Autostart = *p.Autostart
	}

	applyErr := ctrl.ApplySettings(next)
	var aerr *toolbar.AutostartError
	if applyErr != nil && !errors.As(applyErr, &aerr) {
		return config.Settings{}, applyErr
	}
	if err := ctrl.Save(); err != nil {
		return config.Settings{}, err
	}
	return ctrl.Settings(), applyErr
}

func printSettings(s config.Settings) {
	fmt.Printf("position:  %s\n", s.Position)
	fmt.Printf("opacity:   %d\n", s.Opacity)
	fmt.Printf("margin:    %d\n", s.Margin)
	fmt.Printf("autostart: %v\n", s.Autostart)
}

func runSettings(args []string) int {
	fs := newFlagSet("settings", "launchbar settings [--position ZONE] [--opacity PCT] [--margin PX] [--autostart=true|false]",
		"Show the settings, or change and save the ones given.")
	common := addCommonFlags(fs)
	position := fs.String("position", "", "Bar zone: "+zoneList())
	opacity := fs.Int("opacity", config.DefaultOpacity, fmt.Sprintf("Background opacity percent (%d-%d)", config.MinOpacity, config.MaxOpacity))
	margin := fs.Int("margin", config.DefaultMargin, "Distance from the screen edge in px")
	auto := fs.Bool("autostart", false, "Start with the desktop session")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "settings takes no arguments")
		fs.Usage()
		return 2
	}

	var p ipc.SettingsPayload
	changed := false
	if flagWasSet(fs, "position") {
		p.Position = position
		changed = true
	}
	if flagWasSet(fs, "opacity") {
		p.Opacity = opacity
		changed = true
	}
	if flagWasSet(fs, "margin") {
		p.Margin = margin
		changed = true
	}
	if flagWasSet(fs, "autostart") {
		p.Autostart = auto
		changed = true
	}

	if !changed {
		cfg, err := common.loadConfig()
		if err != nil {
			printErr(err)
			return 1
		}
		printSettings(cfg.Settings)
		return 0
	}

	s, err := applySettings(common, common.logger(), p)
	if err != nil {
		printErr(err)
		if s != (config.Settings{}) {
			printSettings(s)
		}
		return 1
	}
	printSettings(s)
	return 0
}

func zoneList() string {
	names := make([]string, 0, len(layout.Zones()))
	for _, z := range layout.Zones() {
		names = append(names, z.String())
	}
	return strings.Join(names, ", ")
}

func runPosition(args []string) int {
	fs := newFlagSet("position", "launchbar position [zone]",
		"Show the bar position, or set it to one of: "+zoneList())
	common := addCommonFlags(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "position takes at most one argument")
		fs.Usage()
		return 2
	}

	if fs.NArg() == 0 {
		if _, state := common.daemon(); state != nil {
			fmt.Printf("%s (window at %d,%d)\n", state.Zone, state.WindowPosition.X, state.WindowPosition.Y)
			return 0
		}
		cfg, err := common.loadConfig()
		if err != nil {
			printErr(err)
			return 1
		}
		fmt.Println(layout.Resolve(cfg.Settings.Position))
		return 0
	}

	s, err := applySettings(common, common.logger(), settingsPosition(fs.Arg(0)))
	if err != nil {
		printErr(err)
		return 1
	}
	fmt.Println(s.Position)
	return 0
}

func runStyle(args []string) int {
	fs := newFlagSet("style", "launchbar style [--opacity PCT] [--rewrite FILE]",
		"Print the bar stylesheet for the configured opacity. With --rewrite, print\n"+
			"FILE with the frame background alpha replaced instead.")
	common := addCommonFlags(fs)
	opacity := fs.Int("opacity", 0, "Opacity percent to render (default: configured value)")
	rewrite := fs.String("rewrite", "", "Stylesheet file whose frame background alpha is replaced")
	selector := fs.String("selector", style.FrameSelector, "Rule to rewrite with --rewrite")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	pct := *opacity
	if !flagWasSet(fs, "opacity") {
		cfg, err := common.loadConfig()
		if err != nil {
			printErr(err)
			return 1
		}
		pct = cfg.Settings.Opacity
	}
	alpha := style.AlphaFromPercent(config.ClampOpacity(pct))

	if *rewrite == "" {
		fmt.Print(style.ToolbarStylesheet(config.ClampOpacity(pct)).String())
		return 0
	}

	data, err := os.ReadFile(*rewrite)
	if err != nil {
		printErr(err)
		return 1
	}
	out, err := style.RewriteRuleBackgroundAlpha(string(data), *selector, alpha)
	if err != nil {
		// The input is printed unchanged so the command can sit in a pipeline.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	fmt.Print(out)
	return 0
}

func runAutostart(args []string) int {
	fs := newFlagSet("autostart", "launchbar autostart [on|off]",
		"Show whether launchbar starts with the session, or turn it on or off.")
	common := addCommonFlags(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	logger := common.logger()
	if fs.NArg() == 0 {
		path, err := common.path()
		if err != nil {
			printErr(err)
			return 1
		}
		opts := controllerOptions(logger, path)
		if opts.Autostart == nil {
			fmt.Fprintln(os.Stderr, "autostart: cannot locate executable")
			return 1
		}
		enabled, err := opts.Autostart.Enabled()
		if err != nil {
			printErr(err)
			return 1
		}
		fmt.Printf("autostart: %v\n", enabled)
		return 0
	}

	var enable bool
	switch strings.ToLower(fs.Arg(0)) {
	case "on", "true", "enable", "yes":
		enable = true
	case "off", "false", "disable", "no":
		enable = false
	default:
		fmt.Fprintf(os.Stderr, "expected on or off, got %q\n", fs.Arg(0))
		return 2
	}

	s, err := applySettings(common, logger, ipc.SettingsPayload{Autostart: &enable})
	if err != nil {
		printErr(err)
		return 1
	}
	fmt.Printf("autostart: %v\n", s.Autostart)
	return 0
}

func settingsPosition(zone string) ipc.SettingsPayload {
	return ipc.SettingsPayload{Position: &zone}
}
