package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/launchbar/internal/palette"
)

func runPalette(args []string) int {
	fs := newFlagSet("palette", "launchbar palette [--backend NAME] [--print]",
		"Pick a shortcut with an external menu and start it.")
	common := addCommonFlags(fs)
	backendName := fs.String("backend", "auto", "Menu program: auto, rofi, fuzzel, wofi, dmenu")
	fuzzy := fs.Bool("fuzzy", false, "Use fuzzy matching (rofi only)")
	printOnly := fs.Bool("print", false, "Print the choice as <category>/<index> instead of launching")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "palette takes no arguments")
		fs.Usage()
		return 2
	}

	backend, err := palette.NewBackend(*backendName)
	if err != nil {
		printErr(err)
		return 1
	}
	if f, ok := backend.(interface{ SetFuzzyMatching(bool) }); ok {
		f.SetFuzzyMatching(*fuzzy)
	}

	logger := common.logger()
	tb, err := common.session(logger)
	if err != nil {
		printErr(err)
		return 1
	}
	cfg, err := tb.Config()
	if err != nil {
		printErr(err)
		return 1
	}

	target, sc, err := palette.Choose(backend, cfg, appName)
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 1
		}
		printErr(err)
		return 1
	}
	if *printOnly {
		fmt.Println(target)
		return 0
	}
	if err := tb.Launch(target.Category, target.Index); err != nil {
		printErr(err)
		return 1
	}
	logger.Debug("palette launch", "shortcut", sc.Name)
	return 0
}
