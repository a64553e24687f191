package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/style"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Width(3).Align(lipgloss.Right)
)

// loadConfig returns the daemon's document when one is running, otherwise
// the file on disk.
func (c *commonFlags) loadConfig() (*config.Config, error) {
	if _, state := c.daemon(); state != nil && state.Config != nil {
		return state.Config, nil
	}
	path, err := c.path()
	if err != nil {
		return nil, err
	}
	res := config.Load(path)
	if res.Err != nil {
		return nil, res.Err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return res.Config, nil
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "launchbar status [--json]", "Show daemon state via IPC.")
	socket := fs.String("socket", "", "Daemon socket path")
	jsonOut := fs.Bool("json", false, "Print the full state as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	common := &commonFlags{socket: *socket}
	state, err := common.client().GetState()
	if err != nil {
		printErr(err)
		return 1
	}
	if *jsonOut {
		return printJSON(state)
	}
	fmt.Printf("config:          %s\n", state.Path)
	fmt.Printf("dirty:           %v\n", state.Dirty)
	if state.Unreadable {
		fmt.Println("unreadable:      true (running on defaults; file left as is)")
	}
	fmt.Printf("phase:           %s\n", state.Phase)
	fmt.Printf("position:        %s (zone %s)\n", state.Position, state.Zone)
	fmt.Printf("display:         %dx%d+%d+%d\n", state.Display.Width, state.Display.Height, state.Display.X, state.Display.Y)
	fmt.Printf("window:          %dx%d at %d,%d\n", state.Window.Width, state.Window.Height, state.WindowPosition.X, state.WindowPosition.Y)
	fmt.Printf("alpha:           %d\n", state.Alpha)
	fmt.Printf("uptime_seconds:  %d\n", state.UptimeSeconds)
	return 0
}

func runList(args []string) int {
	fs := newFlagSet("list", "launchbar list [--json] [--category NAME]", "List quick shortcuts and categories in bar order.")
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "Print the document as JSON")
	only := fs.String("category", "", "Only list this category")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := common.loadConfig()
	if err != nil {
		printErr(err)
		return 1
	}
	if *only != "" {
		c, ok := cfg.Categories.Get(*only)
		if !ok {
			fmt.Fprintf(os.Stderr, "category %q not found\n", *only)
			return 1
		}
		if *jsonOut {
			return printJSON(c)
		}
		printCategory(c)
		return 0
	}
	if *jsonOut {
		return printJSON(cfg)
	}

	fmt.Println(headerStyle.Render("Quick shortcuts"))
	if len(cfg.QuickShortcuts) == 0 {
		fmt.Println(dimStyle.Render("  (none)"))
	}
	for i, s := range cfg.QuickShortcuts {
		printShortcut(i, s)
	}
	for _, c := range cfg.Categories {
		fmt.Println()
		printCategory(c)
	}
	return 0
}

func printCategory(c config.Category) {
	line := headerStyle.Render(c.Name)
	if c.Icon != "" {
		line += " " + dimStyle.Render("("+c.Icon+")")
	}
	fmt.Println(line)
	if len(c.Shortcuts) == 0 {
		fmt.Println(dimStyle.Render("  (empty)"))
	}
	for i, s := range c.Shortcuts {
		printShortcut(i, s)
	}
}

func printShortcut(i int, s config.Shortcut) {
	b := style.NewBadge(s.Name)
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(b.Color.Hex())).
		Padding(0, 1).
		Render(b.Letter)
	cmd := strings.TrimSpace(s.Exe + " " + strings.Join(s.Args, " "))
	fmt.Printf("%s %s %s  %s\n", indexStyle.Render(strconv.Itoa(i)), badge, s.Name, dimStyle.Render(cmd))
}

func printJSON(v interface{}) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		printErr(err)
		return 1
	}
	return 0
}

// findShortcut resolves a user reference (an index or a name) within a list.
func findShortcut(list []config.Shortcut, ref string) (int, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= len(list) {
			return -1, fmt.Errorf("index %d out of range (%d shortcuts)", i, len(list))
		}
		return i, nil
	}
	for i, s := range list {
		if strings.EqualFold(s.Name, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no shortcut named %q", ref)
}

func shortcutsIn(cfg *config.Config, category string) ([]config.Shortcut, error) {
	if category == "" {
		return cfg.QuickShortcuts, nil
	}
	c, ok := cfg.Categories.Get(category)
	if !ok {
		return nil, fmt.Errorf("category %q not found", category)
	}
	return c.Shortcuts, nil
}

func runLaunch(args []string) int {
	fs := newFlagSet("launch", "launchbar launch [--category NAME] <index|name>",
		"Start a shortcut. Without --category the quick shortcuts are searched.")
	common := addCommonFlags(fs)
	category := fs.String("category", "", "Category holding the shortcut")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "launch requires <index|name>")
		fs.Usage()
		return 2
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
	list, err := shortcutsIn(cfg, *category)
	if err != nil {
		printErr(err)
		return 1
	}
	idx, err := findShortcut(list, fs.Arg(0))
	if err != nil {
		printErr(err)
		return 1
	}
	if err := tb.Launch(*category, idx); err != nil {
		printErr(err)
		return 1
	}
	return 0
}
