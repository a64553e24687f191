package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/launchbar/internal/autostart"
	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/ipc"
	"github.com/1broseidon/launchbar/internal/launch"
	"github.com/1broseidon/launchbar/internal/logging"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

const appName = "launchbar"

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "launch":
		os.Exit(runLaunch(os.Args[2:]))
	case "shortcut":
		os.Exit(runShortcut(os.Args[2:]))
	case "category":
		os.Exit(runCategory(os.Args[2:]))
	case "settings":
		os.Exit(runSettings(os.Args[2:]))
	case "position":
		os.Exit(runPosition(os.Args[2:]))
	case "style":
		os.Exit(runStyle(os.Args[2:]))
	case "autostart":
		os.Exit(runAutostart(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: launchbar <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Run the toolbar core (foreground)")
	fmt.Fprintln(w, "  status              Show daemon state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list                List shortcuts and categories")
	fmt.Fprintln(w, "  launch              Start a shortcut")
	fmt.Fprintln(w, "  palette             Pick a shortcut with rofi/fuzzel/wofi/dmenu")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  shortcut add        Add a shortcut")
	fmt.Fprintln(w, "  shortcut update     Replace a shortcut")
	fmt.Fprintln(w, "  shortcut remove     Remove a shortcut")
	fmt.Fprintln(w, "  shortcut up|down    Reorder a shortcut")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  category add        Add a category")
	fmt.Fprintln(w, "  category edit       Rename a category and/or set its icon")
	fmt.Fprintln(w, "  category remove     Remove a category")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  settings            Show or change settings")
	fmt.Fprintln(w, "  position            Show or change the bar position")
	fmt.Fprintln(w, "  style               Print the bar stylesheet")
	fmt.Fprintln(w, "  autostart           Show or change start-with-session")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config path         Print the configuration path")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'launchbar <command> --help' for command-specific options.")
}

// commonFlags are accepted by every command that touches the document.
type commonFlags struct {
	configPath string
	logLevel   string
	socket     string
	offline    bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.configPath, "config", "", "Config file path (default: $"+config.EnvConfigPath+" or "+config.FileName+" beside the executable)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $"+logging.EnvLevel+" or info)")
	fs.StringVar(&c.socket, "socket", "", "Daemon socket path")
	fs.BoolVar(&c.offline, "offline", false, "Edit the file directly even when the daemon is running")
	return c
}

func (c *commonFlags) path() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultConfigPath()
}

func (c *commonFlags) logger() *slog.Logger {
	logger, _, err := logging.New(logging.Options{Level: c.logLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger, _, _ = logging.New(logging.Options{})
	}
	return logger
}

func (c *commonFlags) client() *ipc.Client {
	if c.socket != "" {
		return ipc.NewClientWithPath(c.socket)
	}
	return ipc.NewClient()
}

// daemon returns a client when a daemon is running on the same document.
func (c *commonFlags) daemon() (*ipc.Client, *ipc.StateData) {
	if c.offline {
		return nil, nil
	}
	client := c.client()
	state, err := client.GetState()
	if err != nil {
		return nil, nil
	}
	if c.configPath != "" && state.Path != "" && state.Path != c.configPath {
		return nil, nil
	}
	return client, state
}

// controllerOptions wires a controller for the document at path. The
// autostart entry names path so the session starts the bar on the same
// document.
func controllerOptions(logger *slog.Logger, path string) toolbar.Options {
	opts := toolbar.Options{
		Launcher: &launch.Exec{Logger: logger},
		Logger:   logger,
	}
	if exe, err := os.Executable(); err == nil {
		args := []string{"daemon"}
		if path != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			args = append(args, "--config", path)
		}
		opts.Autostart = autostart.New(appName, exe, args)
	}
	return opts
}

// openLocal loads the document for an offline command.
func (c *commonFlags) openLocal(logger *slog.Logger) (*toolbar.Controller, error) {
	path, err := c.path()
	if err != nil {
		return nil, err
	}
	ctrl, res := toolbar.Open(path, controllerOptions(logger, path))
	if res.Err != nil {
		// The defaults are in memory; saving now would overwrite the user's file.
		return nil, res.Err
	}
	return ctrl, nil
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func newFlagSet(name, usage, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		if description != "" {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, description)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	return fs
}

func printErr(err error) {
	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(os.Stderr, msg)
}
