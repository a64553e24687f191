package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/1broseidon/launchbar/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  launchbar config print [--config PATH] [--format json|yaml] [--defaults]")
	fmt.Fprintln(w, "  launchbar config validate [--config PATH]")
	fmt.Fprintln(w, "  launchbar config path [--config PATH]")
}

// readDocument parses the file without creating it when it is missing.
func readDocument(path string) (*config.Config, []string, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.DefaultConfig(), nil, false, nil
	}
	if err != nil {
		return nil, nil, false, &config.ReadError{Path: path, Err: err}
	}
	cfg, warnings, err := config.Parse(data, config.FormatForPath(path))
	if err != nil {
		return nil, nil, true, &config.ReadError{Path: path, Err: err}
	}
	return cfg, warnings, true, nil
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "print":
		fs := newFlagSet("config print", "launchbar config print [--format json|yaml] [--defaults]",
			"Print the effective configuration, after defaults and clamping.")
		common := addCommonFlags(fs)
		format := fs.String("format", "", "Output format: json or yaml (default: the file's format)")
		defaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}

		path, err := common.path()
		if err != nil {
			printErr(err)
			return 1
		}
		cfg := config.DefaultConfig()
		if !*defaults {
			if cfg, _, _, err = readDocument(path); err != nil {
				printErr(err)
				return 1
			}
		}

		f := config.FormatForPath(path)
		switch *format {
		case "":
		case "json":
			f = config.FormatJSON
		case "yaml", "yml":
			f = config.FormatYAML
		default:
			fmt.Fprintf(os.Stderr, "unknown format %q (expected: json, yaml)\n", *format)
			return 2
		}
		data, err := config.Encode(cfg, f)
		if err != nil {
			printErr(err)
			return 1
		}
		os.Stdout.Write(data)
		return 0

	case "validate":
		fs := newFlagSet("config validate", "launchbar config validate [--config PATH]",
			"Check the document. Warnings describe values that load will correct.")
		common := addCommonFlags(fs)
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		path, err := common.path()
		if err != nil {
			printErr(err)
			return 1
		}

		cfg, warnings, exists, err := readDocument(path)
		if err != nil {
			printErr(err)
			return 1
		}
		more, verr := cfg.Validate()
		for _, w := range append(warnings, more...) {
			fmt.Printf("warning: %s\n", w)
		}
		if verr != nil {
			printErr(verr)
			return 1
		}
		if !exists {
			fmt.Printf("config: %s does not exist; defaults will be written on first start\n", path)
			return 0
		}
		fmt.Println("config: ok")
		return 0

	case "path":
		fs := newFlagSet("config path", "launchbar config path [--config PATH]", "Print the document path in use.")
		common := addCommonFlags(fs)
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		path, err := common.path()
		if err != nil {
			printErr(err)
			return 1
		}
		fmt.Println(path)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}
