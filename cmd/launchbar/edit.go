package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/mcp"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

// session returns a store that edits through the daemon when one is running
// on the same document, or the file directly otherwise.
func (c *commonFlags) session(logger *slog.Logger) (mcp.Toolbar, error) {
	if client, _ := c.daemon(); client != nil {
		logger.Debug("using running daemon")
		return &mcp.Remote{Client: client}, nil
	}
	ctrl, err := c.openLocal(logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("editing file directly", "path", ctrl.Path())
	return mcp.NewLocal(ctrl), nil
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printShortcutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  launchbar shortcut add [--category NAME] [--icon PATH] [--tooltip TEXT] <name> <exe> [args...]")
	fmt.Fprintln(w, "  launchbar shortcut update [--category NAME] [--name N] [--exe PATH] [--icon PATH] [--tooltip TEXT] <index|name> [args...]")
	fmt.Fprintln(w, "  launchbar shortcut remove [--category NAME] <index|name>")
	fmt.Fprintln(w, "  launchbar shortcut up|down [--category NAME] <index|name>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Without --category the quick shortcuts are edited. Changes are saved immediately.")
}

func runShortcut(args []string) int {
	if len(args) == 0 {
		printShortcutUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "add":
		return runShortcutAdd(args[1:])
	case "update":
		return runShortcutUpdate(args[1:])
	case "remove", "rm":
		return runShortcutRef(args[0], args[1:], toolbar.OpRemoveShortcut, toolbar.OpRemoveCategoryShortcut)
	case "up":
		return runShortcutRef(args[0], args[1:], toolbar.OpMoveShortcutUp, toolbar.OpMoveCategoryShortcutUp)
	case "down":
		return runShortcutRef(args[0], args[1:], toolbar.OpMoveShortcutDown, toolbar.OpMoveCategoryShortcutDown)
	case "help", "-h", "--help":
		printShortcutUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown shortcut command: %s\n\n", args[0])
		printShortcutUsage(os.Stderr)
		return 2
	}
}

func runShortcutAdd(args []string) int {
	fs := newFlagSet("shortcut add", "launchbar shortcut add [--category NAME] [--icon PATH] [--tooltip TEXT] <name> <exe> [args...]",
		"Append a shortcut to the quick list or a category.")
	common := addCommonFlags(fs)
	category := fs.String("category", "", "Category to add to")
	icon := fs.String("icon", "", "Icon image path")
	tooltip := fs.String("tooltip", "", "Hover text (default: the name)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "shortcut add requires <name> <exe>")
		fs.Usage()
		return 2
	}

	s := config.Shortcut{
		Name:    fs.Arg(0),
		Exe:     fs.Arg(1),
		Args:    append([]string{}, fs.Args()[2:]...),
		Icon:    *icon,
		Tooltip: *tooltip,
	}
	m := toolbar.Mutation{Op: toolbar.OpAddShortcut, Shortcut: &s}
	if *category != "" {
		m.Op = toolbar.OpAddCategoryShortcut
		m.Category = *category
	}
	return mutate(common, m, func(idx int) {
		fmt.Printf("added %q at index %d\n", s.Name, idx)
	})
}

func runShortcutUpdate(args []string) int {
	fs := newFlagSet("shortcut update", "launchbar shortcut update [--category NAME] [flags] <index|name> [args...]",
		"Replace fields of a shortcut. Unset flags keep their value; positional args\nafter the reference replace the argument list.")
	common := addCommonFlags(fs)
	category := fs.String("category", "", "Category holding the shortcut")
	name := fs.String("name", "", "New name")
	exe := fs.String("exe", "", "New executable path")
	icon := fs.String("icon", "", "New icon path (empty string clears)")
	tooltip := fs.String("tooltip", "", "New hover text (empty string clears)")
	clearArgs := fs.Bool("clear-args", false, "Remove all arguments")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "shortcut update requires <index|name>")
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

	s := list[idx].Clone()
	if flagWasSet(fs, "name") {
		s.Name = *name
	}
	if flagWasSet(fs, "exe") {
		s.Exe = *exe
	}
	if flagWasSet(fs, "icon") {
		s.Icon = *icon
	}
	if flagWasSet(fs, "tooltip") {
		s.Tooltip = *tooltip
	}
	if *clearArgs {
		s.Args = []string{}
	}
	if fs.NArg() > 1 {
		s.Args = append([]string{}, fs.Args()[1:]...)
	}

	m := toolbar.Mutation{Op: toolbar.OpUpdateShortcut, Index: idx, Shortcut: &s, Expect: &list[idx]}
	if *category != "" {
		m.Op = toolbar.OpUpdateCategoryShortcut
		m.Category = *category
	}
	if _, err := tb.Mutate(m, true); err != nil {
		printErr(err)
		return 1
	}
	fmt.Printf("updated %q\n", s.Name)
	return 0
}

// runShortcutRef handles the commands that only address a shortcut.
func runShortcutRef(cmd string, args []string, quickOp, categoryOp toolbar.Op) int {
	fs := newFlagSet("shortcut "+cmd, "launchbar shortcut "+cmd+" [--category NAME] <index|name>", "")
	common := addCommonFlags(fs)
	category := fs.String("category", "", "Category holding the shortcut")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "shortcut %s requires <index|name>\n", cmd)
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

	m := toolbar.Mutation{Op: quickOp, Index: idx, Expect: &list[idx]}
	if *category != "" {
		m.Op = categoryOp
		m.Category = *category
	}
	newIdx, err := tb.Mutate(m, true)
	if err != nil {
		printErr(err)
		return 1
	}
	if cmd == "up" || cmd == "down" {
		fmt.Printf("%q is now at index %d\n", list[idx].Name, newIdx)
	} else {
		fmt.Printf("removed %q\n", list[idx].Name)
	}
	return 0
}

func printCategoryUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  launchbar category add [--icon PATH] <name>")
	fmt.Fprintln(w, "  launchbar category edit [--name NEW] [--icon PATH] <name>")
	fmt.Fprintln(w, "  launchbar category remove <name>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Changes are saved immediately.")
}

func runCategory(args []string) int {
	if len(args) == 0 {
		printCategoryUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "add":
		fs := newFlagSet("category add", "launchbar category add [--icon PATH] <name>", "Append an empty category.")
		common := addCommonFlags(fs)
		icon := fs.String("icon", "", "Icon image path")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "category add requires <name>")
			fs.Usage()
			return 2
		}
		name := fs.Arg(0)
		return mutate(common, toolbar.Mutation{Op: toolbar.OpAddCategory, Name: name, Icon: *icon}, func(int) {
			fmt.Printf("added category %q\n", name)
		})

	case "edit", "rename":
		fs := newFlagSet("category edit", "launchbar category edit [--name NEW] [--icon PATH] <name>",
			"Rename a category and/or change its icon. The category keeps its place.")
		common := addCommonFlags(fs)
		newName := fs.String("name", "", "New name")
		icon := fs.String("icon", "", "New icon path")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "category edit requires <name>")
			fs.Usage()
			return 2
		}
		old := fs.Arg(0)

		var m toolbar.Mutation
		switch {
		case flagWasSet(fs, "name") && flagWasSet(fs, "icon"):
			m = toolbar.Mutation{Op: toolbar.OpEditCategory, Category: old, NewName: *newName, Icon: *icon}
		case flagWasSet(fs, "name"):
			m = toolbar.Mutation{Op: toolbar.OpRenameCategory, Category: old, NewName: *newName}
		case flagWasSet(fs, "icon"):
			m = toolbar.Mutation{Op: toolbar.OpSetCategoryIcon, Category: old, Icon: *icon}
		default:
			fmt.Fprintln(os.Stderr, "category edit needs --name and/or --icon")
			fs.Usage()
			return 2
		}
		return mutate(common, m, func(int) {
			fmt.Printf("updated category %q\n", old)
		})

	case "remove", "rm":
		fs := newFlagSet("category remove", "launchbar category remove <name>", "Remove a category and its shortcuts.")
		common := addCommonFlags(fs)
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "category remove requires <name>")
			fs.Usage()
			return 2
		}
		name := fs.Arg(0)
		return mutate(common, toolbar.Mutation{Op: toolbar.OpRemoveCategory, Category: name}, func(int) {
			fmt.Printf("removed category %q\n", name)
		})

	case "help", "-h", "--help":
		printCategoryUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown category command: %s\n\n", args[0])
		printCategoryUsage(os.Stderr)
		return 2
	}
}

// mutate applies m, saves, and reports success through done.
func mutate(common *commonFlags, m toolbar.Mutation, done func(idx int)) int {
	logger := common.logger()
	tb, err := common.session(logger)
	if err != nil {
		printErr(err)
		return 1
	}

	idx, err := tb.Mutate(m, true)
	if err != nil {
		printErr(err)
		return 1
	}
	done(idx)
	return 0
}
