package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

func shortcutInfo(category string, i int, s config.Shortcut) ShortcutInfo {
	args := s.Args
	if args == nil {
		args = []string{}
	}
	return ShortcutInfo{Category: category, Index: i, Name: s.Name, Exe: s.Exe, Args: args}
}

// lookup finds the shortcut a tool call addresses.
func lookup(cfg *config.Config, category string, index int) (config.Shortcut, error) {
	list := cfg.QuickShortcuts
	where := "quick shortcuts"
	if category != "" {
		c, ok := cfg.Categories.Get(category)
		if !ok {
			return config.Shortcut{}, fmt.Errorf("category %q not found", category)
		}
		list = c.Shortcuts
		where = fmt.Sprintf("category %q", category)
	}
	if index < 0 || index >= len(list) {
		return config.Shortcut{}, fmt.Errorf("index %d out of range for %s (%d shortcuts)", index, where, len(list))
	}
	return list[index], nil
}

func (s *Server) handleListShortcuts(_ context.Context, _ *mcpsdk.CallToolRequest, args ListShortcutsInput) (*mcpsdk.CallToolResult, ListShortcutsOutput, error) {
	cfg, err := s.toolbar.Config()
	if err != nil {
		return nil, ListShortcutsOutput{}, err
	}

	out := ListShortcutsOutput{
		Quick:      []ShortcutInfo{},
		Categories: []CategoryInfo{},
		Settings:   cfg.Settings,
	}
	if args.Category != "" {
		if _, ok := cfg.Categories.Get(args.Category); !ok {
			return nil, ListShortcutsOutput{}, fmt.Errorf("category %q not found", args.Category)
		}
	} else {
		for i, sc := range cfg.QuickShortcuts {
			out.Quick = append(out.Quick, shortcutInfo("", i, sc))
		}
	}
	for _, c := range cfg.Categories {
		if args.Category != "" && c.Name != args.Category {
			continue
		}
		info := CategoryInfo{Name: c.Name, Icon: c.Icon, Shortcuts: []ShortcutInfo{}}
		for i, sc := range c.Shortcuts {
			info.Shortcuts = append(info.Shortcuts, shortcutInfo(c.Name, i, sc))
		}
		out.Categories = append(out.Categories, info)
	}
	return nil, out, nil
}

func (s *Server) handleLaunchShortcut(_ context.Context, _ *mcpsdk.CallToolRequest, args LaunchShortcutInput) (*mcpsdk.CallToolResult, LaunchShortcutOutput, error) {
	cfg, err := s.toolbar.Config()
	if err != nil {
		return nil, LaunchShortcutOutput{}, err
	}
	sc, err := lookup(cfg, args.Category, args.Index)
	if err != nil {
		return nil, LaunchShortcutOutput{}, err
	}
	if err := s.toolbar.Launch(args.Category, args.Index); err != nil {
		return nil, LaunchShortcutOutput{}, err
	}
	s.logger.Info("mcp launch", "shortcut", sc.Name, "exe", sc.Exe)

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("Started %s (%s)", sc.Name, sc.Exe)},
		},
	}, LaunchShortcutOutput{Name: sc.Name, Exe: sc.Exe, Launched: true}, nil
}

func (s *Server) handleAddShortcut(_ context.Context, _ *mcpsdk.CallToolRequest, args AddShortcutInput) (*mcpsdk.CallToolResult, AddShortcutOutput, error) {
	sc := config.Shortcut{Name: args.Name, Exe: args.Exe, Args: args.Args}
	m := toolbar.Mutation{Op: toolbar.OpAddShortcut, Shortcut: &sc}
	if args.Category != "" {
		m.Op = toolbar.OpAddCategoryShortcut
		m.Category = args.Category
	}

	idx, err := s.toolbar.Mutate(m, true)
	if err != nil {
		return nil, AddShortcutOutput{}, err
	}
	s.logger.Info("mcp add shortcut", "name", args.Name, "category", args.Category, "index", idx)
	return nil, AddShortcutOutput{Category: args.Category, Index: idx, Saved: true}, nil
}

func (s *Server) handleRemoveShortcut(_ context.Context, _ *mcpsdk.CallToolRequest, args RemoveShortcutInput) (*mcpsdk.CallToolResult, RemoveShortcutOutput, error) {
	cfg, err := s.toolbar.Config()
	if err != nil {
		return nil, RemoveShortcutOutput{}, err
	}
	sc, err := lookup(cfg, args.Category, args.Index)
	if err != nil {
		return nil, RemoveShortcutOutput{}, err
	}

	// The daemon may be edited by others between the read and the removal.
	m := toolbar.Mutation{Op: toolbar.OpRemoveShortcut, Index: args.Index, Expect: &sc}
	if args.Category != "" {
		m.Op = toolbar.OpRemoveCategoryShortcut
		m.Category = args.Category
	}
	if _, err := s.toolbar.Mutate(m, true); err != nil {
		return nil, RemoveShortcutOutput{}, err
	}
	s.logger.Info("mcp remove shortcut", "name", sc.Name, "category", args.Category, "index", args.Index)
	return nil, RemoveShortcutOutput{Removed: shortcutInfo(args.Category, args.Index, sc), Saved: true}, nil
}
