package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/launchbar/internal/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.QuickShortcuts = []config.Shortcut{
		{Name: "Terminal", Exe: "/usr/bin/xterm", Args: []string{}},
	}
	cfg.Categories = config.Categories{
		{Name: "Games", Icon: "/icons/games.png", Shortcuts: []config.Shortcut{
			{Name: "Chess", Exe: "/usr/games/chess", Args: []string{"--fast"}},
			{Name: "Go", Exe: "/usr/games/go", Args: []string{}},
		}},
		{Name: "Empty", Legacy: true, Shortcuts: []config.Shortcut{}},
		{Name: "Dev", Legacy: true, Shortcuts: []config.Shortcut{
			{Name: "Editor", Exe: `C:\Tools\editor.exe`, Args: []string{}},
		}},
	}
	return cfg
}

func TestItems_Order(t *testing.T) {
	items := Items(testConfig())

	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	want := []string{
		"Terminal",
		"────────", "Games", "Games › Chess", "Games › Go",
		"────────", "Dev", "Dev › Editor",
	}
	if strings.Join(labels, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected rows:\n got %q\nwant %q", labels, want)
	}
	if !items[2].IsHeader || items[2].Selectable() {
		t.Fatalf("category row must be a header")
	}
	if items[3].Icon != "/icons/games.png" || items[3].Meta != "/usr/games/chess --fast" {
		t.Fatalf("unexpected chess row %+v", items[3])
	}
	if items[0].Icon != "xterm" {
		t.Fatalf("expected icon from executable name, got %q", items[0].Icon)
	}
}

func TestResolve(t *testing.T) {
	cfg := testConfig()
	items := Items(cfg)

	target, sc, err := Resolve(cfg, items[4])
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target != (Target{Category: "Games", Index: 1}) || sc.Name != "Go" {
		t.Fatalf("unexpected resolution %v %+v", target, sc)
	}

	target, sc, err = Resolve(cfg, items[0])
	if err != nil || target.Category != "" || sc.Exe != "/usr/bin/xterm" {
		t.Fatalf("unexpected quick resolution %v %+v err=%v", target, sc, err)
	}

	if _, _, err := Resolve(cfg, items[1]); err == nil {
		t.Fatalf("expected error resolving a divider")
	}

	cfg.Categories = cfg.Categories[:1]
	if _, _, err := Resolve(cfg, items[len(items)-1]); err == nil {
		t.Fatalf("expected error for a removed category")
	}
}

type fakeBackend struct {
	caps    Capabilities
	shown   [][]Item
	answers []int
	err     error
}

func (f *fakeBackend) Show(prompt string, items []Item, message string) (Item, error) {
	f.shown = append(f.shown, items)
	if f.err != nil {
		return Item{}, f.err
	}
	if len(f.answers) == 0 {
		return Item{}, ErrCancelled
	}
	i := f.answers[0]
	f.answers = f.answers[1:]
	return items[i], nil
}

func (f *fakeBackend) Capabilities() Capabilities { return f.caps }

func TestChoose_SkipsHeaders(t *testing.T) {
	b := &fakeBackend{caps: Capabilities{NonSelectable: true}, answers: []int{2, 3}}

	target, sc, err := Choose(b, testConfig(), "")
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if len(b.shown) != 2 {
		t.Fatalf("expected palette to re-show after header pick, shown %d times", len(b.shown))
	}
	if target != (Target{Category: "Games", Index: 0}) || sc.Name != "Chess" {
		t.Fatalf("unexpected choice %v %+v", target, sc)
	}
}

func TestChoose_PlainListWithoutNonSelectable(t *testing.T) {
	b := &fakeBackend{answers: []int{3}}

	_, sc, err := Choose(b, testConfig(), "")
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if len(b.shown[0]) != 4 {
		t.Fatalf("expected only shortcut rows, got %d", len(b.shown[0]))
	}
	if sc.Name != "Editor" {
		t.Fatalf("expected Editor, got %q", sc.Name)
	}
}

func TestChoose_Cancel(t *testing.T) {
	b := &fakeBackend{err: ErrCancelled}
	if _, _, err := Choose(b, testConfig(), ""); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestChoose_NoShortcuts(t *testing.T) {
	b := &fakeBackend{}
	if _, _, err := Choose(b, config.DefaultConfig(), ""); err == nil {
		t.Fatalf("expected error with no shortcuts")
	}
	if len(b.shown) != 0 {
		t.Fatalf("palette must not open without rows")
	}
}

func TestRofiFormatItem_UsesSingleNullSeparator(t *testing.T) {
	b := NewRofiBackend().(*dmenuLikeBackend)

	out := b.formatItem(Item{Label: "Games", IsHeader: true, Icon: "folder", Meta: "meta"})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.Contains(out, "<b>Games</b>\x00nonselectable\x1ftrue") {
		t.Fatalf("expected bold nonselectable header, got %q", out)
	}
	if !strings.Contains(out, "icon\x1ffolder") || !strings.Contains(out, "meta\x1fmeta") {
		t.Fatalf("expected icon and meta attributes, got %q", out)
	}
}

func TestRofiFormatItem_EscapesMarkup(t *testing.T) {
	b := NewRofiBackend().(*dmenuLikeBackend)
	out := b.formatItem(Item{Label: "A & <B>", Target: &Target{}})
	if !strings.HasPrefix(out, "A &amp; &lt;B&gt;") {
		t.Fatalf("expected escaped label, got %q", out)
	}
}

func TestRofiBuildArgs(t *testing.T) {
	b := NewRofiBackend().(*dmenuLikeBackend)
	b.SetFuzzyMatching(true)

	_, first := b.formatInput(Items(testConfig()))
	args := b.buildArgs("launchbar", "hint", first)

	for _, pair := range [][2]string{{"-format", "i"}, {"-matching", "fuzzy"}, {"-selected-row", "0"}, {"-mesg", "hint"}, {"-p", "launchbar"}} {
		if !containsArgs(args, pair[0], pair[1]) {
			t.Fatalf("expected %s %s in args, got %v", pair[0], pair[1], args)
		}
	}
	if !containsArg(args, "-no-custom") || !containsArg(args, "-show-icons") {
		t.Fatalf("expected -no-custom and -show-icons, got %v", args)
	}
}

func TestParseSelection(t *testing.T) {
	items := []Item{{Label: "a", Target: &Target{Index: 0}}, {Label: "b", Target: &Target{Index: 1}}}

	rofi := NewRofiBackend().(*dmenuLikeBackend)
	got, err := rofi.parseSelection("1", items)
	if err != nil || got.Label != "b" {
		t.Fatalf("expected b by index, got %+v err=%v", got, err)
	}
	if _, err := rofi.parseSelection("7", items); err == nil {
		t.Fatalf("expected out of range error")
	}

	dmenu := NewDmenuBackend().(*dmenuLikeBackend)
	got, err = dmenu.parseSelection("a", items)
	if err != nil || got.Label != "a" {
		t.Fatalf("expected a by label, got %+v err=%v", got, err)
	}
}

func TestFormatInput_DisambiguatesDuplicateLabels(t *testing.T) {
	b := NewDmenuBackend().(*dmenuLikeBackend)
	items := []Item{
		{Label: "Dup", Target: &Target{Index: 0}},
		{Label: "Dup", Target: &Target{Index: 1}},
	}

	_, _ = b.formatInput(items)
	if items[0].Label != "Dup" || items[1].Label != "Dup (2)" {
		t.Fatalf("expected second label disambiguated, got %q %q", items[0].Label, items[1].Label)
	}
}

func TestFormatInput_IndexBackendsKeepDuplicateLabels(t *testing.T) {
	b := NewFuzzelBackend().(*dmenuLikeBackend)
	items := []Item{{Label: "Dup"}, {Label: "Dup"}}

	_, _ = b.formatInput(items)
	if items[1].Label != "Dup" {
		t.Fatalf("expected labels unchanged for index backend, got %q", items[1].Label)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	if _, err := NewBackend("kitty"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func containsArgs(args []string, a, b string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return true
		}
	}
	return false
}
