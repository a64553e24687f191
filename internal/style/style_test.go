package style

import (
	"errors"
	"strings"
	"testing"
)

const sampleSheet = `
#toolbarFrame {
    border-radius: 10px;
    background-color: rgba(50, 50, 50, 204);
    border: 1px solid rgba(100, 100, 100, 200);
}
QPushButton {
    border: none;
    background-color: rgba(70, 70, 70, 200);
}
QPushButton:hover { background-color: rgba(90, 90, 90, 200); }
`

func TestAlphaFromPercent(t *testing.T) {
	if got := AlphaFromPercent(0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := AlphaFromPercent(100); got != 255 {
		t.Fatalf("expected 255, got %d", got)
	}
	if got := AlphaFromPercent(80); got != 204 {
		t.Fatalf("expected 204, got %d", got)
	}
	if got := AlphaFromPercent(50); got != 128 {
		t.Fatalf("expected 128 (127.5 rounded), got %d", got)
	}
	if AlphaFromPercent(-5) != 0 || AlphaFromPercent(150) != 255 {
		t.Fatalf("expected out-of-range input to clamp")
	}

	prev := -1
	for pct := 0; pct <= 100; pct++ {
		a := AlphaFromPercent(pct)
		if a < prev {
			t.Fatalf("not monotonic at %d: %d < %d", pct, a, prev)
		}
		if a < 0 || a > 255 {
			t.Fatalf("alpha %d out of range at %d", a, pct)
		}
		prev = a
	}
}

func TestRewriteBackgroundAlpha_RoundTrip(t *testing.T) {
	for _, v := range []int{0, 51, 128, 204, 255} {
		out := RewriteBackgroundAlpha(sampleSheet, v)
		got, err := ReadBackgroundAlpha(out, FrameSelector)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if got != v {
			t.Fatalf("expected alpha %d, got %d", v, got)
		}
	}
}

func TestRewriteBackgroundAlpha_OnlyAlphaChanges(t *testing.T) {
	out := RewriteBackgroundAlpha(sampleSheet, 51)

	want := strings.Replace(sampleSheet, "rgba(50, 50, 50, 204)", "rgba(50, 50, 50, 51)", 1)
	if out != want {
		t.Fatalf("unexpected rewrite:\n%s", out)
	}
	if !strings.Contains(out, "background-color: rgba(70, 70, 70, 200);") {
		t.Fatalf("non-matching block was modified")
	}
}

func TestRewriteBackgroundAlpha_DeclarationOrderAndInlineBlocks(t *testing.T) {
	text := "QPushButton:hover{color:red;background-color:rgba(1,2,3,4)}#toolbarFrame{padding:2px;background-color : rgba( 5 , 6 , 7 , 8 );margin:0}"
	out := RewriteBackgroundAlpha(text, 99)
	want := "QPushButton:hover{color:red;background-color:rgba(1,2,3,4)}#toolbarFrame{padding:2px;background-color : rgba( 5 , 6 , 7 , 99 );margin:0}"
	if out != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, out)
	}
}

func TestRewriteBackgroundAlpha_NotFoundReturnsInput(t *testing.T) {
	tests := []string{
		"",
		"#toolbarFrame { background-color: #333333; }",
		"QPushButton { background-color: rgba(1, 2, 3, 4); }",
		"#toolbarFrame { border: 1px solid rgba(100, 100, 100, 200); }",
	}
	for _, text := range tests {
		out, err := RewriteRuleBackgroundAlpha(text, FrameSelector, 10)
		if !errors.Is(err, ErrPatternNotFound) {
			t.Fatalf("%q: expected ErrPatternNotFound, got %v", text, err)
		}
		if out != text {
			t.Fatalf("%q: expected input unchanged, got %q", text, out)
		}
		if RewriteBackgroundAlpha(text, 10) != text {
			t.Fatalf("%q: expected fail-soft rewrite to return input", text)
		}
	}
}

func TestRewriteRuleBackgroundAlpha_BareDeclarations(t *testing.T) {
	text := "background-color: rgba(100, 100, 100, 150);"
	out, err := RewriteRuleBackgroundAlpha(text, "", 30)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if out != "background-color: rgba(100, 100, 100, 30);" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRewriteRuleBackgroundAlpha_SelectorList(t *testing.T) {
	text := "QFrame, #toolbarFrame { background-color: rgba(0, 0, 0, 1); }"
	got, err := RewriteRuleBackgroundAlpha(text, FrameSelector, 2)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if got != "QFrame, #toolbarFrame { background-color: rgba(0, 0, 0, 2); }" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestToolbarStylesheet(t *testing.T) {
	s := ToolbarStylesheet(80)
	a, ok := s.BackgroundAlpha(FrameSelector)
	if !ok || a != 204 {
		t.Fatalf("expected frame alpha 204, got %d (%v)", a, ok)
	}

	if err := s.SetBackgroundAlpha(FrameSelector, 51); err != nil {
		t.Fatalf("set: %v", err)
	}
	frame := s.Rule(FrameSelector)
	if v, _ := frame.Get("background-color"); v != "rgba(50, 50, 50, 51)" {
		t.Fatalf("unexpected background %q", v)
	}
	if v, _ := frame.Get("border-radius"); v != "10px" {
		t.Fatalf("other declarations must be kept, got %q", v)
	}
	if frame.Declarations[0].Property != "background-color" {
		t.Fatalf("declaration order changed")
	}

	// The rendered text and the text rewrite agree.
	got, err := ReadBackgroundAlpha(s.String(), FrameSelector)
	if err != nil || got != 51 {
		t.Fatalf("expected rendered alpha 51, got %d (%v)", got, err)
	}
	if err := s.SetBackgroundAlpha("#missing", 1); !errors.Is(err, ErrPatternNotFound) {
		t.Fatalf("expected ErrPatternNotFound, got %v", err)
	}
}

func TestNewBadge(t *testing.T) {
	a := NewBadge("godot")
	b := NewBadge("godot")
	if a != b {
		t.Fatalf("badge must be stable for a name")
	}
	if a.Letter != "G" {
		t.Fatalf("expected letter G, got %q", a.Letter)
	}
	for _, name := range []string{"godot", "VS Code", "é", "x"} {
		c := NewBadge(name).Color
		for _, ch := range []uint8{c.R, c.G, c.B} {
			if ch < 55 || ch > 254 {
				t.Fatalf("%q: channel %d out of range", name, ch)
			}
		}
	}
	if NewBadge("élan").Letter != "É" {
		t.Fatalf("expected multibyte first letter to be upper-cased")
	}
	if NewBadge("").Letter != "?" {
		t.Fatalf("expected placeholder letter for empty name")
	}
}
