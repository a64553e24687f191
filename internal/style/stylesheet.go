package style

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameSelector names the bar's background frame.
const FrameSelector = "#toolbarFrame"

const backgroundColor = "background-color"

// Declaration is one property: value pair.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a selector and its declarations, in order.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns the value of the last declaration of property.
func (r *Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// Set replaces the value of property in place, or appends it.
func (r *Rule) Set(property, value string) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			r.Declarations[i].Value = value
			return
		}
	}
	r.Declarations = append(r.Declarations, Declaration{Property: property, Value: value})
}

// Stylesheet is the structured form handed to a presentation layer. The core
// only ever edits values here; String renders it when a toolkit wants text.
type Stylesheet struct {
	Rules []Rule
}

// ToolbarStylesheet returns the bar's stylesheet for an opacity percentage.
func ToolbarStylesheet(opacity int) *Stylesheet {
	alpha := clampByte(AlphaFromPercent(opacity))
	return &Stylesheet{Rules: []Rule{
		{
			Selector: FrameSelector,
			Declarations: []Declaration{
				{backgroundColor, RGBA{50, 50, 50, alpha}.String()},
				{"border-radius", "10px"},
				{"border", "1px solid " + RGBA{100, 100, 100, 200}.String()},
			},
		},
		{
			Selector: "QPushButton",
			Declarations: []Declaration{
				{"border", "none"},
				{"border-radius", "5px"},
				{"padding", "5px"},
				{backgroundColor, RGBA{70, 70, 70, 200}.String()},
			},
		},
		{
			Selector:     "QPushButton:hover",
			Declarations: []Declaration{{backgroundColor, RGBA{90, 90, 90, 200}.String()}},
		},
		{
			Selector:     "QPushButton:pressed",
			Declarations: []Declaration{{backgroundColor, RGBA{120, 120, 120, 200}.String()}},
		},
	}}
}

// Rule returns the first rule whose selector list contains selector.
func (s *Stylesheet) Rule(selector string) *Rule {
	for i := range s.Rules {
		if selectorMatches(s.Rules[i].Selector, selector) {
			return &s.Rules[i]
		}
	}
	return nil
}

// SetBackgroundAlpha replaces the alpha of the rgba background-color in the
// rule for selector. The colour channels are kept.
func (s *Stylesheet) SetBackgroundAlpha(selector string, alpha int) error {
	r := s.Rule(selector)
	if r == nil {
		return fmt.Errorf("%w: no rule for %s", ErrPatternNotFound, selector)
	}
	v, ok := r.Get(backgroundColor)
	if !ok {
		return fmt.Errorf("%w: %s has no %s", ErrPatternNotFound, selector, backgroundColor)
	}
	c, ok := parseRGBA(v)
	if !ok {
		return fmt.Errorf("%w: %s %s is not rgba", ErrPatternNotFound, selector, backgroundColor)
	}
	c.A = clampByte(alpha)
	r.Set(backgroundColor, c.String())
	return nil
}

// BackgroundAlpha reads the alpha set on the rule for selector.
func (s *Stylesheet) BackgroundAlpha(selector string) (int, bool) {
	r := s.Rule(selector)
	if r == nil {
		return 0, false
	}
	v, ok := r.Get(backgroundColor)
	if !ok {
		return 0, false
	}
	c, ok := parseRGBA(v)
	if !ok {
		return 0, false
	}
	return int(c.A), true
}

func (s *Stylesheet) String() string {
	var b strings.Builder
	for i, r := range s.Rules {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Selector)
		b.WriteString(" {\n")
		for _, d := range r.Declarations {
			fmt.Fprintf(&b, "    %s: %s;\n", d.Property, d.Value)
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func selectorMatches(list, selector string) bool {
	for _, s := range strings.Split(list, ",") {
		if strings.TrimSpace(s) == selector {
			return true
		}
	}
	return false
}

func parseRGBA(v string) (RGBA, bool) {
	m := rgbaValue.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return RGBA{}, false
	}
	var ch [4]int
	for i := range ch {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return RGBA{}, false
		}
		ch[i] = n
	}
	return RGBA{clampByte(ch[0]), clampByte(ch[1]), clampByte(ch[2]), clampByte(ch[3])}, true
}
