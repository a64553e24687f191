package style

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrPatternNotFound is returned when no rgba background-color declaration
// exists where one was expected.
var ErrPatternNotFound = errors.New("rgba background-color not found")

var (
	rgbaValue = regexp.MustCompile(`^rgba\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)

	// Group 1 is the alpha digits.
	backgroundRGBA = regexp.MustCompile(`(?i)(?:^|[;{\s])background-color\s*:\s*rgba\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*,\s*(\d+)\s*\)`)
)

// block is a `selector { body }` span. Offsets index the original text.
type block struct {
	selector  string
	bodyStart int
	bodyEnd   int
}

// blocks splits text into top-level rule blocks. Text with no braces is
// treated as one anonymous block so bare declaration lists work too.
func blocks(text string) []block {
	var out []block
	selStart := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end := strings.IndexByte(text[i+1:], '}')
		if end < 0 {
			break
		}
		out = append(out, block{
			selector:  strings.TrimSpace(text[selStart:i]),
			bodyStart: i + 1,
			bodyEnd:   i + 1 + end,
		})
		i = i + 1 + end
		selStart = i + 1
	}
	if len(out) == 0 && !strings.ContainsAny(text, "{}") {
		out = append(out, block{bodyStart: 0, bodyEnd: len(text)})
	}
	return out
}

// RewriteBackgroundAlpha sets the alpha of the bar frame's background colour.
// On failure the input is returned unchanged.
func RewriteBackgroundAlpha(text string, alpha int) string {
	out, err := RewriteRuleBackgroundAlpha(text, FrameSelector, alpha)
	if err != nil {
		return text
	}
	return out
}

// RewriteRuleBackgroundAlpha replaces the alpha component of the rgba
// background-color declaration in every block whose selector list contains
// selector. An empty selector matches every block. Only the alpha digits
// change; every other byte of text is kept. When nothing matches, text is
// returned unchanged together with ErrPatternNotFound.
func RewriteRuleBackgroundAlpha(text, selector string, alpha int) (string, error) {
	value := strconv.Itoa(int(clampByte(alpha)))

	var b strings.Builder
	last := 0
	found := false
	for _, blk := range blocks(text) {
		if selector != "" && !selectorMatches(blk.selector, selector) {
			continue
		}
		loc := backgroundRGBA.FindStringSubmatchIndex(text[blk.bodyStart:blk.bodyEnd])
		if loc == nil {
			continue
		}
		start, end := blk.bodyStart+loc[2], blk.bodyStart+loc[3]
		b.WriteString(text[last:start])
		b.WriteString(value)
		last = end
		found = true
	}
	if !found {
		return text, ErrPatternNotFound
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// ReadBackgroundAlpha returns the alpha of the first rgba background-color in
// a block matching selector.
func ReadBackgroundAlpha(text, selector string) (int, error) {
	for _, blk := range blocks(text) {
		if selector != "" && !selectorMatches(blk.selector, selector) {
			continue
		}
		body := text[blk.bodyStart:blk.bodyEnd]
		m := backgroundRGBA.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		return strconv.Atoi(m[1])
	}
	return 0, ErrPatternNotFound
}
