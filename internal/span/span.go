package span

import (
	"strings"
	"unicode"
)

// LineTerminator is appended to every reconstructed line.
const LineTerminator = "\r\n"

// Span marks translatable text within a line as a half-open byte range.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Text returns the fragment of line covered by the span.
func (s Span) Text(line string) string { return line[s.Start:s.End] }

// Rule produces the ordered, non-overlapping spans of translatable text in a line.
// A rule returns nil when the line has nothing to translate or is malformed.
type Rule interface {
	Spans(line string) []Span
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(line string) []Span

func (f RuleFunc) Spans(line string) []Span { return f(line) }

// Find runs rule against line.
func Find(line string, rule Rule) []Span {
	if IsBlank(line) {
		return nil
	}
	return rule.Spans(line)
}

// Reconstruct copies line, replacing each span with resolve's output, and
// appends LineTerminator. Spans must be sorted and non-overlapping.
func Reconstruct(line string, spans []Span, resolve func(string) string) string {
	var sb strings.Builder
	sb.Grow(len(line) + len(LineTerminator))

	prev := 0
	for _, s := range spans {
		sb.WriteString(line[prev:s.Start])
		sb.WriteString(resolve(line[s.Start:s.End]))
		prev = s.End
	}
	sb.WriteString(line[prev:])
	sb.WriteString(LineTerminator)

	return sb.String()
}

// Trim shrinks s so it excludes leading and trailing whitespace.
// It reports false when nothing but whitespace remains.
func Trim(line string, s Span) (Span, bool) {
	frag := line[s.Start:s.End]
	left := len(frag) - len(strings.TrimLeftFunc(frag, unicode.IsSpace))
	if left == len(frag) {
		return Span{}, false
	}
	right := len(strings.TrimRightFunc(frag, unicode.IsSpace))
	return Span{Start: s.Start + left, End: s.Start + right}, true
}

// IsBlank reports whether line is empty or only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// shift moves spans produced for line[off:] back into line coordinates.
func shift(spans []Span, off int) []Span {
	for i := range spans {
		spans[i].Start += off
		spans[i].End += off
	}
	return spans
}
