package span

import (
	"strings"
	"unicode"
)

// TagStrip treats every `<...>` tag as markup and everything between tags
// as text. Each untagged fragment is trimmed of surrounding whitespace.
type TagStrip struct{}

func (TagStrip) Spans(line string) []Span {
	var spans []Span
	emit := func(start, end int) {
		if start >= end {
			return
		}
		if s, ok := Trim(line, Span{Start: start, End: end}); ok {
			spans = append(spans, s)
		}
	}

	prev := 0
	for i := 0; i < len(line); {
		open := strings.IndexByte(line[i:], '<')
		if open < 0 {
			break
		}
		open += i

		closing := strings.IndexByte(line[open+1:], '>')
		if closing < 0 {
			break
		}
		if closing == 0 {
			// "<>" is not a tag.
			i = open + 1
			continue
		}
		end := open + 1 + closing + 1

		emit(prev, open)
		prev = end
		i = end
	}
	emit(prev, len(line))

	return spans
}

// LiteralPolicy selects which quoted literals of a line are translatable.
// It receives every literal found, including empty ones, and returns the
// chosen subset or nil to reject the line.
type LiteralPolicy func(literals []Span) []Span

// AllLiterals keeps every literal.
func AllLiterals() LiteralPolicy {
	return func(literals []Span) []Span { return literals }
}

// ExactlyNth accepts only lines with exactly count literals and keeps the
// literal at index.
func ExactlyNth(count, index int) LiteralPolicy {
	return func(literals []Span) []Span {
		if len(literals) != count || index < 0 || index >= count {
			return nil
		}
		return literals[index : index+1]
	}
}

// QuotedLiterals extracts the contents of double-quoted literals. There is
// no escaping: the next quote always closes the literal.
type QuotedLiterals struct {
	Policy LiteralPolicy
}

func (q QuotedLiterals) Spans(line string) []Span {
	var literals []Span
	for i := 0; i < len(line); {
		open := strings.IndexByte(line[i:], '"')
		if open < 0 {
			break
		}
		open += i

		closing := strings.IndexByte(line[open+1:], '"')
		if closing < 0 {
			break
		}
		closing += open + 1

		literals = append(literals, Span{Start: open + 1, End: closing})
		i = closing + 1
	}

	policy := q.Policy
	if policy == nil {
		policy = AllLiterals()
	}

	var spans []Span
	for _, s := range policy(literals) {
		if s.Len() > 0 {
			spans = append(spans, s)
		}
	}
	return spans
}

// TransitionCluster splits a line into runs of content characters separated
// by transition characters. Quoted literals are kept whole.
type TransitionCluster struct{}

// IsTransition reports whether c separates content runs outside quotes.
func IsTransition(c byte) bool {
	switch c {
	case '.', ',', ':', ' ', '\t':
		return true
	}
	return c >= '0' && c <= '9'
}

func (TransitionCluster) Spans(line string) []Span {
	var spans []Span
	inQuote := false
	start := -1

	for i := 0; i < len(line); i++ {
		c := line[i]

		if c == '"' {
			if !inQuote {
				if start != -1 {
					spans = append(spans, Span{Start: start, End: i})
					start = -1
				}
				inQuote = true
				continue
			}
			inQuote = false
			if start == -1 {
				// empty literal
				return nil
			}
			spans = append(spans, Span{Start: start, End: i})
			start = -1
			continue
		}

		switch {
		case inQuote:
			if start == -1 {
				start = i
			}
		case IsTransition(c):
			if start != -1 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
		case start == -1:
			start = i
		}
	}

	if inQuote {
		return nil
	}
	if start != -1 {
		spans = append(spans, Span{Start: start, End: len(line)})
	}
	return spans
}

// Keyword matches lines starting with Word, ignoring case and leading
// whitespace, and applies Body to the remainder of the line.
type Keyword struct {
	Word string
	Body Rule
}

// Match returns the offset just past the keyword.
func (k Keyword) Match(line string) (int, bool) {
	off := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
	end := off + len(k.Word)
	if end > len(line) || !strings.EqualFold(line[off:end], k.Word) {
		return 0, false
	}
	return end, true
}

func (k Keyword) Spans(line string) []Span {
	end, ok := k.Match(line)
	if !ok {
		return nil
	}
	return shift(k.Body.Spans(line[end:]), end)
}

// FirstMatch dispatches to the first keyword that matches the line.
type FirstMatch []Keyword

func (m FirstMatch) Spans(line string) []Span {
	for _, k := range m {
		if _, ok := k.Match(line); ok {
			return k.Spans(line)
		}
	}
	return nil
}
