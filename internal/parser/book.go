package parser

import "mwfilter/internal/span"

// BookFilter handles book markup: inline <tags> are kept verbatim and the
// text between them is translated.
type BookFilter struct {
	extensions
}

// NewBookFilter creates a BookFilter for the given extensions (default .mwbook).
func NewBookFilter(exts ...string) *BookFilter {
	return &BookFilter{extensions: newExtensions(exts, ".mwbook")}
}

func (f *BookFilter) Name() string { return "MWBook filter" }

func (f *BookFilter) Format() string { return "book" }

func (f *BookFilter) Spans(line string) []span.Span {
	return span.Find(line, span.TagStrip{})
}
