package parser

import (
	"slices"
	"strings"

	"mwfilter/internal/span"
)

// ExtractedText represents a translatable fragment found in a script or book file.
type ExtractedText struct {
	// Text is the fragment submitted to the resolver.
	Text string
	// File is the source file path.
	File string
	// Line is the 1-based line number in the source file.
	Line int
	// Column is the 0-based byte offset of the fragment within its line.
	Column int
	// Context holds format and statement details (format, keyword).
	Context map[string]string
	// Prev and Next are the neighbouring fragments in file order.
	Prev string
	Next string
}

// ParseResult holds parsing output for a single file.
type ParseResult struct {
	// FilePath is the path of the parsed file.
	FilePath string
	// FileType is the filter format (book, script).
	FileType string
	// Texts are the extracted translatable fragments.
	Texts []ExtractedText
	// RawLines preserves the original file content for reconstruction.
	RawLines []string
}

// Filter is the interface for the line-oriented file formats.
type Filter interface {
	// Name is the human readable filter name.
	Name() string
	// Format is the short format identifier used in results and logs.
	Format() string
	// CanParse returns true if this filter handles the given file extension.
	CanParse(ext string) bool
	// Extensions lists the handled file extensions, lowercase with leading dot.
	Extensions() []string
	// Spans returns the translatable spans of a single line.
	Spans(line string) []span.Span
}

// extensions is the file association shared by all filters.
type extensions []string

func newExtensions(exts []string, fallback string) extensions {
	var out extensions
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		out = extensions{fallback}
	}
	return out
}

func (e extensions) CanParse(ext string) bool {
	return slices.Contains(e, strings.ToLower(ext))
}

func (e extensions) Extensions() []string {
	return slices.Clone(e)
}
