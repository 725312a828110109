package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"mwfilter/internal/resolver"
	"mwfilter/internal/span"
)

const (
	initialBufSize = 64 * 1024
	maxLineSize    = 4 * 1024 * 1024
)

// ProcessLine rebuilds a single line, sending each translatable fragment
// through r. The result always ends in CRLF.
func ProcessLine(f Filter, line string, r resolver.Resolver) string {
	if r == nil {
		r = resolver.Identity
	}
	return span.Reconstruct(line, f.Spans(line), r.Resolve)
}

// Process streams in line by line through the filter and writes one
// CRLF-terminated output line per input line.
func Process(f Filter, in io.Reader, out io.Writer, r resolver.Resolver) error {
	scanner := newLineScanner(in)
	w := bufio.NewWriter(out)

	for scanner.Scan() {
		if _, err := w.WriteString(ProcessLine(f, scanner.Text(), r)); err != nil {
			return fmt.Errorf("write %s line: %w", f.Format(), err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s input: %w", f.Format(), err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s output: %w", f.Format(), err)
	}
	return nil
}

// Parse opens a UTF-8 file and extracts its translatable fragments.
func Parse(f Filter, filePath string) (*ParseResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s file: %w", f.Format(), err)
	}
	defer file.Close()

	return ParseReader(f, file, filePath)
}

// ParseReader extracts translatable fragments from in, recording filePath
// in the result.
func ParseReader(f Filter, in io.Reader, filePath string) (*ParseResult, error) {
	result := &ParseResult{
		FilePath: filePath,
		FileType: f.Format(),
	}

	scanner := newLineScanner(in)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		result.RawLines = append(result.RawLines, line)

		spans := f.Spans(line)
		if len(spans) == 0 {
			continue
		}

		keyword := ""
		if s, ok := f.(*ScriptFilter); ok {
			keyword, _ = s.Statement(line)
		}

		for _, sp := range spans {
			ctx := map[string]string{
				"file":   filePath,
				"format": f.Format(),
			}
			if keyword != "" {
				ctx["keyword"] = keyword
			}

			result.Texts = append(result.Texts, ExtractedText{
				Text:    sp.Text(line),
				File:    filePath,
				Line:    lineNum,
				Column:  sp.Start,
				Context: ctx,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s file: %w", f.Format(), err)
	}

	linkNeighbours(result.Texts)
	return result, nil
}

// Reconstruct rebuilds the file with translated fragments. Fragments missing
// from translations are copied unchanged.
func Reconstruct(f Filter, result *ParseResult, translations map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	r := resolver.Glossary(translations)

	for _, line := range result.RawLines {
		buf.WriteString(ProcessLine(f, line, r))
	}

	return buf.Bytes(), nil
}

func linkNeighbours(texts []ExtractedText) {
	for i := range texts {
		if i > 0 {
			texts[i].Prev = texts[i-1].Text
		}
		if i+1 < len(texts) {
			texts[i].Next = texts[i+1].Text
		}
	}
}

func newLineScanner(in io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, initialBufSize), maxLineSize)
	scanner.Split(ScanLines)
	return scanner
}
