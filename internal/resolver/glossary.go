package resolver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mwfilter/internal/textutil"
)

// Glossary is a fixed source → translation table.
type Glossary map[string]string

func (g Glossary) Lookup(fragment string) (string, bool) {
	translated, ok := g[fragment]
	return translated, ok
}

func (g Glossary) Resolve(fragment string) string {
	if translated, ok := g[fragment]; ok {
		return translated
	}
	return fragment
}

// LoadGlossary reads a glossary file. Files ending in .json hold a single
// object; anything else is read as tab-separated source/translation pairs.
func LoadGlossary(path string) (Glossary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glossary: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ReadTSV(f)
}

// ReadJSON decodes a {"source": "translation"} object.
func ReadJSON(r io.Reader) (Glossary, error) {
	g := make(Glossary)
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode glossary JSON: %w", err)
	}
	return g, nil
}

// ReadTSV reads source<TAB>translation lines. Blank lines, lines starting
// with '#', and a leading source_text header are skipped.
func ReadTSV(r io.Reader) (Glossary, error) {
	g := make(Glossary)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		source, translated, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("glossary line %d: missing tab separator", lineNum)
		}
		if lineNum == 1 && source == "source_text" {
			continue
		}
		// Extra columns, as in exported seed corpora, are ignored.
		translated, _, _ = strings.Cut(translated, "\t")

		g[textutil.UnescapeTSV(source)] = textutil.UnescapeTSV(translated)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan glossary: %w", err)
	}

	return g, nil
}
