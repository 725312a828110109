package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mwfilter/internal/parser"

	"github.com/rs/zerolog/log"
)

// Walker traverses directories and dispatches files to the correct filter.
type Walker struct {
	filters []parser.Filter
}

// NewWalker creates a Walker. With no filters it uses the default book and
// script filters.
func NewWalker(filters ...parser.Filter) *Walker {
	if len(filters) == 0 {
		filters = []parser.Filter{
			parser.NewBookFilter(),
			parser.NewScriptFilter(),
		}
	}
	return &Walker{filters: filters}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path   string
	Ext    string
	Filter parser.Filter
}

// SupportedExtensions lists every extension handled by the walker's filters.
func (w *Walker) SupportedExtensions() []string {
	var exts []string
	for _, f := range w.filters {
		exts = append(exts, f.Extensions()...)
	}
	sort.Strings(exts)
	return exts
}

// FilterFor returns the first filter that handles the extension of path.
func (w *Walker) FilterFor(path string) (parser.Filter, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range w.filters {
		if f.CanParse(ext) {
			return f, true
		}
	}
	return nil, false
}

// Walk discovers all supported files under the given root directory.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			return nil
		}

		f, ok := w.FilterFor(path)
		if !ok {
			return nil
		}

		entries = append(entries, FileEntry{
			Path:   path,
			Ext:    strings.ToLower(filepath.Ext(path)),
			Filter: f,
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

// ParseFile parses a single file using its filter.
func (w *Walker) ParseFile(entry FileEntry) (*parser.ParseResult, error) {
	return parser.Parse(entry.Filter, entry.Path)
}
