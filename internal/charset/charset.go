// Package charset maps host-configured encoding names to x/text encodings.
package charset

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for encoding names not in the table.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Default is used when no encoding is configured.
const Default = "utf-8"

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf-8-bom":    unicode.UTF8BOM,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"gbk":          simplifiedchinese.GBK,
}

var aliases = map[string]string{
	"utf8":    "utf-8",
	"utf8bom": "utf-8-bom",
	"cp1250":  "windows-1250",
	"cp1251":  "windows-1251",
	"cp1252":  "windows-1252",
}

// Lookup returns the encoding registered under name (case-insensitive).
// An empty name selects Default.
func Lookup(name string) (encoding.Encoding, error) {
	_, enc, err := lookup(name)
	return enc, err
}

func lookup(name string) (string, encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	enc, ok := encodings[key]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return key, enc, nil
}

// Names lists the supported canonical encoding names.
func Names() []string {
	names := make([]string, 0, len(encodings))
	for n := range encodings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewReader decodes r from the named encoding into UTF-8.
// A UTF-8 byte order mark is stripped for both utf-8 and utf-8-bom.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	key, enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if key == "utf-8" {
		enc = unicode.UTF8BOM
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// NewWriter encodes UTF-8 written to it into the named encoding on w.
// Characters the target cannot represent cause a write error. The writer
// must be closed to flush buffered output.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	_, enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}
