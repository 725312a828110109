package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes a SHA-256 hex hash of a string for deduplication.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to at most maxLen bytes, appending "..." if
// truncated. It never splits a UTF-8 sequence.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

var (
	tsvEscaper   = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)
	tsvUnescaper = strings.NewReplacer(`\t`, "\t", `\n`, "\n", `\r`, "\r")
)

// EscapeTSV replaces tabs and newlines in a string for TSV safety.
func EscapeTSV(s string) string { return tsvEscaper.Replace(s) }

// UnescapeTSV reverses EscapeTSV.
func UnescapeTSV(s string) string { return tsvUnescaper.Replace(s) }
