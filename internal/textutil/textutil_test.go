package textutil_test

import (
	"testing"

	"mwfilter/internal/textutil"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", textutil.Hash("hello"))
	assert.Len(t, textutil.Hash(""), 64)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{name: "short", in: "abc", maxLen: 5, want: "abc"},
		{name: "exact", in: "abcde", maxLen: 5, want: "abcde"},
		{name: "cut", in: "abcdef", maxLen: 3, want: "abc..."},
		{name: "multibyte boundary", in: "aÄb", maxLen: 2, want: "a..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, textutil.Truncate(tt.in, tt.maxLen))
		})
	}
}

func TestEscapeTSV(t *testing.T) {
	t.Parallel()

	in := "a\tb\nc\rd"
	escaped := textutil.EscapeTSV(in)

	assert.Equal(t, `a\tb\nc\rd`, escaped)
	assert.Equal(t, in, textutil.UnescapeTSV(escaped))
}
