package charset_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"mwfilter/internal/charset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "UTF-8", "utf8", "cp1252", " Windows-1251 ", "gbk"} {
		enc, err := charset.Lookup(name)
		require.NoError(t, err, "name %q", name)
		assert.NotNil(t, enc)
	}

	_, err := charset.Lookup("klingon")
	assert.ErrorIs(t, err, charset.ErrUnknownEncoding)
	assert.ErrorContains(t, err, `"klingon"`)
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := charset.Names()

	assert.Contains(t, names, charset.Default)
	assert.Contains(t, names, "windows-1252")
	assert.IsNonDecreasing(t, names)
}

func TestWindows1252RoundTrip(t *testing.T) {
	t.Parallel()

	var encoded bytes.Buffer
	w, err := charset.NewWriter(&encoded, "windows-1252")
	require.NoError(t, err)

	_, err = io.WriteString(w, "Äpfel für Balmora\r\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, []byte("\xc4pfel f\xfcr Balmora\r\n"), encoded.Bytes())

	r, err := charset.NewReader(&encoded, "windows-1252")
	require.NoError(t, err)

	decoded, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Äpfel für Balmora\r\n", string(decoded))
}

func TestNewReader_StripsUTF8BOM(t *testing.T) {
	t.Parallel()

	r, err := charset.NewReader(strings.NewReader("\xef\xbb\xbfChoice \"Yes\" 1"), "utf-8")
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Choice \"Yes\" 1", string(got))
}

func TestNewWriter_UnrepresentableCharacter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	w, err := charset.NewWriter(&out, "windows-1252")
	require.NoError(t, err)

	_, werr := io.WriteString(w, "テキスト")
	cerr := w.Close()

	assert.True(t, werr != nil || cerr != nil, "expected an encoding error")
}

func TestUnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := charset.NewReader(strings.NewReader(""), "ebcdic")
	assert.ErrorIs(t, err, charset.ErrUnknownEncoding)

	_, err = charset.NewWriter(io.Discard, "ebcdic")
	assert.ErrorIs(t, err, charset.ErrUnknownEncoding)
}
