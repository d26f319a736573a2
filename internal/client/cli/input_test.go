package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetTextWithDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetTextWithDefault(rdr("\n"), "Name", "Ada", &out)
	require.NoError(t, err)
	require.Equal(t, "Ada", got)
	require.Contains(t, out.String(), "Name [Ada]")

	out.Reset()
	got, err = GetTextWithDefault(rdr("Grace\n"), "Name", "Ada", &out)
	require.NoError(t, err)
	require.Equal(t, "Grace", got)

	out.Reset()
	got, err = GetTextWithDefault(rdr("\n"), "Phone", "", &out)
	require.NoError(t, err)
	require.Equal(t, "", got)
	require.NotContains(t, out.String(), "[")
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\r\nb\n\n\nignored\n"), "Enter text", &out)
	require.NoError(t, err)
	require.Equal(t, "a\nb", got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), pw)
	require.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestPick(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantI  int
		wantOK bool
	}{
		{"first", "1\n", 0, true},
		{"last", "3\n", 2, true},
		{"empty cancels", "\n", 0, false},
		{"retries out of range", "0\n7\nx\n2\n", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			i, ok, err := pick(rdr(tt.input), "Pick", 3, &out)
			require.NoError(t, err)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantI, i)
		})
	}

	var out bytes.Buffer
	_, _, err := pick(rdr("9"), "Pick", 3, &out)
	require.Error(t, err)
	require.Contains(t, out.String(), "Enter a number between 1 and 3")
}
