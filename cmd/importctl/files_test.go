package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawFiles(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "broker.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))
	pdf := filepath.Join(dir, "statement.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4 test"), 0o600))

	files, err := rawFiles([]string{png, pdf})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "broker.png", files[0].Name)
	assert.Equal(t, "image/png", files[0].ContentType)
	assert.Equal(t, int64(12), files[0].Size)
	assert.Equal(t, "application/pdf", files[1].ContentType)

	rc, err := files[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestRawFiles_Errors(t *testing.T) {
	_, err := rawFiles([]string{filepath.Join(t.TempDir(), "missing.png")})
	assert.Error(t, err)

	_, err = rawFiles([]string{t.TempDir()})
	assert.ErrorContains(t, err, "is a directory")
}

func TestParseFilters(t *testing.T) {
	q, err := parseFilters([]string{"symbol=AAPL", "broker=Zerodha", "symbol=MSFT"})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"symbol": {"AAPL", "MSFT"}, "broker": {"Zerodha"}}, q)

	_, err = parseFilters([]string{"symbol"})
	assert.Error(t, err)

	_, err = parseFilters([]string{"=AAPL"})
	assert.Error(t, err)
}

func TestOpenSession_RequiresToken(t *testing.T) {
	old := *token
	*token = ""
	defer func() { *token = old }()

	_, err := openSession()
	assert.ErrorIs(t, err, errNoToken)
}
