package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Writer: &buf})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	logger.Info().Msg("hidden")
	logger.Warn().Str("key", "doc-gen-values").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
	assert.Contains(t, out, `"key":"doc-gen-values"`)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Writer: &buf, Level: "debug", Console: true, NoColor: true})
	require.NoError(t, err)

	logger.Debug().Msg("exported document")
	assert.Contains(t, buf.String(), "DBG")
	assert.Contains(t, buf.String(), "exported document")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "docgen.log")
	logger, closeFn, err := New(Options{File: path, Level: "error"})
	require.NoError(t, err)

	logger.Error().Msg("export write failed")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export write failed")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	require.Error(t, err)
}
