package config

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("DOCGEN_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	require.NotEmpty(t, dir)
	if runtime.GOOS != "windows" {
		assert.Equal(t, AppName, filepath.Base(dir))
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("DOCGEN_CONFIG_HOME", "/custom/path")
	assert.Equal(t, "/custom/path", Dir())
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("DOCGEN_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	assert.Equal(t, filepath.Join("/xdg/config", AppName), Dir())
}

func TestDataDir(t *testing.T) {
	t.Setenv("DOCGEN_DATA_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	if runtime.GOOS != "windows" {
		assert.Equal(t, filepath.Join(".local", "share", AppName), lastN(DataDir(), 3))
	}

	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	assert.Equal(t, filepath.Join("/xdg/data", AppName), DataDir())

	t.Setenv("DOCGEN_DATA_HOME", "/data/override")
	assert.Equal(t, "/data/override", DataDir())
}

// lastN returns the last n elements of path.
func lastN(path string, n int) string {
	parts := make([]string, 0, n)
	for range n {
		parts = append([]string{filepath.Base(path)}, parts...)
		path = filepath.Dir(path)
	}
	return filepath.Join(parts...)
}
