package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tu "jsbin/internal/testutil"
)

// isolate points the config dir at an empty temp dir and clears JSBIN_*.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Cleanup(tu.WithEnv(t, "XDG_CONFIG_HOME", tmp))
	t.Cleanup(tu.WithEnv(t, "HOME", tmp))
	for _, k := range []string{"ADDR", "OPEN", "AUTO", "DEBOUNCE", "STATUS_EXPIRY", "PREVIEW_EXPIRY", "EXPORT_DIR", "SCRIPT_TIMEOUT", "LOG_LEVEL"} {
		t.Cleanup(tu.WithEnv(t, Prefix+"_"+k, ""))
	}
	dir, err := Dir()
	require.NoError(t, err)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	defer tu.WithEnv(t, "JSBIN_ADDR", "127.0.0.1:9999")()
	defer tu.WithEnv(t, "JSBIN_AUTO", "false")()
	defer tu.WithEnv(t, "JSBIN_DEBOUNCE", "250ms")()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.False(t, cfg.Auto)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
}

func TestLoad_Malformed(t *testing.T) {
	isolate(t)
	defer tu.WithEnv(t, "JSBIN_DEBOUNCE", "soon")()
	_, err := Load()
	require.Error(t, err)
}

func TestDir_UsesXDG(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)()

	p, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, "jsbin.log", filepath.Base(p))
	assert.Equal(t, "jsbin", filepath.Base(filepath.Dir(p)))
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	tu.WriteFiles(t, dir, map[string]string{FileName: `
addr = "127.0.0.1:7000"
auto = false
debounce = "1s"
log_level = "debug"
`})
	defer tu.WithEnv(t, "JSBIN_ADDR", "127.0.0.1:9000")()

	cfg, err := Load()
	require.NoError(t, err)
	// the environment wins over the file
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.False(t, cfg.Auto)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().StatusExpiry, cfg.StatusExpiry)
}

func TestLoad_FileErrors(t *testing.T) {
	dir := isolate(t)
	tu.WriteFiles(t, dir, map[string]string{FileName: `debounce = "soon"`})
	_, err := Load()
	require.Error(t, err)

	tu.WriteFiles(t, dir, map[string]string{FileName: `colour = "red"`})
	_, err = Load()
	require.Error(t, err)
}
