package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tu "jsbin/internal/testutil"
	appver "jsbin/internal/version"
)

// resetFlags puts every flag back to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func projectDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	tu.WriteFiles(t, dir, files)
	return dir
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, appver.AppVersion+"\n", out)
}

func TestBuild_Stdout(t *testing.T) {
	dir := projectDir(t, map[string]string{
		"index.html": "<h1>Hi</h1>",
		"style.css":  "h1{color:red}",
	})
	out, err := run(t, "build", dir, "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Hi</h1>")
	assert.Contains(t, out, "h1{color:red}")
	assert.Contains(t, out, "<!DOCTYPE html>")
}

func TestBuild_ExportDirNeverOverwrites(t *testing.T) {
	exp := t.TempDir()
	out, err := run(t, "build", "--empty", "--export-dir", exp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exp, "jsbin.html")+"\n", out)

	out, err = run(t, "build", "--empty", "--export-dir", exp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exp, "jsbin-1.html")+"\n", out)
}

func TestBuild_SeedFlags(t *testing.T) {
	dir := projectDir(t, map[string]string{"a.js": "console.log(1)"})
	out, err := run(t, "build", "--js", filepath.Join(dir, "a.js"), "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "console.log(1)")
	assert.NotContains(t, out, "Hello from jsbin")

	_, err = run(t, "build", "--css", filepath.Join(dir, "missing.css"), "--out", "-")
	require.Error(t, err)
}

func TestCheck_Starter(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestCheck_ScriptError(t *testing.T) {
	dir := projectDir(t, map[string]string{
		"index.html": "<p>x</p>",
		"script.js":  "console.log('before'); throw new Error('boom');",
	})
	out, err := run(t, "check", dir)
	require.ErrorIs(t, err, errScriptFailed)
	assert.Contains(t, out, "console log: before")
	assert.Contains(t, out, "JS Error: Error: boom")
}

func TestCheck_JSONSyntaxError(t *testing.T) {
	dir := projectDir(t, map[string]string{"script.js": "let = ;"})
	out, err := run(t, "check", dir, "--json")
	require.ErrorIs(t, err, errScriptFailed)

	var rep checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Empty(t, rep.Errors)
	assert.Equal(t, 1, rep.Uncaught)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	defer tu.WithEnv(t, "JSBIN_ADDR", "127.0.0.1:9999")()
	defer tu.WithEnv(t, "JSBIN_DEBOUNCE", "1s")()
	resetFlags(rootCmd)
	require.NoError(t, serveCmd.ParseFlags([]string{"--debounce", "250ms", "--auto=false"}))

	cfg, err := loadConfig(serveCmd)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.False(t, cfg.Auto)
}
