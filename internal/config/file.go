package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the optional settings file under Dir.
const FileName = "config.toml"

// fileConfig mirrors Config with every key optional. Durations are strings
// such as "600ms".
type fileConfig struct {
	Addr          *string `toml:"addr"`
	Open          *bool   `toml:"open"`
	Auto          *bool   `toml:"auto"`
	Debounce      *string `toml:"debounce"`
	StatusExpiry  *string `toml:"status_expiry"`
	PreviewExpiry *string `toml:"preview_expiry"`
	ExportDir     *string `toml:"export_dir"`
	ScriptTimeout *string `toml:"script_timeout"`
	LogLevel      *string `toml:"log_level"`
}

// applyFile overlays the file at path onto cfg, skipping keys the
// environment already set. A missing file is not an error.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	str := func(env string, v *string, dst *string) {
		if v != nil && !envSet(env) {
			*dst = *v
		}
	}
	flag := func(env string, v *bool, dst *bool) {
		if v != nil && !envSet(env) {
			*dst = *v
		}
	}
	var derr error
	dur := func(env string, v *string, dst *time.Duration) {
		if v == nil || envSet(env) {
			return
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			derr = errors.Join(derr, fmt.Errorf("%s: %s: %w", path, env, err))
			return
		}
		*dst = d
	}

	str("ADDR", fc.Addr, &cfg.Addr)
	flag("OPEN", fc.Open, &cfg.Open)
	flag("AUTO", fc.Auto, &cfg.Auto)
	dur("DEBOUNCE", fc.Debounce, &cfg.Debounce)
	dur("STATUS_EXPIRY", fc.StatusExpiry, &cfg.StatusExpiry)
	dur("PREVIEW_EXPIRY", fc.PreviewExpiry, &cfg.PreviewExpiry)
	str("EXPORT_DIR", fc.ExportDir, &cfg.ExportDir)
	dur("SCRIPT_TIMEOUT", fc.ScriptTimeout, &cfg.ScriptTimeout)
	str("LOG_LEVEL", fc.LogLevel, &cfg.LogLevel)
	return derr
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(Prefix + "_" + key)
	return ok
}
