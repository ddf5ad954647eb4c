package config

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
)

// Dir returns the jsbin config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/jsbin; on macOS
// to ~/Library/Application Support/jsbin; and on Windows to %AppData%/jsbin.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
    base, err := os.UserConfigDir()
    if err != nil || strings.TrimSpace(base) == "" {
        if home, herr := os.UserHomeDir(); herr == nil {
            base = home
        } else {
            return "", errors.New("cannot determine config directory")
        }
    }
    return filepath.Join(base, "jsbin"), nil
}

// LogPath is where the TUI writes its log while it owns the terminal.
func LogPath() (string, error) {
    dir, err := Dir()
    if err != nil {
        return "", err
    }
    return filepath.Join(dir, "jsbin.log"), nil
}
