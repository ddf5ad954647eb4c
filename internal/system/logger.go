package system

import (
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"

    clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger.
// It prints to stderr with timestamps enabled; the TUI redirects it to a
// file while it owns the terminal.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
    ReportTimestamp: true,
    Prefix:          "jsbin",
})

// SetLevel parses a level name such as "debug" or "warn".
func SetLevel(name string) error {
    if strings.TrimSpace(name) == "" {
        return nil
    }
    lvl, err := clog.ParseLevel(name)
    if err != nil {
        return fmt.Errorf("log level %q: %w", name, err)
    }
    Logger.SetLevel(lvl)
    return nil
}

// LogToFile sends log output to path, creating parent dirs.
// The returned closer restores stderr output.
func LogToFile(path string) (io.Closer, error) {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return nil, err
    }
    f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
    if err != nil {
        return nil, err
    }
    Logger.SetOutput(f)
    return restoreCloser{f}, nil
}

type restoreCloser struct{ f *os.File }

func (r restoreCloser) Close() error {
    Logger.SetOutput(os.Stderr)
    return r.f.Close()
}

// Writer adapts Logger for libraries that want an io.Writer (gin).
func Writer(prefix string) io.Writer {
    return Logger.WithPrefix(prefix).StandardLog(clog.StandardLogOptions{
        ForceLevel: clog.DebugLevel,
    }).Writer()
}
