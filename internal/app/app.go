package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"jsbin/internal/buffer"
	"jsbin/internal/config"
	"jsbin/internal/playground"
	"jsbin/internal/preview"
	"jsbin/internal/system"
	"jsbin/internal/ui"
)

// Options configures the interactive playground.
type Options struct {
	Addr      string
	Open      bool
	ExportDir string
	Seed      buffer.Buffers
	Session   playground.Options
}

// Start runs the TUI with the preview server alongside and returns when the
// user quits.
func Start(ctx context.Context, opts Options) error {
	// The terminal belongs to the TUI; logs go to a file.
	if p, err := config.LogPath(); err == nil {
		if c, err := system.LogToFile(p); err == nil {
			defer c.Close()
		}
	}

	// Initialize global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()

	surface := preview.NewSurface()
	url := fmt.Sprintf("http://%s/", opts.Addr)
	m, sess := ui.New(ui.Options{
		Sink:       surface,
		Exporter:   playground.DirExporter{Dir: opts.ExportDir},
		Session:    opts.Session,
		Seed:       opts.Seed,
		PreviewURL: url,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	stopped := make(chan struct{})
	srv := &preview.Server{
		Addr:    opts.Addr,
		Surface: surface,
		Console: playground.NewRemote(sess, ui.Dispatcher(p, stopped)),
	}
	srvCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := srv.Start(srvCtx); err != nil {
			system.Logger.Error("preview server stopped", "err", err)
			p.Send(ui.ServerFailed(err))
		}
	}()
	go func() {
		<-srvCtx.Done()
		p.Quit()
	}()
	if opts.Open {
		if err := preview.OpenBrowser(url); err != nil {
			system.Logger.Warn("failed to open browser", "err", err)
		}
	}

	_, err := p.Run()
	close(stopped)
	return err
}

// SessionOptions maps the runtime config onto session options.
func SessionOptions(cfg *config.Config) playground.Options {
	return playground.Options{
		Debounce:      cfg.Debounce,
		StatusExpiry:  cfg.StatusExpiry,
		PreviewExpiry: cfg.PreviewExpiry,
		Manual:        !cfg.Auto,
	}
}
