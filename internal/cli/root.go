package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jsbin/internal/app"
	"jsbin/internal/buffer"
	"jsbin/internal/config"
	"jsbin/internal/project"
	"jsbin/internal/system"
)

// flags shared by every command; zero values mean "not given"
var (
	flagAddr      string
	flagOpen      bool
	flagAuto      bool
	flagDebounce  time.Duration
	flagExportDir string
	flagLogLevel  string

	flagEmpty bool
	flagFiles = map[buffer.Role]*string{}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagAddr, "addr", "a", "", "preview server address (host:port)")
	pf.BoolVarP(&flagOpen, "open", "o", false, "open the preview in a browser")
	pf.BoolVar(&flagAuto, "auto", true, "refresh the preview while typing")
	pf.DurationVar(&flagDebounce, "debounce", 0, "quiet period before an auto refresh")
	pf.StringVar(&flagExportDir, "export-dir", "", "where downloads are written")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&flagEmpty, "empty", false, "start with empty buffers")
	for _, r := range buffer.Roles {
		flagFiles[r] = pf.String(string(r), "", fmt.Sprintf("seed the %s buffer from a file", r.Title()))
	}
}

var rootCmd = &cobra.Command{
	Use:   "jsbin [DIR]",
	Short: "jsbin – live HTML/CSS/JS playground",
	Long: "jsbin edits HTML, CSS and JavaScript in the terminal and shows the result, live, " +
		"in a sandboxed browser preview. DIR seeds the buffers from index.html, style.css and script.js.",
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return system.SetLevel(cfg.LogLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: launch the TUI
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		seed, err := seedBuffers(args)
		if err != nil {
			return err
		}
		return app.Start(cmd.Context(), app.Options{
			Addr:      cfg.Addr,
			Open:      cfg.Open,
			ExportDir: cfg.ExportDir,
			Seed:      seed,
			Session:   app.SessionOptions(cfg),
		})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// loadConfig reads the environment, then applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("addr") {
		cfg.Addr = flagAddr
	}
	if fs.Changed("open") {
		cfg.Open = flagOpen
	}
	if fs.Changed("auto") {
		cfg.Auto = flagAuto
	}
	if fs.Changed("debounce") {
		cfg.Debounce = flagDebounce
	}
	if fs.Changed("export-dir") {
		cfg.ExportDir = flagExportDir
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// seedBuffers picks the starting text: a project DIR, the per-buffer file
// flags, nothing with --empty, or the starter page.
func seedBuffers(args []string) (buffer.Buffers, error) {
	if len(args) > 0 {
		return project.Load(args[0])
	}
	var b buffer.Buffers
	given := false
	for _, r := range buffer.Roles {
		path := *flagFiles[r]
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return b, fmt.Errorf("--%s: %w", r, err)
		}
		b.Set(r, string(data))
		given = true
	}
	if given || flagEmpty {
		return b, nil
	}
	return buffer.Starter(), nil
}
