package cli

import (
	"github.com/spf13/cobra"

	"jsbin/internal/app"
	"jsbin/internal/sandbox"
)

var serveCheck bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveCheck, "check", false, "also run each render headlessly and log script errors")
}

var serveCmd = &cobra.Command{
	Use:   "serve DIR",
	Short: "Preview a project directory, refreshing as its files change",
	Long: "serve watches index.html, style.css and script.js in DIR and pushes every " +
		"refresh to the browser preview. Use your own editor; saving is typing.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := app.ServeOptions{
			Addr:    cfg.Addr,
			Open:    cfg.Open,
			Dir:     args[0],
			Session: app.SessionOptions(cfg),
		}
		if serveCheck {
			opts.Check = sandbox.New(sandbox.Config{Timeout: cfg.ScriptTimeout})
		}
		return app.Serve(cmd.Context(), opts)
	},
}
