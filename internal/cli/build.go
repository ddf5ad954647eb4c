package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jsbin/internal/compose"
	"jsbin/internal/playground"
)

var buildOut string

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output file; - for stdout (default: jsbin.html in the export dir, never overwritten)")
}

var buildCmd = &cobra.Command{
	Use:   "build [DIR]",
	Short: "Write the composed document, like the Download button",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		seed, err := seedBuffers(args)
		if err != nil {
			return err
		}
		doc := []byte(compose.ComposeBuffers(seed))

		switch buildOut {
		case "-":
			_, err := playground.WriterExporter{W: cmd.OutOrStdout()}.Export(compose.DownloadName, doc)
			return err
		case "":
			where, err := playground.DirExporter{Dir: cfg.ExportDir}.Export(compose.DownloadName, doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), where)
			return nil
		default:
			if err := os.WriteFile(buildOut, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", buildOut, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), buildOut)
			return nil
		}
	},
}
