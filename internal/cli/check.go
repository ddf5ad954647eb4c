package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jsbin/internal/compose"
	"jsbin/internal/config"
	"jsbin/internal/sandbox"
)

type checkReport struct {
	Console []string `json:"console"`
	Alerts  []string `json:"alerts,omitempty"`
	Errors  []string `json:"errors"`
	Timeout bool     `json:"timeout,omitempty"`

	// uncaught errors, e.g. a syntax error that kept the guard from running
	Uncaught int `json:"uncaught,omitempty"`
}

func (r checkReport) failed() bool {
	return len(r.Errors) > 0 || r.Timeout || r.Uncaught > 0
}

// errScriptFailed makes the command exit non-zero after the report is out.
var errScriptFailed = errors.New("script failed")

var checkJSON bool

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output JSON report")
}

var checkCmd = &cobra.Command{
	Use:   "check [DIR]",
	Short: "Render headlessly and report console output and script errors",
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
		rep, err := runCheck(cfg, compose.ComposeBuffers(seed))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if checkJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return err
			}
		} else {
			for _, l := range rep.Console {
				fmt.Fprintf(out, "console %s\n", l)
			}
			for _, a := range rep.Alerts {
				fmt.Fprintf(out, "alert: %s\n", a)
			}
			for _, e := range rep.Errors {
				fmt.Fprintln(out, e)
			}
			if rep.Timeout {
				fmt.Fprintln(out, "script did not finish in time")
			}
			if !rep.failed() {
				fmt.Fprintln(out, "ok")
			}
		}
		if rep.failed() {
			return errScriptFailed
		}
		return nil
	},
}

func runCheck(cfg *config.Config, doc string) (checkReport, error) {
	page := sandbox.New(sandbox.Config{Timeout: cfg.ScriptTimeout})
	rep := checkReport{Console: []string{}, Errors: []string{}}
	if err := page.Render(doc); err != nil {
		if !errors.Is(err, sandbox.ErrTimeout) {
			return rep, err
		}
		rep.Timeout = true
	}
	for _, e := range page.Console() {
		rep.Console = append(rep.Console, e.String())
		if e.Level == "error" && strings.HasPrefix(e.Message, "Uncaught ") {
			rep.Uncaught++
		}
	}
	rep.Alerts = page.Alerts()
	rep.Errors = append(rep.Errors, page.Errors()...)
	return rep, nil
}
