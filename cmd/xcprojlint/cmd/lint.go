package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/xcprojlint/internal/app"
)

var (
	lintValidations []string
	lintReport      string
	lintNoCache     bool
	lintQuiet       bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [project]",
	Short: "Lint a project file",
	Long: "Runs the configured validations and prints findings as path:line: severity: message.\n" +
		"Exit status is 0 when clean, 1 when error-level findings exist, 2 when the project cannot be loaded.",
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	f := lintCmd.Flags()
	f.StringArrayVarP(&lintValidations, "validation", "v", nil, "Validation to run (repeatable, \"all\" for every rule)")
	f.StringVar(&lintReport, "report", "", "Report findings as error or warning")
	f.BoolVar(&lintNoCache, "no-cache", false, "Ignore findings from the previous run")
	f.BoolVarP(&lintQuiet, "quiet", "q", false, "Print findings only, no summary")
}

func runLint(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, args, app.Config{
		Validations: lintValidations,
		Report:      lintReport,
		NoCache:     lintNoCache,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Lint(cmd.Context())
	if err != nil {
		return failure(err)
	}

	pal := colors()
	out := cmd.OutOrStdout()
	for _, f := range res.Findings {
		fmt.Fprintln(out, formatFinding(f, pal))
	}
	if !lintQuiet {
		fmt.Fprintln(cmd.ErrOrStderr(), formatSummary(res, pal))
	}

	if res.ErrorCount() > 0 {
		return exitError{code: exitFindings}
	}
	return nil
}
