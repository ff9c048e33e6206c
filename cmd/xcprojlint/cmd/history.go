package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/xcprojlint/internal/app"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [project]",
	Short: "Show recorded lint runs",
	Long:  "Prints recorded runs for the project, newest first.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show (0 for all)")
	f.BoolVar(&historyClear, "clear", false, "Forget every recorded run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, args, app.Config{})
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if historyClear {
		if err := a.ClearHistory(); err != nil {
			return err
		}
		fmt.Fprintf(out, "cleared history for %s\n", a.Paths.Project)
		return nil
	}

	runs, err := a.History(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no recorded runs")
		return nil
	}
	pal := colors()
	for _, r := range runs {
		fmt.Fprintln(out, formatRun(r, pal))
	}
	return nil
}
