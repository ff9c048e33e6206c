package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	fsw "github.com/corey/xcprojlint/internal/adapters/fsnotify"
	"github.com/corey/xcprojlint/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch [project]",
	Short: "Re-lint on every save",
	Long:  "Lints the project, then again each time the project file or lint config changes. Stop with Ctrl-C.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringArrayVarP(&lintValidations, "validation", "v", nil, "Validation to run (repeatable)")
	f.StringVar(&lintReport, "report", "", "Report findings as error or warning")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, args, app.Config{
		Validations: lintValidations,
		Report:      lintReport,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := fsw.NewWatcher()
	if err != nil {
		return failure(fmt.Errorf("create watcher: %w", err))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pal := colors()
	out := cmd.OutOrStdout()
	fmt.Fprintf(cmd.ErrOrStderr(), "%s watching %s\n", pal.c(colorBold, "⚡"), a.Paths.Project)

	return a.Watch(ctx, w, func(res *app.Result, err error) {
		stamp := pal.c(colorGray, time.Now().Format(time.TimeOnly))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %v\n", stamp, pal.c(colorRed, "✗"), err)
			return
		}
		for _, f := range res.Findings {
			fmt.Fprintln(out, formatFinding(f, pal))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", stamp, formatSummary(res, pal))
	})
}
