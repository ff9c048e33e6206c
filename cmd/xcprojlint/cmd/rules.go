package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/xcprojlint/internal/domain/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List available validations",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	pal := colors()
	out := cmd.OutOrStdout()
	for _, r := range lint.Rules() {
		fmt.Fprintf(out, "  %s %s\n", pal.c(colorCyan, fmt.Sprintf("%-28s", r.Name)), r.Description)
	}
	return nil
}
