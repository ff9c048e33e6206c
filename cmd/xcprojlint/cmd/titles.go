package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/corey/xcprojlint/internal/app"
)

var titlesCmd = &cobra.Command{
	Use:   "titles [project]",
	Short: "Print the recovered name table",
	Long:  "Prints identifier → title pairs recovered from the project file's comments, sorted by identifier.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTitles,
}

func runTitles(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, args, app.Config{})
	if err != nil {
		return err
	}
	defer a.Close()

	titles, err := a.Titles()
	if err != nil {
		return failure(err)
	}

	ids := make([]string, 0, len(titles))
	for id := range titles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pal := colors()
	out := cmd.OutOrStdout()
	for _, id := range ids {
		fmt.Fprintf(out, "%s  %s\n", pal.c(colorGray, id), titles[id])
	}
	return nil
}
