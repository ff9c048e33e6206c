package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corey/xcprojlint/internal/app"
	"github.com/corey/xcprojlint/internal/domain/lint"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:   "config [project]",
	Short: "Show configuration",
	Long:  "Shows resolved project paths and the effective lint configuration.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a starter .xcprojlint.yaml next to the project")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configInit {
		return runConfigInit(cmd, args)
	}

	a, err := openApp(cmd, args, app.Config{})
	if err != nil {
		return err
	}
	defer a.Close()

	pal := colors()
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = a.Paths.Config
	}
	cfgStatus := pal.c(colorYellow, "✗ not found, using defaults")
	if _, err := os.Stat(cfgPath); err == nil {
		cfgStatus = pal.c(colorGreen, "✓ loaded")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", pal.c(colorBold, "⚡ xcprojlint config"))
	fmt.Fprintf(out, "  Project:    %s\n", a.Paths.Project)
	fmt.Fprintf(out, "  Dir:        %s\n", a.Paths.Dir)
	fmt.Fprintf(out, "  Config:     %s  %s\n", cfgPath, cfgStatus)
	fmt.Fprintf(out, "  History:    %s\n", a.Paths.DB)

	data, err := yaml.Marshal(a.LintConfig())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s", data)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		paths, err := resolvePaths(args)
		if err != nil {
			return failure(err)
		}
		path = paths.Config
	}
	if err := lint.WriteTemplate(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
