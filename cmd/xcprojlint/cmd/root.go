package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/xcprojlint/internal/app"
)

var (
	logLevel   string
	logFormat  string
	colorMode  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "xcprojlint",
	Short: "Xcode project file linter",
	Long: "Parses project.pbxproj into a typed model and reports dangling files, " +
		"unsorted groups, missing references and inline build settings.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.StringVar(&logFormat, "log-format", "text", "Log format: text, json")
	f.StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	f.StringVar(&configPath, "config", "", "Lint config file (default: .xcprojlint.yaml next to the project)")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(rulesCmd)
}

// logger builds the command's logger. Logs go to stderr so stdout stays
// parseable by Xcode.
func logger(cmd *cobra.Command) *slog.Logger {
	return app.NewLogger(logLevel, logFormat, cmd.ErrOrStderr())
}

// resolvePaths turns the optional project argument into project paths,
// relative to the working directory.
func resolvePaths(args []string) (*app.Paths, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	return app.ResolvePaths(arg, cwd)
}

// openApp resolves the project and wires an App. cfg supplies the
// command-specific settings.
func openApp(cmd *cobra.Command, args []string, cfg app.Config) (*app.App, error) {
	paths, err := resolvePaths(args)
	if err != nil {
		return nil, failure(err)
	}
	cfg.Paths = paths
	cfg.ConfigPath = configPath
	cfg.Logger = logger(cmd)
	a, err := app.New(cfg)
	if err != nil {
		return nil, failure(fmt.Errorf("%s: %w", paths.Project, err))
	}
	return a, nil
}

func colors() palette {
	return palette{on: resolveColor(colorMode)}
}
