// jscore is the command-line front end: `jscore lint` and
// `jscore format` over the shared compilation core.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxhq/jscore/internal/config"
	"github.com/oxhq/jscore/internal/jscerr"
	"github.com/oxhq/jscore/internal/lint"
	_ "github.com/oxhq/jscore/internal/rules" // registers the built-in rules
)

func main() {
	// A .env file may carry JSCORE_* settings in development; absence is
	// not an error.
	_ = godotenv.Load()

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(jscerr.ExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jscore",
		Short:         "JavaScript/TypeScript linter and formatter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newRulesCommand())
	return rootCmd
}

// loadConfig resolves the --config flag plus plugin rule loading; shared
// by both subcommands.
func loadConfig(configPath, pluginDir string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if pluginDir != "" {
		if err := lint.DefaultRegistry.LoadPluginsFromDir(pluginDir); err != nil {
			return cfg, jscerr.Wrap(jscerr.CodeConfig, err, "loading rule plugins")
		}
	}
	return cfg, nil
}

// newLogger builds the production logger used for internal-error
// reporting; it must never fail the run.
func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the registered lint rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			byPlugin := lint.DefaultRegistry.ByPlugin()
			for tag, names := range byPlugin {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", tag)
				for _, n := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", n)
				}
			}
			return nil
		},
	}
}
