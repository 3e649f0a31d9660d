package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oxhq/jscore/internal/driver"
	"github.com/oxhq/jscore/internal/lint"
)

func newLintCommand() *cobra.Command {
	var (
		configPath   string
		applyFixes   bool
		denyWarnings bool
		pluginDir    string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "lint [--fix] [--config <path>] <paths...>",
		Short: "Lint JavaScript/TypeScript sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, pluginDir)
			if err != nil {
				return err
			}
			logger := newLogger(verbose)
			defer logger.Sync()

			files, err := driver.CollectFiles(cmd.Context(), args, cfg.IgnorePatterns)
			if err != nil {
				return err
			}

			d := driver.New(cfg, logger)
			start := time.Now()
			results, err := d.LintFiles(cmd.Context(), files, applyFixes)
			if err != nil {
				return err
			}

			reporter := driver.NewReporter(os.Stdout)
			var bytesProcessed int64
			writer := driver.NewDiskWriter()
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", res.Err)
					continue
				}
				src, rerr := os.ReadFile(res.Path)
				if rerr == nil {
					bytesProcessed += int64(len(src))
					reporter.File(res.Path, src, res.Diagnostics)
				}
				if applyFixes && res.Changed {
					if werr := writer.WriteFile(res.Path, res.Output); werr != nil {
						fmt.Fprintf(os.Stderr, "%v\n", werr)
					}
				}
			}
			reporter.Summary(results, bytesProcessed, time.Since(start), lint.DefaultRegistry.ByPlugin())
			if applyFixes {
				fmt.Fprintln(os.Stdout, writer.Summary())
			}

			if code := driver.ExitCodeForLint(results, denyWarnings); code != 0 {
				// Diagnostic-driven exit codes are not errors: exit directly
				// rather than returning through cobra.
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the configuration file")
	cmd.Flags().BoolVar(&applyFixes, "fix", false, "apply safe fixes and write files in place")
	cmd.Flags().BoolVar(&denyWarnings, "deny-warnings", false, "treat warnings as errors for the exit code")
	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "", "directory of rule plugins (.so) to load")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose internal logging")
	return cmd
}
