package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oxhq/jscore/internal/driver"
)

func newFormatCommand() *cobra.Command {
	var (
		configPath string
		check      bool
		write      bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "format [--check] [--write] <paths...>",
		Short: "Format JavaScript/TypeScript sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, "")
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
			results, err := d.FormatFiles(cmd.Context(), files)
			if err != nil {
				return err
			}

			reporter := driver.NewReporter(os.Stdout)
			var bytesProcessed int64
			var writer driver.Writer
			if write {
				writer = driver.NewDiskWriter()
			} else {
				writer = driver.NewDiffWriter()
			}

			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", res.Err)
					continue
				}
				if src, rerr := os.ReadFile(res.Path); rerr == nil {
					bytesProcessed += int64(len(src))
					reporter.File(res.Path, src, res.Diagnostics)
				}
				if !res.Changed {
					continue
				}
				if werr := writer.WriteFile(res.Path, res.Output); werr != nil {
					fmt.Fprintf(os.Stderr, "%v\n", werr)
				}
			}

			if dw, ok := writer.(*driver.DiffWriter); ok && !check {
				// Plain `format` with no --write previews the diffs.
				for _, diff := range dw.Diffs() {
					fmt.Fprint(os.Stdout, diff)
				}
			}
			fmt.Fprintln(os.Stdout, writer.Summary())
			reporter.Summary(results, bytesProcessed, time.Since(start), nil)

			if code := driver.ExitCodeForFormat(results, check); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the configuration file")
	cmd.Flags().BoolVar(&check, "check", false, "exit 1 if any file would change, write nothing")
	cmd.Flags().BoolVar(&write, "write", false, "write formatted output back to the files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose internal logging")
	return cmd
}
