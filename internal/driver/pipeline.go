package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/cache"
	"github.com/oxhq/jscore/internal/config"
	"github.com/oxhq/jscore/internal/diagnostic"
	"github.com/oxhq/jscore/internal/jscerr"
	"github.com/oxhq/jscore/internal/lint"
	"github.com/oxhq/jscore/internal/parser"
	"github.com/oxhq/jscore/internal/printer"
	"github.com/oxhq/jscore/internal/semantic"
)

// Driver runs the pipeline over a file set. One Driver serves one CLI
// invocation; its cache outlives individual files but not the process.
type Driver struct {
	Config config.Config
	Logger *zap.Logger
	Cache  *cache.Cache
}

// New assembles a driver. logger may be nil (a no-op logger is used).
// Every log line of one invocation carries the same run id so interleaved
// runs against a shared log sink stay separable.
func New(cfg config.Config, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		Config: cfg,
		Logger: logger.With(zap.String("run_id", uuid.NewString())),
		Cache:  cache.New(5 * time.Minute),
	}
}

// FileResult is one file's outcome. Every field is immutable once the
// worker returns it, which is what makes the result cacheable and safe
// to aggregate across goroutines.
type FileResult struct {
	Path string
	// Diagnostics in source order.
	Diagnostics []diagnostic.Diagnostic
	// Output is the fixed (lint --fix) or formatted source; nil when the
	// content is unchanged.
	Output []byte
	// Changed reports whether Output differs from the input.
	Changed bool
	Err     error
}

// SourceTypeFor derives the dialect from the file extension.
func SourceTypeFor(path string) ast.SourceType {
	ext := strings.ToLower(filepath.Ext(path))
	st := ast.SourceType{Module: true}
	switch ext {
	case ".ts", ".mts", ".cts":
		st.TypeScript = true
	case ".tsx":
		st.TypeScript = true
		st.JSX = true
	case ".jsx":
		st.JSX = true
	default:
		// Plain .js may still contain JSX in the wild; accepting it costs
		// only the `<` disambiguation.
		st.JSX = true
	}
	return st
}

// runParallel fans the files out over a bounded worker pool. Each file's
// pipeline is strictly single-threaded: the arena, AST, and model are
// created and dropped inside the worker, so nothing needs locking.
func (d *Driver) runParallel(ctx context.Context, files []string, work func(path string, src []byte) FileResult) []FileResult {
	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return nil
			}
			src, err := os.ReadFile(path)
			if err != nil {
				results[i] = FileResult{Path: path, Err: jscerr.Wrap(jscerr.CodeIO, err, "reading source").WithPath(path)}
				return nil
			}
			results[i] = work(path, src)
			return nil
		})
	}
	// Workers never return errors; failures ride in the results.
	_ = g.Wait()
	return results
}

// LintFiles lints every file, optionally applying fixes (repeating up to
// the iteration bound until a pass produces none).
func (d *Driver) LintFiles(ctx context.Context, files []string, applyFixes bool) ([]FileResult, error) {
	rules, err := lint.Configure(lint.DefaultRegistry, d.Config.Rules)
	if err != nil {
		return nil, err
	}
	results := d.runParallel(ctx, files, func(path string, src []byte) FileResult {
		key := "lint:" + cache.Key(src)
		if !applyFixes {
			if v, ok := d.Cache.Get(key); ok {
				cached := v.(FileResult)
				cached.Path = path
				return cached
			}
		}
		res := d.lintOne(path, src, rules, applyFixes)
		if !applyFixes && res.Err == nil {
			d.Cache.Put(key, res)
		}
		return res
	})
	return results, nil
}

func (d *Driver) lintOne(path string, src []byte, rules []lint.ConfiguredRule, applyFixes bool) FileResult {
	st := SourceTypeFor(path)
	cur := src

	var bag diagnostic.Bag
	for iteration := 0; ; iteration++ {
		a := arena.New()
		res := parser.Parse(cur, st, a)
		model := semantic.Analyze(res.Program)

		lctx := lint.NewContext(cur, res.Program, model, res.Trivia)
		lctx.OnInternalError = func(rule string, recovered any) {
			d.Logger.Error("rule panicked; degraded for this file",
				zap.String("rule", rule),
				zap.String("path", path),
				zap.Any("error", recovered),
			)
		}
		lint.Run(lctx, rules)
		ruleDiags := lctx.Diagnostics()

		fixes := lint.SelectFixes(ruleDiags)
		if applyFixes && len(fixes) > 0 && iteration < lint.MaxFixIterations {
			cur = lint.ApplyFixes(cur, fixes)
			continue
		}

		// Final pass: collect everything into the bag in source order.
		bag = diagnostic.Bag{}
		for _, e := range res.Errors {
			bag.Add(diagnostic.New(diagnostic.SeverityError, "parse", e.Message, e.Span))
		}
		bag.AddAll(model.Diags)
		for _, rd := range ruleDiags {
			if applyFixes && rd.Diagnostic.Fix != nil {
				// Applied (or dropped as overlapping) in an earlier pass;
				// whatever remains reportable has no pending fix.
				continue
			}
			bag.Add(rd.Diagnostic)
		}
		break
	}

	out := FileResult{Path: path, Diagnostics: bag.Sorted()}
	if applyFixes && string(cur) != string(src) {
		out.Output = cur
		out.Changed = true
	}
	return out
}

// FormatFiles formats every file.
func (d *Driver) FormatFiles(ctx context.Context, files []string) ([]FileResult, error) {
	opts := d.Config.PrinterOptions()
	results := d.runParallel(ctx, files, func(path string, src []byte) FileResult {
		key := "format:" + cache.Key(src)
		if v, ok := d.Cache.Get(key); ok {
			cached := v.(FileResult)
			cached.Path = path
			return cached
		}
		res := d.formatOne(path, src, opts)
		if res.Err == nil {
			d.Cache.Put(key, res)
		}
		return res
	})
	return results, nil
}

func (d *Driver) formatOne(path string, src []byte, opts printer.Options) FileResult {
	st := SourceTypeFor(path)
	a := arena.New()
	res := parser.Parse(src, st, a)
	if len(res.Errors) > 0 {
		var bag diagnostic.Bag
		for _, e := range res.Errors {
			bag.Add(diagnostic.New(diagnostic.SeverityError, "parse", e.Message, e.Span))
		}
		// Formatting broken source would destroy it; report and leave it.
		return FileResult{Path: path, Diagnostics: bag.Sorted()}
	}

	formatted := []byte(printer.PrintProgram(res.Program, opts))
	out := FileResult{Path: path}
	if string(formatted) != string(src) {
		out.Output = formatted
		out.Changed = true
	}
	return out
}

// ExitCodeForLint maps lint results to the CLI contract: 2 on any error,
// 1 on warnings only (2 under denyWarnings), 0 otherwise.
func ExitCodeForLint(results []FileResult, denyWarnings bool) int {
	code := 0
	for _, r := range results {
		if r.Err != nil {
			return 3
		}
		for _, dg := range r.Diagnostics {
			switch dg.Severity {
			case diagnostic.SeverityError:
				if code < 2 {
					code = 2
				}
			case diagnostic.SeverityWarning:
				if denyWarnings {
					if code < 2 {
						code = 2
					}
				} else if code < 1 {
					code = 1
				}
			}
		}
	}
	return code
}

// ExitCodeForFormat maps format results: 1 when --check found
// differences, 3 on I/O errors, else 0.
func ExitCodeForFormat(results []FileResult, check bool) int {
	code := 0
	for _, r := range results {
		if r.Err != nil {
			return 3
		}
		if check && r.Changed {
			code = 1
		}
	}
	return code
}
