// Package driver wires the core into the CLI: file discovery, the
// per-file parallel pipeline (parse, analyze, lint or format, print),
// diagnostic reporting, and writing results back.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/jscore/internal/jscerr"
)

// sourceExtensions are the dialects the pipeline understands, mapped from
// file extension.
var sourceExtensions = map[string]bool{
	".js": true, ".mjs": true, ".cjs": true,
	".jsx": true,
	".ts":  true, ".mts": true, ".cts": true,
	".tsx": true,
}

// skipDirs are directories never worth descending into.
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true,
	"dist": true, "build": true, ".jscore": true,
}

// CollectFiles expands the CLI's path arguments into the list of source
// files to process: files are taken as given, directories walk
// recursively. ignorePatterns are doublestar globs matched against the
// slash-form relative path, so `**/generated/**` works as users expect.
func CollectFiles(ctx context.Context, targets []string, ignorePatterns []string) ([]string, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, jscerr.Wrap(jscerr.CodeIO, err, "getting working directory")
		}
		targets = []string{cwd}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(target)
		if err != nil {
			return nil, jscerr.Wrap(jscerr.CodeIO, err, "accessing target").WithPath(target)
		}
		if info.Mode().IsRegular() {
			if !ignored(target, ignorePatterns) {
				add(target)
			}
			continue
		}
		if !info.IsDir() {
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			name := d.Name()
			if d.IsDir() {
				if skipDirs[name] || (strings.HasPrefix(name, ".") && path != target) {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !sourceExtensions[filepath.Ext(name)] {
				return nil
			}
			rel, rerr := filepath.Rel(target, path)
			if rerr != nil {
				rel = path
			}
			if ignored(rel, ignorePatterns) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, jscerr.Wrap(jscerr.CodeIO, err, "walking directory").WithPath(target)
		}
	}
	return files, nil
}

func ignored(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, filepath.Base(slashed)); ok {
			return true
		}
	}
	return false
}
