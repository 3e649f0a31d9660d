package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/jscore/internal/jscerr"
)

// Writer abstracts what happens to changed files: written to disk, or
// only summarized (dry run / --check).
type Writer interface {
	WriteFile(path string, content []byte) error
	Summary() string
}

// writeFileAtomic writes via a temp file in the same directory followed
// by a rename, so a crash mid-write never leaves a truncated source file.
func writeFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jscore-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// DiskWriter writes changed files in place, atomically.
type DiskWriter struct {
	written []string
}

func NewDiskWriter() *DiskWriter { return &DiskWriter{} }

func (w *DiskWriter) WriteFile(path string, content []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := writeFileAtomic(path, content, perm); err != nil {
		return jscerr.Wrap(jscerr.CodeIO, err, "writing file").WithPath(path)
	}
	w.written = append(w.written, path)
	return nil
}

func (w *DiskWriter) Summary() string {
	if len(w.written) == 0 {
		return "No files were written."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Wrote %d file(s):\n", len(w.written))
	for _, p := range w.written {
		fmt.Fprintf(&sb, "  %s\n", p)
	}
	return sb.String()
}

// DiffWriter records unified diffs instead of writing, for --check and
// dry runs.
type DiffWriter struct {
	diffs []string
	count int
}

func NewDiffWriter() *DiffWriter { return &DiffWriter{} }

func (w *DiffWriter) WriteFile(path string, content []byte) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return jscerr.Wrap(jscerr.CodeIO, err, "reading original for diff").WithPath(path)
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(content)),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
	if err != nil {
		return jscerr.Wrap(jscerr.CodeInternal, err, "computing diff").WithPath(path)
	}
	w.count++
	w.diffs = append(w.diffs, diff)
	return nil
}

// Diffs returns the collected unified diffs.
func (w *DiffWriter) Diffs() []string { return w.diffs }

func (w *DiffWriter) Summary() string {
	if w.count == 0 {
		return "No changes."
	}
	return fmt.Sprintf("%d file(s) would change.", w.count)
}
