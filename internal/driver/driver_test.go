package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/config"
	"github.com/oxhq/jscore/internal/diagnostic"
	_ "github.com/oxhq/jscore/internal/rules"
	"github.com/oxhq/jscore/internal/token"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectFilesWalksAndFilters(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.js", "x;")
	writeSource(t, dir, "skip.txt", "not source")
	writeSource(t, dir, "node_modules/dep/index.js", "dep;")
	b := writeSource(t, dir, "nested/b.ts", "let y = 1;")
	writeSource(t, dir, "nested/generated/c.js", "gen;")

	files, err := CollectFiles(context.Background(), []string{dir}, []string{"**/generated/**"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, files)
}

func TestLintFilesReportsAndFixes(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.js", "// lowercase comment\nconst x = 1;\ndebugger;\n")

	cfg := config.Default()
	d := New(cfg, nil)

	results, err := d.LintFiles(context.Background(), []string{path}, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	codes := map[string]bool{}
	for _, dg := range results[0].Diagnostics {
		codes[dg.Code] = true
	}
	assert.True(t, codes["capitalized-comment"])
	assert.True(t, codes["no-debugger"])

	// Diagnostics arrive in source order.
	last := uint32(0)
	for _, dg := range results[0].Diagnostics {
		assert.GreaterOrEqual(t, dg.Primary().Start, last)
		last = dg.Primary().Start
	}

	// With fixes applied, both problems disappear from the output text.
	fixed, err := d.LintFiles(context.Background(), []string{path}, true)
	require.NoError(t, err)
	require.True(t, fixed[0].Changed)
	assert.Contains(t, string(fixed[0].Output), "// Lowercase comment")
	assert.NotContains(t, string(fixed[0].Output), "debugger")
}

func TestLintExitCodes(t *testing.T) {
	warn := FileResult{Diagnostics: []diagnostic.Diagnostic{
		diagnostic.New(diagnostic.SeverityWarning, "w", "m", spanAt(0)),
	}}
	errRes := FileResult{Diagnostics: []diagnostic.Diagnostic{
		diagnostic.New(diagnostic.SeverityError, "e", "m", spanAt(0)),
	}}
	clean := FileResult{}

	assert.Equal(t, 0, ExitCodeForLint([]FileResult{clean}, false))
	assert.Equal(t, 1, ExitCodeForLint([]FileResult{clean, warn}, false))
	assert.Equal(t, 2, ExitCodeForLint([]FileResult{warn}, true))
	assert.Equal(t, 2, ExitCodeForLint([]FileResult{warn, errRes}, false))
}

func TestFormatFilesCheckAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "messy.js", "const   x=1\n")

	cfg := config.Default()
	d := New(cfg, nil)

	results, err := d.FormatFiles(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Changed)
	assert.Equal(t, "const x = 1;\n", string(results[0].Output))
	assert.Equal(t, 1, ExitCodeForFormat(results, true))
	assert.Equal(t, 0, ExitCodeForFormat(results, false))

	// Already-formatted input is unchanged (idempotence at driver level).
	formattedPath := writeSource(t, dir, "clean.js", "const x = 1;\n")
	again, err := d.FormatFiles(context.Background(), []string{formattedPath})
	require.NoError(t, err)
	assert.False(t, again[0].Changed)
}

func TestFormatBrokenSourceReportsParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.js", "const = ;\n")

	d := New(config.Default(), nil)
	results, err := d.FormatFiles(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Changed, "broken source must not be rewritten")
	assert.NotEmpty(t, results[0].Diagnostics)
}

func TestSourceTypeFor(t *testing.T) {
	assert.True(t, SourceTypeFor("a.ts").TypeScript)
	assert.False(t, SourceTypeFor("a.ts").JSX)
	assert.True(t, SourceTypeFor("a.tsx").JSX)
	assert.True(t, SourceTypeFor("a.jsx").JSX)
	assert.True(t, SourceTypeFor("a.js").Module)
}

func TestAtomicWriterPreservesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "x.js", "old;")
	require.NoError(t, os.Chmod(path, 0o600))

	w := NewDiskWriter()
	require.NoError(t, w.WriteFile(path, []byte("new;")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new;", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func spanAt(start uint32) token.Span {
	return token.Span{Start: start, End: start + 1}
}
