package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, uint16(80), cfg.PrintWidth)
	assert.True(t, cfg.Semi)
}

func TestLoadJSONOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "jscore.json", `{
		"printWidth": 100,
		"singleQuote": true,
		"unknownFutureOption": {"nested": true}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(100), cfg.PrintWidth)
	assert.True(t, cfg.SingleQuote)
	// Untouched fields keep their defaults.
	assert.Equal(t, "all", cfg.TrailingComma)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, ".jscorerc.yml", "useTabs: true\ntabWidth: 4\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.UseTabs)
	assert.Equal(t, uint8(4), cfg.TabWidth)
}

func TestLoadRejectsBadEnum(t *testing.T) {
	path := writeFile(t, "jscore.json", `{"endOfLine": "mixed"}`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endOfLine")
}

func TestSortImportsPartitionNewlineConflict(t *testing.T) {
	path := writeFile(t, "jscore.json", `{
		"experimentalSortImports": {"partitionByNewline": true, "newlinesBetween": true}
	}`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partitionByNewline")
}

func TestSortImportsValid(t *testing.T) {
	path := writeFile(t, "jscore.json", `{
		"experimentalSortImports": {"partitionByNewline": true, "order": "asc"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.ExperimentalSortImports)
	assert.True(t, cfg.ExperimentalSortImports.PartitionByNewline)
}

func TestPrinterOptionsMapping(t *testing.T) {
	cfg := Default()
	cfg.EndOfLine = "crlf"
	cfg.ArrowParens = "avoid"
	cfg.SingleQuote = true
	opts := cfg.PrinterOptions()
	assert.Equal(t, "\r\n", opts.LineEnding)
	assert.False(t, opts.ArrowParensAlways)
	assert.True(t, opts.SingleQuote)
	assert.Equal(t, 80, opts.PrintWidth)
}

func TestValidateRanges(t *testing.T) {
	cfg := Default()
	cfg.TabWidth = 0
	assert.Error(t, cfg.Validate())
}
