// Package config loads and validates the toolchain's configuration file:
// a closed set of formatting and lint options, JSON by default with a
// YAML variant for .jscorerc.yml. Unknown fields are ignored for forward
// compatibility; known fields with bad values are errors.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oxhq/jscore/internal/jscerr"
	"github.com/oxhq/jscore/internal/lint"
	"github.com/oxhq/jscore/internal/printer"
)

// SortImports is the experimental import-sorting option block.
type SortImports struct {
	PartitionByNewline bool     `json:"partitionByNewline" yaml:"partitionByNewline"`
	PartitionByComment bool     `json:"partitionByComment" yaml:"partitionByComment"`
	SortSideEffects    bool     `json:"sortSideEffects" yaml:"sortSideEffects"`
	Order              string   `json:"order" yaml:"order"` // "asc" | "desc"
	IgnoreCase         bool     `json:"ignoreCase" yaml:"ignoreCase"`
	NewlinesBetween    bool     `json:"newlinesBetween" yaml:"newlinesBetween"`
	InternalPattern    []string `json:"internalPattern" yaml:"internalPattern"`
	Groups             []any    `json:"groups" yaml:"groups"`
}

// Config is the full option set. Field defaults come from Default();
// loading overlays the file on top of them.
type Config struct {
	UseTabs                    bool   `json:"useTabs" yaml:"useTabs"`
	TabWidth                   uint8  `json:"tabWidth" yaml:"tabWidth"`
	PrintWidth                 uint16 `json:"printWidth" yaml:"printWidth"`
	EndOfLine                  string `json:"endOfLine" yaml:"endOfLine"` // "lf" | "crlf" | "cr"
	SingleQuote                bool   `json:"singleQuote" yaml:"singleQuote"`
	JSXSingleQuote             bool   `json:"jsxSingleQuote" yaml:"jsxSingleQuote"`
	QuoteProps                 string `json:"quoteProps" yaml:"quoteProps"`
	TrailingComma              string `json:"trailingComma" yaml:"trailingComma"`
	Semi                       bool   `json:"semi" yaml:"semi"`
	ArrowParens                string `json:"arrowParens" yaml:"arrowParens"`
	BracketSpacing             bool   `json:"bracketSpacing" yaml:"bracketSpacing"`
	BracketSameLine            bool   `json:"bracketSameLine" yaml:"bracketSameLine"`
	ObjectWrap                 string `json:"objectWrap" yaml:"objectWrap"`
	SingleAttributePerLine     bool   `json:"singleAttributePerLine" yaml:"singleAttributePerLine"`
	EmbeddedLanguageFormatting string `json:"embeddedLanguageFormatting" yaml:"embeddedLanguageFormatting"`
	InsertFinalNewline         bool   `json:"insertFinalNewline" yaml:"insertFinalNewline"`
	IgnorePatterns             []string `json:"ignorePatterns" yaml:"ignorePatterns"`

	ExperimentalSortImports *SortImports `json:"experimentalSortImports" yaml:"experimentalSortImports"`

	// Rules holds per-rule lint configuration keyed by rule name.
	Rules map[string]lint.RuleConfig `json:"rules" yaml:"rules"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		TabWidth:                   2,
		PrintWidth:                 80,
		EndOfLine:                  "lf",
		QuoteProps:                 "as-needed",
		TrailingComma:              "all",
		Semi:                       true,
		ArrowParens:                "always",
		BracketSpacing:             true,
		ObjectWrap:                 "preserve",
		EmbeddedLanguageFormatting: "auto",
		InsertFinalNewline:         true,
	}
}

// Load reads a config file, overlaying it on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, jscerr.Wrap(jscerr.CodeIO, err, "reading config file").WithPath(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, jscerr.Wrap(jscerr.CodeConfig, err, "invalid YAML configuration").WithPath(path)
		}
	default:
		// Unknown JSON fields are deliberately ignored (forward compat);
		// only malformed JSON is an error.
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, jscerr.Wrap(jscerr.CodeConfig, err, "invalid JSON configuration").WithPath(path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// PrinterOptions maps the file options onto the printer's knobs.
func (c Config) PrinterOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.UseTabs = c.UseTabs
	opts.TabWidth = int(c.TabWidth)
	opts.PrintWidth = int(c.PrintWidth)
	switch c.EndOfLine {
	case "crlf":
		opts.LineEnding = "\r\n"
	case "cr":
		opts.LineEnding = "\r"
	default:
		opts.LineEnding = "\n"
	}
	opts.SingleQuote = c.SingleQuote
	opts.JSXSingleQuote = c.JSXSingleQuote
	opts.Semi = c.Semi
	opts.BracketSpacing = c.BracketSpacing
	opts.BracketSameLine = c.BracketSameLine
	opts.ArrowParensAlways = c.ArrowParens != "avoid"
	opts.TrailingComma = c.TrailingComma
	opts.QuoteProps = c.QuoteProps
	opts.SingleAttributePerLine = c.SingleAttributePerLine
	opts.InsertFinalNewline = c.InsertFinalNewline
	return opts
}
