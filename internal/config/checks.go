package config

import "github.com/oxhq/jscore/internal/jscerr"

// Validate checks the cross-field and enum constraints that JSON/YAML
// decoding alone cannot express. Each check returns a structured config
// error naming the offending option.
func (c Config) Validate() error {
	if err := c.checkEnums(); err != nil {
		return err
	}
	if err := c.checkRanges(); err != nil {
		return err
	}
	return c.checkSortImports()
}

func (c Config) checkEnums() error {
	enums := []struct {
		name  string
		value string
		legal []string
	}{
		{"endOfLine", c.EndOfLine, []string{"lf", "crlf", "cr"}},
		{"quoteProps", c.QuoteProps, []string{"as-needed", "consistent", "preserve"}},
		{"trailingComma", c.TrailingComma, []string{"all", "es5", "none"}},
		{"arrowParens", c.ArrowParens, []string{"always", "avoid"}},
		{"objectWrap", c.ObjectWrap, []string{"preserve", "collapse", "always"}},
		{"embeddedLanguageFormatting", c.EmbeddedLanguageFormatting, []string{"auto", "off"}},
	}
	for _, e := range enums {
		if !contains(e.legal, e.value) {
			return jscerr.New(jscerr.CodeConfig, "option %q: invalid value %q", e.name, e.value)
		}
	}
	return nil
}

func (c Config) checkRanges() error {
	if c.TabWidth == 0 {
		return jscerr.New(jscerr.CodeConfig, "option \"tabWidth\": must be at least 1")
	}
	if c.PrintWidth == 0 {
		return jscerr.New(jscerr.CodeConfig, "option \"printWidth\": must be at least 1")
	}
	return nil
}

func (c Config) checkSortImports() error {
	si := c.ExperimentalSortImports
	if si == nil {
		return nil
	}
	if si.Order != "" && si.Order != "asc" && si.Order != "desc" {
		return jscerr.New(jscerr.CodeConfig, "option \"experimentalSortImports.order\": invalid value %q", si.Order)
	}
	// Newline partitions and newline insertion are mutually exclusive:
	// partitioning treats blank lines as user-owned section breaks, while
	// newlinesBetween claims ownership of them.
	if si.PartitionByNewline && si.NewlinesBetween {
		return jscerr.New(jscerr.CodeConfig,
			"options \"experimentalSortImports.partitionByNewline\" and \"experimentalSortImports.newlinesBetween\" cannot both be enabled")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
