package lint

import (
	"encoding/json"
	"fmt"

	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/diagnostic"
	"github.com/oxhq/jscore/internal/visitor"
)

// ConfiguredRule is a rule instance plus its resolved severity.
type ConfiguredRule struct {
	Rule     Rule
	Severity diagnostic.Severity
}

// RuleConfig is the per-rule configuration the driver extracts from the
// config file: severity ("off" drops the rule) plus the rule's own
// options, passed through opaque.
type RuleConfig struct {
	Severity string          `json:"severity"`
	Options  json.RawMessage `json:"options"`
}

// Configure instantiates every registered rule, applying overrides. Rules
// with an "off" severity are skipped; unknown rule names in overrides are
// an error (a misspelled rule silently doing nothing is worse).
func Configure(reg *Registry, overrides map[string]RuleConfig) ([]ConfiguredRule, error) {
	// An override may name a rule by an alias; key it by the canonical name.
	resolved := make(map[string]RuleConfig, len(overrides))
	for name, cfg := range overrides {
		if _, meta, ok := reg.Lookup(name); ok {
			resolved[meta.Name] = cfg
		}
	}
	var out []ConfiguredRule
	for _, name := range reg.Names() {
		factory, meta, _ := reg.Lookup(name)
		cfg, hasOverride := resolved[name]
		if hasOverride && cfg.Severity == "off" {
			continue
		}
		rule, err := factory(cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		sev := toDiagSeverity(meta.DefaultSeverity)
		if hasOverride && cfg.Severity != "" {
			switch cfg.Severity {
			case "error":
				sev = diagnostic.SeverityError
			case "warn", "warning":
				sev = diagnostic.SeverityWarning
			case "info":
				sev = diagnostic.SeverityInfo
			default:
				return nil, fmt.Errorf("rule %s: unknown severity %q", name, cfg.Severity)
			}
		}
		out = append(out, ConfiguredRule{Rule: rule, Severity: sev})
	}
	for name := range overrides {
		if _, _, ok := reg.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown rule %q in configuration", name)
		}
	}
	return out, nil
}

func toDiagSeverity(s Severity) diagnostic.Severity {
	switch s {
	case SevError:
		return diagnostic.SeverityError
	case SevWarning:
		return diagnostic.SeverityWarning
	}
	return diagnostic.SeverityInfo
}

// Run executes the configured rules over ctx's file: one AST walk
// dispatching per-node rules by kind, then the whole-program rules. A rule
// reporting on a node never short-circuits the others.
func Run(ctx *Context, rules []ConfiguredRule) {
	srcType := ctx.SourceType()

	// Union of interesting kinds -> rules registered for each.
	byKind := make(map[ast.Kind][]int)
	var runOnce []int
	for i, cr := range rules {
		if !cr.Rule.ShouldRun(srcType) {
			continue
		}
		kinds := cr.Rule.Meta().NodeKinds
		if len(kinds) == 0 {
			runOnce = append(runOnce, i)
			continue
		}
		for _, k := range kinds {
			byKind[k] = append(byKind[k], i)
		}
	}

	// A rule panicking is an internal invariant violation: the rule is
	// degraded (skipped for the rest of the file) and reported through the
	// context's handler; the compilation itself never aborts.
	degraded := make(map[int]bool)
	invoke := func(i int, run func()) {
		if degraded[i] {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				degraded[i] = true
				if ctx.OnInternalError != nil {
					ctx.OnInternalError(rules[i].Rule.Meta().Name, r)
				}
			}
		}()
		ctx.curRule = rules[i].Rule.Meta()
		ctx.curSeverity = rules[i].Severity
		run()
	}

	if len(byKind) > 0 {
		visitor.Walk(ctx.Program(), visitor.FuncVisitor{OnEnter: func(n ast.Node) bool {
			for _, i := range byKind[n.Kind()] {
				i := i
				invoke(i, func() { rules[i].Rule.Run(n, ctx) })
			}
			return true
		}})
	}

	for _, i := range runOnce {
		i := i
		invoke(i, func() { rules[i].Rule.RunOnce(ctx) })
	}
}
