package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"sort"
	"strings"
	"sync"
)

// Registry holds the known rule factories. It is read-only after startup
// (rules register during init or driver bootstrap); the mutex exists for
// the plugin-loading path, which may race with nothing in practice but is
// guarded anyway so LoadPlugin stays safe to call from tests.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory // canonical rule name -> factory
	metas     map[string]Meta
	aliases   map[string]string // alias -> canonical name
}

// NewRegistry creates an empty registry. The core registers no rules
// itself; internal/rules (and plugins) populate it.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		metas:     make(map[string]Meta),
		aliases:   make(map[string]string),
	}
}

// Register adds a rule factory under its meta name, with optional aliases
// (old names kept for configuration compatibility).
func (r *Registry) Register(meta Meta, f Factory, aliases ...string) error {
	if meta.Name == "" {
		return fmt.Errorf("rule must have a non-empty name")
	}
	if f == nil {
		return fmt.Errorf("rule %s: factory cannot be nil", meta.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[meta.Name]; exists {
		return fmt.Errorf("rule %q already registered", meta.Name)
	}
	r.factories[meta.Name] = f
	r.metas[meta.Name] = meta

	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		if existing, exists := r.aliases[alias]; exists {
			return fmt.Errorf("alias %q conflicts with existing mapping to %q", alias, existing)
		}
		r.aliases[alias] = meta.Name
	}
	return nil
}

// Lookup resolves a rule name or alias to its factory and meta.
func (r *Registry) Lookup(name string) (Factory, Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical := name
	if c, ok := r.aliases[name]; ok {
		canonical = c
	}
	f, ok := r.factories[canonical]
	if !ok {
		return nil, Meta{}, false
	}
	return f, r.metas[canonical], true
}

// Names returns the registered canonical rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByPlugin groups registered rule names by their plugin tag, for the run
// summary.
func (r *Registry) ByPlugin() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string)
	for name, m := range r.metas {
		tag := m.Plugin
		if tag == "" {
			tag = "builtin"
		}
		out[tag] = append(out[tag], name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

// LoadPlugin loads additional rules from a Go plugin. The plugin must
// export a `Rules` symbol of type []RulePlugin; each entry is registered
// like a built-in.
func (r *Registry) LoadPlugin(path string) error {
	if path == "" {
		return fmt.Errorf("plugin path cannot be empty")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("plugin file does not exist: %s", path)
	}

	plug, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open plugin %s: %w", path, err)
	}
	sym, err := plug.Lookup("Rules")
	if err != nil {
		return fmt.Errorf("plugin %s missing 'Rules' symbol: %w", path, err)
	}
	entries, ok := sym.(*[]RulePlugin)
	if !ok {
		return fmt.Errorf("plugin %s 'Rules' symbol is not []RulePlugin", path)
	}
	for _, e := range *entries {
		if err := r.Register(e.Meta, e.Factory, e.Aliases...); err != nil {
			return fmt.Errorf("failed to register plugin %s rule: %w", path, err)
		}
	}
	return nil
}

// LoadPluginsFromDir loads every plugin file in dir, continuing past
// individual failures and reporting them together.
func (r *Registry) LoadPluginsFromDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil // not an error: plugins are optional
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read plugin directory %s: %w", dir, err)
	}

	var errs []string
	for _, entry := range entries {
		if entry.IsDir() || !isPluginFile(entry.Name()) {
			continue
		}
		if err := r.LoadPlugin(filepath.Join(dir, entry.Name())); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", entry.Name(), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to load some plugins:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

func isPluginFile(name string) bool {
	return strings.HasSuffix(name, ".so") ||
		strings.HasSuffix(name, ".dll") ||
		strings.HasSuffix(name, ".dylib")
}

// RulePlugin is the exported shape a rule plugin provides.
type RulePlugin struct {
	Meta    Meta
	Factory Factory
	Aliases []string
}

// DefaultRegistry is the process-global registry the CLI uses; it is
// populated at startup and read-only afterwards.
var DefaultRegistry = NewRegistry()

// Register adds a rule to the default registry.
func Register(meta Meta, f Factory, aliases ...string) error {
	return DefaultRegistry.Register(meta, f, aliases...)
}
