package lint

import (
	"slices"
	"sync"
)

// Factory constructs a fresh rule instance for one lint run. Rules may be
// stateful, so the engine never shares an instance between runs.
type Factory func(cfg Config) Rule

// Registry holds the available lint rule factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a rule factory to the registry. A factory registered under
// an existing name replaces the previous one.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Has reports whether a rule with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build instantiates every registered rule that is not disabled, in sorted
// name order for deterministic behavior.
func (r *Registry) Build(cfg Config) []Rule {
	disabled := make(map[string]struct{}, len(cfg.Disabled))
	for _, name := range cfg.Disabled {
		disabled[name] = struct{}{}
	}

	var rules []Rule
	for _, name := range r.Names() {
		if _, off := disabled[name]; off {
			continue
		}
		r.mu.RLock()
		factory := r.factories[name]
		r.mu.RUnlock()
		rules = append(rules, factory(cfg))
	}
	return rules
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
