package strategy

import (
	"fmt"
	"sort"
)

// Registry maps strategy identifiers to validated signal-generating units.
// All registrations happen at startup; an unknown name or an invalid
// configuration is an error before any candle is processed.
type Registry struct {
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds a validated strategy under its name
func (r *Registry) Register(s Strategy) error {
	if s == nil {
		return fmt.Errorf("strategy cannot be nil")
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("strategy name cannot be empty")
	}
	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("strategy %q already registered", name)
	}
	r.strategies[name] = s
	return nil
}

// Get returns the strategy registered under name
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (registered: %v)", name, r.List())
	}
	return s, nil
}

// List returns the registered strategy names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
