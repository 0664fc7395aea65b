package symbols

import (
	"fmt"
	"sort"
	"sync"
)

type symbol struct {
	ctor      Constructor
	factories map[string]Constructor
}

// Registry is a Resolver backed by an in-memory table.
type Registry struct {
	mu      sync.RWMutex
	symbols map[string]*symbol
}

// Option configures a registered constructor.
type Option func(*symbol)

// WithFactory adds a named factory to the constructor.
func WithFactory(name string, ctor Constructor) Option {
	return func(s *symbol) {
		s.factories[name] = ctor
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{symbols: make(map[string]*symbol)}
}

// Register adds the constructor for locator. A nil constructor registers a
// locator that only serves factories.
func (r *Registry) Register(locator string, ctor Constructor, opts ...Option) error {
	if locator == "" {
		return fmt.Errorf("symbols: empty locator")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.symbols[locator]; exists {
		return fmt.Errorf("symbols: %q already registered", locator)
	}
	s := &symbol{ctor: ctor, factories: make(map[string]Constructor)}
	for _, opt := range opts {
		opt(s)
	}
	r.symbols[locator] = s
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(locator string, ctor Constructor, opts ...Option) *Registry {
	if err := r.Register(locator, ctor, opts...); err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the constructor behind locator.
func (r *Registry) Resolve(locator string) (Constructor, error) {
	r.mu.RLock()
	s, ok := r.symbols[locator]
	r.mu.RUnlock()
	if !ok || s.ctor == nil {
		return nil, &LookupError{Locator: locator}
	}
	return s.ctor, nil
}

// LookupFactory returns the named factory of the constructor behind locator.
func (r *Registry) LookupFactory(locator, factory string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.symbols[locator]
	if !ok {
		return nil, &LookupError{Locator: locator}
	}
	f, ok := s.factories[factory]
	if !ok {
		return nil, &LookupError{Locator: locator, Factory: factory}
	}
	return f, nil
}

// Locators returns every registered locator, sorted.
func (r *Registry) Locators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.symbols))
	for k := range r.symbols {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
