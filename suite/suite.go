// Package suite groups scenario definitions and runs them one after another.
package suite

import (
	"errors"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/babybehave/bdd"
)

// Errors returned by Suite and Runner.
var (
	ErrDuplicateScenario = errors.New("scenario already registered")
	ErrScenarioNotFound  = errors.New("scenario not found")
	ErrInvalidPolicy     = errors.New("invalid failure policy")
)

// Definition builds a fresh, unexecuted scenario. It is called once per run
// so every run gets its own Context.
type Definition func() *bdd.Scenario

// Suite is an ordered registry of scenario definitions.
type Suite struct {
	mu    sync.RWMutex
	name  string
	order []string
	defs  map[string]Definition
}

// New creates an empty Suite.
func New(name string) *Suite {
	return &Suite{
		name: name,
		defs: make(map[string]Definition),
	}
}

// Name returns the suite name.
func (s *Suite) Name() string {
	return s.name
}

// Register adds a definition under id.
func (s *Suite) Register(id string, def Definition) error {
	if id == "" {
		return fmt.Errorf("register scenario: empty id")
	}
	if def == nil {
		return fmt.Errorf("register scenario %q: nil definition", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.defs[id]; exists {
		return fmt.Errorf("register scenario %q: %w", id, ErrDuplicateScenario)
	}
	s.defs[id] = def
	s.order = append(s.order, id)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level registration where a duplicate id is a programming error.
func (s *Suite) MustRegister(id string, def Definition) {
	if err := s.Register(id, def); err != nil {
		panic(err)
	}
}

// Get returns the definition registered under id.
func (s *Suite) Get(id string) (Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[id]
	return def, ok
}

// IDs returns the registered ids in registration order.
func (s *Suite) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of registered scenarios.
func (s *Suite) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
