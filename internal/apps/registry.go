package apps

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Suite)
	mu       sync.RWMutex
)

// Register adds a suite to the registry.
func Register(s Suite) {
	mu.Lock()
	defer mu.Unlock()
	registry[s.Name()] = s
}

// Get retrieves a suite by name.
func Get(name string) (Suite, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown suite: %s", name)
	}
	return s, nil
}

// List returns all registered suite names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered suites.
func All() []Suite {
	mu.RLock()
	defer mu.RUnlock()

	suites := make([]Suite, 0, len(registry))
	for _, s := range registry {
		suites = append(suites, s)
	}
	return suites
}
