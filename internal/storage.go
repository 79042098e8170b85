package internal

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Repository loads and saves the whole expense collection.
type Repository interface {
	// Load returns the stored expenses in collection order. A store that was
	// never written returns an empty slice and no error. Unreadable data is
	// reported as *CorruptDataError.
	Load(ctx context.Context) ([]Expense, error)
	// Save atomically replaces the stored collection.
	Save(ctx context.Context, expenses []Expense) error
	Close() error
}

// Backend opens a Repository at a location
type Backend interface {
	Open(path string) (Repository, error)
}

// BackendFunc is a function that implements Backend
type BackendFunc func(path string) (Repository, error)

func (f BackendFunc) Open(path string) (Repository, error) {
	return f(path)
}

// DefaultBackend is used when a data location has no backend prefix.
const DefaultBackend = "json"

// backends is the registry of available storage backends
var backends = map[string]Backend{}

// RegisterBackend registers a backend with the given name
func RegisterBackend(name string, b Backend) {
	backends[name] = b
}

// GetBackend returns the backend registered under name
func GetBackend(name string) (Backend, error) {
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend: %s (available: %v)", name, AvailableBackends())
	}
	return b, nil
}

// AvailableBackends returns the registered backend names, sorted
func AvailableBackends() []string {
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnownBackend returns true if the name is a registered backend
func IsKnownBackend(name string) bool {
	_, ok := backends[name]
	return ok
}

// ParseDataArg splits a data location that may carry a backend prefix.
// Example: "sqlite:expenses.db" → ("sqlite", "expenses.db")
// Example: "despesas.json" → ("json", "despesas.json")
// Example: "C:\data\despesas.json" → ("json", "C:\data\despesas.json") // Windows path
func ParseDataArg(arg string) (backend, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return DefaultBackend, arg
	}
	prefix := arg[:idx]
	if IsKnownBackend(prefix) {
		return prefix, arg[idx+1:]
	}
	return DefaultBackend, arg
}

// OpenRepository opens the repository a data location points at.
func OpenRepository(arg string) (Repository, error) {
	name, path := ParseDataArg(arg)
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("data location is required")
	}
	b, err := GetBackend(name)
	if err != nil {
		return nil, err
	}
	repo, err := b.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage at %s: %w", name, path, err)
	}
	return repo, nil
}
