// Package watchlist persists the user's ticker symbols.
package watchlist

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidSymbol is returned for blank or malformed tickers.
var ErrInvalidSymbol = errors.New("invalid symbol")

// Manager handles watchlist operations with concurrency safety. Every change
// is saved immediately.
type Manager struct {
	mu      sync.Mutex
	store   Store
	symbols []string
}

// NewManager creates a Manager, loading the list from store.
func NewManager(store Store) (*Manager, error) {
	loaded, err := store.Load()
	if err != nil {
		return nil, err
	}
	m := &Manager{store: store}
	for _, s := range loaded {
		if n, err := Normalize(s); err == nil && !contains(m.symbols, n) {
			m.symbols = append(m.symbols, n)
		}
	}
	return m, nil
}

// Normalize trims and upper-cases a ticker.
func Normalize(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || strings.ContainsAny(s, " \t\n/\\") {
		return "", fmt.Errorf("%q: %w", symbol, ErrInvalidSymbol)
	}
	return s, nil
}

// List returns a copy of the symbols in insertion order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.symbols...)
}

// Add appends symbol. It reports false when the symbol was already present.
func (m *Manager) Add(symbol string) (bool, error) {
	s, err := Normalize(symbol)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if contains(m.symbols, s) {
		return false, nil
	}
	next := append(append([]string(nil), m.symbols...), s)
	if err := m.store.Save(next); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	m.symbols = next
	return true, nil
}

// Remove deletes symbol. It reports false when the symbol was not present.
func (m *Manager) Remove(symbol string) (bool, error) {
	s, err := Normalize(symbol)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]string, 0, len(m.symbols))
	for _, v := range m.symbols {
		if v != s {
			next = append(next, v)
		}
	}
	if len(next) == len(m.symbols) {
		return false, nil
	}
	if err := m.store.Save(next); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	m.symbols = next
	return true, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
