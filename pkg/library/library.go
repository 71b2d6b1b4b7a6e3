package library

import (
	"fmt"
	"sort"

	"github.com/jeffwheeler/LibrePCB/pkg/ids"
)

// Library is the project's symbol cache, resolving symbol definitions by
// identifier.
type Library struct {
	symbols map[ids.UUID]*Symbol
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{symbols: make(map[ids.UUID]*Symbol)}
}

// AddSymbol registers a symbol definition.
func (l *Library) AddSymbol(s *Symbol) error {
	if _, exists := l.symbols[s.UUID()]; exists {
		return fmt.Errorf("symbol %s already exists in library", s.UUID())
	}
	l.symbols[s.UUID()] = s
	return nil
}

// Symbol resolves a symbol definition by identifier, or returns nil.
func (l *Library) Symbol(uuid ids.UUID) *Symbol {
	return l.symbols[uuid]
}

// Symbols returns all symbol definitions sorted by name.
func (l *Library) Symbols() []*Symbol {
	result := make([]*Symbol, 0, len(l.symbols))
	for _, s := range l.symbols {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name() != result[j].Name() {
			return result[i].Name() < result[j].Name()
		}
		return result[i].UUID().String() < result[j].UUID().String()
	})
	return result
}

// Count returns the number of symbol definitions.
func (l *Library) Count() int { return len(l.symbols) }
