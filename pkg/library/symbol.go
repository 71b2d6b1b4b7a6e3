// Package library models the read-only symbol library a schematic draws
// from: graphical symbol definitions with their pin layouts, and the cache
// that resolves them by identifier.
package library

import (
	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
)

// SymbolPin is one connection point of a library symbol, defined in the
// symbol's local coordinate frame.
type SymbolPin struct {
	uuid     ids.UUID
	name     string
	position geometry.Point
	rotation geometry.Angle
	length   float64
}

// NewSymbolPin creates a pin definition.
func NewSymbolPin(uuid ids.UUID, name string, position geometry.Point, rotation geometry.Angle, length float64) *SymbolPin {
	return &SymbolPin{
		uuid:     uuid,
		name:     name,
		position: position,
		rotation: rotation,
		length:   length,
	}
}

// UUID returns the pin's identifier.
func (p *SymbolPin) UUID() ids.UUID { return p.uuid }

// Name returns the pin's display name.
func (p *SymbolPin) Name() string { return p.name }

// Position returns the pin's offset in the symbol's local frame.
func (p *SymbolPin) Position() geometry.Point { return p.position }

// Rotation returns the pin's orientation in the symbol's local frame.
func (p *SymbolPin) Rotation() geometry.Angle { return p.rotation }

// Length returns the pin's lead length in mm.
func (p *SymbolPin) Length() float64 { return p.length }

// Symbol is a graphical symbol definition with an ordered pin collection.
type Symbol struct {
	uuid ids.UUID
	name string
	pins []*SymbolPin
}

// NewSymbol creates an empty symbol definition.
func NewSymbol(uuid ids.UUID, name string) *Symbol {
	return &Symbol{uuid: uuid, name: name}
}

// UUID returns the symbol's identifier.
func (s *Symbol) UUID() ids.UUID { return s.uuid }

// Name returns the symbol's display name.
func (s *Symbol) Name() string { return s.name }

// AddPin appends a pin definition. Duplicate pin identifiers are not
// rejected here: a malformed library file surfaces as a construction error
// when a placed symbol instance is built from this definition.
func (s *Symbol) AddPin(p *SymbolPin) {
	s.pins = append(s.pins, p)
}

// Pins returns the pin definitions in file order.
func (s *Symbol) Pins() []*SymbolPin { return s.pins }

// Pin returns the pin with the given identifier, or nil.
func (s *Symbol) Pin(uuid ids.UUID) *SymbolPin {
	for _, p := range s.pins {
		if p.uuid == uuid {
			return p
		}
	}
	return nil
}
