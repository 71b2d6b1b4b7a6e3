package schematic

import (
	"fmt"

	"github.com/jeffwheeler/LibrePCB/pkg/attrs"
	"github.com/jeffwheeler/LibrePCB/pkg/circuit"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
	"github.com/jeffwheeler/LibrePCB/pkg/library"
	"github.com/jeffwheeler/LibrePCB/pkg/sexp"
)

// Document format:
//
//	(schematic (uuid U) (name "Sheet 1")
//	 (attribute (ns "PAGE") (key "REV") (value "2"))
//	 (symbol (uuid U) (component_instance U) (symbol_item U) (at 10 20 90)))

// Schematic is one sheet of a project. It owns its placed symbols and is
// bound to the project's circuit, library, graphics factory and scene for
// its lifetime.
type Schematic struct {
	uuid    ids.UUID
	name    string
	circuit *circuit.Circuit
	library *library.Library
	factory GraphicsFactory
	scene   Scene

	attributes attrs.Map
	symbols    []*SymbolInstance
}

// NewSchematic creates an empty sheet bound to the given circuit, library
// and graphics backend.
func NewSchematic(uuid ids.UUID, name string, c *circuit.Circuit, lib *library.Library, factory GraphicsFactory, scene Scene) *Schematic {
	return &Schematic{
		uuid:    uuid,
		name:    name,
		circuit: c,
		library: lib,
		factory: factory,
		scene:   scene,
	}
}

// UUID returns the sheet's identifier.
func (s *Schematic) UUID() ids.UUID { return s.uuid }

// Name returns the sheet's name.
func (s *Schematic) Name() string { return s.name }

// SetName renames the sheet.
func (s *Schematic) SetName(name string) { s.name = name }

// Circuit returns the circuit this sheet depicts.
func (s *Schematic) Circuit() *circuit.Circuit { return s.circuit }

// Library returns the project library symbols are resolved against.
func (s *Schematic) Library() *library.Library { return s.library }

// Symbols returns the placed symbols in placement order.
func (s *Schematic) Symbols() []*SymbolInstance { return s.symbols }

// Symbol returns the placed symbol with the given identifier, or nil.
func (s *Schematic) Symbol(uuid ids.UUID) *SymbolInstance {
	for _, si := range s.symbols {
		if si.uuid == uuid {
			return si
		}
	}
	return nil
}

// AddSymbol places a fully constructed symbol instance on this sheet,
// registering it with its component instance and inserting its proxies
// into the scene.
func (s *Schematic) AddSymbol(si *SymbolInstance) {
	s.symbols = append(s.symbols, si)
	si.AddToSchematic(s.scene)
}

// RemoveSymbol takes a placed symbol off this sheet, unregistering it from
// its component instance and removing its proxies from the scene. The
// instance stays valid and can be re-added.
func (s *Schematic) RemoveSymbol(si *SymbolInstance) {
	for i, reg := range s.symbols {
		if reg == si {
			s.symbols = append(s.symbols[:i], s.symbols[i+1:]...)
			break
		}
	}
	si.RemoveFromSchematic(s.scene)
}

// SetAttribute stores a sheet attribute.
func (s *Schematic) SetAttribute(ns, key, value string) {
	s.attributes.Set(ns, key, value)
}

// AttributeValue resolves a namespaced attribute. The sheet's own
// namespace answers NAME and its stored attributes; foreign namespaces may
// delegate to the circuit when passToParents allows. Stored attributes are
// found under both the empty and the "PAGE" namespace, matching the
// document format.
func (s *Schematic) AttributeValue(ns, key string, passToParents bool) (string, bool) {
	if ns == "" || ns == attrs.NamespaceSheet {
		if key == attrs.KeyName {
			return s.name, true
		}
		if v, ok := s.attributes.Value("", key); ok {
			return v, true
		}
		if v, ok := s.attributes.Value(attrs.NamespaceSheet, key); ok {
			return v, true
		}
	}

	if passToParents && ns != attrs.NamespaceSheet && s.circuit != nil {
		return s.circuit.AttributeValue(ns, key, true)
	}

	return "", false
}

// FromSexp parses a (schematic ...) node. A failure to restore an
// individual placed symbol is collected and reported without aborting the
// sheet; the fatal error covers malformed sheet-level fields only.
func FromSexp(node *sexp.List, c *circuit.Circuit, lib *library.Library, factory GraphicsFactory, scene Scene) (*Schematic, []error, error) {
	if node.Name() != "schematic" {
		return nil, nil, fmt.Errorf("expected 'schematic' node, got %q", node.Name())
	}

	uuid, err := sexp.ChildUUID(node, "uuid")
	if err != nil {
		return nil, nil, fmt.Errorf("schematic: %w", err)
	}
	name, err := sexp.ChildString(node, "name")
	if err != nil {
		return nil, nil, fmt.Errorf("schematic %s: %w", uuid, err)
	}

	s := NewSchematic(uuid, name, c, lib, factory, scene)

	for _, attrNode := range node.Children("attribute") {
		ns, err := sexp.ChildString(attrNode, "ns")
		if err != nil {
			return nil, nil, fmt.Errorf("schematic %s: attribute: %w", uuid, err)
		}
		key, err := sexp.ChildString(attrNode, "key")
		if err != nil {
			return nil, nil, fmt.Errorf("schematic %s: attribute: %w", uuid, err)
		}
		value, err := sexp.ChildString(attrNode, "value")
		if err != nil {
			return nil, nil, fmt.Errorf("schematic %s: attribute: %w", uuid, err)
		}
		s.attributes.Set(ns, key, value)
	}

	var skipped []error
	for _, symNode := range node.Children("symbol") {
		si, err := SymbolInstanceFromSexp(s, symNode)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		s.AddSymbol(si)
	}

	return s, skipped, nil
}

// ToSexp serializes the sheet and all its placed symbols.
func (s *Schematic) ToSexp() *sexp.List {
	node := sexp.NewList("schematic",
		sexp.UUIDNode("uuid", s.uuid),
		sexp.StrNode("name", s.name),
	)

	for _, e := range s.attributes.Entries() {
		node.Append(sexp.NewList("attribute",
			sexp.StrNode("ns", e.Namespace),
			sexp.StrNode("key", e.Key),
			sexp.StrNode("value", e.Value),
		))
	}

	for _, si := range s.symbols {
		node.Append(si.Serialize())
	}

	return node
}
