package library

import (
	"fmt"

	"github.com/jeffwheeler/LibrePCB/pkg/sexp"
)

// Document format:
//
//	(library
//	 (symbol (uuid U) (name "R")
//	  (pin (uuid U) (name "1") (at -2.54 0 0) (length 2.54))
//	  ...))

// FromSexp parses a (library ...) node.
func FromSexp(node *sexp.List) (*Library, error) {
	if node.Name() != "library" {
		return nil, fmt.Errorf("expected 'library' node, got %q", node.Name())
	}

	lib := NewLibrary()
	for _, symNode := range node.Children("symbol") {
		s, err := SymbolFromSexp(symNode)
		if err != nil {
			return nil, err
		}
		if err := lib.AddSymbol(s); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// SymbolFromSexp parses a (symbol ...) definition node.
func SymbolFromSexp(node *sexp.List) (*Symbol, error) {
	uuid, err := sexp.ChildUUID(node, "uuid")
	if err != nil {
		return nil, fmt.Errorf("library symbol: %w", err)
	}

	name, err := sexp.ChildString(node, "name")
	if err != nil {
		return nil, fmt.Errorf("library symbol %s: %w", uuid, err)
	}

	s := NewSymbol(uuid, name)
	for _, pinNode := range node.Children("pin") {
		pin, err := pinFromSexp(pinNode)
		if err != nil {
			return nil, fmt.Errorf("library symbol %s: %w", uuid, err)
		}
		s.AddPin(pin)
	}
	return s, nil
}

func pinFromSexp(node *sexp.List) (*SymbolPin, error) {
	uuid, err := sexp.ChildUUID(node, "uuid")
	if err != nil {
		return nil, fmt.Errorf("pin: %w", err)
	}

	name, err := sexp.ChildString(node, "name")
	if err != nil {
		return nil, fmt.Errorf("pin %s: %w", uuid, err)
	}

	position, rotation, err := sexp.GetAt(node)
	if err != nil {
		return nil, fmt.Errorf("pin %s: %w", uuid, err)
	}

	length := 0.0
	if lengthNode, ok := node.Child("length"); ok {
		length, err = sexp.GetFloat(lengthNode, 1)
		if err != nil {
			return nil, fmt.Errorf("pin %s: %w", uuid, err)
		}
	}

	return NewSymbolPin(uuid, name, position, rotation, length), nil
}

// ToSexp serializes the library to a (library ...) node.
func (l *Library) ToSexp() *sexp.List {
	node := sexp.NewList("library")
	for _, s := range l.Symbols() {
		node.Append(s.ToSexp())
	}
	return node
}

// ToSexp serializes the symbol definition.
func (s *Symbol) ToSexp() *sexp.List {
	node := sexp.NewList("symbol",
		sexp.UUIDNode("uuid", s.uuid),
		sexp.StrNode("name", s.name),
	)
	for _, p := range s.pins {
		node.Append(sexp.NewList("pin",
			sexp.UUIDNode("uuid", p.uuid),
			sexp.StrNode("name", p.name),
			sexp.AtNode(p.position, p.rotation),
			sexp.NewList("length", sexp.Num(p.length)),
		))
	}
	return node
}
