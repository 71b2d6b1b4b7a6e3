// Package sexp provides the structured document layer used by project,
// library, circuit and schematic files: an S-expression node model with a
// streaming lexer/parser and a pretty writer.
package sexp

import (
	"io"
	"strconv"
	"strings"
)

// Sexp represents an S-expression node: either an atom or a list.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// String returns the file representation
	String() string
}

// Symbol represents a bare atom (identifier, number, keyword).
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) String() string { return string(s) }

// Str represents a quoted string atom. Its value is stored unquoted; the
// writer adds quoting and escaping.
type Str string

func (s Str) IsLeaf() bool { return true }

func (s Str) String() string {
	return strconv.Quote(string(s))
}

// List represents a list of S-expressions.
type List struct {
	elements []Sexp
}

// NewList builds a named list: the name becomes the leading symbol.
func NewList(name string, children ...Sexp) *List {
	elements := make([]Sexp, 0, len(children)+1)
	elements = append(elements, Symbol(name))
	elements = append(elements, children...)
	return &List{elements: elements}
}

func (l *List) IsLeaf() bool { return false }

// Len returns the number of elements in the list.
func (l *List) Len() int { return len(l.elements) }

// Get returns the element at the given index, or nil if out of bounds.
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Items returns all elements of the list.
func (l *List) Items() []Sexp { return l.elements }

// Set replaces the element at the given index. Out-of-bounds indices are
// ignored.
func (l *List) Set(index int, s Sexp) {
	if index < 0 || index >= len(l.elements) {
		return
	}
	l.elements[index] = s
}

// Append adds children to the list and returns it for chaining.
func (l *List) Append(children ...Sexp) *List {
	l.elements = append(l.elements, children...)
	return l
}

// Name returns the leading symbol of the list, or "" if the list is empty
// or does not start with a symbol.
func (l *List) Name() string {
	if len(l.elements) == 0 {
		return ""
	}
	if sym, ok := l.elements[0].(Symbol); ok {
		return string(sym)
	}
	return ""
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Parse parses S-expressions from an io.Reader.
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString parses S-expressions from a string.
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
