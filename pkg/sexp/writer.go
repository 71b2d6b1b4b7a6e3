package sexp

import (
	"io"
	"strconv"
	"strings"
)

// Write pretty-prints an S-expression to the writer, one nested list per
// line, indented with a single space per depth level.
func Write(w io.Writer, s Sexp) error {
	var b strings.Builder
	writeIndented(&b, s, 0)
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeIndented(b *strings.Builder, s Sexp, depth int) {
	if s.IsLeaf() {
		b.WriteString(s.String())
		return
	}

	list := s.(*List)
	b.WriteByte('(')

	childLists := 0
	for _, elem := range list.elements {
		if !elem.IsLeaf() {
			childLists++
		}
	}

	// Short lists with no sublists stay on one line
	if childLists == 0 {
		for i, elem := range list.elements {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(elem.String())
		}
		b.WriteByte(')')
		return
	}

	for i, elem := range list.elements {
		if i == 0 {
			b.WriteString(elem.String())
			continue
		}
		if elem.IsLeaf() {
			b.WriteByte(' ')
			b.WriteString(elem.String())
			continue
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", depth+1))
		writeIndented(b, elem, depth+1)
	}
	b.WriteString("\n" + strings.Repeat(" ", depth) + ")")
}

// Num formats a float as a bare symbol, trimming trailing zeros.
func Num(v float64) Symbol {
	return Symbol(strconv.FormatFloat(v, 'f', -1, 64))
}

// Int formats an integer as a bare symbol.
func Int(v int) Symbol {
	return Symbol(strconv.Itoa(v))
}
