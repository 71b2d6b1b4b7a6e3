package sexp

import (
	"strings"
	"testing"

	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
)

func TestParseSimpleList(t *testing.T) {
	input := `(symbol (uuid 862335ee-c981-4fe1-9eb9-84db19301dd4) (name "R 0402") (at 10 20 90))`

	nodes, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 top-level expression, got %d", len(nodes))
	}

	root, ok := nodes[0].(*List)
	if !ok {
		t.Fatal("Expected a list at top level")
	}
	if root.Name() != "symbol" {
		t.Errorf("Expected node name 'symbol', got %q", root.Name())
	}

	id, err := ChildUUID(root, "uuid")
	if err != nil {
		t.Fatalf("ChildUUID failed: %v", err)
	}
	if id.String() != "862335ee-c981-4fe1-9eb9-84db19301dd4" {
		t.Errorf("Unexpected UUID %s", id)
	}

	name, err := ChildString(root, "name")
	if err != nil {
		t.Fatalf("ChildString failed: %v", err)
	}
	if name != "R 0402" {
		t.Errorf("Expected name 'R 0402', got %q", name)
	}

	pos, rot, err := GetAt(root)
	if err != nil {
		t.Fatalf("GetAt failed: %v", err)
	}
	if pos.X != 10 || pos.Y != 20 || rot != 90 {
		t.Errorf("Expected (10 20 90), got (%v %v %v)", pos.X, pos.Y, rot)
	}
}

func TestParseComments(t *testing.T) {
	input := "; top comment\n(a (b 1) ; trailing\n (b 2))"

	nodes, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	root := nodes[0].(*List)
	if got := len(root.Children("b")); got != 2 {
		t.Errorf("Expected 2 'b' children, got %d", got)
	}
}

func TestParseStringEscapes(t *testing.T) {
	input := `(name "a \"quoted\" value")`

	nodes, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	val, err := GetString(nodes[0].(*List), 1)
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if val != `a "quoted" value` {
		t.Errorf("Unexpected value %q", val)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"(unclosed", ")", `(bad "unterminated)`} {
		if _, err := ParseString(input); err == nil {
			t.Errorf("Expected parse error for %q", input)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	id := ids.New()
	node := NewList("symbol",
		UUIDNode("uuid", id),
		StrNode("name", `R "pull-up"`),
		AtNode(geometry.Point{X: 1.27, Y: -2.54}, 180),
	)

	var b strings.Builder
	if err := Write(&b, node); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	nodes, err := ParseString(b.String())
	if err != nil {
		t.Fatalf("Failed to re-parse written output: %v", err)
	}

	root := nodes[0].(*List)
	gotID, err := ChildUUID(root, "uuid")
	if err != nil || gotID != id {
		t.Errorf("UUID did not survive round trip: %v / %v", gotID, err)
	}

	name, _ := ChildString(root, "name")
	if name != `R "pull-up"` {
		t.Errorf("Name did not survive round trip: %q", name)
	}

	pos, rot, err := GetAt(root)
	if err != nil || pos.X != 1.27 || pos.Y != -2.54 || rot != 180 {
		t.Errorf("Position did not survive round trip: %v %v %v", pos, rot, err)
	}
}

func TestGetAtRotation(t *testing.T) {
	parse := func(input string) *List {
		t.Helper()
		nodes, err := ParseString(input)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", input, err)
		}
		return nodes[0].(*List)
	}

	// Omitted rotation defaults to zero.
	_, rot, err := GetAt(parse(`(sym (at 1 2))`))
	if err != nil || rot != 0 {
		t.Errorf("Expected rotation 0 with no error, got %v, %v", rot, err)
	}

	_, rot, err = GetAt(parse(`(sym (at 1 2 90))`))
	if err != nil || rot != 90 {
		t.Errorf("Expected rotation 90, got %v, %v", rot, err)
	}

	// A rotation that is present but unparsable is an error, not zero.
	for _, input := range []string{`(sym (at 1 2 abc))`, `(sym (at 1 2 (x)))`} {
		if _, _, err := GetAt(parse(input)); err == nil {
			t.Errorf("Expected rotation parse error for %q", input)
		}
	}
}

func TestGetFloatAndInt(t *testing.T) {
	nodes, err := ParseString(`(x 1.5 42 notanumber)`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	l := nodes[0].(*List)

	if f, err := GetFloat(l, 1); err != nil || f != 1.5 {
		t.Errorf("GetFloat: got %v, %v", f, err)
	}
	if n, err := GetInt(l, 2); err != nil || n != 42 {
		t.Errorf("GetInt: got %v, %v", n, err)
	}
	if _, err := GetFloat(l, 3); err == nil {
		t.Error("Expected error parsing non-number")
	}
	if _, err := GetInt(l, 99); err == nil {
		t.Error("Expected out-of-bounds error")
	}
}
