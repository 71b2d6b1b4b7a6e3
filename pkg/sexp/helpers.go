package sexp

import (
	"fmt"
	"strconv"

	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
)

// Navigation helpers

// Child returns the first sublist whose leading symbol matches the key.
// Example: Child(node, "at") finds (at 100 50) inside node.
func (l *List) Child(key string) (*List, bool) {
	for _, elem := range l.elements {
		if sub, ok := elem.(*List); ok && sub.Name() == key {
			return sub, true
		}
	}
	return nil, false
}

// Children returns all sublists whose leading symbol matches the key.
func (l *List) Children(key string) []*List {
	var result []*List
	for _, elem := range l.elements {
		if sub, ok := elem.(*List); ok && sub.Name() == key {
			result = append(result, sub)
		}
	}
	return result
}

// Typed extraction helpers

// GetString extracts the atom value at the given index (bare or quoted).
func GetString(l *List, index int) (string, error) {
	elem := l.Get(index)
	if elem == nil {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, l.Len())
	}
	switch v := elem.(type) {
	case Symbol:
		return string(v), nil
	case Str:
		return string(v), nil
	default:
		return "", fmt.Errorf("expected atom at index %d, got list", index)
	}
}

// GetFloat extracts a float64 value at the given index.
func GetFloat(l *List, index int) (float64, error) {
	str, err := GetString(l, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}

	return val, nil
}

// GetInt extracts an int value at the given index.
func GetInt(l *List, index int) (int, error) {
	str, err := GetString(l, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// ChildString returns the value of a (key "value") child node.
func ChildString(l *List, key string) (string, error) {
	node, ok := l.Child(key)
	if !ok {
		return "", fmt.Errorf("missing required %q node", key)
	}
	return GetString(node, 1)
}

// ChildUUID returns the identifier stored in a (key UUID) child node.
func ChildUUID(l *List, key string) (ids.UUID, error) {
	str, err := ChildString(l, key)
	if err != nil {
		return ids.UUID{}, err
	}
	id, err := ids.Parse(str)
	if err != nil {
		return ids.UUID{}, fmt.Errorf("invalid %q identifier %q: %w", key, str, err)
	}
	return id, nil
}

// GetAt extracts position and rotation from an (at X Y [rotation]) child.
// Coordinates are millimeters, rotation is degrees.
func GetAt(l *List) (geometry.Point, geometry.Angle, error) {
	node, ok := l.Child("at")
	if !ok {
		return geometry.Point{}, 0, fmt.Errorf("missing required \"at\" node")
	}

	x, err := GetFloat(node, 1)
	if err != nil {
		return geometry.Point{}, 0, fmt.Errorf("failed to parse X coordinate: %w", err)
	}

	y, err := GetFloat(node, 2)
	if err != nil {
		return geometry.Point{}, 0, fmt.Errorf("failed to parse Y coordinate: %w", err)
	}

	// Rotation is optional and defaults to zero, but a present value
	// must parse.
	rotation := geometry.Angle(0)
	if node.Len() > 3 {
		deg, err := GetFloat(node, 3)
		if err != nil {
			return geometry.Point{}, 0, fmt.Errorf("failed to parse rotation: %w", err)
		}
		rotation = geometry.Angle(deg)
	}

	return geometry.Point{X: x, Y: y}, rotation, nil
}

// Builder helpers

// AtNode builds an (at X Y rotation) node.
func AtNode(p geometry.Point, rotation geometry.Angle) *List {
	return NewList("at", Num(p.X), Num(p.Y), Num(float64(rotation)))
}

// UUIDNode builds a (key UUID) node.
func UUIDNode(key string, id ids.UUID) *List {
	return NewList(key, Symbol(id.String()))
}

// StrNode builds a (key "value") node.
func StrNode(key, value string) *List {
	return NewList(key, Str(value))
}
