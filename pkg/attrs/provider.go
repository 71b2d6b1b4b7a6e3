// Package attrs defines the attribute resolution protocol shared by placed
// symbols, component instances, schematics and the circuit: named
// attributes are looked up locally first, then optionally delegated up an
// ownership chain.
package attrs

import "sort"

// Reserved namespaces. An empty namespace addresses the queried entity's
// own namespace.
const (
	NamespaceSymbol    = "SYM"
	NamespaceComponent = "CMP"
	NamespaceSheet     = "PAGE"
	NamespaceProject   = "PRJ"
)

// Reserved keys.
const (
	KeyName  = "NAME"
	KeyValue = "VALUE"
)

// Provider resolves a namespaced attribute. The boolean result reports
// whether the attribute was found; unresolved attributes are an expected,
// non-fatal outcome. If passToParents is true the provider may delegate
// the query one step up its ownership chain.
type Provider interface {
	AttributeValue(ns, key string, passToParents bool) (string, bool)
}

// Map is a plain attribute set addressed by namespace and key. The zero
// value is empty and ready to use.
type Map struct {
	values map[[2]string]string
}

// Set stores an attribute value.
func (m *Map) Set(ns, key, value string) {
	if m.values == nil {
		m.values = make(map[[2]string]string)
	}
	m.values[[2]string{ns, key}] = value
}

// Value looks up an attribute value.
func (m *Map) Value(ns, key string) (string, bool) {
	v, ok := m.values[[2]string{ns, key}]
	return v, ok
}

// Len returns the number of stored attributes.
func (m *Map) Len() int { return len(m.values) }

// Entry is one attribute of a Map.
type Entry struct {
	Namespace string
	Key       string
	Value     string
}

// Entries returns all attributes sorted by namespace, then key.
func (m *Map) Entries() []Entry {
	entries := make([]Entry, 0, len(m.values))
	for k, v := range m.values {
		entries = append(entries, Entry{Namespace: k[0], Key: k[1], Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Namespace != entries[j].Namespace {
			return entries[i].Namespace < entries[j].Namespace
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
