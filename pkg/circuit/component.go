package circuit

import (
	"github.com/jeffwheeler/LibrePCB/pkg/attrs"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
)

// PlacedSymbol is a schematic item bound to a component instance. Defined
// here so component instances can enumerate their placed symbols without
// depending on the schematic package.
type PlacedSymbol interface {
	UUID() ids.UUID
	Name() string
}

// ComponentInstance is one abstract circuit element (e.g. "U1"). It owns
// its name, attribute set and chosen symbol variant; placed symbols
// register themselves here while they are on a schematic.
type ComponentInstance struct {
	uuid    ids.UUID
	name    string
	variant *SymbolVariant
	circuit *Circuit

	attributes attrs.Map

	symbols []PlacedSymbol

	listeners  map[int]func()
	nextListID int
}

// NewComponentInstance creates a component instance with its chosen symbol
// variant. The instance becomes part of a circuit via Circuit.AddComponent.
func NewComponentInstance(uuid ids.UUID, name string, variant *SymbolVariant) *ComponentInstance {
	return &ComponentInstance{
		uuid:      uuid,
		name:      name,
		variant:   variant,
		listeners: make(map[int]func()),
	}
}

// UUID returns the component instance's identifier.
func (c *ComponentInstance) UUID() ids.UUID { return c.uuid }

// Name returns the component instance's designator (e.g. "U1").
func (c *ComponentInstance) Name() string { return c.name }

// SetName renames the component instance and notifies subscribers.
func (c *ComponentInstance) SetName(name string) {
	c.name = name
	c.notifyAttributesChanged()
}

// SymbolVariant returns the component's chosen (active) symbol variant.
func (c *ComponentInstance) SymbolVariant() *SymbolVariant { return c.variant }

// SetAttribute stores an attribute and notifies subscribers.
func (c *ComponentInstance) SetAttribute(ns, key, value string) {
	c.attributes.Set(ns, key, value)
	c.notifyAttributesChanged()
}

// Attributes returns the component's attribute set.
func (c *ComponentInstance) Attributes() *attrs.Map { return &c.attributes }

// AttributeValue resolves an attribute per the shared protocol: the
// component's own namespace first (NAME, then stored attributes), then the
// circuit if passToParents allows. Stored attributes are found under both
// the empty and the "CMP" namespace, matching the document format.
func (c *ComponentInstance) AttributeValue(ns, key string, passToParents bool) (string, bool) {
	if ns == "" || ns == attrs.NamespaceComponent {
		if key == attrs.KeyName {
			return c.name, true
		}
		if v, ok := c.attributes.Value("", key); ok {
			return v, true
		}
		if v, ok := c.attributes.Value(attrs.NamespaceComponent, key); ok {
			return v, true
		}
	}

	if passToParents && ns != attrs.NamespaceComponent && c.circuit != nil {
		return c.circuit.AttributeValue(ns, key, true)
	}

	return "", false
}

// SubscribeAttributesChanged registers a callback invoked synchronously
// whenever the component's name or attributes change. The returned
// function cancels the subscription.
func (c *ComponentInstance) SubscribeAttributesChanged(fn func()) (cancel func()) {
	id := c.nextListID
	c.nextListID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

func (c *ComponentInstance) notifyAttributesChanged() {
	for _, fn := range c.listeners {
		fn()
	}
}

// RegisterSymbol records a placed symbol depicting this component. The
// caller is responsible for registering each placed symbol exactly once.
func (c *ComponentInstance) RegisterSymbol(s PlacedSymbol) {
	c.symbols = append(c.symbols, s)
}

// UnregisterSymbol removes a previously registered placed symbol.
func (c *ComponentInstance) UnregisterSymbol(s PlacedSymbol) {
	for i, reg := range c.symbols {
		if reg == s {
			c.symbols = append(c.symbols[:i], c.symbols[i+1:]...)
			return
		}
	}
}

// RegisteredSymbols returns the currently registered placed symbols.
func (c *ComponentInstance) RegisteredSymbols() []PlacedSymbol { return c.symbols }
