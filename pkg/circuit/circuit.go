package circuit

import (
	"fmt"
	"sort"

	"github.com/jeffwheeler/LibrePCB/pkg/attrs"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
)

// Circuit owns the component instances and net signals of a project,
// and carries the project-level attributes at the top of the resolution
// chain.
type Circuit struct {
	components map[ids.UUID]*ComponentInstance
	signals    map[ids.UUID]*NetSignal
	attributes attrs.Map
}

// NewCircuit creates an empty circuit.
func NewCircuit() *Circuit {
	return &Circuit{
		components: make(map[ids.UUID]*ComponentInstance),
		signals:    make(map[ids.UUID]*NetSignal),
	}
}

// AddComponent registers a component instance with the circuit.
func (c *Circuit) AddComponent(cmp *ComponentInstance) error {
	if _, exists := c.components[cmp.UUID()]; exists {
		return fmt.Errorf("component instance %s already exists in circuit", cmp.UUID())
	}
	cmp.circuit = c
	c.components[cmp.UUID()] = cmp
	return nil
}

// AddSignal registers a net signal with the circuit.
func (c *Circuit) AddSignal(sig *NetSignal) error {
	if _, exists := c.signals[sig.UUID()]; exists {
		return fmt.Errorf("net signal %s already exists in circuit", sig.UUID())
	}
	c.signals[sig.UUID()] = sig
	return nil
}

// ComponentInstance resolves a component instance by identifier, or
// returns nil.
func (c *Circuit) ComponentInstance(uuid ids.UUID) *ComponentInstance {
	return c.components[uuid]
}

// Signal resolves a net signal by identifier, or returns nil.
func (c *Circuit) Signal(uuid ids.UUID) *NetSignal {
	return c.signals[uuid]
}

// Components returns all component instances sorted by designator.
func (c *Circuit) Components() []*ComponentInstance {
	result := make([]*ComponentInstance, 0, len(c.components))
	for _, cmp := range c.components {
		result = append(result, cmp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].name != result[j].name {
			return result[i].name < result[j].name
		}
		return result[i].uuid.String() < result[j].uuid.String()
	})
	return result
}

// Signals returns all net signals sorted by name.
func (c *Circuit) Signals() []*NetSignal {
	result := make([]*NetSignal, 0, len(c.signals))
	for _, sig := range c.signals {
		result = append(result, sig)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].name != result[j].name {
			return result[i].name < result[j].name
		}
		return result[i].uuid.String() < result[j].uuid.String()
	})
	return result
}

// SetAttribute stores a project-level attribute.
func (c *Circuit) SetAttribute(ns, key, value string) {
	c.attributes.Set(ns, key, value)
}

// AttributeValue resolves a project-level attribute. The circuit is the
// top of the resolution chain; passToParents has no further effect here.
func (c *Circuit) AttributeValue(ns, key string, passToParents bool) (string, bool) {
	if ns == "" || ns == attrs.NamespaceProject {
		if v, ok := c.attributes.Value(attrs.NamespaceProject, key); ok {
			return v, true
		}
	}
	return c.attributes.Value(ns, key)
}
