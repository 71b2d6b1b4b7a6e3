// Package circuit models the abstract circuit a schematic depicts:
// component instances with their chosen symbol variants, net signals, and
// project-level attributes. Placed symbols hold non-owning references into
// this model and must not outlive it.
package circuit

import "github.com/jeffwheeler/LibrePCB/pkg/ids"

// NetSignal is a named electrical net.
type NetSignal struct {
	uuid ids.UUID
	name string
}

// NewNetSignal creates a net signal.
func NewNetSignal(uuid ids.UUID, name string) *NetSignal {
	return &NetSignal{uuid: uuid, name: name}
}

// UUID returns the signal's identifier.
func (s *NetSignal) UUID() ids.UUID { return s.uuid }

// Name returns the signal's net name.
func (s *NetSignal) Name() string { return s.name }
