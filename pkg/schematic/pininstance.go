package schematic

import (
	"github.com/jeffwheeler/LibrePCB/pkg/circuit"
	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
	"github.com/jeffwheeler/LibrePCB/pkg/library"
)

// PinInstance is one pin of a placed symbol. It is owned by its symbol
// instance, derives its scene position from the symbol's placement and the
// library pin's local offset, and is never serialized: pins are rebuilt
// from the library symbol on load.
type PinInstance struct {
	symbol *SymbolInstance
	libPin *library.SymbolPin

	position geometry.Point
	graphics GraphicsItem
}

func newPinInstance(symbol *SymbolInstance, libPin *library.SymbolPin) *PinInstance {
	pin := &PinInstance{
		symbol: symbol,
		libPin: libPin,
	}
	pin.graphics = symbol.schematic.factory.NewPinItem(pin)
	pin.UpdatePosition()
	return pin
}

// UUID returns the library pin's identifier, which also identifies this
// instance within its symbol.
func (p *PinInstance) UUID() ids.UUID { return p.libPin.UUID() }

// Name returns the library pin's name.
func (p *PinInstance) Name() string { return p.libPin.Name() }

// LibraryPin returns the library pin definition.
func (p *PinInstance) LibraryPin() *library.SymbolPin { return p.libPin }

// Symbol returns the owning placed symbol.
func (p *PinInstance) Symbol() *SymbolInstance { return p.symbol }

// ScenePosition returns the pin's current position in sheet coordinates.
func (p *PinInstance) ScenePosition() geometry.Point { return p.position }

// Signal returns the net signal this pin is connected to via the variant
// item's pin-signal map, or nil for an unconnected pin.
func (p *PinInstance) Signal() *circuit.NetSignal {
	sigUUID, ok := p.symbol.variantItem.SignalOfPin(p.libPin.UUID())
	if !ok || sigUUID.IsNil() {
		return nil
	}
	return p.symbol.schematic.circuit.Signal(sigUUID)
}

// UpdatePosition recomputes the scene position from the symbol's current
// placement and pushes it to the proxy. The proxy rotation combines the
// symbol's placement rotation with the pin's own orientation.
func (p *PinInstance) UpdatePosition() {
	p.position = p.symbol.MapToScene(p.libPin.Position())
	p.graphics.SetPosition(p.position)
	p.graphics.SetRotation(proxyAngle(p.symbol.rotation + p.libPin.Rotation()))
	p.graphics.InvalidateCache()
}

// SetSelected updates the selection state of the pin's proxy.
func (p *PinInstance) SetSelected(selected bool) {
	p.graphics.SetSelected(selected)
}

func (p *PinInstance) addToSchematic(scene Scene) {
	scene.AddItem(p.graphics)
}

func (p *PinInstance) removeFromSchematic(scene Scene) {
	scene.RemoveItem(p.graphics)
}
