package schematic

import "github.com/jeffwheeler/LibrePCB/pkg/geometry"

// GraphicsItem is the graphical proxy of a schematic item. The model owns
// its proxy exclusively and drives it; how (or whether) the proxy paints is
// up to the implementation.
//
// Rotation handed to a proxy follows the view convention, which is inverted
// relative to the model's counter-clockwise-positive angles. The conversion
// happens at the single call sites in this package (see proxyAngle); proxy
// implementations must not negate again.
type GraphicsItem interface {
	SetPosition(geometry.Point)
	SetRotation(geometry.Angle)

	// InvalidateCache discards any cached rendering so the next paint
	// reflects current model state.
	InvalidateCache()

	SetSelected(bool)

	// SceneShape returns the item's occupied region in scene space.
	SceneShape() geometry.BoundingBox
}

// GraphicsFactory creates graphical proxies for model items. A schematic is
// bound to one factory for its lifetime.
type GraphicsFactory interface {
	NewSymbolItem(*SymbolInstance) GraphicsItem
	NewPinItem(*PinInstance) GraphicsItem
}

// Scene is a rendering container items can be inserted into and removed
// from.
type Scene interface {
	AddItem(GraphicsItem)
	RemoveItem(GraphicsItem)
}

// proxyAngle converts a model rotation into the proxy's rotation
// convention. The proxy's rotation axis is inverted relative to the
// model's, so the proxy receives the negated angle.
func proxyAngle(rotation geometry.Angle) geometry.Angle {
	return -rotation
}

// headlessFactory is the default graphics backend: proxies track state but
// never paint. Used by CLI tools and tests.
type headlessFactory struct{}

// HeadlessGraphics returns a factory whose proxies track position,
// rotation and selection without rendering anything.
func HeadlessGraphics() GraphicsFactory { return headlessFactory{} }

func (headlessFactory) NewSymbolItem(si *SymbolInstance) GraphicsItem {
	return &headlessItem{shape: func() geometry.BoundingBox { return si.pinBounds() }}
}

func (headlessFactory) NewPinItem(pin *PinInstance) GraphicsItem {
	return &headlessItem{shape: func() geometry.BoundingBox {
		bb := geometry.NewBoundingBox()
		bb.Expand(pin.ScenePosition())
		return bb
	}}
}

// HeadlessScene returns a scene that discards all items. Used together
// with HeadlessGraphics by CLI tools and tests.
func HeadlessScene() Scene { return noopScene{} }

type noopScene struct{}

func (noopScene) AddItem(GraphicsItem)    {}
func (noopScene) RemoveItem(GraphicsItem) {}

type headlessItem struct {
	position geometry.Point
	rotation geometry.Angle
	selected bool
	shape    func() geometry.BoundingBox
}

func (h *headlessItem) SetPosition(p geometry.Point)     { h.position = p }
func (h *headlessItem) SetRotation(a geometry.Angle)     { h.rotation = a }
func (h *headlessItem) InvalidateCache()                 {}
func (h *headlessItem) SetSelected(selected bool)        { h.selected = selected }
func (h *headlessItem) SceneShape() geometry.BoundingBox { return h.shape() }
