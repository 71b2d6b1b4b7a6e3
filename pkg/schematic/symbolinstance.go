package schematic

import (
	"fmt"

	"github.com/jeffwheeler/LibrePCB/pkg/attrs"
	"github.com/jeffwheeler/LibrePCB/pkg/circuit"
	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
	"github.com/jeffwheeler/LibrePCB/pkg/library"
	"github.com/jeffwheeler/LibrePCB/pkg/sexp"
)

// SymbolInstance is a symbol placed on a schematic sheet: the binding
// between a component instance, one item of its chosen symbol variant, the
// library symbol that item references, and a position/rotation on the
// sheet. It owns one PinInstance per library pin and its graphical proxy;
// the component instance, variant item and library symbol are non-owning
// references that must outlive it.
type SymbolInstance struct {
	schematic   *Schematic
	uuid        ids.UUID
	component   *circuit.ComponentInstance
	variantItem *circuit.SymbolVariantItem
	symbol      *library.Symbol

	position geometry.Point
	rotation geometry.Angle

	pins     map[ids.UUID]*PinInstance
	graphics GraphicsItem

	cancelAttrSub func()
	selected      bool
}

// NewSymbolInstance places a symbol explicitly: a fresh identifier is
// generated and the variant item is resolved against the component's
// active symbol variant. A failed construction registers nothing and
// creates no scene state.
func NewSymbolInstance(sch *Schematic, cmp *circuit.ComponentInstance, itemUUID ids.UUID, position geometry.Point, rotation geometry.Angle) (*SymbolInstance, error) {
	si := &SymbolInstance{
		schematic: sch,
		uuid:      ids.New(),
		component: cmp,
		position:  position,
		rotation:  rotation,
	}
	if err := si.init(itemUUID); err != nil {
		return nil, err
	}
	return si, nil
}

// SymbolInstanceFromSexp restores a placed symbol from its document node,
// resolving all references against the live circuit and library. Any
// missing or unresolvable required field aborts construction of this
// instance only.
func SymbolInstanceFromSexp(sch *Schematic, node *sexp.List) (*SymbolInstance, error) {
	uuid, err := sexp.ChildUUID(node, "uuid")
	if err != nil {
		return nil, fmt.Errorf("symbol instance: %w", err)
	}
	if uuid.IsNil() {
		return nil, fmt.Errorf("symbol instance \"uuid\": %w", ErrNilUUID)
	}

	cmpUUID, err := sexp.ChildUUID(node, "component_instance")
	if err != nil {
		return nil, fmt.Errorf("symbol instance %s: %w", uuid, err)
	}
	cmp := sch.circuit.ComponentInstance(cmpUUID)
	if cmp == nil {
		return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, cmpUUID)
	}

	position, rotation, err := sexp.GetAt(node)
	if err != nil {
		return nil, fmt.Errorf("symbol instance %s: %w", uuid, err)
	}

	itemUUID, err := sexp.ChildUUID(node, "symbol_item")
	if err != nil {
		return nil, fmt.Errorf("symbol instance %s: %w", uuid, err)
	}

	si := &SymbolInstance{
		schematic: sch,
		uuid:      uuid,
		component: cmp,
		position:  position,
		rotation:  rotation,
	}
	if err := si.init(itemUUID); err != nil {
		return nil, err
	}
	return si, nil
}

// init is the shared initialization both constructors converge on. It
// resolves the variant item and library symbol, creates the graphical
// proxy, builds one pin instance per library pin and subscribes to the
// component's attribute changes.
func (si *SymbolInstance) init(itemUUID ids.UUID) error {
	si.variantItem = si.component.SymbolVariant().Item(itemUUID)
	if si.variantItem == nil {
		return fmt.Errorf("%w: %s", ErrVariantItemNotFound, itemUUID)
	}

	si.symbol = si.schematic.library.Symbol(si.variantItem.SymbolUUID())
	if si.symbol == nil {
		return fmt.Errorf("%w: %s", ErrSymbolNotFound, si.variantItem.SymbolUUID())
	}

	si.graphics = si.schematic.factory.NewSymbolItem(si)
	si.graphics.SetPosition(si.position)
	si.graphics.SetRotation(proxyAngle(si.rotation))

	si.pins = make(map[ids.UUID]*PinInstance, len(si.symbol.Pins()))
	for _, libPin := range si.symbol.Pins() {
		if _, dup := si.pins[libPin.UUID()]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePin, libPin.UUID())
		}
		if !si.variantItem.HasPin(libPin.UUID()) {
			return fmt.Errorf("%w: %s", ErrPinNotInSignalMap, libPin.UUID())
		}
		si.pins[libPin.UUID()] = newPinInstance(si, libPin)
	}
	if len(si.pins) != si.variantItem.PinCount() {
		return fmt.Errorf("%w: symbol instance %s has %d pins, map has %d",
			ErrPinCountMismatch, si.uuid, len(si.pins), si.variantItem.PinCount())
	}

	si.cancelAttrSub = si.component.SubscribeAttributesChanged(func() {
		si.graphics.InvalidateCache()
	})

	// Unreachable after the checks above; a failure here is a defect in
	// this package, not bad input.
	if !si.attributesValid() {
		panic(fmt.Sprintf("schematic: symbol instance %s invalid after init", si.uuid))
	}
	return nil
}

// UUID returns the placed symbol's identifier.
func (si *SymbolInstance) UUID() ids.UUID { return si.uuid }

// Name returns the display name: the component designator plus the variant
// item's suffix.
func (si *SymbolInstance) Name() string {
	return si.component.Name() + si.variantItem.Suffix()
}

// Position returns the placement position on the sheet.
func (si *SymbolInstance) Position() geometry.Point { return si.position }

// Rotation returns the placement rotation.
func (si *SymbolInstance) Rotation() geometry.Angle { return si.rotation }

// Component returns the depicted component instance.
func (si *SymbolInstance) Component() *circuit.ComponentInstance { return si.component }

// VariantItem returns the resolved symbol variant item.
func (si *SymbolInstance) VariantItem() *circuit.SymbolVariantItem { return si.variantItem }

// LibrarySymbol returns the resolved library symbol definition.
func (si *SymbolInstance) LibrarySymbol() *library.Symbol { return si.symbol }

// Schematic returns the owning schematic sheet.
func (si *SymbolInstance) Schematic() *Schematic { return si.schematic }

// Pin returns the pin instance for the given library pin identifier, or
// nil.
func (si *SymbolInstance) Pin(uuid ids.UUID) *PinInstance { return si.pins[uuid] }

// Pins returns the pin instances in the library symbol's pin order.
func (si *SymbolInstance) Pins() []*PinInstance {
	result := make([]*PinInstance, 0, len(si.pins))
	for _, libPin := range si.symbol.Pins() {
		result = append(result, si.pins[libPin.UUID()])
	}
	return result
}

// SetPosition moves the placed symbol, updating the proxy and all pin
// positions.
func (si *SymbolInstance) SetPosition(p geometry.Point) {
	si.position = p
	si.graphics.SetPosition(p)
	si.graphics.InvalidateCache()
	for _, pin := range si.pins {
		pin.UpdatePosition()
	}
}

// SetRotation rotates the placed symbol, updating the proxy and all pin
// positions.
func (si *SymbolInstance) SetRotation(r geometry.Angle) {
	si.rotation = r
	si.graphics.SetRotation(proxyAngle(r))
	si.graphics.InvalidateCache()
	for _, pin := range si.pins {
		pin.UpdatePosition()
	}
}

// MapToScene projects a point from the symbol's local frame into sheet
// coordinates: translate by the current position, then rotate about it.
func (si *SymbolInstance) MapToScene(relative geometry.Point) geometry.Point {
	return si.position.Add(relative).Rotated(si.rotation, si.position)
}

// AddToSchematic registers this instance with its component instance and
// inserts the proxy and all pins into the scene. Must be called exactly
// once per placement; calling it twice is a caller error.
func (si *SymbolInstance) AddToSchematic(scene Scene) {
	si.component.RegisterSymbol(si)
	scene.AddItem(si.graphics)
	for _, pin := range si.pins {
		pin.addToSchematic(scene)
	}
}

// RemoveFromSchematic unregisters from the component instance and removes
// the proxy and all pins from the scene. The instance itself stays valid.
func (si *SymbolInstance) RemoveFromSchematic(scene Scene) {
	si.component.UnregisterSymbol(si)
	scene.RemoveItem(si.graphics)
	for _, pin := range si.pins {
		pin.removeFromSchematic(scene)
	}
}

// AttributeValue resolves a namespaced attribute. The symbol's own
// namespace answers NAME; foreign namespaces may delegate to the component
// instance (one hop only) and then to the schematic, which may cascade
// further up.
func (si *SymbolInstance) AttributeValue(ns, key string, passToParents bool) (string, bool) {
	if ns == "" || ns == attrs.NamespaceSymbol {
		if key == attrs.KeyName {
			return si.Name(), true
		}
	}

	if passToParents && ns != attrs.NamespaceSymbol {
		// The component must not cascade back down into sibling symbols,
		// so it is asked without parent delegation; the schematic hop may
		// cascade further up.
		if v, ok := si.component.AttributeValue(ns, key, false); ok {
			return v, true
		}
		if v, ok := si.schematic.AttributeValue(ns, key, true); ok {
			return v, true
		}
	}

	return "", false
}

// Serialize emits the placed symbol's document node. Pins are not
// serialized; they are rebuilt from the library symbol on load.
func (si *SymbolInstance) Serialize() *sexp.List {
	if !si.attributesValid() {
		panic(fmt.Sprintf("schematic: symbol instance %s invalid at serialization", si.uuid))
	}

	return sexp.NewList("symbol",
		sexp.UUIDNode("uuid", si.uuid),
		sexp.UUIDNode("component_instance", si.component.UUID()),
		sexp.UUIDNode("symbol_item", si.variantItem.UUID()),
		sexp.AtNode(si.position, si.rotation),
	)
}

// GrabAreaScene returns the area in scene coordinates a pointer can grab
// this symbol in.
func (si *SymbolInstance) GrabAreaScene() geometry.BoundingBox {
	return si.graphics.SceneShape()
}

// SetSelected updates the selection state of the symbol and all its pins.
func (si *SymbolInstance) SetSelected(selected bool) {
	si.selected = selected
	si.graphics.SetSelected(selected)
	for _, pin := range si.pins {
		pin.SetSelected(selected)
	}
}

// IsSelected reports the current selection state.
func (si *SymbolInstance) IsSelected() bool { return si.selected }

// Dispose cancels the attribute-change subscription. Call after the
// instance has been removed from its schematic for the last time.
func (si *SymbolInstance) Dispose() {
	if si.cancelAttrSub != nil {
		si.cancelAttrSub()
		si.cancelAttrSub = nil
	}
}

// pinBounds returns the bounding box of all pin scene positions.
func (si *SymbolInstance) pinBounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	bb.Expand(si.position)
	for _, pin := range si.pins {
		bb.Expand(pin.ScenePosition())
	}
	return bb
}

func (si *SymbolInstance) attributesValid() bool {
	if si.variantItem == nil {
		return false
	}
	if si.symbol == nil {
		return false
	}
	if si.uuid.IsNil() {
		return false
	}
	if si.component == nil {
		return false
	}
	return true
}
