package circuit

import "github.com/jeffwheeler/LibrePCB/pkg/ids"

// SymbolVariantItem binds a component's logical pins to one library
// symbol's graphical pins. Read-only once built.
type SymbolVariantItem struct {
	uuid       ids.UUID
	symbolUUID ids.UUID
	suffix     string
	pinSignals map[ids.UUID]ids.UUID // library pin -> net signal
}

// NewSymbolVariantItem creates a variant item. The pinSignals map is
// copied.
func NewSymbolVariantItem(uuid, symbolUUID ids.UUID, suffix string, pinSignals map[ids.UUID]ids.UUID) *SymbolVariantItem {
	m := make(map[ids.UUID]ids.UUID, len(pinSignals))
	for pin, sig := range pinSignals {
		m[pin] = sig
	}
	return &SymbolVariantItem{
		uuid:       uuid,
		symbolUUID: symbolUUID,
		suffix:     suffix,
		pinSignals: m,
	}
}

// UUID returns the item's identifier.
func (i *SymbolVariantItem) UUID() ids.UUID { return i.uuid }

// SymbolUUID returns the identifier of the library symbol this item
// references.
func (i *SymbolVariantItem) SymbolUUID() ids.UUID { return i.symbolUUID }

// Suffix returns the display-name suffix appended to the component name.
func (i *SymbolVariantItem) Suffix() string { return i.suffix }

// HasPin reports whether the pin-signal map covers the given library pin.
func (i *SymbolVariantItem) HasPin(pin ids.UUID) bool {
	_, ok := i.pinSignals[pin]
	return ok
}

// SignalOfPin returns the net signal mapped to the given library pin.
func (i *SymbolVariantItem) SignalOfPin(pin ids.UUID) (ids.UUID, bool) {
	sig, ok := i.pinSignals[pin]
	return sig, ok
}

// PinCount returns the number of entries in the pin-signal map.
func (i *SymbolVariantItem) PinCount() int { return len(i.pinSignals) }

// SymbolVariant is a component's set of symbol-variant items (one item per
// placed symbol the variant consists of).
type SymbolVariant struct {
	uuid  ids.UUID
	name  string
	items []*SymbolVariantItem
}

// NewSymbolVariant creates a variant with the given items.
func NewSymbolVariant(uuid ids.UUID, name string, items ...*SymbolVariantItem) *SymbolVariant {
	return &SymbolVariant{uuid: uuid, name: name, items: items}
}

// UUID returns the variant's identifier.
func (v *SymbolVariant) UUID() ids.UUID { return v.uuid }

// Name returns the variant's display name.
func (v *SymbolVariant) Name() string { return v.name }

// Items returns the variant items in file order.
func (v *SymbolVariant) Items() []*SymbolVariantItem { return v.items }

// Item returns the item with the given identifier, or nil.
func (v *SymbolVariant) Item(uuid ids.UUID) *SymbolVariantItem {
	for _, item := range v.items {
		if item.uuid == uuid {
			return item
		}
	}
	return nil
}
