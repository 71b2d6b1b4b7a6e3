package schematic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffwheeler/LibrePCB/pkg/attrs"
	"github.com/jeffwheeler/LibrePCB/pkg/circuit"
	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
	"github.com/jeffwheeler/LibrePCB/pkg/ids"
	"github.com/jeffwheeler/LibrePCB/pkg/library"
	"github.com/jeffwheeler/LibrePCB/pkg/sexp"
)

var (
	symbolAUUID = ids.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	symbolBUUID = ids.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	pin1UUID    = ids.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	pin2UUID    = ids.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
	sigUUID     = ids.MustParse("cccccccc-0000-0000-0000-000000000001")
	cmpUUID     = ids.MustParse("dddddddd-0000-0000-0000-000000000001")
	variantUUID = ids.MustParse("eeeeeeee-0000-0000-0000-000000000001")
	itemAUUID   = ids.MustParse("ffffffff-0000-0000-0000-000000000001")
	itemBUUID   = ids.MustParse("ffffffff-0000-0000-0000-000000000002")
	sheetUUID   = ids.MustParse("12121212-0000-0000-0000-000000000001")
)

// fixture wires a minimal project: a two-pin symbol, a component "U1" whose
// variant has item A (consistent pin map) and item B (pin map with a
// surplus entry), and one empty sheet.
type fixture struct {
	library   *library.Library
	circuit   *circuit.Circuit
	component *circuit.ComponentInstance
	schematic *Schematic
	factory   *recordingFactory
	scene     *recordingScene
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sym := library.NewSymbol(symbolAUUID, "R")
	sym.AddPin(library.NewSymbolPin(pin1UUID, "1", geometry.Point{X: -2.54, Y: 0}, 0, 2.54))
	sym.AddPin(library.NewSymbolPin(pin2UUID, "2", geometry.Point{X: 2.54, Y: 0}, 180, 2.54))

	lib := library.NewLibrary()
	require.NoError(t, lib.AddSymbol(sym))

	itemA := circuit.NewSymbolVariantItem(itemAUUID, symbolAUUID, "A", map[ids.UUID]ids.UUID{
		pin1UUID: sigUUID,
		pin2UUID: {},
	})
	itemB := circuit.NewSymbolVariantItem(itemBUUID, symbolAUUID, "B", map[ids.UUID]ids.UUID{
		pin1UUID: sigUUID,
		pin2UUID: {},
		ids.MustParse("bbbbbbbb-0000-0000-0000-000000000099"): {},
	})
	variant := circuit.NewSymbolVariant(variantUUID, "default", itemA, itemB)

	cmp := circuit.NewComponentInstance(cmpUUID, "U1", variant)

	c := circuit.NewCircuit()
	require.NoError(t, c.AddSignal(circuit.NewNetSignal(sigUUID, "SIG1")))
	require.NoError(t, c.AddComponent(cmp))

	factory := &recordingFactory{}
	scene := &recordingScene{}
	sch := NewSchematic(sheetUUID, "Sheet 1", c, lib, factory, scene)

	return &fixture{
		library:   lib,
		circuit:   c,
		component: cmp,
		schematic: sch,
		factory:   factory,
		scene:     scene,
	}
}

// recordingFactory hands out items that remember what the model pushed.
type recordingFactory struct {
	items []*recordingItem
}

func (f *recordingFactory) NewSymbolItem(*SymbolInstance) GraphicsItem {
	item := &recordingItem{}
	f.items = append(f.items, item)
	return item
}

func (f *recordingFactory) NewPinItem(*PinInstance) GraphicsItem {
	item := &recordingItem{}
	f.items = append(f.items, item)
	return item
}

type recordingItem struct {
	position    geometry.Point
	rotation    geometry.Angle
	selected    bool
	invalidated int
}

func (r *recordingItem) SetPosition(p geometry.Point) { r.position = p }
func (r *recordingItem) SetRotation(a geometry.Angle) { r.rotation = a }
func (r *recordingItem) InvalidateCache()             { r.invalidated++ }
func (r *recordingItem) SetSelected(s bool)           { r.selected = s }
func (r *recordingItem) SceneShape() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	bb.Expand(r.position)
	return bb
}

type recordingScene struct {
	items []GraphicsItem
}

func (s *recordingScene) AddItem(item GraphicsItem) { s.items = append(s.items, item) }

func (s *recordingScene) RemoveItem(item GraphicsItem) {
	for i, reg := range s.items {
		if reg == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func TestNewSymbolInstance(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 0)
	require.NoError(t, err)

	assert.False(t, si.UUID().IsNil())
	assert.Equal(t, "U1A", si.Name())
	assert.Equal(t, geometry.Point{X: 10, Y: 20}, si.Position())

	// One pin instance per library pin, no more, no less.
	assert.Len(t, si.Pins(), 2)
	require.NotNil(t, si.Pin(pin1UUID))
	require.NotNil(t, si.Pin(pin2UUID))
	assert.Equal(t, "1", si.Pin(pin1UUID).Name())
}

func TestNewSymbolInstanceUnknownItem(t *testing.T) {
	f := newFixture(t)

	bogus := ids.MustParse("ffffffff-0000-0000-0000-0000000000ff")
	si, err := NewSymbolInstance(f.schematic, f.component, bogus, geometry.Point{}, 0)
	require.ErrorIs(t, err, ErrVariantItemNotFound)
	assert.Contains(t, err.Error(), bogus.String())
	assert.Nil(t, si)

	// Nothing registered, nothing placed, no proxies created.
	assert.Empty(t, f.component.RegisteredSymbols())
	assert.Empty(t, f.scene.items)
	assert.Empty(t, f.factory.items)
}

func TestNewSymbolInstancePinCountMismatch(t *testing.T) {
	f := newFixture(t)

	// Item B's pin-signal map has a surplus pin the symbol does not have.
	si, err := NewSymbolInstance(f.schematic, f.component, itemBUUID, geometry.Point{}, 0)
	require.ErrorIs(t, err, ErrPinCountMismatch)
	assert.Nil(t, si)
	assert.Empty(t, f.component.RegisteredSymbols())
	assert.Empty(t, f.scene.items)
}

func TestNewSymbolInstancePinMissingFromSignalMap(t *testing.T) {
	f := newFixture(t)

	item := circuit.NewSymbolVariantItem(
		ids.MustParse("ffffffff-0000-0000-0000-000000000003"),
		symbolAUUID, "C",
		map[ids.UUID]ids.UUID{pin1UUID: sigUUID},
	)
	variant := circuit.NewSymbolVariant(variantUUID, "default", item)
	cmp := circuit.NewComponentInstance(ids.MustParse("dddddddd-0000-0000-0000-000000000002"), "U2", variant)
	require.NoError(t, f.circuit.AddComponent(cmp))

	_, err := NewSymbolInstance(f.schematic, cmp, item.UUID(), geometry.Point{}, 0)
	require.ErrorIs(t, err, ErrPinNotInSignalMap)
	assert.Contains(t, err.Error(), pin2UUID.String())
}

func TestMapToScene(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 0)
	require.NoError(t, err)

	// At zero rotation the mapping is a plain translation.
	got := si.MapToScene(geometry.Point{X: 3, Y: 4})
	assert.InDelta(t, 13, got.X, 1e-9)
	assert.InDelta(t, 24, got.Y, 1e-9)

	// The origin maps onto the placement position for any rotation.
	for _, rot := range []geometry.Angle{0, 90, 180, 270, 45} {
		si.SetRotation(rot)
		origin := si.MapToScene(geometry.Point{})
		assert.InDelta(t, 10, origin.X, 1e-9, "rotation %v", rot)
		assert.InDelta(t, 20, origin.Y, 1e-9, "rotation %v", rot)
	}

	// 90 degrees counter-clockwise about the placement position.
	si.SetRotation(90)
	got = si.MapToScene(geometry.Point{X: 1, Y: 0})
	assert.InDelta(t, 10, got.X, 1e-9)
	assert.InDelta(t, 21, got.Y, 1e-9)
}

func TestPinPositionsFollowSymbol(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 0)
	require.NoError(t, err)

	pin := si.Pin(pin1UUID)
	assert.InDelta(t, 7.46, pin.ScenePosition().X, 1e-9)
	assert.InDelta(t, 20, pin.ScenePosition().Y, 1e-9)

	si.SetRotation(90)
	assert.InDelta(t, 10, pin.ScenePosition().X, 1e-9)
	assert.InDelta(t, 17.46, pin.ScenePosition().Y, 1e-9)

	si.SetPosition(geometry.Point{X: 0, Y: 0})
	assert.InDelta(t, 0, pin.ScenePosition().X, 1e-9)
	assert.InDelta(t, -2.54, pin.ScenePosition().Y, 1e-9)
}

func TestProxyRotationInverted(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{}, 30)
	require.NoError(t, err)

	// The symbol's proxy is the first item the factory created.
	proxy := f.factory.items[0]
	assert.Equal(t, geometry.Angle(-30), proxy.rotation)

	si.SetRotation(45)
	assert.Equal(t, geometry.Angle(-45), proxy.rotation)
}

func TestPinSignalResolution(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{}, 0)
	require.NoError(t, err)

	sig := si.Pin(pin1UUID).Signal()
	require.NotNil(t, sig)
	assert.Equal(t, "SIG1", sig.Name())

	// Pin 2 maps to the nil signal, i.e. unconnected.
	assert.Nil(t, si.Pin(pin2UUID).Signal())
}

func TestAddRemoveFromSchematic(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 0)
	require.NoError(t, err)

	f.schematic.AddSymbol(si)
	assert.Len(t, f.component.RegisteredSymbols(), 1)
	assert.Same(t, si, f.schematic.Symbol(si.UUID()))
	assert.Len(t, f.scene.items, 3) // symbol proxy + two pins

	f.schematic.RemoveSymbol(si)
	assert.Empty(t, f.component.RegisteredSymbols())
	assert.Nil(t, f.schematic.Symbol(si.UUID()))
	assert.Empty(t, f.scene.items)

	// The instance survives removal and can be placed again.
	f.schematic.AddSymbol(si)
	assert.Len(t, f.scene.items, 3)
}

func TestAttributeResolution(t *testing.T) {
	f := newFixture(t)
	f.component.SetAttribute("", attrs.KeyValue, "10k")
	f.circuit.SetAttribute(attrs.NamespaceProject, "TITLE", "demo")
	f.schematic.SetAttribute("", "REV", "2")

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{}, 0)
	require.NoError(t, err)

	// Own namespace answers NAME regardless of delegation.
	v, ok := si.AttributeValue(attrs.NamespaceSymbol, attrs.KeyName, false)
	require.True(t, ok)
	assert.Equal(t, "U1A", v)

	// Foreign lookups reach the component, then the sheet, then the
	// project, but only when delegation is enabled.
	v, ok = si.AttributeValue("", attrs.KeyValue, true)
	require.True(t, ok)
	assert.Equal(t, "10k", v)

	v, ok = si.AttributeValue(attrs.NamespaceSheet, "REV", true)
	require.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = si.AttributeValue(attrs.NamespaceProject, "TITLE", true)
	require.True(t, ok)
	assert.Equal(t, "demo", v)

	_, ok = si.AttributeValue(attrs.NamespaceProject, "TITLE", false)
	assert.False(t, ok)

	// Queries in the symbol's own namespace never leave the symbol.
	_, ok = si.AttributeValue(attrs.NamespaceSymbol, attrs.KeyValue, true)
	assert.False(t, ok)
}

func TestLoadedSheetAttributesResolve(t *testing.T) {
	f := newFixture(t)

	// Attribute node exactly as the document format stores it, with the
	// explicit "PAGE" namespace.
	node := sexp.NewList("schematic",
		sexp.UUIDNode("uuid", sheetUUID),
		sexp.StrNode("name", "Sheet 1"),
		sexp.NewList("attribute",
			sexp.StrNode("ns", attrs.NamespaceSheet),
			sexp.StrNode("key", "REV"),
			sexp.StrNode("value", "2"),
		),
	)

	sheet, skipped, err := FromSexp(node, f.circuit, f.library, HeadlessGraphics(), HeadlessScene())
	require.NoError(t, err)
	require.Empty(t, skipped)

	v, ok := sheet.AttributeValue(attrs.NamespaceSheet, "REV", false)
	require.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = sheet.AttributeValue("", "REV", false)
	require.True(t, ok)
	assert.Equal(t, "2", v)

	// And through the full chain from a placed symbol.
	si, err := NewSymbolInstance(sheet, f.component, itemAUUID, geometry.Point{}, 0)
	require.NoError(t, err)
	v, ok = si.AttributeValue(attrs.NamespaceSheet, "REV", true)
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestAttributeChangeInvalidatesProxy(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{}, 0)
	require.NoError(t, err)

	proxy := f.factory.items[0]
	before := proxy.invalidated
	f.component.SetName("U9")
	assert.Equal(t, before+1, proxy.invalidated)
	assert.Equal(t, "U9A", si.Name())

	// After disposal the subscription is gone.
	si.Dispose()
	at := proxy.invalidated
	f.component.SetName("U10")
	assert.Equal(t, at, proxy.invalidated)
}

func TestSetSelectedCascades(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{}, 0)
	require.NoError(t, err)

	si.SetSelected(true)
	assert.True(t, si.IsSelected())
	for _, item := range f.factory.items {
		assert.True(t, item.selected)
	}

	si.SetSelected(false)
	for _, item := range f.factory.items {
		assert.False(t, item.selected)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 90)
	require.NoError(t, err)
	f.schematic.AddSymbol(si)

	node := si.Serialize()
	assert.Equal(t, "symbol", node.Name())

	// Pins never appear in the serialized form.
	assert.Empty(t, node.Children("pin"))

	restored, err := SymbolInstanceFromSexp(f.schematic, node)
	require.NoError(t, err)
	assert.Equal(t, si.UUID(), restored.UUID())
	assert.Equal(t, si.Position(), restored.Position())
	assert.Equal(t, si.Rotation(), restored.Rotation())
	assert.Same(t, si.Component(), restored.Component())
	assert.Len(t, restored.Pins(), 2)
}

func TestSchematicRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.schematic.SetAttribute("", "REV", "2")

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 90)
	require.NoError(t, err)
	f.schematic.AddSymbol(si)

	var sb strings.Builder
	require.NoError(t, sexp.Write(&sb, f.schematic.ToSexp()))

	parsed, err := sexp.ParseString(sb.String())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	root, ok := parsed[0].(*sexp.List)
	require.True(t, ok)

	restored, skipped, err := FromSexp(root, f.circuit, f.library, HeadlessGraphics(), HeadlessScene())
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, sheetUUID, restored.UUID())
	assert.Equal(t, "Sheet 1", restored.Name())

	v, ok := restored.AttributeValue("", "REV", false)
	require.True(t, ok)
	assert.Equal(t, "2", v)

	require.Len(t, restored.Symbols(), 1)
	assert.Equal(t, si.UUID(), restored.Symbols()[0].UUID())
	assert.Equal(t, geometry.Angle(90), restored.Symbols()[0].Rotation())
}

func TestFromSexpSkipsBrokenInstances(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 0)
	require.NoError(t, err)
	f.schematic.AddSymbol(si)

	node := f.schematic.ToSexp()
	broken := si.Serialize()
	// Point the copy at a component that does not exist.
	bogus := ids.MustParse("dddddddd-0000-0000-0000-0000000000ff")
	replaceChild(t, broken, "component_instance", sexp.UUIDNode("component_instance", bogus))
	replaceChild(t, broken, "uuid", sexp.UUIDNode("uuid", ids.New()))
	node.Append(broken)

	restored, skipped, err := FromSexp(node, f.circuit, f.library, HeadlessGraphics(), HeadlessScene())
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], ErrComponentNotFound)
	assert.Contains(t, skipped[0].Error(), bogus.String())
	assert.Len(t, restored.Symbols(), 1)
}

func TestFromSexpRejectsNilUUID(t *testing.T) {
	f := newFixture(t)

	si, err := NewSymbolInstance(f.schematic, f.component, itemAUUID, geometry.Point{X: 10, Y: 20}, 0)
	require.NoError(t, err)
	f.schematic.AddSymbol(si)

	// The all-zero identifier parses but never identifies a live entity.
	broken := si.Serialize()
	replaceChild(t, broken, "uuid", sexp.UUIDNode("uuid", ids.UUID{}))

	restored, err := SymbolInstanceFromSexp(f.schematic, broken)
	require.ErrorIs(t, err, ErrNilUUID)
	assert.Nil(t, restored)

	// The document loader treats it like any other broken instance: skip
	// and continue.
	node := f.schematic.ToSexp()
	node.Append(broken)
	sheet, skipped, err := FromSexp(node, f.circuit, f.library, HeadlessGraphics(), HeadlessScene())
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], ErrNilUUID)
	assert.Len(t, sheet.Symbols(), 1)
}

func replaceChild(t *testing.T, l *sexp.List, key string, replacement *sexp.List) {
	t.Helper()
	for i := 0; i < l.Len(); i++ {
		if sub, ok := l.Get(i).(*sexp.List); ok && sub.Name() == key {
			l.Set(i, replacement)
			return
		}
	}
	t.Fatalf("no %q child to replace", key)
}
