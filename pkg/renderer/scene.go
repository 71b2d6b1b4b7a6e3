package renderer

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/jeffwheeler/LibrePCB/pkg/attrs"
	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
	"github.com/jeffwheeler/LibrePCB/pkg/schematic"
)

// Scene is the Gio graphics backend for one sheet. It implements both
// schematic.GraphicsFactory (placed symbols create their proxies here) and
// schematic.Scene (proxies are inserted and removed as symbols are placed
// and taken off).
type Scene struct {
	colors *Colors
	items  []sceneItem
}

// sceneItem is a proxy this backend knows how to paint.
type sceneItem interface {
	schematic.GraphicsItem
	render(gtx layout.Context, cam *Camera, colors *Colors)
}

// NewScene creates an empty scene with the given theme.
func NewScene(theme Theme) *Scene {
	return &Scene{colors: ThemeColors(theme)}
}

// SetTheme switches the scene's color scheme.
func (s *Scene) SetTheme(theme Theme) {
	s.colors = ThemeColors(theme)
}

// Colors returns the scene's current color scheme.
func (s *Scene) Colors() *Colors { return s.colors }

// NewSymbolItem creates the proxy for a placed symbol.
func (s *Scene) NewSymbolItem(si *schematic.SymbolInstance) schematic.GraphicsItem {
	return &symbolItem{model: si}
}

// NewPinItem creates the proxy for a symbol pin.
func (s *Scene) NewPinItem(pin *schematic.PinInstance) schematic.GraphicsItem {
	return &pinItem{model: pin}
}

// AddItem inserts a proxy into the scene. Proxies from a different backend
// are ignored.
func (s *Scene) AddItem(item schematic.GraphicsItem) {
	if it, ok := item.(sceneItem); ok {
		s.items = append(s.items, it)
	}
}

// RemoveItem removes a previously inserted proxy.
func (s *Scene) RemoveItem(item schematic.GraphicsItem) {
	for i, reg := range s.items {
		if reg == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of proxies currently in the scene.
func (s *Scene) Len() int { return len(s.items) }

// Bounds returns the union of all item shapes in world coordinates.
func (s *Scene) Bounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	for _, item := range s.items {
		bb.ExpandBox(item.SceneShape())
	}
	return bb
}

// Render paints the whole scene back to front: symbol bodies first, pins
// on top.
func (s *Scene) Render(gtx layout.Context, cam *Camera) {
	visible := cam.VisibleBounds()
	for _, item := range s.items {
		if _, ok := item.(*symbolItem); !ok {
			continue
		}
		if !visible.Intersects(item.SceneShape()) {
			continue
		}
		item.render(gtx, cam, s.colors)
	}
	for _, item := range s.items {
		if _, ok := item.(*pinItem); !ok {
			continue
		}
		if !visible.Intersects(item.SceneShape()) {
			continue
		}
		item.render(gtx, cam, s.colors)
	}
}

// bodyMargin is how far the symbol body outline extends past the outermost
// pin connection points, in mm.
const bodyMargin = 1.27

// symbolLabel is the template each symbol body is annotated with.
var symbolLabel, _ = attrs.ParseTemplate("{{SYM::NAME}}")

// symbolItem paints a placed symbol's body. The body outline is derived
// from the model's pin positions and cached until invalidated.
type symbolItem struct {
	model    *schematic.SymbolInstance
	position geometry.Point
	rotation geometry.Angle
	selected bool

	valid bool
	body  geometry.BoundingBox
	label string
}

func (s *symbolItem) SetPosition(p geometry.Point) {
	s.position = p
	s.valid = false
}

func (s *symbolItem) SetRotation(a geometry.Angle) {
	s.rotation = a
	s.valid = false
}

func (s *symbolItem) InvalidateCache() { s.valid = false }

func (s *symbolItem) SetSelected(selected bool) { s.selected = selected }

func (s *symbolItem) SceneShape() geometry.BoundingBox {
	s.ensureBody()
	return s.body
}

func (s *symbolItem) ensureBody() {
	if s.valid {
		return
	}
	bb := geometry.NewBoundingBox()
	bb.Expand(s.position)
	for _, pin := range s.model.Pins() {
		bb.Expand(pin.ScenePosition())
	}
	bb.Min.X -= bodyMargin
	bb.Min.Y -= bodyMargin
	bb.Max.X += bodyMargin
	bb.Max.Y += bodyMargin
	s.body = bb
	s.label = symbolLabel.Substitute(s.model)
	s.valid = true
}

func (s *symbolItem) render(gtx layout.Context, cam *Camera, colors *Colors) {
	s.ensureBody()

	x0, y0 := cam.WorldToScreen(s.body.Min)
	x1, y1 := cam.WorldToScreen(s.body.Max)
	rect := clip.Rect(image.Rect(int(x0), int(y1), int(x1), int(y0)))

	paint.FillShape(gtx.Ops, colors.SymbolFill, rect.Op())

	outline := colors.SymbolBody
	if s.selected {
		outline = colors.Selection
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x0), float32(y0)))
	path.LineTo(f32.Pt(float32(x1), float32(y0)))
	path.LineTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x0), float32(y1)))
	path.Close()
	paint.FillShape(gtx.Ops, outline, clip.Stroke{
		Path:  path.End(),
		Width: 2.0,
	}.Op())

	// Designator above the body's top-left corner
	renderText(gtx, x0, y1-18, s.label, colors.SymbolText)
}

// pinItem paints one pin: a stroke from the connection point toward the
// body plus a dot on the connection point itself.
type pinItem struct {
	model    *schematic.PinInstance
	position geometry.Point
	rotation geometry.Angle
	selected bool
}

func (p *pinItem) SetPosition(pos geometry.Point) { p.position = pos }
func (p *pinItem) SetRotation(a geometry.Angle)   { p.rotation = a }
func (p *pinItem) InvalidateCache()               {}
func (p *pinItem) SetSelected(selected bool)      { p.selected = selected }

func (p *pinItem) SceneShape() geometry.BoundingBox {
	length := p.model.LibraryPin().Length()
	bb := geometry.NewBoundingBox()
	bb.Expand(geometry.Point{X: p.position.X - length, Y: p.position.Y - length})
	bb.Expand(geometry.Point{X: p.position.X + length, Y: p.position.Y + length})
	return bb
}

func (p *pinItem) render(gtx layout.Context, cam *Camera, colors *Colors) {
	x, y := cam.WorldToScreen(p.position)

	// The stored rotation follows the view convention (Y down), so the
	// direction can be used in screen space directly.
	rad := p.rotation.Rad()
	length := p.model.LibraryPin().Length() * cam.Zoom
	ex := x + math.Cos(rad)*length
	ey := y + math.Sin(rad)*length

	pinColor := colors.Pin
	if p.selected {
		pinColor = colors.Selection
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x), float32(y)))
	path.LineTo(f32.Pt(float32(ex), float32(ey)))
	paint.FillShape(gtx.Ops, pinColor, clip.Stroke{
		Path:  path.End(),
		Width: 2.0,
	}.Op())

	const dotRadius = 3.0
	paint.FillShape(gtx.Ops, colors.PinDot,
		clip.Ellipse{
			Min: image.Pt(int(x-dotRadius), int(y-dotRadius)),
			Max: image.Pt(int(x+dotRadius), int(y+dotRadius)),
		}.Op(gtx.Ops))
}
