package renderer

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Global theme for text rendering
var defaultTheme = material.NewTheme()

func init() {
	defaultTheme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
}

// renderText draws a text label at screen coordinates.
func renderText(gtx layout.Context, x, y float64, textStr string, textColor color.NRGBA) {
	if textStr == "" {
		return
	}

	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
	defer stack.Pop()

	lbl := material.Label(defaultTheme, unit.Sp(12), textStr)
	lbl.Color = textColor
	lbl.Alignment = text.Start
	lbl.Layout(gtx)
}
