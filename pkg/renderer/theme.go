package renderer

import "image/color"

// Theme selects a color scheme.
type Theme int

const (
	// ThemeLight is a light background theme.
	ThemeLight Theme = iota
	// ThemeDark is a dark background theme.
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Colors is the color scheme for rendering a sheet.
type Colors struct {
	Background color.NRGBA
	Grid       color.NRGBA

	SymbolBody color.NRGBA
	SymbolFill color.NRGBA
	SymbolText color.NRGBA
	Pin        color.NRGBA
	PinDot     color.NRGBA

	Selection color.NRGBA
}

// ThemeColors returns the color scheme for the given theme.
func ThemeColors(theme Theme) *Colors {
	if theme == ThemeDark {
		return &Colors{
			Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
			Grid:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},
			SymbolBody: color.NRGBA{R: 220, G: 160, B: 80, A: 255},
			SymbolFill: color.NRGBA{R: 50, G: 45, B: 35, A: 255},
			SymbolText: color.NRGBA{R: 230, G: 230, B: 230, A: 255},
			Pin:        color.NRGBA{R: 200, G: 80, B: 80, A: 255},
			PinDot:     color.NRGBA{R: 100, G: 200, B: 100, A: 255},
			Selection:  color.NRGBA{R: 80, G: 160, B: 255, A: 255},
		}
	}
	return &Colors{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Grid:       color.NRGBA{R: 220, G: 220, B: 220, A: 255},
		SymbolBody: color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		SymbolFill: color.NRGBA{R: 255, G: 255, B: 194, A: 255},
		SymbolText: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Pin:        color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		PinDot:     color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		Selection:  color.NRGBA{R: 0, G: 100, B: 255, A: 255},
	}
}
