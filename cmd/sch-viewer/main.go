package main

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"

	"github.com/jeffwheeler/LibrePCB/pkg/project"
	"github.com/jeffwheeler/LibrePCB/pkg/renderer"
	"github.com/jeffwheeler/LibrePCB/pkg/schematic"
)

func main() {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("Schematic Viewer"))
		w.Option(app.Size(unit.Dp(1200), unit.Dp(800)))

		if err := run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

type ViewerApp struct {
	window   *app.Window
	theme    *material.Theme
	explorer *explorer.Explorer

	project    *project.Project
	sheet      *schematic.Schematic
	sheetIndex int
	scene      *renderer.Scene
	camera     *renderer.Camera
	colorTheme renderer.Theme

	// UI widgets
	openFileBtn  widget.Clickable
	themeBtn     widget.Clickable
	fitBtn       widget.Clickable
	nextSheetBtn widget.Clickable

	// Mouse interaction
	lastPointerPos f32.Point
	isDragging     bool

	filepath string
}

func run(w *app.Window) error {
	viewer := &ViewerApp{
		window:     w,
		theme:      material.NewTheme(),
		explorer:   explorer.NewExplorer(w),
		camera:     renderer.NewCamera(1200, 800),
		scene:      renderer.NewScene(renderer.ThemeLight),
		colorTheme: renderer.ThemeLight,
	}
	viewer.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	if len(os.Args) > 1 {
		viewer.loadProject(os.Args[1])
	}

	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			viewer.camera.UpdateScreenSize(e.Size.X, e.Size.Y)
			viewer.handleInput(gtx)
			viewer.layout(gtx)
			e.Frame(&ops)
		}
	}
}

func (v *ViewerApp) handleInput(gtx layout.Context) {
	if v.openFileBtn.Clicked(gtx) {
		v.openFilePicker()
	}
	if v.themeBtn.Clicked(gtx) {
		v.toggleTheme()
	}
	if v.fitBtn.Clicked(gtx) {
		v.fitToView()
	}
	if v.nextSheetBtn.Clicked(gtx) {
		v.nextSheet()
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "O", Required: key.ModShortcut})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.openFilePicker()
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "T", Required: key.ModShortcut})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.toggleTheme()
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "F"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.fitToView()
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameTab})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.nextSheet()
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: "Q"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			os.Exit(0)
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			os.Exit(0)
		}
	}

	for {
		ev, ok := gtx.Event(
			pointer.Filter{
				Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
			},
		)
		if !ok {
			break
		}

		if pe, ok := ev.(pointer.Event); ok {
			switch pe.Kind {
			case pointer.Press:
				if pe.Buttons == pointer.ButtonPrimary {
					v.isDragging = true
					v.lastPointerPos = pe.Position
				}

			case pointer.Drag:
				if v.isDragging && pe.Buttons == pointer.ButtonPrimary {
					deltaX := float64(pe.Position.X - v.lastPointerPos.X)
					deltaY := float64(pe.Position.Y - v.lastPointerPos.Y)
					v.camera.Pan(deltaX, deltaY)
					v.lastPointerPos = pe.Position
					v.window.Invalidate()
				}

			case pointer.Release:
				v.isDragging = false

			case pointer.Scroll:
				zoomFactor := 1.0 - float64(pe.Scroll.Y)*0.1
				v.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), zoomFactor)
				v.window.Invalidate()
			}
		}
	}
}

func (v *ViewerApp) openFilePicker() {
	go func() {
		file, err := v.explorer.ChooseFile("")
		if err != nil {
			if err != explorer.ErrUserDecline {
				log.Printf("File picker error: %v", err)
			}
			return
		}
		defer file.Close()

		if f, ok := file.(*os.File); ok {
			log.Printf("Selected file: %s", f.Name())
			v.loadProject(f.Name())
			v.window.Invalidate()
		}
	}()
}

func (v *ViewerApp) loadProject(filepath string) {
	// Proxies are created during loading, so each project gets a fresh
	// scene bound to the loader.
	scene := renderer.NewScene(v.colorTheme)
	loader := project.Loader{Graphics: scene, Scene: scene}

	p, err := loader.ParseFile(filepath)
	if err != nil {
		log.Printf("Error loading project: %v", err)
		return
	}
	if len(p.Schematics) == 0 {
		log.Printf("Project %s has no schematics", filepath)
		return
	}

	v.project = p
	v.scene = scene
	v.sheetIndex = 0
	v.sheet = p.Schematics[0]
	v.filepath = filepath
	v.window.Option(app.Title("Schematic Viewer - " + filepath))

	v.fitToView()

	log.Printf("Loaded project: %s", filepath)
	log.Printf("  Library symbols: %d", p.Library.Count())
	log.Printf("  Components: %d", len(p.Circuit.Components()))
	log.Printf("  Schematics: %d", len(p.Schematics))
}

func (v *ViewerApp) nextSheet() {
	if v.project == nil || len(v.project.Schematics) < 2 {
		return
	}
	v.sheetIndex = (v.sheetIndex + 1) % len(v.project.Schematics)
	v.sheet = v.project.Schematics[v.sheetIndex]
	v.fitToView()
}

func (v *ViewerApp) toggleTheme() {
	if v.colorTheme == renderer.ThemeLight {
		v.colorTheme = renderer.ThemeDark
	} else {
		v.colorTheme = renderer.ThemeLight
	}
	v.scene.SetTheme(v.colorTheme)
	log.Printf("Theme switched to: %s", v.colorTheme)
	v.window.Invalidate()
}

func (v *ViewerApp) fitToView() {
	if v.scene == nil {
		return
	}

	bbox := v.scene.Bounds()
	if bbox.IsEmpty() {
		log.Println("Nothing to fit")
		return
	}

	v.camera.Fit(bbox)
	log.Printf("Fit to view: bbox (%.2f, %.2f) to (%.2f, %.2f)",
		bbox.Min.X, bbox.Min.Y, bbox.Max.X, bbox.Max.Y)
	v.window.Invalidate()
}

func (v *ViewerApp) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, v.scene.Colors().Background)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.layoutToolbar(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return v.layoutCanvas(gtx)
		}),
	)
}

func (v *ViewerApp) layoutToolbar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Top: 8, Bottom: 8, Left: 8, Right: 8}

	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(v.theme, &v.openFileBtn, "Open (Ctrl+O)")
						return btn.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: 8}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(v.theme, &v.themeBtn, "Theme (Ctrl+T)")
						return btn.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: 8}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(v.theme, &v.fitBtn, "Fit (F)")
						return btn.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: 8}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(v.theme, &v.nextSheetBtn, "Next Sheet (Tab)")
						return btn.Layout(gtx)
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Body1(v.theme, v.statusText())
				return label.Layout(gtx)
			}),
		)
	})
}

func (v *ViewerApp) statusText() string {
	if v.sheet == nil {
		return "No project loaded"
	}
	return fmt.Sprintf("%s  |  %s (%d symbols)  |  zoom %.1fx",
		v.filepath, v.sheet.Name(), len(v.sheet.Symbols()), v.camera.Zoom)
}

func (v *ViewerApp) layoutCanvas(gtx layout.Context) layout.Dimensions {
	if v.scene != nil {
		v.scene.Render(gtx, v.camera)
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}
