// Package project ties a library, a circuit and any number of schematic
// sheets into one loadable, savable document.
package project

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jeffwheeler/LibrePCB/pkg/circuit"
	"github.com/jeffwheeler/LibrePCB/pkg/library"
	"github.com/jeffwheeler/LibrePCB/pkg/schematic"
	"github.com/jeffwheeler/LibrePCB/pkg/sexp"
)

// Document format:
//
//	(librepcb_project
//	 (library ...)
//	 (circuit ...)
//	 (schematic ...)*)

// Project is a complete loaded document.
type Project struct {
	Library    *library.Library
	Circuit    *circuit.Circuit
	Schematics []*schematic.Schematic

	// LoadErrors holds the per-instance errors of placed symbols that
	// could not be restored and were skipped during loading.
	LoadErrors []error
}

// Loader loads project documents. The zero value is usable: it loads
// headlessly and logs nowhere.
type Loader struct {
	// Logger receives per-instance load diagnostics. Nil disables logging.
	Logger *zap.Logger

	// Graphics is the factory placed symbols create their proxies with.
	// Nil selects the headless backend.
	Graphics schematic.GraphicsFactory

	// Scene receives the proxies of loaded schematic items. Nil selects a
	// discarding scene.
	Scene schematic.Scene
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// ParseFile loads a project document from disk.
func (l *Loader) ParseFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project file: %w", err)
	}
	defer f.Close()

	p, err := l.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return p, nil
}

// Parse loads a project document. Placed symbols that cannot be restored
// are logged and skipped; the rest of the document loads normally. A
// malformed library, circuit or sheet structure is fatal.
func (l *Loader) Parse(r io.Reader) (*Project, error) {
	nodes, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var root *sexp.List
	for _, node := range nodes {
		if list, ok := node.(*sexp.List); ok && list.Name() == "librepcb_project" {
			root = list
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no librepcb_project node in document")
	}

	libNode, ok := root.Child("library")
	if !ok {
		return nil, fmt.Errorf("missing required \"library\" node")
	}
	lib, err := library.FromSexp(libNode)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}

	circNode, ok := root.Child("circuit")
	if !ok {
		return nil, fmt.Errorf("missing required \"circuit\" node")
	}
	circ, err := circuit.FromSexp(circNode)
	if err != nil {
		return nil, fmt.Errorf("failed to load circuit: %w", err)
	}

	factory := l.Graphics
	if factory == nil {
		factory = schematic.HeadlessGraphics()
	}
	scene := l.Scene
	if scene == nil {
		scene = schematic.HeadlessScene()
	}

	p := &Project{Library: lib, Circuit: circ}
	for _, schNode := range root.Children("schematic") {
		sheet, skipped, err := schematic.FromSexp(schNode, circ, lib, factory, scene)
		if err != nil {
			return nil, err
		}
		for _, skipErr := range skipped {
			l.logger().Warn("skipping symbol instance",
				zap.String("schematic", sheet.Name()),
				zap.Error(skipErr),
			)
			p.LoadErrors = append(p.LoadErrors, fmt.Errorf("schematic %q: %w", sheet.Name(), skipErr))
		}
		p.Schematics = append(p.Schematics, sheet)
	}

	l.logger().Info("project loaded",
		zap.Int("symbols", lib.Count()),
		zap.Int("components", len(circ.Components())),
		zap.Int("schematics", len(p.Schematics)),
	)
	return p, nil
}

// Serialize emits the full document tree.
func (p *Project) Serialize() *sexp.List {
	root := sexp.NewList("librepcb_project",
		p.Library.ToSexp(),
		p.Circuit.ToSexp(),
	)
	for _, sheet := range p.Schematics {
		root.Append(sheet.ToSexp())
	}
	return root
}

// Save writes the document to w.
func (p *Project) Save(w io.Writer) error {
	return sexp.Write(w, p.Serialize())
}

// SaveFile writes the document to disk.
func (p *Project) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create project file: %w", err)
	}
	if err := p.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Schematic returns the sheet with the given name, or nil.
func (p *Project) Schematic(name string) *schematic.Schematic {
	for _, sheet := range p.Schematics {
		if sheet.Name() == name {
			return sheet
		}
	}
	return nil
}
