package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffwheeler/LibrePCB/pkg/project"
)

var infoCmd = &cobra.Command{
	Use:   "info <project_file> [component]",
	Short: "Show project information",
	Long: `Display information about a schematic project file.

Without component argument: shows a project summary
With component argument: shows details for that component (by designator)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}

	if len(args) >= 2 {
		return showComponentDetails(p, args[1])
	}

	showProjectSummary(p, args[0])
	return nil
}

func showProjectSummary(p *project.Project, filename string) {
	fmt.Printf("Project: %s\n", filename)
	fmt.Printf("Library symbols: %d\n", p.Library.Count())
	fmt.Printf("Components: %d\n", len(p.Circuit.Components()))
	fmt.Printf("Net signals: %d\n", len(p.Circuit.Signals()))
	fmt.Println()

	for _, sheet := range p.Schematics {
		fmt.Printf("Schematic %q (%s): %d symbols\n", sheet.Name(), sheet.UUID(), len(sheet.Symbols()))
		for _, si := range sheet.Symbols() {
			pos := si.Position()
			fmt.Printf("  %-8s at (%.2f, %.2f) rot %.0f  [%s]\n",
				si.Name(), pos.X, pos.Y, float64(si.Rotation()), si.UUID())
		}
	}
}

func showComponentDetails(p *project.Project, designator string) error {
	for _, cmp := range p.Circuit.Components() {
		if cmp.Name() != designator {
			continue
		}

		fmt.Printf("Component: %s (%s)\n", cmp.Name(), cmp.UUID())
		fmt.Printf("Symbol variant: %s\n", cmp.SymbolVariant().Name())

		if entries := cmp.Attributes().Entries(); len(entries) > 0 {
			fmt.Println("Attributes:")
			for _, e := range entries {
				if e.Namespace == "" {
					fmt.Printf("  %s = %q\n", e.Key, e.Value)
				} else {
					fmt.Printf("  %s::%s = %q\n", e.Namespace, e.Key, e.Value)
				}
			}
		}

		placed := cmp.RegisteredSymbols()
		fmt.Printf("Placed symbols: %d\n", len(placed))
		for _, s := range placed {
			fmt.Printf("  %s [%s]\n", s.Name(), s.UUID())
		}
		return nil
	}
	return fmt.Errorf("no component %q in project", designator)
}
