package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffwheeler/LibrePCB/pkg/attrs"
)

var attrCmd = &cobra.Command{
	Use:   "attr <project_file> <designator> <template>",
	Short: "Expand an attribute template against a placed symbol",
	Long: `Resolve attribute placeholders against a placed symbol's resolution
chain (symbol, component, schematic, project).

Placeholders use the {{NS::KEY}} syntax, with the namespace optional:

  lpsch attr project.lp U1A "{{NAME}} = {{VALUE}}"
  lpsch attr project.lp U1A "rev {{PAGE::REV}} of {{PRJ::TITLE}}"`,
	Args: cobra.ExactArgs(3),
	RunE: runAttr,
}

func init() {
	rootCmd.AddCommand(attrCmd)
}

func runAttr(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}

	designator := args[1]
	for _, sheet := range p.Schematics {
		for _, si := range sheet.Symbols() {
			if si.Name() != designator {
				continue
			}
			result, err := attrs.Expand(args[2], si)
			if err != nil {
				return fmt.Errorf("invalid template: %w", err)
			}
			fmt.Println(result)
			return nil
		}
	}
	return fmt.Errorf("no placed symbol %q in project", designator)
}
