package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <project_file>",
	Short: "Report placed symbols that failed to load",
	Long: `Load a project and report every placed symbol that had to be skipped
because its references could not be resolved (missing component,
unknown symbol variant item, inconsistent pin map).

Exits non-zero when any placed symbol is broken.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}

	if len(p.LoadErrors) == 0 {
		total := 0
		for _, sheet := range p.Schematics {
			total += len(sheet.Symbols())
		}
		fmt.Printf("OK: %d placed symbols across %d schematics\n", total, len(p.Schematics))
		return nil
	}

	for _, loadErr := range p.LoadErrors {
		fmt.Printf("BROKEN: %v\n", loadErr)
	}
	return fmt.Errorf("%d broken symbol instance(s)", len(p.LoadErrors))
}
