package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fmtOutput string

var fmtCmd = &cobra.Command{
	Use:   "fmt <project_file>",
	Short: "Rewrite a project file in canonical form",
	Long: `Load a project and write it back out with canonical formatting and
ordering. Placed symbols that fail to load are dropped from the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringVarP(&fmtOutput, "output", "o", "", "write to this file instead of rewriting in place")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}

	out := fmtOutput
	if out == "" {
		out = args[0]
	}
	if err := p.SaveFile(out); err != nil {
		return err
	}

	if len(p.LoadErrors) > 0 {
		fmt.Printf("dropped %d broken symbol instance(s)\n", len(p.LoadErrors))
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
