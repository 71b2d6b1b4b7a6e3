package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeffwheeler/LibrePCB/pkg/project"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lpsch",
	Short: "Schematic project tools",
	Long: `lpsch inspects and checks schematic project files.

Examples:
  lpsch info project.lp               # Show project summary
  lpsch info project.lp U1            # Show details for component U1
  lpsch attr project.lp U1 "{{NAME}}" # Expand an attribute template
  lpsch check project.lp              # Report broken symbol instances`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the diagnostics logger: warnings only unless --verbose.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadProject loads a project file headlessly with the shared logger.
func loadProject(path string) (*project.Project, error) {
	logger := newLogger()
	defer logger.Sync()

	loader := project.Loader{Logger: logger}
	return loader.ParseFile(path)
}
