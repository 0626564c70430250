package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OData/odata.net-sub135/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "edmval",
	Short: "edmval - Entity Data Model validator",
	Long: `edmval validates Entity Data Models (EDM) described in YAML files.

Validation runs in two passes:
  - A structural pass walking the model graph for broken references,
    missing values and inconsistent kinds
  - A semantic pass applying the EDM rule set (names, keys, inheritance,
    navigation, operations, annotations and expression types)

Exit status is 0 when every model is valid, 1 when validation found errors
and 2 on any other failure.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalidModel) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "edmval.yaml", "config file path (defaults are used when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
