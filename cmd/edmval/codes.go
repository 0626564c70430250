package main

import (
	"github.com/spf13/cobra"

	"github.com/OData/odata.net-sub135/pkg/cli"
)

var codesFlags struct {
	critical bool
	format   string
}

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List validation error codes",
	Long: `List every validation error code with its number.

Interface-critical codes report a malformed model graph; when one of them
is found the semantic rules are not run.

Examples:
  edmval codes
  edmval codes --critical --format json`,
	RunE: listCodes,
}

func init() {
	rootCmd.AddCommand(codesCmd)

	codesCmd.Flags().BoolVar(&codesFlags.critical, "critical", false, "only interface-critical codes")
	codesCmd.Flags().StringVar(&codesFlags.format, "format", "text", "output format: text, json, csv")
}

func listCodes(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(codesFlags.format)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), selectCodes(codesFlags.critical))
}

func selectCodes(criticalOnly bool) []cli.CodeInfo {
	codes := cli.CodeCatalog()
	if !criticalOnly {
		return codes
	}
	critical := codes[:0]
	for _, c := range codes {
		if c.Critical {
			critical = append(critical, c)
		}
	}
	return critical
}
