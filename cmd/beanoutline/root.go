package main

import (
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	outputQuery  string
)

var rootCmd = &cobra.Command{
	Use:   "beanoutline",
	Short: "Outline extractor for beancount ledgers",
	Long: `Beanoutline scans plain-text beancount ledgers and extracts the
section hierarchy marked by leading '*' runs.

Commands:
  outline  - Build and print a ledger's outline
  export   - Render an outline as markdown or HTML
  watch    - Rebuild the outline whenever the ledger changes
  serve    - Start the HTTP server`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "format", "f", "text", "output format: text|json|table|yaml",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputQuery, "query", "q", "", "jq expression applied to structured output",
	)

	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
