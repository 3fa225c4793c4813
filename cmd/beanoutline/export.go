package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ev2geny/beanoutline/internal/document"
	"github.com/Ev2geny/beanoutline/internal/outline"
	"github.com/Ev2geny/beanoutline/internal/render"
)

var (
	exportTo  string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export <ledger-file>",
	Short: "Render an outline as markdown or HTML",
	Long: `Build a ledger's outline and render it as a markdown or HTML
document, with heading depth mirroring the outline level.

Examples:
  beanoutline export main.beancount --to markdown
  beanoutline export main.beancount --to html -o outline.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		roots, err := outline.Build(cmd.Context(), document.New(data))
		if err != nil {
			return err
		}

		var rendered []byte
		switch exportTo {
		case "markdown", "md":
			rendered = render.Markdown(roots)
		case "html":
			rendered, err = render.HTML(roots)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown export target %q (expected markdown|html)", exportTo)
		}

		if exportOut == "" {
			_, err = os.Stdout.Write(rendered)
			return err
		}
		return os.WriteFile(exportOut, rendered, 0644)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportTo, "to", "markdown", "export target: markdown|html")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write output to file instead of stdout")
}
