package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ev2geny/beanoutline/internal/document"
	"github.com/Ev2geny/beanoutline/internal/outline"
	"github.com/Ev2geny/beanoutline/internal/output"
)

var (
	outlineFlat    bool
	outlineFolding bool
)

var outlineCmd = &cobra.Command{
	Use:   "outline <ledger-file>",
	Short: "Build and print a ledger's outline",
	Long: `Build the section outline of a beancount ledger and print it.

By default the outline is printed as an indented tree. With --flat each
heading becomes one row with its breadcrumb path; with --folding the
collapsible line ranges are printed instead.

Examples:
  beanoutline outline main.beancount
  beanoutline outline main.beancount --flat --format table
  beanoutline outline main.beancount --format json --query '.[0].label'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		roots, err := outline.Build(cmd.Context(), document.New(data))
		if err != nil {
			return err
		}

		printer := output.NewPrinter(os.Stdout, format, outputQuery)

		switch {
		case outlineFolding:
			return printFolding(printer, format, outline.FoldingRanges(roots))
		case outlineFlat:
			return printFlat(printer, format, outline.Flatten(roots))
		default:
			return printTree(printer, format, roots)
		}
	},
}

func init() {
	outlineCmd.Flags().BoolVar(&outlineFlat, "flat", false, "print one row per heading with its breadcrumb")
	outlineCmd.Flags().BoolVar(&outlineFolding, "folding", false, "print collapsible line ranges")
}

func printTree(printer *output.Printer, format output.Format, roots []*outline.Node) error {
	if format != output.FormatText {
		return printer.Print(roots)
	}
	var walk func(nodes []*outline.Node, depth int)
	walk = func(nodes []*outline.Node, depth int) {
		for _, n := range nodes {
			fmt.Printf("%s%s  [%d:%d]\n", strings.Repeat("  ", depth), n.Label, n.Span.Start.Line+1, n.Span.End.Line+1)
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return nil
}

func printFlat(printer *output.Printer, format output.Format, entries []outline.Entry) error {
	switch format {
	case output.FormatTable:
		table := output.Table{
			Headers: []string{"LEVEL", "LABEL", "BREADCRUMB", "LINES"},
		}
		for _, e := range entries {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(e.Level),
				e.Label,
				strings.Join(e.Breadcrumb, " > "),
				fmt.Sprintf("%d-%d", e.StartLine+1, e.EndLine+1),
			})
		}
		return printer.Print(table)
	case output.FormatText:
		for _, e := range entries {
			fmt.Printf("%s%s\n", strings.Repeat("  ", e.Level-1), e.Label)
		}
		return nil
	default:
		return printer.Print(entries)
	}
}

func printFolding(printer *output.Printer, format output.Format, folds []outline.Folding) error {
	switch format {
	case output.FormatTable:
		table := output.Table{Headers: []string{"START", "END"}}
		for _, f := range folds {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(f.StartLine + 1),
				strconv.Itoa(f.EndLine + 1),
			})
		}
		return printer.Print(table)
	case output.FormatText:
		for _, f := range folds {
			fmt.Printf("%d-%d\n", f.StartLine+1, f.EndLine+1)
		}
		return nil
	default:
		return printer.Print(folds)
	}
}
