// Package output formats CLI results as text, JSON, tables, or YAML, with
// optional jq-style filtering of the structured forms.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is human-readable format (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatTable is tabular format for lists.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --format (expected text|json|table|yaml)")
	}
}

// Table is an explicit tabular payload for FormatTable.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
	query  string
}

// NewPrinter creates a Printer that writes to w in the given format.
// A non-empty query filters JSON and YAML output through gojq.
func NewPrinter(w io.Writer, format Format, query string) *Printer {
	return &Printer{
		w:      w,
		format: format,
		query:  query,
	}
}

// Print outputs data in the configured format.
func (p *Printer) Print(data any) error {
	if data == nil {
		return nil
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(data)
	case FormatYAML:
		return p.printYAML(data)
	case FormatTable:
		return p.printTable(data)
	case FormatText:
		_, err := fmt.Fprintln(p.w, data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printJSON outputs data as pretty-printed JSON, filtered through the jq
// query when one is set.
func (p *Printer) printJSON(data any) error {
	if p.query == "" {
		enc := json.NewEncoder(p.w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	results, err := p.runQuery(data)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	for _, v := range results {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printYAML(data any) error {
	if p.query != "" {
		results, err := p.runQuery(data)
		if err != nil {
			return err
		}
		if len(results) == 1 {
			data = results[0]
		} else {
			data = results
		}
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

func (p *Printer) printTable(data any) error {
	table, ok := data.(Table)
	if !ok {
		return fmt.Errorf("table format requires tabular data")
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// runQuery filters data through the configured gojq query. The input is
// normalized through a JSON round trip first; gojq only accepts the types
// encoding/json produces.
func (p *Printer) runQuery(data any) ([]any, error) {
	parsed, err := gojq.Parse(p.query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode for query: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("decode for query: %w", err)
	}

	var results []any
	iter := code.Run(normalized)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if qerr, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", qerr)
		}
		results = append(results, v)
	}
	return results, nil
}
