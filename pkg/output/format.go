// Package output provides formatters for exporting check results in various formats.
// It supports JSON, YAML, CSV and XML as alternatives to the streamed table report.
package output

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default streamed report.
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs data as YAML.
	FormatYAML Format = "yaml"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV Format = "csv"
	// FormatXML outputs data as XML.
	FormatXML Format = "xml"
)

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive and accepts "yml" as an alias for "yaml".
// An empty string selects FormatTable.
//
// Parameters:
//   - s: Format string to parse (e.g., "json", "YAML")
//
// Returns:
//   - Format: The parsed format
//   - error: When s names no known format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatTable, fmt.Errorf("unknown output format %q (expected table, json, yaml, csv or xml)", s)
	}
}

// IsStructuredFormat returns true if the format requires structured output (not table).
//
// Structured formats are written once after all checks finish instead of
// being streamed block by block.
//
// Parameters:
//   - f: The format to check
//
// Returns:
//   - bool: true for JSON, YAML, CSV and XML; false for table format
func IsStructuredFormat(f Format) bool {
	switch f {
	case FormatJSON, FormatYAML, FormatCSV, FormatXML:
		return true
	default:
		return false
	}
}

// Formatter handles writing data in a specific format.
//
// Fields:
//   - format: The output format
//   - writer: Destination for formatted output
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter for the given format and writer.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Format returns the current format.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteCSV writes a header row and data rows as CSV.
//
// csv.Writer buffers all writes and only reports errors via Error() after Flush().
//
// Parameters:
//   - headers: Column headers for the CSV
//   - rows: Data rows, each with the same number of columns as headers
//
// Returns:
//   - error: When write or flush fails
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)

	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}

	w.Flush()
	return w.Error()
}

// WriteJSON writes data as compact JSON followed by a newline.
func (f *Formatter) WriteJSON(data interface{}) error {
	encoder := json.NewEncoder(f.writer)
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML with two-space indentation.
//
// Parameters:
//   - data: Data structure to encode (uses yaml struct tags)
//
// Returns:
//   - error: When encoding fails
func (f *Formatter) WriteYAML(data interface{}) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// WriteXML writes data as XML with a header and 2-space indentation.
func (f *Formatter) WriteXML(data interface{}) error {
	_, _ = fmt.Fprint(f.writer, xml.Header)
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(f.writer)
	return nil
}
