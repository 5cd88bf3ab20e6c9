package output

import (
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
)

// csvHeaders are the column names of the CSV check report.
var csvHeaders = []string{"PACKAGE", "STATUS", "DISTRIBUTION", "CURRENT", "LATEST", "KIND", "UPDATE_TYPE", "ERROR"}

// WriteCheckResult writes check results in the specified format.
//
// It performs the following operations:
//   - Step 1: Creates a formatter for the requested format
//   - Step 2: Writes the check result using format-specific logic
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatYAML, FormatCSV or FormatXML)
//   - result: Check result data to write
//
// Returns:
//   - error: When format is unsupported or the write fails
func WriteCheckResult(w io.Writer, format Format, result *CheckResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(checkResultJSON(result))
	case FormatYAML:
		return formatter.WriteYAML(result)
	case FormatCSV:
		return writeCheckCSV(formatter, result)
	case FormatXML:
		return formatter.WriteXML(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// checkResultJSON builds the JSON document with packages keyed by name.
//
// Keys keep pipx listing order. A package name listed twice keeps its
// first position and its last entry.
//
// Parameters:
//   - result: Check result data
//
// Returns:
//   - *orderedmap.OrderedMap: Document with "summary", "packages" and optional "errors"
func checkResultJSON(result *CheckResult) *orderedmap.OrderedMap {
	doc := orderedmap.New()
	doc.SetEscapeHTML(false)
	doc.Set("summary", result.Summary)

	packages := orderedmap.New()
	packages.SetEscapeHTML(false)
	for _, entry := range result.Packages {
		packages.Set(entry.Package, entry)
	}
	doc.Set("packages", packages)

	if len(result.Errors) > 0 {
		doc.Set("errors", result.Errors)
	}
	return doc
}

// writeCheckCSV writes one row per package.
func writeCheckCSV(f *Formatter, result *CheckResult) error {
	rows := make([][]string, 0, len(result.Packages))
	for _, entry := range result.Packages {
		rows = append(rows, []string{
			entry.Package,
			entry.Status,
			entry.Distribution,
			entry.Current,
			entry.Latest,
			entry.Kind,
			entry.UpdateType,
			entry.Error,
		})
	}
	return f.WriteCSV(csvHeaders, rows)
}
