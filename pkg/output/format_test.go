package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFormat tests the behavior of ParseFormat.
//
// It verifies:
//   - Known formats parse case-insensitively
//   - Empty string and "table" select the table report
//   - "yml" is accepted as YAML
//   - Unknown formats return an error
func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" csv ", FormatCSV, false},
		{"XmL", FormatXML, false},
		{"toml", FormatTable, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown output format")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestIsStructuredFormat tests the behavior of IsStructuredFormat.
func TestIsStructuredFormat(t *testing.T) {
	assert.False(t, IsStructuredFormat(FormatTable))
	assert.False(t, IsStructuredFormat(Format("other")))
	for _, f := range []Format{FormatJSON, FormatYAML, FormatCSV, FormatXML} {
		assert.True(t, IsStructuredFormat(f), string(f))
	}
}

// TestFormatter_WriteCSV tests the behavior of Formatter.WriteCSV.
//
// It verifies:
//   - Header and rows are written
//   - Fields with commas are quoted
func TestFormatter_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatCSV, &buf)
	assert.Equal(t, FormatCSV, f.Format())

	err := f.WriteCSV([]string{"A", "B"}, [][]string{{"1", "x,y"}})
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,\"x,y\"\n", buf.String())
}

// TestFormatter_WriteYAML tests the behavior of Formatter.WriteYAML.
func TestFormatter_WriteYAML(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatYAML, &buf)

	err := f.WriteYAML(map[string]interface{}{"nested": map[string]int{"n": 1}})
	require.NoError(t, err)
	assert.Equal(t, "nested:\n  n: 1\n", buf.String())
}

// TestFormatter_WriteJSON tests the behavior of Formatter.WriteJSON.
func TestFormatter_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)

	require.NoError(t, f.WriteJSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\"a\":1}\n", buf.String())
}

// TestFormatter_WriteXML tests the behavior of Formatter.WriteXML.
//
// It verifies:
//   - The XML header is written
//   - Unencodable values return an error
func TestFormatter_WriteXML(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatXML, &buf)

	require.NoError(t, f.WriteXML(&CheckResult{}))
	assert.Contains(t, buf.String(), "<?xml")
	assert.Contains(t, buf.String(), "<checkResult>")

	buf.Reset()
	assert.Error(t, f.WriteXML(make(chan int)))
}
