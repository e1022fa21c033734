package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"publicdatareader/internal/table"
)

// document is the serialized form of a keyed table
type document struct {
	Key     string         `json:"key" yaml:"key"`
	Columns []table.Column `json:"columns" yaml:"columns"`
	Rows    [][]any        `json:"rows" yaml:"rows"`
}

// EncodeText writes an aligned plain text table preceded by the key
func EncodeText(w io.Writer, key string, t *table.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "== %s (%d rows)\n", key, t.Len())
	fmt.Fprintln(tw, strings.Join(t.Headers(), "\t"))
	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			cells[i] = FormatCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

// EncodeCSV writes a header row of labels followed by the rows
func EncodeCSV(w io.Writer, _ string, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers()); err != nil {
		return err
	}
	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			cells[i] = FormatCell(v)
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeJSON writes the table with its column schema as indented JSON
func EncodeJSON(w io.Writer, key string, t *table.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(document{Key: key, Columns: t.Columns, Rows: t.Rows})
}

// EncodeYAML writes the table with its column schema as a YAML document.
// Each document starts with a separator so tables can share a stream.
func EncodeYAML(w io.Writer, key string, t *table.Table) error {
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Key: key, Columns: t.Columns, Rows: t.Rows}); err != nil {
		return err
	}
	return enc.Close()
}
