package table

// ColumnType describes how the cells of a column are typed.
type ColumnType string

const (
	// TypeText holds string cells
	TypeText ColumnType = "text"
	// TypeInteger holds int64 cells
	TypeInteger ColumnType = "integer"
	// TypeFloat holds float64 cells
	TypeFloat ColumnType = "float"
)

// Column describes a single column of a Table.
// Name is the upstream field code; Label is the header shown to callers
// and equals Name until the table is renamed.
type Column struct {
	Name  string     `json:"name" yaml:"name"`
	Label string     `json:"label" yaml:"label"`
	Type  ColumnType `json:"type" yaml:"type"`
}

// Table is an ordered set of homogeneous rows.
//
// Cells are int64, float64, string or nil. A nil cell is the missing-value
// sentinel: the field was blank or absent upstream.
type Table struct {
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// New creates an empty table with the given columns.
func New(columns []Column) *Table {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: [][]any{}}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Headers returns the column labels in order.
func (t *Table) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	return headers
}

// Index returns the position of the column with the given name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row for the named column.
// ok is false when the column does not exist or the row is out of range.
func (t *Table) Value(row int, name string) (any, bool) {
	idx := t.Index(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[row][idx], true
}

// Rename relabels columns using labels (field code -> label).
// Columns missing from labels keep their current label.
func (t *Table) Rename(labels map[string]string) {
	for i, c := range t.Columns {
		if label, ok := labels[c.Name]; ok {
			t.Columns[i].Label = label
		}
	}
}

// Maps returns the rows as header -> value maps.
func (t *Table) Maps() []map[string]any {
	headers := t.Headers()
	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]any, len(headers))
		for j, h := range headers {
			m[h] = row[j]
		}
		out[i] = m
	}
	return out
}
