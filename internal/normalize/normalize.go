// Package normalize turns raw envelope records into typed tables.
package normalize

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"publicdatareader/internal/envelope"
	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/registry"
	"publicdatareader/internal/table"
)

var errNotFinite = errors.New("not a finite number")

// Normalize builds a table from records using the column schema of spec.
//
// Columns are spec.ExpectedColumns followed by any extra field codes in the
// order they were first seen. Row numbers in errors are zero-based indexes
// into records. When rename is set, columns are relabeled with spec.Labels.
func Normalize(records []envelope.Record, spec registry.EndpointSpec, rename bool) (*table.Table, error) {
	names := columnNames(records, spec.ExpectedColumns)

	columns := make([]table.Column, len(names))
	for i, name := range names {
		columns[i] = table.Column{Name: name, Label: name, Type: spec.ColumnType(name)}
	}
	t := table.New(columns)

	for row, rec := range records {
		for _, col := range spec.ExpectedColumns {
			if !spec.RequiredColumns[col] {
				continue
			}
			if _, ok := rec.Get(col); !ok {
				return nil, fetcher.NewMissingFieldError(col, row)
			}
		}

		cells := make([]any, len(columns))
		for i, c := range columns {
			raw, ok := rec.Get(c.Name)
			if !ok {
				continue
			}
			v, err := Coerce(c.Type, raw)
			if err != nil {
				return nil, fetcher.NewTypeCoercionError(c.Name, row, raw, err)
			}
			cells[i] = v
		}
		t.Rows = append(t.Rows, cells)
	}

	if rename {
		t.Rename(spec.Labels)
	}
	return t, nil
}

// Coerce converts one raw value to the Go type of a column.
// Blank numeric values become nil.
func Coerce(typ table.ColumnType, raw string) (any, error) {
	switch typ {
	case table.TypeInteger:
		s := strings.ReplaceAll(clean(raw), ",", "")
		if s == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	case table.TypeFloat:
		s := clean(raw)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errNotFinite
		}
		return f, nil
	default:
		return strings.TrimSpace(raw), nil
	}
}

// clean folds full-width digits and signs to ASCII and trims whitespace
func clean(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

func columnNames(records []envelope.Record, expected []string) []string {
	names := make([]string, 0, len(expected))
	seen := make(map[string]bool, len(expected))
	for _, name := range expected {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, rec := range records {
		for _, key := range rec.Keys() {
			if !seen[key] {
				seen[key] = true
				names = append(names, key)
			}
		}
	}
	return names
}
