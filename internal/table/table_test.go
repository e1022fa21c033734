package table

import (
	"reflect"
	"testing"
)

func sampleTable() *Table {
	t := New([]Column{
		{Name: "bldNm", Label: "bldNm", Type: TypeText},
		{Name: "hhldCnt", Label: "hhldCnt", Type: TypeInteger},
		{Name: "platArea", Label: "platArea", Type: TypeFloat},
	})
	t.Rows = append(t.Rows,
		[]any{"Tower A", int64(120), 812.5},
		[]any{"Tower B", nil, nil},
	)
	return t
}

func TestNew_CopiesColumns(t *testing.T) {
	cols := []Column{{Name: "a", Label: "a", Type: TypeText}}
	tbl := New(cols)
	cols[0].Name = "changed"

	if tbl.Columns[0].Name != "a" {
		t.Errorf("Columns[0].Name = %q, want a", tbl.Columns[0].Name)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
	if tbl.Rows == nil {
		t.Error("Rows is nil, want empty slice")
	}
}

func TestTable_Value(t *testing.T) {
	tbl := sampleTable()

	tests := []struct {
		name   string
		row    int
		column string
		want   any
		wantOK bool
	}{
		{"text cell", 0, "bldNm", "Tower A", true},
		{"integer cell", 0, "hhldCnt", int64(120), true},
		{"missing cell", 1, "platArea", nil, true},
		{"unknown column", 0, "nope", nil, false},
		{"row out of range", 5, "bldNm", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tbl.Value(tt.row, tt.column)
			if ok != tt.wantOK {
				t.Fatalf("Value() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable_Rename(t *testing.T) {
	tbl := sampleTable()
	tbl.Rename(map[string]string{"bldNm": "건물명", "hhldCnt": "세대수"})

	want := []string{"건물명", "세대수", "platArea"}
	if got := tbl.Headers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}

	wantNames := []string{"bldNm", "hhldCnt", "platArea"}
	if got := tbl.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("Names() = %v, want %v", got, wantNames)
	}
}

func TestTable_Maps(t *testing.T) {
	tbl := sampleTable()
	maps := tbl.Maps()

	if len(maps) != 2 {
		t.Fatalf("len(Maps()) = %d, want 2", len(maps))
	}
	if maps[0]["hhldCnt"] != int64(120) {
		t.Errorf("maps[0][hhldCnt] = %v, want 120", maps[0]["hhldCnt"])
	}
	if v, ok := maps[1]["platArea"]; !ok || v != nil {
		t.Errorf("maps[1][platArea] = %v (present %v), want nil present", v, ok)
	}
}
