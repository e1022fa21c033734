package normalize

import (
	"errors"
	"reflect"
	"testing"

	"publicdatareader/internal/envelope"
	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/registry"
	"publicdatareader/internal/table"
)

func aptTrade(t *testing.T) registry.EndpointSpec {
	t.Helper()
	spec, err := registry.Resolve("아파트", "매매")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return spec
}

func titleLedger(t *testing.T) registry.EndpointSpec {
	t.Helper()
	spec, err := registry.ResolveLedger("표제부")
	if err != nil {
		t.Fatalf("ResolveLedger() error = %v", err)
	}
	return spec
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		typ     table.ColumnType
		raw     string
		want    any
		wantErr bool
	}{
		{name: "thousands separators", typ: table.TypeInteger, raw: "1,234,567", want: int64(1234567)},
		{name: "padded amount", typ: table.TypeInteger, raw: "    82,500", want: int64(82500)},
		{name: "negative floor", typ: table.TypeInteger, raw: "-1", want: int64(-1)},
		{name: "full-width digits", typ: table.TypeInteger, raw: "２０２３", want: int64(2023)},
		{name: "blank integer", typ: table.TypeInteger, raw: "   ", want: nil},
		{name: "empty integer", typ: table.TypeInteger, raw: "", want: nil},
		{name: "non-numeric integer", typ: table.TypeInteger, raw: "12a", wantErr: true},
		{name: "float", typ: table.TypeFloat, raw: " 84.97 ", want: 84.97},
		{name: "blank float", typ: table.TypeFloat, raw: "", want: nil},
		{name: "non-numeric float", typ: table.TypeFloat, raw: "n/a", wantErr: true},
		{name: "NaN float", typ: table.TypeFloat, raw: "NaN", wantErr: true},
		{name: "text is trimmed", typ: table.TypeText, raw: " 사직동 ", want: "사직동"},
		{name: "blank text stays empty", typ: table.TypeText, raw: " ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.typ, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Coerce(%q) error = nil, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Coerce(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_Transaction(t *testing.T) {
	spec := aptTrade(t)
	records := []envelope.Record{
		envelope.NewRecord("지역코드", "11110", "년", "2023", "월", "1", "거래금액", "   82,500", "전용면적", "84.97", "법정동", " 사직동"),
		envelope.NewRecord("지역코드", "11110", "년", "2023", "월", "1", "거래금액", "120,000", "층", ""),
	}

	tbl, err := Normalize(records, spec, false)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	names := tbl.Names()
	if len(names) != len(spec.ExpectedColumns) {
		t.Fatalf("len(columns) = %d, want %d", len(names), len(spec.ExpectedColumns))
	}
	for i, name := range spec.ExpectedColumns {
		if names[i] != name {
			t.Errorf("column %d = %q, want %q", i, names[i], name)
		}
	}

	checks := []struct {
		row  int
		col  string
		want any
	}{
		{0, "거래금액", int64(82500)},
		{1, "거래금액", int64(120000)},
		{0, "전용면적", 84.97},
		{0, "법정동", "사직동"},
		{0, "년", int64(2023)},
		{1, "층", nil},
		{1, "법정동", nil},
	}
	for _, c := range checks {
		got, ok := tbl.Value(c.row, c.col)
		if !ok {
			t.Errorf("Value(%d, %q) not found", c.row, c.col)
			continue
		}
		if got != c.want {
			t.Errorf("Value(%d, %q) = %#v, want %#v", c.row, c.col, got, c.want)
		}
	}
}

func TestNormalize_CoercionErrorNamesColumnAndRow(t *testing.T) {
	spec := aptTrade(t)
	records := []envelope.Record{
		envelope.NewRecord("지역코드", "11110", "년", "2023", "월", "1", "거래금액", "1,000"),
		envelope.NewRecord("지역코드", "11110", "년", "2023", "월", "1", "거래금액", "abc"),
	}

	_, err := Normalize(records, spec, false)
	if err == nil {
		t.Fatal("Normalize() error = nil, want error")
	}

	fe, ok := err.(*fetcher.FetchError)
	if !ok {
		t.Fatalf("error type = %T, want *fetcher.FetchError", err)
	}
	if fe.Type != fetcher.ErrorTypeTypeCoercion {
		t.Errorf("Type = %v, want %v", fe.Type, fetcher.ErrorTypeTypeCoercion)
	}
	if fe.Column != "거래금액" || fe.Row != 1 {
		t.Errorf("location = (%q, %d), want (거래금액, 1)", fe.Column, fe.Row)
	}
}

func TestNormalize_RequiredFieldMissing(t *testing.T) {
	spec := titleLedger(t)
	records := []envelope.Record{
		envelope.NewRecord("mgmBldrgstPk", "11110-100", "bldNm", "A"),
		envelope.NewRecord("bldNm", "B"),
	}

	_, err := Normalize(records, spec, true)
	if !fetcher.IsType(err, fetcher.ErrorTypeTypeCoercion) {
		t.Fatalf("Normalize() error = %v, want type_coercion", err)
	}
	fe := err.(*fetcher.FetchError)
	if fe.Column != "mgmBldrgstPk" || fe.Row != 1 {
		t.Errorf("location = (%q, %d), want (mgmBldrgstPk, 1)", fe.Column, fe.Row)
	}
}

func TestNormalize_EmptyRecords(t *testing.T) {
	for _, spec := range []registry.EndpointSpec{aptTrade(t), titleLedger(t)} {
		t.Run(spec.Slug, func(t *testing.T) {
			tbl, err := Normalize(nil, spec, false)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if tbl.Len() != 0 {
				t.Errorf("Len() = %d, want 0", tbl.Len())
			}
			names := tbl.Names()
			if len(names) != len(spec.ExpectedColumns) {
				t.Fatalf("columns = %v, want %v", names, spec.ExpectedColumns)
			}
			for i := range names {
				if names[i] != spec.ExpectedColumns[i] {
					t.Errorf("column %d = %q, want %q", i, names[i], spec.ExpectedColumns[i])
				}
			}
		})
	}
}

func TestNormalize_ExtraColumnsAppended(t *testing.T) {
	spec := aptTrade(t)
	records := []envelope.Record{
		envelope.NewRecord("지역코드", "11110", "년", "2023", "월", "1", "신규필드", "x"),
		envelope.NewRecord("다른필드", "y", "지역코드", "11110", "년", "2023", "월", "2", "신규필드", "z"),
	}

	tbl, err := Normalize(records, spec, false)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	names := tbl.Names()
	n := len(spec.ExpectedColumns)
	if len(names) != n+2 {
		t.Fatalf("len(columns) = %d, want %d", len(names), n+2)
	}
	if names[n] != "신규필드" || names[n+1] != "다른필드" {
		t.Errorf("extra columns = %v, want [신규필드 다른필드]", names[n:])
	}
	if v, _ := tbl.Value(0, "다른필드"); v != nil {
		t.Errorf("Value(0, 다른필드) = %#v, want nil", v)
	}
}

func TestNormalize_RenameRoundTrip(t *testing.T) {
	spec := titleLedger(t)
	records := []envelope.Record{
		envelope.NewRecord("mgmBldrgstPk", "11110-100", "bldNm", "청운빌딩", "hhldCnt", "12", "archArea", "150.5", "unknownCode", "?"),
	}

	renamed, err := Normalize(records, spec, true)
	if err != nil {
		t.Fatalf("Normalize(rename=true) error = %v", err)
	}
	plain, err := Normalize(records, spec, false)
	if err != nil {
		t.Fatalf("Normalize(rename=false) error = %v", err)
	}
	plain.Rename(spec.Labels)

	a, b := renamed.Headers(), plain.Headers()
	if len(a) != len(b) {
		t.Fatalf("headers differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("header %d = %q vs %q", i, a[i], b[i])
		}
	}

	label, _ := registry.Label("bldNm")
	if idx := renamed.Index("bldNm"); renamed.Columns[idx].Label != label {
		t.Errorf("bldNm label = %q, want %q", renamed.Columns[idx].Label, label)
	}
	if idx := renamed.Index("unknownCode"); renamed.Columns[idx].Label != "unknownCode" {
		t.Errorf("unknownCode label = %q, want unchanged", renamed.Columns[idx].Label)
	}

	// Renaming twice is a no-op
	before := renamed.Headers()
	renamed.Rename(spec.Labels)
	after := renamed.Headers()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("second Rename changed header %d: %q -> %q", i, before[i], after[i])
		}
	}

	if v, _ := renamed.Value(0, "hhldCnt"); v != int64(12) {
		t.Errorf("hhldCnt = %#v, want 12", v)
	}
	if v, _ := renamed.Value(0, "archArea"); v != 150.5 {
		t.Errorf("archArea = %#v, want 150.5", v)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	spec := titleLedger(t)
	records := []envelope.Record{
		envelope.NewRecord("mgmBldrgstPk", "11110-100", "bldNm", "청운빌딩", "hhldCnt", "1,024", "archArea", " ", "extraB", "b"),
		envelope.NewRecord("extraA", "a", "mgmBldrgstPk", "11110-101", "hhldCnt", "", "extraB", "c"),
	}

	for _, rename := range []bool{false, true} {
		first, err := Normalize(records, spec, rename)
		if err != nil {
			t.Fatalf("Normalize(rename=%v) error = %v", rename, err)
		}
		second, err := Normalize(records, spec, rename)
		if err != nil {
			t.Fatalf("Normalize(rename=%v) error = %v", rename, err)
		}

		if !reflect.DeepEqual(first.Columns, second.Columns) {
			t.Errorf("rename=%v: columns differ between runs", rename)
		}
		if !reflect.DeepEqual(first.Rows, second.Rows) {
			t.Errorf("rename=%v: rows = %v, then %v", rename, first.Rows, second.Rows)
		}

		if v, _ := first.Value(1, "hhldCnt"); v != nil {
			t.Errorf("rename=%v: hhldCnt = %#v, want nil", rename, v)
		}
		names := first.Names()
		if got := names[len(names)-2:]; got[0] != "extraB" || got[1] != "extraA" {
			t.Errorf("rename=%v: extra columns = %v, want [extraB extraA]", rename, got)
		}
	}
}

func TestNormalize_MissingFieldReportedInColumnOrder(t *testing.T) {
	spec := aptTrade(t)
	records := []envelope.Record{envelope.NewRecord("거래금액", "82,500")}

	var want string
	for _, col := range spec.ExpectedColumns {
		if spec.RequiredColumns[col] {
			want = col
			break
		}
	}
	if want == "" {
		t.Fatal("spec declares no required columns")
	}

	for i := 0; i < 20; i++ {
		_, err := Normalize(records, spec, false)
		var fe *fetcher.FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("Normalize() error = %v, want FetchError", err)
		}
		if fe.Column != want {
			t.Fatalf("run %d: missing column = %q, want %q", i, fe.Column, want)
		}
	}
}
