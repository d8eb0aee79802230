package extract

import (
	"reflect"
	"testing"

	"github.com/ginjaninja78/quotation-extractor/internal/diag"
	"github.com/ginjaninja78/quotation-extractor/internal/grid"
	"github.com/ginjaninja78/quotation-extractor/internal/schema"
	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

// =============================================================================
// PRE_FILE ROW BUILDERS
// =============================================================================

func header() []any { return []any{"COD", "POS", "CODICE", "DESCRIZIONE", "QTA", "LISTINO", "TOTALE"} }
func sentinel() []any { return []any{"COD"} }
func blank() []any { return []any{} }

func group(code, desc string) []any { return []any{nil, nil, code, desc, 1} }

func typeRow(code, title string) []any { return []any{"X", nil, code, title} }

func subtype(code, desc string) []any { return []any{nil, nil, code, desc} }

func item(code string, qty, list, total any) []any {
	return []any{nil, 10, code, "item " + code, qty, list, total}
}

func blanks(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = blank()
	}
	return rows
}

func rows(parts ...any) grid.Grid {
	var out [][]any
	for _, p := range parts {
		switch v := p.(type) {
		case []any:
			out = append(out, v)
		case [][]any:
			out = append(out, v...)
		}
	}
	return grid.FromValues(out)
}

func preExtractor() *Extractor {
	return New(schema.PreFileSchema(), DefaultOptions())
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func column(items []types.Item, pick func(types.Item) *string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = deref(pick(it))
	}
	return out
}

// =============================================================================
// TESTS
// =============================================================================

func TestDetailsTwoCodBlocks(t *testing.T) {
	g := rows(
		header(),
		group("G1", "Group one"),
		typeRow("T1", "Type one"),
		item("I1", 1, 10, 10),
		item("I2", 2, 10, 20),
		blank(),
		typeRow("T2", "Type two"),
		item("I3", 3, 10, 30),
		blanks(3),
		sentinel(),
		group("G2", "Group two"),
		typeRow("T3", "Type three"),
		item("I4", 4, 10, 40),
		item("I5", 5, 10, 50),
	)

	items, warnings := preExtractor().Details("OFFER1", g)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}

	groups := column(items, func(it types.Item) *string { return it.GroupCode })
	if want := []string{"G1", "G1", "G1", "G2", "G2"}; !reflect.DeepEqual(groups, want) {
		t.Errorf("group codes = %v, want %v", groups, want)
	}
	typesSeen := column(items, func(it types.Item) *string { return it.TypeCode })
	if want := []string{"T1", "T1", "T2", "T3", "T3"}; !reflect.DeepEqual(typesSeen, want) {
		t.Errorf("type codes = %v, want %v", typesSeen, want)
	}
}

func TestDetailsSingleBlockSharesHierarchy(t *testing.T) {
	const n = 6
	parts := []any{header(), group("G1", "Group"), typeRow("T1", "Type"), subtype("S1", "Sub")}
	for i := 0; i < n; i++ {
		parts = append(parts, item("I", 1, 1, 1))
	}

	items, _ := preExtractor().Details("OFFER1", rows(parts...))
	if len(items) != n {
		t.Fatalf("len(items) = %d, want %d", len(items), n)
	}
	for i, it := range items {
		got := []string{deref(it.GroupCode), deref(it.GroupDesc), deref(it.TypeCode), deref(it.TypeTitle), deref(it.SubtypeCode), deref(it.SubtypeDesc)}
		want := []string{"G1", "Group", "T1", "Type", "S1", "Sub"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("item %d hierarchy = %v, want %v", i, got, want)
		}
	}
}

func TestDetailsHierarchyResets(t *testing.T) {
	g := rows(
		header(),
		item("orphan", 1, 1, 1),
		group("G1", "Group one"),
		typeRow("T1", "Type one"),
		subtype("S1", "Sub one"),
		item("A", 1, 1, 1),
		typeRow("T2", "Type two"),
		item("B", 1, 1, 1),
		subtype("S2", "Sub two"),
		item("C", 1, 1, 1),
		group("G2", "Group two"),
		item("D", 1, 1, 1),
	)

	items, _ := preExtractor().Details("OFFER1", g)

	tests := []struct {
		code                  string
		group, typ, subtypeID string
	}{
		{"orphan", "<nil>", "<nil>", "<nil>"},
		{"A", "G1", "T1", "S1"},
		{"B", "G1", "T2", "<nil>"},
		{"C", "G1", "T2", "S2"},
		{"D", "G2", "<nil>", "<nil>"},
	}

	if len(items) != len(tests) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			it := items[i]
			if it.Code != tt.code {
				t.Fatalf("code = %q, want %q", it.Code, tt.code)
			}
			if got := deref(it.GroupCode); got != tt.group {
				t.Errorf("group = %s, want %s", got, tt.group)
			}
			if got := deref(it.TypeCode); got != tt.typ {
				t.Errorf("type = %s, want %s", got, tt.typ)
			}
			if got := deref(it.SubtypeCode); got != tt.subtypeID {
				t.Errorf("subtype = %s, want %s", got, tt.subtypeID)
			}
		})
	}
}

func TestDetailsBlankRunBoundary(t *testing.T) {
	tests := []struct {
		name      string
		gap       int
		wantItems int
	}{
		{"nine blank rows are skipped", 9, 2},
		{"ten blank rows end the table", 10, 1},
		{"eleven blank rows end the table", 11, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rows(
				header(),
				group("G1", "Group"),
				item("I1", 1, 1, 1),
				blanks(tt.gap),
				item("I2", 1, 1, 1),
			)
			items, _ := preExtractor().Details("OFFER1", g)
			if len(items) != tt.wantItems {
				t.Errorf("len(items) = %d, want %d", len(items), tt.wantItems)
			}
		})
	}
}

func TestDetailsBlankRunBeforeFirstItem(t *testing.T) {
	tests := []struct {
		name string
		gap  int
	}{
		{"ten blank rows after the header", 10},
		{"fifteen blank rows after the header", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rows(
				header(),
				blanks(tt.gap),
				group("G1", "Group"),
				typeRow("T1", "Type"),
				item("I1", 1, 1, 1),
				blanks(10),
				item("I2", 1, 1, 1),
			)
			items, warnings := preExtractor().Details("OFFER1", g)
			if len(items) != 1 || items[0].Code != "I1" {
				t.Fatalf("items = %v, want only I1", column(items, func(it types.Item) *string { return &it.Code }))
			}
			if got := deref(items[0].GroupCode); got != "G1" {
				t.Errorf("GroupCode = %q, want G1", got)
			}
			if len(warnings) != 0 {
				t.Errorf("warnings = %v, want none", warnings)
			}
		})
	}
}

func TestDetailsBlankRunOverride(t *testing.T) {
	g := rows(header(), item("I1", 1, 1, 1), blanks(3), item("I2", 1, 1, 1))

	ex := New(schema.PreFileSchema(), Options{BlankRunLength: 3})
	items, _ := ex.Details("OFFER1", g)
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1 with a 3-row blank run", len(items))
	}
	if ex.Options.BlankRunWidth != DefaultBlankRunWidth {
		t.Errorf("BlankRunWidth = %d, want default %d", ex.Options.BlankRunWidth, DefaultBlankRunWidth)
	}
}

func TestDetailsBlankRunIgnoresColumnsBeyondWidth(t *testing.T) {
	wide := make([]any, 12)
	wide[11] = "note"

	parts := []any{header(), item("I1", 1, 1, 1)}
	for i := 0; i < 10; i++ {
		parts = append(parts, wide)
	}
	parts = append(parts, item("I2", 1, 1, 1))

	items, _ := preExtractor().Details("OFFER1", rows(parts...))
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
}

func TestDetailsNoSentinel(t *testing.T) {
	g := rows(group("G1", "Group"), item("I1", 1, 1, 1))

	items, warnings := preExtractor().Details("OFFER1", g)
	if items == nil || len(items) != 0 {
		t.Errorf("items = %#v, want empty non-nil slice", items)
	}
	if diag.Count(warnings, diag.DetailTableMissing) != 1 {
		t.Errorf("warnings = %v, want one detail_table_missing", warnings)
	}
}

func TestDetailsUnitPrice(t *testing.T) {
	g := rows(
		header(),
		item("A", 4, 3, 10),
		item("B", 0, 3, 10),
		item("C", -2, 3, 10),
		item("D", 3, 1, 1),
	)

	items, _ := preExtractor().Details("OFFER1", g)
	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(items))
	}
	for _, it := range items {
		want := 0.0
		if it.Quantity > 0 {
			want = it.TotalPrice / it.Quantity
		}
		if it.UnitPrice != want {
			t.Errorf("item %s unit price = %v, want %v", it.Code, it.UnitPrice, want)
		}
	}
	if items[0].UnitPrice != 2.5 {
		t.Errorf("item A unit price = %v, want 2.5", items[0].UnitPrice)
	}
}

func TestDetailsCoercionFailure(t *testing.T) {
	g := rows(
		header(),
		item("A", "abc", " 12.5 ", "n/a"),
	)

	items, warnings := preExtractor().Details("OFFER1", g)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	it := items[0]
	if it.Quantity != 0 || it.TotalPrice != 0 || it.UnitPrice != 0 {
		t.Errorf("failed fields should be 0, got qty=%v total=%v unit=%v", it.Quantity, it.TotalPrice, it.UnitPrice)
	}
	if it.ListPrice != 12.5 {
		t.Errorf("list price = %v, want 12.5 from padded text", it.ListPrice)
	}

	if len(warnings) != 2 {
		t.Fatalf("len(warnings) = %d, want 2: %v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Kind != diag.NumericCoercion || w.Field != "quantity" || w.Row != 2 || w.Column != 5 || w.Value != "abc" {
		t.Errorf("first warning = %+v", w)
	}
	if warnings[1].Field != "total_price" {
		t.Errorf("second warning field = %q, want total_price", warnings[1].Field)
	}
}

func TestDetailsSkipsBlankDescriptionAndNoise(t *testing.T) {
	g := rows(
		header(),
		group("G1", "Group"),
		[]any{nil, 5, "I0", nil, 1, 1, 1},
		[]any{"note only"},
		[]any{nil, nil, nil, "free text"},
		item("I1", 1, 1, 1),
	)

	items, warnings := preExtractor().Details("OFFER1", g)
	if len(items) != 1 || items[0].Code != "I1" {
		t.Errorf("items = %+v, want only I1", items)
	}
	if len(warnings) != 0 {
		t.Errorf("unrecognized rows should not warn, got %v", warnings)
	}
}

func TestDetailsProfittabilita(t *testing.T) {
	apRow := func(values map[int]any) []any {
		r := make([]any, 14)
		for c, v := range values {
			r[c] = v
		}
		return r
	}

	g := rows(
		[]any{"COD", "PRIORITY_ORDER", "PRIORITY"},
		apRow(map[int]any{2: 0, 7: "G1", 9: "Group one"}),
		apRow(map[int]any{0: "W100", 2: 1, 9: "Type one"}),
		apRow(map[int]any{2: 2, 7: "S1", 9: "Sub one"}),
		apRow(map[int]any{2: 3, 6: 10, 7: "I1", 9: "Item", 10: 2, 12: 5, 13: 10}),
	)

	ex := New(schema.ProfittabilitaSchema(), DefaultOptions())
	items, warnings := ex.Details("NEW_OFFER1", g)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	it := items[0]
	got := []string{deref(it.GroupCode), deref(it.TypeCode), deref(it.TypeTitle), deref(it.SubtypeCode)}
	want := []string{"G1", "W100", "Type one", "S1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hierarchy = %v, want %v", got, want)
	}
	if it.UnitPrice != 5 || it.ListPrice != 5 {
		t.Errorf("prices unit=%v list=%v, want 5 and 5", it.UnitPrice, it.ListPrice)
	}
}

func TestDetailsIdempotent(t *testing.T) {
	g := rows(
		header(),
		group("G1", "Group"),
		typeRow("T1", "Type"),
		item("I1", 2, 3, "bad"),
		item("I2", 2, 3, 6),
	)

	ex := preExtractor()
	items1, warn1 := ex.Details("OFFER1", g)
	items2, warn2 := ex.Details("OFFER1", g)

	if !reflect.DeepEqual(items1, items2) {
		t.Error("repeated extraction produced different items")
	}
	if !reflect.DeepEqual(warn1, warn2) {
		t.Error("repeated extraction produced different warnings")
	}
}

func TestFindTableStart(t *testing.T) {
	tests := []struct {
		name   string
		g      grid.Grid
		want   int
		wantOK bool
	}{
		{"first row", rows(sentinel(), blank()), 1, true},
		{"padded sentinel", rows(blank(), []any{" COD "}), 2, true},
		{"sentinel in other column", rows([]any{nil, "COD"}), 0, false},
		{"lowercase", rows([]any{"cod"}), 0, false},
		{"empty grid", rows(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindTableStart(tt.g)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FindTableStart() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
