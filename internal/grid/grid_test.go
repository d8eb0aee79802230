package grid

import (
	"errors"
	"testing"
)

func TestCellBlankAndText(t *testing.T) {
	tests := []struct {
		name      string
		cell      Cell
		wantBlank bool
		wantText  string
	}{
		{"empty", Blank(), true, ""},
		{"whitespace string", String("   "), true, ""},
		{"padded string", String("  COD "), false, "COD"},
		{"zero number", Float(0), false, "0"},
		{"fraction", Float(12.5), false, "12.5"},
		{"negative", Float(-3), false, "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.IsBlank(); got != tt.wantBlank {
				t.Errorf("IsBlank() = %v, want %v", got, tt.wantBlank)
			}
			if got := tt.cell.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestGridOutOfRangeReadsBlank(t *testing.T) {
	g := FromValues([][]any{
		{"a", 1},
		{nil},
	})

	if !g.Cell(5, 0).IsBlank() {
		t.Error("row beyond grid should be blank")
	}
	if !g.Cell(1, 3).IsBlank() {
		t.Error("column beyond ragged row should be blank")
	}
	if !g.Cell(0, -1).IsBlank() {
		t.Error("negative column should be blank")
	}
	if g.Cell(0, 1).Kind != Number {
		t.Errorf("int value should become Number, got %v", g.Cell(0, 1).Kind)
	}
}

func TestRowBlank(t *testing.T) {
	g := FromValues([][]any{
		{nil, nil, nil, "x"},
		{nil, " ", nil},
	})

	if g.RowBlank(0, 4) {
		t.Error("row 0 has a value in column 3")
	}
	if !g.RowBlank(0, 3) {
		t.Error("row 0 is blank within the first three columns")
	}
	if !g.RowBlank(1, 9) {
		t.Error("whitespace-only row should be blank")
	}
}

func TestMemoryWorkbook(t *testing.T) {
	wb := NewMemory().
		Add("B", FromValues([][]any{{"b"}})).
		Add("A", FromValues([][]any{{"a"}})).
		Add("B", FromValues([][]any{{"b2"}}))

	sheets := wb.ListSheets()
	if len(sheets) != 2 || sheets[0] != "B" || sheets[1] != "A" {
		t.Fatalf("ListSheets() = %v, want [B A]", sheets)
	}

	g, err := wb.ReadSheet("B")
	if err != nil {
		t.Fatalf("ReadSheet(B) error = %v", err)
	}
	if g.Cell(0, 0).Text() != "b2" {
		t.Errorf("replaced sheet content = %q, want b2", g.Cell(0, 0).Text())
	}

	if _, err := wb.ReadSheet("missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("ReadSheet(missing) error = %v, want ErrSheetNotFound", err)
	}
	if !HasSheet(wb, "A") || HasSheet(wb, "a") {
		t.Error("HasSheet should match names exactly")
	}
}
