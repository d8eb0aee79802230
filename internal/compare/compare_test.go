package compare

import (
	"testing"

	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

func rec(code string, direct, list *float64) types.WbeSummaryRecord {
	return types.WbeSummaryRecord{Code: code, Description: code + " desc", DirectCost: direct, ListPrice: list}
}

var f = types.FloatPtr

func TestSummaries(t *testing.T) {
	left := []types.WbeSummaryRecord{
		rec("W2", f(100), f(200)),
		rec("W1", f(0.1), nil),
		rec("W3", f(10), f(10)),
		rec("W1", f(5), f(5)),
	}
	right := []types.WbeSummaryRecord{
		rec("W1", f(0.3), f(1)),
		rec("W2", f(90), f(200)),
		rec("W4", nil, f(7)),
	}

	fields := DefaultFields()[:2]
	diffs := Summaries(left, right, fields)

	type want struct {
		code       string
		occurrence int
		status     Change
		direct     Change
		list       Change
	}
	expected := []want{
		{"W1", 0, Unchanged, Increase, Added},
		{"W1", 1, Removed, Removed, Removed},
		{"W2", 0, Unchanged, Decrease, Unchanged},
		{"W3", 0, Removed, Removed, Removed},
		{"W4", 0, Added, Absent, Added},
	}

	if len(diffs) != len(expected) {
		t.Fatalf("len(diffs) = %d, want %d", len(diffs), len(expected))
	}

	for i, w := range expected {
		d := diffs[i]
		t.Run(w.code, func(t *testing.T) {
			if d.Code != w.code || d.Occurrence != w.occurrence || d.Status != w.status {
				t.Errorf("row = %s#%d %q, want %s#%d %q", d.Code, d.Occurrence, d.Status, w.code, w.occurrence, w.status)
			}
			if d.Fields[0].Change != w.direct {
				t.Errorf("direct change = %q, want %q", d.Fields[0].Change, w.direct)
			}
			if d.Fields[1].Change != w.list {
				t.Errorf("list change = %q, want %q", d.Fields[1].Change, w.list)
			}
		})
	}

	// 0.3 - 0.1 is exactly 0.2 in decimal arithmetic.
	delta := diffs[0].Fields[0].Delta
	if delta == nil || delta.String() != "0.2" {
		t.Errorf("delta = %v, want 0.2", delta)
	}
	if diffs[4].Fields[1].Delta != nil {
		t.Error("delta of an added value should be nil")
	}
}

func TestChanged(t *testing.T) {
	same := Summaries(
		[]types.WbeSummaryRecord{rec("W1", f(1), nil)},
		[]types.WbeSummaryRecord{rec("W1", f(1), nil)},
		nil,
	)
	if len(same) != 1 || same[0].Changed() {
		t.Errorf("identical rows should not be changed: %+v", same)
	}
	if len(same[0].Fields) != len(DefaultFields()) {
		t.Errorf("nil fields should fall back to the defaults")
	}

	moved := Summaries(nil, []types.WbeSummaryRecord{rec("W1", nil, nil)}, nil)
	if !moved[0].Changed() {
		t.Error("added row should be changed")
	}
}
