package xmlwriter

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ginjaninja78/quotation-extractor/internal/table"
	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

func sampleTables() []*table.Table {
	detail := table.Detail([]types.Item{{
		Code: "I1", Description: "Pump & valve <DN50>", Quantity: 2, TotalPrice: 10, UnitPrice: 5, ListPrice: 6.25,
		GroupCode: types.StringPtr("G1"),
	}})
	summary := table.Summary(nil)
	return []*table.Table{detail, summary}
}

func TestGenerate(t *testing.T) {
	out, err := Generate(sampleTables(), Metadata{Source: "offer.xlsx", Variant: "PRE_FILE", DetailSheet: "OFFER1"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	doc := string(out)

	wants := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<quotation source="offer.xlsx" variant="PRE_FILE" detailSheet="OFFER1">`,
		`  <table name="detail" rows="1">`,
		`    <row n="1">`,
		`      <wbe_item_description>Pump &amp; valve &lt;DN50&gt;</wbe_item_description>`,
		`      <wbe_item_quantity>2</wbe_item_quantity>`,
		`      <wbe_item_list_price>6.25</wbe_item_list_price>`,
		`      <wbe_group_code>G1</wbe_group_code>`,
		`      <wbe_type_code nil="true"/>`,
		`  <table name="summary" rows="0"/>`,
		`</quotation>`,
	}
	for _, want := range wants {
		if !strings.Contains(doc, want) {
			t.Errorf("output missing %q\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "summarySheet") {
		t.Error("empty metadata fields should be omitted")
	}

	// The output must be well-formed.
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("output is not well-formed: %v", err)
		}
	}
}

func TestGenerateWithOptions(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.IncludeXMLDeclaration = false
	opts.RootElement = "offer"
	opts.RootAttributes = map[string]string{"xmlns": "urn:quotation", "a": "1"}

	out, err := GenerateWithOptions(nil, Metadata{}, opts)
	if err != nil {
		t.Fatalf("GenerateWithOptions() error = %v", err)
	}
	if got, want := string(out), "<offer a=\"1\" xmlns=\"urn:quotation\"/>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestGenerateRejectsRaggedRows(t *testing.T) {
	bad := &table.Table{Name: "broken", Columns: []string{"a", "b"}, Rows: [][]any{{"x"}}}
	if _, err := Generate([]*table.Table{bad}, Metadata{}); err == nil {
		t.Error("Generate() should fail on a row with the wrong number of cells")
	}
}
