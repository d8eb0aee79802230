// =============================================================================
// Quotation Extractor - XML Writer Module
// =============================================================================
//
// This module serializes the assembled output tables of one workbook to XML.
//
// XML STRUCTURE:
//   The generated XML follows this nesting pattern:
//
//   <quotation source="offer.xlsx" variant="PRE_FILE" ...>  <!-- Root element -->
//     <table name="detail" rows="2">                         <!-- One per table -->
//       <row n="1">                                          <!-- 1-based index -->
//         <wbe_item_code>I1</wbe_item_code>
//         <wbe_item_quantity>2</wbe_item_quantity>
//         <wbe_subtype_code nil="true"/>                     <!-- null cell -->
//       </row>
//     </table>
//     <table name="summary" rows="0"/>
//   </quotation>
//
//   Column order inside a row is the table's fixed column order. Numbers are
//   written in their shortest exact decimal form.
//
// CUSTOMIZATION:
//   - Element and attribute names via GenerateOptions
//   - Extra root attributes (e.g. namespaces) via RootAttributes
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/ginjaninja78/quotation-extractor/internal/table"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootElement is the name of the document element.
	// Default: "quotation"
	RootElement string

	// TableElement and RowElement name the table and row wrappers.
	// Defaults: "table", "row"
	TableElement string
	RowElement   string

	// RowIndexAttribute is the attribute carrying the 1-based row index.
	// Default: "n"
	RowIndexAttribute string

	// NilAttribute is set to "true" on elements whose cell is null.
	// Default: "nil"
	NilAttribute string

	// RootAttributes are additional attributes for the root element, written
	// in key order.
	RootAttributes map[string]string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootElement:           "quotation",
		TableElement:          "table",
		RowElement:            "row",
		RowIndexAttribute:     "n",
		NilAttribute:          "nil",
		RootAttributes:        make(map[string]string),
	}
}

// Metadata describes the workbook the tables were extracted from.
type Metadata struct {
	Source       string
	Variant      string
	DetailSheet  string
	SummarySheet string
	RunID        string
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML document from the output tables.
//
// PARAMETERS:
//   - tables: The assembled tables, written in the given order.
//   - meta: Source workbook metadata, written as root attributes.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if generation fails.
func Generate(tables []*table.Table, meta Metadata) ([]byte, error) {
	return GenerateWithOptions(tables, meta, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML document with custom options.
func GenerateWithOptions(tables []*table.Table, meta Metadata, options GenerateOptions) ([]byte, error) {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	root, err := buildDocument(tables, meta, options)
	if err != nil {
		return nil, fmt.Errorf("failed to build XML document: %w", err)
	}

	writeElement(&buffer, root, options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// buildDocument constructs the XML element tree.
func buildDocument(tables []*table.Table, meta Metadata, options GenerateOptions) (XMLElement, error) {
	root := XMLElement{XMLName: xml.Name{Local: options.RootElement}}

	for _, a := range []xml.Attr{
		attr("source", meta.Source),
		attr("variant", meta.Variant),
		attr("detailSheet", meta.DetailSheet),
		attr("summarySheet", meta.SummarySheet),
		attr("runId", meta.RunID),
	} {
		if a.Value != "" {
			root.Attributes = append(root.Attributes, a)
		}
	}

	keys := make([]string, 0, len(options.RootAttributes))
	for k := range options.RootAttributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		root.Attributes = append(root.Attributes, attr(k, options.RootAttributes[k]))
	}

	for _, t := range tables {
		el, err := buildTableElement(t, options)
		if err != nil {
			return XMLElement{}, err
		}
		root.Children = append(root.Children, el)
	}

	return root, nil
}

// buildTableElement converts one table into a <table> element.
func buildTableElement(t *table.Table, options GenerateOptions) (XMLElement, error) {
	el := XMLElement{
		XMLName: xml.Name{Local: options.TableElement},
		Attributes: []xml.Attr{
			attr("name", t.Name),
			attr("rows", strconv.Itoa(t.Len())),
		},
	}

	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return XMLElement{}, fmt.Errorf("table %s row %d has %d cells, want %d", t.Name, i+1, len(row), len(t.Columns))
		}

		rowEl := XMLElement{
			XMLName:    xml.Name{Local: options.RowElement},
			Attributes: []xml.Attr{attr(options.RowIndexAttribute, strconv.Itoa(i+1))},
		}

		for c, value := range row {
			cell := XMLElement{XMLName: xml.Name{Local: t.Columns[c]}}
			if value == nil {
				cell.Attributes = []xml.Attr{attr(options.NilAttribute, "true")}
			} else {
				cell.Value = formatValue(value)
			}
			rowEl.Children = append(rowEl.Children, cell)
		}

		el.Children = append(el.Children, rowEl)
	}

	return el, nil
}

// formatValue renders a table cell as text.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	// Self-closing tag.
	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes text for use in element content and attribute values.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	if err := xml.EscapeText(&buffer, []byte(s)); err != nil {
		return s
	}
	return buffer.String()
}
