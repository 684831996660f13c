package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/gomutex/godocx"
	gdocx "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

// A4 portrait with 2 cm margins.
const (
	pageWidth  = 11906
	pageHeight = 16838
	pageMargin = 1134

	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// Write serializes the document as a .docx package.
func (d *Document) Write(w io.Writer) error {
	root, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	d.applyDefaults(root)

	body := root.Document.Body
	for _, b := range d.Blocks {
		switch b := b.(type) {
		case *Paragraph:
			*root.AddEmptyParagraph().GetCT() = *b.toCT()
		case *Table:
			if err := appendTable(body, b.toCT()); err != nil {
				return fmt.Errorf("add table: %w", err)
			}
		}
	}
	// A body must not end with a table.
	if n := len(d.Blocks); n > 0 {
		if _, ok := d.Blocks[n-1].(*Table); ok {
			root.AddEmptyParagraph()
		}
	}

	body.SectPr = &ctypes.SectionProp{
		PageSize: &ctypes.PageSize{Width: uptr(pageWidth), Height: uptr(pageHeight)},
		PageMargin: &ctypes.PageMargin{
			Top: iptr(pageMargin), Right: iptr(pageMargin), Bottom: iptr(pageMargin), Left: iptr(pageMargin),
			Header: iptr(851), Footer: iptr(992), Gutter: iptr(0),
		},
	}
	return root.Write(w)
}

func (d *Document) applyDefaults(root *gdocx.RootDoc) {
	if root.DocStyles == nil {
		return
	}
	rp := &ctypes.RunProperty{}
	if d.Font != "" {
		rp.Fonts = fonts(d.Font)
	}
	if d.FontSize > 0 {
		rp.Size = ctypes.NewFontSize(uint64(d.FontSize))
		rp.SizeCs = ctypes.NewFontSizeCS(uint64(d.FontSize))
	}
	line := 240
	rule := stypes.LineSpacingRuleAuto
	root.DocStyles.DocDefaults = &ctypes.DocDefault{
		RunProp: &ctypes.RunPropDefault{RunProp: rp},
		ParaProp: &ctypes.ParaPropDefault{ParaProp: &ctypes.ParagraphProp{
			Spacing: &ctypes.Spacing{After: uptr(0), Line: &line, LineRule: &rule},
		}},
	}
}

// appendTable adds tbl to the end of body. godocx does not expose the
// complex type behind its table wrapper, so the table is decoded into the
// body from its own markup.
func appendTable(body *gdocx.Body, tbl *ctypes.Table) error {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{
		Name: xml.Name{Local: "w:body"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:w"}, Value: nsMain}},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := tbl.MarshalXML(enc, xml.StartElement{}); err != nil {
		return err
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}

	dec := xml.NewDecoder(&buf)
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	se, ok := tok.(xml.StartElement)
	if !ok {
		return fmt.Errorf("unexpected token %T", tok)
	}
	return body.UnmarshalXML(dec, se)
}

func (p *Paragraph) toCT() *ctypes.Paragraph {
	ct := &ctypes.Paragraph{}
	if p.Align != AlignLeft || p.SpaceBefore > 0 || p.SpaceAfter > 0 {
		prop := &ctypes.ParagraphProp{}
		if p.Align != AlignLeft {
			prop.Justification = ctypes.NewGenSingleStrVal(stypes.Justification(p.Align))
		}
		if p.SpaceBefore > 0 || p.SpaceAfter > 0 {
			prop.Spacing = &ctypes.Spacing{Before: uptr(p.SpaceBefore), After: uptr(p.SpaceAfter)}
		}
		ct.Property = prop
	}
	for _, r := range p.Runs {
		ct.Children = append(ct.Children, ctypes.ParagraphChild{Run: r.toCT()})
	}
	return ct
}

func (r *Run) toCT() *ctypes.Run {
	ct := &ctypes.Run{Property: r.Style.toCT()}
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			ct.Children = append(ct.Children, ctypes.RunChild{Break: &ctypes.Break{}})
		}
		if line != "" {
			space := ctypes.TextSpacePreserve
			ct.Children = append(ct.Children, ctypes.RunChild{Text: &ctypes.Text{Text: line, Space: &space}})
		}
	}
	return ct
}

func (s RunStyle) toCT() *ctypes.RunProperty {
	if s == (RunStyle{}) {
		return nil
	}
	prop := &ctypes.RunProperty{}
	if s.Font != "" {
		prop.Fonts = fonts(s.Font)
	}
	if s.Bold {
		prop.Bold = ctypes.OnOffFromBool(true)
		prop.BoldCS = ctypes.OnOffFromBool(true)
	}
	if s.Color != "" {
		prop.Color = ctypes.NewColor(s.Color)
	}
	if s.Size > 0 {
		prop.Size = ctypes.NewFontSize(uint64(s.Size))
		prop.SizeCs = ctypes.NewFontSizeCS(uint64(s.Size))
	}
	if s.Highlight != "" {
		prop.Highlight = ctypes.NewCTString(s.Highlight)
	}
	return prop
}

func (t *Table) toCT() *ctypes.Table {
	ct := &ctypes.Table{
		TableProp: ctypes.TableProp{
			Style:  ctypes.NewCTString("TableGrid"),
			Width:  ctypes.NewTableWidth(0, stypes.TableWidthAuto),
			Layout: ctypes.NewTableLayout(stypes.TableLayoutFixed),
		},
	}
	for _, w := range t.Widths {
		ct.Grid.Col = append(ct.Grid.Col, ctypes.Column{Width: uptr(w)})
	}
	for _, r := range t.Rows {
		row := &ctypes.Row{}
		if r.MinHeight > 0 {
			row.Property = &ctypes.RowProperty{
				Height: ctypes.NewTableRowHeight(r.MinHeight, stypes.HeightRuleAtLeast),
			}
		}
		for i, width := range t.cellWidths(r) {
			row.Contents = append(row.Contents, ctypes.TRCellContent{Cell: r.Cells[i].toCT(width)})
		}
		ct.RowContents = append(ct.RowContents, ctypes.RowContent{Row: row})
	}
	return ct
}

func (c *Cell) toCT(width int) *ctypes.Cell {
	prop := &ctypes.CellProperty{Width: ctypes.NewTableWidth(width, stypes.TableWidthDxa)}
	if c.Span > 1 {
		prop.GridSpan = ctypes.NewDecimalNum(c.Span)
	}
	switch c.Merge {
	case VMergeRestart:
		prop.VMerge = ctypes.NewGenOptStrVal(stypes.MergeCellRestart)
	case VMergeContinue:
		prop.VMerge = &ctypes.GenOptStrVal[stypes.MergeCell]{}
	}
	if c.Fill != "" {
		prop.Shading = ctypes.NewShading().SetFill(c.Fill)
	}
	if c.Center {
		prop.VAlign = ctypes.NewGenSingleStrVal(stypes.VerticalJcCenter)
	}

	ct := &ctypes.Cell{Property: prop}
	for _, p := range c.Paragraphs {
		ct.Contents = append(ct.Contents, ctypes.TCBlockContent{Paragraph: p.toCT()})
	}
	return ct
}

func fonts(font string) *ctypes.RunFonts {
	return &ctypes.RunFonts{Ascii: font, HAnsi: font, EastAsia: font, CS: font}
}

func uptr(v int) *uint64 {
	u := uint64(v)
	return &u
}

func iptr(v int) *int {
	return &v
}
