// Package docx models a small document body: paragraphs with formatted runs
// and grid tables with horizontal and vertical cell merges. Write serializes
// it through godocx.
package docx

import (
	"bytes"
)

// MIMEType is the content type of a .docx file.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Twips per centimetre; widths and heights are in twentieths of a point.
const twipsPerCm = 567

// Cm converts centimetres to twips.
func Cm(v float64) int {
	return int(v*twipsPerCm + 0.5)
}

// Pt converts points to twips.
func Pt(v float64) int {
	return int(v * 20)
}

// Block is a body element: *Paragraph or *Table.
type Block interface {
	block()
}

func (*Paragraph) block() {}
func (*Table) block()     {}

// Document is an in-memory document body.
type Document struct {
	// Font and FontSize (half-points) become the document defaults.
	Font     string
	FontSize int

	Blocks []Block
}

// New returns an empty document using font at size points.
func New(font string, sizePt float64) *Document {
	return &Document{Font: font, FontSize: int(sizePt * 2)}
}

// AddParagraph appends an empty paragraph.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.Blocks = append(d.Blocks, p)
	return p
}

// AddHeading appends a centered title paragraph with one bold run.
func (d *Document) AddHeading(text string, sizePt float64) *Paragraph {
	p := d.AddParagraph()
	p.Align = AlignCenter
	p.AddRun(text, RunStyle{Bold: true, Size: int(sizePt * 2)})
	return p
}

// AddTable appends a table whose grid has one column per width (twips).
func (d *Document) AddTable(widths ...int) *Table {
	t := &Table{Widths: widths}
	d.Blocks = append(d.Blocks, t)
	return t
}

// Bytes serializes the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
