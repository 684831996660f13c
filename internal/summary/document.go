package summary

import (
	"github.com/vytor/mediquiz/internal/docx"
	"github.com/vytor/mediquiz/internal/markup"
	"github.com/vytor/mediquiz/internal/models"
)

const (
	Title    = "의대 강의/족보 통합 정리본"
	Filename = "통합_표_정리본.docx"

	Font     = "맑은 고딕"
	FontSize = 9

	headerFill = "495057"
	keyFill    = "E9ECEF"
	subKeyFill = "F8F9FA"
)

// A4 text width with 2 cm margins, split into label, sub-label and content.
var (
	keyWidth    = docx.Cm(2.5)
	subKeyWidth = docx.Cm(2.5)
	valueWidth  = 11906 - 2*1134 - keyWidth - subKeyWidth
)

// Build assembles the summary document: title, legend, then one table per
// topic followed by an empty paragraph.
func Build(outline models.Outline) *docx.Document {
	doc := docx.New(Font, FontSize)
	doc.AddHeading(Title, 16)

	legend := doc.AddParagraph()
	legend.Align = docx.AlignCenter
	markup.Legend(legend)
	doc.AddParagraph()

	for _, t := range Layout(outline) {
		addTable(doc, t)
		doc.AddParagraph()
	}
	return doc
}

// Render builds the document and serializes it.
func Render(outline models.Outline) ([]byte, error) {
	return Build(outline).Bytes()
}

func addTable(doc *docx.Document, t Table) {
	tbl := doc.AddTable(keyWidth, subKeyWidth, valueWidth)

	head := tbl.AddRow().AddCell(3)
	head.Fill = headerFill
	head.Center = true
	hp := head.Paragraph()
	hp.Align = docx.AlignCenter
	hp.AddRun(t.Topic, docx.RunStyle{Bold: true, Color: "FFFFFF", Size: 20})

	for _, r := range t.Rows {
		row := tbl.AddRow()
		row.MinHeight = docx.Cm(1.5)

		key := row.AddCell(1)
		key.Fill = keyFill
		key.Center = true
		switch {
		case r.Merged():
			key.Merge = docx.VMergeContinue
		case r.KeySpan > 1:
			key.Merge = docx.VMergeRestart
		}
		if !r.Merged() {
			labelParagraph(key, r.Key)
		}

		valueSpan := 2
		if r.HasSubKey() {
			sub := row.AddCell(1)
			sub.Fill = subKeyFill
			sub.Center = true
			labelParagraph(sub, r.SubKey)
			valueSpan = 1
		}

		value := row.AddCell(valueSpan)
		value.Center = true
		for i, spans := range r.Paragraphs {
			p := value.Paragraph()
			if i > 0 {
				p = value.AddParagraph()
			}
			p.SpaceBefore = docx.Pt(6)
			p.SpaceAfter = docx.Pt(6)
			markup.RenderDocument(spans, p)
		}
	}
}

func labelParagraph(c *docx.Cell, text string) {
	p := c.Paragraph()
	p.Align = docx.AlignCenter
	p.AddRun(text, docx.RunStyle{Bold: true})
}
