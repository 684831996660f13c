package markup

import (
	"html/template"
	"strings"

	"github.com/vytor/mediquiz/internal/docx"
)

// Colors shared by the web and document renderers.
const (
	ColorCorrectFill    = "#fff3bf"
	ColorRelatedWrong   = "#1971c2"
	ColorUnrelatedWrong = "#adb5bd"
)

// RenderWeb renders spans as an HTML fragment. Text is escaped and newlines
// become <br>.
func RenderWeb(spans []Span) template.HTML {
	var sb strings.Builder
	for _, s := range spans {
		text := strings.ReplaceAll(template.HTMLEscapeString(s.Text), "\n", "<br>")
		switch s.Category {
		case Correct:
			sb.WriteString(`<span class="mk-correct" style="background-color: ` + ColorCorrectFill + `;">` + text + `</span>`)
		case RelatedWrong:
			sb.WriteString(`<span class="mk-related" style="color: ` + ColorRelatedWrong + `; font-weight: bold;">` + text + `</span>`)
		case UnrelatedWrong:
			sb.WriteString(`<span class="mk-unrelated" style="color: ` + ColorUnrelatedWrong + `;">` + text + `</span>`)
		default:
			sb.WriteString(text)
		}
	}
	return template.HTML(sb.String())
}

// RenderDocument appends one run per span to p. Newlines become line breaks
// when the document is written.
func RenderDocument(spans []Span, p *docx.Paragraph) {
	for _, s := range spans {
		p.AddRun(s.Text, RunStyle(s.Category))
	}
}

// RunStyle is the document formatting for a category.
func RunStyle(c Category) docx.RunStyle {
	switch c {
	case Correct:
		return docx.RunStyle{Highlight: "yellow"}
	case RelatedWrong:
		return docx.RunStyle{Bold: true, Color: strings.ToUpper(ColorRelatedWrong[1:])}
	case UnrelatedWrong:
		return docx.RunStyle{Color: strings.ToUpper(ColorUnrelatedWrong[1:])}
	default:
		return docx.RunStyle{}
	}
}

// WebLegend returns the category legend as tagged text for the web view.
func WebLegend() string {
	return Format([]Span{
		{Category: Correct, Text: "■ 정답"},
		{Category: None, Text: "  "},
		{Category: RelatedWrong, Text: "■ 오답(관련)"},
		{Category: None, Text: "  "},
		{Category: UnrelatedWrong, Text: "■ 오답(무관)"},
	})
}

// Legend appends the category legend runs to p.
func Legend(p *docx.Paragraph) {
	p.AddRun("■ 정답  ", RunStyle(Correct))
	p.AddRun("■ 관련 오답  ", docx.RunStyle{Color: RunStyle(RelatedWrong).Color})
	p.AddRun("■ 무관 오답", RunStyle(UnrelatedWrong))
}
