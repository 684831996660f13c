package docx

import (
	"strings"
)

// Align is a paragraph justification.
type Align string

const (
	AlignLeft   Align = ""
	AlignCenter Align = "center"
)

// RunStyle holds character formatting. Zero values inherit the defaults.
type RunStyle struct {
	Bold      bool
	Color     string // hex RGB without '#', e.g. "1971C2"
	Highlight string // highlight name, e.g. "yellow"
	Size      int    // half-points
	Font      string
}

// Run is a span of text with one style. A newline in Text becomes a line
// break within the paragraph.
type Run struct {
	Text  string
	Style RunStyle
}

// Paragraph is a sequence of runs.
type Paragraph struct {
	Align Align
	// SpaceBefore and SpaceAfter are in twips; zero leaves the default.
	SpaceBefore int
	SpaceAfter  int

	Runs []*Run
}

// AddRun appends a run and returns it.
func (p *Paragraph) AddRun(text string, style RunStyle) *Run {
	r := &Run{Text: text, Style: style}
	p.Runs = append(p.Runs, r)
	return r
}

// Text concatenates the run texts.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
