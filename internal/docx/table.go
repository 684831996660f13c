package docx

// VMerge marks a cell's part in a vertical merge.
type VMerge int

const (
	VMergeNone VMerge = iota
	VMergeRestart
	VMergeContinue
)

// Table is a bordered grid table with fixed column widths in twips.
type Table struct {
	Widths []int
	Rows   []*Row
}

// Row is one table row.
type Row struct {
	// MinHeight is an at-least row height in twips; zero leaves it automatic.
	MinHeight int

	Cells []*Cell
}

// Cell is one table cell. A cell spanning several grid columns replaces them.
type Cell struct {
	Span   int
	Merge  VMerge
	Fill   string // hex RGB shading
	Center bool   // vertical centering

	Paragraphs []*Paragraph
}

// AddRow appends an empty row.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.Rows = append(t.Rows, r)
	return r
}

// AddCell appends a cell covering span grid columns after the previous
// cell. The cell starts with one empty paragraph.
func (r *Row) AddCell(span int) *Cell {
	if span < 1 {
		span = 1
	}
	c := &Cell{Span: span, Paragraphs: []*Paragraph{{}}}
	r.Cells = append(r.Cells, c)
	return c
}

// Paragraph returns the cell's first paragraph.
func (c *Cell) Paragraph() *Paragraph {
	return c.Paragraphs[0]
}

// AddParagraph appends a paragraph to the cell.
func (c *Cell) AddParagraph() *Paragraph {
	p := &Paragraph{}
	c.Paragraphs = append(c.Paragraphs, p)
	return p
}

// cellWidths returns the width of each cell in r, summing the grid columns
// it spans.
func (t *Table) cellWidths(r *Row) []int {
	widths := make([]int, len(r.Cells))
	col := 0
	for i, c := range r.Cells {
		for j := col; j < col+c.Span && j < len(t.Widths); j++ {
			widths[i] += t.Widths[j]
		}
		col += c.Span
	}
	return widths
}
