// Package summary lays out a topic outline as grouped tables and assembles
// the downloadable summary document.
package summary

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/vytor/mediquiz/internal/markup"
	"github.com/vytor/mediquiz/internal/models"
)

// Table is one topic laid out for display.
type Table struct {
	Topic string
	Rows  []Row
}

// Row is one entry of a topic table.
type Row struct {
	Key string
	// KeySpan is the number of rows the label cell covers, counting this one.
	// It is zero for rows whose label merged into an earlier row.
	KeySpan int
	SubKey  string
	// Paragraphs hold the content, already parsed into spans.
	Paragraphs [][]markup.Span
}

// Merged reports whether the row's label belongs to the row above.
func (r Row) Merged() bool {
	return r.KeySpan == 0
}

// HasSubKey reports whether the row shows a sub-label cell.
func (r Row) HasSubKey() bool {
	return r.SubKey != ""
}

// Layout groups the outline into tables. Topics without entries are skipped.
// A label equal to the label of the row directly above merges into it.
func Layout(outline models.Outline) []Table {
	tables := make([]Table, 0, len(outline))
	for _, topic := range outline {
		if len(topic.SubSections) == 0 {
			continue
		}
		t := Table{Topic: topic.MainTopic, Rows: make([]Row, 0, len(topic.SubSections))}
		anchor := -1
		for _, sec := range topic.SubSections {
			row := Row{
				Key:        sec.Key,
				SubKey:     strings.TrimSpace(sec.SubKey),
				Paragraphs: Paragraphs(sec.Value),
			}
			if anchor >= 0 && t.Rows[anchor].Key == sec.Key {
				t.Rows[anchor].KeySpan++
			} else {
				row.KeySpan = 1
				anchor = len(t.Rows)
			}
			t.Rows = append(t.Rows, row)
		}
		tables = append(tables, t)
	}
	return tables
}

var numbered = regexp.MustCompile(`^\s*\d+\.\s`)

// Paragraphs splits tagged content into paragraphs. A line starting with a
// number and a dot ("2. ...") opens a new paragraph; other lines continue the
// current one after a line break. Blank lines are dropped. Tags may cross line
// breaks.
func Paragraphs(value string) [][]markup.Span {
	var lines [][]markup.Span
	var cur []markup.Span
	for _, s := range markup.Parse(value) {
		for i, part := range strings.Split(s.Text, "\n") {
			if i > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			if part != "" {
				cur = appendSpan(cur, markup.Span{Category: s.Category, Text: part})
			}
		}
	}
	lines = append(lines, cur)

	var paras [][]markup.Span
	for _, line := range lines {
		line = trimLine(line)
		if len(line) == 0 {
			continue
		}
		if len(paras) == 0 || numbered.MatchString(markup.PlainText(line)) {
			paras = append(paras, line)
			continue
		}
		last := appendSpan(paras[len(paras)-1], markup.Span{Category: markup.None, Text: "\n"})
		for _, s := range line {
			last = appendSpan(last, s)
		}
		paras[len(paras)-1] = last
	}
	return paras
}

func appendSpan(spans []markup.Span, s markup.Span) []markup.Span {
	if n := len(spans); n > 0 && spans[n-1].Category == s.Category {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}

// trimLine strips surrounding whitespace from a line, dropping spans that
// become empty.
func trimLine(line []markup.Span) []markup.Span {
	for len(line) > 0 {
		line[0].Text = strings.TrimLeftFunc(line[0].Text, unicode.IsSpace)
		if line[0].Text != "" {
			break
		}
		line = line[1:]
	}
	for len(line) > 0 {
		n := len(line) - 1
		line[n].Text = strings.TrimRightFunc(line[n].Text, unicode.IsSpace)
		if line[n].Text != "" {
			break
		}
		line = line[:n]
	}
	return line
}
