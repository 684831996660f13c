// Package markup parses the inline color tags used in AI-generated study
// text and renders them for the web view and for DOCX output.
//
// Three tags are recognised: <yellow> marks the correct answer of a past exam
// question, <blue> a wrong option related to the lecture and <gray> a wrong
// option unrelated to it. Tags do not nest.
package markup

import (
	"strings"
)

// Category is the semantic class of a span.
type Category int

const (
	None Category = iota
	Correct
	RelatedWrong
	UnrelatedWrong
)

func (c Category) String() string {
	switch c {
	case Correct:
		return "answer-correct"
	case RelatedWrong:
		return "answer-related-wrong"
	case UnrelatedWrong:
		return "answer-unrelated-wrong"
	default:
		return "none"
	}
}

// Tag returns the tag name for c, or "" for None.
func (c Category) Tag() string {
	switch c {
	case Correct:
		return "yellow"
	case RelatedWrong:
		return "blue"
	case UnrelatedWrong:
		return "gray"
	default:
		return ""
	}
}

var tags = []Category{Correct, RelatedWrong, UnrelatedWrong}

// Span is a run of text with one category.
type Span struct {
	Category Category
	Text     string
}

// Parse splits text into spans. An open tag pairs with the first following
// close tag of the same kind; delimiters that cannot be paired stay in the
// surrounding plain text. Parse never fails.
func Parse(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Category: None, Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		lt := strings.IndexByte(text[i:], '<')
		if lt < 0 {
			plain.WriteString(text[i:])
			break
		}
		plain.WriteString(text[i : i+lt])
		i += lt

		cat, open := openTagAt(text, i)
		if cat == None {
			plain.WriteByte('<')
			i++
			continue
		}
		closing := "</" + cat.Tag() + ">"
		end := strings.Index(text[i+open:], closing)
		if end < 0 {
			plain.WriteString(text[i : i+open])
			i += open
			continue
		}
		flush()
		spans = append(spans, Span{Category: cat, Text: text[i+open : i+open+end]})
		i += open + end + len(closing)
	}
	flush()
	return spans
}

func openTagAt(text string, i int) (Category, int) {
	for _, cat := range tags {
		open := "<" + cat.Tag() + ">"
		if strings.HasPrefix(text[i:], open) {
			return cat, len(open)
		}
	}
	return None, 0
}

// Format writes spans back into tagged text.
func Format(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Category == None {
			sb.WriteString(s.Text)
			continue
		}
		tag := s.Category.Tag()
		sb.WriteString("<" + tag + ">")
		sb.WriteString(s.Text)
		sb.WriteString("</" + tag + ">")
	}
	return sb.String()
}

// PlainText concatenates span texts without delimiters.
func PlainText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
