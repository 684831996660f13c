package markup_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mediquiz/internal/markup"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []markup.Span
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "no tags",
			input:    "1. 정의: 급성 간염",
			expected: []markup.Span{{Category: markup.None, Text: "1. 정의: 급성 간염"}},
		},
		{
			name:  "all three tags",
			input: "IgM <yellow>양성</yellow>, <blue>IgG</blue> 또는 <gray>HBsAg</gray>.",
			expected: []markup.Span{
				{Category: markup.None, Text: "IgM "},
				{Category: markup.Correct, Text: "양성"},
				{Category: markup.None, Text: ", "},
				{Category: markup.RelatedWrong, Text: "IgG"},
				{Category: markup.None, Text: " 또는 "},
				{Category: markup.UnrelatedWrong, Text: "HBsAg"},
				{Category: markup.None, Text: "."},
			},
		},
		{
			name:  "adjacent tag runs",
			input: "<yellow>a</yellow><gray>b</gray>",
			expected: []markup.Span{
				{Category: markup.Correct, Text: "a"},
				{Category: markup.UnrelatedWrong, Text: "b"},
			},
		},
		{
			name:  "unmatched open tag stays literal",
			input: "before <yellow>after",
			expected: []markup.Span{
				{Category: markup.None, Text: "before <yellow>after"},
			},
		},
		{
			name:  "unmatched close tag stays literal",
			input: "x</blue> <blue>y</blue>",
			expected: []markup.Span{
				{Category: markup.None, Text: "x</blue> "},
				{Category: markup.RelatedWrong, Text: "y"},
			},
		},
		{
			name:  "mismatched kinds",
			input: "<yellow>a</gray>",
			expected: []markup.Span{
				{Category: markup.None, Text: "<yellow>a</gray>"},
			},
		},
		{
			name:  "unknown tag and comparison signs",
			input: "<b>x</b> AST < ALT",
			expected: []markup.Span{
				{Category: markup.None, Text: "<b>x</b> AST < ALT"},
			},
		},
		{
			name:  "first close tag wins",
			input: "<gray>a</gray>b</gray>",
			expected: []markup.Span{
				{Category: markup.UnrelatedWrong, Text: "a"},
				{Category: markup.None, Text: "b</gray>"},
			},
		},
		{
			name:  "tag run across newline",
			input: "<yellow>a\nb</yellow>",
			expected: []markup.Span{
				{Category: markup.Correct, Text: "a\nb"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markup.Parse(tt.input))
		})
	}
}

func TestParse_UnmatchedOpenTagNeverPanics(t *testing.T) {
	var spans []markup.Span
	require.NotPanics(t, func() {
		spans = markup.Parse("정답은 <yellow>간염")
	})
	require.Len(t, spans, 1)
	assert.Equal(t, markup.None, spans[0].Category)
	assert.Contains(t, spans[0].Text, "<yellow>")
}

var fragments = []string{"간", "염", " ", "\n", "1. ", "<", ">", "/", "a", "b", "IgM"}

func randomPlain(r *rand.Rand) string {
	var sb strings.Builder
	for i := r.Intn(4); i > 0; i-- {
		frag := fragments[r.Intn(len(fragments))]
		if frag == "<" {
			// keep plain text free of anything that could form a tag
			frag = "≤"
		}
		sb.WriteString(frag)
	}
	return sb.String()
}

func TestParse_RoundTripWellFormed(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	cats := []markup.Category{markup.Correct, markup.RelatedWrong, markup.UnrelatedWrong}

	for n := 0; n < 500; n++ {
		var tagged, stripped strings.Builder
		for parts := r.Intn(6); parts > 0; parts-- {
			text := randomPlain(r)
			if r.Intn(2) == 0 {
				tagged.WriteString(text)
			} else {
				tag := cats[r.Intn(len(cats))].Tag()
				tagged.WriteString("<" + tag + ">" + text + "</" + tag + ">")
			}
			stripped.WriteString(text)
		}

		spans := markup.Parse(tagged.String())
		require.Equal(t, stripped.String(), markup.PlainText(spans), "input %q", tagged.String())
		require.Equal(t, tagged.String(), markup.Format(spans))
	}
}

func TestFormat_InverseOfParseForArbitraryText(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	alphabet := []string{"<yellow>", "</yellow>", "<blue>", "</blue>", "<gray>", "</gray>", "<", ">", "x", " ", "\n"}

	for n := 0; n < 500; n++ {
		var sb strings.Builder
		for i := r.Intn(10); i > 0; i-- {
			sb.WriteString(alphabet[r.Intn(len(alphabet))])
		}
		input := sb.String()
		var spans []markup.Span
		require.NotPanics(t, func() { spans = markup.Parse(input) })
		require.Equal(t, input, markup.Format(spans))
		for i := 1; i < len(spans); i++ {
			require.False(t, spans[i].Category == markup.None && spans[i-1].Category == markup.None,
				"plain spans must be merged in %q", input)
		}
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "none", markup.None.String())
	assert.Equal(t, "answer-correct", markup.Correct.String())
	assert.Equal(t, "answer-related-wrong", markup.RelatedWrong.String())
	assert.Equal(t, "answer-unrelated-wrong", markup.UnrelatedWrong.String())
}
