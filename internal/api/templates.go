package api

import (
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/vytor/mediquiz/internal/markup"
)

// circled option numbers, as printed on exam sheets.
var circled = []string{"①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧", "⑨", "⑩"}

// circle returns the circled number for a zero-based option index.
func circle(i int) string {
	if i >= 0 && i < len(circled) {
		return circled[i]
	}
	return fmt.Sprintf("(%d)", i+1)
}

// preview cuts s to n characters, adding "..." when it was longer.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// LoadTemplates parses the layouts, pages and partials under dir.
func LoadTemplates(dir string) (*template.Template, error) {
	funcs := template.FuncMap{
		"add":     func(a, b int) int { return a + b },
		"circle":  circle,
		"preview": preview,
		// markup renders text with color tags as HTML.
		"markup": func(s string) template.HTML {
			return markup.RenderWeb(markup.Parse(s))
		},
		"spans":  markup.RenderWeb,
		"legend": markup.WebLegend,
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		filepath.Join(dir, "layouts", "*.html"),
		filepath.Join(dir, "pages", "*.html"),
		filepath.Join(dir, "partials", "*.html"),
	}
	for _, p := range patterns {
		if matches, _ := filepath.Glob(p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseGlob(p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
