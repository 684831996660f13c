// Package extract pulls plain text out of uploaded lecture and exam files.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"github.com/vytor/mediquiz/internal/logger"
)

// Supported file extensions.
const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
	ExtPPTX = ".pptx"
	ExtTXT  = ".txt"
)

// Supported reports whether filename has an extension Text can read.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtPDF, ExtDOCX, ExtPPTX, ExtTXT:
		return true
	}
	return false
}

// Text returns the text of the file, choosing the format by extension.
// Failures are logged and yield "".
func Text(ctx context.Context, filename string, r io.Reader) string {
	log := logger.FromContext(ctx).WithPrefix("extract").WithField("file", filename)

	data, err := io.ReadAll(r)
	if err != nil {
		log.Warn("failed to read upload: %v", err)
		return ""
	}

	var text string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ExtPDF:
		text, err = pdfText(data)
	case ExtDOCX:
		text, err = docxText(data)
	case ExtPPTX:
		text, err = pptxText(data)
	case ExtTXT:
		text = string(data)
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}
	if err != nil {
		log.Warn("text extraction failed: %v", err)
		return ""
	}
	text = strings.TrimSpace(text)
	log.Debug("extracted %d characters", len([]rune(text)))
	return text
}

func pdfText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("pdf: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		pages = append(pages, s)
	}
	return strings.Join(pages, "\n"), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	body, err := readZipFile(zr.File, "word/document.xml")
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs(body), "\n"), nil
}

func pptxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, "ppt/slides/slide")
		if name == f.Name || !strings.HasSuffix(name, ".xml") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(name, ".xml"))
		if err != nil {
			continue
		}
		slides = append(slides, slide{num: n, file: f})
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("no slides found")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var out []string
	for _, s := range slides {
		body, err := readZipFile([]*zip.File{s.file}, s.file.Name)
		if err != nil {
			return "", err
		}
		out = append(out, paragraphs(body)...)
	}
	return strings.Join(out, "\n"), nil
}

func readZipFile(files []*zip.File, target string) ([]byte, error) {
	for _, f := range files {
		if f.Name != target {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("file not found: %s", target)
}

// paragraphs collects the text runs of each <p> element in an Office XML
// part. It serves both WordprocessingML (w:p, w:t) and DrawingML (a:p, a:t).
// A paragraph nested inside another, as in a text box, is emitted on its own
// and leaves the enclosing text intact. Empty paragraphs are skipped.
func paragraphs(body []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		out    []string
		open   []*strings.Builder
		inText bool
	)
	write := func(s string) {
		if n := len(open); n > 0 {
			open[n-1].WriteString(s)
		}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				write("\t")
			case "br":
				write("\n")
			}
		case xml.CharData:
			if inText {
				write(string(t))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				n := len(open)
				if n == 0 {
					continue
				}
				if s := strings.TrimSpace(open[n-1].String()); s != "" {
					out = append(out, s)
				}
				open = open[:n-1]
			}
		}
	}
	return out
}
