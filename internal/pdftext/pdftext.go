// Package pdftext extracts the text layer of a PDF file. Extraction is best
// effort: row-based extraction with word boundary detection is preferred,
// with a position-based reconstruction as fallback for documents whose rows
// come back empty.
package pdftext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor reads PDF text content.
type Extractor struct{}

// New returns a PDF text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Text returns the concatenated text of every page, pages separated by a
// blank line.
func (e *Extractor) Text(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("pdftext: open %s: %w", path, err)
	}
	defer f.Close()

	var out strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := strings.TrimSpace(pageText(page))
		if text == "" {
			continue
		}
		out.WriteString(text)
		out.WriteString("\n\n")
	}

	return strings.TrimRight(out.String(), "\n"), nil
}

func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		if text := textFromRows(rows); text != "" {
			return text
		}
	}
	return textFromPositions(page)
}

// textFromRows joins row words, inserting a space wherever the extractor
// signals a word boundary with an empty string between non-empty ones.
func textFromRows(rows pdf.Rows) string {
	var out strings.Builder
	for _, row := range rows {
		var line strings.Builder
		boundary := false
		for _, word := range row.Content {
			if word.S == "" {
				boundary = true
				continue
			}
			if line.Len() > 0 && boundary && !strings.HasSuffix(line.String(), " ") {
				line.WriteString(" ")
			}
			line.WriteString(word.S)
			boundary = false
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			out.WriteString(text)
			out.WriteString("\n")
		}
	}
	return strings.TrimSpace(out.String())
}

type positioned struct {
	x, y, size float64
	text       string
}

// textFromPositions groups characters into lines by Y proximity and orders
// them by X, approximating word gaps from the font size.
func textFromPositions(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	var elems []positioned
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		elems = append(elems, positioned{x: t.X, y: t.Y, size: t.FontSize, text: t.S})
	}
	if len(elems) == 0 {
		return ""
	}

	tolerance := 3.0
	if elems[0].size > 0 {
		tolerance = elems[0].size * 0.3
	}

	type line struct {
		y     float64
		elems []positioned
	}
	var lines []line
	for _, el := range elems {
		placed := false
		for i := range lines {
			if abs(lines[i].y-el.y) < tolerance {
				lines[i].elems = append(lines[i].elems, el)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{y: el.y, elems: []positioned{el}})
		}
	}

	// PDF coordinates grow upward: top of the page first.
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var out strings.Builder
	for _, ln := range lines {
		sort.Slice(ln.elems, func(i, j int) bool { return ln.elems[i].x < ln.elems[j].x })

		var text strings.Builder
		var lastEnd float64
		for i, el := range ln.elems {
			if i > 0 {
				threshold := el.size * 0.2
				if threshold < 1.0 {
					threshold = 1.0
				}
				if el.x-lastEnd > threshold {
					text.WriteString(" ")
				}
			}
			text.WriteString(el.text)
			lastEnd = el.x + float64(len([]rune(el.text)))*el.size*0.55
		}

		if s := strings.TrimSpace(text.String()); s != "" {
			out.WriteString(s)
			out.WriteString("\n")
		}
	}
	return strings.TrimSpace(out.String())
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
