package wordml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Extractor exports the body of a .docx document.
type Extractor struct{}

// NewExtractor returns a document extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ToHTML exports the document body as a standalone HTML page. Headings come
// from paragraph styles, hyperlinks resolve through the document
// relationships, tables render as plain HTML tables.
func (e *Extractor) ToHTML(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("wordml: open %s: %w", path, err)
	}
	defer zr.Close()

	rels := parseRelationships(zr, "word/_rels/document.xml.rels")
	styles := parseStyleNames(&zr.Reader)

	doc, err := readZipFile(&zr.Reader, "word/document.xml")
	if err != nil {
		return "", err
	}

	blocks := walkDocument(doc, rels, styles)

	var html strings.Builder
	html.WriteString("<html><body>\n")
	for _, b := range blocks {
		html.WriteString(b.html)
		html.WriteString("\n")
	}
	html.WriteString("</body></html>")
	return html.String(), nil
}

// ToText exports the raw text of the document body, one line per paragraph
// and tab-separated table cells.
func (e *Extractor) ToText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("wordml: open %s: %w", path, err)
	}
	defer zr.Close()

	doc, err := readZipFile(&zr.Reader, "word/document.xml")
	if err != nil {
		return "", err
	}

	blocks := walkDocument(doc, nil, nil)

	var out strings.Builder
	for _, b := range blocks {
		out.WriteString(b.text)
		out.WriteString("\n")
	}
	return out.String(), nil
}

// block is one rendered body element, kept in both representations so a
// single walk serves HTML export and raw text extraction.
type block struct {
	html string
	text string
}

// parseStyleNames maps style IDs to their display names, used for heading
// detection ("Heading 1" etc).
func parseStyleNames(zr *zip.Reader) map[string]string {
	names := make(map[string]string)
	data, err := readZipFile(zr, "word/styles.xml")
	if err != nil {
		return names
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var styleID string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "style":
			styleID = ""
			for _, attr := range start.Attr {
				if attr.Name.Local == "styleId" {
					styleID = attr.Value
				}
			}
		case "name":
			for _, attr := range start.Attr {
				if attr.Name.Local == "val" && styleID != "" {
					names[styleID] = attr.Value
				}
			}
		}
	}
	return names
}

// walkDocument streams through document.xml and renders paragraphs and
// tables in order.
func walkDocument(doc []byte, rels map[string]relationship, styles map[string]string) []block {
	decoder := xml.NewDecoder(bytes.NewReader(doc))

	var (
		blocks []block

		inText    bool
		bold      bool
		italic    bool
		styleID   string
		hyperRef  string
		inHyper   bool
		inCell    bool
		textBuf   strings.Builder
		paraHTML  strings.Builder
		paraText  strings.Builder
		cellHTML  strings.Builder
		cellText  strings.Builder
		tableRows [][]block
		row       []block
	)

	flushParagraph := func() {
		html := paraHTML.String()
		text := paraText.String()
		paraHTML.Reset()
		paraText.Reset()

		if inCell {
			cellHTML.WriteString(html)
			cellText.WriteString(text)
			return
		}

		if level := headingLevel(styleID, styles); level > 0 {
			tag := fmt.Sprintf("h%d", level)
			blocks = append(blocks, block{html: "<" + tag + ">" + html + "</" + tag + ">", text: text})
			return
		}
		if html != "" || text != "" {
			blocks = append(blocks, block{html: "<p>" + html + "</p>", text: text})
		}
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				bold, italic, styleID = false, false, ""
			case "pStyle":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						styleID = attr.Value
					}
				}
			case "r":
				bold, italic = false, false
			case "b":
				bold = attrValNotZero(t)
			case "i":
				italic = attrValNotZero(t)
			case "t":
				inText = true
				textBuf.Reset()
			case "tab":
				paraHTML.WriteString("\t")
				paraText.WriteString("\t")
			case "br":
				paraHTML.WriteString("<br/>")
				paraText.WriteString("\n")
			case "hyperlink":
				inHyper = true
				for _, attr := range t.Attr {
					if attr.Name.Space == nsDocRels && attr.Name.Local == "id" {
						if rel, ok := rels[attr.Value]; ok {
							hyperRef = rel.Target
						}
					}
				}
			case "tbl":
				tableRows = nil
			case "tr":
				row = nil
			case "tc":
				inCell = true
				cellHTML.Reset()
				cellText.Reset()
			}

		case xml.CharData:
			if inText {
				textBuf.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if !inText {
					break
				}
				inText = false
				raw := textBuf.String()
				paraText.WriteString(raw)

				text := escapeText(raw)
				if bold {
					text = "<b>" + text + "</b>"
				}
				if italic {
					text = "<i>" + text + "</i>"
				}
				if inHyper && hyperRef != "" {
					text = `<a href="` + escapeAttr(hyperRef) + `">` + text + "</a>"
				}
				paraHTML.WriteString(text)
			case "hyperlink":
				inHyper = false
				hyperRef = ""
			case "p":
				flushParagraph()
				styleID = ""
			case "tc":
				row = append(row, block{html: cellHTML.String(), text: cellText.String()})
				inCell = false
			case "tr":
				tableRows = append(tableRows, row)
			case "tbl":
				if len(tableRows) > 0 {
					blocks = append(blocks, renderTable(tableRows))
				}
			}
		}
	}

	return blocks
}

func renderTable(rows [][]block) block {
	var html strings.Builder
	var text strings.Builder
	html.WriteString("<table>")
	for i, row := range rows {
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		html.WriteString("<tr>")
		var cells []string
		for _, cell := range row {
			html.WriteString("<" + tag + ">" + cell.html + "</" + tag + ">")
			cells = append(cells, cell.text)
		}
		html.WriteString("</tr>")
		text.WriteString(strings.Join(cells, "\t"))
		if i < len(rows)-1 {
			text.WriteString("\n")
		}
	}
	html.WriteString("</table>")
	return block{html: html.String(), text: text.String()}
}

// headingLevel maps a paragraph style to an HTML heading level, or 0.
func headingLevel(styleID string, styles map[string]string) int {
	if styleID == "" {
		return 0
	}
	lower := strings.ToLower(styleID)
	for i := 1; i <= 6; i++ {
		if lower == fmt.Sprintf("heading%d", i) || lower == fmt.Sprintf("heading %d", i) {
			return i
		}
	}
	if name, ok := styles[styleID]; ok {
		nameLower := strings.ToLower(name)
		for i := 1; i <= 6; i++ {
			if nameLower == fmt.Sprintf("heading %d", i) {
				return i
			}
		}
	}
	return 0
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = escapeText(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

func attrValNotZero(t xml.StartElement) bool {
	for _, attr := range t.Attr {
		if attr.Name.Local == "val" && (attr.Value == "0" || attr.Value == "false") {
			return false
		}
	}
	return true
}
