package wordml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Writer packs plain paragraphs into a .docx container.
type Writer struct{}

// NewWriter returns a document writer.
func NewWriter() *Writer {
	return &Writer{}
}

const contentTypesXML = xml.Header +
	`<Types xmlns="` + nsContentTypes + `">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="` + nsRelationships + `">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// FromParagraphs writes a minimal valid .docx whose body holds one paragraph
// per input string, in order. Empty strings become empty paragraphs so the
// source line structure survives the round trip.
func (w *Writer) FromParagraphs(paragraphs []string, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("wordml: create %s: %w", outputPath, err)
	}

	zw := zip.NewWriter(f)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", documentXML(paragraphs)},
	}

	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("wordml: create part %s: %w", part.name, err)
		}
		if _, err := pw.Write([]byte(part.data)); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("wordml: write part %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("wordml: finalize %s: %w", outputPath, err)
	}
	return f.Close()
}

func documentXML(paragraphs []string) string {
	var body strings.Builder
	body.WriteString(xml.Header)
	body.WriteString(`<w:document xmlns:w="` + nsWordML + `"><w:body>`)

	for _, p := range paragraphs {
		if p == "" {
			body.WriteString(`<w:p/>`)
			continue
		}
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		if err := xml.EscapeText(&body, []byte(p)); err != nil {
			// strings.Builder never returns write errors.
			continue
		}
		body.WriteString(`</w:t></w:r></w:p>`)
	}

	body.WriteString(`</w:body></w:document>`)
	return body.String()
}
