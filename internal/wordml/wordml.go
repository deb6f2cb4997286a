// Package wordml reads and writes WordprocessingML (.docx) packages. The
// extractor exports a document body as HTML or plain text; the writer packs
// plain paragraphs into a minimal valid .docx container.
package wordml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
)

// OOXML namespaces used by the document part.
const (
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsWordML        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsDocRels       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// relationship is one entry of a .rels part; hyperlink targets resolve
// through these.
type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []relationship `xml:"Relationship"`
}

func parseRelationships(zr *zip.ReadCloser, name string) map[string]relationship {
	rels := make(map[string]relationship)
	data, err := readZipFile(&zr.Reader, name)
	if err != nil {
		return rels
	}
	var parsed relationships
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return rels
	}
	for _, rel := range parsed.Relationships {
		rels[rel.ID] = rel
	}
	return rels
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("wordml: part %q not found", name)
}
