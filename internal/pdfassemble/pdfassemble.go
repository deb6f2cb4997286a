// Copyright 2026 OmniConvert Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

// Package pdfassemble is the PDF container collaborator: it embeds a single
// image into a one-page PDF sized to the image, and renders HTML markup into
// a paginated PDF through a wkhtmltopdf engine.
package pdfassemble

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-pdf/fpdf"
)

// Assembler builds PDF files.
type Assembler struct{}

// New returns an Assembler. A non-empty enginePath pins the wkhtmltopdf
// binary used for HTML rendering; otherwise it is resolved from PATH.
func New(enginePath string) *Assembler {
	if enginePath != "" {
		wkhtmltopdf.SetPath(enginePath)
	}
	return &Assembler{}
}

// EmbedImage writes a single-page PDF whose page matches the image
// dimensions, with the image drawn edge to edge. Format must be "png" or
// "jpg"; callers re-encode anything else to PNG first.
func (a *Assembler) EmbedImage(img []byte, format, outputPath string) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return fmt.Errorf("pdfassemble: decode image header: %w", err)
	}

	w := float64(cfg.Width)
	h := float64(cfg.Height)

	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: w, Ht: h},
	})
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(format)}
	doc.RegisterImageOptionsReader("embedded", opts, bytes.NewReader(img))
	doc.ImageOptions("embedded", 0, 0, w, h, false, opts, 0, "")

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("pdfassemble: write %s: %w", outputPath, err)
	}
	return nil
}

// RenderHTML renders markup into a paginated PDF.
func (a *Assembler) RenderHTML(ctx context.Context, html, outputPath string) error {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("pdfassemble: pdf engine unavailable: %w", err)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.DisableExternalLinks.Set(true)
	gen.AddPage(page)

	if err := gen.CreateContext(ctx); err != nil {
		return fmt.Errorf("pdfassemble: render html: %w", err)
	}
	if err := gen.WriteFile(outputPath); err != nil {
		return fmt.Errorf("pdfassemble: write %s: %w", outputPath, err)
	}
	return nil
}
