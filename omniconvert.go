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

package omniconvert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/omniconvert/omniconvert-go/internal/archivewrap"
	"github.com/omniconvert/omniconvert-go/internal/imagecodec"
	"github.com/omniconvert/omniconvert-go/internal/pdfassemble"
	"github.com/omniconvert/omniconvert-go/internal/pdftext"
	"github.com/omniconvert/omniconvert-go/internal/transcode"
	"github.com/omniconvert/omniconvert-go/internal/wordml"
)

// Engine is the conversion dispatcher. It classifies the target format,
// selects an ordered strategy chain and executes it against the injected
// collaborators. Engines are stateless and safe for concurrent use; each
// request operates only on its own uniquely named input and output paths.
type Engine struct {
	codec        ImageCodec
	transcoder   Transcoder
	pdf          PDFAssembler
	docWriter    DocumentWriter
	docExtractor DocumentExtractor
	pdfText      PDFTextExtractor
	archiver     ArchiveWriter
}

// New creates an Engine with the given options. Collaborators not supplied
// through options are wired to the built-in implementations.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.codec == nil {
		e.codec = imagecodec.New()
	}
	if e.transcoder == nil {
		e.transcoder = transcode.New("")
	}
	if e.pdf == nil {
		e.pdf = pdfassemble.New("")
	}
	if e.docWriter == nil {
		e.docWriter = wordml.NewWriter()
	}
	if e.docExtractor == nil {
		e.docExtractor = wordml.NewExtractor()
	}
	if e.pdfText == nil {
		e.pdfText = pdftext.New()
	}
	if e.archiver == nil {
		e.archiver = archivewrap.New()
	}
	return e
}

// Convert runs a single conversion request and always returns a structured
// outcome; no error escapes the dispatcher as an unhandled fault. The output
// file, if any, is written under outputDir as `<base>.<emitted format>`.
func (e *Engine) Convert(ctx context.Context, req ConversionRequest, outputDir string) ConversionOutcome {
	baseName := ResolveBaseName(req.OriginalName, req.CustomName)
	category := Classify(req.TargetFormat)
	strategies := SelectStrategies(req.SourceExt, req.TargetFormat, category)

	if len(strategies) == 0 {
		return ConversionOutcome{
			ErrorMessage: unsupportedPairMessage(category),
			Err: &UnsupportedPairError{
				SourceExt: req.SourceExt,
				Target:    req.TargetFormat,
				Category:  category,
			},
		}
	}

	// A missing input fails identically on every strategy; bail out before
	// the chain rather than burning an attempt per strategy.
	if _, err := os.Stat(req.SourcePath); err != nil {
		rerr := &ResourceError{Op: "read input", Err: err}
		return ConversionOutcome{
			ErrorMessage: "Server conversion error: " + err.Error(),
			Err:          rerr,
		}
	}

	return e.execute(ctx, req, strategies, outputDir, baseName)
}

// execute iterates the strategy chain sequentially, short-circuiting on the
// first success. Strategies never run in parallel: they would race on the
// output path, and a later strategy is only justified once the earlier one
// has failed.
func (e *Engine) execute(ctx context.Context, req ConversionRequest, strategies []Strategy, outputDir, baseName string) ConversionOutcome {
	requested := baseName + "." + req.TargetFormat
	var attempts []StrategyAttempt

	for _, strat := range strategies {
		emitted := req.TargetFormat
		if strat.EmittedFormat != "" {
			emitted = strat.EmittedFormat
		}
		filename := baseName + "." + emitted
		outputPath := filepath.Join(outputDir, filename)

		err := e.run(ctx, strat, req, outputPath)
		if err == nil {
			attempts = append(attempts, StrategyAttempt{Strategy: strat.Kind, Succeeded: true})
			outcome := ConversionOutcome{
				Succeeded:      true,
				OutputPath:     outputPath,
				OutputFilename: filename,
				Attempts:       attempts,
			}
			if filename != requested {
				outcome.RequestedFilename = requested
			}
			return outcome
		}

		// A failed attempt must not leave partial data at the final path.
		os.Remove(outputPath)

		attempts = append(attempts, StrategyAttempt{Strategy: strat.Kind, Err: err})

		if IsResourceFailure(err) {
			return ConversionOutcome{
				ErrorMessage: "Server conversion error: " + err.Error(),
				Err:          err,
				Attempts:     attempts,
			}
		}
	}

	last := attempts[len(attempts)-1].Err
	message := "Server conversion error: " + last.Error()
	var collab *CollaboratorError
	if errors.As(last, &collab) {
		message = collab.Message
	}
	return ConversionOutcome{
		ErrorMessage: message,
		Err:          &ConversionError{Attempts: attempts},
		Attempts:     attempts,
	}
}

func (e *Engine) run(ctx context.Context, strat Strategy, req ConversionRequest, outputPath string) error {
	switch strat.Kind {
	case DirectCodecTransform:
		return e.runCodec(req, outputPath)
	case TranscodeEngine:
		return e.runTranscode(ctx, req, outputPath)
	case ImageToContainerEmbed:
		return e.runImageEmbed(req, outputPath)
	case TextExtractionToDocument:
		return e.runTextToDocument(req, outputPath)
	case DocumentToHTMLExport:
		return e.runHTMLExport(req, outputPath)
	case DocumentToHTMLToContainer:
		return e.runHTMLToContainer(ctx, req, outputPath)
	case DocumentTextExtraction:
		return e.runTextExtraction(req, outputPath)
	case ArchiveWrap:
		return e.runArchiveWrap(strat, req, outputPath)
	}
	return fmt.Errorf("unknown strategy %q", strat.Kind)
}

func (e *Engine) runCodec(req ConversionRequest, outputPath string) error {
	data, err := e.codec.Encode(req.SourcePath, req.TargetFormat)
	if err != nil {
		return &CollaboratorError{Message: "Conversion failed: " + err.Error(), Err: err}
	}
	return writeOutput(outputPath, data)
}

func (e *Engine) runTranscode(ctx context.Context, req ConversionRequest, outputPath string) error {
	if err := e.transcoder.Transcode(ctx, req.SourcePath, outputPath); err != nil {
		return &CollaboratorError{Message: "Conversion failed: " + err.Error(), Err: err}
	}
	return nil
}

func (e *Engine) runImageEmbed(req ConversionRequest, outputPath string) error {
	var (
		image  []byte
		format string
		err    error
	)
	switch req.SourceExt {
	case "png", "jpg", "jpeg":
		image, err = os.ReadFile(req.SourcePath)
		if err != nil {
			return &ResourceError{Op: "read input", Err: err}
		}
		format = req.SourceExt
		if format == "jpeg" {
			format = "jpg"
		}
	default:
		// The container only embeds PNG and JPEG natively; everything
		// else is re-encoded to PNG first.
		image, err = e.codec.Encode(req.SourcePath, "png")
		if err != nil {
			return &CollaboratorError{Message: "Image to PDF failed.", Err: err}
		}
		format = "png"
	}

	if err := e.pdf.EmbedImage(image, format, outputPath); err != nil {
		return &CollaboratorError{Message: "Image to PDF failed.", Err: err}
	}
	return nil
}

func (e *Engine) runTextToDocument(req ConversionRequest, outputPath string) error {
	text, err := e.pdfText.Text(req.SourcePath)
	if err != nil {
		return &CollaboratorError{Message: "PDF to DOCX conversion failed: " + err.Error(), Err: err}
	}
	if err := e.docWriter.FromParagraphs(strings.Split(text, "\n"), outputPath); err != nil {
		return &CollaboratorError{Message: "PDF to DOCX conversion failed: " + err.Error(), Err: err}
	}
	return nil
}

func (e *Engine) runHTMLExport(req ConversionRequest, outputPath string) error {
	html, err := e.docExtractor.ToHTML(req.SourcePath)
	if err != nil {
		return &CollaboratorError{Message: "DOCX parsing failed.", Err: err}
	}
	return writeOutput(outputPath, []byte(html))
}

func (e *Engine) runHTMLToContainer(ctx context.Context, req ConversionRequest, outputPath string) error {
	html, err := e.docExtractor.ToHTML(req.SourcePath)
	if err != nil {
		return &CollaboratorError{Message: "DOCX to PDF failed.", Err: err}
	}
	if err := e.pdf.RenderHTML(ctx, html, outputPath); err != nil {
		return &CollaboratorError{Message: "PDF engine failed.", Err: err}
	}
	return nil
}

func (e *Engine) runTextExtraction(req ConversionRequest, outputPath string) error {
	if req.SourceExt == "docx" {
		text, err := e.docExtractor.ToText(req.SourcePath)
		if err != nil {
			return &CollaboratorError{Message: "DOCX parsing failed.", Err: err}
		}
		return writeOutput(outputPath, []byte(text))
	}

	text, err := e.pdfText.Text(req.SourcePath)
	if err != nil {
		return &CollaboratorError{Message: "PDF to Text failed.", Err: err}
	}
	return writeOutput(outputPath, []byte(text))
}

func (e *Engine) runArchiveWrap(strat Strategy, req ConversionRequest, outputPath string) error {
	// Exactly one file per archive in this version; the entry keeps the
	// original upload name.
	if err := e.archiver.Wrap(req.SourcePath, req.OriginalName, strat.ArchiveKind, strat.Gzip, outputPath); err != nil {
		return &CollaboratorError{Message: err.Error(), Err: err}
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ResourceError{Op: "write output", Err: err}
	}
	return nil
}

func unsupportedPairMessage(cat Category) string {
	switch cat {
	case CategoryDocument:
		return "Conversion not supported in portable mode."
	case CategoryArchive:
		return "Only ZIP, TAR and TGZ outputs supported currently."
	}
	return "Format pair not fully supported in this version."
}
