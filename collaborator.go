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

import "context"

// ConversionRequest describes one conversion job. It is immutable once
// constructed at the ingress boundary and consumed exactly once.
type ConversionRequest struct {
	// SourcePath points at the already-stored input file.
	SourcePath string
	// OriginalName is the upload's original filename.
	OriginalName string
	// SourceExt is the source extension, lowercase without the dot.
	SourceExt string
	// TargetFormat is the requested format token, lowercase without the dot.
	TargetFormat string
	// CustomName optionally overrides the derived output base name.
	CustomName string
}

// StrategyAttempt records one strategy invocation and how it ended.
type StrategyAttempt struct {
	Strategy  StrategyKind
	Succeeded bool
	Err       error
}

// ConversionOutcome is the uniform result of a dispatch. Exactly one
// succeeding attempt produces OutputPath; on failure ErrorMessage carries the
// category-appropriate user-facing text and Err the typed cause.
type ConversionOutcome struct {
	Succeeded      bool
	OutputPath     string
	OutputFilename string
	// RequestedFilename is set when the emitted filename differs from
	// `<base>.<targetFormat>` because a strategy forced another extension
	// (a "doc" request emitting ".docx").
	RequestedFilename string
	ErrorMessage      string
	Err               error
	Attempts          []StrategyAttempt
}

// ImageCodec re-encodes an image file into another image format, returning
// the encoded bytes. It rejects format combinations outside its matrix with
// an error, which the dispatcher treats as a cue to fall back.
type ImageCodec interface {
	Encode(path, format string) ([]byte, error)
}

// Transcoder is the universal media conversion engine. It writes the output
// file itself and must not leave partial output behind on failure.
type Transcoder interface {
	Transcode(ctx context.Context, sourcePath, outputPath string) error
}

// PDFAssembler builds PDF containers.
type PDFAssembler interface {
	// EmbedImage writes a single-page PDF sized to the given image.
	// Format is the image's encoding ("png" or "jpg").
	EmbedImage(image []byte, format, outputPath string) error
	// RenderHTML renders markup into a paginated PDF.
	RenderHTML(ctx context.Context, html, outputPath string) error
}

// DocumentWriter packs plain paragraphs into a word-processing container.
type DocumentWriter interface {
	FromParagraphs(paragraphs []string, outputPath string) error
}

// DocumentExtractor exports the body of a word-processing document.
type DocumentExtractor interface {
	ToHTML(path string) (string, error)
	ToText(path string) (string, error)
}

// PDFTextExtractor pulls the text layer out of a PDF.
type PDFTextExtractor interface {
	Text(path string) (string, error)
}

// ArchiveWriter wraps a single file into a new archive. Kind is "zip" or
// "tar"; compress gzips the tar stream. The entry is stored under entryName.
type ArchiveWriter interface {
	Wrap(sourcePath, entryName, kind string, compress bool, outputPath string) error
}
