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

// Option configures an Engine.
type Option func(*Engine)

// WithImageCodec overrides the native image codec.
func WithImageCodec(c ImageCodec) Option {
	return func(e *Engine) { e.codec = c }
}

// WithTranscoder overrides the universal transcode engine.
func WithTranscoder(t Transcoder) Option {
	return func(e *Engine) { e.transcoder = t }
}

// WithPDFAssembler overrides the PDF container assembler.
func WithPDFAssembler(p PDFAssembler) Option {
	return func(e *Engine) { e.pdf = p }
}

// WithDocumentWriter overrides the word-processing container writer.
func WithDocumentWriter(w DocumentWriter) Option {
	return func(e *Engine) { e.docWriter = w }
}

// WithDocumentExtractor overrides the DOCX markup extractor.
func WithDocumentExtractor(x DocumentExtractor) Option {
	return func(e *Engine) { e.docExtractor = x }
}

// WithPDFTextExtractor overrides the PDF text extractor.
func WithPDFTextExtractor(x PDFTextExtractor) Option {
	return func(e *Engine) { e.pdfText = x }
}

// WithArchiveWriter overrides the archive writer.
func WithArchiveWriter(a ArchiveWriter) Option {
	return func(e *Engine) { e.archiver = a }
}
