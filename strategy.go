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

// StrategyKind names one concrete way of performing a conversion. Each kind
// is backed by exactly one collaborator.
type StrategyKind string

const (
	// DirectCodecTransform re-encodes an image with the native codec.
	DirectCodecTransform StrategyKind = "direct-codec-transform"
	// TranscodeEngine hands the file to the universal transcoder. It
	// accepts a much larger format matrix than the native codec at
	// higher cost, which is why it sits last in multi-entry chains.
	TranscodeEngine StrategyKind = "transcode-engine"
	// ImageToContainerEmbed embeds an image into a single-page PDF.
	ImageToContainerEmbed StrategyKind = "image-to-container-embed"
	// TextExtractionToDocument extracts PDF text and packs the
	// newline-split paragraphs into a DOCX container.
	TextExtractionToDocument StrategyKind = "text-extraction-to-document"
	// DocumentToHTMLExport exports a DOCX body as HTML.
	DocumentToHTMLExport StrategyKind = "document-to-html-export"
	// DocumentToHTMLToContainer exports a DOCX body as HTML and renders
	// it into a paginated PDF.
	DocumentToHTMLToContainer StrategyKind = "document-to-html-to-container"
	// DocumentTextExtraction extracts plain text from a DOCX or PDF.
	DocumentTextExtraction StrategyKind = "document-text-extraction"
	// ArchiveWrap wraps the single input file into a fresh archive.
	ArchiveWrap StrategyKind = "archive-wrap"
)

// Strategy is a stateless descriptor of one conversion attempt. Strategies
// are constructed fresh per request by SelectStrategies and carry only the
// inputs their collaborator needs beyond the request itself.
type Strategy struct {
	Kind StrategyKind

	// ArchiveKind is "zip" or "tar" for ArchiveWrap.
	ArchiveKind string
	// Gzip compresses the tar stream (tar.gz / tgz targets).
	Gzip bool
	// EmittedFormat overrides the target format in the output filename
	// when the strategy cannot emit the requested one verbatim (a "doc"
	// request still produces a ".docx" file).
	EmittedFormat string
}

// codecTargets are the image formats the native codec chain is attempted
// for; everything else in the image category goes straight to the
// transcode engine.
var codecTargets = newSet("jpg", "jpeg", "png", "webp", "gif", "tiff", "avif", "heic")

// SelectStrategies returns the ordered fallback chain for a conversion, or
// nil when the (category, source, target) combination is unsupported.
func SelectStrategies(sourceExt, target string, cat Category) []Strategy {
	switch cat {
	case CategoryImage:
		if _, ok := codecTargets[target]; ok {
			return []Strategy{
				{Kind: DirectCodecTransform},
				{Kind: TranscodeEngine},
			}
		}
		return []Strategy{{Kind: TranscodeEngine}}

	case CategoryVideo, CategoryAudio:
		return []Strategy{{Kind: TranscodeEngine}}

	case CategoryDocument:
		return selectDocumentStrategies(sourceExt, target)

	case CategoryArchive:
		switch target {
		case archiveZip:
			return []Strategy{{Kind: ArchiveWrap, ArchiveKind: "zip"}}
		case archiveTar:
			return []Strategy{{Kind: ArchiveWrap, ArchiveKind: "tar"}}
		case archiveTarGz, archiveTgz:
			return []Strategy{{Kind: ArchiveWrap, ArchiveKind: "tar", Gzip: true}}
		}
		return nil
	}

	return nil
}

func selectDocumentStrategies(sourceExt, target string) []Strategy {
	if _, srcIsImage := imageFormats[sourceExt]; srcIsImage && target == "pdf" {
		return []Strategy{{Kind: ImageToContainerEmbed}}
	}

	if sourceExt == "pdf" {
		switch target {
		case "docx", "doc":
			// The document builder only emits DOCX; a "doc" request
			// is served with a ".docx" file and the substitution is
			// surfaced in the outcome.
			return []Strategy{{Kind: TextExtractionToDocument, EmittedFormat: "docx"}}
		case "txt":
			return []Strategy{{Kind: DocumentTextExtraction}}
		}
	}

	if sourceExt == "docx" {
		switch target {
		case "pdf":
			return []Strategy{{Kind: DocumentToHTMLToContainer}}
		case "html":
			return []Strategy{{Kind: DocumentToHTMLExport}}
		case "txt":
			return []Strategy{{Kind: DocumentTextExtraction}}
		}
	}

	return nil
}
