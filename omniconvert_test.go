package omniconvert

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubCodec struct {
	data  []byte
	err   error
	calls int
}

func (s *stubCodec) Encode(path, format string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

type stubTranscoder struct {
	err     error
	output  []byte
	partial []byte
	calls   int
}

func (s *stubTranscoder) Transcode(ctx context.Context, sourcePath, outputPath string) error {
	s.calls++
	if s.err != nil {
		if s.partial != nil {
			os.WriteFile(outputPath, s.partial, 0o644)
		}
		return s.err
	}
	return os.WriteFile(outputPath, s.output, 0o644)
}

type stubPDFText struct {
	text string
	err  error
}

func (s *stubPDFText) Text(path string) (string, error) {
	return s.text, s.err
}

type stubDocWriter struct {
	paragraphs []string
	err        error
}

func (s *stubDocWriter) FromParagraphs(paragraphs []string, outputPath string) error {
	s.paragraphs = paragraphs
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(outputPath, []byte("docx"), 0o644)
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertDirectCodecSuccess(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, dir, "upload.png", "png-bytes")

	codec := &stubCodec{data: []byte("jpg-bytes")}
	engine := New(WithImageCodec(codec))

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "photo.png",
		SourceExt:    "png",
		TargetFormat: "jpg",
	}, outDir)

	if !outcome.Succeeded {
		t.Fatalf("expected success, got: %+v", outcome)
	}
	if outcome.OutputFilename != "photo.jpg" {
		t.Errorf("OutputFilename = %q, want %q", outcome.OutputFilename, "photo.jpg")
	}
	if outcome.RequestedFilename != "" {
		t.Errorf("RequestedFilename = %q, want empty", outcome.RequestedFilename)
	}
	if len(outcome.Attempts) != 1 || !outcome.Attempts[0].Succeeded || outcome.Attempts[0].Strategy != DirectCodecTransform {
		t.Errorf("unexpected attempts: %+v", outcome.Attempts)
	}

	data, err := os.ReadFile(outcome.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "jpg-bytes" {
		t.Errorf("output content = %q, want %q", data, "jpg-bytes")
	}
}

func TestConvertFallsBackToTranscoder(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, dir, "upload.png", "png-bytes")

	codec := &stubCodec{err: errors.New("codec rejects webp")}
	trans := &stubTranscoder{output: []byte("webp-bytes")}
	engine := New(WithImageCodec(codec), WithTranscoder(trans))

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "photo.png",
		SourceExt:    "png",
		TargetFormat: "webp",
	}, outDir)

	if !outcome.Succeeded {
		t.Fatalf("expected success after fallback, got: %+v", outcome)
	}
	if codec.calls != 1 || trans.calls != 1 {
		t.Errorf("calls: codec=%d transcoder=%d, want 1 and 1", codec.calls, trans.calls)
	}
	if len(outcome.Attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(outcome.Attempts))
	}
	if outcome.Attempts[0].Succeeded || outcome.Attempts[0].Err == nil {
		t.Errorf("first attempt should be a recorded failure: %+v", outcome.Attempts[0])
	}
	if !outcome.Attempts[1].Succeeded {
		t.Errorf("second attempt should have succeeded: %+v", outcome.Attempts[1])
	}
}

func TestConvertAllStrategiesFail(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, dir, "upload.png", "png-bytes")

	codec := &stubCodec{err: errors.New("bad input")}
	trans := &stubTranscoder{err: errors.New("engine exploded")}
	engine := New(WithImageCodec(codec), WithTranscoder(trans))

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "photo.png",
		SourceExt:    "png",
		TargetFormat: "jpg",
	}, outDir)

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	var convErr *ConversionError
	if !errors.As(outcome.Err, &convErr) {
		t.Fatalf("Err = %T, want *ConversionError", outcome.Err)
	}
	if len(convErr.Attempts) != 2 {
		t.Errorf("recorded attempts = %d, want 2", len(convErr.Attempts))
	}
	if want := "Conversion failed: "; len(outcome.ErrorMessage) < len(want) || outcome.ErrorMessage[:len(want)] != want {
		t.Errorf("ErrorMessage = %q, want %q prefix", outcome.ErrorMessage, want)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir should be empty after total failure, has %d entries", len(entries))
	}
}

func TestConvertDocRequestEmitsDocx(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, dir, "upload.pdf", "%PDF-fake")

	pdfText := &stubPDFText{text: "first line\nsecond line"}
	docs := &stubDocWriter{}
	engine := New(WithPDFTextExtractor(pdfText), WithDocumentWriter(docs))

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "report.pdf",
		SourceExt:    "pdf",
		TargetFormat: "doc",
	}, outDir)

	if !outcome.Succeeded {
		t.Fatalf("expected success, got: %+v", outcome)
	}
	if outcome.OutputFilename != "report.docx" {
		t.Errorf("OutputFilename = %q, want %q", outcome.OutputFilename, "report.docx")
	}
	if outcome.RequestedFilename != "report.doc" {
		t.Errorf("RequestedFilename = %q, want %q", outcome.RequestedFilename, "report.doc")
	}
	want := []string{"first line", "second line"}
	if len(docs.paragraphs) != len(want) {
		t.Fatalf("paragraphs = %v, want %v", docs.paragraphs, want)
	}
	for i := range want {
		if docs.paragraphs[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, docs.paragraphs[i], want[i])
		}
	}
}

func TestConvertTranscodeFailureMessage(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, dir, "upload.mov", "mov-bytes")

	trans := &stubTranscoder{err: errors.New("unknown encoder")}
	engine := New(WithTranscoder(trans))

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "clip.mov",
		SourceExt:    "mov",
		TargetFormat: "mp4",
	}, outDir)

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	if want := "Conversion failed: unknown encoder"; outcome.ErrorMessage != want {
		t.Errorf("ErrorMessage = %q, want %q", outcome.ErrorMessage, want)
	}
}

func TestConvertArchiveWrapZip(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, dir, "upload.txt", "important notes")

	engine := New()

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "notes.txt",
		SourceExt:    "txt",
		TargetFormat: "zip",
	}, outDir)

	if !outcome.Succeeded {
		t.Fatalf("expected success, got: %+v", outcome)
	}
	if outcome.OutputFilename != "notes.zip" {
		t.Errorf("OutputFilename = %q, want %q", outcome.OutputFilename, "notes.zip")
	}

	zr, err := zip.OpenReader(outcome.OutputPath)
	if err != nil {
		t.Fatalf("open produced zip: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 1 {
		t.Fatalf("zip entries = %d, want 1", len(zr.File))
	}
	if zr.File[0].Name != "notes.txt" {
		t.Errorf("entry name = %q, want %q", zr.File[0].Name, "notes.txt")
	}
}

func TestConvertUnsupportedPair(t *testing.T) {
	outDir := t.TempDir()
	engine := New()

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   filepath.Join(t.TempDir(), "upload.bin"),
		OriginalName: "data.bin",
		SourceExt:    "bin",
		TargetFormat: "zzz",
	}, outDir)

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	if !IsUnsupportedPair(outcome.Err) {
		t.Errorf("Err = %v, want UnsupportedPairError", outcome.Err)
	}
	if want := "Format pair not fully supported in this version."; outcome.ErrorMessage != want {
		t.Errorf("ErrorMessage = %q, want %q", outcome.ErrorMessage, want)
	}
	if len(outcome.Attempts) != 0 {
		t.Errorf("attempts = %d, want 0", len(outcome.Attempts))
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("no filesystem writes expected for unsupported pair, found %d entries", len(entries))
	}
}

func TestConvertUnsupportedDocumentPairMessage(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "upload.docx", "docx-bytes")
	engine := New()

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "doc.docx",
		SourceExt:    "docx",
		TargetFormat: "odt",
	}, t.TempDir())

	if !IsUnsupportedPair(outcome.Err) {
		t.Fatalf("Err = %v, want UnsupportedPairError", outcome.Err)
	}
	if want := "Conversion not supported in portable mode."; outcome.ErrorMessage != want {
		t.Errorf("ErrorMessage = %q, want %q", outcome.ErrorMessage, want)
	}
}

func TestConvertMissingInputIsResourceFailure(t *testing.T) {
	engine := New(WithImageCodec(&stubCodec{data: []byte("x")}))

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   filepath.Join(t.TempDir(), "does-not-exist.png"),
		OriginalName: "photo.png",
		SourceExt:    "png",
		TargetFormat: "jpg",
	}, t.TempDir())

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	if !IsResourceFailure(outcome.Err) {
		t.Errorf("Err = %v, want ResourceError", outcome.Err)
	}
	if len(outcome.Attempts) != 0 {
		t.Errorf("missing input should short-circuit before any attempt, got %d", len(outcome.Attempts))
	}
}

func TestConvertFailedAttemptLeavesNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, dir, "upload.mov", "mov-bytes")

	trans := &stubTranscoder{err: errors.New("truncated"), partial: []byte("half a file")}
	engine := New(WithTranscoder(trans))

	outcome := engine.Convert(context.Background(), ConversionRequest{
		SourcePath:   src,
		OriginalName: "clip.mov",
		SourceExt:    "mov",
		TargetFormat: "mp4",
	}, outDir)

	if outcome.Succeeded {
		t.Fatal("expected failure")
	}
	if _, err := os.Stat(filepath.Join(outDir, "clip.mp4")); !os.IsNotExist(err) {
		t.Errorf("partial output should have been removed, stat err = %v", err)
	}
}

func TestUnsupportedPairMessages(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryDocument, "Conversion not supported in portable mode."},
		{CategoryArchive, "Only ZIP, TAR and TGZ outputs supported currently."},
		{CategoryUnknown, "Format pair not fully supported in this version."},
	}
	for _, tt := range tests {
		if got := unsupportedPairMessage(tt.category); got != tt.want {
			t.Errorf("unsupportedPairMessage(%v) = %q, want %q", tt.category, got, tt.want)
		}
	}
}
