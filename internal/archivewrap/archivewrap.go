// Package archivewrap writes single-entry archives. One input file becomes
// one archive containing exactly that file under its original name; there is
// no multi-file batching.
package archivewrap

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// Writer produces zip and tar archives.
type Writer struct{}

// New returns an archive writer.
func New() *Writer {
	return &Writer{}
}

// Wrap writes an archive of the given kind ("zip" or "tar") at outputPath
// containing the file at sourcePath stored as entryName. For tar, compress
// gzips the stream (tar.gz / tgz targets).
func (w *Writer) Wrap(sourcePath, entryName, kind string, compress bool, outputPath string) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("archivewrap: open %s: %w", sourcePath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("archivewrap: stat %s: %w", sourcePath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("archivewrap: create %s: %w", outputPath, err)
	}

	switch kind {
	case "zip":
		err = writeZip(out, src, entryName, info)
	case "tar":
		err = writeTar(out, src, entryName, info, compress)
	default:
		err = fmt.Errorf("archivewrap: unknown archive kind %q", kind)
	}
	if err != nil {
		out.Close()
		os.Remove(outputPath)
		return err
	}

	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("archivewrap: close %s: %w", outputPath, err)
	}
	return nil
}

func writeZip(out io.Writer, src io.Reader, entryName string, info os.FileInfo) error {
	zw := zip.NewWriter(out)

	header := &zip.FileHeader{
		Name:     entryName,
		Method:   zip.Deflate,
		Modified: info.ModTime(),
	}
	header.SetMode(info.Mode())

	ew, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("archivewrap: zip entry %s: %w", entryName, err)
	}
	if _, err := io.Copy(ew, src); err != nil {
		return fmt.Errorf("archivewrap: zip copy: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archivewrap: finalize zip: %w", err)
	}
	return nil
}

func writeTar(out io.Writer, src io.Reader, entryName string, info os.FileInfo, compress bool) error {
	var dst io.Writer = out
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(out)
		dst = gz
	}

	tw := tar.NewWriter(dst)
	header := &tar.Header{
		Name:    entryName,
		Mode:    int64(info.Mode().Perm()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("archivewrap: tar header %s: %w", entryName, err)
	}
	if _, err := io.Copy(tw, src); err != nil {
		return fmt.Errorf("archivewrap: tar copy: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("archivewrap: finalize tar: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("archivewrap: finalize gzip: %w", err)
		}
	}
	return nil
}
