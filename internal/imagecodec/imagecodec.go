// Package imagecodec is the native image transform collaborator. It decodes
// and re-encodes raster images in-process and deliberately supports a narrow
// format matrix; targets outside it are rejected so the dispatcher can fall
// back to the transcode engine.
package imagecodec

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// Codec re-encodes images using the imaging library.
type Codec struct{}

// New returns the native image codec.
func New() *Codec {
	return &Codec{}
}

var encodeFormats = map[string]imaging.Format{
	"jpg":  imaging.JPEG,
	"jpeg": imaging.JPEG,
	"png":  imaging.PNG,
	"gif":  imaging.GIF,
	"tif":  imaging.TIFF,
	"tiff": imaging.TIFF,
	"bmp":  imaging.BMP,
}

// Encode decodes the image at path and re-encodes it as format, returning the
// encoded bytes. Formats outside the codec's matrix (webp, avif, heic, raw
// camera formats, ...) yield an error rather than a partial result.
func (c *Codec) Encode(path, format string) ([]byte, error) {
	target, ok := encodeFormats[format]
	if !ok {
		return nil, fmt.Errorf("imagecodec: format %q not supported by native codec", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagecodec: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imagecodec: decode %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, target); err != nil {
		return nil, fmt.Errorf("imagecodec: encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
