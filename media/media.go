// Package media identifies and decodes raster images referenced by scene
// image nodes.
//
// Formats are recognized from their magic bytes, never from a file name or
// a declared content type. PNG, JPEG, GIF, WebP, BMP and TIFF are decoded;
// anything else is rejected with ErrUnsupportedImage.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for data that is not a supported raster
// image format.
var ErrUnsupportedImage = errors.New("media: unsupported image format")

// MIME types of the supported formats.
const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
	GIF  = "image/gif"
	WebP = "image/webp"
	BMP  = "image/bmp"
	TIFF = "image/tiff"
)

type decodeFunc func(io.Reader) (image.Image, error)

var decoders = map[string]decodeFunc{
	PNG:  png.Decode,
	JPEG: jpeg.Decode,
	GIF:  gif.Decode,
	WebP: webp.Decode,
	BMP:  bmp.Decode,
	TIFF: tiff.Decode,
}

// Sniff returns the MIME type of data.
func Sniff(data []byte) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil || !Supported(kind.MIME.Value) {
		return "", ErrUnsupportedImage
	}
	return kind.MIME.Value, nil
}

// Decode sniffs and decodes data, returning the image and its MIME type.
func Decode(data []byte) (image.Image, string, error) {
	mime, err := Sniff(data)
	if err != nil {
		return nil, "", err
	}
	img, err := decoders[mime](bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("media: decode %s: %w", mime, err)
	}
	return img, mime, nil
}

// Supported reports whether mime names a decodable format.
func Supported(mime string) bool {
	_, ok := decoders[mime]
	return ok
}
