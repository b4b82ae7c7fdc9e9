package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/pcm720/fontbake/pixel"
)

// Defines a lossless image container
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

var ErrUnknownFormat = errors.New("unknown image format")

// Maps a format name or file extension to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode writes img to w in the given container
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Returns the file name of the index-th page image; index starts at 1
func PageFileName(base string, index int, ext string) string {
	return fmt.Sprintf("%s_%d_A.%s", base, index, strings.TrimPrefix(ext, "."))
}

// Options control how a page image is laid out and encoded
type Options struct {
	Format Format
	Align  int // destination row alignment in bytes
}

// Wraps a normalized surface into a BGRA image ready for encoding
func ToBGRA(s *pixel.Surface, align int) (*BGRA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	converted, _, err := pixel.Convert(s.Pix, s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	img := NewAlignedBGRA(image.Rect(0, 0, s.Width, s.Height), align)
	if err := pixel.CopyRows(img.Pix, img.Stride, converted, s.Width, s.Height); err != nil {
		return nil, err
	}
	logrus.Debugf("converted %dx%d surface, %.2f bytes per pixel, stride %d",
		s.Width, s.Height, pixel.BytesPerPixel(len(s.Pix), s.Width, s.Height), img.Stride)
	return img, nil
}

// WritePage converts s and writes it to dir as the index-th page of base.
// The image is written to a temporary file first, so a failure never leaves
// a partial page behind.
func WritePage(dir, base string, index int, s *pixel.Surface, opts Options) (path string, err error) {
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	img, err := ToBGRA(s, opts.Align)
	if err != nil {
		return "", err
	}

	path = filepath.Join(dir, PageFileName(base, index, string(opts.Format)))
	tmp, err := os.CreateTemp(dir, ".page-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = opts.Format.Encode(tmp, img); err != nil {
		return "", errors.Join(fmt.Errorf("failed to encode %s", path), err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	logrus.Infof("saved %s (%dx%d)", path, s.Width, s.Height)
	return path, nil
}
