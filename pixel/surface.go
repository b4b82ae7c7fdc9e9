package pixel

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	// decoders for page textures
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Defines a normalized surface: one R,G,B,A pixel per texel,
// tightly packed rows, top to bottom
type Surface struct {
	Width, Height int
	Pix           []byte
}

// Checks that the buffer matches the surface dimensions
func (s *Surface) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: negative surface size %dx%d", ErrInvalidArgument, s.Width, s.Height)
	}
	if len(s.Pix) != s.Width*s.Height*4 {
		return fmt.Errorf("%w: surface %dx%d holds %d bytes, want %d",
			ErrInvalidArgument, s.Width, s.Height, len(s.Pix), s.Width*s.Height*4)
	}
	return nil
}

// Normalize flattens any decoded image into a Surface.
// The result never aliases img.
func Normalize(img image.Image) *Surface {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	s := &Surface{Width: b.Dx(), Height: b.Dy()}
	rowLen := s.Width * 4
	if nrgba.Stride == rowLen {
		s.Pix = nrgba.Pix[:rowLen*s.Height]
		return s
	}
	s.Pix = make([]byte, rowLen*s.Height)
	for y := 0; y < s.Height; y++ {
		copy(s.Pix[y*rowLen:(y+1)*rowLen], nrgba.Pix[y*nrgba.Stride:])
	}
	return s
}

// Decodes a page texture from disk and normalizes it
func Load(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to decode texture %q", path), err)
	}
	return Normalize(img), nil
}
