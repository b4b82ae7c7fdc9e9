package export

import (
	"image"
	"image/color"
)

// BGRA is an in-memory image whose pixels are stored as non-premultiplied
// B,G,R,A bytes. Rows are Stride bytes apart and may carry trailing padding.
type BGRA struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewBGRA returns a tightly packed BGRA image
func NewBGRA(r image.Rectangle) *BGRA {
	return NewAlignedBGRA(r, 1)
}

// NewAlignedBGRA returns a BGRA image whose stride is rounded up to a multiple of align.
func NewAlignedBGRA(r image.Rectangle, align int) *BGRA {
	if align < 1 {
		align = 1
	}
	stride := (r.Dx()*4 + align - 1) / align * align
	return &BGRA{
		Pix:    make([]uint8, stride*r.Dy()),
		Stride: stride,
		Rect:   r,
	}
}

func (p *BGRA) ColorModel() color.Model { return color.NRGBAModel }

func (p *BGRA) Bounds() image.Rectangle { return p.Rect }

func (p *BGRA) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

func (p *BGRA) NRGBAAt(x, y int) color.NRGBA {
	if !image.Pt(x, y).In(p.Rect) {
		return color.NRGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[2], G: s[1], B: s[0], A: s[3]}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *BGRA) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (p *BGRA) Opaque() bool {
	w := p.Rect.Dx() * 4
	for y := 0; y < p.Rect.Dy(); y++ {
		row := p.Pix[y*p.Stride : y*p.Stride+w]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0xff {
				return false
			}
		}
	}
	return true
}
