package fontdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIO              = errors.New("i/o error")
)

// An Encoder writes compiled fonts in the positional metadata layout:
//
//	int32   spacing
//	int32   line spacing (max over pages)
//	uint16  default character
//	int32   page count
//	per page:
//	  int32 + 4*int32 each    glyph bounds
//	  4*int32                 padding
//	  int32 + uint16 each     characters
//	  int32 + 3*float32 each  kerning
//
// All values are little-endian. There is no magic number and no version.
type Encoder struct {
	w io.Writer

	// Strict rejects pages whose glyph, character and kerning
	// counts differ instead of writing them as given.
	Strict bool
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes f. Nothing reaches the underlying writer if f is rejected.
func (e *Encoder) Encode(f *CompiledFont) error {
	if f == nil {
		return fmt.Errorf("%w: nil font", ErrInvalidArgument)
	}
	if e.Strict {
		for i := range f.Pages {
			p := &f.Pages[i]
			if !p.aligned() {
				return fmt.Errorf("%w: page %d has %d glyphs, %d characters, %d kerning entries",
					ErrInvalidArgument, i+1, len(p.Glyphs), len(p.Characters), len(p.Kerning))
			}
		}
	}

	bw := newByteWriter(e.w)
	bw.writeInt32(f.Spacing, f.LineSpacing())
	bw.writeChar(f.DefaultCharacter)
	bw.writeInt32(int32(len(f.Pages)))
	for i := range f.Pages {
		p := &f.Pages[i]
		bw.writeRects(p.Glyphs)
		bw.writeRect(p.Padding)
		bw.writeChars(p.Characters)
		bw.writeVectors(p.Kerning)
	}

	if err := bw.flush(); err != nil {
		return errors.Join(ErrIO, err)
	}
	return nil
}

// Serialize writes f to w using a default Encoder
func Serialize(w io.Writer, f *CompiledFont) error {
	return NewEncoder(w).Encode(f)
}

// Marshal returns the metadata bytes of f
func Marshal(f *CompiledFont) ([]byte, error) {
	var buf bytes.Buffer
	if err := Serialize(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
