package fontdata

import (
	"errors"
	"fmt"
	"io"
)

// Decode reads a compiled font written by Encoder. Line spacing is only
// stored globally, so every decoded page carries the global value.
// Textures are not part of the metadata and are left nil.
func Decode(r io.Reader) (*CompiledFont, error) {
	br := newByteReader(r)

	f := &CompiledFont{}
	f.Spacing = br.readInt32()
	lineSpacing := br.readInt32()
	f.DefaultCharacter = br.readChar()
	pageCount := br.readCount("page")
	for i := 0; i < pageCount && br.err == nil; i++ {
		var p FontPage
		p.Glyphs = br.readRects()
		p.Padding = br.readRect()
		p.Characters = br.readChars()
		p.Kerning = br.readVectors()
		p.LineSpacing = lineSpacing
		f.Pages = append(f.Pages, p)
	}

	if br.err != nil {
		if errors.Is(br.err, ErrInvalidArgument) {
			return nil, br.err
		}
		return nil, errors.Join(ErrIO, fmt.Errorf("failed to read font metadata"), br.err)
	}
	return f, nil
}
