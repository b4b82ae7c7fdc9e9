package fontdata

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// byteReader reads little-endian values and keeps the first error it sees.
type byteReader struct {
	r   *bufio.Reader
	err error
	tmp [4]byte
}

func newByteReader(r io.Reader) *byteReader {
	return &byteReader{r: bufio.NewReader(r)}
}

func (r *byteReader) fill(n int) []byte {
	if r.err != nil {
		return nil
	}
	if _, err := io.ReadFull(r.r, r.tmp[:n]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = err
		return nil
	}
	return r.tmp[:n]
}

func (r *byteReader) readInt32() int32 {
	b := r.fill(4)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

func (r *byteReader) readFloat32() float32 {
	b := r.fill(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func (r *byteReader) readChar() Char {
	b := r.fill(2)
	if b == nil {
		return 0
	}
	return Char(binary.LittleEndian.Uint16(b))
}

func (r *byteReader) readRect() Rectangle {
	return Rectangle{
		X:      r.readInt32(),
		Y:      r.readInt32(),
		Width:  r.readInt32(),
		Height: r.readInt32(),
	}
}

// Reads an element count, rejecting negative values
func (r *byteReader) readCount(what string) int {
	n := r.readInt32()
	if r.err == nil && n < 0 {
		r.err = fmt.Errorf("%w: negative %s count %d", ErrInvalidArgument, what, n)
	}
	if r.err != nil {
		return 0
	}
	return int(n)
}

func (r *byteReader) readRects() []Rectangle {
	n := r.readCount("glyph")
	var rects []Rectangle
	for i := 0; i < n && r.err == nil; i++ {
		rects = append(rects, r.readRect())
	}
	return rects
}

func (r *byteReader) readChars() []Char {
	n := r.readCount("character")
	var chars []Char
	for i := 0; i < n && r.err == nil; i++ {
		chars = append(chars, r.readChar())
	}
	return chars
}

func (r *byteReader) readVectors() []Vector3 {
	n := r.readCount("kerning")
	var vecs []Vector3
	for i := 0; i < n && r.err == nil; i++ {
		vecs = append(vecs, Vector3{X: r.readFloat32(), Y: r.readFloat32(), Z: r.readFloat32()})
	}
	return vecs
}
