package fontdata

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// byteWriter buffers little-endian values until flushed to the underlying writer.
type byteWriter struct {
	w      io.Writer
	buffer bytes.Buffer
	tmp    [4]byte
}

func newByteWriter(w io.Writer) *byteWriter {
	return &byteWriter{w: w}
}

func (w *byteWriter) flush() error {
	_, err := w.w.Write(w.buffer.Bytes())
	if err != nil {
		return err
	}
	w.buffer.Reset()
	return nil
}

func (w *byteWriter) writeInt32(vals ...int32) {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(w.tmp[:], uint32(v))
		w.buffer.Write(w.tmp[:4])
	}
}

func (w *byteWriter) writeFloat32(vals ...float32) {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(w.tmp[:], math.Float32bits(v))
		w.buffer.Write(w.tmp[:4])
	}
}

func (w *byteWriter) writeChar(c Char) {
	binary.LittleEndian.PutUint16(w.tmp[:], uint16(c))
	w.buffer.Write(w.tmp[:2])
}

func (w *byteWriter) writeRect(r Rectangle) {
	w.writeInt32(r.X, r.Y, r.Width, r.Height)
}

func (w *byteWriter) writeRects(rects []Rectangle) {
	w.writeInt32(int32(len(rects)))
	for _, r := range rects {
		w.writeRect(r)
	}
}

func (w *byteWriter) writeChars(chars []Char) {
	w.writeInt32(int32(len(chars)))
	for _, c := range chars {
		w.writeChar(c)
	}
}

func (w *byteWriter) writeVectors(vecs []Vector3) {
	w.writeInt32(int32(len(vecs)))
	for _, v := range vecs {
		w.writeFloat32(v.X, v.Y, v.Z)
	}
}
