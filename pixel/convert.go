package pixel

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrBufferSizeMismatch = errors.New("buffer size mismatch")
)

// Swizzle writes src (R,G,B,A) into dst as B,G,R,A.
// Nothing is written unless both buffers match width*height*4.
func Swizzle(dst, src []byte, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidArgument, width, height)
	}
	if len(src) != width*height*4 {
		return fmt.Errorf("%w: source holds %d bytes, want %d for %dx%d",
			ErrInvalidArgument, len(src), width*height*4, width, height)
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: destination holds %d bytes, source %d",
			ErrBufferSizeMismatch, len(dst), len(src))
	}

	for i := 0; i < len(src); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
	return nil
}

// Convert allocates a tightly packed B,G,R,A copy of src and returns it
// together with its row stride.
func Convert(src []byte, width, height int) ([]byte, int, error) {
	if width < 0 || height < 0 {
		return nil, 0, fmt.Errorf("%w: negative size %dx%d", ErrInvalidArgument, width, height)
	}
	out := make([]byte, width*height*4)
	if err := Swizzle(out, src, width, height); err != nil {
		return nil, 0, err
	}
	return out, width * 4, nil
}

// CopyRows copies a tightly packed buffer into a destination whose rows are
// dstStride bytes apart. Bytes between rows are left untouched.
func CopyRows(dst []byte, dstStride int, src []byte, width, height int) error {
	rowLen := width * 4
	if width < 0 || height < 0 || dstStride < rowLen {
		return fmt.Errorf("%w: stride %d too small for width %d", ErrInvalidArgument, dstStride, width)
	}
	if len(src) != rowLen*height {
		return fmt.Errorf("%w: source holds %d bytes, want %d", ErrInvalidArgument, len(src), rowLen*height)
	}
	if height == 0 || rowLen == 0 {
		return nil
	}
	if need := dstStride*(height-1) + rowLen; len(dst) < need {
		return fmt.Errorf("%w: destination holds %d bytes, need %d", ErrBufferSizeMismatch, len(dst), need)
	}

	if dstStride == rowLen {
		copy(dst, src)
		return nil
	}
	for y := 0; y < height; y++ {
		copy(dst[y*dstStride:y*dstStride+rowLen], src[y*rowLen:(y+1)*rowLen])
	}
	return nil
}

// Reports bytes per pixel of a raw buffer, 0 for an empty surface
func BytesPerPixel(n, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float64(n) / float64(width*height)
}
