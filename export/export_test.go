package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/pcm720/fontbake/pixel"
)

func testSurface() *pixel.Surface {
	return &pixel.Surface{
		Width:  3,
		Height: 2,
		Pix: []byte{
			10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120,
			1, 2, 3, 255, 4, 5, 6, 0, 7, 8, 9, 128,
		},
	}
}

// Checks that every decoded pixel matches the source surface
func assertSameSurface(t *testing.T, s *pixel.Surface, img image.Image) {
	t.Helper()
	require.Equal(t, image.Rect(0, 0, s.Width, s.Height), img.Bounds())
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			i := (y*s.Width + x) * 4
			want := color.NRGBA{R: s.Pix[i], G: s.Pix[i+1], B: s.Pix[i+2], A: s.Pix[i+3]}
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if want.A == 0 {
				assert.Zero(t, got.A, "pixel %d,%d", x, y)
				continue
			}
			assert.Equal(t, want, got, "pixel %d,%d", x, y)
		}
	}
}

func TestPageFileName(t *testing.T) {
	assert.Equal(t, "Item_Stack_1_A.png", PageFileName("Item_Stack", 1, "png"))
	assert.Equal(t, "Death_Text_12_A.bmp", PageFileName("Death_Text", 12, ".bmp"))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": FormatPNG, ".PNG": FormatPNG, "bmp": FormatBMP, "tif": FormatTIFF, "tiff": FormatTIFF} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("jpeg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestToBGRA(t *testing.T) {
	s := testSurface()
	img, err := ToBGRA(s, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Stride)
	assert.Equal(t, []byte{30, 20, 10, 40, 70, 60, 50, 80, 110, 100, 90, 120}, img.Pix[:12])
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 40}, img.NRGBAAt(0, 0))
	assert.False(t, img.Opaque())

	aligned, err := ToBGRA(s, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, aligned.Stride)
	assert.Len(t, aligned.Pix, 32)
	assert.Equal(t, img.Pix[12:24], aligned.Pix[16:28])
	assert.Equal(t, color.NRGBA{R: 7, G: 8, B: 9, A: 128}, aligned.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{}, aligned.NRGBAAt(3, 1))

	_, err = ToBGRA(&pixel.Surface{Width: 2, Height: 2, Pix: make([]byte, 4)}, 1)
	assert.ErrorIs(t, err, pixel.ErrInvalidArgument)
}

func TestEncodersRoundTrip(t *testing.T) {
	// bmp and tiff store associated alpha, so translucent texels are only
	// checked against png
	opaque := &pixel.Surface{
		Width:  2,
		Height: 2,
		Pix:    []byte{10, 20, 30, 255, 40, 50, 60, 255, 70, 80, 90, 255, 0, 0, 0, 255},
	}

	tests := []struct {
		format Format
		s      *pixel.Surface
		decode func(*bytes.Buffer) (image.Image, error)
	}{
		{FormatPNG, testSurface(), func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{FormatPNG, opaque, func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{FormatBMP, opaque, func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) }},
		{FormatTIFF, opaque, func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) }},
	}
	for _, tc := range tests {
		img, err := ToBGRA(tc.s, 4)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, tc.format.Encode(&buf, img), tc.format)
		got, err := tc.decode(&buf)
		require.NoError(t, err, tc.format)
		assertSameSurface(t, tc.s, got)
	}
}

func TestWritePage(t *testing.T) {
	dir := t.TempDir()
	s := testSurface()

	path, err := WritePage(dir, "Combat_Text", 2, s, Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Combat_Text_2_A.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assertSameSurface(t, s, img)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWritePageFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := WritePage(dir, "Broken", 1, testSurface(), Options{Format: "gif"})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
