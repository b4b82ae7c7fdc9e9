package bmfont

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/pcm720/fontbake/fontdata"
)

const textDescriptor = `info face="Andy Bold" size=16 bold=1 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=1,2,3,4 spacing=2,1
common lineHeight=18 base=14 scaleW=4 scaleH=2 pages=2 packed=0
page id=1 file="andy_1.png"
page id=0 file="andy 0.png"
chars count=3
char id=65   x=0 y=0 width=2 height=2 xoffset=1 yoffset=3 xadvance=5 page=0 chnl=15
char id=66   x=2 y=0 width=2 height=2 xoffset=0 yoffset=3 xadvance=4 page=1 chnl=15
char id=20013 x=0 y=0 width=1 height=1 xoffset=-1 yoffset=0 xadvance=3 page=0 chnl=15
kernings count=2
kerning first=65 second=66 amount=-1
kerning first=66 second=65 amount=0
`

const xmlDescriptor = `<?xml version="1.0"?>
<font>
  <info face="Andy Bold" size="16" padding="1,2,3,4" spacing="2,1"/>
  <common lineHeight="18" base="14" scaleW="4" scaleH="2" pages="2" packed="0"/>
  <pages>
    <page id="1" file="andy_1.png"/>
    <page id="0" file="andy 0.png"/>
  </pages>
  <chars count="3">
    <char id="65" x="0" y="0" width="2" height="2" xoffset="1" yoffset="3" xadvance="5" page="0" chnl="15"/>
    <char id="66" x="2" y="0" width="2" height="2" xoffset="0" yoffset="3" xadvance="4" page="1" chnl="15"/>
    <char id="20013" x="0" y="0" width="1" height="1" xoffset="-1" yoffset="0" xadvance="3" page="0" chnl="15"/>
  </chars>
  <kernings count="2">
    <kerning first="65" second="66" amount="-1"/>
    <kerning first="66" second="65" amount="0"/>
  </kernings>
</font>
`

func expectedFont(dir string) *Font {
	return &Font{
		Name:       "Andy Bold",
		Size:       16,
		LineHeight: 18,
		Base:       14,
		ScaleW:     4,
		ScaleH:     2,
		Padding:    [4]int{1, 2, 3, 4},
		Spacing:    [2]int{2, 1},
		Pages:      []Page{{ID: 1, File: "andy_1.png"}, {ID: 0, File: "andy 0.png"}},
		Chars: []Char{
			{ID: 'A', X: 0, Y: 0, Width: 2, Height: 2, XOffset: 1, YOffset: 3, XAdvance: 5, Page: 0, Channel: 15},
			{ID: 'B', X: 2, Y: 0, Width: 2, Height: 2, XOffset: 0, YOffset: 3, XAdvance: 4, Page: 1, Channel: 15},
			{ID: '中', X: 0, Y: 0, Width: 1, Height: 1, XOffset: -1, YOffset: 0, XAdvance: 3, Page: 0, Channel: 15},
		},
		Kernings: []Kerning{{First: 'A', Second: 'B', Amount: -1}},
		dir:      dir,
	}
}

func TestParseText(t *testing.T) {
	f, err := Parse(strings.NewReader(textDescriptor), "fonts")
	require.NoError(t, err)
	if d := cmp.Diff(expectedFont("fonts"), f, cmp.AllowUnexported(Font{})); d != "" {
		t.Errorf("unexpected font (-want +got):\n%s", d)
	}
}

func TestParseXML(t *testing.T) {
	f, err := Parse(strings.NewReader(xmlDescriptor), "fonts")
	require.NoError(t, err)
	if d := cmp.Diff(expectedFont("fonts"), f, cmp.AllowUnexported(Font{})); d != "" {
		t.Errorf("unexpected font (-want +got):\n%s", d)
	}
}

func TestParseUTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.String(textDescriptor)
	require.NoError(t, err)

	f, err := Parse(strings.NewReader(encoded), "fonts")
	require.NoError(t, err)
	assert.Equal(t, "Andy Bold", f.Name)
	assert.Len(t, f.Chars, 3)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("common lineHeight=abc\n"), "")
	assert.ErrorContains(t, err, "line 1")

	_, err = Parse(strings.NewReader("info face=x padding=1,2\n"), "")
	assert.ErrorContains(t, err, "padding")

	_, err = Parse(strings.NewReader("page id=0\n"), "")
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("<font><info"), "")
	assert.Error(t, err)
}

func TestSplitLine(t *testing.T) {
	tag, fields := splitLine(`  page id=3 file="my page.png"  `)
	assert.Equal(t, "page", tag)
	assert.Equal(t, map[string]string{"id": "3", "file": "my page.png"}, fields)

	tag, fields = splitLine("chars")
	assert.Equal(t, "chars", tag)
	assert.Empty(t, fields)
}

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestCompile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "andy.fnt"), []byte(textDescriptor), 0644))
	writePNG(t, filepath.Join(dir, "andy 0.png"), 4, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	writePNG(t, filepath.Join(dir, "andy_1.png"), 4, 2, color.NRGBA{R: 5, G: 6, B: 7, A: 255})

	f, err := ParseDescriptor(filepath.Join(dir, "andy.fnt"))
	require.NoError(t, err)

	compiled, err := f.Compile(CompileOptions{DefaultCharacter: '?', ExtraLineSpacing: 2})
	require.NoError(t, err)

	want := &fontdata.CompiledFont{
		Spacing:          2,
		DefaultCharacter: '?',
		Pages: []fontdata.FontPage{
			{
				Glyphs:      []fontdata.Rectangle{{X: 0, Y: 0, Width: 2, Height: 2}, {X: 0, Y: 0, Width: 1, Height: 1}},
				Padding:     fontdata.Rectangle{X: 4, Y: 1, Width: 2, Height: 3},
				Characters:  []fontdata.Char{'A', 0x4e2d},
				Kerning:     []fontdata.Vector3{{X: 1, Y: 2, Z: 2}, {X: -1, Y: 1, Z: 3}},
				LineSpacing: 20,
			},
			{
				Glyphs:      []fontdata.Rectangle{{X: 2, Y: 0, Width: 2, Height: 2}},
				Padding:     fontdata.Rectangle{X: 4, Y: 1, Width: 2, Height: 3},
				Characters:  []fontdata.Char{'B'},
				Kerning:     []fontdata.Vector3{{X: 0, Y: 2, Z: 2}},
				LineSpacing: 20,
			},
		},
	}
	opt := cmpopts.IgnoreFields(fontdata.FontPage{}, "Texture")
	if d := cmp.Diff(want, compiled, opt); d != "" {
		t.Errorf("unexpected compiled font (-want +got):\n%s", d)
	}

	require.NotNil(t, compiled.Pages[0].Texture)
	assert.Equal(t, []byte{1, 2, 3, 4}, compiled.Pages[0].Texture.Pix[:4])
	assert.Equal(t, []byte{5, 6, 7, 255}, compiled.Pages[1].Texture.Pix[:4])
}

func TestCompileOptions(t *testing.T) {
	f := expectedFont("")
	spacing := int32(-1)
	compiled, err := f.Compile(CompileOptions{Spacing: &spacing, SkipTextures: true})
	require.NoError(t, err)
	assert.EqualValues(t, -1, compiled.Spacing)
	assert.Equal(t, fontdata.NoDefaultCharacter, compiled.DefaultCharacter)
	assert.Nil(t, compiled.Pages[0].Texture)

	_, err = f.Compile(CompileOptions{DefaultCharacter: 0x1f600, SkipTextures: true})
	assert.ErrorIs(t, err, fontdata.ErrInvalidArgument)

	f.Chars = append(f.Chars, Char{ID: 0x1f600, Page: 0}, Char{ID: 'C', Page: 7})
	_, err = f.Compile(CompileOptions{SkipTextures: true})
	assert.ErrorIs(t, err, fontdata.ErrInvalidArgument)

	f.Chars = f.Chars[:len(f.Chars)-1]
	compiled, err = f.Compile(CompileOptions{SkipTextures: true})
	require.NoError(t, err)
	assert.Len(t, compiled.Pages[0].Characters, 2)

	f.Pages = append(f.Pages, Page{ID: 0, File: "dup.png"})
	_, err = f.Compile(CompileOptions{SkipTextures: true})
	assert.ErrorIs(t, err, fontdata.ErrInvalidArgument)
}
