package fontdata

import "github.com/pcm720/fontbake/pixel"

// Written when the source font has no fallback glyph
const NoDefaultCharacter Char = 0

// Defines a rectangle in atlas coordinates
type Rectangle struct {
	X, Y, Width, Height int32
}

// Defines a kerning triple: left side bearing, advance width, right side bearing
type Vector3 struct {
	X, Y, Z float32
}

// A Char is a single UTF-16 code unit.
type Char uint16

// Defines a single atlas page and the metrics of the glyphs it holds.
// Glyphs, Characters and Kerning are index-aligned.
type FontPage struct {
	Glyphs      []Rectangle
	Padding     Rectangle
	Characters  []Char
	Kerning     []Vector3
	LineSpacing int32 // not serialized per page

	Texture *pixel.Surface // released once exported
}

// Defines a compiled font: global metrics plus ordered pages
type CompiledFont struct {
	Spacing          int32
	DefaultCharacter Char
	Pages            []FontPage
}

// LineSpacing returns the largest line spacing of all pages,
// or 0 if the font has no pages.
func (f *CompiledFont) LineSpacing() int32 {
	var spacing int32
	for i, page := range f.Pages {
		if i == 0 || page.LineSpacing > spacing {
			spacing = page.LineSpacing
		}
	}
	return spacing
}

// Checks that the parallel page arrays have equal lengths
func (p *FontPage) aligned() bool {
	return len(p.Glyphs) == len(p.Characters) && len(p.Characters) == len(p.Kerning)
}
