package bmfont

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/pcm720/fontbake/fontdata"
	"github.com/pcm720/fontbake/pixel"
)

// CompileOptions tune how a descriptor is mapped onto a compiled font
type CompileOptions struct {
	DefaultCharacter rune   // 0 writes the NoDefaultCharacter sentinel
	Spacing          *int32 // overrides the descriptor's horizontal spacing
	ExtraLineSpacing int32  // added to every page's line height
	SkipTextures     bool
}

// Compile maps the descriptor onto a compiled font. Pages keep the order of
// their IDs; glyphs keep descriptor order within a page. Page textures are
// loaded and normalized unless opts.SkipTextures is set.
func (f *Font) Compile(opts CompileOptions) (*fontdata.CompiledFont, error) {
	def, ok := toChar(opts.DefaultCharacter)
	if !ok {
		return nil, fmt.Errorf("%w: default character %U does not fit in one UTF-16 code unit",
			fontdata.ErrInvalidArgument, opts.DefaultCharacter)
	}
	out := &fontdata.CompiledFont{
		Spacing:          int32(f.Spacing[0]),
		DefaultCharacter: def,
	}
	if opts.Spacing != nil {
		out.Spacing = *opts.Spacing
	}

	pages := append([]Page(nil), f.Pages...)
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })

	index := make(map[int]int, len(pages))
	for i, p := range pages {
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate page id %d", fontdata.ErrInvalidArgument, p.ID)
		}
		index[p.ID] = i
		out.Pages = append(out.Pages, fontdata.FontPage{
			Padding: fontdata.Rectangle{
				X:      int32(f.Padding[3]),
				Y:      int32(f.Padding[0]),
				Width:  int32(f.Padding[1]),
				Height: int32(f.Padding[2]),
			},
			LineSpacing: int32(f.LineHeight) + opts.ExtraLineSpacing,
		})
	}

	for _, c := range f.Chars {
		i, ok := index[c.Page]
		if !ok {
			return nil, fmt.Errorf("%w: char %U refers to missing page %d", fontdata.ErrInvalidArgument, c.ID, c.Page)
		}
		unit, ok := toChar(c.ID)
		if !ok {
			logrus.Warnf("skipping char %U: outside the basic multilingual plane", c.ID)
			continue
		}
		page := &out.Pages[i]
		page.Glyphs = append(page.Glyphs, fontdata.Rectangle{
			X:      int32(c.X),
			Y:      int32(c.Y),
			Width:  int32(c.Width),
			Height: int32(c.Height),
		})
		page.Characters = append(page.Characters, unit)
		page.Kerning = append(page.Kerning, fontdata.Vector3{
			X: float32(c.XOffset),
			Y: float32(c.Width),
			Z: float32(c.XAdvance - c.XOffset - c.Width),
		})
	}
	if len(f.Kernings) > 0 {
		logrus.Warnf("dropping %d kerning pairs: pair kerning has no place in the metadata layout", len(f.Kernings))
	}

	if opts.SkipTextures {
		return out, nil
	}
	for i, p := range pages {
		path := p.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(f.dir, path)
		}
		logrus.Debugf("loading page %d texture %s", p.ID, path)
		tex, err := pixel.Load(path)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to load page %d", p.ID), err)
		}
		if f.ScaleW != 0 && f.ScaleH != 0 && (tex.Width != f.ScaleW || tex.Height != f.ScaleH) {
			logrus.Warnf("page %d is %dx%d, descriptor declares %dx%d", p.ID, tex.Width, tex.Height, f.ScaleW, f.ScaleH)
		}
		out.Pages[i].Texture = tex
	}
	return out, nil
}

// Converts a rune to a single UTF-16 code unit
func toChar(r rune) (fontdata.Char, bool) {
	if r < 0 || r > 0xffff || (r >= 0xd800 && r <= 0xdfff) {
		return 0, false
	}
	return fontdata.Char(r), true
}
