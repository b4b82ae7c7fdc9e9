package bmfont

import (
	"encoding/xml"
	"errors"
	"io"
)

type xmlChar struct {
	ID       int `xml:"id,attr"`
	X        int `xml:"x,attr"`
	Y        int `xml:"y,attr"`
	Width    int `xml:"width,attr"`
	Height   int `xml:"height,attr"`
	XOffset  int `xml:"xoffset,attr"`
	YOffset  int `xml:"yoffset,attr"`
	XAdvance int `xml:"xadvance,attr"`
	Page     int `xml:"page,attr"`
	Channel  int `xml:"chnl,attr"`
}

type xmlInfo struct {
	Face    string `xml:"face,attr"`
	Size    int    `xml:"size,attr"`
	Padding string `xml:"padding,attr"`
	Spacing string `xml:"spacing,attr"`
}

type xmlCommon struct {
	LineHeight int `xml:"lineHeight,attr"`
	Base       int `xml:"base,attr"`
	ScaleW     int `xml:"scaleW,attr"`
	ScaleH     int `xml:"scaleH,attr"`
}

type xmlPage struct {
	ID   int    `xml:"id,attr"`
	File string `xml:"file,attr"`
}

type xmlKerning struct {
	First  int `xml:"first,attr"`
	Second int `xml:"second,attr"`
	Amount int `xml:"amount,attr"`
}

type xmlFont struct {
	XMLName  xml.Name     `xml:"font"`
	Info     xmlInfo      `xml:"info"`
	Common   xmlCommon    `xml:"common"`
	Pages    []xmlPage    `xml:"pages>page"`
	Chars    []xmlChar    `xml:"chars>char"`
	Kernings []xmlKerning `xml:"kernings>kerning"`
}

// Parses the XML descriptor format
func parseXML(r io.Reader, dir string) (*Font, error) {
	var data xmlFont
	if err := xml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	f := &Font{
		Name:       data.Info.Face,
		Size:       data.Info.Size,
		LineHeight: data.Common.LineHeight,
		Base:       data.Common.Base,
		ScaleW:     data.Common.ScaleW,
		ScaleH:     data.Common.ScaleH,
		dir:        dir,
	}
	if err := parseList(data.Info.Padding, f.Padding[:]); err != nil {
		return nil, errors.Join(errors.New("failed to parse padding"), err)
	}
	if err := parseList(data.Info.Spacing, f.Spacing[:]); err != nil {
		return nil, errors.Join(errors.New("failed to parse spacing"), err)
	}
	for _, p := range data.Pages {
		if p.File == "" {
			return nil, errors.New("page without file")
		}
		f.Pages = append(f.Pages, Page{ID: p.ID, File: p.File})
	}
	for _, c := range data.Chars {
		f.Chars = append(f.Chars, Char{
			ID:       rune(c.ID),
			X:        c.X,
			Y:        c.Y,
			Width:    c.Width,
			Height:   c.Height,
			XOffset:  c.XOffset,
			YOffset:  c.YOffset,
			XAdvance: c.XAdvance,
			Page:     c.Page,
			Channel:  c.Channel,
		})
	}
	for _, k := range data.Kernings {
		if k.Amount == 0 {
			continue
		}
		f.Kernings = append(f.Kernings, Kerning{First: rune(k.First), Second: rune(k.Second), Amount: k.Amount})
	}
	return f, nil
}
