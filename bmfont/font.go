package bmfont

// Defines basic font metadata read from a BMFont descriptor
type Font struct {
	Name       string
	Size       int
	LineHeight int
	Base       int
	ScaleW     int
	ScaleH     int
	Padding    [4]int // up, right, down, left
	Spacing    [2]int // horizontal, vertical

	Pages    []Page
	Chars    []Char
	Kernings []Kerning

	dir string // descriptor directory, page files are relative to it
}

// Defines char metadata
type Char struct {
	ID                         rune
	X, Y, Width, Height        int
	XOffset, YOffset, XAdvance int
	Page, Channel              int
}

// Defines a single page
type Page struct {
	ID   int
	File string
}

// Defines a kerning pair
type Kerning struct {
	First, Second rune
	Amount        int
}
