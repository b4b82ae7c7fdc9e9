package fontdata

import (
	"fmt"
	"io"

	"github.com/iancoleman/strcase"
)

// Emits a C header embedding the font metadata blob and the exported page images.
// Stops at the first write error
func EmitCHeader(b io.StringWriter, name string, meta []byte, pages [][]byte) error {
	id := strcase.ToScreamingSnake(name)
	ew := &errWriter{w: b}

	ew.printf(header, id)
	ew.printf(types)

	ew.printf("const unsigned char FONT_%s_META[];\n", id)
	for i := range pages {
		ew.printf("const unsigned char FONT_%s_PAGE_%d[];\n", id, i+1)
	}

	// Emit page table
	ew.printf("\nconst FontPageImage FONT_%s_PAGES[] = {\n", id)
	for i, page := range pages {
		ew.printf("    {%d, FONT_%s_PAGE_%d},\n", len(page), id, i+1)
	}
	ew.printf("};\n")

	ew.printf(`
const struct FontBlob FONT_%[1]s = {
    .metaSize = %[2]d,
    .meta = FONT_%[1]s_META,
    .pageCount = %[3]d,
    .pages = FONT_%[1]s_PAGES,
};

`, id, len(meta), len(pages))

	ew.bytes(fmt.Sprintf("FONT_%s_META", id), meta)
	for i, page := range pages {
		ew.bytes(fmt.Sprintf("FONT_%s_PAGE_%d", id, i+1), page)
	}

	ew.printf(footer)
	return ew.err
}

// errWriter remembers the first failed write and skips the rest.
type errWriter struct {
	w   io.StringWriter
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	_, ew.err = ew.w.WriteString(s)
}

// Emits data as an aligned byte array, 16 bytes per line
func (ew *errWriter) bytes(name string, data []byte) {
	ew.printf("const unsigned char %s[] __attribute__((aligned(16))) = {\n    ", name)
	bytesWritten := 0
	for _, c := range data {
		ew.printf("0x%02x, ", c)
		bytesWritten++
		if bytesWritten == 16 {
			ew.printf("\n    ")
			bytesWritten = 0
		}
	}
	ew.printf("\n};\n\n")
}

const header = `#ifndef _%s_H_
#define _%[1]s_H_
`

const types = `

#ifndef _FONT_BLOB_TYPES_
#define _FONT_BLOB_TYPES_

#include <stdint.h>
#include <stddef.h>

typedef struct FontPageImage {
  unsigned int size;
  const unsigned char *data; // lossless image, B,G,R,A source order
} FontPageImage;

typedef struct FontBlob {
  unsigned int metaSize;
  const unsigned char *meta; // little-endian positional layout
  unsigned int pageCount;
  const FontPageImage *pages;
} FontBlob;

#endif

`
const footer = `#endif
`
