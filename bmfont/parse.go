package bmfont

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parses a BMFont descriptor file (text or XML flavour) into font
func ParseDescriptor(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsedFont, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return parsedFont, errors.Join(fmt.Errorf("failed to parse %s", path), err)
	}
	return parsedFont, nil
}

// Parses a descriptor from r. Page files are resolved against dir.
// UTF-8 is assumed unless the input starts with a UTF-16 byte order mark.
func Parse(r io.Reader, dir string) (*Font, error) {
	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	head, _ := br.Peek(512)
	if isXML(head) {
		logrus.Debug("parsing XML descriptor")
		return parseXML(br, dir)
	}
	logrus.Debug("parsing text descriptor")
	return parseText(br, dir)
}

func isXML(head []byte) bool {
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<font"))
}

// Parses the line-based descriptor format
func parseText(r io.Reader, dir string) (*Font, error) {
	parsedFont := &Font{dir: dir}

	// Initialize scanner that reads line-by-line
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tag, fields := splitLine(scanner.Text())
		var err error
		switch tag {
		case "info":
			err = parsedFont.parseInfo(fields)
		case "common":
			err = parsedFont.parseCommon(fields)
		case "page":
			err = parsedFont.parsePage(fields)
		case "char":
			err = parsedFont.parseChar(fields)
		case "kerning":
			err = parsedFont.parseKerning(fields)
		case "chars", "kernings", "": // counts only
			continue
		default:
			logrus.Debugf("skipping unknown tag %q on line %d", tag, lineNo)
		}
		if err != nil {
			return parsedFont, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	return parsedFont, scanner.Err()
}

// Splits a descriptor line into its tag and key=value fields.
// Quoted values may contain spaces.
func splitLine(line string) (string, map[string]string) {
	line = strings.TrimSpace(line)
	tag, rest, _ := strings.Cut(line, " ")
	fields := make(map[string]string)
	for rest = strings.TrimSpace(rest); rest != ""; rest = strings.TrimSpace(rest) {
		key, after, found := strings.Cut(rest, "=")
		if !found {
			break
		}
		key = strings.TrimSpace(key)
		var val string
		if strings.HasPrefix(after, "\"") {
			end := strings.IndexByte(after[1:], '"')
			if end < 0 {
				val, rest = after[1:], ""
			} else {
				val, rest = after[1:end+1], after[end+2:]
			}
		} else {
			val, rest, _ = strings.Cut(after, " ")
		}
		fields[key] = val
	}
	return tag, fields
}

// Converts the named integer fields, skipping absent ones
func atoiFields(fields map[string]string, targets map[string]*int) error {
	for key, target := range targets {
		s, ok := fields[key]
		if !ok {
			continue
		}
		val, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("failed to parse value for field '%s': %w", key, err)
		}
		*target = val
	}
	return nil
}

// Parses a comma separated list such as "1,1,1,1" into dst
func parseList(s string, dst []int) error {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != len(dst) {
		return fmt.Errorf("expected %d values, got %q", len(dst), s)
	}
	for i, p := range parts {
		val, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		dst[i] = val
	}
	return nil
}

// Parses info tag
func (f *Font) parseInfo(fields map[string]string) error {
	logrus.Debug("parsing info tag")
	f.Name = fields["face"]
	if err := atoiFields(fields, map[string]*int{"size": &f.Size}); err != nil {
		return err
	}
	if err := parseList(fields["padding"], f.Padding[:]); err != nil {
		return errors.Join(errors.New("failed to parse padding"), err)
	}
	if err := parseList(fields["spacing"], f.Spacing[:]); err != nil {
		return errors.Join(errors.New("failed to parse spacing"), err)
	}
	return nil
}

// Parses common tag
func (f *Font) parseCommon(fields map[string]string) error {
	logrus.Debug("parsing common tag")
	return atoiFields(fields, map[string]*int{
		"lineHeight": &f.LineHeight,
		"base":       &f.Base,
		"scaleW":     &f.ScaleW,
		"scaleH":     &f.ScaleH,
	})
}

// Parses page tag
func (f *Font) parsePage(fields map[string]string) error {
	var newPage Page
	if err := atoiFields(fields, map[string]*int{"id": &newPage.ID}); err != nil {
		return err
	}
	newPage.File = fields["file"]
	if newPage.File == "" {
		return fmt.Errorf("page %d has no file", newPage.ID)
	}
	logrus.Debugf("found page %d: %s", newPage.ID, newPage.File)
	f.Pages = append(f.Pages, newPage)
	return nil
}

// Parses char tag
func (f *Font) parseChar(fields map[string]string) error {
	var newChar Char
	var id int
	err := atoiFields(fields, map[string]*int{
		"id":       &id,
		"x":        &newChar.X,
		"y":        &newChar.Y,
		"width":    &newChar.Width,
		"height":   &newChar.Height,
		"xoffset":  &newChar.XOffset,
		"yoffset":  &newChar.YOffset,
		"xadvance": &newChar.XAdvance,
		"page":     &newChar.Page,
		"chnl":     &newChar.Channel,
	})
	if err != nil {
		return err
	}
	newChar.ID = rune(id)
	f.Chars = append(f.Chars, newChar)
	return nil
}

// Parses kerning tag
func (f *Font) parseKerning(fields map[string]string) error {
	var first, second, amount int
	err := atoiFields(fields, map[string]*int{
		"first":  &first,
		"second": &second,
		"amount": &amount,
	})
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	f.Kernings = append(f.Kernings, Kerning{First: rune(first), Second: rune(second), Amount: amount})
	return nil
}
