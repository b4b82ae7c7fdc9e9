package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"github.com/sirupsen/logrus"

	"github.com/pcm720/fontbake/bmfont"
	"github.com/pcm720/fontbake/export"
	"github.com/pcm720/fontbake/fontdata"
)

type bakeOptions struct {
	compile  bmfont.CompileOptions
	image    export.Options
	metaExt  string
	nameCase string
	strict   bool
	verify   bool
	cHeader  bool
}

// Builds bake options from the parsed command line
func bakeOptionsFromConf() (bakeOptions, error) {
	opts := bakeOptions{
		metaExt:  strings.TrimPrefix(conf.MetaExt, "."),
		nameCase: conf.NameCase,
		strict:   conf.Strict,
		verify:   conf.Verify,
		cHeader:  conf.CHeader,
	}

	format, err := export.ParseFormat(conf.Format)
	if err != nil {
		return opts, err
	}
	opts.image = export.Options{Format: format, Align: conf.Align}

	switch utf8.RuneCountInString(conf.DefaultChar) {
	case 0:
	case 1:
		opts.compile.DefaultCharacter, _ = utf8.DecodeRuneInString(conf.DefaultChar)
	default:
		return opts, fmt.Errorf("default character %q must be a single character", conf.DefaultChar)
	}
	if opt := parser.FindOptionByLongName("spacing"); opt != nil && opt.IsSet() {
		spacing := conf.Spacing
		opts.compile.Spacing = &spacing
	}
	opts.compile.ExtraLineSpacing = conf.LineSpacing
	return opts, nil
}

// Expands directories into the descriptors they contain
func collectInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".fnt", ".xml":
				if !info.IsDir() {
					inputs = append(inputs, path)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

// Returns the output base name for a descriptor
func baseName(path, nameCase string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch nameCase {
	case "snake":
		return strcase.ToSnake(name)
	case "kebab":
		return strcase.ToKebab(name)
	case "camel":
		return strcase.ToCamel(name)
	}
	return name
}

// Compiles one descriptor and writes its metadata, page images and optional C header to outDir
func bakeFile(path, outDir string, opts bakeOptions) error {
	log := logrus.WithField("file", filepath.Base(path))
	base := baseName(path, opts.nameCase)

	log.Debug("start loading descriptor")
	desc, err := bmfont.ParseDescriptor(path)
	if err != nil {
		return err
	}

	log.Debug("start compiling font")
	font, err := desc.Compile(opts.compile)
	if err != nil {
		return err
	}

	var meta bytes.Buffer
	enc := fontdata.NewEncoder(&meta)
	enc.Strict = opts.strict
	if err := enc.Encode(font); err != nil {
		return err
	}
	if opts.verify {
		if err := verifyMetadata(meta.Bytes()); err != nil {
			return err
		}
	}
	metaPath := filepath.Join(outDir, base+"."+opts.metaExt)
	if err := os.WriteFile(metaPath, meta.Bytes(), 0644); err != nil {
		return errors.Join(fontdata.ErrIO, err)
	}
	log.Infof("saved %s (%d pages, %d bytes)", metaPath, len(font.Pages), meta.Len())

	var pageFiles []string
	for i := range font.Pages {
		page := &font.Pages[i]
		if page.Texture == nil {
			return fmt.Errorf("page %d has no texture", i+1)
		}
		pagePath, err := export.WritePage(outDir, base, i+1, page.Texture, opts.image)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to export page %d", i+1), err)
		}
		page.Texture = nil
		pageFiles = append(pageFiles, pagePath)
	}

	if opts.cHeader {
		return writeCHeader(filepath.Join(outDir, base+".h"), base, meta.Bytes(), pageFiles)
	}
	return nil
}

// Reads metadata back and checks it encodes to the same bytes
func verifyMetadata(data []byte) error {
	decoded, err := fontdata.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.Join(errors.New("verification failed"), err)
	}
	again, err := fontdata.Marshal(decoded)
	if err != nil {
		return err
	}
	if !bytes.Equal(data, again) {
		return errors.New("verification failed: metadata does not round trip")
	}
	logrus.Debug("metadata verified")
	return nil
}

func writeCHeader(path, name string, meta []byte, pageFiles []string) error {
	var pages [][]byte
	for _, p := range pageFiles {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		pages = append(pages, data)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if err := fontdata.EmitCHeader(outFile, name, meta, pages); err != nil {
		outFile.Close()
		return errors.Join(fontdata.ErrIO, err)
	}
	logrus.Infof("saved %s", path)
	return outFile.Close()
}
