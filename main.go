package main

import (
	"errors"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

// Compiles BMFont descriptors into positional font metadata and B,G,R,A page images

var conf struct {
	Output      string `short:"o" long:"output" description:"output directory" default:"output" ini-name:"output"`
	Format      string `short:"f" long:"format" description:"page image format (png, bmp, tiff)" default:"png" ini-name:"format"`
	MetaExt     string `long:"meta-ext" description:"extension of the metadata file" default:"txt" ini-name:"meta-ext"`
	DefaultChar string `short:"d" long:"default-char" description:"fallback character, empty for none" default:"?" ini-name:"default-char"`
	Spacing     int32  `long:"spacing" description:"override the global character spacing" ini-name:"spacing"`
	LineSpacing int32  `long:"extra-line-spacing" description:"added to every page's line height" ini-name:"extra-line-spacing"`
	Strict      bool   `long:"strict" description:"reject pages with mismatched glyph, character and kerning counts" ini-name:"strict"`
	Verify      bool   `long:"verify" description:"read the written metadata back and compare" ini-name:"verify"`
	CHeader     bool   `long:"c-header" description:"also emit a C header embedding metadata and pages" ini-name:"c-header"`
	Align       int    `long:"align" description:"destination row alignment in bytes" default:"1" ini-name:"align"`
	NameCase    string `long:"name-case" description:"output base name style" choice:"none" choice:"snake" choice:"kebab" choice:"camel" default:"none" ini-name:"name-case"`
	Verbose     bool   `short:"v" long:"verbose" description:"print debug information" ini-name:"verbose"`
	Config      string `short:"c" long:"config" description:"ini file with default options" no-ini:"true"`

	Args struct {
		Inputs []string `positional-arg-name:"descriptor|dir" required:"1"`
	} `positional-args:"yes"`
}

var parser = flags.NewParser(&conf, flags.Default)

func main() {
	if err := parseOptions(os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if conf.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	opts, err := bakeOptionsFromConf()
	if err != nil {
		logrus.Fatalf("invalid options: %s", err)
	}

	inputs, err := collectInputs(conf.Args.Inputs)
	if err != nil {
		logrus.Fatalf("failed to collect inputs: %s", err)
	}
	logrus.Infof("total font files detected: %d", len(inputs))

	if err := os.MkdirAll(conf.Output, 0755); err != nil {
		logrus.Fatalf("failed to create output directory: %s", err)
	}

	failed := 0
	for _, input := range inputs {
		if err := bakeFile(input, conf.Output, opts); err != nil {
			logrus.WithField("file", input).Errorf("failed: %s", err)
			failed++
		}
	}
	if failed > 0 {
		logrus.Errorf("%d of %d fonts failed", failed, len(inputs))
		os.Exit(1)
	}
}

// Parses the command line. The ini file named by --config is loaded first
// as defaults, so explicit flags override it
func parseOptions(args []string) error {
	var pre struct {
		Config string `short:"c" long:"config"`
	}
	if _, err := flags.NewParser(&pre, flags.IgnoreUnknown).ParseArgs(args); err != nil {
		return err
	}
	if pre.Config != "" {
		ini := flags.NewIniParser(parser)
		ini.ParseAsDefaults = true
		if err := ini.ParseFile(pre.Config); err != nil {
			logrus.Errorf("failed to read config %s: %s", pre.Config, err)
			return err
		}
	}
	_, err := parser.ParseArgs(args)
	return err
}
