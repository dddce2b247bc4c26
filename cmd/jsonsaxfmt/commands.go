// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/go-jsonsax/jsonsax"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Report whether input is well-formed JSON, with a positioned error if not",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadEffectiveConfig()
		if err != nil {
			return err
		}
		data, err := readInput(args)
		if err != nil {
			return err
		}
		opts, err := buildParserOptions(cfg)
		if err != nil {
			return err
		}
		p := jsonsax.NewParser(opts...)
		if err := p.Parse(data, true); err != nil {
			reportError("validate", wrapParseError(p, err))
			return err
		}
		logger.Info("valid", zap.Int("bytes", len(data)))
		fmt.Println(okStyle.Render("valid JSON"))
		return nil
	},
}

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Pretty-print a JSON stream, optionally transcoding its encoding",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(args, true)
	},
}

var reencodeCmd = &cobra.Command{
	Use:   "reencode [file]",
	Short: "Transcode a JSON stream to another encoding, without re-indenting",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(args, false)
	},
}

// buildParserOptions translates a Config into ParserOptions.
func buildParserOptions(cfg *Config) ([]jsonsax.ParserOption, error) {
	inEnc, err := parseEncodingName(cfg.InputEncoding)
	if err != nil {
		return nil, err
	}
	return []jsonsax.ParserOption{
		jsonsax.WithInputEncoding(inEnc),
		jsonsax.WithOutputEncoding(jsonsax.UTF8),
		jsonsax.WithAllowComments(cfg.AllowComments),
		jsonsax.WithAllowTrailingCommas(cfg.AllowTrailingCommas),
		jsonsax.WithAllowSpecialNumbers(cfg.AllowSpecialNumbers),
		jsonsax.WithAllowHexNumbers(cfg.AllowHexNumbers),
		jsonsax.WithAllowBOM(cfg.AllowBOM),
		jsonsax.WithReplaceInvalidEncodingSequences(cfg.ReplaceInvalidEncodingSequences),
		jsonsax.WithTrackObjectMembers(cfg.TrackObjectMembers),
		jsonsax.WithMaxOutputStringLength(cfg.MaxOutputStringLength),
		jsonsax.WithMaxNumberLength(cfg.MaxNumberLength),
	}, nil
}

// buildWriterOptions translates a Config into WriterOptions.
func buildWriterOptions(cfg *Config) ([]jsonsax.WriterOption, error) {
	outEnc, err := parseEncodingName(cfg.OutputEncoding)
	if err != nil {
		return nil, err
	}
	if outEnc == jsonsax.UnknownEncoding {
		outEnc = jsonsax.UTF8
	}
	return []jsonsax.WriterOption{
		jsonsax.WithWriterOutputEncoding(outEnc),
		jsonsax.WithUseCRLF(cfg.UseCRLF),
		jsonsax.WithWriterAllowHexNumbers(cfg.AllowHexNumbers),
	}, nil
}

// runPipeline drives a Parser over the input, mirroring its events onto a
// Writer (prettyPrinter when pretty is set, compact otherwise), and writes
// the Writer's output to stdout.
func runPipeline(args []string, pretty bool) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	data, err := readInput(args)
	if err != nil {
		return err
	}
	parserOpts, err := buildParserOptions(cfg)
	if err != nil {
		return err
	}
	writerOpts, err := buildWriterOptions(cfg)
	if err != nil {
		return err
	}

	var out []byte
	w := jsonsax.NewWriter(writerOpts...)
	w.SetOutputHandler(func(w *jsonsax.Writer, p []byte) jsonsax.HandlerResult {
		out = append(out, p...)
		return jsonsax.Continue
	})

	pp := &printer{w: w, pretty: pretty}
	p := jsonsax.NewParser(parserOpts...)
	p.SetNullHandler(func(p *jsonsax.Parser) jsonsax.HandlerResult { return pp.wrap(pp.w.WriteNull()) })
	p.SetBooleanHandler(func(p *jsonsax.Parser, v bool) jsonsax.HandlerResult { return pp.wrap(pp.w.WriteBoolean(v)) })
	p.SetStringHandler(func(p *jsonsax.Parser, text string, _ jsonsax.StringAttributes) jsonsax.HandlerResult {
		return pp.wrap(pp.w.WriteString([]byte(text), jsonsax.UTF8))
	})
	p.SetRawNumberHandler(func(p *jsonsax.Parser, text string, _ jsonsax.NumberFlags) jsonsax.HandlerResult {
		return pp.wrap(pp.w.WriteNumber(text))
	})
	p.SetSpecialNumberHandler(func(p *jsonsax.Parser, which jsonsax.SpecialNumber) jsonsax.HandlerResult {
		return pp.wrap(pp.w.WriteSpecialNumber(which))
	})
	p.SetStartObjectHandler(func(p *jsonsax.Parser) jsonsax.HandlerResult {
		res := pp.wrap(pp.w.StartObject())
		pp.pushContainer()
		return res
	})
	p.SetEndObjectHandler(func(p *jsonsax.Parser) jsonsax.HandlerResult {
		if err := pp.popContainer(); err != nil {
			return jsonsax.Abort
		}
		return pp.wrap(pp.w.EndObject())
	})
	p.SetObjectMemberHandler(func(p *jsonsax.Parser, name string, _ jsonsax.StringAttributes) jsonsax.HandlerResult {
		if err := pp.beforeEntry(!p.InObjectFirstMember()); err != nil {
			return jsonsax.Abort
		}
		if err := pp.w.WriteString([]byte(name), jsonsax.UTF8); err != nil {
			return jsonsax.Abort
		}
		if err := pp.w.Colon(); err != nil {
			return jsonsax.Abort
		}
		if !pp.pretty {
			return jsonsax.Continue
		}
		return pp.wrap(pp.w.WriteSpace(1))
	})
	p.SetStartArrayHandler(func(p *jsonsax.Parser) jsonsax.HandlerResult {
		res := pp.wrap(pp.w.StartArray())
		pp.pushContainer()
		return res
	})
	p.SetEndArrayHandler(func(p *jsonsax.Parser) jsonsax.HandlerResult {
		if err := pp.popContainer(); err != nil {
			return jsonsax.Abort
		}
		return pp.wrap(pp.w.EndArray())
	})
	p.SetArrayItemHandler(func(p *jsonsax.Parser, isFirstItem bool) jsonsax.HandlerResult {
		if err := pp.beforeEntry(!isFirstItem); err != nil {
			return jsonsax.Abort
		}
		return jsonsax.Continue
	})

	if err := p.Parse(data, true); err != nil {
		reportError("format", wrapParseError(p, err))
		return err
	}
	if pretty {
		out = append(out, '\n')
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return err
	}
	logger.Info("done", zap.Int("in_bytes", len(data)), zap.Int("out_bytes", len(out)))
	return nil
}

// printer mirrors parser events onto a Writer, inserting separators
// (commas) and, when pretty, indentation driven by container depth and
// the InObjectFirstMember/isFirstItem bits the parser already tracks.
type printer struct {
	w        *jsonsax.Writer
	pretty   bool
	depth    int
	nonEmpty []bool
}

func (pp *printer) wrap(err error) jsonsax.HandlerResult {
	if err != nil {
		return jsonsax.Abort
	}
	return jsonsax.Continue
}

func (pp *printer) pushContainer() {
	pp.nonEmpty = append(pp.nonEmpty, false)
	pp.depth++
}

func (pp *printer) popContainer() error {
	pp.depth--
	n := len(pp.nonEmpty) - 1
	wasNonEmpty := pp.nonEmpty[n]
	pp.nonEmpty = pp.nonEmpty[:n]
	if pp.pretty && wasNonEmpty {
		return pp.indent()
	}
	return nil
}

// beforeEntry runs before an object member or array item is written: emits
// a comma if this isn't the container's first entry, marks the container
// non-empty, then indents if pretty-printing. Object members and array
// items share this logic since the parser already resolves "is this the
// first entry" for both (InObjectFirstMember / ArrayItemHandler's
// isFirstItem parameter).
func (pp *printer) beforeEntry(needComma bool) error {
	if needComma {
		if err := pp.w.Comma(); err != nil {
			return err
		}
	}
	if len(pp.nonEmpty) > 0 {
		pp.nonEmpty[len(pp.nonEmpty)-1] = true
	}
	if pp.pretty {
		return pp.indent()
	}
	return nil
}

func (pp *printer) indent() error {
	if err := pp.w.WriteNewLine(); err != nil {
		return err
	}
	return pp.w.WriteSpace(pp.depth * 2)
}

// wrapParseError attaches the parser's positioned location to err so
// reportError can style the message and location separately.
func wrapParseError(p *jsonsax.Parser, err error) error {
	if e, ok := err.(*jsonsax.Error); ok {
		return &jsonsaxError{message: jsonsax.ErrorString(e.Code), location: e.Location.String()}
	}
	return err
}
