// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/go-jsonsax/jsonsax"
)

// Config holds the subset of Parser/Writer options a --config file may
// override. Zero values mean "use the flag/default".
type Config struct {
	InputEncoding                   string
	OutputEncoding                  string
	AllowComments                   bool
	AllowTrailingCommas             bool
	AllowSpecialNumbers             bool
	AllowHexNumbers                 bool
	AllowBOM                        bool
	ReplaceInvalidEncodingSequences bool
	TrackObjectMembers              bool
	UseCRLF                         bool
	MaxOutputStringLength           int
	MaxNumberLength                 int
}

// LoadConfig parses path as a flat JSON object of option overrides using
// this module's own Parser, proving out the library on its own
// configuration rather than reaching for encoding/json.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	var key string

	p := jsonsax.NewParser()
	p.SetObjectMemberHandler(func(p *jsonsax.Parser, name string, _ jsonsax.StringAttributes) jsonsax.HandlerResult {
		key = name
		return jsonsax.Continue
	})
	p.SetStringHandler(func(p *jsonsax.Parser, text string, _ jsonsax.StringAttributes) jsonsax.HandlerResult {
		switch key {
		case "inputEncoding":
			cfg.InputEncoding = text
		case "outputEncoding":
			cfg.OutputEncoding = text
		}
		return jsonsax.Continue
	})
	p.SetBooleanHandler(func(p *jsonsax.Parser, value bool) jsonsax.HandlerResult {
		switch key {
		case "allowComments":
			cfg.AllowComments = value
		case "allowTrailingCommas":
			cfg.AllowTrailingCommas = value
		case "allowSpecialNumbers":
			cfg.AllowSpecialNumbers = value
		case "allowHexNumbers":
			cfg.AllowHexNumbers = value
		case "allowBOM":
			cfg.AllowBOM = value
		case "replaceInvalidEncodingSequences":
			cfg.ReplaceInvalidEncodingSequences = value
		case "trackObjectMembers":
			cfg.TrackObjectMembers = value
		case "useCRLF":
			cfg.UseCRLF = value
		}
		return jsonsax.Continue
	})
	p.SetNumberHandler(func(p *jsonsax.Parser, value float64, _ jsonsax.NumberFlags) jsonsax.HandlerResult {
		switch key {
		case "maxOutputStringLength":
			cfg.MaxOutputStringLength = int(value)
		case "maxNumberLength":
			cfg.MaxNumberLength = int(value)
		}
		return jsonsax.Continue
	})

	if err := p.Parse(data, true); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// parseEncodingName maps a CLI/config encoding name to jsonsax.Encoding.
// An empty name means "leave as the caller's default".
func parseEncodingName(name string) (jsonsax.Encoding, error) {
	switch name {
	case "", "auto":
		return jsonsax.UnknownEncoding, nil
	case "utf8", "utf-8":
		return jsonsax.UTF8, nil
	case "utf16le", "utf-16le":
		return jsonsax.UTF16LE, nil
	case "utf16be", "utf-16be":
		return jsonsax.UTF16BE, nil
	case "utf32le", "utf-32le":
		return jsonsax.UTF32LE, nil
	case "utf32be", "utf-32be":
		return jsonsax.UTF32BE, nil
	default:
		return jsonsax.UnknownEncoding, fmt.Errorf("unrecognized encoding %q", name)
	}
}
