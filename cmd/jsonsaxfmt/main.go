// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command jsonsaxfmt validates, pretty-prints, and transcodes JSON streams
// using the jsonsax Parser and Writer.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	verbose        bool
	configPath     string
	inputEncFlag   string
	outputEncFlag  string
	allowComments  bool
	allowTrailing  bool
	allowSpecial   bool
	allowHex       bool
	allowBOM       bool
	replaceInvalid bool
	useCRLF        bool

	logger     *zap.Logger
	runID      string
	isTerminal bool

	errStyle lipgloss.Style
	locStyle lipgloss.Style
	okStyle  lipgloss.Style
)

var rootCmd = &cobra.Command{
	Use:   "jsonsaxfmt",
	Short: "Validate, format, and transcode JSON streams with jsonsax",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		runID = uuid.NewString()
		logger = logger.With(zap.String("run_id", runID))

		isTerminal = term.IsTerminal(int(os.Stderr.Fd()))
		errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		locStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON file of default option overrides")
	rootCmd.PersistentFlags().StringVar(&inputEncFlag, "from", "auto", "input encoding: auto, utf8, utf16le, utf16be, utf32le, utf32be")
	rootCmd.PersistentFlags().StringVar(&outputEncFlag, "to", "utf8", "output encoding for format/reencode")
	rootCmd.PersistentFlags().BoolVar(&allowComments, "allow-comments", false, "permit // and /* */ comments")
	rootCmd.PersistentFlags().BoolVar(&allowTrailing, "allow-trailing-commas", false, "permit a trailing comma before ] or }")
	rootCmd.PersistentFlags().BoolVar(&allowSpecial, "allow-special-numbers", false, "permit NaN, Infinity, -Infinity")
	rootCmd.PersistentFlags().BoolVar(&allowHex, "allow-hex-numbers", false, "permit 0x/0X-prefixed integers")
	rootCmd.PersistentFlags().BoolVar(&allowBOM, "allow-bom", false, "permit a leading byte-order mark")
	rootCmd.PersistentFlags().BoolVar(&replaceInvalid, "replace-invalid", false, "replace invalid encoding sequences with U+FFFD instead of failing")
	rootCmd.PersistentFlags().BoolVar(&useCRLF, "crlf", false, "emit CRLF line breaks when formatting")

	rootCmd.AddCommand(validateCmd, formatCmd, reencodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEffectiveConfig merges --config overrides (if given) on top of the
// persistent flags, config values winning where both set a field.
func loadEffectiveConfig() (*Config, error) {
	cfg := &Config{
		InputEncoding:                   inputEncFlag,
		OutputEncoding:                  outputEncFlag,
		AllowComments:                   allowComments,
		AllowTrailingCommas:             allowTrailing,
		AllowSpecialNumbers:             allowSpecial,
		AllowHexNumbers:                 allowHex,
		AllowBOM:                        allowBOM,
		ReplaceInvalidEncodingSequences: replaceInvalid,
		UseCRLF:                         useCRLF,
	}
	if configPath == "" {
		return cfg, nil
	}
	fileCfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if fileCfg.InputEncoding != "" {
		cfg.InputEncoding = fileCfg.InputEncoding
	}
	if fileCfg.OutputEncoding != "" {
		cfg.OutputEncoding = fileCfg.OutputEncoding
	}
	cfg.AllowComments = cfg.AllowComments || fileCfg.AllowComments
	cfg.AllowTrailingCommas = cfg.AllowTrailingCommas || fileCfg.AllowTrailingCommas
	cfg.AllowSpecialNumbers = cfg.AllowSpecialNumbers || fileCfg.AllowSpecialNumbers
	cfg.AllowHexNumbers = cfg.AllowHexNumbers || fileCfg.AllowHexNumbers
	cfg.AllowBOM = cfg.AllowBOM || fileCfg.AllowBOM
	cfg.ReplaceInvalidEncodingSequences = cfg.ReplaceInvalidEncodingSequences || fileCfg.ReplaceInvalidEncodingSequences
	cfg.TrackObjectMembers = cfg.TrackObjectMembers || fileCfg.TrackObjectMembers
	cfg.UseCRLF = cfg.UseCRLF || fileCfg.UseCRLF
	if fileCfg.MaxOutputStringLength != 0 {
		cfg.MaxOutputStringLength = fileCfg.MaxOutputStringLength
	}
	if fileCfg.MaxNumberLength != 0 {
		cfg.MaxNumberLength = fileCfg.MaxNumberLength
	}
	return cfg, nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// reportError renders a positioned jsonsax error, styled when attached to
// a terminal, to stderr.
func reportError(cmdName string, err error) {
	logger.Error("failed", zap.String("command", cmdName), zap.Error(err))
	if !isTerminal {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	msg := err.Error()
	if e, ok := err.(*jsonsaxError); ok {
		fmt.Fprintln(os.Stderr, errStyle.Render(e.message)+" "+locStyle.Render("at "+e.location))
		return
	}
	fmt.Fprintln(os.Stderr, errStyle.Render(msg))
}

// jsonsaxError lets reportError style the message and location separately;
// produced by wrapping a *jsonsax.Error at the call sites that already have
// both parts in hand.
type jsonsaxError struct {
	message  string
	location string
}

func (e *jsonsaxError) Error() string { return e.message + " at " + e.location }
