package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/figura-dev/go-figura"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	openDelim    string
	closeDelim   string
	outputPath   string
	pairs        []string
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	// Read template
	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	open, err := parseDelim(cfg.openDelim, figura.DefaultOpenDelim)
	if err != nil {
		fmt.Fprintf(stderr, FmtError, ErrMsgInvalidDelim)
		return ExitCodeUsageError
	}
	closing, err := parseDelim(cfg.closeDelim, figura.DefaultCloseDelim)
	if err != nil {
		fmt.Fprintf(stderr, FmtError, ErrMsgInvalidDelim)
		return ExitCodeUsageError
	}

	ctx, err := parseContextPairs(cfg.pairs)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidPair, err)
		return ExitCodeInputError
	}

	tmpl, err := figura.Parse(string(source), open, closing)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseFailed, err)
		return ExitCodeError
	}
	result, err := tmpl.Render(ctx)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.openDelim, FlagOpen, FlagDefaultDelim, "")
	fs.StringVar(&cfg.closeDelim, FlagClose, FlagDefaultDelim, "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validation
	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	cfg.pairs = fs.Args()
	return cfg, nil
}
