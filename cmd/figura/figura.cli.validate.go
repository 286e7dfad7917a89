package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/figura-dev/go-figura"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
	openDelim    string
	closeDelim   string
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

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

	tmpl, err := figura.Parse(string(source), open, closing)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseFailed, err)
		return ExitCodeError
	}

	fmt.Fprintf(stdout, "valid: %d segments\n", tmpl.SegmentCount())
	for _, tag := range tmpl.AlignmentTags() {
		marker := "implicit"
		if tag.Explicit {
			marker = "explicit"
		}
		fmt.Fprintf(stdout, "segment %d: %s (%s)\n", tag.Segment, tag.Alignment, marker)
	}

	return ExitCodeSuccess
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &validateConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.openDelim, FlagOpen, FlagDefaultDelim, "")
	fs.StringVar(&cfg.closeDelim, FlagClose, FlagDefaultDelim, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}
	return cfg, nil
}
