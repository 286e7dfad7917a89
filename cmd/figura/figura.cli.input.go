package main

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/figura-dev/go-figura"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// parseDelim converts a one-character delimiter flag to a rune.
// An empty flag keeps the given default.
func parseDelim(flagValue string, fallback rune) (rune, error) {
	if flagValue == "" {
		return fallback, nil
	}
	r, size := utf8.DecodeRuneInString(flagValue)
	if size != len(flagValue) {
		return 0, errors.New(ErrMsgInvalidDelim)
	}
	return r, nil
}

// parseContextPairs converts key=value arguments into a render context.
// Keys may carry a type suffix: key:int=3, key:float=0.5, key:bool=true.
// Untyped values are strings.
func parseContextPairs(args []string) (figura.Context, error) {
	ctx := make(figura.Context, len(args))

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.New(ErrMsgInvalidPair + ": " + arg)
		}

		name, kind, typed := strings.Cut(key, ":")
		if !typed {
			ctx[name] = figura.StringValue(value)
			continue
		}

		switch kind {
		case PairTypeInt:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, err
			}
			ctx[name] = figura.IntValue(n)
		case PairTypeFloat:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, err
			}
			ctx[name] = figura.FloatValue(f)
		case PairTypeBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, err
			}
			ctx[name] = figura.BoolValue(b)
		default:
			return nil, errors.New(ErrMsgInvalidPair + ": " + arg)
		}
	}

	return ctx, nil
}
