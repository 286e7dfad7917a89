package figura

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Delimiters is the delimiter pair a template was parsed with.
// Open and Close may be the same rune; doubling either rune in template
// text escapes it to one literal occurrence.
type Delimiters struct {
	Open  rune
	Close rune
}

// DefaultDelimiters returns the curly-brace delimiter pair.
func DefaultDelimiters() Delimiters {
	return Delimiters{Open: DefaultOpenDelim, Close: DefaultCloseDelim}
}

// TokenKind identifies the kind of a directive-body token.
type TokenKind int

const (
	// TokenLiteral is a contiguous run of non-symbol runes.
	TokenLiteral TokenKind = iota
	// TokenSymbol is a single rune from the directive grammar
	// (':', '?', '<', '>', '^').
	TokenSymbol
)

// Token is one unit of a tokenized directive body. Tokens are produced
// only from the content between one matched pair of delimiters; symbol
// runes are always emitted as Symbol tokens, even inside what a matcher
// will later treat as a literal sub-value. Disambiguation is the
// matcher's job, not the tokenizer's.
type Token struct {
	Kind TokenKind
	Text string
}

// NewLiteralToken creates a literal token.
func NewLiteralToken(text string) Token {
	return Token{Kind: TokenLiteral, Text: text}
}

// NewSymbolToken creates a symbol token for the given rune.
func NewSymbolToken(r rune) Token {
	return Token{Kind: TokenSymbol, Text: string(r)}
}

// IsSymbol reports whether the token is the given symbol rune.
func (t Token) IsSymbol(r rune) bool {
	return t.Kind == TokenSymbol && t.Text == string(r)
}

// isSymbolRune reports whether r belongs to the directive grammar.
func isSymbolRune(r rune) bool {
	switch r {
	case SymbolRepeat, SymbolConditional, SymbolAlignLeft, SymbolAlignRight, SymbolAlignCenter:
		return true
	default:
		return false
	}
}

// TokenizeBody splits a directive body into tokens: contiguous
// non-symbol runs become Literal tokens, each grammar symbol becomes
// its own Symbol token.
func TokenizeBody(body string) []Token {
	var tokens []Token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, NewLiteralToken(lit.String()))
			lit.Reset()
		}
	}

	for _, r := range body {
		if isSymbolRune(r) {
			flush()
			tokens = append(tokens, NewSymbolToken(r))
			continue
		}
		lit.WriteRune(r)
	}
	flush()

	return tokens
}

// rawSegment is one scanned unit of template source: either literal
// text or an unparsed directive body.
type rawSegment struct {
	directive bool
	text      string
	pos       Position // position of the opening delimiter for directives
}

// scanner splits raw template source into literal spans and directive
// bodies, honoring the configured delimiter pair and the
// escape-by-doubling rule.
type scanner struct {
	source string
	delims Delimiters
	pos    int
	line   int
	column int
	logger *zap.Logger
}

func newScanner(source string, delims Delimiters, logger *zap.Logger) *scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &scanner{
		source: source,
		delims: delims,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// scan produces the ordered raw segment sequence for the source.
func (s *scanner) scan() ([]rawSegment, error) {
	s.logger.Debug(LogMsgScanStart, zap.Int(LogFieldSourceLen, len(s.source)))

	var segs []rawSegment
	var err error
	if s.delims.Open == s.delims.Close {
		segs, err = s.scanUniform()
	} else {
		segs, err = s.scanPaired()
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug(LogMsgScanEnd, zap.Int(LogFieldSegments, len(segs)))
	return segs, nil
}

// scanPaired handles distinct open and close runes.
func (s *scanner) scanPaired() ([]rawSegment, error) {
	var segs []rawSegment
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			segs = append(segs, rawSegment{text: literal.String()})
			literal.Reset()
		}
	}

	for !s.isAtEnd() {
		switch r := s.peek(); r {
		case s.delims.Open:
			openPos := s.currentPosition()
			s.advance()
			if !s.isAtEnd() && s.peek() == s.delims.Open {
				s.advance()
				literal.WriteRune(s.delims.Open)
				continue
			}
			flush()
			body, err := s.scanBody(s.delims.Close, openPos)
			if err != nil {
				return nil, err
			}
			segs = append(segs, rawSegment{directive: true, text: body, pos: openPos})

		case s.delims.Close:
			closePos := s.currentPosition()
			s.advance()
			if !s.isAtEnd() && s.peek() == s.delims.Close {
				s.advance()
				literal.WriteRune(s.delims.Close)
				continue
			}
			return nil, NewStrayDelimiterError(s.delims.Close, closePos)

		default:
			literal.WriteRune(s.advance())
		}
	}

	flush()
	return segs, nil
}

// scanUniform handles the open==close case: doubling always means one
// literal delimiter rune, a single occurrence toggles directive mode.
func (s *scanner) scanUniform() ([]rawSegment, error) {
	delim := s.delims.Open
	var segs []rawSegment
	var literal strings.Builder

	for !s.isAtEnd() {
		if s.peek() != delim {
			literal.WriteRune(s.advance())
			continue
		}

		openPos := s.currentPosition()
		s.advance()
		if !s.isAtEnd() && s.peek() == delim {
			s.advance()
			literal.WriteRune(delim)
			continue
		}

		if literal.Len() > 0 {
			segs = append(segs, rawSegment{text: literal.String()})
			literal.Reset()
		}
		body, err := s.scanBody(delim, openPos)
		if err != nil {
			return nil, err
		}
		segs = append(segs, rawSegment{directive: true, text: body, pos: openPos})
	}

	if literal.Len() > 0 {
		segs = append(segs, rawSegment{text: literal.String()})
	}
	return segs, nil
}

// scanBody collects a directive body up to a single closing rune.
// A doubled closing rune inside the body is escaped literal content.
func (s *scanner) scanBody(close rune, openPos Position) (string, error) {
	var body strings.Builder

	for !s.isAtEnd() {
		r := s.advance()
		if r == close {
			if !s.isAtEnd() && s.peek() == close {
				s.advance()
				body.WriteRune(close)
				continue
			}
			return body.String(), nil
		}
		body.WriteRune(r)
	}

	return "", NewMissingDelimiterError(close, openPos)
}

// Helper methods

func (s *scanner) currentPosition() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

func (s *scanner) isAtEnd() bool {
	return s.pos >= len(s.source)
}

// peek returns the rune at the current position without advancing.
func (s *scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.pos:])
	return r
}

// advance consumes and returns the rune at the current position.
func (s *scanner) advance() rune {
	if s.isAtEnd() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s.source[s.pos:])
	s.pos += size
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return r
}
