package figura

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher is one link of the directive dispatch chain. It inspects the
// token stream of a single directive body (and the raw body text, for
// grammars the token stream does not cleanly represent) and either
// produces a Directive or declines.
//
// Matchers run in registration order; the first acceptance wins and the
// built-in default matcher is always the terminal fallback. A custom
// matcher that wants built-in handling for a shape it partially
// recognizes must delegate to DefaultMatcher() itself.
type Matcher interface {
	// Match attempts to produce a directive from the tokens.
	// Returns the directive and true on acceptance, or nil and false
	// to pass the body to the next matcher in the chain.
	Match(tokens []Token, body string) (Directive, bool)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(tokens []Token, body string) (Directive, bool)

// Match calls the function.
func (f MatcherFunc) Match(tokens []Token, body string) (Directive, bool) {
	return f(tokens, body)
}

var defaultMatcher Matcher = MatcherFunc(matchDefault)

// DefaultMatcher returns the built-in grammar matcher. It recognizes,
// in priority order:
//
//	name ? true_text : false_text   conditional selection
//	pattern : count                 repetition
//	name                            variable, optional trailing '<' '>' '^'
//
// Anything else is declined, which fails the parse once the chain is
// exhausted.
func DefaultMatcher() Matcher {
	return defaultMatcher
}

func matchDefault(tokens []Token, body string) (Directive, bool) {
	if d, ok := matchConditional(body); ok {
		return d, true
	}
	if d, ok := matchRepeat(tokens); ok {
		return d, true
	}
	if d, ok := matchVariable(tokens); ok {
		return d, true
	}
	return nil, false
}

// matchConditional recognizes `name?true_text:false_text`. The branch
// spans are cut from the raw body so that grammar symbols inside them
// stay literal text.
func matchConditional(body string) (Directive, bool) {
	q := strings.IndexRune(body, SymbolConditional)
	if q < 0 {
		return nil, false
	}
	c := strings.IndexRune(body[q+1:], SymbolRepeat)
	if c < 0 {
		return nil, false
	}

	name := strings.TrimSpace(body[:q])
	if !isIdentifier(name) {
		return nil, false
	}

	return &ConditionalDirective{
		Name:      name,
		TrueText:  body[q+1 : q+1+c],
		FalseText: body[q+2+c:],
	}, true
}

// matchRepeat recognizes `pattern:count`. Each side is classified at
// parse time only as a source kind: identifier-shaped text becomes a
// variable reference, a numeric count stays literal, anything else on
// the pattern side stays literal text.
func matchRepeat(tokens []Token) (Directive, bool) {
	if len(tokens) != 3 ||
		tokens[0].Kind != TokenLiteral ||
		!tokens[1].IsSymbol(SymbolRepeat) ||
		tokens[2].Kind != TokenLiteral {
		return nil, false
	}

	var pattern Source
	if trimmed := strings.TrimSpace(tokens[0].Text); isIdentifier(trimmed) {
		pattern = VariableSource(trimmed)
	} else {
		pattern = LiteralSource(tokens[0].Text)
	}

	var count Source
	countText := strings.TrimSpace(tokens[2].Text)
	if n, err := strconv.ParseInt(countText, 10, 64); err == nil {
		count = CountSource(n)
	} else {
		count = VariableSource(countText)
	}

	return &RepeatDirective{Pattern: pattern, Count: count}, true
}

// matchVariable recognizes a bare identifier with an optional trailing
// alignment symbol.
func matchVariable(tokens []Token) (Directive, bool) {
	var align Alignment
	explicit := false

	switch len(tokens) {
	case 1:
	case 2:
		if tokens[1].Kind != TokenSymbol {
			return nil, false
		}
		r, _ := utf8.DecodeRuneInString(tokens[1].Text)
		a, ok := AlignmentFromRune(r)
		if !ok {
			return nil, false
		}
		align = a
		explicit = true
	default:
		return nil, false
	}

	if tokens[0].Kind != TokenLiteral {
		return nil, false
	}
	name := strings.TrimSpace(tokens[0].Text)
	if !isIdentifier(name) {
		return nil, false
	}

	variable := &VariableDirective{Name: name}
	if explicit {
		return &AlignedDirective{Align: align, Inner: variable}, true
	}
	return variable, true
}

// isIdentifier reports whether s is an identifier-shaped name: a letter
// or underscore followed by letters, digits, or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
