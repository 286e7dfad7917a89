package figura

import (
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBody_Basic(t *testing.T) {
	tokens := TokenizeBody("hello:world")

	assert.Equal(t, []Token{
		NewLiteralToken("hello"),
		NewSymbolToken(':'),
		NewLiteralToken("world"),
	}, tokens)
}

func TestTokenizeBody_AllSymbols(t *testing.T) {
	tokens := TokenizeBody(":?<>^")

	require.Len(t, tokens, 5)
	for i, r := range []rune{':', '?', '<', '>', '^'} {
		assert.True(t, tokens[i].IsSymbol(r))
	}
}

func TestTokenizeBody_SymbolsInsideLiteralValues(t *testing.T) {
	// Symbols are always tokenized as symbols; disambiguation is the
	// matcher's job.
	tokens := TokenizeBody("a?b:c")

	assert.Equal(t, []Token{
		NewLiteralToken("a"),
		NewSymbolToken('?'),
		NewLiteralToken("b"),
		NewSymbolToken(':'),
		NewLiteralToken("c"),
	}, tokens)
}

func TestTokenizeBody_NonSymbolPunctuationStaysLiteral(t *testing.T) {
	tokens := TokenizeBody("--=:3")

	assert.Equal(t, []Token{
		NewLiteralToken("--="),
		NewSymbolToken(':'),
		NewLiteralToken("3"),
	}, tokens)
}

func TestTokenizeBody_Empty(t *testing.T) {
	assert.Empty(t, TokenizeBody(""))
}

func TestTokenizeBody_WhitespacePreserved(t *testing.T) {
	tokens := TokenizeBody("  name with spaces  ")

	require.Len(t, tokens, 1)
	assert.Equal(t, NewLiteralToken("  name with spaces  "), tokens[0])
}

func scanAll(t *testing.T, source string, delims Delimiters) []rawSegment {
	t.Helper()
	segs, err := newScanner(source, delims, nil).scan()
	require.NoError(t, err)
	return segs
}

func TestScanner_LiteralOnly(t *testing.T) {
	segs := scanAll(t, "Hello World", DefaultDelimiters())

	require.Len(t, segs, 1)
	assert.False(t, segs[0].directive)
	assert.Equal(t, "Hello World", segs[0].text)
}

func TestScanner_SingleDirective(t *testing.T) {
	segs := scanAll(t, "Hello {name}!", DefaultDelimiters())

	require.Len(t, segs, 3)
	assert.Equal(t, "Hello ", segs[0].text)
	assert.True(t, segs[1].directive)
	assert.Equal(t, "name", segs[1].text)
	assert.Equal(t, "!", segs[2].text)
}

func TestScanner_ConsecutiveDirectives(t *testing.T) {
	segs := scanAll(t, "{a}{b}", DefaultDelimiters())

	require.Len(t, segs, 2)
	assert.True(t, segs[0].directive)
	assert.True(t, segs[1].directive)
}

func TestScanner_EscapedOpenDelimiter(t *testing.T) {
	segs := scanAll(t, "{{not a directive}}", DefaultDelimiters())

	require.Len(t, segs, 1)
	assert.False(t, segs[0].directive)
	assert.Equal(t, "{not a directive}", segs[0].text)
}

func TestScanner_EscapedCloseDelimiter(t *testing.T) {
	segs := scanAll(t, "This is }} not escaped", DefaultDelimiters())

	require.Len(t, segs, 1)
	assert.Equal(t, "This is } not escaped", segs[0].text)
}

func TestScanner_MixedEscapesAndDirective(t *testing.T) {
	segs := scanAll(t, "{{escaped}} {name} }}also{{", DefaultDelimiters())

	require.Len(t, segs, 3)
	assert.Equal(t, "{escaped} ", segs[0].text)
	assert.True(t, segs[1].directive)
	assert.Equal(t, "name", segs[1].text)
	assert.Equal(t, " }also{", segs[2].text)
}

func TestScanner_DoubledCloseInsideBody(t *testing.T) {
	segs := scanAll(t, "{a}}b}", DefaultDelimiters())

	require.Len(t, segs, 1)
	assert.True(t, segs[0].directive)
	assert.Equal(t, "a}b", segs[0].text)
}

func TestScanner_CustomDelimiters(t *testing.T) {
	segs := scanAll(t, "Hello [name]! [[escaped]]", Delimiters{Open: '[', Close: ']'})

	require.Len(t, segs, 3)
	assert.Equal(t, "Hello ", segs[0].text)
	assert.True(t, segs[1].directive)
	assert.Equal(t, "name", segs[1].text)
	assert.Equal(t, "! [escaped]", segs[2].text)
}

func TestScanner_SameDelimiterToggles(t *testing.T) {
	segs := scanAll(t, "Hello |name| World", Delimiters{Open: '|', Close: '|'})

	require.Len(t, segs, 3)
	assert.Equal(t, "Hello ", segs[0].text)
	assert.True(t, segs[1].directive)
	assert.Equal(t, "name", segs[1].text)
	assert.Equal(t, " World", segs[2].text)
}

func TestScanner_SameDelimiterDoublingIsLiteral(t *testing.T) {
	segs := scanAll(t, "a||b", Delimiters{Open: '|', Close: '|'})

	require.Len(t, segs, 1)
	assert.False(t, segs[0].directive)
	assert.Equal(t, "a|b", segs[0].text)
}

func TestScanner_MissingClose(t *testing.T) {
	_, err := newScanner("Hello {name", DefaultDelimiters(), nil).scan()

	require.Error(t, err)
	assert.True(t, IsMissingDelimiter(err))
}

func TestScanner_SameDelimiterUnclosed(t *testing.T) {
	_, err := newScanner("Hello |name", Delimiters{Open: '|', Close: '|'}, nil).scan()

	require.Error(t, err)
	assert.True(t, IsMissingDelimiter(err))
}

func TestScanner_StrayClose(t *testing.T) {
	_, err := newScanner("Hello name}", DefaultDelimiters(), nil).scan()

	require.Error(t, err)
	assert.True(t, IsMissingDelimiter(err))
}

func TestScanner_UnicodeContent(t *testing.T) {
	segs := scanAll(t, "héllo {naïve} 世界", DefaultDelimiters())

	require.Len(t, segs, 3)
	assert.Equal(t, "héllo ", segs[0].text)
	assert.Equal(t, "naïve", segs[1].text)
	assert.Equal(t, " 世界", segs[2].text)
}

func TestScanner_PositionTracking(t *testing.T) {
	_, err := newScanner("line one\nline {two", DefaultDelimiters(), nil).scan()

	require.Error(t, err)
	var cerr *cuserr.CustomError
	require.ErrorAs(t, err, &cerr)
	line, ok := cerr.GetMetadata(MetaKeyLine)
	require.True(t, ok)
	assert.Equal(t, "2", line)
}
