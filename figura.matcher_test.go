package figura

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchBody(t *testing.T, body string) (Directive, bool) {
	t.Helper()
	return DefaultMatcher().Match(TokenizeBody(body), body)
}

func TestDefaultMatcher_Variable(t *testing.T) {
	d, ok := matchBody(t, "name")

	require.True(t, ok)
	v, ok := d.(*VariableDirective)
	require.True(t, ok)
	assert.Equal(t, "name", v.Name)
}

func TestDefaultMatcher_VariableWhitespaceTrimmed(t *testing.T) {
	d, ok := matchBody(t, "  name  ")

	require.True(t, ok)
	v, ok := d.(*VariableDirective)
	require.True(t, ok)
	assert.Equal(t, "name", v.Name)
}

func TestDefaultMatcher_VariableUnderscore(t *testing.T) {
	d, ok := matchBody(t, "_private_2")

	require.True(t, ok)
	v, ok := d.(*VariableDirective)
	require.True(t, ok)
	assert.Equal(t, "_private_2", v.Name)
}

func TestDefaultMatcher_VariableUnicodeName(t *testing.T) {
	d, ok := matchBody(t, "prénom")

	require.True(t, ok)
	v, ok := d.(*VariableDirective)
	require.True(t, ok)
	assert.Equal(t, "prénom", v.Name)
}

func TestDefaultMatcher_AlignedVariable(t *testing.T) {
	tests := []struct {
		body  string
		align Alignment
	}{
		{"name<", AlignmentLeft},
		{"name>", AlignmentRight},
		{"name^", AlignmentCenter},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			d, ok := matchBody(t, tt.body)

			require.True(t, ok)
			a, ok := d.(*AlignedDirective)
			require.True(t, ok)
			assert.Equal(t, tt.align, a.Align)
			v, ok := a.Inner.(*VariableDirective)
			require.True(t, ok)
			assert.Equal(t, "name", v.Name)
		})
	}
}

func TestDefaultMatcher_AlignmentMustBeTrailing(t *testing.T) {
	_, ok := matchBody(t, "na<me")

	assert.False(t, ok)
}

func TestDefaultMatcher_RepeatLiteralCount(t *testing.T) {
	d, ok := matchBody(t, "-:3")

	require.True(t, ok)
	r, ok := d.(*RepeatDirective)
	require.True(t, ok)
	assert.Equal(t, LiteralSource("-"), r.Pattern)
	assert.Equal(t, CountSource(3), r.Count)
}

func TestDefaultMatcher_RepeatVariablePattern(t *testing.T) {
	d, ok := matchBody(t, "ch:5")

	require.True(t, ok)
	r, ok := d.(*RepeatDirective)
	require.True(t, ok)
	assert.Equal(t, VariableSource("ch"), r.Pattern)
	assert.Equal(t, CountSource(5), r.Count)
}

func TestDefaultMatcher_RepeatVariableCount(t *testing.T) {
	d, ok := matchBody(t, "-:count")

	require.True(t, ok)
	r, ok := d.(*RepeatDirective)
	require.True(t, ok)
	assert.Equal(t, LiteralSource("-"), r.Pattern)
	assert.Equal(t, VariableSource("count"), r.Count)
}

func TestDefaultMatcher_RepeatNonIdentifierPatternStaysLiteral(t *testing.T) {
	d, ok := matchBody(t, "=- :4")

	require.True(t, ok)
	r, ok := d.(*RepeatDirective)
	require.True(t, ok)
	assert.Equal(t, LiteralSource("=- "), r.Pattern)
	assert.Equal(t, CountSource(4), r.Count)
}

func TestDefaultMatcher_Conditional(t *testing.T) {
	d, ok := matchBody(t, "flag?Yes:No")

	require.True(t, ok)
	c, ok := d.(*ConditionalDirective)
	require.True(t, ok)
	assert.Equal(t, "flag", c.Name)
	assert.Equal(t, "Yes", c.TrueText)
	assert.Equal(t, "No", c.FalseText)
}

func TestDefaultMatcher_ConditionalEmptyBranches(t *testing.T) {
	d, ok := matchBody(t, "flag?:")

	require.True(t, ok)
	c, ok := d.(*ConditionalDirective)
	require.True(t, ok)
	assert.Equal(t, "", c.TrueText)
	assert.Equal(t, "", c.FalseText)
}

func TestDefaultMatcher_ConditionalBranchesKeepSymbols(t *testing.T) {
	// Only the first ':' after '?' splits the branches; later grammar
	// symbols are branch text.
	d, ok := matchBody(t, "flag?a:b:c")

	require.True(t, ok)
	c, ok := d.(*ConditionalDirective)
	require.True(t, ok)
	assert.Equal(t, "a", c.TrueText)
	assert.Equal(t, "b:c", c.FalseText)
}

func TestDefaultMatcher_ConditionalTakesPriorityOverRepeat(t *testing.T) {
	// A body containing '?' then ':' is conditional even though its
	// token stream also resembles other shapes.
	d, ok := matchBody(t, "x?1:2")

	require.True(t, ok)
	_, isConditional := d.(*ConditionalDirective)
	assert.True(t, isConditional)
}

func TestDefaultMatcher_DeclinesUnknownShapes(t *testing.T) {
	for _, body := range []string{
		"",
		"not an identifier",
		"a:b:c",
		"?:",
		"name>>",
		"name<>^",
		"123name",
	} {
		t.Run(body, func(t *testing.T) {
			_, ok := matchBody(t, body)
			assert.False(t, ok)
		})
	}
}

func TestMatcherFunc_AdaptsFunction(t *testing.T) {
	called := false
	m := MatcherFunc(func(tokens []Token, body string) (Directive, bool) {
		called = true
		return nil, false
	})

	_, ok := m.Match(nil, "")

	assert.False(t, ok)
	assert.True(t, called)
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"a", "_", "name", "_x1", "über", "名前"}
	invalid := []string{"", "1a", "a b", "a-b", "a.b", strings.Repeat("-", 3)}

	for _, s := range valid {
		assert.True(t, isIdentifier(s), s)
	}
	for _, s := range invalid {
		assert.False(t, isIdentifier(s), s)
	}
}
