package figura

import (
	"strconv"
	"strings"
)

// Alignment is a rendering hint attached to a directive by a trailing
// alignment symbol. The engine records and exposes alignments but never
// applies padding itself; width and fill policy belong to the caller.
type Alignment int

const (
	// AlignmentLeft corresponds to '<' (and is the implicit default).
	AlignmentLeft Alignment = iota
	// AlignmentRight corresponds to '>'.
	AlignmentRight
	// AlignmentCenter corresponds to '^'.
	AlignmentCenter
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignmentRight:
		return AlignmentNameRight
	case AlignmentCenter:
		return AlignmentNameCenter
	default:
		return AlignmentNameLeft
	}
}

// AlignmentFromRune maps an alignment symbol rune to its Alignment.
// Returns false for any other rune.
func AlignmentFromRune(r rune) (Alignment, bool) {
	switch r {
	case SymbolAlignLeft:
		return AlignmentLeft, true
	case SymbolAlignRight:
		return AlignmentRight, true
	case SymbolAlignCenter:
		return AlignmentCenter, true
	default:
		return AlignmentLeft, false
	}
}

// Directive is a unit of logic executed when rendering a template
// segment. Built-in directives cover substitution, repetition,
// conditional branching, and alignment wrapping; custom matchers may
// return their own implementations.
//
// Execute must not retain or mutate the Context, and must be safe for
// concurrent calls on the same receiver.
type Directive interface {
	// Execute produces the directive's output for the given context.
	Execute(ctx Context) (string, error)
}

// sourceKind discriminates the operand forms of a repeat directive.
type sourceKind int

const (
	sourceLiteral sourceKind = iota
	sourceCount
	sourceVariable
)

// Source is one operand of a repeat directive. Its form (literal text,
// literal count, or variable reference) is fixed at parse time; variable
// references are resolved at render time.
type Source struct {
	kind    sourceKind
	literal string
	count   int64
	name    string
}

// LiteralSource creates a source holding literal text.
func LiteralSource(text string) Source {
	return Source{kind: sourceLiteral, literal: text}
}

// CountSource creates a source holding a literal repeat count.
func CountSource(n int64) Source {
	return Source{kind: sourceCount, count: n}
}

// VariableSource creates a source referencing a context variable.
func VariableSource(name string) Source {
	return Source{kind: sourceVariable, name: name}
}

// IsVariable reports whether the source is a variable reference, and
// returns the referenced name.
func (s Source) IsVariable() (string, bool) {
	return s.name, s.kind == sourceVariable
}

// VariableDirective substitutes the display form of a context value.
type VariableDirective struct {
	Name string
}

// Execute looks up the variable and emits its canonical display form.
func (d *VariableDirective) Execute(ctx Context) (string, error) {
	v, ok := ctx.Lookup(d.Name)
	if !ok {
		return "", NewNoValueFoundError(d.Name)
	}
	return v.Display(), nil
}

// RepeatDirective emits a pattern string concatenated with itself a
// number of times. Either operand may reference a context variable.
type RepeatDirective struct {
	Pattern Source
	Count   Source
}

// Execute resolves the count, then the pattern, and emits the repeated
// string. A count of zero emits the empty string.
func (d *RepeatDirective) Execute(ctx Context) (string, error) {
	// Count resolves first so that an ill-typed count surfaces as an
	// execution error even when the pattern reference is also unresolvable.
	count, err := d.resolveCount(ctx)
	if err != nil {
		return "", err
	}

	pattern, err := d.resolvePattern(ctx)
	if err != nil {
		return "", err
	}

	return strings.Repeat(pattern, int(count)), nil
}

func (d *RepeatDirective) resolveCount(ctx Context) (int64, error) {
	var count int64
	switch d.Count.kind {
	case sourceCount:
		count = d.Count.count
	case sourceVariable:
		v, ok := ctx.Lookup(d.Count.name)
		if !ok {
			return 0, NewNoValueFoundError(d.Count.name)
		}
		n, ok := v.AsInt()
		if !ok {
			return 0, NewExecutionError(ErrMsgCountNotInt, d.describe()).
				WithMetadata(MetaKeyVariable, d.Count.name).
				WithMetadata(MetaKeyValueKind, v.Kind().String())
		}
		count = n
	default:
		n, err := strconv.ParseInt(strings.TrimSpace(d.Count.literal), 10, 64)
		if err != nil {
			return 0, NewExecutionError(ErrMsgCountNotNumeric, d.describe()).
				WithMetadata(MetaKeyCount, d.Count.literal)
		}
		count = n
	}

	if count < 0 {
		return 0, NewExecutionError(ErrMsgCountNegative, d.describe()).
			WithMetadata(MetaKeyCount, strconv.FormatInt(count, 10))
	}
	return count, nil
}

func (d *RepeatDirective) resolvePattern(ctx Context) (string, error) {
	switch d.Pattern.kind {
	case sourceVariable:
		v, ok := ctx.Lookup(d.Pattern.name)
		if !ok {
			return "", NewNoValueFoundError(d.Pattern.name)
		}
		return v.Display(), nil
	case sourceCount:
		return strconv.FormatInt(d.Pattern.count, 10), nil
	default:
		return d.Pattern.literal, nil
	}
}

// describe returns a short textual form of the directive for error metadata.
func (d *RepeatDirective) describe() string {
	pattern := d.Pattern.literal
	if name, ok := d.Pattern.IsVariable(); ok {
		pattern = name
	}
	count := strconv.FormatInt(d.Count.count, 10)
	if name, ok := d.Count.IsVariable(); ok {
		count = name
	}
	return pattern + string(SymbolRepeat) + count
}

// ConditionalDirective selects one of two literal spans based on a
// boolean context value. Branch texts are emitted verbatim, never
// re-parsed as nested directives.
type ConditionalDirective struct {
	Name      string
	TrueText  string
	FalseText string
}

// Execute looks up the condition variable and emits the matching branch.
func (d *ConditionalDirective) Execute(ctx Context) (string, error) {
	v, ok := ctx.Lookup(d.Name)
	if !ok {
		return "", NewNoValueFoundError(d.Name)
	}
	b, ok := v.AsBool()
	if !ok {
		return "", NewExecutionError(ErrMsgConditionNotBool, d.Name).
			WithMetadata(MetaKeyVariable, d.Name).
			WithMetadata(MetaKeyValueKind, v.Kind().String())
	}
	if b {
		return d.TrueText, nil
	}
	return d.FalseText, nil
}

// AlignedDirective wraps another directive with an alignment hint. The
// hint is surfaced through Template.AlignmentTags; execution delegates
// to the wrapped directive unchanged.
type AlignedDirective struct {
	Align Alignment
	Inner Directive
}

// Execute runs the wrapped directive.
func (d *AlignedDirective) Execute(ctx Context) (string, error) {
	return d.Inner.Execute(ctx)
}
