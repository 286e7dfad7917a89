// Package figura provides a small text templating engine with
// caller-configurable delimiters and an extensible directive grammar.
//
// A template is plain text containing bracketed directives:
//
//	Hello, {name}!
//
// Parsing produces an immutable Template that can be rendered repeatedly
// (and concurrently) against a Context of named values:
//
//	tmpl, err := figura.Parse("Hello, {name}!", '{', '}')
//	out, err := tmpl.Render(figura.Context{"name": figura.StringValue("World")})
//	// out: "Hello, World!"
//
// # Directive Syntax
//
// The built-in grammar recognizes three directive shapes:
//
// Variable substitution, with an optional trailing alignment hint
// (one of '<', '>', '^'):
//
//	{name}    {size>}    {title^}
//
// Repetition of a pattern, where either side may reference a context
// variable:
//
//	{-:count}    {sep:3}    {pattern:width}
//
// Conditional selection on a boolean variable:
//
//	{flag?Yes:No}
//
// Alignment hints are recorded on the Template and exposed through
// Template.AlignmentTags; the engine never pads or truncates output
// itself. Column layout is the caller's concern.
//
// # Delimiters and Escaping
//
// The delimiter pair is chosen per parse call and may use the same rune
// for both sides. Doubling a delimiter rune escapes it:
//
//	figura.Parse("{{literal}}", '{', '}')  // renders "{literal}"
//
// # Custom Matchers
//
// The directive grammar is open for extension. A Matcher inspects the
// token stream of one directive body and either produces a Directive or
// declines. Matchers run in registration order ahead of the built-in
// default:
//
//	upper := figura.MatcherFunc(func(tokens []figura.Token, body string) (figura.Directive, bool) {
//	    ...
//	})
//	tmpl, err := figura.ParseWith("{name:upper}", '{', '}', upper)
//
// # Engine
//
// For configured, repeated use create an Engine:
//
//	engine := figura.MustNew(
//	    figura.WithDelimiters('[', ']'),
//	    figura.WithLogger(logger),
//	)
//	tmpl, err := engine.Parse("Hello, [name]!")
//
// An Engine can also be attached to a TemplateStorage backend (memory,
// filesystem, or PostgreSQL) to save and render named templates.
//
// # Error Handling
//
// All errors are structured: parse errors (missing delimiter, unmatched
// directive grammar) and render errors (missing variable, operand type
// mismatch) carry machine-readable metadata such as the offending
// variable name and source position. Use the Is* predicates to classify
// an error and helpers like VariableName to extract details.
package figura
