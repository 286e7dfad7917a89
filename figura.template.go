package figura

import (
	"strings"

	"go.uber.org/zap"
)

// AlignmentTag is one alignment hint detected at parse time, addressed
// by the index of the segment that carries it. Explicit is true for
// alignments written with a trailing symbol; a bare variable records an
// implicit left alignment with Explicit false.
type AlignmentTag struct {
	Segment   int
	Alignment Alignment
	Explicit  bool
}

// segment is one unit of a Template's ordered emission sequence:
// literal text copied verbatim, or a directive executed at render time.
type segment struct {
	literal   string
	directive Directive
}

// Template is an immutable parsed template. It holds the delimiter pair
// it was parsed with, the ordered segment sequence, and the alignment
// tags detected during parsing. A Template is safe to render repeatedly
// and concurrently; rendering never mutates it.
type Template struct {
	source   string
	delims   Delimiters
	segments []segment
	tags     []AlignmentTag
	logger   *zap.Logger
}

// Parse parses template text with the given delimiter pair and the
// built-in directive grammar.
func Parse(source string, open, close rune) (*Template, error) {
	return ParseWith(source, open, close)
}

// ParseWith parses template text with a caller-extended grammar. The
// matchers are tried in order for each directive body; the built-in
// default matcher is appended as the terminal fallback.
func ParseWith(source string, open, close rune, matchers ...Matcher) (*Template, error) {
	chain := make([]Matcher, 0, len(matchers)+1)
	chain = append(chain, matchers...)
	chain = append(chain, DefaultMatcher())
	return parseSource(source, Delimiters{Open: open, Close: close}, chain, nil)
}

// parseSource runs the scan, dispatch, and assembly passes.
// The chain must already end with the default matcher.
func parseSource(source string, delims Delimiters, chain []Matcher, logger *zap.Logger) (*Template, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParseStart, zap.Int(LogFieldSourceLen, len(source)))

	raw, err := newScanner(source, delims, logger).scan()
	if err != nil {
		return nil, err
	}

	segments := make([]segment, 0, len(raw))
	var tags []AlignmentTag
	directives := 0

	for _, rs := range raw {
		if !rs.directive {
			segments = append(segments, segment{literal: rs.text})
			continue
		}

		directive, matcherIdx, ok := dispatch(chain, rs.text)
		if !ok {
			return nil, NewDirectiveParsingError(rs.text, rs.pos)
		}
		logger.Debug(LogMsgMatcherHit,
			zap.Int(LogFieldMatcher, matcherIdx),
			zap.String(LogFieldBody, rs.text))

		idx := len(segments)
		switch d := directive.(type) {
		case *AlignedDirective:
			tags = append(tags, AlignmentTag{Segment: idx, Alignment: d.Align, Explicit: true})
		case *VariableDirective:
			tags = append(tags, AlignmentTag{Segment: idx, Alignment: AlignmentLeft})
		}

		segments = append(segments, segment{directive: directive})
		directives++
	}

	logger.Debug(LogMsgParseEnd,
		zap.Int(LogFieldSegments, len(segments)),
		zap.Int(LogFieldDirectives, directives))

	return &Template{
		source:   source,
		delims:   delims,
		segments: segments,
		tags:     tags,
		logger:   logger,
	}, nil
}

// dispatch tries each matcher in order against one directive body.
func dispatch(chain []Matcher, body string) (Directive, int, bool) {
	tokens := TokenizeBody(body)
	for i, m := range chain {
		if d, ok := m.Match(tokens, body); ok {
			return d, i, true
		}
	}
	return nil, -1, false
}

// Render produces the template's output for the given context. Literal
// segments are copied verbatim; directive segments execute against the
// context. The first directive error aborts the render, returning no
// partial output.
func (t *Template) Render(ctx Context) (string, error) {
	t.logger.Debug(LogMsgRenderStart, zap.Int(LogFieldSegments, len(t.segments)))

	var out strings.Builder
	for _, seg := range t.segments {
		if seg.directive == nil {
			out.WriteString(seg.literal)
			continue
		}
		s, err := seg.directive.Execute(ctx)
		if err != nil {
			return "", err
		}
		out.WriteString(s)
	}

	result := out.String()
	t.logger.Debug(LogMsgRenderEnd, zap.Int(LogFieldOutputLen, len(result)))
	return result, nil
}

// AlignmentTags returns the alignment hints detected at parse time, in
// segment order. Callers implementing column layout consume these;
// the engine itself never pads output.
func (t *Template) AlignmentTags() []AlignmentTag {
	tags := make([]AlignmentTag, len(t.tags))
	copy(tags, t.tags)
	return tags
}

// Source returns the original template text.
func (t *Template) Source() string {
	return t.source
}

// Delims returns the delimiter pair the template was parsed with.
func (t *Template) Delims() Delimiters {
	return t.delims
}

// SegmentCount returns the number of segments in emission order.
func (t *Template) SegmentCount() int {
	return len(t.segments)
}
