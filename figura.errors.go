package figura

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - all error messages must be constants (no magic strings)
const (
	// Parse errors
	ErrMsgMissingDelimiter = "directive has no matching closing delimiter"
	ErrMsgStrayDelimiter   = "closing delimiter without matching opening delimiter"
	ErrMsgDirectiveParsing = "no matcher accepted the directive"

	// Render errors
	ErrMsgNoValueFound     = "variable not found in context"
	ErrMsgCountNotInt      = "repeat count must be an integer value"
	ErrMsgCountNegative    = "repeat count must not be negative"
	ErrMsgCountNotNumeric  = "repeat count is not numeric"
	ErrMsgConditionNotBool = "condition must be a boolean value"

	// Engine errors
	ErrMsgNoStorage         = "no storage attached to engine"
	ErrMsgEmptyTemplateName = "template name cannot be empty"
)

// Error code constants for categorization
const (
	ErrCodeParse   = "FIGURA_PARSE"
	ErrCodeExec    = "FIGURA_EXEC"
	ErrCodeEngine  = "FIGURA_ENGINE"
	ErrCodeStorage = "FIGURA_STORAGE"
)

// Metadata key constants attached to structured errors
const (
	MetaKeyKind      = "figura_error"
	MetaKeyDelimiter = "delimiter"
	MetaKeyDirective = "directive"
	MetaKeyVariable  = "variable"
	MetaKeyValueKind = "value_kind"
	MetaKeyCount     = "count"
	MetaKeyTemplate  = "template"
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyOffset    = "offset"
)

// Error kind values stored under MetaKeyKind, used by the Is* predicates
const (
	ErrKindMissingDelimiter = "missing_delimiter"
	ErrKindDirectiveParsing = "directive_parsing"
	ErrKindNoValueFound     = "no_value_found"
	ErrKindExecution        = "execution"
)

// Position represents a location in the template source.
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// NewMissingDelimiterError creates a parse error for a directive opened
// but never closed before end of input.
func NewMissingDelimiterError(delim rune, pos Position) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgMissingDelimiter).
		WithMetadata(MetaKeyKind, ErrKindMissingDelimiter).
		WithMetadata(MetaKeyDelimiter, string(delim)).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewStrayDelimiterError creates a parse error for a closing delimiter
// that has no matching opener.
func NewStrayDelimiterError(delim rune, pos Position) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgStrayDelimiter).
		WithMetadata(MetaKeyKind, ErrKindMissingDelimiter).
		WithMetadata(MetaKeyDelimiter, string(delim)).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewDirectiveParsingError creates a parse error for a directive body
// that every matcher in the chain declined.
func NewDirectiveParsingError(body string, pos Position) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgDirectiveParsing).
		WithMetadata(MetaKeyKind, ErrKindDirectiveParsing).
		WithMetadata(MetaKeyDirective, body).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewNoValueFoundError creates a render error for a directive that
// references a context key absent from the supplied Context.
func NewNoValueFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyVariable, ErrMsgNoValueFound).
		WithMetadata(MetaKeyKind, ErrKindNoValueFound).
		WithMetadata(MetaKeyVariable, name)
}

// NewExecutionError creates a render error for an operand of the wrong
// kind or a derived value violating a runtime constraint.
func NewExecutionError(msg string, directive string) *cuserr.CustomError {
	return cuserr.NewValidationError(ErrCodeExec, msg).
		WithMetadata(MetaKeyKind, ErrKindExecution).
		WithMetadata(MetaKeyDirective, directive)
}

// NewNoStorageError creates an engine error for storage operations
// attempted without an attached backend.
func NewNoStorageError() error {
	return cuserr.NewValidationError(ErrCodeEngine, ErrMsgNoStorage)
}

// NewEmptyTemplateNameError creates an engine error for an empty
// stored-template name.
func NewEmptyTemplateNameError() error {
	return cuserr.NewValidationError(ErrCodeEngine, ErrMsgEmptyTemplateName)
}

// errorKind extracts the figura error kind metadata, if any.
func errorKind(err error) string {
	var cerr *cuserr.CustomError
	if !errors.As(err, &cerr) {
		return ""
	}
	kind, _ := cerr.GetMetadata(MetaKeyKind)
	return kind
}

// IsMissingDelimiter reports whether err is a delimiter balance error.
func IsMissingDelimiter(err error) bool {
	return errorKind(err) == ErrKindMissingDelimiter
}

// IsDirectiveParsing reports whether err is a directive grammar error.
func IsDirectiveParsing(err error) bool {
	return errorKind(err) == ErrKindDirectiveParsing
}

// IsNoValueFound reports whether err is a missing-variable render error.
func IsNoValueFound(err error) bool {
	return errorKind(err) == ErrKindNoValueFound
}

// IsExecutionError reports whether err is a directive execution error.
func IsExecutionError(err error) bool {
	return errorKind(err) == ErrKindExecution
}

// VariableName extracts the variable name carried by a NoValueFound
// error. Returns the name and true, or "" and false for other errors.
func VariableName(err error) (string, bool) {
	var cerr *cuserr.CustomError
	if !errors.As(err, &cerr) {
		return "", false
	}
	return cerr.GetMetadata(MetaKeyVariable)
}

// DirectiveBody extracts the directive body carried by a parse or
// execution error, when present.
func DirectiveBody(err error) (string, bool) {
	var cerr *cuserr.CustomError
	if !errors.As(err, &cerr) {
		return "", false
	}
	return cerr.GetMetadata(MetaKeyDirective)
}
