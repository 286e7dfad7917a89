package main

// Command name constants
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Exit code constants
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 3
)

// Flag name constants
const (
	FlagTemplate      = "template"
	FlagTemplateShort = "t"
	FlagOpen          = "open"
	FlagClose         = "close"
	FlagOutput        = "output"
	FlagOutputShort   = "o"
)

// Flag default values
const (
	FlagDefaultOutput = "-"
	FlagDefaultDelim  = ""
	InputSourceStdin  = "-"
)

// Context pair type suffixes (key:type=value)
const (
	PairTypeInt   = "int"
	PairTypeFloat = "float"
	PairTypeBool  = "bool"
)

// Version constants
const (
	Version        = "1.0.0"
	VersionProject = "figura"
)

// Output format constants
const (
	FilePermissions = 0o644
)

// Error message constants
const (
	ErrMsgMissingTemplate   = "missing template (use -t <path> or -t -)"
	ErrMsgReadFileFailed    = "failed to read input"
	ErrMsgInvalidPair       = "invalid context pair (want key=value or key:type=value)"
	ErrMsgInvalidDelim      = "delimiter flags take exactly one character"
	ErrMsgParseFailed       = "template parsing failed"
	ErrMsgRenderFailed      = "template rendering failed"
	ErrMsgWriteOutputFailed = "failed to write output"
)

// Format string constants
const (
	FmtErrorWithCause = "error: %s: %v\n"
	FmtError          = "error: %s\n"
	FmtNewline        = "\n"
)

// Help text
const HelpText = `figura - delimiter-parameterized text templating

Usage:
  figura render   -t <path|-> [-open C] [-close C] [-o <path|->] [key=value ...]
  figura validate -t <path|-> [-open C] [-close C]
  figura version
  figura help

Context pairs are typed with an optional suffix:
  name=World  count:int=3  ratio:float=0.5  flag:bool=true

Examples:
  echo 'Hello, {name}!' | figura render -t - name=World
  figura render -t banner.tpl -open '[' -close ']' width:int=40
  figura validate -t row.tpl
`
