package figura

import "time"

// Default delimiter runes - curly braces chosen to match common template syntax
const (
	DefaultOpenDelim  = '{'
	DefaultCloseDelim = '}'
)

// Directive grammar symbol runes. Only these runes become Symbol tokens;
// every other rune inside a directive body accumulates into Literal runs.
const (
	SymbolRepeat      = ':'
	SymbolConditional = '?'
	SymbolAlignLeft   = '<'
	SymbolAlignRight  = '>'
	SymbolAlignCenter = '^'
)

// Alignment name constants
const (
	AlignmentNameLeft   = "left"
	AlignmentNameRight  = "right"
	AlignmentNameCenter = "center"
)

// Value kind name constants
const (
	KindNameString = "string"
	KindNameInt    = "int"
	KindNameFloat  = "float"
	KindNameBool   = "bool"
)

// Boolean display values
const (
	DisplayTrue  = "true"
	DisplayFalse = "false"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Filesystem storage constants
const (
	FilesystemDirPermissions  = 0o755
	FilesystemFilePermissions = 0o644
	FilesystemTemplateExt     = ".yaml"
)

// PostgreSQL storage defaults
const (
	PostgresTablePrefix            = "figura_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Log message constants
const (
	LogMsgScanStart    = "template scan started"
	LogMsgScanEnd      = "template scan finished"
	LogMsgParseStart   = "template parse started"
	LogMsgParseEnd     = "template parse finished"
	LogMsgRenderStart  = "template render started"
	LogMsgRenderEnd    = "template render finished"
	LogMsgMatcherHit   = "matcher accepted directive"
	LogMsgStorageSave  = "template saved to storage"
	LogMsgStorageLoad  = "template loaded from storage"
	LogMsgStorageOpen  = "storage opened"
	LogMsgStorageClose = "storage closed"
)

// Log field name constants
const (
	LogFieldSourceLen  = "source_len"
	LogFieldSegments   = "segments"
	LogFieldDirectives = "directives"
	LogFieldOutputLen  = "output_len"
	LogFieldTemplate   = "template"
	LogFieldMatcher    = "matcher_index"
	LogFieldBody       = "body"
	LogFieldDriver     = "driver"
)
