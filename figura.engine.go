package figura

import (
	"context"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Engine is a configured entry point for parsing and rendering
// templates. It fixes the delimiter pair, the matcher chain, and the
// logger once at construction; parsed Templates inherit them. An Engine
// may optionally be attached to a TemplateStorage backend for named
// template persistence.
type Engine struct {
	config *engineConfig
	chain  []Matcher
	logger *zap.Logger

	storMu  sync.RWMutex
	storage TemplateStorage
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	chain := make([]Matcher, 0, len(config.matchers)+1)
	chain = append(chain, config.matchers...)
	chain = append(chain, DefaultMatcher())

	return &Engine{
		config:  config,
		chain:   chain,
		logger:  logger,
		storage: config.storage,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse parses template source with the engine's delimiters and
// matcher chain. The returned Template can be rendered multiple times
// with different contexts.
func (e *Engine) Parse(source string) (*Template, error) {
	return parseSource(source, e.config.delims, e.chain, e.logger)
}

// Render is a convenience method that parses and renders in one step.
// For templates rendered multiple times, use Parse instead.
func (e *Engine) Render(source string, ctx Context) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return tmpl.Render(ctx)
}

// Delims returns the engine's delimiter pair.
func (e *Engine) Delims() Delimiters {
	return e.config.delims
}

// UseStorage attaches a storage backend, replacing any existing one.
// The previous backend is not closed.
func (e *Engine) UseStorage(storage TemplateStorage) {
	e.storMu.Lock()
	defer e.storMu.Unlock()
	e.storage = storage
}

// Storage returns the attached storage backend, or nil.
func (e *Engine) Storage() TemplateStorage {
	e.storMu.RLock()
	defer e.storMu.RUnlock()
	return e.storage
}

// SaveTemplate validates template source by parsing it, then stores it
// under the given name together with the engine's delimiter pair.
// Saving over an existing name replaces it.
func (e *Engine) SaveTemplate(ctx context.Context, name, source string, metadata map[string]string) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}
	storage := e.Storage()
	if storage == nil {
		return NewNoStorageError()
	}

	if _, err := e.Parse(source); err != nil {
		return err
	}

	stored := &StoredTemplate{
		Name:       name,
		Source:     source,
		OpenDelim:  string(e.config.delims.Open),
		CloseDelim: string(e.config.delims.Close),
		Metadata:   metadata,
	}
	if err := storage.Save(ctx, stored); err != nil {
		return err
	}

	e.logger.Debug(LogMsgStorageSave, zap.String(LogFieldTemplate, name))
	return nil
}

// LoadTemplate retrieves a stored template by name and parses it with
// the delimiter pair it was saved with and the engine's matcher chain.
func (e *Engine) LoadTemplate(ctx context.Context, name string) (*Template, error) {
	storage := e.Storage()
	if storage == nil {
		return nil, NewNoStorageError()
	}

	stored, err := storage.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	e.logger.Debug(LogMsgStorageLoad, zap.String(LogFieldTemplate, name))

	delims := e.config.delims
	if r, ok := firstRune(stored.OpenDelim); ok {
		delims.Open = r
	}
	if r, ok := firstRune(stored.CloseDelim); ok {
		delims.Close = r
	}

	return parseSource(stored.Source, delims, e.chain, e.logger)
}

// RenderStored loads a stored template by name and renders it against
// the given context.
func (e *Engine) RenderStored(ctx context.Context, name string, data Context) (string, error) {
	tmpl, err := e.LoadTemplate(ctx, name)
	if err != nil {
		return "", err
	}
	return tmpl.Render(data)
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}
