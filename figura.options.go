package figura

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	delims   Delimiters
	matchers []Matcher
	logger   *zap.Logger
	storage  TemplateStorage
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		delims: DefaultDelimiters(),
	}
}

// WithDelimiters sets the delimiter pair used for parsing.
// The runes may be identical. Default: '{' and '}'.
func WithDelimiters(open, close rune) Option {
	return func(c *engineConfig) {
		if open != 0 {
			c.delims.Open = open
		}
		if close != 0 {
			c.delims.Close = close
		}
	}
}

// WithMatchers installs custom directive matchers ahead of the built-in
// default. Matchers are tried in the given order.
func WithMatchers(matchers ...Matcher) Option {
	return func(c *engineConfig) {
		c.matchers = append(c.matchers, matchers...)
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithStorage attaches a template storage backend to the engine.
func WithStorage(storage TemplateStorage) Option {
	return func(c *engineConfig) {
		c.storage = storage
	}
}
