package validator

import (
	"github.com/calculisto/json-validator/internal/uriutil"
	"github.com/calculisto/json-validator/schemaerrors"
)

// DefaultMaxDepth is the default bound on evaluation recursion depth.
const DefaultMaxDepth = 512

// Option is a function that configures a Validator
type Option func(*config) error

// config holds the settings of a Validator
type config struct {
	logger         Logger
	maxDepth       int
	metaValidation bool
	defaultURI     string
}

// applyOptions applies option functions over the defaults
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		logger:   NopLogger{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the structured logger.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return &schemaerrors.ConfigError{Option: "WithLogger", Message: "logger must not be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithMaxDepth bounds how deeply evaluation may recurse through subschemas
// and references before the instance is reported as failing. Zero disables
// the bound, restoring unguarded recursion for cyclic schemas.
// Default: DefaultMaxDepth
func WithMaxDepth(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &schemaerrors.ConfigError{Option: "WithMaxDepth", Value: n, Message: "must not be negative"}
		}
		cfg.maxDepth = n
		return nil
	}
}

// WithMetaValidation makes AddSchema check every document against the
// draft-07 meta-schema before registering it.
// Default: false
func WithMetaValidation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.metaValidation = enabled
		return nil
	}
}

// WithDefaultURI sets the document URI used by AddSchema when it is called
// with an empty URI. The URI must be absolute.
// Default: "" (documents added without a URI are reachable only as the
// default validation target and through their own $id)
func WithDefaultURI(uri string) Option {
	return func(cfg *config) error {
		norm, err := uriutil.Normalize(uri)
		if err != nil {
			return &schemaerrors.ConfigError{Option: "WithDefaultURI", Value: uri, Message: err.Error()}
		}
		if !uriutil.IsAbsolute(norm) {
			return &schemaerrors.ConfigError{Option: "WithDefaultURI", Value: uri, Message: "must be an absolute URI"}
		}
		cfg.defaultURI = norm
		return nil
	}
}
