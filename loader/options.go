package loader

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/calculisto/json-validator/internal/uriutil"
	"github.com/calculisto/json-validator/schemaerrors"
	"github.com/calculisto/json-validator/validator"
)

const (
	// DefaultMaxFileSize is the default size cap of a single schema file.
	DefaultMaxFileSize int64 = 10 * 1024 * 1024
	// DefaultMaxDocuments is the default cap on files added by one LoadDir.
	DefaultMaxDocuments = 10000
	// DefaultPattern selects the files LoadDir adds.
	DefaultPattern = "**/*.json"
)

// Option is a function that configures a Loader
type Option func(*config) error

type config struct {
	baseURI      string
	maxFileSize  int64
	maxDocuments int
	pattern      string
	logger       validator.Logger
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		maxFileSize:  DefaultMaxFileSize,
		maxDocuments: DefaultMaxDocuments,
		pattern:      DefaultPattern,
		logger:       validator.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithBaseURI sets the URI directory files loaded by LoadDir are registered
// under: a file at a/b.json below the root is added as baseURI + "a/b.json".
// A trailing slash is added when missing.
// Default: the file:// URI of the loaded directory
func WithBaseURI(uri string) Option {
	return func(cfg *config) error {
		norm, err := uriutil.Normalize(uri)
		if err != nil {
			return &schemaerrors.ConfigError{Option: "WithBaseURI", Value: uri, Message: err.Error()}
		}
		if !uriutil.IsAbsolute(norm) {
			return &schemaerrors.ConfigError{Option: "WithBaseURI", Value: uri, Message: "must be an absolute URI"}
		}
		if !strings.HasSuffix(norm, "/") {
			norm += "/"
		}
		cfg.baseURI = norm
		return nil
	}
}

// WithMaxFileSize caps the size in bytes of every file read.
// Default: DefaultMaxFileSize
func WithMaxFileSize(n int64) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return &schemaerrors.ConfigError{Option: "WithMaxFileSize", Value: n, Message: "must be positive"}
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithMaxDocuments caps how many files one LoadDir call may add.
// Default: DefaultMaxDocuments
func WithMaxDocuments(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return &schemaerrors.ConfigError{Option: "WithMaxDocuments", Value: n, Message: "must be positive"}
		}
		cfg.maxDocuments = n
		return nil
	}
}

// WithPattern sets the doublestar glob, relative to the loaded directory and
// slash separated, that selects the files LoadDir adds.
// Default: DefaultPattern
func WithPattern(pattern string) Option {
	return func(cfg *config) error {
		if !doublestar.ValidatePattern(pattern) {
			return &schemaerrors.ConfigError{Option: "WithPattern", Value: pattern, Message: "invalid glob pattern"}
		}
		cfg.pattern = pattern
		return nil
	}
}

// WithLogger sets the structured logger.
// Default: validator.NopLogger
func WithLogger(l validator.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return &schemaerrors.ConfigError{Option: "WithLogger", Message: "logger must not be nil"}
		}
		cfg.logger = l
		return nil
	}
}
