package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/calculisto/json-validator/internal/options"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/loader"
	"github.com/calculisto/json-validator/schemaerrors"
	"github.com/calculisto/json-validator/validator"
)

// documentInput represents the two ways a JSON or YAML document can be
// provided to a tool. Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

func (d documentInput) empty() bool {
	return d.File == "" && d.Content == ""
}

// read returns the raw document bytes and a name identifying their source
// in error messages.
func (d documentInput) read() ([]byte, string, error) {
	if err := options.ValidateSingleInputSource("file or content", d.File != "", d.Content != ""); err != nil {
		return nil, "", err
	}
	switch {
	case d.Content != "":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, "", &schemaerrors.ResourceLimitError{
				ResourceType: "inline_size",
				Limit:        cfg.MaxInlineSize,
				Actual:       int64(len(d.Content)),
				Message:      "use file input instead, or set JSONVALIDATOR_MAX_INLINE_SIZE to increase",
			}
		}
		return []byte(d.Content), "content", nil
	default:
		data, err := os.ReadFile(d.File)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", d.File, err)
		}
		return data, d.File, nil
	}
}

// parse reads and decodes the document.
func (d documentInput) parse() (jsonvalue.Value, error) {
	data, name, err := d.read()
	if err != nil {
		return jsonvalue.Value{}, err
	}
	doc, err := jsonvalue.Parse(data)
	if err != nil {
		var pe *schemaerrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = name
		}
		return jsonvalue.Value{}, err
	}
	return doc, nil
}

// documentURI is the URI a schema document is registered under when the
// caller names none: the file:// URI for file input, none for content.
func (d documentInput) documentURI() (string, error) {
	if d.File == "" {
		return "", nil
	}
	return loader.FileURI(d.File)
}

// cacheEntry holds a ready validator with LRU ordering and TTL expiry.
type cacheEntry struct {
	v         *validator.Validator
	insertAt  time.Time
	expiresAt time.Time
}

// validatorCacheStore provides a session-scoped cache of validators with
// their schema already analyzed. File schemas are keyed by (absolutePath,
// modTime), content schemas by a SHA-256 hash, each combined with the
// registration URI. A background sweeper removes expired entries.
type validatorCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var validatorCache = &validatorCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached validator or nil. Expired entries are lazily removed.
func (c *validatorCacheStore) get(key string) *validator.Validator {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.v
	}
	return nil
}

// putWithTTL stores a validator, evicting the least recently used entry if
// at capacity.
func (c *validatorCacheStore) putWithTTL(key string, v *validator.Validator, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{v: v, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *validatorCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled.
func (c *validatorCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *validatorCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// resize sets the capacity used by later puts.
func (c *validatorCacheStore) resize(maxSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxSize = maxSize
}

// size returns the number of cached entries.
func (c *validatorCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for a schema registered under uri, or
// returns "" when the input cannot be cached.
func makeCacheKey(d documentInput, uri string) string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d|%s", absPath, info.ModTime().UnixNano(), uri)
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return fmt.Sprintf("content:%s|%s", hex.EncodeToString(h[:]), uri)
	default:
		return "preloaded"
	}
}

// newValidator creates a validator configured from the environment, with
// the JSONVALIDATOR_SCHEMA_DIR tree preloaded when set.
func newValidator() (*validator.Validator, error) {
	logger := newLogger()
	v, err := validator.New(
		validator.WithLogger(logger),
		validator.WithMaxDepth(cfg.MaxDepth),
		validator.WithMetaValidation(cfg.MetaValidation),
	)
	if err != nil {
		return nil, err
	}
	if cfg.SchemaDir == "" {
		return v, nil
	}

	opts := []loader.Option{loader.WithLogger(logger)}
	if cfg.BaseURI != "" {
		opts = append(opts, loader.WithBaseURI(cfg.BaseURI))
	}
	l, err := loader.New(v, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := l.LoadDir(cfg.SchemaDir); err != nil {
		return nil, fmt.Errorf("preloading schemas: %w", err)
	}
	return v, nil
}

// schemaValidator returns a validator whose default target is the schema
// document, registered under uri. An empty schema input returns the
// validator holding only the preloaded schemas.
func schemaValidator(schema documentInput, uri string) (*validator.Validator, error) {
	if uri == "" {
		var err error
		if uri, err = schema.documentURI(); err != nil {
			return nil, err
		}
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(schema, uri)
		if schema.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := validatorCache.get(key); cached != nil {
			return cached, nil
		}
	}

	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	if !schema.empty() {
		doc, err := schema.parse()
		if err != nil {
			return nil, err
		}
		if err := v.AddSchema(doc, uri); err != nil {
			return nil, err
		}
	}

	// The validator is complete; from here on it is only read.
	if key != "" {
		validatorCache.putWithTTL(key, v, ttl)
	}
	return v, nil
}
