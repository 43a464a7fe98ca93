package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/schemaerrors"
	"github.com/calculisto/json-validator/validator"
)

// Loader reads schema documents from the filesystem and adds them to a
// Validator.
type Loader struct {
	v   *validator.Validator
	cfg *config
}

// New creates a Loader adding documents to v.
func New(v *validator.Validator, opts ...Option) (*Loader, error) {
	if v == nil {
		return nil, &schemaerrors.ConfigError{Option: "validator", Message: "validator must not be nil"}
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Loader{v: v, cfg: cfg}, nil
}

// LoadBytes parses data as JSON or YAML and adds it under uri.
func (l *Loader) LoadBytes(data []byte, uri string) error {
	doc, err := parse(data, uri)
	if err != nil {
		return err
	}
	return l.v.AddSchema(doc, uri)
}

// LoadFile reads the file at path and adds it under uri. An empty uri
// registers the document under the file:// URI of path.
func (l *Loader) LoadFile(path, uri string) error {
	if uri == "" {
		var err error
		if uri, err = FileURI(path); err != nil {
			return err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening schema file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := l.read(f, path)
	if err != nil {
		return err
	}
	doc, err := parse(data, path)
	if err != nil {
		return err
	}
	if err := l.v.AddSchema(doc, uri); err != nil {
		return err
	}
	l.cfg.logger.Debug("loaded schema file", "path", path, "uri", uri, "bytes", len(data))
	return nil
}

// LoadDir adds every file below root matching the configured pattern and
// returns how many documents were added. Each file is registered under the
// base URI followed by its slash-separated path relative to root.
func (l *Loader) LoadDir(root string) (int, error) {
	base := l.cfg.baseURI
	if base == "" {
		uri, err := FileURI(root)
		if err != nil {
			return 0, err
		}
		base = uri + "/"
	}
	return l.load(os.DirFS(root), base)
}

// LoadFS is LoadDir over an fs.FS. The base URI must be set with
// WithBaseURI.
func (l *Loader) LoadFS(fsys fs.FS) (int, error) {
	if l.cfg.baseURI == "" {
		return 0, &schemaerrors.ConfigError{Option: "WithBaseURI", Message: "a base URI is required to load an fs.FS"}
	}
	return l.load(fsys, l.cfg.baseURI)
}

type pendingDocument struct {
	uri string
	doc jsonvalue.Value
}

func (l *Loader) load(fsys fs.FS, base string) (int, error) {
	names, err := doublestar.Glob(fsys, l.cfg.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return 0, fmt.Errorf("matching %q: %w", l.cfg.pattern, err)
	}
	if len(names) > l.cfg.maxDocuments {
		return 0, &schemaerrors.ResourceLimitError{
			ResourceType: "documents",
			Limit:        int64(l.cfg.maxDocuments),
			Actual:       int64(len(names)),
			Message:      "too many files match " + l.cfg.pattern,
		}
	}
	slices.Sort(names)

	queue := make([]pendingDocument, 0, len(names))
	for _, name := range names {
		data, err := l.readFS(fsys, name)
		if err != nil {
			return 0, err
		}
		doc, err := parse(data, name)
		if err != nil {
			return 0, err
		}
		queue = append(queue, pendingDocument{uri: base + name, doc: doc})
	}

	// A document referencing a file later in the order fails with an
	// unresolved reference; it is retried once the others are in, until a
	// pass adds nothing.
	added := 0
	for len(queue) > 0 {
		var deferred []pendingDocument
		var lastErr error
		for _, p := range queue {
			err := l.v.AddSchema(p.doc, p.uri)
			switch {
			case err == nil:
				added++
				l.cfg.logger.Debug("loaded schema", "uri", p.uri)
			case errors.Is(err, schemaerrors.ErrReference) && !errors.Is(err, schemaerrors.ErrPointer):
				deferred = append(deferred, p)
				lastErr = err
			default:
				return added, err
			}
		}
		if len(deferred) == len(queue) {
			return added, lastErr
		}
		queue = deferred
	}
	l.cfg.logger.Debug("loaded schema directory", "base", base, "documents", added)
	return added, nil
}

func (l *Loader) readFS(fsys fs.FS, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening schema file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return l.read(f, name)
}

// read reads r fully, enforcing the file size cap.
func (l *Loader) read(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.cfg.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(data)) > l.cfg.maxFileSize {
		return nil, &schemaerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        l.cfg.maxFileSize,
			Message:      name + " exceeds the maximum file size",
		}
	}
	return data, nil
}

func parse(data []byte, path string) (jsonvalue.Value, error) {
	doc, err := jsonvalue.Parse(data)
	if err != nil {
		var pe *schemaerrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return jsonvalue.Value{}, err
	}
	return doc, nil
}

// FileURI returns the file:// URI of path, made absolute.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}
