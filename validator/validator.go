package validator

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/calculisto/json-validator/internal/uriutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/schemaerrors"
	"github.com/dlclark/regexp2"
)

// MetaSchemaURI is the URI the draft-07 meta-schema is registered under.
const MetaSchemaURI = "http://json-schema.org/draft-07/schema"

//go:embed metaschema/draft-07.json
var metaSchemaText []byte

// metaSchema parses the embedded meta-schema once per process. Values are
// immutable, so every Validator shares the parsed tree.
var metaSchema = sync.OnceValues(func() (jsonvalue.Value, error) {
	return jsonvalue.Parse(metaSchemaText)
})

// MetaSchema returns the draft-07 meta-schema document.
func MetaSchema() jsonvalue.Value {
	v, err := metaSchema()
	if err != nil {
		panic(fmt.Sprintf("validator: embedded meta-schema: %v", err))
	}
	return v
}

// Validator validates JSON instances against draft-07 schemas.
//
// A Validator owns every schema added to it. Schemas are analyzed once when
// added: $id scopes are registered, every $ref is bound to its target and
// every pattern is compiled. Validation then only reads that state.
//
// A Validator is not safe for concurrent use while schemas are being added.
// Once all schemas are added, concurrent calls to the Validate methods are
// safe, since validation never mutates the Validator.
type Validator struct {
	cfg      *config
	logger   Logger
	store    *store
	analyzed map[nodeID]struct{}
	bindings map[nodeID]nodeID
	patterns map[string]*regexp2.Regexp
	meta     nodeID
	target   nodeID
}

// New creates a Validator with the draft-07 meta-schema preloaded. Until a
// schema is added, the meta-schema is the default validation target.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	meta, err := metaSchema()
	if err != nil {
		return nil, fmt.Errorf("loading meta-schema: %w", err)
	}

	v := &Validator{
		cfg:      cfg,
		logger:   cfg.logger,
		store:    newStore(cfg.logger),
		analyzed: make(map[nodeID]struct{}),
		bindings: make(map[nodeID]nodeID),
		patterns: make(map[string]*regexp2.Regexp),
	}
	root, err := v.add(meta, MetaSchemaURI)
	if err != nil {
		return nil, fmt.Errorf("loading meta-schema: %w", err)
	}
	v.meta = root
	v.target = root
	return v, nil
}

// AddSchema stores and analyzes a schema document registered under
// documentURI, and makes it the default validation target.
//
// An empty documentURI falls back to the URI set by WithDefaultURI. Adding a
// document equal to one already stored reuses the stored copy and only
// registers the new URI.
//
// AddSchema returns a *schemaerrors.SchemaError when the document or one of
// its keywords is malformed, a *schemaerrors.ReferenceError when a $ref
// cannot be resolved against the schemas added so far and a
// *schemaerrors.PatternError when a regular expression does not compile.
// On error the default target is unchanged.
func (v *Validator) AddSchema(document jsonvalue.Value, documentURI string) error {
	if documentURI == "" {
		documentURI = v.cfg.defaultURI
	}
	if v.cfg.metaValidation {
		if res := v.ValidateSchema(document); !res.Valid {
			return metaSchemaError(documentURI, res)
		}
	}
	root, err := v.add(document, documentURI)
	if err != nil {
		return fmt.Errorf("adding schema %q: %w", documentURI, err)
	}
	v.target = root
	return nil
}

func (v *Validator) add(document jsonvalue.Value, documentURI string) (nodeID, error) {
	if k := document.Kind(); k != jsonvalue.KindBool && k != jsonvalue.KindObject {
		return noNode, &schemaerrors.SchemaError{
			URI:     documentURI,
			Message: fmt.Sprintf("schema must be an object or a boolean, got %s", k),
		}
	}
	uri, err := uriutil.Normalize(documentURI)
	if err != nil {
		return noNode, &schemaerrors.SchemaError{URI: documentURI, Message: "invalid document URI", Cause: err}
	}

	root, inserted := v.store.insert(document, uri)
	if _, done := v.analyzed[root]; done {
		v.logger.Debug("duplicate document", "uri", uri, "stored", v.store.documentOf(root).uri)
		v.store.register(root, uri)
		return root, nil
	}
	if !inserted {
		v.logger.Debug("retrying analysis", "uri", uri)
	}

	a := newAnalysis(v)
	a.stage(uri, root)
	if err := a.run(root, uri); err != nil {
		return noNode, err
	}
	a.commit()
	v.logger.Debug("schema added",
		"uri", uri, "nodes", len(a.visited), "refs", len(a.bindings), "ids", len(a.uris)-1)
	return root, nil
}

func metaSchemaError(uri string, res *Result) error {
	msg := "document does not conform to the draft-07 meta-schema"
	if leaves := res.Errors.Leaves(); len(leaves) > 0 {
		first := leaves[0]
		msg += fmt.Sprintf(": %s at %q", first.Message, first.InstanceLocation)
		if len(leaves) > 1 {
			msg += fmt.Sprintf(" (and %d more)", len(leaves)-1)
		}
	}
	return &schemaerrors.SchemaError{URI: uri, Message: msg}
}

// Validate validates instance against the most recently added schema, or
// against the meta-schema when no schema was added.
func (v *Validator) Validate(instance jsonvalue.Value) *Result {
	return v.evaluate(instance, v.target)
}

// ValidateURI validates instance against the schema registered under
// schemaURI. The URI may carry a fragment, either a JSON Pointer or a
// plain name declared with $id. It returns a *schemaerrors.ReferenceError
// when the URI does not resolve.
func (v *Validator) ValidateURI(instance jsonvalue.Value, schemaURI string) (*Result, error) {
	target, _, err := resolveRef(v.store, v.store.lookup, schemaURI, "")
	if err != nil {
		return nil, err
	}
	if _, ok := v.analyzed[target]; !ok {
		return nil, &schemaerrors.ReferenceError{Ref: schemaURI, Message: "target was never analyzed as a schema"}
	}
	return v.evaluate(instance, target), nil
}

// ValidateSchema validates a schema document against the draft-07
// meta-schema.
func (v *Validator) ValidateSchema(schema jsonvalue.Value) *Result {
	return v.evaluate(schema, v.meta)
}

func (v *Validator) evaluate(instance jsonvalue.Value, schema nodeID) *Result {
	e := &evaluation{v: v, s: v.store, maxDepth: v.cfg.maxDepth}
	errs := e.validate(instance, "", schema, "#")
	return &Result{Valid: len(errs) == 0, Errors: errs}
}
