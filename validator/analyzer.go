package validator

import (
	"fmt"

	"github.com/calculisto/json-validator/internal/pathutil"
	"github.com/calculisto/json-validator/internal/uriutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/schemaerrors"
	"github.com/dlclark/regexp2"
)

// category classifies keywords by where they hold subschemas.
type category uint8

const (
	categoryNone category = iota
	// categorySchema holds one subschema.
	categorySchema
	// categorySchemaMap holds an object whose values are subschemas.
	categorySchemaMap
	// categorySchemaList holds an array of subschemas.
	categorySchemaList
	// categoryDependencies holds an object of subschemas or property lists.
	categoryDependencies
	// categoryItems holds one subschema or an array of them.
	categoryItems
)

var keywordCategories = map[string]category{
	"not":                  categorySchema,
	"if":                   categorySchema,
	"then":                 categorySchema,
	"else":                 categorySchema,
	"additionalProperties": categorySchema,
	"propertyNames":        categorySchema,
	"additionalItems":      categorySchema,
	"contains":             categorySchema,
	"$defs":                categorySchemaMap,
	"definitions":          categorySchemaMap,
	"dependentSchemas":     categorySchemaMap,
	"properties":           categorySchemaMap,
	"patternProperties":    categorySchemaMap,
	"allOf":                categorySchemaList,
	"anyOf":                categorySchemaList,
	"oneOf":                categorySchemaList,
	"dependencies":         categoryDependencies,
	"items":                categoryItems,
}

type registration struct {
	uri string
	id  nodeID
}

type pendingRef struct {
	node nodeID
	ref  string
	base string
}

// analysis is one run of the analyzer over a newly added document.
//
// Every effect is staged and only committed to the Validator when the whole
// run succeeds, so a failed AddSchema leaves no registration, binding or
// visited mark behind. References are queued during the structural walk and
// resolved afterwards, which guarantees every $id of the document is known
// before any $ref is resolved.
type analysis struct {
	v        *Validator
	uris     []registration
	staged   map[string]nodeID
	visited  map[nodeID]struct{}
	bindings map[nodeID]nodeID
	patterns map[string]*regexp2.Regexp
	refs     []pendingRef
}

func newAnalysis(v *Validator) *analysis {
	return &analysis{
		v:        v,
		staged:   make(map[string]nodeID),
		visited:  make(map[nodeID]struct{}),
		bindings: make(map[nodeID]nodeID),
		patterns: make(map[string]*regexp2.Regexp),
	}
}

// run analyzes the document rooted at root under base.
func (a *analysis) run(root nodeID, base string) error {
	if err := a.walk(root, base); err != nil {
		return err
	}
	s := a.v.store
	for len(a.refs) > 0 {
		p := a.refs[0]
		a.refs = a.refs[1:]
		if _, ok := a.binding(p.node); ok {
			continue
		}
		target, targetBase, err := resolveRef(s, a.lookup, p.ref, p.base)
		if err != nil {
			return fmt.Errorf("resolving $ref at %s: %w", s.location(p.node), err)
		}
		a.bindings[p.node] = target
		a.v.logger.Debug("bound reference",
			"ref", p.ref, "base", p.base, "target", s.location(target))
		// A target outside the walked structure is analyzed under the base
		// the resolver found it at.
		if err := a.walk(target, targetBase); err != nil {
			return err
		}
	}
	return nil
}

// commit publishes the staged effects to the Validator.
func (a *analysis) commit() {
	v := a.v
	for _, r := range a.uris {
		v.store.register(r.id, r.uri)
	}
	for id := range a.visited {
		v.analyzed[id] = struct{}{}
	}
	for from, to := range a.bindings {
		v.bindings[from] = to
	}
	for text, re := range a.patterns {
		v.patterns[text] = re
	}
}

func (a *analysis) stage(uri string, id nodeID) {
	a.uris = append(a.uris, registration{uri: uri, id: id})
	a.staged[uri] = id
}

func (a *analysis) lookup(uri string) (nodeID, bool) {
	if id, ok := a.staged[uri]; ok {
		return id, true
	}
	return a.v.store.lookup(uri)
}

func (a *analysis) seen(id nodeID) bool {
	if _, ok := a.visited[id]; ok {
		return true
	}
	_, ok := a.v.analyzed[id]
	return ok
}

func (a *analysis) binding(id nodeID) (nodeID, bool) {
	if to, ok := a.bindings[id]; ok {
		return to, true
	}
	to, ok := a.v.bindings[id]
	return to, ok
}

func (a *analysis) walk(id nodeID, base string) error {
	if a.seen(id) {
		return nil
	}
	a.visited[id] = struct{}{}

	s := a.v.store
	schema := s.value(id)
	switch schema.Kind() {
	case jsonvalue.KindBool:
		return nil
	case jsonvalue.KindObject:
	default:
		return a.schemaError(id, base, "", fmt.Sprintf("schema must be an object or a boolean, got %s", schema.Kind()))
	}

	if idNode, ok := s.member(id, "$id"); ok {
		idValue := s.value(idNode)
		if !idValue.IsString() {
			return a.schemaError(id, base, "$id", "must be a string")
		}
		resolved, err := uriutil.Resolve(base, idValue.AsString())
		if err != nil {
			se := a.schemaError(id, base, "$id", "invalid URI")
			se.Cause = err
			return se
		}
		a.stage(resolved, id)
		// A base URI never carries a fragment; "#foo" names the node only.
		if stripped, _, err := uriutil.Split(resolved); err == nil {
			base = stripped
		} else {
			base = resolved
		}
	}

	if refNode, ok := s.member(id, "$ref"); ok {
		refValue := s.value(refNode)
		if !refValue.IsString() {
			return a.schemaError(id, base, "$ref", "must be a string")
		}
		if _, bound := a.binding(id); !bound {
			a.refs = append(a.refs, pendingRef{node: id, ref: refValue.AsString(), base: base})
		}
	}

	if p, ok := s.member(id, "pattern"); ok && s.value(p).IsString() {
		if err := a.compile(s.value(p).AsString(), s.location(id)+"/pattern"); err != nil {
			return err
		}
	}

	children := s.children(id)
	for i, m := range schema.Members() {
		child := children[i]
		switch keywordCategories[m.Key] {
		case categorySchema:
			if err := a.walk(child, base); err != nil {
				return err
			}

		case categorySchemaMap:
			if !m.Value.IsObject() {
				return a.schemaError(id, base, m.Key, "must be an object")
			}
			for j, sub := range s.children(child) {
				if m.Key == "patternProperties" {
					pattern := m.Value.Members()[j].Key
					loc := s.location(child) + "/" + pathutil.EscapeToken(pattern)
					if err := a.compile(pattern, loc); err != nil {
						return err
					}
				}
				if err := a.walk(sub, base); err != nil {
					return err
				}
			}

		case categorySchemaList:
			if !m.Value.IsArray() {
				return a.schemaError(id, base, m.Key, "must be an array")
			}
			for _, sub := range s.children(child) {
				if err := a.walk(sub, base); err != nil {
					return err
				}
			}

		case categoryDependencies:
			if !m.Value.IsObject() {
				return a.schemaError(id, base, m.Key, "must be an object")
			}
			for j, sub := range s.children(child) {
				dep := m.Value.Members()[j].Value
				switch dep.Kind() {
				case jsonvalue.KindArray:
				case jsonvalue.KindObject, jsonvalue.KindBool:
					if err := a.walk(sub, base); err != nil {
						return err
					}
				default:
					return a.schemaError(id, base, m.Key, "entries must be schemas or arrays of property names")
				}
			}

		case categoryItems:
			if m.Value.IsArray() {
				for _, sub := range s.children(child) {
					if err := a.walk(sub, base); err != nil {
						return err
					}
				}
				continue
			}
			if err := a.walk(child, base); err != nil {
				return err
			}
		}
	}
	return nil
}

// compile compiles a pattern once per Validator.
func (a *analysis) compile(pattern, location string) error {
	if _, ok := a.patterns[pattern]; ok {
		return nil
	}
	if _, ok := a.v.patterns[pattern]; ok {
		return nil
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return &schemaerrors.PatternError{Pattern: pattern, Location: location, Cause: err}
	}
	a.patterns[pattern] = re
	return nil
}

func (a *analysis) schemaError(id nodeID, base, keyword, message string) *schemaerrors.SchemaError {
	loc := a.v.store.pointer(id)
	if keyword != "" {
		loc = pathutil.Append(loc, keyword)
	}
	return &schemaerrors.SchemaError{
		URI:      base,
		Location: loc,
		Keyword:  keyword,
		Message:  message,
	}
}
