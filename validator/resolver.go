package validator

import (
	"errors"
	"fmt"

	"github.com/calculisto/json-validator/internal/pathutil"
	"github.com/calculisto/json-validator/internal/uriutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/schemaerrors"
)

// uriLookup finds the node registered under an absolute URI. The analyzer
// passes a lookup that sees its staged registrations before the store's.
type uriLookup func(uri string) (nodeID, bool)

// resolveRef resolves ref against base and returns the target node together
// with the canonical base URI of the target.
//
// The resolved URI is first probed verbatim in the registry, which covers
// every URI registered through $id, plain-name fragments included. On a miss
// the URI is split into document and fragment and the fragment is navigated
// as a JSON Pointer.
func resolveRef(s *store, lookup uriLookup, ref, base string) (nodeID, string, error) {
	target, err := uriutil.Resolve(base, ref)
	if err != nil {
		return noNode, "", &schemaerrors.ReferenceError{Ref: ref, Base: base, Message: "invalid URI reference", Cause: err}
	}
	if id, ok := lookup(target); ok {
		targetBase, _, err := uriutil.Split(target)
		if err != nil {
			targetBase = target
		}
		return id, targetBase, nil
	}
	id, targetBase, err := resolveAbsolute(s, lookup, target)
	if err != nil {
		var refErr *schemaerrors.ReferenceError
		if errors.As(err, &refErr) {
			refErr.Ref = ref
			refErr.Base = base
		}
		return noNode, "", err
	}
	return id, targetBase, nil
}

// resolveAbsolute resolves a URI that carries no relative part. The part
// before the fragment must be registered; the fragment, percent-decoded, is
// navigated as a JSON Pointer from the registered node.
func resolveAbsolute(s *store, lookup uriLookup, uri string) (nodeID, string, error) {
	base, fragment, err := uriutil.Split(uri)
	if err != nil {
		return noNode, "", &schemaerrors.ReferenceError{Ref: uri, Message: "invalid URI", Cause: err}
	}
	root, ok := lookup(base)
	if !ok {
		return noNode, "", &schemaerrors.ReferenceError{Ref: uri, Message: fmt.Sprintf("no schema registered for %q", base)}
	}
	if fragment != "" && fragment[0] != '/' {
		return noNode, "", &schemaerrors.ReferenceError{Ref: uri, Message: fmt.Sprintf("unknown anchor %q", fragment)}
	}
	target, err := navigate(s, root, fragment)
	if err != nil {
		return noNode, "", &schemaerrors.ReferenceError{Ref: uri, IsPointer: true, Cause: err}
	}
	return target, base, nil
}

// navigate follows a JSON Pointer from root.
func navigate(s *store, root nodeID, pointer string) (nodeID, error) {
	tokens, err := pathutil.Split(pointer)
	if err != nil {
		return noNode, fmt.Errorf("%q: %w", pointer, err)
	}
	cur := root
	for _, tok := range tokens {
		switch s.value(cur).Kind() {
		case jsonvalue.KindObject:
			next, ok := s.member(cur, tok)
			if !ok {
				return noNode, fmt.Errorf("no member %q at %q", tok, s.pointer(cur))
			}
			cur = next
		case jsonvalue.KindArray:
			i, ok := pathutil.ParseIndex(tok)
			if !ok {
				return noNode, fmt.Errorf("invalid array index %q at %q", tok, s.pointer(cur))
			}
			next, ok := s.item(cur, i)
			if !ok {
				return noNode, fmt.Errorf("index %d out of range at %q", i, s.pointer(cur))
			}
			cur = next
		default:
			return noNode, fmt.Errorf("cannot descend into %s at %q", s.value(cur).Kind(), s.pointer(cur))
		}
	}
	return cur, nil
}
