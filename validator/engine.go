package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calculisto/json-validator/jsonvalue"
)

const msgSubschemaFailed = "Sub-schema does not validate the instance"

// evaluation is the state of one validation call.
type evaluation struct {
	v        *Validator
	s        *store
	maxDepth int
	depth    int
}

// reporter accumulates the violations of one schema object.
type reporter struct {
	schemaLoc string
	instLoc   string
	errs      ErrorTree
}

// report records a violation located at schemaLoc+suffix. nested is the
// error tree of the subschema evaluation that caused it, if any.
func (r *reporter) report(suffix, message string, nested ErrorTree) {
	r.errs = append(r.errs, ErrorNode{
		SchemaLocation:   r.schemaLoc + suffix,
		InstanceLocation: r.instLoc,
		Message:          message,
		Errors:           nested,
	})
}

// validate evaluates instance against the schema node and returns its
// violations. An empty tree means the instance passed.
func (e *evaluation) validate(instance jsonvalue.Value, instLoc string, schema nodeID, schemaLoc string) ErrorTree {
	sv := e.s.value(schema)
	switch sv.Kind() {
	case jsonvalue.KindBool:
		if sv.AsBool() {
			return nil
		}
		return ErrorTree{{SchemaLocation: schemaLoc, InstanceLocation: instLoc, Message: "boolean schema is false"}}
	case jsonvalue.KindObject:
	default:
		// Analysis rejects such schemas; nothing to evaluate.
		return nil
	}

	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return ErrorTree{{
			SchemaLocation:   schemaLoc,
			InstanceLocation: instLoc,
			Message:          fmt.Sprintf("maximum evaluation depth %d exceeded", e.maxDepth),
		}}
	}
	e.depth++
	defer func() { e.depth-- }()

	r := &reporter{schemaLoc: schemaLoc, instLoc: instLoc}

	// $ref replaces the whole schema object: siblings are not evaluated.
	if ref, ok := e.s.member(schema, "$ref"); ok {
		target, bound := e.v.bindings[schema]
		if !bound {
			r.report("/$ref", fmt.Sprintf("Reference %s is not bound", e.s.value(ref)), nil)
			return r.errs
		}
		if errs := e.validate(instance, instLoc, target, schemaLoc+"/$ref"); len(errs) > 0 {
			r.report("/$ref", msgSubschemaFailed, errs)
		}
		return r.errs
	}

	e.applicators(r, instance, schema)
	e.anyType(r, instance, schema)
	switch instance.Kind() {
	case jsonvalue.KindObject:
		e.objectKeywords(r, instance, schema)
	case jsonvalue.KindArray:
		e.arrayKeywords(r, instance, schema)
	case jsonvalue.KindInt, jsonvalue.KindUint, jsonvalue.KindFloat:
		e.numberKeywords(r, instance, schema)
	case jsonvalue.KindString:
		e.stringKeywords(r, instance, schema)
	}
	return r.errs
}

// keyword returns the handle and value of a keyword of a schema object.
func (e *evaluation) keyword(schema nodeID, name string) (nodeID, jsonvalue.Value, bool) {
	id, ok := e.s.member(schema, name)
	if !ok {
		return noNode, jsonvalue.Value{}, false
	}
	return id, e.s.value(id), true
}

// formatIndices renders indices as a JSON array.
func formatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, n := range indices {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// formatNames renders names as a JSON array of strings.
func formatNames(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = jsonvalue.String(n).String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}
