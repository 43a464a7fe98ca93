package validator

import (
	"fmt"

	"github.com/calculisto/json-validator/internal/pathutil"
	"github.com/calculisto/json-validator/jsonvalue"
)

// applicators evaluates the keywords that apply subschemas to the instance
// in place: allOf, anyOf, oneOf, not and if/then/else.
func (e *evaluation) applicators(r *reporter, instance jsonvalue.Value, schema nodeID) {
	if id, v, ok := e.keyword(schema, "allOf"); ok && v.IsArray() {
		var failures []int
		var nested ErrorTree
		for i, sub := range e.s.children(id) {
			loc := pathutil.AppendIndex(r.schemaLoc+"/allOf", i)
			if errs := e.validate(instance, r.instLoc, sub, loc); len(errs) > 0 {
				failures = append(failures, i)
				nested = append(nested, errs...)
			}
		}
		if len(failures) > 0 {
			r.report("/allOf", "Not all sub-schemas validate the instance: "+formatIndices(failures), nested)
		}
	}

	if id, v, ok := e.keyword(schema, "anyOf"); ok && v.IsArray() {
		passed := false
		var nested ErrorTree
		for i, sub := range e.s.children(id) {
			loc := pathutil.AppendIndex(r.schemaLoc+"/anyOf", i)
			errs := e.validate(instance, r.instLoc, sub, loc)
			if len(errs) == 0 {
				passed = true
				break
			}
			nested = append(nested, errs...)
		}
		if !passed {
			r.report("/anyOf", "No sub-schema validates the instance", nested)
		}
	}

	if id, v, ok := e.keyword(schema, "oneOf"); ok && v.IsArray() {
		var successes []int
		var nested ErrorTree
		for i, sub := range e.s.children(id) {
			loc := pathutil.AppendIndex(r.schemaLoc+"/oneOf", i)
			if errs := e.validate(instance, r.instLoc, sub, loc); len(errs) > 0 {
				nested = append(nested, errs...)
			} else {
				successes = append(successes, i)
			}
		}
		switch len(successes) {
		case 1:
		case 0:
			r.report("/oneOf", "No sub-schema validates the instance", nested)
		default:
			r.report("/oneOf", "More than one sub-schema validates the instance: "+formatIndices(successes), nil)
		}
	}

	if id, ok := e.s.member(schema, "not"); ok {
		if errs := e.validate(instance, r.instLoc, id, r.schemaLoc+"/not"); len(errs) == 0 {
			r.report("/not", "Sub-schema validates the instance", nil)
		}
	}

	if id, ok := e.s.member(schema, "if"); ok {
		branch := "else"
		if errs := e.validate(instance, r.instLoc, id, r.schemaLoc+"/if"); len(errs) == 0 {
			branch = "then"
		}
		// A missing branch is not a failure.
		if sub, ok := e.s.member(schema, branch); ok {
			suffix := "/" + branch
			if errs := e.validate(instance, r.instLoc, sub, r.schemaLoc+suffix); len(errs) > 0 {
				r.report(suffix, msgSubschemaFailed, errs)
			}
		}
	}
}

// anyType evaluates type, enum and const.
func (e *evaluation) anyType(r *reporter, instance jsonvalue.Value, schema nodeID) {
	if _, v, ok := e.keyword(schema, "type"); ok {
		switch v.Kind() {
		case jsonvalue.KindString:
			if !typeMatches(v.AsString(), instance) {
				r.report("/type", fmt.Sprintf("Type mismatch, schema requires %s, got %s", v.AsString(), instanceType(instance)), nil)
			}
		case jsonvalue.KindArray:
			matched := false
			for _, t := range v.Items() {
				if t.IsString() && typeMatches(t.AsString(), instance) {
					matched = true
					break
				}
			}
			if !matched {
				r.report("/type", fmt.Sprintf("Type mismatch, schema requires one of %s, got %s", v, instanceType(instance)), nil)
			}
		}
	}

	if _, v, ok := e.keyword(schema, "enum"); ok && v.IsArray() {
		found := false
		for _, candidate := range v.Items() {
			if jsonvalue.Equal(instance, candidate) {
				found = true
				break
			}
		}
		if !found {
			r.report("/enum", "Value not in enum", nil)
		}
	}

	if _, v, ok := e.keyword(schema, "const"); ok {
		if !jsonvalue.Equal(instance, v) {
			r.report("/const", `Value does not match "const"`, nil)
		}
	}
}

// typeMatches reports whether instance has the named JSON Schema type.
// "integer" accepts any number with a zero fractional part.
func typeMatches(name string, instance jsonvalue.Value) bool {
	switch name {
	case "null":
		return instance.IsNull()
	case "boolean":
		return instance.IsBool()
	case "object":
		return instance.IsObject()
	case "array":
		return instance.IsArray()
	case "number":
		return instance.IsNumber()
	case "integer":
		return instance.IsInteger()
	case "string":
		return instance.IsString()
	default:
		return false
	}
}

// instanceType names the most specific type of instance.
func instanceType(instance jsonvalue.Value) string {
	if instance.IsInteger() {
		return "integer"
	}
	return instance.Kind().String()
}
