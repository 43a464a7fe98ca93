package validator

import (
	"fmt"

	"github.com/calculisto/json-validator/internal/pathutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/dlclark/regexp2"
)

type patternProperty struct {
	pattern string
	re      *regexp2.Regexp
	schema  nodeID
}

// objectKeywords evaluates the keywords that apply to object instances.
func (e *evaluation) objectKeywords(r *reporter, instance jsonvalue.Value, schema nodeID) {
	e.dependencies(r, instance, schema)

	if id, v, ok := e.keyword(schema, "dependentSchemas"); ok && v.IsObject() {
		var failures []string
		var nested ErrorTree
		for i, m := range v.Members() {
			if !instance.Has(m.Key) {
				continue
			}
			loc := pathutil.Append(r.schemaLoc+"/dependentSchemas", m.Key)
			if errs := e.validate(instance, r.instLoc, e.s.children(id)[i], loc); len(errs) > 0 {
				failures = append(failures, m.Key)
				nested = append(nested, errs...)
			}
		}
		if len(failures) > 0 {
			r.report("/dependentSchemas", "Not all dependent sub-schemas validate the instance: "+formatNames(failures), nested)
		}
	}

	e.properties(r, instance, schema)

	if _, v, ok := e.keyword(schema, "maxProperties"); ok {
		if n, ok := v.Count(); ok && uint64(instance.Len()) > n {
			r.report("/maxProperties", fmt.Sprintf("Object has too many properties: %d > %d", instance.Len(), n), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "minProperties"); ok {
		if n, ok := v.Count(); ok && uint64(instance.Len()) < n {
			r.report("/minProperties", fmt.Sprintf("Object has too few properties: %d < %d", instance.Len(), n), nil)
		}
	}

	if _, v, ok := e.keyword(schema, "required"); ok && v.IsArray() {
		for i, name := range v.Items() {
			if name.IsString() && !instance.Has(name.AsString()) {
				r.report(pathutil.AppendIndex("/required", i), fmt.Sprintf("Missing required property %q", name.AsString()), nil)
			}
		}
	}

	if _, v, ok := e.keyword(schema, "dependentRequired"); ok && v.IsObject() {
		for _, m := range v.Members() {
			if !instance.Has(m.Key) || !m.Value.IsArray() {
				continue
			}
			for j, dep := range m.Value.Items() {
				if dep.IsString() && !instance.Has(dep.AsString()) {
					suffix := pathutil.AppendIndex(pathutil.Append("/dependentRequired", m.Key), j)
					r.report(suffix, fmt.Sprintf("Missing property %q, required by the presence of %q", dep.AsString(), m.Key), nil)
				}
			}
		}
	}
}

// dependencies evaluates the draft-07 dependencies keyword: an array value
// lists properties required alongside the key, any other value is a schema
// the whole instance must satisfy when the key is present.
func (e *evaluation) dependencies(r *reporter, instance jsonvalue.Value, schema nodeID) {
	id, v, ok := e.keyword(schema, "dependencies")
	if !ok || !v.IsObject() {
		return
	}
	var failures []string
	var nested ErrorTree
	for i, m := range v.Members() {
		if !instance.Has(m.Key) {
			continue
		}
		loc := pathutil.Append(r.schemaLoc+"/dependencies", m.Key)
		if m.Value.IsArray() {
			missing := false
			for j, dep := range m.Value.Items() {
				if dep.IsString() && !instance.Has(dep.AsString()) {
					missing = true
					nested = append(nested, ErrorNode{
						SchemaLocation:   pathutil.AppendIndex(loc, j),
						InstanceLocation: r.instLoc,
						Message:          fmt.Sprintf("Missing property %q, required by the presence of %q", dep.AsString(), m.Key),
					})
				}
			}
			if missing {
				failures = append(failures, m.Key)
			}
			continue
		}
		if errs := e.validate(instance, r.instLoc, e.s.children(id)[i], loc); len(errs) > 0 {
			failures = append(failures, m.Key)
			nested = append(nested, errs...)
		}
	}
	if len(failures) > 0 {
		r.report("/dependencies", "Not all dependencies are satisfied: "+formatNames(failures), nested)
	}
}

// properties evaluates properties, patternProperties, additionalProperties
// and propertyNames for every member of the instance.
func (e *evaluation) properties(r *reporter, instance jsonvalue.Value, schema nodeID) {
	props, hasProps := e.s.member(schema, "properties")
	if hasProps && !e.s.value(props).IsObject() {
		hasProps = false
	}
	var patterns []patternProperty
	if id, v, ok := e.keyword(schema, "patternProperties"); ok && v.IsObject() {
		for i, m := range v.Members() {
			if re := e.v.pattern(m.Key); re != nil {
				patterns = append(patterns, patternProperty{pattern: m.Key, re: re, schema: e.s.children(id)[i]})
			}
		}
	}
	additional, hasAdditional := e.s.member(schema, "additionalProperties")
	names, hasNames := e.s.member(schema, "propertyNames")
	if !hasProps && len(patterns) == 0 && !hasAdditional && !hasNames {
		return
	}

	for _, m := range instance.Members() {
		memberLoc := pathutil.Append(r.instLoc, m.Key)
		covered := false

		if hasProps {
			if sub, ok := e.s.member(props, m.Key); ok {
				covered = true
				suffix := pathutil.Append("/properties", m.Key)
				if errs := e.validate(m.Value, memberLoc, sub, r.schemaLoc+suffix); len(errs) > 0 {
					r.report(suffix, msgSubschemaFailed, errs)
				}
			}
		}

		for _, p := range patterns {
			if !matches(p.re, m.Key) {
				continue
			}
			covered = true
			suffix := pathutil.Append("/patternProperties", p.pattern)
			if errs := e.validate(m.Value, memberLoc, p.schema, r.schemaLoc+suffix); len(errs) > 0 {
				r.report(suffix, msgSubschemaFailed, errs)
			}
		}

		if !covered && hasAdditional {
			if errs := e.validate(m.Value, memberLoc, additional, r.schemaLoc+"/additionalProperties"); len(errs) > 0 {
				r.report("/additionalProperties", msgSubschemaFailed, errs)
			}
		}

		if hasNames {
			if errs := e.validate(jsonvalue.String(m.Key), memberLoc, names, r.schemaLoc+"/propertyNames"); len(errs) > 0 {
				r.report("/propertyNames", fmt.Sprintf("Property name %q does not validate against the sub-schema", m.Key), errs)
			}
		}
	}
}
