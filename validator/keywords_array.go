package validator

import (
	"fmt"

	"github.com/calculisto/json-validator/internal/pathutil"
	"github.com/calculisto/json-validator/internal/schemautil"
	"github.com/calculisto/json-validator/jsonvalue"
)

// arrayKeywords evaluates the keywords that apply to array instances.
func (e *evaluation) arrayKeywords(r *reporter, instance jsonvalue.Value, schema nodeID) {
	items := instance.Items()

	if id, v, ok := e.keyword(schema, "items"); ok {
		var failures []int
		var nested ErrorTree
		if v.IsArray() {
			tuple := e.s.children(id)
			n := min(len(items), len(tuple))
			for i := 0; i < n; i++ {
				loc := pathutil.AppendIndex(r.schemaLoc+"/items", i)
				if errs := e.validate(items[i], pathutil.AppendIndex(r.instLoc, i), tuple[i], loc); len(errs) > 0 {
					failures = append(failures, i)
					nested = append(nested, errs...)
				}
			}
			if len(failures) > 0 {
				r.report("/items", "Not all items validate against their sub-schema: "+formatIndices(failures), nested)
			}
			// additionalItems only applies past the end of a tuple.
			if extra, ok := e.s.member(schema, "additionalItems"); ok && len(items) > n {
				e.additionalItems(r, items, n, extra)
			}
		} else {
			for i, item := range items {
				if errs := e.validate(item, pathutil.AppendIndex(r.instLoc, i), id, r.schemaLoc+"/items"); len(errs) > 0 {
					failures = append(failures, i)
					nested = append(nested, errs...)
				}
			}
			if len(failures) > 0 {
				r.report("/items", "Not all items validate against the sub-schema: "+formatIndices(failures), nested)
			}
		}
	}

	if id, ok := e.s.member(schema, "contains"); ok {
		matches := 0
		var nested ErrorTree
		for i, item := range items {
			errs := e.validate(item, pathutil.AppendIndex(r.instLoc, i), id, r.schemaLoc+"/contains")
			if len(errs) == 0 {
				matches++
				continue
			}
			nested = append(nested, errs...)
		}
		if matches == 0 {
			r.report("/contains", "No item of the instance validates the sub-schema", nested)
		}
		if _, v, ok := e.keyword(schema, "maxContains"); ok {
			if n, ok := v.Count(); ok && uint64(matches) > n {
				r.report("/maxContains", fmt.Sprintf("Too many items match \"contains\": %d > %d", matches, n), nil)
			}
		}
		if _, v, ok := e.keyword(schema, "minContains"); ok {
			if n, ok := v.Count(); ok && uint64(matches) < n {
				r.report("/minContains", fmt.Sprintf("Too few items match \"contains\": %d < %d", matches, n), nil)
			}
		}
	}

	if _, v, ok := e.keyword(schema, "maxItems"); ok {
		if n, ok := v.Count(); ok && uint64(len(items)) > n {
			r.report("/maxItems", fmt.Sprintf("Array has too many items: %d > %d", len(items), n), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "minItems"); ok {
		if n, ok := v.Count(); ok && uint64(len(items)) < n {
			r.report("/minItems", fmt.Sprintf("Array has too few items: %d < %d", len(items), n), nil)
		}
	}

	if _, v, ok := e.keyword(schema, "uniqueItems"); ok && v.AsBool() {
		seen := schemautil.NewIndex[int]()
		for j, item := range items {
			first, inserted := seen.Insert(item, func() int { return j })
			if !inserted {
				r.report("/uniqueItems", fmt.Sprintf("Duplicate items found: item %d equals item %d", j, first), nil)
			}
		}
	}
}

func (e *evaluation) additionalItems(r *reporter, items []jsonvalue.Value, start int, schema nodeID) {
	var failures []int
	var nested ErrorTree
	for i := start; i < len(items); i++ {
		if errs := e.validate(items[i], pathutil.AppendIndex(r.instLoc, i), schema, r.schemaLoc+"/additionalItems"); len(errs) > 0 {
			failures = append(failures, i)
			nested = append(nested, errs...)
		}
	}
	if len(failures) > 0 {
		r.report("/additionalItems", "Not all additional items validate against the sub-schema: "+formatIndices(failures), nested)
	}
}
