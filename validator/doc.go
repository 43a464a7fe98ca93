// Package validator validates JSON documents against JSON Schema draft-07.
//
// A Validator holds a set of schema documents. Each document is analyzed
// once when added: $id scopes are registered, every $ref is bound to its
// target node and every regular expression is compiled. Validation then
// walks the instance and the schema together and returns a Result whose
// error tree mirrors the evaluation.
//
// # Quick Start
//
//	v, err := validator.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	schema := jsonvalue.MustParse(`{"type": "object", "required": ["id"]}`)
//	if err := v.AddSchema(schema, "http://example.com/item.json"); err != nil {
//	    log.Fatal(err)
//	}
//	res := v.Validate(jsonvalue.MustParse(`{"name": "x"}`))
//	fmt.Println(res.Valid) // false
//
// # References
//
// Every document a schema references must be added before the referencing
// schema. References are resolved against the nearest enclosing $id, and
// fragments are either JSON Pointers or plain names declared through $id.
// No network or file access ever happens during resolution; use the loader
// package to add documents from disk.
//
// # Keywords
//
// All draft-07 validation keywords are evaluated, plus dependentSchemas,
// dependentRequired, minContains and maxContains. When $ref is present its
// siblings are ignored. format, contentEncoding and contentMediaType are
// annotations only and never fail.
//
// Patterns are ECMA-262 regular expressions compiled with regexp2, searched
// rather than anchored. Each match is bounded by a one second timeout and a
// timed-out match counts as a mismatch. multipleOf uses the IEEE remainder
// for non-integer operands.
//
// # Errors
//
// An instance that does not conform is not an error: the Result carries
// Valid=false and the error tree. Go errors are reserved for schemas that
// cannot be used, and are typed in package schemaerrors.
//
// # Recursion
//
// Evaluation depth is bounded by WithMaxDepth (DefaultMaxDepth by default),
// so schemas whose references loop without consuming the instance, such as
// {"$ref": "#"}, report a failure instead of overflowing the stack.
package validator
