// Package jsonvalidator validates JSON documents against JSON Schema
// draft-07.
//
// The module is split into small packages:
//
//   - jsonvalue: an immutable JSON value model, parsed from JSON or YAML text
//   - validator: the schema store, $ref resolver, analyzer and evaluation engine
//   - loader: adds schema files and directory trees to a Validator
//   - schemaerrors: sentinel and typed errors shared by every package
//
// The jsonvalidator command wraps them behind a CLI and an MCP server.
//
// # Quick Start
//
// Add a schema, then validate instances against it:
//
//	import (
//		"github.com/calculisto/json-validator/jsonvalue"
//		"github.com/calculisto/json-validator/validator"
//	)
//
//	v, err := validator.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	schema := jsonvalue.MustParse(`{"type": "integer", "minimum": 0}`)
//	if err := v.AddSchema(schema, "http://example.com/count.json"); err != nil {
//		log.Fatal(err)
//	}
//	res := v.Validate(jsonvalue.MustParse(`-1`))
//	fmt.Println(res.Valid)   // false
//	fmt.Print(res.Errors)    // (root): Minimum value not reached: -1 < 0 [#/minimum]
//
// Schemas may reference each other by URI. Every schema a $ref points to
// must be added before the schema holding the $ref; loader.LoadDir handles
// the ordering for directory trees.
//
// # Errors
//
// Validation failures are data: a Result holds a tree of ErrorNode values,
// each naming the failing keyword's schema location, the instance location
// and a message. Problems with the schemas themselves are Go errors that
// match the sentinels of package schemaerrors with errors.Is:
//
//	err := v.AddSchema(jsonvalue.MustParse(`{"$ref": "missing.json"}`), "")
//	if errors.Is(err, schemaerrors.ErrReference) {
//		// the reference did not resolve
//	}
//
// # Concurrency
//
// A Validator is built single-threaded: add every schema first. After that,
// Validate, ValidateURI and ValidateSchema may be called from any number of
// goroutines.
package jsonvalidator
