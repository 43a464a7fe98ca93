// Package jsonvalue provides the immutable JSON value model used by the
// validator.
//
// A Value is a tagged union of null, boolean, number, string, array and
// object. Objects keep their members in document order, so error messages
// and re-encoded output follow the source. Numbers remember whether they
// were written as integers, and integers keep their full 64-bit precision.
//
// # Parsing
//
// Parse accepts JSON and YAML. Documents starting with '{', '[' or '"' are
// decoded as strict JSON, everything else as YAML:
//
//	v, err := jsonvalue.ParseString(`{"type": "object", "required": ["id"]}`)
//	if err != nil {
//	    return err
//	}
//	req, _ := v.Lookup("required")
//	fmt.Println(req.Len()) // 1
//
// # Equality
//
// Equal and Compare implement the structural semantics used by the enum,
// const and uniqueItems keywords: numbers compare by mathematical value and
// object member order is not significant.
package jsonvalue
