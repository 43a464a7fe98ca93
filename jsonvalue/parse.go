package jsonvalue

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/calculisto/json-validator/schemaerrors"
	"go.yaml.in/yaml/v4"
)

// maxNestingDepth bounds document nesting (and alias expansion) during Parse.
const maxNestingDepth = 10000

// Parse decodes a JSON or YAML document into a Value.
//
// Text whose first significant byte is '{', '[' or '"' is decoded as strict
// JSON (RFC 8259): exactly one value, nothing after it. Anything else is
// decoded as YAML. Either way member order is preserved and number kinds
// follow the literal: 3 is KindInt, 3.0 and 3e0 are KindFloat. Duplicate
// object keys, non-string keys and non-finite numbers are rejected.
func Parse(data []byte) (Value, error) {
	if detectFormat(data) == formatJSON {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, &schemaerrors.ParseError{Message: "invalid document", Cause: err}
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return Value{}, &schemaerrors.ParseError{Message: "empty document"}
	}
	return fromNode(&root, 0)
}

type format int

const (
	formatYAML format = iota
	formatJSON
)

// utf8BOM is skipped before format detection.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// detectFormat picks the decoder from the first significant byte. JSON
// documents start with an object, an array or a string; a JSON scalar
// document such as 3 or true means the same thing in YAML.
func detectFormat(data []byte) format {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\n\r")
	if len(trimmed) == 0 {
		return formatYAML
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return formatJSON
	default:
		return formatYAML
	}
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// ParseReader reads r fully and parses its content.
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, &schemaerrors.ParseError{Message: "reading input", Cause: err}
	}
	return Parse(data)
}

// MustParse is like Parse but panics on error. It is intended for
// package-level fixtures and tests.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jsonvalue: MustParse: %v", err))
	}
	return v
}

func nodeError(node *yaml.Node, format string, args ...any) error {
	return &schemaerrors.ParseError{
		Line:    node.Line,
		Column:  node.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func fromNode(node *yaml.Node, depth int) (Value, error) {
	if depth > maxNestingDepth {
		return Value{}, nodeError(node, "document nesting exceeds %d levels", maxNestingDepth)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		return fromNode(node.Content[0], depth)

	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, nodeError(node, "dangling alias")
		}
		return fromNode(node.Alias, depth+1)

	case yaml.MappingNode:
		// Content alternates: key, value, key, value...
		members := make([]Member, 0, len(node.Content)/2)
		seen := make(map[string]struct{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, nodeError(keyNode, "object keys must be strings")
			}
			key := keyNode.Value
			if _, dup := seen[key]; dup {
				return Value{}, nodeError(keyNode, "duplicate key %q", key)
			}
			seen[key] = struct{}{}
			val, err := fromNode(valNode, depth+1)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key, Value: val})
		}
		return Object(members...), nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := fromNode(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, val)
		}
		return Array(items...), nil

	case yaml.ScalarNode:
		return fromScalar(node)

	default:
		return Value{}, nodeError(node, "unsupported node kind %d", node.Kind)
	}
}

func fromScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(node.Value))
		if err != nil {
			return Value{}, nodeError(node, "invalid boolean %q", node.Value)
		}
		return Bool(b), nil
	case "!!int":
		return parseInteger(node)
	case "!!float":
		return parseFloat(node)
	default:
		// Strings, timestamps and binary scalars all keep their source text.
		return String(node.Value), nil
	}
}

func parseInteger(node *yaml.Node) (Value, error) {
	text := node.Value
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 0, 64); err == nil {
		return Uint(u), nil
	}
	// Integers beyond 64 bits degrade to the nearest float.
	return parseFloat(node)
}

func parseFloat(node *yaml.Node) (Value, error) {
	f, err := strconv.ParseFloat(node.Value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, nodeError(node, "invalid number %q", node.Value)
	}
	return Float(f), nil
}
