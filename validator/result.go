package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the outcome of validating one instance.
type Result struct {
	// Valid is true when the instance conforms. It is always equal to
	// len(Errors) == 0.
	Valid bool `json:"valid" yaml:"valid"`
	// Errors describes every violation, nested the way the failing keywords
	// were evaluated.
	Errors ErrorTree `json:"errors" yaml:"errors"`
}

// ErrorNode is one reported violation.
type ErrorNode struct {
	// SchemaLocation is the JSON Pointer fragment, rooted at "#", of the
	// keyword that failed, following the evaluation path through $ref.
	SchemaLocation string `json:"schemaLocation" yaml:"schemaLocation"`
	// InstanceLocation is the JSON Pointer of the instance value that
	// failed. The instance root is "".
	InstanceLocation string `json:"instanceLocation" yaml:"instanceLocation"`
	// Message describes the violation.
	Message string `json:"message" yaml:"message"`
	// Errors holds the violations of the subschemas that made this
	// keyword fail, if any.
	Errors ErrorTree `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ErrorTree is an ordered list of violations.
//
// Its JSON and YAML encoding is null when empty, a single object when it
// holds one node and an array otherwise.
type ErrorTree []ErrorNode

// MarshalJSON implements json.Marshaler.
func (t ErrorTree) MarshalJSON() ([]byte, error) {
	switch len(t) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(t[0])
	default:
		return json.Marshal([]ErrorNode(t))
	}
}

// UnmarshalJSON implements json.Unmarshaler, accepting any of the shapes
// MarshalJSON produces.
func (t *ErrorTree) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = nil
		return nil
	case len(data) > 0 && data[0] == '{':
		var n ErrorNode
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = ErrorTree{n}
		return nil
	default:
		var nodes []ErrorNode
		if err := json.Unmarshal(data, &nodes); err != nil {
			return err
		}
		*t = nodes
		return nil
	}
}

// MarshalYAML implements yaml.Marshaler with the same shapes as MarshalJSON.
func (t ErrorTree) MarshalYAML() (any, error) {
	switch len(t) {
	case 0:
		return nil, nil
	case 1:
		return t[0], nil
	default:
		return []ErrorNode(t), nil
	}
}

// Leaves returns the innermost violations, the nodes without nested errors,
// in depth-first order.
func (t ErrorTree) Leaves() []ErrorNode {
	var leaves []ErrorNode
	var walk func(ErrorTree)
	walk = func(nodes ErrorTree) {
		for _, n := range nodes {
			if len(n.Errors) == 0 {
				leaves = append(leaves, n)
				continue
			}
			walk(n.Errors)
		}
	}
	walk(t)
	return leaves
}

// Count returns the total number of nodes in the tree.
func (t ErrorTree) Count() int {
	n := len(t)
	for _, node := range t {
		n += node.Errors.Count()
	}
	return n
}

// String renders the tree as indented text, one violation per line.
func (t ErrorTree) String() string {
	var b strings.Builder
	t.write(&b, 0)
	return b.String()
}

func (t ErrorTree) write(b *strings.Builder, depth int) {
	for _, n := range t {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(b, "%s: %s [%s]\n", displayLocation(n.InstanceLocation), n.Message, n.SchemaLocation)
		n.Errors.write(b, depth+1)
	}
}

// displayLocation renders an instance location for humans; the root pointer
// is empty.
func displayLocation(loc string) string {
	if loc == "" {
		return "(root)"
	}
	return loc
}
