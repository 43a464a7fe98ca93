package validator

import (
	"testing"

	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keywordCase struct {
	instance string
	valid    bool
}

func runKeywordCases(t *testing.T, schema string, cases []keywordCase) {
	t.Helper()
	v := newValidator(t)
	addSchema(t, v, schema, "http://example.com/keyword.json")
	for _, c := range cases {
		res := validate(v, c.instance)
		assert.Equal(t, c.valid, res.Valid, "schema %s, instance %s:\n%s", schema, c.instance, res.Errors)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		cases  []keywordCase
	}{
		{"true schema", `true`, []keywordCase{{`1`, true}, {`null`, true}}},
		{"false schema", `false`, []keywordCase{{`1`, false}, {`{}`, false}}},
		{"empty schema", `{}`, []keywordCase{{`"x"`, true}, {`[]`, true}}},

		{"type integer", `{"type": "integer"}`, []keywordCase{
			{`1`, true}, {`1.0`, true}, {`1.5`, false}, {`"1"`, false}, {`18446744073709551615`, true},
		}},
		{"type number", `{"type": "number"}`, []keywordCase{{`1`, true}, {`-2.5e3`, true}, {`"1"`, false}}},
		{"type null", `{"type": "null"}`, []keywordCase{{`null`, true}, {`false`, false}, {`0`, false}}},
		{"type boolean", `{"type": "boolean"}`, []keywordCase{{`true`, true}, {`0`, false}}},
		{"type object", `{"type": "object"}`, []keywordCase{{`{}`, true}, {`[]`, false}}},
		{"type array", `{"type": "array"}`, []keywordCase{{`[]`, true}, {`{}`, false}}},
		{"unknown type", `{"type": "foo"}`, []keywordCase{{`1`, false}, {`null`, false}}},
		{"ill-typed type", `{"type": 5}`, []keywordCase{{`1`, true}}},

		{"enum", `{"enum": [1, "a", {"x": [1]}]}`, []keywordCase{
			{`1`, true}, {`1.0`, true}, {`"a"`, true}, {`{"x": [1.0]}`, true}, {`2`, false}, {`{"x": []}`, false},
		}},
		{"const null", `{"const": null}`, []keywordCase{{`null`, true}, {`false`, false}, {`0`, false}}},
		{"const object", `{"const": {"a": 1, "b": 2}}`, []keywordCase{
			{`{"b": 2, "a": 1}`, true}, {`{"a": 1}`, false},
		}},
		{"const false is not zero", `{"const": false}`, []keywordCase{{`false`, true}, {`0`, false}}},

		{"multipleOf integer", `{"multipleOf": 2}`, []keywordCase{{`4`, true}, {`5`, false}, {`4.0`, true}, {`"x"`, true}}},
		{"multipleOf decimal", `{"multipleOf": 0.5}`, []keywordCase{{`4.5`, true}, {`4.25`, false}}},
		{"multipleOf zero ignored", `{"multipleOf": 0}`, []keywordCase{{`3`, true}}},
		{"maximum", `{"maximum": 3}`, []keywordCase{{`3`, true}, {`3.5`, false}, {`-10`, true}}},
		{"exclusiveMaximum", `{"exclusiveMaximum": 3}`, []keywordCase{{`3`, false}, {`2.9`, true}}},
		{"minimum", `{"minimum": 1.1}`, []keywordCase{{`1.1`, true}, {`1`, false}}},
		{"exclusiveMinimum", `{"exclusiveMinimum": 0}`, []keywordCase{{`0`, false}, {`0.1`, true}}},
		{"maximum past int64", `{"maximum": 9223372036854775807}`, []keywordCase{
			{`9223372036854775807`, true}, {`9223372036854775808`, false},
		}},
		{"number keywords ignore strings", `{"maximum": 1}`, []keywordCase{{`"abc"`, true}}},

		{"maxLength", `{"maxLength": 2}`, []keywordCase{
			{`"ab"`, true}, {`"abc"`, false}, {`"éé"`, true}, {`"💩💩"`, true}, {`3`, true},
		}},
		{"minLength", `{"minLength": 2}`, []keywordCase{{`"a"`, false}, {`"💩"`, false}, {`"ab"`, true}}},
		{"pattern anchored", `{"pattern": "^a"}`, []keywordCase{{`"abc"`, true}, {`"bac"`, false}, {`12`, true}}},
		{"pattern unanchored", `{"pattern": "b+"}`, []keywordCase{{`"abbc"`, true}, {`"ac"`, false}}},
		{"pattern lookahead", `{"pattern": "^(?!foo)"}`, []keywordCase{{`"bar"`, true}, {`"foobar"`, false}, {`"fo"`, true}}},
		{"pattern backreference", `{"pattern": "(.)\\1"}`, []keywordCase{{`"abba"`, true}, {`"abab"`, false}}},
		{"format is inert", `{"format": "email"}`, []keywordCase{{`"nope"`, true}}},
		{"content keywords are inert", `{"contentEncoding": "base64", "contentMediaType": "application/json"}`, []keywordCase{{`"!!"`, true}}},

		{"properties", `{
			"properties": {"a": {"type": "integer"}},
			"patternProperties": {"^x-": {"type": "string"}},
			"additionalProperties": false
		}`, []keywordCase{
			{`{"a": 1, "x-y": "s"}`, true}, {`{"b": 1}`, false}, {`{"x-y": 1}`, false}, {`{"a": "s"}`, false}, {`[1]`, true},
		}},
		{"patternProperties search", `{"patternProperties": {"f.o": {"type": "integer"}}, "additionalProperties": false}`, []keywordCase{
			{`{"xxfoo": 1}`, true}, {`{"xxfoo": "x"}`, false}, {`{"bar": 1}`, false},
		}},
		{"patternProperties backreference", `{"patternProperties": {"^(a)\\1$": {"type": "integer"}}, "additionalProperties": false}`, []keywordCase{
			{`{"aa": 1}`, true}, {`{"aa": "x"}`, false}, {`{"ab": 1}`, false}, {`{}`, true},
		}},
		{"property matched twice", `{"properties": {"ab": {"minimum": 5}}, "patternProperties": {"^a": {"maximum": 10}}}`, []keywordCase{
			{`{"ab": 7}`, true}, {`{"ab": 3}`, false}, {`{"ab": 11}`, false},
		}},
		{"additionalProperties schema", `{"properties": {"a": true}, "additionalProperties": {"type": "boolean"}}`, []keywordCase{
			{`{"a": 1, "b": true}`, true}, {`{"b": 1}`, false},
		}},
		{"propertyNames", `{"propertyNames": {"maxLength": 3}}`, []keywordCase{
			{`{"abc": 1}`, true}, {`{"abcd": 1}`, false}, {`{}`, true},
		}},
		{"maxProperties", `{"maxProperties": 1}`, []keywordCase{{`{"a": 1}`, true}, {`{"a": 1, "b": 2}`, false}}},
		{"minProperties", `{"minProperties": 1}`, []keywordCase{{`{"a": 1}`, true}, {`{}`, false}}},
		{"required", `{"required": ["a"]}`, []keywordCase{{`{"a": null}`, true}, {`{}`, false}, {`"x"`, true}}},
		{"dependencies", `{"dependencies": {"a": ["b"], "c": {"required": ["d"]}}}`, []keywordCase{
			{`{"a": 1, "b": 2}`, true}, {`{"a": 1}`, false}, {`{"c": 1}`, false}, {`{"c": 1, "d": 1}`, true}, {`{}`, true}, {`[]`, true},
		}},
		{"dependentRequired", `{"dependentRequired": {"a": ["b"]}}`, []keywordCase{
			{`{"a": 1, "b": 2}`, true}, {`{"a": 1}`, false}, {`{"b": 1}`, true},
		}},
		{"dependentSchemas", `{"dependentSchemas": {"a": {"required": ["b"]}}}`, []keywordCase{
			{`{"a": 1, "b": 2}`, true}, {`{"a": 1}`, false}, {`{}`, true},
		}},

		{"items list", `{"items": {"type": "integer"}}`, []keywordCase{{`[1, 2]`, true}, {`[1, "x"]`, false}, {`[]`, true}}},
		{"items tuple", `{"items": [{"type": "integer"}, {"type": "string"}], "additionalItems": false}`, []keywordCase{
			{`[1, "a"]`, true}, {`[1]`, true}, {`[1, "a", 3]`, false}, {`["a"]`, false},
		}},
		{"additionalItems schema", `{"items": [true], "additionalItems": {"type": "string"}}`, []keywordCase{
			{`[1, "a", "b"]`, true}, {`[1, "a", 2]`, false},
		}},
		{"additionalItems after list items", `{"items": {}, "additionalItems": false}`, []keywordCase{{`[1, 2]`, true}}},
		{"additionalItems alone", `{"additionalItems": false}`, []keywordCase{{`[1, 2]`, true}}},
		{"contains", `{"contains": {"const": 2}}`, []keywordCase{{`[1, 2]`, true}, {`[1]`, false}, {`[]`, false}, {`{}`, true}}},
		{"maxContains", `{"contains": {"type": "integer"}, "maxContains": 1}`, []keywordCase{{`[1, "a"]`, true}, {`[1, 2]`, false}}},
		{"minContains", `{"contains": {"type": "integer"}, "minContains": 2}`, []keywordCase{{`[1, 2]`, true}, {`[1, "a"]`, false}}},
		{"maxItems", `{"maxItems": 1}`, []keywordCase{{`[1]`, true}, {`[1, 2]`, false}}},
		{"minItems", `{"minItems": 1}`, []keywordCase{{`[1]`, true}, {`[]`, false}}},
		{"uniqueItems", `{"uniqueItems": true}`, []keywordCase{
			{`[1, 2]`, true}, {`[1, 1.0]`, false}, {`[{"a": 1, "b": 2}, {"b": 2, "a": 1}]`, false},
			{`[[1], [1, 2]]`, true}, {`[0, false]`, true}, {`[null, null]`, false},
		}},
		{"uniqueItems false", `{"uniqueItems": false}`, []keywordCase{{`[1, 1]`, true}}},

		{"allOf", `{"allOf": [{"type": "integer"}, {"minimum": 2}]}`, []keywordCase{{`3`, true}, {`1`, false}, {`2.5`, false}}},
		{"anyOf", `{"anyOf": [{"type": "string"}, {"minimum": 2}]}`, []keywordCase{{`"a"`, true}, {`3`, true}, {`1`, false}}},
		{"oneOf", `{"oneOf": [{"type": "integer"}, {"minimum": 2}]}`, []keywordCase{{`1`, true}, {`2.5`, true}, {`3`, false}, {`1.5`, false}}},
		{"not", `{"not": {"type": "string"}}`, []keywordCase{{`1`, true}, {`"a"`, false}}},
		{"if then else", `{"if": {"type": "integer"}, "then": {"minimum": 0}, "else": {"type": "string"}}`, []keywordCase{
			{`1`, true}, {`-1`, false}, {`"a"`, true}, {`true`, false},
		}},
		{"if without branches", `{"if": {"type": "integer"}}`, []keywordCase{{`1`, true}, {`"a"`, true}}},
		{"then without if", `{"then": false}`, []keywordCase{{`1`, true}}},

		{"ref ignores siblings", `{
			"definitions": {"s": {"type": "string"}},
			"$ref": "#/definitions/s",
			"maxLength": 1
		}`, []keywordCase{{`"abc"`, true}, {`1`, false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runKeywordCases(t, tt.schema, tt.cases)
		})
	}
}

func TestErrorLocations(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		instance string
		want     ErrorNode
	}{
		{
			name:     "else branch",
			schema:   `{"if": {"type": "integer"}, "then": {"minimum": 0}, "else": {"type": "string"}}`,
			instance: `true`,
			want: ErrorNode{
				SchemaLocation: "#/else",
				Message:        msgSubschemaFailed,
				Errors: ErrorTree{{
					SchemaLocation: "#/else/type",
					Message:        "Type mismatch, schema requires string, got boolean",
				}},
			},
		},
		{
			name:     "then branch",
			schema:   `{"if": {"type": "integer"}, "then": {"minimum": 0}}`,
			instance: `-1`,
			want: ErrorNode{
				SchemaLocation: "#/then",
				Message:        msgSubschemaFailed,
				Errors: ErrorTree{{
					SchemaLocation: "#/then/minimum",
					Message:        "Minimum value not reached: -1 < 0",
				}},
			},
		},
		{
			name:     "contains",
			schema:   `{"contains": {"const": 2}}`,
			instance: `[1]`,
			want: ErrorNode{
				SchemaLocation: "#/contains",
				Message:        "No item of the instance validates the sub-schema",
				Errors: ErrorTree{{
					SchemaLocation:   "#/contains/const",
					InstanceLocation: "/0",
					Message:          `Value does not match "const"`,
				}},
			},
		},
		{
			name:     "additionalItems",
			schema:   `{"items": [true], "additionalItems": false}`,
			instance: `[1, 2]`,
			want: ErrorNode{
				SchemaLocation: "#/additionalItems",
				Message:        "Not all additional items validate against the sub-schema: [1]",
				Errors: ErrorTree{{
					SchemaLocation:   "#/additionalItems",
					InstanceLocation: "/1",
					Message:          "boolean schema is false",
				}},
			},
		},
		{
			name:     "multipleOf",
			schema:   `{"multipleOf": 3}`,
			instance: `4`,
			want:     ErrorNode{SchemaLocation: "#/multipleOf", Message: "Value 4 is not a multiple of 3"},
		},
		{
			name:     "maxProperties",
			schema:   `{"maxProperties": 0}`,
			instance: `{"a": 1}`,
			want:     ErrorNode{SchemaLocation: "#/maxProperties", Message: "Object has too many properties: 1 > 0"},
		},
		{
			name:     "minProperties",
			schema:   `{"minProperties": 2}`,
			instance: `{"a": 1}`,
			want:     ErrorNode{SchemaLocation: "#/minProperties", Message: "Object has too few properties: 1 < 2"},
		},
		{
			name:     "escaped property",
			schema:   `{"properties": {"a/b~c": {"type": "integer"}}}`,
			instance: `{"a/b~c": "x"}`,
			want: ErrorNode{
				SchemaLocation: "#/properties/a~1b~0c",
				Message:        msgSubschemaFailed,
				Errors: ErrorTree{{
					SchemaLocation:   "#/properties/a~1b~0c/type",
					InstanceLocation: "/a~1b~0c",
					Message:          "Type mismatch, schema requires integer, got string",
				}},
			},
		},
		{
			name:     "propertyNames",
			schema:   `{"propertyNames": {"maxLength": 1}}`,
			instance: `{"ab": 1}`,
			want: ErrorNode{
				SchemaLocation: "#/propertyNames",
				Message:        `Property name "ab" does not validate against the sub-schema`,
				Errors: ErrorTree{{
					SchemaLocation:   "#/propertyNames/maxLength",
					InstanceLocation: "/ab",
					Message:          "String too long: 2 > 1",
				}},
			},
		},
		{
			name:     "dependentRequired",
			schema:   `{"dependentRequired": {"a": ["b", "c"]}}`,
			instance: `{"a": 1, "b": 2}`,
			want: ErrorNode{
				SchemaLocation: "#/dependentRequired/a/1",
				Message:        `Missing property "c", required by the presence of "a"`,
			},
		},
		{
			name:     "dependencies",
			schema:   `{"dependencies": {"a": ["b"]}}`,
			instance: `{"a": 1}`,
			want: ErrorNode{
				SchemaLocation: "#/dependencies",
				Message:        `Not all dependencies are satisfied: ["a"]`,
				Errors: ErrorTree{{
					SchemaLocation: "#/dependencies/a/0",
					Message:        `Missing property "b", required by the presence of "a"`,
				}},
			},
		},
		{
			name:     "oneOf many",
			schema:   `{"oneOf": [{"type": "integer"}, {"minimum": 0}, {"maximum": 0}]}`,
			instance: `1`,
			want: ErrorNode{
				SchemaLocation: "#/oneOf",
				Message:        "More than one sub-schema validates the instance: [0,1]",
			},
		},
		{
			name:     "not",
			schema:   `{"not": {}}`,
			instance: `1`,
			want:     ErrorNode{SchemaLocation: "#/not", Message: "Sub-schema validates the instance"},
		},
		{
			name:     "pattern",
			schema:   `{"pattern": "^a"}`,
			instance: `"b"`,
			want:     ErrorNode{SchemaLocation: "#/pattern", Message: `String does not match pattern "^a"`},
		},
		{
			name:     "enum",
			schema:   `{"enum": [1]}`,
			instance: `2`,
			want:     ErrorNode{SchemaLocation: "#/enum", Message: "Value not in enum"},
		},
		{
			name:     "items list index",
			schema:   `{"items": {"type": "string"}}`,
			instance: `["a", 1]`,
			want: ErrorNode{
				SchemaLocation: "#/items",
				Message:        "Not all items validate against the sub-schema: [1]",
				Errors: ErrorTree{{
					SchemaLocation:   "#/items/type",
					InstanceLocation: "/1",
					Message:          "Type mismatch, schema requires string, got integer",
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newValidator(t)
			addSchema(t, v, tt.schema, "http://example.com/loc.json")
			res := validate(v, tt.instance)
			require.False(t, res.Valid)
			require.Len(t, res.Errors, 1, res.Errors.String())
			assert.Equal(t, tt.want, res.Errors[0])
		})
	}
}

func TestAllOfNestsEveryFailingBranch(t *testing.T) {
	v := newValidator(t)
	addSchema(t, v, `{"allOf": [{"type": "string"}, true, {"minimum": 5}]}`, "http://example.com/all.json")

	res := validate(v, `3`)
	require.Len(t, res.Errors, 1)
	node := res.Errors[0]
	assert.Equal(t, "#/allOf", node.SchemaLocation)
	assert.Equal(t, "Not all sub-schemas validate the instance: [0,2]", node.Message)
	require.Len(t, node.Errors, 2)
	assert.Equal(t, "#/allOf/0/type", node.Errors[0].SchemaLocation)
	assert.Equal(t, "#/allOf/2/minimum", node.Errors[1].SchemaLocation)
}

func TestAnyOfNestsEveryBranch(t *testing.T) {
	v := newValidator(t)
	addSchema(t, v, `{"anyOf": [{"type": "string"}, {"minimum": 5}]}`, "http://example.com/any.json")

	res := validate(v, `3`)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "No sub-schema validates the instance", res.Errors[0].Message)
	assert.Len(t, res.Errors[0].Errors, 2)
}

func TestInstanceTypeNames(t *testing.T) {
	tests := []struct {
		instance string
		want     string
	}{
		{`null`, "null"},
		{`true`, "boolean"},
		{`1`, "integer"},
		{`1.0`, "integer"},
		{`1.5`, "number"},
		{`"a"`, "string"},
		{`[]`, "array"},
		{`{}`, "object"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, instanceType(jsonvalue.MustParse(tt.instance)), tt.instance)
	}
}

func TestIsMultipleOf(t *testing.T) {
	tests := []struct {
		instance, divisor string
		want              bool
	}{
		{`10`, `5`, true},
		{`10`, `3`, false},
		{`9007199254740993`, `3`, true},
		{`7.5`, `2.5`, true},
		{`7.5`, `2`, false},
		{`0`, `0.3`, true},
	}
	for _, tt := range tests {
		got := isMultipleOf(jsonvalue.MustParse(tt.instance), jsonvalue.MustParse(tt.divisor))
		assert.Equal(t, tt.want, got, "%s / %s", tt.instance, tt.divisor)
	}
}
