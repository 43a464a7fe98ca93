package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func sampleTree() ErrorTree {
	return ErrorTree{
		{
			SchemaLocation:   "#/properties/n",
			InstanceLocation: "",
			Message:          msgSubschemaFailed,
			Errors: ErrorTree{{
				SchemaLocation:   "#/properties/n/type",
				InstanceLocation: "/n",
				Message:          "Type mismatch, schema requires number, got string",
			}},
		},
		{
			SchemaLocation: "#/required/0",
			Message:        `Missing required property "id"`,
		},
	}
}

func TestErrorTreeJSONShapes(t *testing.T) {
	t.Run("empty is null", func(t *testing.T) {
		data, err := json.Marshal(Result{Valid: true})
		require.NoError(t, err)
		assert.JSONEq(t, `{"valid": true, "errors": null}`, string(data))
	})

	t.Run("single node is an object", func(t *testing.T) {
		data, err := json.Marshal(Result{Errors: sampleTree()[1:]})
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"valid": false,
			"errors": {
				"schemaLocation": "#/required/0",
				"instanceLocation": "",
				"message": "Missing required property \"id\""
			}
		}`, string(data))
	})

	t.Run("several nodes are an array", func(t *testing.T) {
		data, err := json.Marshal(sampleTree())
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{
				"schemaLocation": "#/properties/n",
				"instanceLocation": "",
				"message": "Sub-schema does not validate the instance",
				"errors": {
					"schemaLocation": "#/properties/n/type",
					"instanceLocation": "/n",
					"message": "Type mismatch, schema requires number, got string"
				}
			},
			{
				"schemaLocation": "#/required/0",
				"instanceLocation": "",
				"message": "Missing required property \"id\""
			}
		]`, string(data))
	})
}

func TestErrorTreeJSONRoundTrip(t *testing.T) {
	for _, tree := range []ErrorTree{nil, sampleTree()[1:], sampleTree()} {
		data, err := json.Marshal(tree)
		require.NoError(t, err)

		var got ErrorTree
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, tree, got)
	}
}

func TestErrorTreeYAML(t *testing.T) {
	data, err := yaml.Marshal(Result{Errors: sampleTree()[1:]})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["valid"])
	errs, ok := decoded["errors"].(map[string]any)
	require.True(t, ok, "single node should encode as a mapping:\n%s", data)
	assert.Equal(t, "#/required/0", errs["schemaLocation"])

	data, err = yaml.Marshal(Result{Errors: sampleTree()})
	require.NoError(t, err)
	decoded = nil
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	list, ok := decoded["errors"].([]any)
	require.True(t, ok, "several nodes should encode as a sequence:\n%s", data)
	assert.Len(t, list, 2)

	data, err = yaml.Marshal(Result{Valid: true})
	require.NoError(t, err)
	decoded = nil
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["errors"])
}

func TestErrorTreeLeavesAndCount(t *testing.T) {
	tree := sampleTree()

	leaves := tree.Leaves()
	require.Len(t, leaves, 2)
	assert.Equal(t, "#/properties/n/type", leaves[0].SchemaLocation)
	assert.Equal(t, "#/required/0", leaves[1].SchemaLocation)
	assert.Equal(t, 3, tree.Count())

	assert.Empty(t, ErrorTree(nil).Leaves())
	assert.Zero(t, ErrorTree(nil).Count())
}

func TestErrorTreeString(t *testing.T) {
	want := "(root): Sub-schema does not validate the instance [#/properties/n]\n" +
		"  /n: Type mismatch, schema requires number, got string [#/properties/n/type]\n" +
		"(root): Missing required property \"id\" [#/required/0]\n"
	assert.Equal(t, want, sampleTree().String())
	assert.Empty(t, ErrorTree(nil).String())
}
