package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectBare(t *testing.T) {
	in := `{"classification": "how_to"}`
	assert.Equal(t, in, ExtractJSONObject(in))
}

func TestExtractJSONObjectWrappedInProse(t *testing.T) {
	in := "Here is my verdict:\n{\"classification\": \"known_issue\", \"escalate\": false}\nHope that helps."

	out := ExtractJSONObject(in)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "known_issue", parsed["classification"])
}

func TestExtractJSONObjectCodeFence(t *testing.T) {
	in := "```json\n{\"a\": 1}\n```"

	out := ExtractJSONObject(in)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
}

func TestExtractJSONObjectArray(t *testing.T) {
	in := "results: [1, 2, 3] done"

	out := ExtractJSONObject(in)

	var parsed []any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed, 3)
}

func TestExtractJSONObjectNoJSON(t *testing.T) {
	in := "just some prose with no braces"
	assert.Equal(t, in, ExtractJSONObject(in))
}
