package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet(t *testing.T) {
	a := NewStringSet("a.go", "b.go", "b.go")
	b := NewStringSet("b.go", "c.go")

	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Has("a.go"))
	assert.False(t, a.Has("c.go"))
	assert.Equal(t, 1, a.IntersectionLen(b))
	assert.Equal(t, 3, a.UnionLen(b))
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, a.Union(b).Items())
	assert.Equal(t, []string{"a.go"}, a.Difference(b).Items())
	assert.True(t, a.Equal(NewStringSet("b.go", "a.go")))
	assert.False(t, a.Equal(b))
}

func TestStringSet_ZeroValue(t *testing.T) {
	var s StringSet

	assert.True(t, s.IsEmpty())
	assert.False(t, s.Has("x"))
	assert.Empty(t, s.Items())
	assert.True(t, s.Equal(NewStringSet()))
	assert.Equal(t, 0, s.IntersectionLen(NewStringSet("x")))
}

func TestStringSet_UnionDoesNotAlias(t *testing.T) {
	a := NewStringSet("x")
	u := a.Union(NewStringSet("y"))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, u.Len())
}

func TestStringSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewStringSet("b", "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))

	var s StringSet
	require.NoError(t, json.Unmarshal([]byte(`["x","y","x"]`), &s))
	assert.Equal(t, []string{"x", "y"}, s.Items())
}

func TestIssueRelation_String(t *testing.T) {
	assert.Equal(t, "Unknown", IssueRelationUnknown.String())
	assert.Equal(t, "HighlySimilar", IssueRelationHighlySimilar.String())
	assert.Equal(t, "LowSimilar", IssueRelationLowSimilar.String())
	assert.Equal(t, "Dissimilar", IssueRelationDissimilar.String())

	data, err := json.Marshal(IssueRelationLowSimilar)
	require.NoError(t, err)
	assert.Equal(t, `"LowSimilar"`, string(data))
}

func TestConfusion(t *testing.T) {
	c := Confusion{TruePositives: 3, FalsePositives: 1, FalseNegatives: 3}

	assert.InDelta(t, 0.75, c.Precision(), 1e-9)
	assert.InDelta(t, 0.5, c.Recall(), 1e-9)
	assert.Equal(t, 0.0, Confusion{}.Precision())
	assert.Equal(t, 0.0, Confusion{}.Recall())
}
