package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thomas-vilte/prdupe/internal/models"
)

func set(items ...string) models.StringSet {
	return models.NewStringSet(items...)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b models.StringSet
		want float64
	}{
		{"partial overlap", set("a.go", "b.go"), set("b.go", "c.go"), 1.0 / 3.0},
		{"identical", set("a.go", "b.go"), set("b.go", "a.go"), 1},
		{"disjoint", set("a.go"), set("b.go"), 0},
		{"one empty", set(), set("a.go"), 0},
		{"both empty", set(), set(), EmptySetSimilarity},
		{"zero values", models.StringSet{}, models.StringSet{}, EmptySetSimilarity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-12)
			assert.Equal(t, Jaccard(tt.a, tt.b), Jaccard(tt.b, tt.a), "jaccard must be symmetric")
		})
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b models.StringSet
		want float64
	}{
		{"identical", set("fix", "crash", "parser"), set("parser", "crash", "fix"), 1},
		{"half overlap", set("a", "b"), set("b", "c"), 0.5},
		{"uneven sizes", set("a"), set("a", "b", "c", "d"), 0.5},
		{"disjoint", set("a"), set("b"), 0},
		{"one empty", set("a", "b"), set(), 0},
		{"other empty", set(), set("a"), 0},
		{"both empty", set(), set(), EmptySetSimilarity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.False(t, math.IsNaN(got))
			assert.Equal(t, got, Cosine(tt.b, tt.a), "cosine must be symmetric")
		})
	}
}

func TestCosine_MatchesIndicatorVectors(t *testing.T) {
	a := set("go", "vet", "lint", "race")
	b := set("go", "race", "fuzz")

	vocab := a.Union(b).Items()
	var dot, sumA, sumB float64
	for _, w := range vocab {
		var va, vb float64
		if a.Has(w) {
			va = 1
		}
		if b.Has(w) {
			vb = 1
		}
		dot += va * vb
		sumA += va
		sumB += vb
	}

	assert.InDelta(t, dot/math.Sqrt(sumA*sumB), Cosine(a, b), 1e-12)
}

func TestEmptySetPolicy_IsSharedByBothCosineSignals(t *testing.T) {
	c := NewComparator()
	empty := models.Profile{ChangedFiles: set("a.go")}

	result := c.Compare(empty, empty)

	assert.Equal(t, EmptySetSimilarity, result.TextCosine)
	assert.Equal(t, EmptySetSimilarity, result.AddedWordsCosine)
	assert.Equal(t, result.TextCosine, result.AddedWordsCosine)
}

func TestClassifyIssues(t *testing.T) {
	tests := []struct {
		name string
		a, b models.StringSet
		want models.IssueRelation
	}{
		{"equal", set("5"), set("5"), models.IssueRelationHighlySimilar},
		{"equal multi", set("5", "6"), set("6", "5"), models.IssueRelationHighlySimilar},
		{"overlap", set("5", "6"), set("6", "7"), models.IssueRelationLowSimilar},
		{"subset", set("5"), set("5", "6"), models.IssueRelationLowSimilar},
		{"disjoint", set("5"), set("9"), models.IssueRelationDissimilar},
		{"left empty", set(), set("5"), models.IssueRelationUnknown},
		{"right empty", set("5"), set(), models.IssueRelationUnknown},
		{"both empty", set(), set(), models.IssueRelationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIssues(tt.a, tt.b))
			assert.Equal(t, tt.want, ClassifyIssues(tt.b, tt.a))
		})
	}
}

func TestIssueWeight(t *testing.T) {
	w, ok := IssueWeight(models.IssueRelationHighlySimilar)
	assert.True(t, ok)
	assert.Equal(t, 1.0, w)

	w, ok = IssueWeight(models.IssueRelationLowSimilar)
	assert.True(t, ok)
	assert.Equal(t, 0.75, w)

	w, ok = IssueWeight(models.IssueRelationDissimilar)
	assert.True(t, ok)
	assert.Equal(t, 0.0, w)

	_, ok = IssueWeight(models.IssueRelationUnknown)
	assert.False(t, ok)
}
