// Package similarity compares pull request profiles and folds the individual
// signals into a single duplicate-likelihood score.
package similarity

import (
	"math"

	"github.com/thomas-vilte/prdupe/internal/models"
)

// EmptySetSimilarity is returned by Jaccard and Cosine when both inputs are
// empty. It is the same for every set signal.
const EmptySetSimilarity = 0.0

// Jaccard returns |a∩b| / |a∪b|.
func Jaccard(a, b models.StringSet) float64 {
	union := a.UnionLen(b)
	if union == 0 {
		return EmptySetSimilarity
	}
	return float64(a.IntersectionLen(b)) / float64(union)
}

// Cosine returns the cosine similarity of the 0/1 indicator vectors of a and
// b over their joint vocabulary, which reduces to |a∩b| / sqrt(|a|·|b|).
func Cosine(a, b models.StringSet) float64 {
	if a.IsEmpty() && b.IsEmpty() {
		return EmptySetSimilarity
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0
	}
	return float64(a.IntersectionLen(b)) / math.Sqrt(float64(a.Len())*float64(b.Len()))
}

// ClassifyIssues relates two issue sets. Equality is checked before overlap
// so identical sets never land in the weaker LowSimilar bucket.
func ClassifyIssues(a, b models.StringSet) models.IssueRelation {
	switch {
	case a.IsEmpty() || b.IsEmpty():
		return models.IssueRelationUnknown
	case a.Equal(b):
		return models.IssueRelationHighlySimilar
	case a.IntersectionLen(b) > 0:
		return models.IssueRelationLowSimilar
	default:
		return models.IssueRelationDissimilar
	}
}

// IssueWeight maps a relation to its score contribution. ok is false for
// Unknown, which does not take part in the aggregate.
func IssueWeight(r models.IssueRelation) (weight float64, ok bool) {
	switch r {
	case models.IssueRelationHighlySimilar:
		return 1.0, true
	case models.IssueRelationLowSimilar:
		return 0.75, true
	case models.IssueRelationDissimilar:
		return 0.0, true
	case models.IssueRelationUnknown:
		return 0, false
	default:
		return 0, false
	}
}
