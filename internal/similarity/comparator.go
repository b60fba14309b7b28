package similarity

import (
	"github.com/thomas-vilte/prdupe/internal/models"
)

// Comparator scores pairs of profiles. It holds no state and is safe for
// concurrent use.
type Comparator struct{}

func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare computes every signal for the pair and the aggregate score.
func (c *Comparator) Compare(first, second models.Profile) models.ComparisonResult {
	result := models.ComparisonResult{
		FilesJaccard:     Jaccard(first.ChangedFiles, second.ChangedFiles),
		FilesIntersect:   first.ChangedFiles.IntersectionLen(second.ChangedFiles),
		IssueRelation:    ClassifyIssues(first.IssueIDs, second.IssueIDs),
		TextCosine:       Cosine(first.TextTokens, second.TextTokens),
		AddedWordsCosine: Cosine(first.AddedWords, second.AddedWords),
	}
	result.Score = Aggregate(result)
	return result
}

// Aggregate averages the applicable signals. Files, text and added words
// always count; the issue relation counts only when it is not Unknown, so a
// pair without issue links is scored on code and text alone.
func Aggregate(r models.ComparisonResult) float64 {
	sum := r.FilesJaccard + r.TextCosine + r.AddedWordsCosine
	n := 3.0

	if w, ok := IssueWeight(r.IssueRelation); ok {
		sum += w
		n++
	}

	return clamp(sum / n)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
