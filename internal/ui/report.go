package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/thomas-vilte/prdupe/internal/models"
)

// PrintComparison writes the report block of one compared pair.
func PrintComparison(w io.Writer, t *i18n.Translations, pair models.Pair, result models.ComparisonResult) {
	_, _ = fmt.Fprintln(w, Info.Sprint(t.GetMessage("report.header", 0, map[string]interface{}{
		"First":  pair.First,
		"Second": pair.Second,
		"Repo":   pair.Repo,
	})))
	PrintKeyValue(w, t.GetMessage("report.files_jaccard", 0, nil), formatScore(result.FilesJaccard))
	PrintKeyValue(w, t.GetMessage("report.files_intersect", 0, nil), fmt.Sprintf("%d", result.FilesIntersect))
	PrintKeyValue(w, t.GetMessage("report.issue_relation", 0, nil), RelationLabel(t, result.IssueRelation))
	PrintKeyValue(w, t.GetMessage("report.text_cosine", 0, nil), formatScore(result.TextCosine))
	PrintKeyValue(w, t.GetMessage("report.added_words_cosine", 0, nil), formatScore(result.AddedWordsCosine))
	PrintKeyValue(w, t.GetMessage("report.score", 0, nil), scoreColor(result.Score).Sprint(formatScore(result.Score)))
}

// PrintEvaluation writes the duplicate and non-duplicate buckets, the failed
// pairs and the confusion summary of an evaluation run.
func PrintEvaluation(w io.Writer, t *i18n.Translations, eval models.Evaluation) {
	header := func(count int) map[string]interface{} {
		return map[string]interface{}{
			"Threshold": formatScore(eval.Threshold),
			"Count":     count,
		}
	}

	PrintSectionBanner(w, t.GetMessage("evaluate.duplicates_header", 0, header(len(eval.Duplicates))))
	printBucket(w, t, eval.Duplicates)

	PrintSectionBanner(w, t.GetMessage("evaluate.non_duplicates_header", 0, header(len(eval.NonDuplicates))))
	printBucket(w, t, eval.NonDuplicates)

	if len(eval.Failed) > 0 {
		PrintSectionBanner(w, t.GetMessage("evaluate.failed_header", 0, header(len(eval.Failed))))
		for _, report := range eval.Failed {
			PrintWarning(w, fmt.Sprintf("%s #%d #%d: %s", report.Pair.Repo, report.Pair.First, report.Pair.Second, report.Error))
		}
	}

	c := eval.Confusion
	PrintSectionBanner(w, t.GetMessage("evaluate.summary_header", 0, nil))
	PrintKeyValue(w, t.GetMessage("evaluate.true_positives", 0, nil), fmt.Sprintf("%d", c.TruePositives))
	PrintKeyValue(w, t.GetMessage("evaluate.false_positives", 0, nil), fmt.Sprintf("%d", c.FalsePositives))
	PrintKeyValue(w, t.GetMessage("evaluate.true_negatives", 0, nil), fmt.Sprintf("%d", c.TrueNegatives))
	PrintKeyValue(w, t.GetMessage("evaluate.false_negatives", 0, nil), fmt.Sprintf("%d", c.FalseNegatives))
	PrintKeyValue(w, t.GetMessage("evaluate.precision", 0, nil), formatScore(c.Precision()))
	PrintKeyValue(w, t.GetMessage("evaluate.recall", 0, nil), formatScore(c.Recall()))
}

func printBucket(w io.Writer, t *i18n.Translations, reports []models.PairReport) {
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(w, Dim.Sprint(t.GetMessage("evaluate.none", 0, nil)))
		return
	}
	for _, report := range reports {
		PrintComparison(w, t, report.Pair, *report.Result)
		_, _ = fmt.Fprintln(w)
	}
}

// RelationLabel returns the localized name of an issue relation.
func RelationLabel(t *i18n.Translations, r models.IssueRelation) string {
	switch r {
	case models.IssueRelationHighlySimilar:
		return t.GetMessage("report.relation_highly_similar", 0, nil)
	case models.IssueRelationLowSimilar:
		return t.GetMessage("report.relation_low_similar", 0, nil)
	case models.IssueRelationDissimilar:
		return t.GetMessage("report.relation_dissimilar", 0, nil)
	default:
		return t.GetMessage("report.relation_unknown", 0, nil)
	}
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= 0.75:
		return Error
	case score >= 0.5:
		return Warning
	default:
		return Success
	}
}
