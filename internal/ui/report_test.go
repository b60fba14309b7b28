package ui

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/thomas-vilte/prdupe/internal/models"
)

func newTranslations(t *testing.T) *i18n.Translations {
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return translations
}

func TestPrintComparison(t *testing.T) {
	var out bytes.Buffer
	translations := newTranslations(t)

	PrintComparison(&out, translations,
		models.Pair{Repo: "octo/hello", First: 12, Second: 34},
		models.ComparisonResult{
			FilesJaccard:     1.0 / 3.0,
			FilesIntersect:   1,
			IssueRelation:    models.IssueRelationLowSimilar,
			TextCosine:       0.25,
			AddedWordsCosine: 0,
			Score:            0.5,
		})

	output := out.String()
	assert.Contains(t, output, "Similarities of Pull Request no.12 and Pull Request no.34 from Repo octo/hello:")
	assert.Contains(t, output, "Changed files (Jaccard): 0.3333")
	assert.Contains(t, output, "Shared files: 1")
	assert.Contains(t, output, "Linked issues: some shared issues")
	assert.Contains(t, output, "Title and description (cosine): 0.2500")
	assert.Contains(t, output, "Added code words (cosine): 0.0000")
	assert.Contains(t, output, "Duplicate score: 0.5000")
}

func TestPrintEvaluation(t *testing.T) {
	t.Run("should print buckets, failures and the summary", func(t *testing.T) {
		var out bytes.Buffer
		translations := newTranslations(t)

		PrintEvaluation(&out, translations, models.Evaluation{
			Threshold: 0.5,
			Duplicates: []models.PairReport{
				{Pair: models.Pair{Repo: "octo/hello", First: 1, Second: 2}, Result: &models.ComparisonResult{Score: 0.8}},
			},
			NonDuplicates: []models.PairReport{},
			Failed: []models.PairReport{
				{Pair: models.Pair{Repo: "octo/hello", First: 3, Second: 4}, Error: "VCS: pull request not found"},
			},
			Confusion: models.Confusion{TruePositives: 1, FalseNegatives: 1},
		})

		output := out.String()
		assert.Contains(t, output, "Classified as duplicates, score > 0.5000 (1)")
		assert.Contains(t, output, "Classified as non-duplicates, score <= 0.5000 (0)")
		assert.Contains(t, output, "(none)")
		assert.Contains(t, output, "Pairs that could not be compared (1)")
		assert.Contains(t, output, "octo/hello #3 #4: VCS: pull request not found")
		assert.Contains(t, output, "Precision: 1.0000")
		assert.Contains(t, output, "Recall: 0.5000")
	})

	t.Run("should skip the failed section when nothing failed", func(t *testing.T) {
		var out bytes.Buffer
		translations := newTranslations(t)

		PrintEvaluation(&out, translations, models.Evaluation{Threshold: 0.5})

		assert.NotContains(t, out.String(), "could not be compared")
	})
}

func TestRelationLabel(t *testing.T) {
	translations := newTranslations(t)

	assert.Equal(t, "unknown", RelationLabel(translations, models.IssueRelationUnknown))
	assert.Equal(t, "same issues", RelationLabel(translations, models.IssueRelationHighlySimilar))
	assert.Equal(t, "some shared issues", RelationLabel(translations, models.IssueRelationLowSimilar))
	assert.Equal(t, "different issues", RelationLabel(translations, models.IssueRelationDissimilar))
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, PrintJSON(&out, models.ComparisonResult{IssueRelation: models.IssueRelationDissimilar, Score: 0.25}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Dissimilar", decoded["issue_relation"])
	assert.Equal(t, 0.25, decoded["score"])
}
