package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/prdupe/internal/errors"
	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/similarity"
)

const repo = "octo/hello"

func ref(n int) models.PRRef {
	return models.PRRef{Repo: repo, Number: n}
}

func profile(n int, files ...string) models.Profile {
	return models.Profile{
		Ref:          ref(n),
		ChangedFiles: models.NewStringSet(files...),
		TextTokens:   models.NewStringSet("fix", "crash"),
		AddedWords:   models.NewStringSet(),
		IssueIDs:     models.NewStringSet(),
	}
}

func TestDuplicateService_ComparePair(t *testing.T) {
	t.Run("should build both profiles and compare them", func(t *testing.T) {
		builder := new(MockProfileBuilder)
		builder.On("Build", mock.Anything, ref(1)).Return(profile(1, "a.go", "b.go"), nil)
		builder.On("Build", mock.Anything, ref(2)).Return(profile(2, "b.go", "c.go"), nil)

		service := NewDuplicateService(builder, similarity.NewComparator())

		result, err := service.ComparePair(context.Background(), models.Pair{Repo: repo, First: 1, Second: 2})

		require.NoError(t, err)
		assert.InDelta(t, 1.0/3.0, result.FilesJaccard, 1e-9)
		assert.Equal(t, 1, result.FilesIntersect)
		assert.Equal(t, models.IssueRelationUnknown, result.IssueRelation)
		assert.InDelta(t, 1.0, result.TextCosine, 1e-9)
		assert.InDelta(t, (1.0/3.0+1.0+0.0)/3.0, result.Score, 1e-9)
		builder.AssertExpectations(t)
	})

	t.Run("should fail the pair when a profile cannot be built", func(t *testing.T) {
		builder := new(MockProfileBuilder)
		comparator := new(MockComparator)
		notFound := domainErrors.ErrPullRequestNotFound.WithContext("pr_number", 2)
		builder.On("Build", mock.Anything, ref(1)).Return(profile(1), nil).Maybe()
		builder.On("Build", mock.Anything, ref(2)).Return(models.Profile{}, notFound)

		service := NewDuplicateService(builder, comparator)

		_, err := service.ComparePair(context.Background(), models.Pair{Repo: repo, First: 1, Second: 2})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrPullRequestNotFound)
		comparator.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	})
}

func TestDuplicateService_Evaluate(t *testing.T) {
	t.Run("should classify pairs and count the confusion matrix", func(t *testing.T) {
		builder := new(MockProfileBuilder)
		for n := 1; n <= 6; n++ {
			builder.On("Build", mock.Anything, ref(n)).Return(profile(n), nil)
		}

		comparator := new(MockComparator)
		score := func(first, second int, s float64) {
			comparator.On("Compare", profile(first), profile(second)).Return(models.ComparisonResult{Score: s})
		}
		score(1, 2, 0.9)
		score(3, 4, 0.5)
		score(5, 6, 0.7)

		service := NewDuplicateService(builder, comparator, WithConcurrency(2))

		duplicates := []models.Pair{
			{Repo: repo, First: 1, Second: 2, Line: 1},
			{Repo: repo, First: 3, Second: 4, Line: 2},
		}
		nonDuplicates := []models.Pair{
			{Repo: repo, First: 5, Second: 6, Line: 1},
		}

		eval, err := service.Evaluate(context.Background(), duplicates, nonDuplicates, 0.5, nil)

		require.NoError(t, err)
		assert.Equal(t, 0.5, eval.Threshold)
		require.Len(t, eval.Duplicates, 2)
		assert.Equal(t, 1, eval.Duplicates[0].Pair.First)
		assert.Equal(t, 5, eval.Duplicates[1].Pair.First)
		require.Len(t, eval.NonDuplicates, 1)
		assert.Equal(t, 3, eval.NonDuplicates[0].Pair.First, "a score equal to the threshold is not a duplicate")
		assert.Empty(t, eval.Failed)
		assert.Equal(t, models.Confusion{
			TruePositives:  1,
			FalsePositives: 1,
			TrueNegatives:  0,
			FalseNegatives: 1,
		}, eval.Confusion)
	})

	t.Run("should keep going when a pair fails", func(t *testing.T) {
		builder := new(MockProfileBuilder)
		builder.On("Build", mock.Anything, ref(1)).Return(profile(1, "a.go"), nil)
		builder.On("Build", mock.Anything, ref(2)).Return(profile(2, "a.go"), nil)
		builder.On("Build", mock.Anything, ref(3)).Return(models.Profile{}, domainErrors.ErrFetchPullRequest)
		builder.On("Build", mock.Anything, ref(4)).Return(profile(4), nil).Maybe()

		service := NewDuplicateService(builder, similarity.NewComparator())

		var mu sync.Mutex
		var events []models.ProgressEvent
		progress := func(e models.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		}

		eval, err := service.Evaluate(context.Background(),
			[]models.Pair{{Repo: repo, First: 1, Second: 2}},
			[]models.Pair{{Repo: repo, First: 3, Second: 4}},
			0.5, progress)

		require.NoError(t, err)
		require.Len(t, eval.Duplicates, 1)
		assert.Empty(t, eval.NonDuplicates)
		require.Len(t, eval.Failed, 1)
		assert.Equal(t, 3, eval.Failed[0].Pair.First)
		assert.ErrorIs(t, eval.Failed[0].Err, domainErrors.ErrFetchPullRequest)
		assert.NotEmpty(t, eval.Failed[0].Error)
		assert.Equal(t, 1, eval.Confusion.TruePositives)
		assert.Equal(t, 0, eval.Confusion.FalsePositives+eval.Confusion.TrueNegatives+eval.Confusion.FalseNegatives)

		counts := map[models.ProgressEventType]int{}
		for _, e := range events {
			counts[e.Type]++
		}
		assert.Equal(t, 2, counts[models.ProgressPairStarted])
		assert.Equal(t, 1, counts[models.ProgressPairCompleted])
		assert.Equal(t, 1, counts[models.ProgressPairFailed])
	})

	t.Run("should return empty buckets for no input", func(t *testing.T) {
		service := NewDuplicateService(new(MockProfileBuilder), new(MockComparator))

		eval, err := service.Evaluate(context.Background(), nil, nil, 0.5, nil)

		require.NoError(t, err)
		assert.NotNil(t, eval.Duplicates)
		assert.NotNil(t, eval.NonDuplicates)
		assert.NotNil(t, eval.Failed)
		assert.Zero(t, eval.Confusion.Precision())
		assert.Zero(t, eval.Confusion.Recall())
	})

	t.Run("should stop on a cancelled context", func(t *testing.T) {
		builder := new(MockProfileBuilder)
		builder.On("Build", mock.Anything, mock.Anything).Return(models.Profile{}, context.Canceled).Maybe()

		service := NewDuplicateService(builder, new(MockComparator))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := service.Evaluate(ctx, []models.Pair{{Repo: repo, First: 1, Second: 2}}, nil, 0.5, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(models.ComparisonResult{Score: 0.51}, 0.5))
	assert.False(t, IsDuplicate(models.ComparisonResult{Score: 0.5}, 0.5))
}
