package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/models"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// profileBuilder defines what DuplicateService needs to fingerprint a PR.
type profileBuilder interface {
	Build(ctx context.Context, ref models.PRRef) (models.Profile, error)
}

// profileComparator defines what DuplicateService needs to score two profiles.
type profileComparator interface {
	Compare(first, second models.Profile) models.ComparisonResult
}

type DuplicateService struct {
	builder     profileBuilder
	comparator  profileComparator
	concurrency int
}

type DuplicateOption func(*DuplicateService)

// WithConcurrency bounds how many pairs Evaluate compares at once.
func WithConcurrency(n int) DuplicateOption {
	return func(s *DuplicateService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewDuplicateService(builder profileBuilder, comparator profileComparator, opts ...DuplicateOption) *DuplicateService {
	s := &DuplicateService{
		builder:     builder,
		comparator:  comparator,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComparePair builds both profiles concurrently and compares them. Any
// metadata failure aborts the pair.
func (s *DuplicateService) ComparePair(ctx context.Context, pair models.Pair) (models.ComparisonResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	var first, second models.Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.builder.Build(gctx, pair.FirstRef())
		if err != nil {
			return err
		}
		first = p
		return nil
	})
	g.Go(func() error {
		p, err := s.builder.Build(gctx, pair.SecondRef())
		if err != nil {
			return err
		}
		second = p
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Warn("pair comparison failed",
			"repo", pair.Repo,
			"first", pair.First,
			"second", pair.Second,
			"error", err)
		return models.ComparisonResult{}, err
	}

	result := s.comparator.Compare(first, second)

	log.Info("pair compared",
		"repo", pair.Repo,
		"first", pair.First,
		"second", pair.Second,
		"score", result.Score,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// Evaluate compares labelled pairs and classifies each one as a duplicate
// when its score is strictly greater than threshold. Failed pairs are listed
// apart and left out of the confusion counts. Buckets keep input order.
func (s *DuplicateService) Evaluate(
	ctx context.Context,
	duplicates, nonDuplicates []models.Pair,
	threshold float64,
	progress func(models.ProgressEvent),
) (models.Evaluation, error) {
	type job struct {
		pair      models.Pair
		duplicate bool
	}

	jobs := make([]job, 0, len(duplicates)+len(nonDuplicates))
	for _, p := range duplicates {
		jobs = append(jobs, job{pair: p, duplicate: true})
	}
	for _, p := range nonDuplicates {
		jobs = append(jobs, job{pair: p})
	}

	var mu sync.Mutex
	done := 0
	notify := func(eventType models.ProgressEventType, pair models.Pair, err error) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if eventType != models.ProgressPairStarted {
			done++
		}
		data := map[string]interface{}{
			"repo":   pair.Repo,
			"first":  pair.First,
			"second": pair.Second,
			"done":   done,
			"total":  len(jobs),
		}
		if err != nil {
			data["error"] = err.Error()
		}
		progress(models.ProgressEvent{
			Type:    eventType,
			Message: fmt.Sprintf("%s %d %d", pair.Repo, pair.First, pair.Second),
			Data:    data,
		})
	}

	reports := make([]models.PairReport, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			notify(models.ProgressPairStarted, j.pair, nil)

			result, err := s.ComparePair(gctx, j.pair)
			if err != nil {
				reports[i] = models.PairReport{Pair: j.pair, Err: err, Error: err.Error()}
				notify(models.ProgressPairFailed, j.pair, err)
				return nil
			}
			reports[i] = models.PairReport{Pair: j.pair, Result: &result}
			notify(models.ProgressPairCompleted, j.pair, nil)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.Evaluation{}, err
	}

	eval := models.Evaluation{
		Threshold:     threshold,
		Duplicates:    []models.PairReport{},
		NonDuplicates: []models.PairReport{},
		Failed:        []models.PairReport{},
	}
	for i, report := range reports {
		if report.Result == nil {
			eval.Failed = append(eval.Failed, report)
			continue
		}
		predicted := IsDuplicate(*report.Result, threshold)
		if predicted {
			eval.Duplicates = append(eval.Duplicates, report)
		} else {
			eval.NonDuplicates = append(eval.NonDuplicates, report)
		}

		switch labelled := jobs[i].duplicate; {
		case labelled && predicted:
			eval.Confusion.TruePositives++
		case labelled && !predicted:
			eval.Confusion.FalseNegatives++
		case !labelled && predicted:
			eval.Confusion.FalsePositives++
		default:
			eval.Confusion.TrueNegatives++
		}
	}

	logger.Info(ctx, "evaluation finished",
		"count", len(jobs),
		"failed", len(eval.Failed),
		"precision", eval.Confusion.Precision(),
		"recall", eval.Confusion.Recall())

	return eval, nil
}

// IsDuplicate reports whether a score is above the threshold.
func IsDuplicate(result models.ComparisonResult, threshold float64) bool {
	return result.Score > threshold
}
