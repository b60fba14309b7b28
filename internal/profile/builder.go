// Package profile builds the fingerprints of a pull request from the data
// its collaborators return.
package profile

import (
	"context"
	"time"

	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/tokenizer"
	"github.com/thomas-vilte/prdupe/internal/vcs"
	"golang.org/x/sync/errgroup"
)

// Builder assembles profiles. It keeps no per-profile state and may build
// several profiles concurrently.
type Builder struct {
	metadata        vcs.MetadataSource
	diffs           vcs.DiffFetcher
	scraper         vcs.IssueLinkScraper
	tokenizer       tokenizer.Tokenizer
	titleIssueWords int
}

type Option func(*Builder)

// WithTitleIssueWords sets how many leading title words may hold an issue
// number. Values below 1 are ignored.
func WithTitleIssueWords(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.titleIssueWords = n
		}
	}
}

// NewBuilder wires the collaborators. diffs and scraper may be nil, in which
// case the corresponding fingerprint is always empty.
func NewBuilder(
	metadata vcs.MetadataSource,
	diffs vcs.DiffFetcher,
	scraper vcs.IssueLinkScraper,
	tok tokenizer.Tokenizer,
	opts ...Option,
) *Builder {
	b := &Builder{
		metadata:        metadata,
		diffs:           diffs,
		scraper:         scraper,
		tokenizer:       tok,
		titleIssueWords: DefaultTitleIssueWords,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build fetches everything needed for ref and returns the complete profile.
// Only a metadata failure is returned as an error; diff and page failures
// leave the matching fingerprint empty.
func (b *Builder) Build(ctx context.Context, ref models.PRRef) (models.Profile, error) {
	ctx = logger.With(ctx, "repo", ref.Repo, "pr_number", ref.Number)
	log := logger.FromContext(ctx)
	start := time.Now()

	var (
		meta   models.PRMetadata
		diff   string
		linked []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meta, err = b.metadata.GetPullRequest(gctx, ref)
		if err != nil {
			return err
		}
		diff = b.fetchDiff(gctx, meta.DiffURL)
		return nil
	})
	g.Go(func() error {
		linked = b.linkedIssues(gctx, ref)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to build profile",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return models.Profile{}, err
	}

	p := models.Profile{
		Ref:          ref,
		Title:        meta.Title,
		ChangedFiles: models.NewStringSet(meta.Files...),
		TextTokens:   b.tokenizer.Tokenize(meta.Title).Union(b.tokenizer.Tokenize(meta.Body)),
		AddedWords:   AddedWords(diff),
		IssueIDs:     issueIDs(meta.Title, b.titleIssueWords, linked),
	}

	log.Debug("profile built",
		"files", p.ChangedFiles.Len(),
		"text_tokens", p.TextTokens.Len(),
		"added_words", p.AddedWords.Len(),
		"issues", p.IssueIDs.Len(),
		"duration_ms", time.Since(start).Milliseconds())

	return p, nil
}

func (b *Builder) fetchDiff(ctx context.Context, url string) string {
	if b.diffs == nil || url == "" {
		return ""
	}
	diff, err := b.diffs.FetchDiff(ctx, url)
	if err != nil {
		logger.Warn(ctx, "diff unavailable, added words left empty", "error", err)
		return ""
	}
	return diff
}

func (b *Builder) linkedIssues(ctx context.Context, ref models.PRRef) []string {
	if b.scraper == nil {
		return nil
	}
	ids, err := b.scraper.LinkedIssues(ctx, ref)
	if err != nil {
		logger.Warn(ctx, "linked issues unavailable", "error", err)
		return nil
	}
	return ids
}
