package vcs

import (
	"context"

	"github.com/thomas-vilte/prdupe/internal/models"
)

// MetadataSource returns the base data of a pull request. Any failure is
// fatal for the profile of that pull request.
type MetadataSource interface {
	// GetPullRequest returns title, body, changed file paths and diff URL.
	GetPullRequest(ctx context.Context, ref models.PRRef) (models.PRMetadata, error)
}

// DiffFetcher downloads the raw unified diff behind a diff URL.
type DiffFetcher interface {
	FetchDiff(ctx context.Context, url string) (string, error)
}

// IssueLinkScraper reads the issues a pull request is linked to from its
// rendered page. A page without a linked-issues section yields no IDs and
// no error.
type IssueLinkScraper interface {
	LinkedIssues(ctx context.Context, ref models.PRRef) ([]string, error)
}
