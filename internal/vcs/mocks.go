package vcs

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/prdupe/internal/models"
)

type MockMetadataSource struct {
	mock.Mock
}

func (m *MockMetadataSource) GetPullRequest(ctx context.Context, ref models.PRRef) (models.PRMetadata, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(models.PRMetadata), args.Error(1)
}

type MockDiffFetcher struct {
	mock.Mock
}

func (m *MockDiffFetcher) FetchDiff(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

type MockIssueLinkScraper struct {
	mock.Mock
}

func (m *MockIssueLinkScraper) LinkedIssues(ctx context.Context, ref models.PRRef) ([]string, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
