package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/prdupe/internal/errors"
	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/regex"
	"github.com/thomas-vilte/prdupe/internal/vcs"
	"golang.org/x/oauth2"
)

var (
	_ vcs.MetadataSource = (*Client)(nil)
	_ vcs.DiffFetcher    = (*Client)(nil)
)

const filesPerPage = 100

// maxDiffBytes caps how much of a diff is read; larger diffs are truncated.
const maxDiffBytes = 20 << 20

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

// Client reads pull request metadata through the GitHub REST API and
// downloads raw diffs with the same authenticated transport.
type Client struct {
	prService  PullRequestsService
	httpClient *http.Client
}

// NewClient returns a client for github.com, or for a GitHub Enterprise
// server when baseURL is set. An empty token gives unauthenticated,
// rate-limited access.
func NewClient(token, baseURL string, timeout time.Duration) (*Client, error) {
	httpClient := newHTTPClient(token, timeout)

	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, domainErrors.ErrInvalidConfig.
				WithError(err).
				WithContext("github_base_url", baseURL)
		}
	}

	return &Client{
		prService:  client.PullRequests,
		httpClient: httpClient,
	}, nil
}

func NewClientWithServices(prService PullRequestsService, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		prService:  prService,
		httpClient: httpClient,
	}
}

func newHTTPClient(token string, timeout time.Duration) *http.Client {
	if token == "" {
		return &http.Client{Timeout: timeout}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = timeout
	return httpClient
}

// ParseRepo splits "owner/repo" into owner and repo
func ParseRepo(fullRepo string) (string, string, error) {
	m := regex.RepoIdentifier.FindStringSubmatch(fullRepo)
	if m == nil {
		return "", "", domainErrors.ErrInvalidRepository.WithContext("repo", fullRepo)
	}
	return m[1], m[2], nil
}

// GetPullRequest fetches the pull request and every page of its file list.
func (c *Client) GetPullRequest(ctx context.Context, ref models.PRRef) (models.PRMetadata, error) {
	log := logger.FromContext(ctx)

	owner, repo, err := ParseRepo(ref.Repo)
	if err != nil {
		return models.PRMetadata{}, err
	}
	if ref.Number <= 0 {
		return models.PRMetadata{}, domainErrors.ErrInvalidPRNumber.
			WithContext("repo", ref.Repo).
			WithContext("pr_number", ref.Number)
	}

	log.Debug("fetching github pull request",
		"owner", owner,
		"repo", repo,
		"pr_number", ref.Number)

	pr, resp, err := c.prService.Get(ctx, owner, repo, ref.Number)
	if err != nil {
		log.Error("failed to fetch github PR",
			"error", err,
			"owner", owner,
			"repo", repo,
			"pr_number", ref.Number)
		return models.PRMetadata{}, classifyError(err, resp, ref, "get PR")
	}

	files, err := c.listFiles(ctx, owner, repo, ref)
	if err != nil {
		return models.PRMetadata{}, err
	}

	meta := models.PRMetadata{
		Repo:    ref.Repo,
		Number:  ref.Number,
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		Files:   files,
		DiffURL: pr.GetDiffURL(),
		HTMLURL: pr.GetHTMLURL(),
	}

	log.Debug("github PR fetched successfully",
		"pr_number", ref.Number,
		"title", meta.Title,
		"count", len(files))

	return meta, nil
}

func (c *Client) listFiles(ctx context.Context, owner, repo string, ref models.PRRef) ([]string, error) {
	var files []string
	opts := &github.ListOptions{PerPage: filesPerPage}
	for {
		page, resp, err := c.prService.ListFiles(ctx, owner, repo, ref.Number, opts)
		if err != nil {
			return nil, classifyError(err, resp, ref, "list files")
		}
		for _, f := range page {
			files = append(files, f.GetFilename())
		}
		if resp == nil || resp.NextPage == 0 {
			return files, nil
		}
		opts.Page = resp.NextPage
	}
}

// FetchDiff downloads the raw diff. Any non-2xx status is an error.
func (c *Client) FetchDiff(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build diff request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.diff, text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch diff %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch diff %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDiffBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read diff %s: %w", url, err)
	}
	return string(body), nil
}

func classifyError(err error, resp *github.Response, ref models.PRRef, operation string) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return withRef(domainErrors.ErrGitHubRateLimit.WithError(err), ref, operation)
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return withRef(domainErrors.ErrGitHubTokenInvalid.WithError(err), ref, operation)
		case http.StatusNotFound:
			return withRef(domainErrors.ErrPullRequestNotFound.WithError(err), ref, operation)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return withRef(domainErrors.ErrGitHubRateLimit.WithError(err), ref, operation).
				WithContext("retry_after", resp.Header.Get("Retry-After"))
		}
	}

	return withRef(domainErrors.ErrFetchPullRequest.WithError(err), ref, operation)
}

func withRef(e *domainErrors.AppError, ref models.PRRef, operation string) *domainErrors.AppError {
	return e.
		WithContext("operation", operation).
		WithContext("repo", ref.Repo).
		WithContext("pr_number", ref.Number)
}
