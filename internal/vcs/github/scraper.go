package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/regex"
	"github.com/thomas-vilte/prdupe/internal/vcs"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

var _ vcs.IssueLinkScraper = (*PageScraper)(nil)

const (
	DefaultWebURL = "https://github.com"

	linkedIssuesLabel  = "link issues"
	linkedIssuesPhrase = "may close these issues"

	maxPageBytes = 10 << 20
)

// PageScraper reads the linked issues of a pull request from its rendered
// page. Requests share one limiter so a batch does not hammer the site.
type PageScraper struct {
	httpClient *http.Client
	webURL     string
	limiter    *rate.Limiter
}

// NewPageScraper builds a scraper for webURL (DefaultWebURL when empty)
// allowing perSecond page fetches with a burst of one.
func NewPageScraper(webURL string, perSecond float64, timeout time.Duration) *PageScraper {
	return NewPageScraperWithClient(&http.Client{Timeout: timeout}, webURL, perSecond)
}

func NewPageScraperWithClient(httpClient *http.Client, webURL string, perSecond float64) *PageScraper {
	if webURL == "" {
		webURL = DefaultWebURL
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &PageScraper{
		httpClient: httpClient,
		webURL:     strings.TrimRight(webURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// LinkedIssues returns the issues listed in the page's linked-issues section.
// Issues of the same repository are returned as their number, others as
// owner/repo#number.
func (s *PageScraper) LinkedIssues(ctx context.Context, ref models.PRRef) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/pull/%d", s.webURL, ref.Repo, ref.Number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page %s: status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", url, err)
	}

	ids := ExtractLinkedIssues(doc, ref.Repo)
	logger.Debug(ctx, "linked issues scraped", "count", len(ids))
	return ids, nil
}

// ExtractLinkedIssues walks a parsed pull request page and collects the
// issue links inside its linked-issues sections. repo is the pull request's
// own owner/repo.
func ExtractLinkedIssues(doc *html.Node, repo string) []string {
	seen := make(map[string]bool)
	var ids []string

	for _, section := range linkedIssueSections(doc) {
		walk(section, func(n *html.Node) {
			if n.Type != html.ElementNode || n.Data != "a" {
				return
			}
			m := regex.IssueHref.FindStringSubmatch(attr(n, "href"))
			if m == nil {
				return
			}
			id := m[3]
			if linked := m[1] + "/" + m[2]; !strings.EqualFold(linked, repo) {
				id = linked + "#" + m[3]
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		})
	}
	return ids
}

// linkedIssueSections finds elements labelled "Link issues" and the parents
// of text nodes announcing the issues a merge may close.
func linkedIssueSections(doc *html.Node) []*html.Node {
	var sections []*html.Node
	walk(doc, func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if strings.EqualFold(strings.TrimSpace(attr(n, "aria-label")), linkedIssuesLabel) {
				sections = append(sections, n)
			}
		case html.TextNode:
			if n.Parent != nil && strings.Contains(strings.ToLower(n.Data), linkedIssuesPhrase) {
				section := n.Parent
				if section.Parent != nil {
					section = section.Parent
				}
				sections = append(sections, section)
			}
		}
	})
	return sections
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
