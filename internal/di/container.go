package di

import (
	"context"
	"sync"

	"github.com/thomas-vilte/prdupe/internal/cache"
	"github.com/thomas-vilte/prdupe/internal/config"
	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/profile"
	"github.com/thomas-vilte/prdupe/internal/services"
	"github.com/thomas-vilte/prdupe/internal/similarity"
	"github.com/thomas-vilte/prdupe/internal/tokenizer"
	"github.com/thomas-vilte/prdupe/internal/vcs"
	"github.com/thomas-vilte/prdupe/internal/vcs/github"
)

// Container builds the application services from the config. Services are
// created on first use so commands that never touch GitHub need no token.
type Container struct {
	config  *config.Config
	homeDir string

	mu               sync.Mutex
	duplicateService *services.DuplicateService
}

func NewContainer(cfg *config.Config, homeDir string) *Container {
	return &Container{
		config:  cfg,
		homeDir: homeDir,
	}
}

// CacheDir returns where pull request metadata is cached.
func (c *Container) CacheDir() (string, error) {
	return config.CacheDir(c.homeDir), nil
}

// GetDuplicateService returns the duplicate service, building it once.
func (c *Container) GetDuplicateService(ctx context.Context) (*services.DuplicateService, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.duplicateService != nil {
		return c.duplicateService, nil
	}

	log := logger.FromContext(ctx)

	token, source := config.ResolveToken(c.config)
	log.Debug("github token resolved", "source", source)
	if token == "" {
		log.Warn("no GitHub token found, requests are unauthenticated and heavily rate limited")
	}

	client, err := github.NewClient(token, c.config.GitHubBaseURL, c.config.RequestTimeoutDuration())
	if err != nil {
		return nil, err
	}

	var metadata vcs.MetadataSource = client
	if c.config.CacheTTLHours > 0 {
		store, err := cache.NewCache(config.CacheDir(c.homeDir), c.config.CacheTTL())
		if err != nil {
			log.Warn("metadata cache disabled", "error", err)
		} else {
			metadata = vcs.NewCachedMetadataSource(client, store, c.config.WebURL())
		}
	}

	scraper := github.NewPageScraper(c.config.WebURL(), c.config.ScrapeRatePerSecond, c.config.RequestTimeoutDuration())

	builder := profile.NewBuilder(
		metadata,
		client,
		scraper,
		tokenizer.NewEnglishTokenizer(),
		profile.WithTitleIssueWords(c.config.TitleIssueWords),
	)

	c.duplicateService = services.NewDuplicateService(
		builder,
		similarity.NewComparator(),
		services.WithConcurrency(c.config.Concurrency),
	)

	log.Debug("duplicate service created",
		"concurrency", c.config.Concurrency,
		"cache_ttl_hours", c.config.CacheTTLHours)

	return c.duplicateService, nil
}
