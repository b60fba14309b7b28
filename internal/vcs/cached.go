package vcs

import (
	"context"
	"encoding/json"

	domainErrors "github.com/thomas-vilte/prdupe/internal/errors"
	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/models"
)

// Store is the subset of the file cache the metadata decorator needs.
type Store interface {
	GenerateHash(content string) string
	Get(hash string) (json.RawMessage, bool, error)
	Set(hash string, response interface{}) error
}

// CachedMetadataSource serves pull request metadata from a Store and falls
// back to the wrapped source on a miss. Cache failures never fail a fetch.
// Entries are keyed by host so switching GitHub servers never serves another
// server's metadata.
type CachedMetadataSource struct {
	source MetadataSource
	store  Store
	host   string
}

var _ MetadataSource = (*CachedMetadataSource)(nil)

func NewCachedMetadataSource(source MetadataSource, store Store, host string) *CachedMetadataSource {
	return &CachedMetadataSource{source: source, store: store, host: host}
}

func (c *CachedMetadataSource) GetPullRequest(ctx context.Context, ref models.PRRef) (models.PRMetadata, error) {
	log := logger.FromContext(ctx)
	hash := c.store.GenerateHash("pr-metadata:" + c.host + "/" + ref.String())

	raw, found, err := c.store.Get(hash)
	if err != nil {
		log.Warn("metadata cache read failed",
			"error", domainErrors.ErrCache.WithError(err).WithContext("operation", "read"))
	}
	if found {
		var meta models.PRMetadata
		if err := json.Unmarshal(raw, &meta); err == nil {
			log.Debug("metadata served from cache", "pr_number", ref.Number)
			return meta, nil
		}
		log.Warn("metadata cache entry unreadable, refetching", "pr_number", ref.Number)
	}

	meta, err := c.source.GetPullRequest(ctx, ref)
	if err != nil {
		return models.PRMetadata{}, err
	}

	if err := c.store.Set(hash, meta); err != nil {
		log.Warn("metadata cache write failed",
			"error", domainErrors.ErrCache.WithError(err).WithContext("operation", "write"))
	}
	return meta, nil
}
