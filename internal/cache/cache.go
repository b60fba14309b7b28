package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type CachedResponse struct {
	Hash      string          `json:"hash"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}

// Cache stores JSON responses on disk, one file per hash, for ttl.
type Cache struct {
	cacheDir string
	ttl      time.Duration
}

// NewCache creates cacheDir when needed and drops expired entries.
func NewCache(cacheDir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}

	cache := &Cache{
		cacheDir: cacheDir,
		ttl:      ttl,
	}

	_ = cache.CleanExpired()

	return cache, nil
}

// Dir returns the directory the cache writes to.
func (c *Cache) Dir() string {
	return c.cacheDir
}

// GenerateHash returns the SHA-256 of content in hex
func (c *Cache) GenerateHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// Get returns the stored response for hash. Expired entries are removed and
// reported as missing.
func (c *Cache) Get(hash string) (json.RawMessage, bool, error) {
	filePath := filepath.Join(c.cacheDir, hash+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading cache: %w", err)
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("error decoding cache: %w", err)
	}

	if time.Since(cached.CreatedAt) > c.ttl {
		_ = os.Remove(filePath)
		return nil, false, nil
	}

	return cached.Response, true, nil
}

// Set stores response under hash. The file is written to a temporary name
// and renamed so concurrent readers never see a partial entry.
func (c *Cache) Set(hash string, response interface{}) error {
	responseData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("error encoding response: %w", err)
	}

	cached := CachedResponse{
		Hash:      hash,
		Response:  responseData,
		CreatedAt: time.Now(),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(c.cacheDir, hash+".*.tmp")
	if err != nil {
		return fmt.Errorf("error saving cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error saving cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error saving cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(c.cacheDir, hash+".json")); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error saving cache: %w", err)
	}

	return nil
}

// CleanExpired removes entries older than the TTL
func (c *Cache) CleanExpired() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return fmt.Errorf("error reading cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filePath := filepath.Join(c.cacheDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > c.ttl {
			_ = os.Remove(filePath)
		}
	}

	return nil
}

// Clean removes the whole cache
func (c *Cache) Clean() error {
	return os.RemoveAll(c.cacheDir)
}
