package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/prdupe/internal/config"
	domainErrors "github.com/thomas-vilte/prdupe/internal/errors"
)

func newTestConfig(t *testing.T) (*config.Config, string) {
	t.Setenv("GITHUB_TOKEN", "test-token")
	home := t.TempDir()
	cfg, err := config.LoadConfig(home)
	require.NoError(t, err)
	return cfg, home
}

func TestContainer_GetDuplicateService(t *testing.T) {
	t.Run("should build the service once", func(t *testing.T) {
		cfg, home := newTestConfig(t)
		container := NewContainer(cfg, home)

		first, err := container.GetDuplicateService(context.Background())
		require.NoError(t, err)
		second, err := container.GetDuplicateService(context.Background())
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.DirExists(t, filepath.Join(home, ".prdupe", "cache"))
	})

	t.Run("should skip the cache when the TTL is zero", func(t *testing.T) {
		cfg, home := newTestConfig(t)
		cfg.CacheTTLHours = 0
		container := NewContainer(cfg, home)

		_, err := container.GetDuplicateService(context.Background())

		require.NoError(t, err)
		assert.NoDirExists(t, filepath.Join(home, ".prdupe", "cache"))
	})

	t.Run("should reject an unusable enterprise URL", func(t *testing.T) {
		cfg, home := newTestConfig(t)
		cfg.GitHubBaseURL = "://bad"
		container := NewContainer(cfg, home)

		_, err := container.GetDuplicateService(context.Background())

		assert.ErrorIs(t, err, domainErrors.ErrInvalidConfig)
	})
}

func TestContainer_CacheDir(t *testing.T) {
	cfg, home := newTestConfig(t)

	dir, err := NewContainer(cfg, home).CacheDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".prdupe", "cache"), dir)
}
