package cache

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/prdupe/internal/cache"
	"github.com/thomas-vilte/prdupe/internal/config"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/thomas-vilte/prdupe/internal/ui"
	"github.com/urfave/cli/v3"
)

// DirProvider returns the directory holding cached pull request metadata.
type DirProvider func() (string, error)

type CacheCommand struct {
	dir DirProvider
}

func NewCacheCommand(dir DirProvider) *CacheCommand {
	return &CacheCommand{dir: dir}
}

func (c *CacheCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: t.GetMessage("cache.usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "clean",
				Usage: t.GetMessage("cache.clean_usage", 0, nil),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "expired",
						Usage: t.GetMessage("cache.expired_flag", 0, nil),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir, err := c.dir()
					if err != nil {
						return fmt.Errorf("%s: %w", t.GetMessage("cache.error_init", 0, nil), err)
					}

					cacheService, err := cache.NewCache(dir, cfg.CacheTTL())
					if err != nil {
						return fmt.Errorf("%s: %w", t.GetMessage("cache.error_init", 0, nil), err)
					}

					if cmd.Bool("expired") {
						err = cacheService.CleanExpired()
					} else {
						err = cacheService.Clean()
					}
					if err != nil {
						return fmt.Errorf("%s: %w", t.GetMessage("cache.error_clean", 0, nil), err)
					}

					ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("cache.cleaned", 0, nil))
					return nil
				},
			},
		},
	}
}
