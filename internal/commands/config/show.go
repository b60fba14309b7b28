package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/thomas-vilte/prdupe/internal/config"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/thomas-vilte/prdupe/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			ui.PrintSectionBanner(w, t.GetMessage("config.current", 0, nil))
			ui.PrintKeyValue(w, t.GetMessage("config.path", 0, nil), cfg.PathFile)
			ui.PrintKeyValue(w, t.GetMessage("config.language", 0, nil), cfg.Language)
			ui.PrintKeyValue(w, t.GetMessage("config.threshold", 0, nil), strconv.FormatFloat(cfg.Threshold, 'f', -1, 64))
			ui.PrintKeyValue(w, t.GetMessage("config.title_issue_words", 0, nil), strconv.Itoa(cfg.TitleIssueWords))
			ui.PrintKeyValue(w, t.GetMessage("config.concurrency", 0, nil), strconv.Itoa(cfg.Concurrency))
			ui.PrintKeyValue(w, t.GetMessage("config.request_timeout", 0, nil), cfg.RequestTimeoutDuration().String())
			ui.PrintKeyValue(w, t.GetMessage("config.scrape_rate", 0, nil), strconv.FormatFloat(cfg.ScrapeRatePerSecond, 'f', -1, 64))

			if cfg.CacheTTLHours == 0 {
				ui.PrintKeyValue(w, t.GetMessage("config.cache_ttl", 0, nil), t.GetMessage("config.cache_disabled", 0, nil))
			} else {
				ui.PrintKeyValue(w, t.GetMessage("config.cache_ttl", 0, nil), cfg.CacheTTL().String())
			}

			ui.PrintKeyValue(w, t.GetMessage("config.github_url", 0, nil), cfg.WebURL())

			_, source := config.ResolveToken(cfg)
			ui.PrintKeyValue(w, t.GetMessage("config.token_source", 0, nil),
				t.GetMessage(fmt.Sprintf("config.token_source_%s", source), 0, nil))

			return nil
		},
	}
}
