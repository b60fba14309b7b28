package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thomas-vilte/prdupe/internal/config"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/thomas-vilte/prdupe/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config.set_usage", 0, nil),
		ArgsUsage: t.GetMessage("config.set_args_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			if command.Args().Len() < 2 {
				ui.PrintError(w, t.GetMessage("config.set_error_args", 0, nil))
				return errors.New("missing arguments")
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			updated := *cfg
			if err := applySetting(&updated, key, value); err != nil {
				return err
			}

			if err := config.SaveConfig(&updated); err != nil {
				ui.PrintError(w, t.GetMessage("config.error_saving", 0, nil))
				return err
			}
			*cfg = updated

			ui.PrintSuccess(w, t.GetMessage("config.set_success", 0, struct {
				Key   string
				Value string
			}{Key: key, Value: maskSecret(key, value)}))

			return nil
		},
	}
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "lang", "language":
		cfg.Language = value
	case "threshold":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid threshold: %s", value)
		}
		cfg.Threshold = v
	case "title-issue-words", "title_issue_words":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number of title words: %s", value)
		}
		cfg.TitleIssueWords = v
	case "concurrency":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid concurrency: %s", value)
		}
		cfg.Concurrency = v
	case "request-timeout", "request_timeout":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid request timeout: %s", value)
		}
		cfg.RequestTimeout = v
	case "scrape-rate", "scrape_rate_per_second":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid scrape rate: %s", value)
		}
		cfg.ScrapeRatePerSecond = v
	case "cache-ttl", "cache_ttl_hours":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid cache ttl: %s", value)
		}
		cfg.CacheTTLHours = v
	case "github-base-url", "github_base_url":
		cfg.GitHubBaseURL = value
	case "github-token", "github_token":
		cfg.GitHubToken = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func maskSecret(key, value string) string {
	if !strings.Contains(key, "token") {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
