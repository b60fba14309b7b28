package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/thomas-vilte/prdupe/internal/commands/completion_helper"
	cfg "github.com/thomas-vilte/prdupe/internal/config"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/services"
	"github.com/thomas-vilte/prdupe/internal/ui"
	"github.com/urfave/cli/v3"
)

// PairComparer is the part of the duplicate service this command needs.
type PairComparer interface {
	ComparePair(ctx context.Context, pair models.Pair) (models.ComparisonResult, error)
}

// ServiceProvider builds the comparer on demand, after flags are parsed.
type ServiceProvider func(ctx context.Context) (PairComparer, error)

type CompareCommand struct {
	provider ServiceProvider
}

func NewCompareCommand(provider ServiceProvider) *CompareCommand {
	return &CompareCommand{provider: provider}
}

// jsonReport is the --json output of a single comparison.
type jsonReport struct {
	Pair      models.Pair             `json:"pair"`
	Result    models.ComparisonResult `json:"result"`
	Duplicate bool                    `json:"duplicate"`
	Threshold float64                 `json:"threshold"`
}

func (c *CompareCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Aliases:   []string{"cmp"},
		Usage:     t.GetMessage("compare.usage", 0, nil),
		ArgsUsage: t.GetMessage("compare.args_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: t.GetMessage("flag.json", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()
			w := cmd.Root().Writer
			asJSON := cmd.Bool("json")

			if cmd.Args().Len() != 3 {
				return fmt.Errorf("%s", t.GetMessage("compare.error_args", 0, nil))
			}

			pair, err := services.ParsePairArgs(cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2))
			if err != nil {
				return err
			}

			log.Info("executing compare command",
				"repo", pair.Repo,
				"first", pair.First,
				"second", pair.Second)

			comparer, err := c.provider(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", t.GetMessage("error.service_creation", 0, nil), err)
			}

			var spinner *ui.SmartSpinner
			if !asJSON {
				spinner = ui.NewSmartSpinner(t.GetMessage("compare.building", 0, pair))
				spinner.Start()
			}

			result, err := comparer.ComparePair(ctx, pair)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				log.Error("failed to compare pair",
					"error", err,
					"repo", pair.Repo,
					"duration_ms", time.Since(start).Milliseconds())
				return fmt.Errorf("%s: %w", t.GetMessage("error.compare_failed", 0, nil), err)
			}

			log.Debug("compare finished",
				"score", result.Score,
				"duration_ms", time.Since(start).Milliseconds())

			if asJSON {
				return ui.PrintJSON(w, jsonReport{
					Pair:      pair,
					Result:    result,
					Duplicate: services.IsDuplicate(result, config.Threshold),
					Threshold: config.Threshold,
				})
			}

			ui.PrintComparison(w, t, pair, result)
			return nil
		},
	}
}
