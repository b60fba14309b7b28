package evaluate

import (
	"context"
	"errors"
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

// Evaluator is the part of the duplicate service this command needs.
type Evaluator interface {
	Evaluate(ctx context.Context, duplicates, nonDuplicates []models.Pair, threshold float64, progress func(models.ProgressEvent)) (models.Evaluation, error)
}

// ServiceProvider builds the evaluator on demand, after flags are parsed.
type ServiceProvider func(ctx context.Context) (Evaluator, error)

type EvaluateCommand struct {
	provider ServiceProvider
}

func NewEvaluateCommand(provider ServiceProvider) *EvaluateCommand {
	return &EvaluateCommand{provider: provider}
}

func (c *EvaluateCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "evaluate",
		Aliases: []string{"eval"},
		Usage:   t.GetMessage("evaluate.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "duplicates",
				Aliases: []string{"d"},
				Usage:   t.GetMessage("flag.duplicates", 0, nil),
			},
			&cli.StringFlag{
				Name:    "non-duplicates",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("flag.non_duplicates", 0, nil),
			},
			&cli.FloatFlag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("flag.threshold", 0, nil),
				Value:   config.Threshold,
			},
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

			dupPath := cmd.String("duplicates")
			nonDupPath := cmd.String("non-duplicates")
			if dupPath == "" && nonDupPath == "" {
				return errors.New(t.GetMessage("evaluate.error_no_files", 0, nil))
			}

			threshold := cmd.Float("threshold")
			if threshold < 0 || threshold > 1 {
				return errors.New(t.GetMessage("evaluate.error_threshold", 0, map[string]interface{}{"Threshold": threshold}))
			}

			duplicates, err := readPairs(dupPath)
			if err != nil {
				return err
			}
			nonDuplicates, err := readPairs(nonDupPath)
			if err != nil {
				return err
			}

			log.Info("executing evaluate command",
				"duplicates", len(duplicates),
				"non_duplicates", len(nonDuplicates),
				"threshold", threshold)

			evaluator, err := c.provider(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", t.GetMessage("error.service_creation", 0, nil), err)
			}

			total := len(duplicates) + len(nonDuplicates)
			var spinner *ui.SmartSpinner
			if !asJSON {
				spinner = ui.NewSmartSpinner(t.GetMessage("evaluate.progress", 0, map[string]interface{}{"Done": 0, "Total": total}))
				spinner.Start()
			}

			eval, err := evaluator.Evaluate(ctx, duplicates, nonDuplicates, threshold, func(event models.ProgressEvent) {
				if spinner == nil {
					return
				}
				switch event.Type {
				case models.ProgressPairCompleted:
					spinner.UpdateMessage(t.GetMessage("evaluate.progress", 0, map[string]interface{}{
						"Done":  event.Data["done"],
						"Total": total,
					}))
				case models.ProgressPairFailed:
					spinner.UpdateMessage(t.GetMessage("evaluate.progress", 0, map[string]interface{}{
						"Done":  event.Data["done"],
						"Total": total,
					}))
					spinner.Log(ui.Warning.Sprint(t.GetMessage("evaluate.pair_failed", 0, map[string]interface{}{
						"Pair": event.Message,
					})))
				}
			})
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				log.Error("evaluation failed",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				return fmt.Errorf("%s: %w", t.GetMessage("error.evaluate_failed", 0, nil), err)
			}

			log.Info("evaluate command finished",
				"failed", len(eval.Failed),
				"duration_ms", time.Since(start).Milliseconds())

			if asJSON {
				return ui.PrintJSON(w, eval)
			}

			ui.PrintEvaluation(w, t, eval)
			return nil
		},
	}
}

func readPairs(path string) ([]models.Pair, error) {
	if path == "" {
		return nil, nil
	}
	return services.ReadPairFile(path)
}
