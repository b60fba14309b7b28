package main

import (
	"context"
	"fmt"
	"os"

	cachecmd "github.com/thomas-vilte/prdupe/internal/commands/cache"
	"github.com/thomas-vilte/prdupe/internal/commands/compare"
	configcmd "github.com/thomas-vilte/prdupe/internal/commands/config"
	"github.com/thomas-vilte/prdupe/internal/commands/evaluate"
	"github.com/thomas-vilte/prdupe/internal/commands/registry"
	cfg "github.com/thomas-vilte/prdupe/internal/config"
	"github.com/thomas-vilte/prdupe/internal/di"
	domainErrors "github.com/thomas-vilte/prdupe/internal/errors"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/thomas-vilte/prdupe/internal/logger"
	"github.com/thomas-vilte/prdupe/internal/ui"
	"github.com/thomas-vilte/prdupe/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.StopActiveSpinner()
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	homeDir, err := cfg.HomeDir()
	if err != nil {
		return nil, nil, domainErrors.ErrConfigMissing.WithError(err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, domainErrors.ErrInvalidConfig.
			WithError(err).
			WithContext("home", homeDir)
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	container := di.NewContainer(cfgApp, homeDir)

	compareProvider := func(ctx context.Context) (compare.PairComparer, error) {
		service, err := container.GetDuplicateService(ctx)
		if err != nil {
			return nil, err
		}
		return service, nil
	}

	evaluateProvider := func(ctx context.Context) (evaluate.Evaluator, error) {
		service, err := container.GetDuplicateService(ctx)
		if err != nil {
			return nil, err
		}
		return service, nil
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	factories := map[string]registry.CommandFactory{
		"compare":  compare.NewCompareCommand(compareProvider),
		"evaluate": evaluate.NewEvaluateCommand(evaluateProvider),
		"cache":    cachecmd.NewCacheCommand(container.CacheDir),
		"config":   configcmd.NewConfigCommandFactory(),
	}
	for name, factory := range factories {
		if err := registerCommand.Register(name, factory); err != nil {
			return nil, nil, err
		}
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:        "prdupe",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag.debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag.verbose", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(os.Stderr, cmd.Bool("debug"), cmd.Bool("verbose"))
			return logger.With(ctx, "version", version.FullVersion()), nil
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}
