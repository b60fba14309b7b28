package config

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/thomas-vilte/prdupe/internal/config"
	"github.com/thomas-vilte/prdupe/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newEditCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "edit",
		Usage:  t.GetMessage("config.edit_usage", 0, nil),
		Action: editConfigAction(cfg, t),
	}
}

func editConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		editor, err := findEditor()
		if err != nil {
			return fmt.Errorf("%s", t.GetMessage("config.error_no_editor", 0, nil))
		}

		cmd := exec.CommandContext(ctx, editor, cfg.PathFile)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", t.GetMessage("config.error_opening_editor", 0, nil), err)
		}

		if _, err := config.LoadConfig(cfg.PathFile); err != nil {
			return fmt.Errorf("%s: %w", t.GetMessage("config.error_invalid_after_edit", 0, nil), err)
		}

		return nil
	}
}

// findEditor prefers $EDITOR, then nano, then vim.
func findEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	for _, candidate := range []string{"nano", "vim", "vi"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}
