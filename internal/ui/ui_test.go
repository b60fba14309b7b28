package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/prdupe/internal/errors"
	"github.com/thomas-vilte/prdupe/internal/i18n"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestHandleAppError(t *testing.T) {
	t.Run("should render type, context, cause and suggestion", func(t *testing.T) {
		var out bytes.Buffer
		err := domainErrors.ErrGitHubRateLimit.
			WithError(errors.New("403 API rate limit exceeded")).
			WithContext("repo", "octo/hello").
			WithContext("pr_number", 7)

		HandleAppError(&out, err)

		output := out.String()
		assert.Contains(t, output, "VCS: GitHub API rate limit exceeded")
		assert.Contains(t, output, "repo: octo/hello")
		assert.Contains(t, output, "pr_number: 7")
		assert.Contains(t, output, "Details: 403 API rate limit exceeded")
		assert.Contains(t, output, "💡 Try: ")
	})

	t.Run("should use the translated suggestion prefix", func(t *testing.T) {
		translations, err := i18n.NewTranslations("es", "")
		require.NoError(t, err)
		var out bytes.Buffer

		HandleAppError(&out, domainErrors.ErrGitHubTokenInvalid, translations)

		assert.Contains(t, out.String(), "💡 Probá: ")
	})

	t.Run("should find wrapped app errors", func(t *testing.T) {
		var out bytes.Buffer

		HandleAppError(&out, errors.Join(errors.New("comparison failed"), domainErrors.ErrPullRequestNotFound))

		assert.Contains(t, out.String(), "pull request not found")
	})

	t.Run("should print plain errors", func(t *testing.T) {
		var out bytes.Buffer

		HandleAppError(&out, errors.New("boom"))

		assert.Contains(t, out.String(), "boom")
	})

	t.Run("should ignore nil", func(t *testing.T) {
		var out bytes.Buffer

		HandleAppError(&out, nil)

		assert.Empty(t, out.String())
	})
}

func TestPrintKeyValue(t *testing.T) {
	var out bytes.Buffer

	PrintKeyValue(&out, "Score", "0.5000")

	assert.Equal(t, "   Score: 0.5000\n", out.String())
}
