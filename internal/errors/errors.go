package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeInput         ErrorType = "INPUT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if repo, ok := e.Context["repo"].(string); ok && repo != "" {
			msg += fmt.Sprintf(" - %s", repo)
			if number, ok := e.Context["pr_number"].(int); ok {
				msg += fmt.Sprintf("#%d", number)
			}
		}
		if line, ok := e.Context["line"].(int); ok {
			msg += fmt.Sprintf(" (line %d)", line)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same sentinel, ignoring context and cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
				WithSuggestion("Run any command once to create ~/.prdupe/config.json")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is invalid", nil).
				WithSuggestion("Inspect the current values with: prdupe config show")
)

// Input errors
var (
	ErrInvalidRepository = NewAppError(TypeInput, "invalid repository identifier", nil).
				WithSuggestion("Use the owner/repo form, for example: golang/go")

	ErrInvalidPRNumber = NewAppError(TypeInput, "invalid pull request number", nil).
				WithSuggestion("Pull request numbers are positive integers")

	ErrInvalidPairLine = NewAppError(TypeInput, "malformed pair line", nil).
				WithSuggestion("Each line must read: <owner/repo> <pr-number-1> <pr-number-2>")

	ErrReadPairFile = NewAppError(TypeInput, "failed to read pair file", nil)
)

// GitHub/VCS specific errors
var (
	ErrFetchPullRequest = NewAppError(TypeVCS, "failed to fetch pull request", nil).
				WithSuggestion("Check your network connection and that the pull request exists")

	ErrPullRequestNotFound = NewAppError(TypeVCS, "pull request not found", nil).
				WithSuggestion("Check the repository name and pull request number")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens\nThen export it as GITHUB_TOKEN")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a personal access token for higher limits")
)

var (
	ErrCache = NewAppError(TypeInternal, "cache operation failed", nil).
		WithSuggestion("Clear the cache with: prdupe cache clean")
)
