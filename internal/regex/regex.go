package regex

import "regexp"

var (
	// Diff tokenization
	WordToken  = regexp.MustCompile(`\w+`)
	HunkHeader = regexp.MustCompile(`^@@ -\d+(?:,(\d+))? \+\d+(?:,(\d+))? @@`)

	// Repository identifiers
	RepoIdentifier = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

	// GitHub linkage patterns
	IssueHref = regexp.MustCompile(`(?:^|github\.com)/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)/issues/(\d+)(?:[/?#].*)?$`)
	IssueRef  = regexp.MustCompile(`^#?(\d+)$`)
)
