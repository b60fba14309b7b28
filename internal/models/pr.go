package models

import "fmt"

type (
	// PRRef identifies a pull request within a repository in owner/repo form.
	PRRef struct {
		Repo   string `json:"repo"`
		Number int    `json:"number"`
	}

	// PRMetadata is the raw data the metadata source returns for one PR.
	PRMetadata struct {
		Repo    string   `json:"repo"`
		Number  int      `json:"number"`
		Title   string   `json:"title"`
		Body    string   `json:"body"`
		Files   []string `json:"files"`
		DiffURL string   `json:"diff_url"`
		HTMLURL string   `json:"html_url"`
	}

	// Profile holds the fingerprints of one pull request. A Profile is only
	// handed out fully built and is never modified afterwards.
	Profile struct {
		Ref          PRRef     `json:"ref"`
		Title        string    `json:"title"`
		ChangedFiles StringSet `json:"changed_files"`
		TextTokens   StringSet `json:"text_tokens"`
		AddedWords   StringSet `json:"added_words"`
		IssueIDs     StringSet `json:"issue_ids"`
	}
)

func (r PRRef) String() string {
	return fmt.Sprintf("%s#%d", r.Repo, r.Number)
}

type ProgressEventType string

const (
	ProgressPairStarted   ProgressEventType = "pair_started"
	ProgressPairCompleted ProgressEventType = "pair_completed"
	ProgressPairFailed    ProgressEventType = "pair_failed"
)

type ProgressEvent struct {
	Type    ProgressEventType
	Message string
	Data    map[string]interface{}
}
