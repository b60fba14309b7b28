package models

import (
	"encoding/json"
	"fmt"
)

// IssueRelation classifies how the issue sets of two pull requests relate.
type IssueRelation int

const (
	// IssueRelationUnknown means at least one side links no issue.
	IssueRelationUnknown IssueRelation = iota
	// IssueRelationHighlySimilar means both sides link exactly the same issues.
	IssueRelationHighlySimilar
	// IssueRelationLowSimilar means the sides share some but not all issues.
	IssueRelationLowSimilar
	// IssueRelationDissimilar means both sides link issues and share none.
	IssueRelationDissimilar
)

func (r IssueRelation) String() string {
	switch r {
	case IssueRelationUnknown:
		return "Unknown"
	case IssueRelationHighlySimilar:
		return "HighlySimilar"
	case IssueRelationLowSimilar:
		return "LowSimilar"
	case IssueRelationDissimilar:
		return "Dissimilar"
	default:
		return fmt.Sprintf("IssueRelation(%d)", int(r))
	}
}

func (r IssueRelation) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// ComparisonResult holds every signal computed for one pair of profiles.
type ComparisonResult struct {
	FilesJaccard     float64       `json:"files_jaccard"`
	FilesIntersect   int           `json:"files_intersect"`
	IssueRelation    IssueRelation `json:"issue_relation"`
	TextCosine       float64       `json:"text_cosine"`
	AddedWordsCosine float64       `json:"added_words_cosine"`
	Score            float64       `json:"score"`
}
