package profile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/regex"
)

// DefaultTitleIssueWords is how many leading title words are checked for an
// issue number.
const DefaultTitleIssueWords = 3

// TitleIssueIDs returns the issue numbers among the first n words of title.
// A word counts when it is numeric once an optional leading '#' and at most
// one trailing punctuation character are removed, so "123", "#123" and
// "#123:" all yield "123".
func TitleIssueIDs(title string, n int) []string {
	words := strings.Fields(title)
	if len(words) > n {
		words = words[:n]
	}

	var ids []string
	for _, w := range words {
		if id, ok := issueNumber(w); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func issueNumber(word string) (string, bool) {
	if m := regex.IssueRef.FindStringSubmatch(word); m != nil {
		return m[1], true
	}

	last, size := utf8.DecodeLastRuneInString(word)
	if size == 0 || !unicode.IsPunct(last) {
		return "", false
	}
	if m := regex.IssueRef.FindStringSubmatch(word[:len(word)-size]); m != nil {
		return m[1], true
	}
	return "", false
}

// issueIDs merges title IDs with IDs from the linked-issues section.
func issueIDs(title string, n int, linked []string) models.StringSet {
	ids := TitleIssueIDs(title, n)
	ids = append(ids, linked...)
	return models.NewStringSet(ids...)
}
