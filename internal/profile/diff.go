package profile

import (
	"strconv"
	"strings"

	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/regex"
)

const minWordLength = 2

// noiseKeywords are language keywords and literals common to most diffs.
var noiseKeywords = map[string]struct{}{
	"if": {}, "else": {}, "for": {}, "while": {}, "do": {}, "return": {},
	"func": {}, "function": {}, "def": {}, "class": {}, "struct": {},
	"import": {}, "from": {}, "package": {}, "var": {}, "let": {}, "const": {},
	"true": {}, "false": {}, "nil": {}, "null": {}, "none": {}, "self": {},
	"this": {}, "new": {}, "in": {}, "is": {}, "not": {}, "and": {}, "or": {},
	"int": {}, "string": {}, "bool": {}, "void": {}, "public": {}, "private": {},
	"static": {}, "try": {}, "catch": {}, "except": {}, "pass": {}, "break": {},
	"continue": {}, "case": {}, "switch": {}, "default": {}, "type": {},
}

// AddedWords returns the words introduced by a unified diff: tokens found on
// added lines minus tokens found on removed lines. Inside a hunk every line is
// classified by its first character, using the @@ line counts to know where
// the hunk ends. Outside hunks the +++ and --- file headers are skipped.
// Short tokens and noise keywords are dropped.
func AddedWords(diff string) models.StringSet {
	var added, removed []string
	var oldLeft, newLeft int

	for line := range strings.Lines(diff) {
		line = strings.TrimRight(line, "\r\n")

		if oldLeft > 0 || newLeft > 0 {
			switch {
			case strings.HasPrefix(line, "+"):
				added = append(added, diffWords(line[1:])...)
				newLeft--
			case strings.HasPrefix(line, "-"):
				removed = append(removed, diffWords(line[1:])...)
				oldLeft--
			case strings.HasPrefix(line, `\`):
				// "\ No newline at end of file"
			default:
				oldLeft--
				newLeft--
			}
			continue
		}

		if m := regex.HunkHeader.FindStringSubmatch(line); m != nil {
			oldLeft, newLeft = hunkLength(m[1]), hunkLength(m[2])
			continue
		}

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "+"):
			added = append(added, diffWords(line[1:])...)
		case strings.HasPrefix(line, "-"):
			removed = append(removed, diffWords(line[1:])...)
		}
	}

	return models.NewStringSet(added...).Difference(models.NewStringSet(removed...))
}

// hunkLength reads a count from a hunk header; an omitted count means one line.
func hunkLength(count string) int {
	if count == "" {
		return 1
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return 0
	}
	return n
}

func diffWords(line string) []string {
	var words []string
	for _, w := range regex.WordToken.FindAllString(line, -1) {
		w = strings.ToLower(w)
		if len([]rune(w)) < minWordLength {
			continue
		}
		if _, noise := noiseKeywords[w]; noise {
			continue
		}
		words = append(words, w)
	}
	return words
}
