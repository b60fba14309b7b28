// Package tokenizer turns free text into sets of normalized words.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/thomas-vilte/prdupe/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer turns text into a set of normalized tokens.
type Tokenizer interface {
	Tokenize(text string) models.StringSet
}

// WordTokenizer splits on anything that is not a letter, digit or underscore,
// lower-cases with the rules of its language and drops stop words.
type WordTokenizer struct {
	lang      language.Tag
	stopWords map[string]struct{}
}

var _ Tokenizer = (*WordTokenizer)(nil)

// NewWordTokenizer returns a tokenizer for lang using the given stop words.
// Stop words are normalized the same way as tokens.
func NewWordTokenizer(lang language.Tag, stopWords []string) *WordTokenizer {
	t := &WordTokenizer{
		lang:      lang,
		stopWords: make(map[string]struct{}, len(stopWords)),
	}
	for _, w := range stopWords {
		t.stopWords[t.normalize(w)] = struct{}{}
	}
	return t
}

// NewEnglishTokenizer returns a WordTokenizer with the English stop-word list.
func NewEnglishTokenizer() *WordTokenizer {
	return NewWordTokenizer(language.English, EnglishStopWords)
}

func (t *WordTokenizer) Tokenize(text string) models.StringSet {
	if strings.TrimSpace(text) == "" {
		return models.NewStringSet()
	}

	words := strings.FieldsFunc(t.normalize(text), isSeparator)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := t.stopWords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}
	return models.NewStringSet(kept...)
}

// normalize builds a fresh Caser per call because a Caser must not be shared
// between goroutines.
func (t *WordTokenizer) normalize(s string) string {
	return cases.Lower(t.lang).String(norm.NFKC.String(s))
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
