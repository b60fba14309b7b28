package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddedWords(t *testing.T) {
	t.Run("removed words cancel added words", func(t *testing.T) {
		diff := "+foo bar\n-foo\n"

		assert.Equal(t, []string{"bar"}, AddedWords(diff).Items())
	})

	t.Run("ignores file headers and context lines", func(t *testing.T) {
		diff := `diff --git a/cache.go b/cache.go
index 1111111..2222222 100644
--- a/cache.go
+++ b/cache.go
@@ -10,6 +10,7 @@ func load() {
 	unchanged := context
-	value := legacyLookup(key)
+	value := cacheLookup(key)
+	evictExpired()
`
		assert.Equal(t, []string{"cachelookup", "evictexpired"}, AddedWords(diff).Items())
	})

	t.Run("drops short tokens and noise keywords", func(t *testing.T) {
		diff := "+if x == nil { return errNotFound }\n+for i := range items {}\n"

		assert.Equal(t, []string{"errnotfound", "items", "range"}, AddedWords(diff).Items())
	})

	t.Run("pure deletion adds nothing", func(t *testing.T) {
		assert.True(t, AddedWords("-removed code\n-more removed\n").IsEmpty())
	})

	t.Run("empty diff", func(t *testing.T) {
		assert.True(t, AddedWords("").IsEmpty())
	})

	t.Run("words are case folded before cancelling", func(t *testing.T) {
		diff := "+Timeout retry\n-timeout\n"

		assert.Equal(t, []string{"retry"}, AddedWords(diff).Items())
	})

	t.Run("header-like lines inside a hunk are content", func(t *testing.T) {
		diff := "--- a/x.c\n+++ b/x.c\n@@ -1,2 +1,2 @@\n+++counter;\n--- legacy comment\n"

		assert.Equal(t, []string{"counter"}, AddedWords(diff).Items())
	})

	t.Run("file headers after a finished hunk are skipped", func(t *testing.T) {
		diff := `diff --git a/a.sql b/a.sql
--- a/a.sql
+++ b/a.sql
@@ -1,2 +1,2 @@
 SELECT id
--- stale note
+++ fresh banner
diff --git a/b.sql b/b.sql
--- a/obsolete.sql
+++ b/replacement.sql
@@ -1 +1 @@
-oldname
+newname
\ No newline at end of file
`
		assert.Equal(t, []string{"banner", "fresh", "newname"}, AddedWords(diff).Items())
	})

	t.Run("hunk header without counts covers one line each side", func(t *testing.T) {
		diff := "@@ -3 +3 @@\n-----divider\n+++++banner\n+trailing\n"

		assert.Equal(t, []string{"banner", "trailing"}, AddedWords(diff).Items())
	})

	t.Run("very long lines do not stop the remaining diff", func(t *testing.T) {
		diff := "+" + strings.Repeat("a", 2<<20) + "\n+uniqueword\n"

		words := AddedWords(diff)

		assert.True(t, words.Has("uniqueword"))
		assert.Equal(t, 2, words.Len())
	})
}
