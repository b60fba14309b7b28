package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueHref(t *testing.T) {
	tests := []struct {
		href  string
		match bool
		owner string
		repo  string
		num   string
	}{
		{"/golang/go/issues/123", true, "golang", "go", "123"},
		{"https://github.com/golang/go/issues/7#issuecomment-1", true, "golang", "go", "7"},
		{"/golang/go/pull/123", false, "", "", ""},
		{"/golang/go/issues", false, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			m := IssueHref.FindStringSubmatch(tt.href)
			if !tt.match {
				assert.Nil(t, m)
				return
			}
			if assert.Len(t, m, 4) {
				assert.Equal(t, tt.owner, m[1])
				assert.Equal(t, tt.repo, m[2])
				assert.Equal(t, tt.num, m[3])
			}
		})
	}
}

func TestRepoIdentifier(t *testing.T) {
	assert.True(t, RepoIdentifier.MatchString("golang/go"))
	assert.True(t, RepoIdentifier.MatchString("my-org/my.repo_2"))
	assert.False(t, RepoIdentifier.MatchString("golang"))
	assert.False(t, RepoIdentifier.MatchString("a/b/c"))
}

func TestIssueRef(t *testing.T) {
	assert.Equal(t, []string{"#12", "12"}, IssueRef.FindStringSubmatch("#12"))
	assert.Equal(t, []string{"12", "12"}, IssueRef.FindStringSubmatch("12"))
	assert.Nil(t, IssueRef.FindStringSubmatch("v12"))
}

func TestHunkHeader(t *testing.T) {
	assert.Equal(t, []string{"@@ -10,6 +10,7 @@", "6", "7"}, HunkHeader.FindStringSubmatch("@@ -10,6 +10,7 @@ func load() {"))
	assert.Equal(t, []string{"@@ -1 +1 @@", "", ""}, HunkHeader.FindStringSubmatch("@@ -1 +1 @@"))
	assert.Nil(t, HunkHeader.FindStringSubmatch("@@@ -1,2 -1,2 +1,3 @@@"))
}
