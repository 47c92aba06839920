package pages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	content := "---\ntitle: Intro\norder: 3\nhidden: PREVIEW\nauthor:\n  name: Ada\n---\n\n# Body\n"

	fm, body, err := SplitFrontmatter([]byte(content))
	require.NoError(t, err)
	require.Equal(t, "Intro", fm.Title)
	require.NotNil(t, fm.Order)
	require.InDelta(t, 3.0, *fm.Order, 0)
	require.Equal(t, Hidden{Variable: "PREVIEW"}, fm.Hidden)
	require.Equal(t, &Author{Name: "Ada"}, fm.Author)
	require.Contains(t, string(body), "# Body")
	require.NotContains(t, string(body), "title:")
}

func TestSplitFrontmatterWithoutBlock(t *testing.T) {
	t.Parallel()

	fm, body, err := SplitFrontmatter([]byte("hello"))
	require.NoError(t, err)
	require.Empty(t, fm.Title)
	require.Nil(t, fm.Order)
	require.Equal(t, Hidden{}, fm.Hidden)
	require.Equal(t, "hello", string(body))
}

func TestSplitFrontmatterHiddenBoolean(t *testing.T) {
	t.Parallel()

	fm, _, err := SplitFrontmatter([]byte("---\nhidden: true\n---\n"))
	require.NoError(t, err)
	require.Equal(t, Hidden{Always: true}, fm.Hidden)
}

func TestSplitFrontmatterRejectsInvalidHidden(t *testing.T) {
	t.Parallel()

	_, _, err := SplitFrontmatter([]byte("---\nhidden:\n  - a\n---\n"))
	require.Error(t, err)
}

func TestSplitFrontmatterRejectsInvalidOrder(t *testing.T) {
	t.Parallel()

	_, _, err := SplitFrontmatter([]byte("---\norder: first\n---\n"))
	require.Error(t, err)
}
