package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeadingsLevelsInDocumentOrder(t *testing.T) {
	t.Parallel()

	source := `
# H1 a

Other text

# H1 b

## H2 b 1

### H3 b 1 i

Some text

### H3 b 1 ii

## H2 c 1

Some text
`

	headings := Headings([]byte(source))
	require.Equal(t, []Heading{
		{Level: 1, Title: "H1 a", URL: "#h1-a"},
		{Level: 1, Title: "H1 b", URL: "#h1-b"},
		{Level: 2, Title: "H2 b 1", URL: "#h2-b-1"},
		{Level: 3, Title: "H3 b 1 i", URL: "#h3-b-1-i"},
		{Level: 3, Title: "H3 b 1 ii", URL: "#h3-b-1-ii"},
		{Level: 2, Title: "H2 c 1", URL: "#h2-c-1"},
	}, headings)
}

func TestHeadingsTwoLevels(t *testing.T) {
	t.Parallel()

	headings := Headings([]byte("# H1\n\n## H2\n"))
	require.Len(t, headings, 2)
	require.Equal(t, 1, headings[0].Level)
	require.Equal(t, "H1", headings[0].Title)
	require.Equal(t, 2, headings[1].Level)
	require.Equal(t, "H2", headings[1].Title)
}

func TestHeadingsAnchor(t *testing.T) {
	t.Parallel()

	headings := Headings([]byte("# Content"))
	require.Equal(t, []Heading{{Level: 1, Title: "Content", URL: "#content"}}, headings)
}

func TestHeadingsDuplicateAnchors(t *testing.T) {
	t.Parallel()

	headings := Headings([]byte("# Usage\n\n# Usage\n"))
	require.Len(t, headings, 2)
	require.Equal(t, "#usage", headings[0].URL)
	require.NotEqual(t, headings[0].URL, headings[1].URL)
}

func TestHeadingsFormatting(t *testing.T) {
	t.Parallel()

	source := "# Foo **strong**\n\n# Bar `code`\n\n# Baz *emphasis*\n"

	headings := Headings([]byte(source))
	require.Len(t, headings, 3)
	require.Equal(t, "Foo strong", headings[0].Title)
	require.Equal(t, "Bar code", headings[1].Title)
	require.Equal(t, "Baz emphasis", headings[2].Title)
}

func TestHeadingsInlineElements(t *testing.T) {
	t.Parallel()

	headings := Headings([]byte("# Foo <b>Test</b>\n"))
	require.Len(t, headings, 1)
	require.Equal(t, 1, headings[0].Level)
	require.Equal(t, "Foo Test", headings[0].Title)
}

func TestHeadingsEmpty(t *testing.T) {
	t.Parallel()

	headings := Headings([]byte("Just a paragraph."))
	require.NotNil(t, headings)
	require.Empty(t, headings)

	require.Empty(t, Headings(nil))
}

func TestFlattenPlainText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "hello", Flatten([]byte("hello")))
	require.Empty(t, Flatten([]byte("")))
}

func TestFlattenDropsMarkup(t *testing.T) {
	t.Parallel()

	source := "# Title\n\nSome *emphasis* and a [link](https://example.com) with `code`.\n"

	require.Equal(t, "Title Some emphasis and a link with code .", Flatten([]byte(source)))
}

func TestFlattenJoinsSoftLineBreaks(t *testing.T) {
	t.Parallel()

	require.Equal(t, "line one line two", Flatten([]byte("line one\nline two\n")))
}

func TestFlattenSkipsCodeBlocks(t *testing.T) {
	t.Parallel()

	source := "Before\n\n```js\nconst hidden = true\n```\n\nAfter\n"

	require.Equal(t, "Before After", Flatten([]byte(source)))
}

func TestFlattenLists(t *testing.T) {
	t.Parallel()

	source := "- first\n- second **bold**\n"

	require.Equal(t, "first second bold", Flatten([]byte(source)))
}

func TestFlattenHTMLBlocks(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"<Note>\nRemember to save your work.\n</Note>\n":                "Remember to save your work.",
		"<div>\nInside div\n</div>\n\nAfter":                            "Inside div After",
		"<div>\n  <p>\n    Deeply **nested**\n  </p>\n</div>\n":         "Deeply nested",
		"<Callout type=\"warning\">\n\nMarkdown *inside*\n\n</Callout>": "Markdown inside",
		"<!-- hidden comment -->\n\nVisible":                            "Visible",
		"<script>\nconst x = 1\n</script>\n\nAfter script":              "After script",
		"<section><h2>Title</h2><p>Body</p></section>\n":                "Title Body",
	}

	for source, want := range cases {
		require.Equal(t, want, Flatten([]byte(source)), "source %q", source)
	}
}

func TestFlattenMDXSkipsImportsAndExports(t *testing.T) {
	t.Parallel()

	source := "import Foo from './foo'\nimport { Bar } from './bar'\n\nexport const meta = {\n  draft: true,\n}\n\n# Title\n\nimportant text about exports\n"

	require.Equal(t, "Title important text about exports", Flatten([]byte(source), WithMDX()))
	require.Equal(t, "Title important text about exports", Flatten([]byte(source), ForFile("page.mdx")...))
	require.Equal(t, []Heading{{Level: 1, Title: "Title", URL: "#title"}}, Headings([]byte(source), WithMDX()))

	plain := Flatten([]byte(source), ForFile("page.md")...)
	require.Contains(t, plain, "import Foo from './foo'")
}

func TestFlattenMDXKeepsIndentedAndNestedStatements(t *testing.T) {
	t.Parallel()

	source := "Intro\nimport continues the paragraph\n\n- export in a list\n"

	require.Equal(t, "Intro import continues the paragraph export in a list", Flatten([]byte(source), WithMDX()))
}
