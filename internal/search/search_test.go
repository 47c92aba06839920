package search

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/grafana/guidebook/internal/pages"
)

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

func extract(t *testing.T, fsys afero.Fs, opts ...pages.Option) []Document {
	t.Helper()

	logger, _ := test.NewNullLogger()
	opts = append([]pages.Option{pages.WithLogger(logger)}, opts...)

	root, err := pages.ScanTree(fsys, "/pages", opts...)
	require.NoError(t, err)

	documents, err := ExtractDocuments(fsys, "/pages", root)
	require.NoError(t, err)
	return documents
}

func sampleFs(t *testing.T) afero.Fs {
	t.Helper()

	return newTestFs(t, map[string]string{
		"/pages/index.mdx": "hello",
		"/pages/a.mdx":     "foo",
		"/pages/a/1.mdx":   "foo",
	})
}

func TestExtractDocuments(t *testing.T) {
	t.Parallel()

	documents := extract(t, sampleFs(t))
	require.Equal(t, []Document{
		{ID: 0, Title: "Index", Body: "hello"},
		{ID: 1, Title: "A", Body: "foo"},
		{ID: 2, Title: "1", Body: "foo"},
	}, documents)
}

func TestExtractDocumentsStripsFrontmatterAndMarkup(t *testing.T) {
	t.Parallel()

	fsys := newTestFs(t, map[string]string{
		"/pages/index.mdx":            "---\ntitle: Home\n---\n\n# Welcome\n\nSome **bold** text.",
		"/pages/guides/index.mdx":     "---\ntitle: Guides\n---\nAll the [guides](/guides).",
		"/pages/guides/setup.md":      "```sh\nmake\n```\n\nRun it.",
		"/pages/guides/config.json":   `{"order": ["setup"]}`,
		"/pages/guides/advanced.mdx":  "---\nhidden: true\n---\nsecret",
		"/pages/reference.mdx":        "Reference body",
		"/pages/reference/api.mdx":    "API body",
		"/pages/reference/api/v1.mdx": "Version one",
	})

	documents := extract(t, fsys)
	require.Equal(t, []Document{
		{ID: 0, Title: "Home", Body: "Welcome Some bold text."},
		{ID: 1, Title: "Guides", Body: "All the guides ."},
		{ID: 2, Title: "Setup", Body: "Run it."},
		{ID: 3, Title: "Reference", Body: "Reference body"},
		{ID: 4, Title: "Api", Body: "API body"},
		{ID: 5, Title: "V1", Body: "Version one"},
	}, documents)
}

func TestExtractDocumentsMDXPages(t *testing.T) {
	t.Parallel()

	fsys := newTestFs(t, map[string]string{
		"/pages/index.mdx": "---\ntitle: Home\n---\nimport { Note } from '../components/note'\n\n<Note>\nRead the install guide first.\n</Note>\n\nPlain body.",
		"/pages/notes.md":  "import statements stay in markdown",
	})

	documents := extract(t, fsys)
	require.Equal(t, []Document{
		{ID: 0, Title: "Home", Body: "Read the install guide first. Plain body."},
		{ID: 1, Title: "Notes", Body: "import statements stay in markdown"},
	}, documents)
}

func TestExtractDocumentsEmptyTree(t *testing.T) {
	t.Parallel()

	documents, err := ExtractDocuments(afero.NewMemMapFs(), "/pages", nil)
	require.NoError(t, err)
	require.Empty(t, documents)
}

func TestExtractDocumentsMissingFile(t *testing.T) {
	t.Parallel()

	fsys := sampleFs(t)

	logger, _ := test.NewNullLogger()
	root, err := pages.ScanTree(fsys, "/pages", pages.WithLogger(logger))
	require.NoError(t, err)

	require.NoError(t, fsys.Remove("/pages/a/1.mdx"))

	_, err = ExtractDocuments(fsys, "/pages", root)
	require.ErrorContains(t, err, "1.mdx")
}

func buildSampleIndex(t *testing.T, opts Options) *Index {
	t.Helper()

	idx, err := BuildIndex(extract(t, sampleFs(t)), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestSearchExactAndPrefix(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{})
	require.Equal(t, 3, idx.Len())

	ids, err := idx.Search("hello")
	require.NoError(t, err)
	require.Equal(t, []int{0}, ids)

	ids, err = idx.Search("fo")
	require.NoError(t, err)
	require.ElementsMatch(t, []int{1, 2}, ids)
}

func TestSearchNormalizesCase(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{})

	ids, err := idx.Search("HeLLo")
	require.NoError(t, err)
	require.Equal(t, []int{0}, ids)
}

func TestSearchIgnoresTitlesByDefault(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{})

	ids, err := idx.Search("ind")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestSearchMatchesTitles(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex([]Document{
		{ID: 0, Title: "Getting started", Body: "welcome"},
		{ID: 1, Title: "Reference", Body: "started elsewhere"},
		{ID: 2, Title: "Other", Body: "nothing here"},
	}, Options{IncludeTitles: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	ids, err := idx.Search("gett")
	require.NoError(t, err)
	require.Equal(t, []int{0}, ids)

	ids, err = idx.Search("start")
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1}, ids)
}

func TestSearchKeepsShortAndCommonWords(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex([]Document{
		{ID: 0, Title: "A", Body: "another animation"},
		{ID: 1, Title: "B", Body: "the theme is where it was"},
	}, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	cases := map[string][]int{
		"a":     {0},
		"an":    {0},
		"the":   {1},
		"th":    {1},
		"was":   {1},
		"wh":    {1},
		"it":    {1},
		"is":    {1},
		"IS IT": {1},
		"e":     {},
	}
	for q, want := range cases {
		ids, err := idx.Search(q)
		require.NoError(t, err)
		require.ElementsMatch(t, want, ids, "query %q", q)
	}
}

func TestNewIndexRejectsUnknownAnalyzer(t *testing.T) {
	t.Parallel()

	_, err := NewIndex(Options{Analyzer: "no_such_analyzer"})
	require.ErrorContains(t, err, "unknown search analyzer")
}

func TestSearchWithStandardAnalyzer(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex([]Document{{ID: 0, Body: "Configuring servers"}}, Options{Analyzer: "standard"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	ids, err := idx.Search("CONF")
	require.NoError(t, err)
	require.Equal(t, []int{0}, ids)
}

func TestSearchRequiresEveryTerm(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex([]Document{
		{ID: 0, Title: "Alpha", Body: "red green"},
		{ID: 1, Title: "Beta", Body: "red blue"},
	}, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	ids, err := idx.Search("red gre")
	require.NoError(t, err)
	require.Equal(t, []int{0}, ids)

	ids, err = idx.Search("red")
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1}, ids)
}

func TestSearchNoMatch(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{})

	for _, q := range []string{"zzz", "", "   "} {
		ids, err := idx.Search(q)
		require.NoError(t, err)
		require.Empty(t, ids, "query %q", q)
	}
}

func TestSearchMaxResults(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{MaxResults: 1})

	ids, err := idx.Search("fo")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	require.Contains(t, []int{1, 2}, ids[0])
}

func TestAddReplacesDocument(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{})

	require.NoError(t, idx.Add(Document{ID: 1, Title: "A", Body: "bar"}))
	require.Equal(t, 3, idx.Len())

	ids, err := idx.Search("fo")
	require.NoError(t, err)
	require.Equal(t, []int{2}, ids)

	document, ok := idx.Document(1)
	require.True(t, ok)
	require.Equal(t, "bar", document.Body)
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{})

	data, err := ExportIndex(idx)
	require.NoError(t, err)

	loaded, err := LoadIndex(data)
	require.NoError(t, err)
	t.Cleanup(func() { _ = loaded.Close() })

	require.Equal(t, idx.Export(), loaded.Export())

	for _, q := range []string{"hello", "fo", "foo", "index", "zzz", "h"} {
		want, err := idx.Search(q)
		require.NoError(t, err)

		got, err := loaded.Search(q)
		require.NoError(t, err)

		require.ElementsMatch(t, want, got, "query %q", q)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	idx := buildSampleIndex(t, Options{})
	fsys := afero.NewMemMapFs()

	require.NoError(t, idx.WriteJSON(fsys, "/out/search.json"))

	data, err := afero.ReadFile(fsys, "/out/search.json")
	require.NoError(t, err)

	loaded, err := LoadIndex(data)
	require.NoError(t, err)
	t.Cleanup(func() { _ = loaded.Close() })
	require.Equal(t, 3, loaded.Len())
}

func TestLoadIndexRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	_, err := LoadIndex([]byte(`{"version": 99, "documents": []}`))
	require.ErrorContains(t, err, "unsupported search snapshot version")

	_, err = LoadIndex([]byte(`not json`))
	require.Error(t, err)
}
