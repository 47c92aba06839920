package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/grafana/guidebook/internal/pages"
	"github.com/grafana/guidebook/internal/search"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	files := map[string]string{
		"/pages/index.mdx":         "---\ntitle: ${PRODUCT} Handbook\n---\n# Welcome",
		"/pages/intro.mdx":         "---\norder: 1\n---\nIntroduction to everything.",
		"/pages/setup.mdx":         "## Install\n\nInstall steps.",
		"/pages/setup/linux.mdx":   "Install on linux.",
		"/pages/beta.mdx":          "---\nhidden: HIDE_BETA\n---\nBeta.",
		"/config/guidebook.yaml":   "variables:\n  PRODUCT: Acme\n  HIDE_BETA: true\n",
		"/config/broken.yaml":      "log:\n  level: shout\n",
		"/pages/setup/notes.txt":   "ignored",
		"/pages/setup/config.json": `{"order": ["linux"]}`,
	}

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}

	logger, _ := test.NewNullLogger()
	return newApp(fsys, logger)
}

func runCmd(t *testing.T, a *app, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), a, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

var baseArgs = []string{"--config", "/config/guidebook.yaml", "--content-dir", "/pages", "--out-dir", "/out"} //nolint:gochecknoglobals

func withBase(args ...string) []string {
	return append(append([]string(nil), args...), baseArgs...)
}

func TestBuildWritesArtifacts(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	code, stdout, stderr := runCmd(t, a, withBase("build")...)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "Build complete")
	require.Contains(t, stdout, "/out/guide.json")

	data, err := afero.ReadFile(a.fs, "/out/guide.json")
	require.NoError(t, err)
	guide, err := pages.LoadJSON(data)
	require.NoError(t, err)
	require.Equal(t, "Acme Handbook", guide.Root.Title)
	require.Len(t, guide.Order, 4)

	data, err = afero.ReadFile(a.fs, "/out/search.json")
	require.NoError(t, err)
	index, err := search.LoadIndex(data)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	require.Equal(t, 4, index.Len())
}

func TestTreePrintsReadingOrder(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	code, stdout, stderr := runCmd(t, a, withBase("tree", "--headings")...)
	require.Equal(t, 0, code, stderr)

	require.Contains(t, stdout, "Acme Handbook")
	require.Contains(t, stdout, "Welcome")
	require.NotContains(t, stdout, "Beta")

	intro := bytes.Index([]byte(stdout), []byte("/intro"))
	setup := bytes.Index([]byte(stdout), []byte("/setup"))
	linux := bytes.Index([]byte(stdout), []byte("/setup/linux"))
	require.Positive(t, intro)
	require.Less(t, intro, setup)
	require.Less(t, setup, linux)
}

func TestSearchUsesBuiltIndex(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	code, _, stderr := runCmd(t, a, withBase("search", "inst")...)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "run `guidebook build` first")

	code, _, stderr = runCmd(t, a, withBase("build")...)
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := runCmd(t, a, withBase("search", "INST")...)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "/setup")
	require.Contains(t, stdout, "/setup/linux")
	require.NotContains(t, stdout, "/intro")

	code, stdout, _ = runCmd(t, a, withBase("search", "zebra")...)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "No pages match")
}

func TestMCPServesTools(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	var served *server.MCPServer
	a.serveStdio = func(s *server.MCPServer, _ ...server.StdioOption) error {
		served = s
		return nil
	}

	code, _, stderr := runCmd(t, a, withBase("mcp")...)
	require.Equal(t, 0, code, stderr)
	require.NotNil(t, served)

	response := served.HandleMessage(context.Background(),
		[]byte(`{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`))
	data, err := json.Marshal(response)
	require.NoError(t, err)

	for _, name := range []string{"info", "list_pages", "get_page", "search_pages"} {
		require.Contains(t, string(data), `"name":"`+name+`"`)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	code, _, stderr := runCmd(t, a, "tree", "--config", "/config/broken.yaml", "--content-dir", "/pages")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "invalid log level")
}

func TestMissingContentDirectory(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	code, _, stderr := runCmd(t, a, "tree", "--config", "/config/guidebook.yaml", "--content-dir", "/nowhere")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "scan failed")
}
