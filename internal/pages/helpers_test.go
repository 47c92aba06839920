package pages

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// newTestFs creates an in-memory filesystem holding files, keyed by absolute path.
func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

func newTestLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func scanGuide(t *testing.T, fsys afero.Fs, opts ...Option) *Guide {
	t.Helper()

	opts = append([]Option{WithLogger(newTestLogger())}, opts...)
	root, err := ScanTree(fsys, "/pages", opts...)
	require.NoError(t, err)
	return NewGuide(root)
}

func slugs(nodes []*TreeNode) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Slug)
	}
	return out
}

func ptr(s string) *string {
	return &s
}
