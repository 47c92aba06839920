package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"github.com/grafana/guidebook/internal/pages"
)

// DefaultContentCacheSize is the number of page bodies kept in memory.
const DefaultContentCacheSize = 128

// ContentStore reads page bodies from the content directory, without frontmatter.
type ContentStore struct {
	fs     afero.Fs
	dir    string
	finder *pages.Finder
	cache  *lru.Cache[int, string]
}

// NewContentStore creates a store reading the sources of finder's pages below dir.
func NewContentStore(fsys afero.Fs, dir string, finder *pages.Finder, size int) (*ContentStore, error) {
	if size <= 0 {
		size = DefaultContentCacheSize
	}

	cache, err := lru.New[int, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create content cache: %w", err)
	}

	return &ContentStore{fs: fsys, dir: dir, finder: finder, cache: cache}, nil
}

// Body returns the markdown body of the page with the given id.
func (c *ContentStore) Body(id int) (string, error) {
	if body, ok := c.cache.Get(id); ok {
		return body, nil
	}

	source, err := c.finder.SourcePath(id)
	if err != nil {
		return "", err
	}

	path := filepath.Join(c.dir, filepath.FromSlash(source))
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read page %s: %w", path, err)
	}

	_, body, err := pages.SplitFrontmatter(content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	text := strings.TrimSpace(string(body))
	c.cache.Add(id, text)
	return text, nil
}
