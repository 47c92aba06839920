// Package search extracts plain-text documents from a page tree and indexes them for
// prefix search.
package search

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/grafana/guidebook/internal/markdown"
	"github.com/grafana/guidebook/internal/pages"
)

// Document is the searchable form of a page.
type Document struct {
	// ID matches the id of the originating page.
	ID int `json:"id"`

	// Title is the page title.
	Title string `json:"title"`

	// Body is the page body flattened to plain text.
	Body string `json:"body"`
}

// ExtractDocuments re-reads the source file of every page of the tree rooted at root,
// strips its frontmatter and flattens its body. Documents are returned in pre-order.
func ExtractDocuments(fsys afero.Fs, directory string, root *pages.TreeNode) ([]Document, error) {
	sources := pages.SourcePaths(root)

	var documents []Document
	var walkErr error
	root.Walk(func(node *pages.TreeNode) bool {
		if walkErr != nil {
			return false
		}
		document, err := extractDocument(fsys, filepath.Join(directory, filepath.FromSlash(sources[node.ID])), node)
		if err != nil {
			walkErr = err
			return false
		}
		documents = append(documents, document)
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return documents, nil
}

func extractDocument(fsys afero.Fs, path string, node *pages.TreeNode) (Document, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read page %s: %w", path, err)
	}

	_, body, err := pages.SplitFrontmatter(content)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}

	return Document{
		ID:    node.ID,
		Title: node.Title,
		Body:  markdown.Flatten(body, markdown.ForFile(path)...),
	}, nil
}
