package pages

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Guide is a linked page tree together with runtime lookup indexes.
type Guide struct {
	// Root is the root page; it is the only part that is serialized.
	Root *TreeNode

	// BySlug is a runtime index from slug to page (not serialized).
	BySlug map[string]*TreeNode

	// ByID is a runtime index from page id to page (not serialized).
	ByID map[int]*TreeNode

	// Order lists every page in reading (pre-order) order (not serialized).
	Order []*TreeNode

	// Sources maps page ids to source paths relative to the content directory (not serialized).
	Sources map[int]string
}

// NewGuide wraps a linked tree and builds its lookup indexes.
func NewGuide(root *TreeNode) *Guide {
	guide := &Guide{Root: root}
	guide.buildRuntimeIndexes()
	return guide
}

// buildRuntimeIndexes creates lookup maps for fast retrieval.
func (g *Guide) buildRuntimeIndexes() {
	g.BySlug = make(map[string]*TreeNode)
	g.ByID = make(map[int]*TreeNode)
	g.Order = nil

	g.Root.Walk(func(node *TreeNode) bool {
		g.BySlug[node.Slug] = node
		g.ByID[node.ID] = node
		g.Order = append(g.Order, node)
		return true
	})

	g.Sources = SourcePaths(g.Root)
}

// WriteJSON serializes the guide to a JSON file.
func (g *Guide) WriteJSON(fsys afero.Fs, outputPath string) error {
	data, err := json.MarshalIndent(g.Root, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal guide: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(outputPath), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := afero.WriteFile(fsys, outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write guide file: %w", err)
	}

	return nil
}

// LoadJSON deserializes a guide from JSON data and rebuilds runtime indexes.
func LoadJSON(data []byte) (*Guide, error) {
	var root TreeNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guide: %w", err)
	}

	return NewGuide(&root), nil
}
