package pages

import (
	"fmt"
)

// PageDTO is a lean representation of a page and its nested children, optimized for
// agent consumption.
type PageDTO struct {
	ID         int        `json:"id"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	ChildCount int        `json:"child_count"`
	HasMore    bool       `json:"has_more,omitempty"`
	Children   []*PageDTO `json:"children,omitempty"`
}

// BuildOutline returns the children of the page with rootSlug as a depth-limited tree.
// An empty rootSlug starts at the top-level pages. Depth counts how many levels are
// returned.
func BuildOutline(finder *Finder, rootSlug string, depth int) ([]*PageDTO, error) {
	if depth < 1 {
		return nil, fmt.Errorf("depth must be at least 1")
	}

	root, err := finder.GetBySlug(rootSlug)
	if err != nil {
		return nil, fmt.Errorf("root slug not found: %s", rootSlug)
	}

	dtos := make([]*PageDTO, 0, len(root.Children))
	for _, child := range root.Children {
		dtos = append(dtos, buildPageDTO(child, depth, 1))
	}

	return dtos, nil
}

func buildPageDTO(node *TreeNode, maxDepth, currentDepth int) *PageDTO {
	dto := &PageDTO{
		ID:         node.ID,
		Slug:       node.Slug,
		Title:      node.Title,
		Subtitle:   node.Subtitle,
		ChildCount: len(node.Children),
	}

	if len(node.Children) == 0 {
		return dto
	}

	if currentDepth >= maxDepth {
		dto.HasMore = true
		return dto
	}

	dto.Children = make([]*PageDTO, 0, len(node.Children))
	for _, child := range node.Children {
		dto.Children = append(dto.Children, buildPageDTO(child, maxDepth, currentDepth+1))
	}

	return dto
}
