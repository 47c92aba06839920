package pages

import (
	"fmt"
	"strings"
)

// Finder provides lookup operations on a guide.
type Finder struct {
	guide *Guide
}

// NewFinder creates a new page finder from a guide.
func NewFinder(guide *Guide) *Finder {
	return &Finder{guide: guide}
}

// Root returns the root page.
func (f *Finder) Root() *TreeNode {
	return f.guide.Root
}

// GetAll returns every page in reading order.
func (f *Finder) GetAll() []*TreeNode {
	return f.guide.Order
}

// GetBySlug finds a page by slug. Leading and trailing slashes are ignored.
func (f *Finder) GetBySlug(slug string) (*TreeNode, error) {
	node, ok := f.guide.BySlug[strings.Trim(slug, "/")]
	if !ok {
		return nil, fmt.Errorf("page not found: %s", slug)
	}
	return node, nil
}

// GetByID finds a page by id.
func (f *Finder) GetByID(id int) (*TreeNode, error) {
	node, ok := f.guide.ByID[id]
	if !ok {
		return nil, fmt.Errorf("page not found: id %d", id)
	}
	return node, nil
}

// SourcePath returns the path of the page's source file relative to the content directory.
func (f *Finder) SourcePath(id int) (string, error) {
	source, ok := f.guide.Sources[id]
	if !ok {
		return "", fmt.Errorf("page not found: id %d", id)
	}
	return source, nil
}

// Breadcrumbs returns the ancestors of the page with the given slug, root first,
// excluding the page itself.
func (f *Finder) Breadcrumbs(slug string) ([]*TreeNode, error) {
	node, err := f.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	var crumbs []*TreeNode
	for node.Parent != nil {
		parent, ok := f.guide.BySlug[*node.Parent]
		if !ok {
			return nil, fmt.Errorf("parent %q of %q not found", *node.Parent, node.Slug)
		}
		crumbs = append([]*TreeNode{parent}, crumbs...)
		node = parent
	}

	return crumbs, nil
}
