// Package pages scans a content directory into an ordered page tree and links the pages
// into a single previous/next reading order.
package pages

import (
	"path"
	"strings"

	"github.com/grafana/guidebook/internal/markdown"
)

// none marks an absent arena reference.
const none = -1

// Author credits the writer of a page.
type Author struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url,omitempty"`
}

// Page is a visible page as produced by a scan. Pages live in a Tree arena and reference
// each other by arena index.
type Page struct {
	// ID is the page's pre-order position; it equals the page's index in Tree.Pages.
	ID int

	// Parent is the arena index of the containing page, or -1 for the root.
	Parent int

	// Children are the arena indexes of the child pages in scan order.
	Children []int

	// File is the source file name relative to the containing directory
	// (e.g. "hooks.mdx", or "hooks/index.mdx" for a directory-page).
	File string

	// Source is the source file path relative to the scan root, using forward slashes.
	Source string

	// Slug is the "/"-joined slugified ancestor path; the root slug is empty.
	Slug string

	Title    string
	Subtitle string
	Author   *Author

	// Headings is the page's table of contents.
	Headings []markdown.Heading
}

// Tree is the result of a scan: every visible page in pre-order. The root is Pages[0].
type Tree struct {
	Pages []Page
}

// Len returns the number of visible pages.
func (t *Tree) Len() int {
	return len(t.Pages)
}

// Links holds the navigation neighbours of a page as arena indexes (-1 when absent).
type Links struct {
	Previous int
	Next     int
}

// TreeNode is the nested, serializable form of a linked page tree.
type TreeNode struct {
	ID       int                `json:"id"`
	File     string             `json:"file"`
	Slug     string             `json:"slug"`
	Parent   *string            `json:"parent,omitempty"`
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle,omitempty"`
	Previous *string            `json:"previous,omitempty"`
	Next     *string            `json:"next,omitempty"`
	Author   *Author            `json:"author,omitempty"`
	Children []*TreeNode        `json:"children"`
	Headings []markdown.Heading `json:"headings"`
}

// Walk visits n and its descendants in pre-order. Returning false from fn stops the walk
// below the current node.
func (n *TreeNode) Walk(fn func(node *TreeNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *TreeNode) Count() int {
	count := 0
	n.Walk(func(*TreeNode) bool {
		count++
		return true
	})
	return count
}

// ChildDirectory returns the directory holding the children of a non-root page, relative
// to the page's containing directory: the directory of a directory-page, or the file stem
// of a plain page.
func ChildDirectory(file string) string {
	if dir := path.Dir(file); dir != "." {
		return dir
	}
	return strings.TrimSuffix(file, path.Ext(file))
}
