package pages

import (
	"github.com/spf13/afero"

	"github.com/grafana/guidebook/internal/markdown"
)

// Link computes the previous/next neighbours of every page of tree, indexed by page id.
//
// The root is linked as the only top-level page with no neighbours. Within a sibling list,
// the first page's previous is the sentinel handed down by the parent (the parent itself),
// later pages point back at the deepest last descendant of the preceding sibling, and every
// page's next is its first child or else the following sibling or else the sentinel. The
// result is a doubly linked list in pre-order. The tree is not modified.
func Link(tree *Tree) []Links {
	links := make([]Links, tree.Len())
	for i := range links {
		links[i] = Links{Previous: none, Next: none}
	}

	if tree.Len() == 0 {
		return links
	}

	linkSiblings(tree, links, []int{0}, none, none)
	return links
}

func linkSiblings(tree *Tree, links []Links, siblings []int, previous, next int) {
	for i, id := range siblings {
		if i == 0 {
			links[id].Previous = previous
		} else {
			links[id].Previous = lastDescendant(tree, siblings[i-1])
		}

		following := next
		if i+1 < len(siblings) {
			following = siblings[i+1]
		}

		children := tree.Pages[id].Children
		if len(children) > 0 {
			links[id].Next = children[0]
		} else {
			links[id].Next = following
		}

		linkSiblings(tree, links, children, id, following)
	}
}

// lastDescendant follows last children from id until it reaches a childless page.
func lastDescendant(tree *Tree, id int) int {
	for {
		children := tree.Pages[id].Children
		if len(children) == 0 {
			return id
		}
		id = children[len(children)-1]
	}
}

// Nest materializes the linked tree as nested TreeNode values rooted at the root page.
func Nest(tree *Tree, links []Links) *TreeNode {
	if tree.Len() == 0 {
		return nil
	}
	return nest(tree, links, 0)
}

func nest(tree *Tree, links []Links, id int) *TreeNode {
	page := tree.Pages[id]

	node := &TreeNode{
		ID:       page.ID,
		File:     page.File,
		Slug:     page.Slug,
		Parent:   slugOf(tree, page.Parent),
		Title:    page.Title,
		Subtitle: page.Subtitle,
		Previous: slugOf(tree, links[id].Previous),
		Next:     slugOf(tree, links[id].Next),
		Author:   copyAuthor(page.Author),
		Children: make([]*TreeNode, 0, len(page.Children)),
		Headings: append([]markdown.Heading{}, page.Headings...),
	}

	for _, child := range page.Children {
		node.Children = append(node.Children, nest(tree, links, child))
	}

	return node
}

func copyAuthor(author *Author) *Author {
	if author == nil {
		return nil
	}
	clone := *author
	return &clone
}

func slugOf(tree *Tree, id int) *string {
	if id == none {
		return nil
	}
	slug := tree.Pages[id].Slug
	return &slug
}

// ScanTree scans root, links the pages and returns the nested root node.
func ScanTree(fsys afero.Fs, root string, opts ...Option) (*TreeNode, error) {
	tree, err := Scan(fsys, root, opts...)
	if err != nil {
		return nil, err
	}

	return Nest(tree, Link(tree)), nil
}
