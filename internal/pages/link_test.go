package pages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTree creates an arena from a parent list given in pre-order.
func buildTree(parents []int) *Tree {
	tree := &Tree{Pages: make([]Page, len(parents))}
	for id, parent := range parents {
		tree.Pages[id] = Page{ID: id, Parent: parent, Slug: slugForID(id)}
		if parent != none {
			tree.Pages[parent].Children = append(tree.Pages[parent].Children, id)
		}
	}
	return tree
}

func slugForID(id int) string {
	if id == 0 {
		return ""
	}
	return string(rune('a' + id - 1))
}

func TestLinkFollowsPreOrder(t *testing.T) {
	t.Parallel()

	// 0
	// ├── 1
	// │   ├── 2
	// │   └── 3
	// │       └── 4
	// ├── 5
	// └── 6
	//     └── 7
	tree := buildTree([]int{none, 0, 1, 1, 3, 0, 0, 6})
	links := Link(tree)

	for id := range links {
		wantPrevious, wantNext := id-1, id+1
		if id == 0 {
			wantPrevious = none
		}
		if id == len(links)-1 {
			wantNext = none
		}
		require.Equal(t, Links{Previous: wantPrevious, Next: wantNext}, links[id], "page %d", id)
	}
}

func TestLinkPreviousUsesDeepestLastDescendant(t *testing.T) {
	t.Parallel()

	tree := buildTree([]int{none, 0, 1, 1, 3, 0})
	links := Link(tree)

	require.Equal(t, 4, links[5].Previous)
	require.Equal(t, 5, links[4].Next)
}

func TestLinkSinglePage(t *testing.T) {
	t.Parallel()

	links := Link(buildTree([]int{none}))
	require.Equal(t, []Links{{Previous: none, Next: none}}, links)
}

func TestLinkEmptyTree(t *testing.T) {
	t.Parallel()

	require.Empty(t, Link(&Tree{}))
	require.Nil(t, Nest(&Tree{}, nil))
}

func TestLinkDoesNotModifyTree(t *testing.T) {
	t.Parallel()

	tree := buildTree([]int{none, 0, 1, 0})
	before := buildTree([]int{none, 0, 1, 0})

	_ = Link(tree)
	require.Equal(t, before, tree)
}

func TestNavigationIsInvertible(t *testing.T) {
	t.Parallel()

	fsys := newTestFs(t, map[string]string{
		"/pages/index.mdx":     "",
		"/pages/a.mdx":         "",
		"/pages/a/1.mdx":       "",
		"/pages/a/2.mdx":       "",
		"/pages/a/2/i.mdx":     "",
		"/pages/b/index.mdx":   "",
		"/pages/b/x.mdx":       "",
		"/pages/c.mdx":         "",
		"/pages/c/deep.mdx":    "",
		"/pages/c/deep/z.mdx":  "",
		"/pages/c/hidden.mdx":  "---\nhidden: true\n---",
		"/pages/c/shallow.mdx": "",
	})

	guide := scanGuide(t, fsys)
	total := guide.Root.Count()
	require.Len(t, guide.Order, total)

	node := guide.Root
	for i := 0; i < total-1; i++ {
		require.NotNil(t, node.Next, "page %q has no next", node.Slug)
		node = guide.BySlug[*node.Next]
	}
	require.Nil(t, node.Next)
	require.Same(t, guide.Order[total-1], node)

	for i := 0; i < total-1; i++ {
		require.NotNil(t, node.Previous, "page %q has no previous", node.Slug)
		node = guide.BySlug[*node.Previous]
	}
	require.Same(t, guide.Root, node)
	require.Nil(t, node.Previous)
}
