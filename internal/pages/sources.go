package pages

import "path"

// SourcePaths maps every page id of the tree rooted at root to the slash-separated path of
// its source file, relative to the scanned directory. Paths follow from tree position: the
// root's children sit next to the root file, and the children of any other page sit in its
// ChildDirectory.
func SourcePaths(root *TreeNode) map[int]string {
	paths := make(map[int]string)
	if root == nil {
		return paths
	}

	var visit func(node *TreeNode, dir, childDir string)
	visit = func(node *TreeNode, dir, childDir string) {
		paths[node.ID] = path.Join(dir, node.File)
		for _, child := range node.Children {
			visit(child, childDir, path.Join(childDir, ChildDirectory(child.File)))
		}
	}
	visit(root, "", "")

	return paths
}
