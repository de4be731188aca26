// Package tree builds the repository hierarchy from the lifecycle file mapping.
package tree

import (
	"strings"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

// Build constructs the directory and file hierarchy for the given file list.
// Identifiers come from one monotonic counter in creation order, with the root
// fixed at 0, so the same input always yields the same ids. The walk is
// iterative and directory lookups go through a path map, keeping the build
// linear in total path segments regardless of nesting depth.
func Build(files schema.FileEventList) *schema.TreeResult {
	root := &schema.TreeNode{ID: 0, Kind: schema.DirectoryNode}
	result := &schema.TreeResult{
		Root:     root,
		DirIndex: map[string]int{"": 0},
	}
	dirNodes := map[string]*schema.TreeNode{"": root}
	nextID := 1

	for _, fe := range files {
		segments := strings.Split(fe.Path, "/")

		// 1. Materialize intermediate directories left to right.
		parent := root
		prefix := ""
		for _, seg := range segments[:len(segments)-1] {
			if prefix == "" {
				prefix = seg
			} else {
				prefix = prefix + "/" + seg
			}
			if node, ok := dirNodes[prefix]; ok {
				parent = node
				continue
			}
			node := &schema.TreeNode{ID: nextID, Name: seg, Path: prefix, Kind: schema.DirectoryNode}
			nextID++
			parent.AddChild(node)
			dirNodes[prefix] = node
			result.DirIndex[prefix] = node.ID
			parent = node
		}

		// 2. Attach the file leaf. Duplicate input paths make duplicate
		// leaves; the mapping contract says paths are unique, so that case
		// is tolerated rather than repaired.
		leaf := &schema.TreeNode{
			ID:   nextID,
			Name: segments[len(segments)-1],
			Path: fe.Path,
			Kind: schema.FileNode,
		}
		nextID++
		parent.AddChild(leaf)
	}

	result.NodeSpan = nextID
	return result
}

// Walk visits every node depth first in child order, calling fn with the node
// and its depth. The traversal uses an explicit stack like the builder.
func Walk(root *schema.TreeNode, fn func(node *schema.TreeNode, depth int)) {
	if root == nil {
		return
	}
	type frame struct {
		node  *schema.TreeNode
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(top.node, top.depth)
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{top.node.Children[i], top.depth + 1})
		}
	}
}

// CountKinds tallies directory and file nodes in one traversal.
func CountKinds(root *schema.TreeNode) (dirs, files int) {
	Walk(root, func(node *schema.TreeNode, _ int) {
		switch node.Kind {
		case schema.DirectoryNode:
			dirs++
		case schema.FileNode:
			files++
		}
	})
	return dirs, files
}
