package schema

// TreeNode is one node of the repository hierarchy. Identifiers are assigned
// once at build time and never change for the lifetime of the snapshot.
type TreeNode struct {
	ID       int         `json:"id"`                 // Stable identifier; root is always 0
	Name     string      `json:"name"`               // Path segment, empty for the root
	Path     string      `json:"path"`               // Full path from the root, empty for the root
	Kind     NodeKind    `json:"kind"`               // Directory or file
	Children []*TreeNode `json:"children,omitempty"` // Both kinds, in first-encountered order
}

// AddChild appends a child preserving encounter order.
func (n *TreeNode) AddChild(child *TreeNode) {
	n.Children = append(n.Children, child)
}

// ChildNamed returns the direct child with the given name and kind, or nil.
// Files and directories live in separate namespaces under the same parent.
func (n *TreeNode) ChildNamed(name string, kind NodeKind) *TreeNode {
	for _, c := range n.Children {
		if c.Name == name && c.Kind == kind {
			return c
		}
	}
	return nil
}

// TreeResult is the built hierarchy plus the directory lookup index.
type TreeResult struct {
	Root     *TreeNode      `json:"root"`
	DirIndex map[string]int `json:"dir_index"` // Directory path to node identifier, "" maps to 0
	NodeSpan int            `json:"node_span"` // Total nodes created, which is also the next free identifier
}
