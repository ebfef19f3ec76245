package domain

import "strings"

// FolderNode is one folder discovered in the remote tree.
//
// Path is root-relative with segments joined by "/". Depth counts the
// separators in Path, so direct children of the Drive root have depth 0.
// A Drive folder may have several parents; tree construction uses only the
// first, which matches how paths are built during scanning.
type FolderNode struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Depth     int      `json:"depth"`
	ParentIDs []string `json:"parents,omitempty"`
}

// ScanResult is a consistent snapshot of the tree up to some depth.
// Folders is ordered by depth: all depth-k nodes precede any depth-k+1 node.
type ScanResult struct {
	Folders []FolderNode `json:"folders"`
	Paths   []string     `json:"paths"`
}

// TreeNode is a FolderNode with its children attached.
type TreeNode struct {
	FolderNode
	Children []*TreeNode `json:"children"`
}

// BuildTree converts a flat folder list into root-level trees.
//
// Two passes: index every node by ID, then attach each node to its first
// parent's child list, or collect it as a root when no parent is known.
// Nodes whose parent was not scanned (e.g. beyond the depth bound) also
// become roots rather than being dropped.
func BuildTree(folders []FolderNode) []*TreeNode {
	index := make(map[string]*TreeNode, len(folders))
	for i := range folders {
		index[folders[i].ID] = &TreeNode{FolderNode: folders[i], Children: []*TreeNode{}}
	}

	var roots []*TreeNode
	for i := range folders {
		node := index[folders[i].ID]
		if len(folders[i].ParentIDs) > 0 {
			if parent, ok := index[folders[i].ParentIDs[0]]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// NameMatch selects how folder names are compared during find lookups.
type NameMatch int

const (
	// MatchExact compares names byte-for-byte
	MatchExact NameMatch = iota
	// MatchFold compares names case-insensitively
	MatchFold
)

// Equal reports whether a and b are the same name under the policy.
func (m NameMatch) Equal(a, b string) bool {
	if m == MatchFold {
		return strings.EqualFold(a, b)
	}
	return a == b
}
