package graph

// IsLeaf reports whether a branch points at the node
func IsLeaf(n *Node) bool {
	return len(n.Commit.BranchRefs) > 0
}

// LeafNodes returns the branch tips in graph order
func LeafNodes(g *Graph) []*Node {
	var leaves []*Node
	for _, n := range g.nodes {
		if IsLeaf(n) {
			leaves = append(leaves, n)
		}
	}
	return leaves
}
