// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylofinger provides a phylogenetic tree similarity index: a
// Newick parser and node-graph builder, a deterministic tree fingerprint
// encoder, a similarity explanation engine, and an in-memory corpus with
// cosine-based top-K retrieval and graph traversal operations.
package phylofinger

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// A Node is a single node of a persisted tree: a member of the node graph
// produced by BuildGraph. Nodes reference each other by ID, never by
// pointer, so that a Node can be stored and retrieved independently of any
// in-memory tree structure.
type Node struct {
	ID     string
	TreeID string
	Label  string

	ParentID string
	ChildIDs []string

	Depth        int
	BranchLength float64
	IsLeaf       bool
}

// LeftChildID returns the ID of the first child, or "" if the node is a
// leaf. It exists to satisfy the two-slot child convention named in the
// data model; traversal code should prefer ChildIDs, which also supports
// the occasional polytomy the parser accepts permissively.
func (n *Node) LeftChildID() string {
	if len(n.ChildIDs) == 0 {
		return ""
	}
	return n.ChildIDs[0]
}

// RightChildID returns the ID of the second child, or "" if the node has
// fewer than two children (a leaf or a unary internal node).
func (n *Node) RightChildID() string {
	if len(n.ChildIDs) < 2 {
		return ""
	}
	return n.ChildIDs[1]
}

// BuildGraph walks c in pre-order and produces the node graph for a tree
// identified by treeID: a list of Nodes, root first, plus the leaf and
// total node counts. Node IDs are deterministic: the 16-hex-character
// lowercase hash of "<treeID>:node:<preorder index>". Parent, children,
// depth and branch-length fields are filled in the same pass; child order
// is preserved exactly as it appeared in the Newick source.
func BuildGraph(treeID string, root *Clade) (nodes []*Node, numLeaves, numNodes int) {
	index := 0

	var build func(c *Clade, parent *Node, depth int) *Node
	build = func(c *Clade, parent *Node, depth int) *Node {
		n := &Node{
			ID:           nodeID(treeID, index),
			TreeID:       treeID,
			Label:        c.Label,
			BranchLength: c.BranchLength,
			Depth:        depth,
			IsLeaf:       c.IsLeaf(),
		}
		if parent != nil {
			n.ParentID = parent.ID
		}
		index++
		nodes = append(nodes, n)

		for _, child := range c.Children {
			cn := build(child, n, depth+1)
			n.ChildIDs = append(n.ChildIDs, cn.ID)
		}
		return n
	}

	build(root, nil, 0)

	for _, n := range nodes {
		numNodes++
		if n.IsLeaf {
			numLeaves++
		}
	}
	return nodes, numLeaves, numNodes
}

// nodeID returns the deterministic 16-hex-character node identifier for
// the node at the given pre-order index of treeID.
func nodeID(treeID string, preorderIndex int) string {
	h := xxhash.New()
	h.WriteString(treeID)
	h.WriteString(":node:")
	h.WriteString(strconv.Itoa(preorderIndex))
	return fmt.Sprintf("%016x", h.Sum64())
}

// NodeMap builds a transient id → node lookup table from a flat node
// slice, the shape every traversal operation in traverse.go starts from.
func NodeMap(nodes []*Node) map[string]*Node {
	m := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n
	}
	return m
}
