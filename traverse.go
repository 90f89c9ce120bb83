// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger

import (
	"sort"
	"strconv"
	"strings"
)

// formatBranchLength renders a branch length using the shortest decimal
// representation that round-trips.
func formatBranchLength(bl float64) string {
	return strconv.FormatFloat(bl, 'g', -1, 64)
}

// Ancestors walks parent links from nodeID up to the root of treeID and
// returns them in order (immediate parent first, root last), along with
// the path length. If maxDepth >= 0, the list is truncated to at most
// maxDepth entries, counted from the near-node end. A missing node
// returns an empty list with a path length of 0.
func (c *Corpus) Ancestors(treeID, nodeID string, maxDepth int) ([]*Node, int, error) {
	nodes := c.NodesOf(treeID)
	if len(nodes) == 0 {
		return nil, 0, notFoundf("tree %q", treeID)
	}
	byID := NodeMap(nodes)

	n, ok := byID[nodeID]
	if !ok {
		return nil, 0, nil
	}

	var path []*Node
	for n.ParentID != "" {
		p, ok := byID[n.ParentID]
		if !ok {
			return nil, 0, internalf("node %q has dangling parent %q", n.ID, n.ParentID)
		}
		path = append(path, p)
		n = p
	}

	pathLength := len(path)
	if maxDepth >= 0 && maxDepth < len(path) {
		path = path[:maxDepth]
	}
	return path, pathLength, nil
}

// Descendants runs a breadth-first search from nodeID, excluding nodeID
// itself, and returns the reached nodes along with the total number of
// descendants of nodeID. maxDepth, if >= 0, limits the returned nodes to
// those at most that many edges from nodeID. If leavesOnly is true, only
// leaf nodes are returned. The total count is taken before either filter,
// so it always covers the whole subtree below nodeID.
func (c *Corpus) Descendants(treeID, nodeID string, maxDepth int, leavesOnly bool) ([]*Node, int, error) {
	nodes := c.NodesOf(treeID)
	if len(nodes) == 0 {
		return nil, 0, notFoundf("tree %q", treeID)
	}
	byID := NodeMap(nodes)

	start, ok := byID[nodeID]
	if !ok {
		return nil, 0, nil
	}

	type queued struct {
		node  *Node
		depth int
	}
	visited := map[string]bool{start.ID: true}
	queue := []queued{{start, 0}}

	var all, leaves []*Node
	total := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, cid := range cur.node.ChildIDs {
			if visited[cid] {
				continue
			}
			child, ok := byID[cid]
			if !ok {
				return nil, 0, internalf("node %q has dangling child %q", cur.node.ID, cid)
			}
			depth := cur.depth + 1
			visited[cid] = true
			total++
			queue = append(queue, queued{child, depth})
			if maxDepth >= 0 && depth > maxDepth {
				continue
			}
			all = append(all, child)
			if child.IsLeaf {
				leaves = append(leaves, child)
			}
		}
	}

	if leavesOnly {
		return leaves, total, nil
	}
	return all, total, nil
}

// LCA returns the lowest common ancestor of a and b within treeID: the
// deepest node that is an ancestor of (or equal to) both. It returns
// ok = false if either node is absent from the tree.
func (c *Corpus) LCA(treeID, a, b string) (node *Node, ok bool, err error) {
	nodes := c.NodesOf(treeID)
	if len(nodes) == 0 {
		return nil, false, notFoundf("tree %q", treeID)
	}
	byID := NodeMap(nodes)

	na, ok := byID[a]
	if !ok {
		return nil, false, nil
	}
	nb, ok := byID[b]
	if !ok {
		return nil, false, nil
	}

	onPathToRoot := map[string]bool{na.ID: true}
	for n := na; n.ParentID != ""; {
		p, ok := byID[n.ParentID]
		if !ok {
			return nil, false, internalf("node %q has dangling parent %q", n.ID, n.ParentID)
		}
		onPathToRoot[p.ID] = true
		n = p
	}

	for n := nb; ; {
		if onPathToRoot[n.ID] {
			return n, true, nil
		}
		if n.ParentID == "" {
			break
		}
		p, ok := byID[n.ParentID]
		if !ok {
			return nil, false, internalf("node %q has dangling parent %q", n.ID, n.ParentID)
		}
		n = p
	}
	return nil, false, internalf("no common ancestor found between %q and %q", a, b)
}

// SubtreeNodeIDs returns every node id in the subtree rooted at nodeID,
// including nodeID itself, via a directional downward BFS.
func (c *Corpus) SubtreeNodeIDs(treeID, nodeID string) ([]string, error) {
	nodes := c.NodesOf(treeID)
	if len(nodes) == 0 {
		return nil, notFoundf("tree %q", treeID)
	}
	byID := NodeMap(nodes)

	start, ok := byID[nodeID]
	if !ok {
		return nil, notFoundf("node %q", nodeID)
	}

	ids := []string{start.ID}
	queue := []*Node{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, cid := range cur.ChildIDs {
			child, ok := byID[cid]
			if !ok {
				return nil, internalf("node %q has dangling child %q", cur.ID, cid)
			}
			ids = append(ids, child.ID)
			queue = append(queue, child)
		}
	}
	return ids, nil
}

// SubtreeNewick renders the subtree rooted at nodeID back to a Newick
// string via a post-order build, along with the ids of every node it
// covers. Leaves render as their sanitised label, optionally suffixed
// with ":<branch-length>" when includeBranchLengths is true and the
// length is positive; internal nodes render as "(c1,c2,...)" with the
// same optional suffix. The returned string always ends in ";".
func (c *Corpus) SubtreeNewick(treeID, nodeID string, includeBranchLengths bool) (string, []string, error) {
	nodes := c.NodesOf(treeID)
	if len(nodes) == 0 {
		return "", nil, notFoundf("tree %q", treeID)
	}
	byID := NodeMap(nodes)

	start, ok := byID[nodeID]
	if !ok {
		return "", nil, notFoundf("node %q", nodeID)
	}

	var ids []string
	var render func(n *Node) (string, error)
	render = func(n *Node) (string, error) {
		ids = append(ids, n.ID)

		var body string
		if n.IsLeaf {
			body = sanitizeLabel(n.Label)
		} else {
			parts := make([]string, 0, len(n.ChildIDs))
			for _, cid := range n.ChildIDs {
				child, ok := byID[cid]
				if !ok {
					return "", internalf("node %q has dangling child %q", n.ID, cid)
				}
				s, err := render(child)
				if err != nil {
					return "", err
				}
				parts = append(parts, s)
			}
			body = "(" + strings.Join(parts, ",") + ")" + sanitizeLabel(n.Label)
		}

		if includeBranchLengths && n.BranchLength > 0 {
			body += ":" + formatBranchLength(n.BranchLength)
		}
		return body, nil
	}

	body, err := render(start)
	if err != nil {
		return "", nil, err
	}
	return body + ";", ids, nil
}

// sanitizeLabel removes the Newick delimiter characters and replaces
// spaces with underscores.
func sanitizeLabel(label string) string {
	label = strings.Map(func(r rune) rune {
		if strings.ContainsRune(delimiters, r) {
			return -1
		}
		return r
	}, label)
	return strings.ReplaceAll(label, " ", "_")
}

// A RelatedLeaf is one leaf discovered by Corpus.Related: its node id, its
// undirected edge distance from the query node, and the summed branch
// length of the path.
type RelatedLeaf struct {
	NodeID       string
	SequenceID   string
	EdgeDistance int
	PathLength   float64
}

// Related runs an undirected BFS over parent/child edges starting at
// nodeID, up to maxDistance edges, and returns every leaf reached
// (excluding the start node itself, even if it is a leaf), sorted by edge
// distance ascending then summed branch length ascending.
func (c *Corpus) Related(treeID, nodeID string, maxDistance int) ([]RelatedLeaf, error) {
	nodes := c.NodesOf(treeID)
	if len(nodes) == 0 {
		return nil, notFoundf("tree %q", treeID)
	}
	byID := NodeMap(nodes)

	start, ok := byID[nodeID]
	if !ok {
		return nil, notFoundf("node %q", nodeID)
	}

	neighbors := func(n *Node) []*Node {
		var out []*Node
		if n.ParentID != "" {
			if p, ok := byID[n.ParentID]; ok {
				out = append(out, p)
			}
		}
		for _, cid := range n.ChildIDs {
			if c2, ok := byID[cid]; ok {
				out = append(out, c2)
			}
		}
		return out
	}

	type state struct {
		node     *Node
		distance int
		length   float64
	}
	visited := map[string]bool{start.ID: true}
	queue := []state{{start, 0, 0}}

	var related []RelatedLeaf
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range neighbors(cur.node) {
			if visited[nb.ID] {
				continue
			}
			dist := cur.distance + 1
			if maxDistance >= 0 && dist > maxDistance {
				continue
			}
			visited[nb.ID] = true

			edgeLen := nb.BranchLength
			if nb.ID == cur.node.ParentID {
				edgeLen = cur.node.BranchLength
			}
			length := cur.length + edgeLen

			if nb.IsLeaf {
				related = append(related, RelatedLeaf{
					NodeID:       nb.ID,
					SequenceID:   nb.Label,
					EdgeDistance: dist,
					PathLength:   length,
				})
			}
			queue = append(queue, state{nb, dist, length})
		}
	}

	sort.Slice(related, func(i, j int) bool {
		if related[i].EdgeDistance != related[j].EdgeDistance {
			return related[i].EdgeDistance < related[j].EdgeDistance
		}
		return related[i].PathLength < related[j].PathLength
	})
	return related, nil
}
