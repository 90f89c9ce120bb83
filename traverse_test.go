// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger_test

import (
	"testing"

	"github.com/js-arias/phylofinger"
)

func mustIngest(t *testing.T, c *phylofinger.Corpus, name, newick string) *phylofinger.Tree {
	t.Helper()
	tr, err := c.IngestTree(name, newick, nil)
	if err != nil {
		t.Fatalf("unexpected error ingesting %q: %v", newick, err)
	}
	return tr
}

func nodeByLabel(t *testing.T, c *phylofinger.Corpus, treeID, label string) *phylofinger.Node {
	t.Helper()
	for _, n := range c.NodesOf(treeID) {
		if n.Label == label {
			return n
		}
	}
	t.Fatalf("no node labelled %q in tree %q", label, treeID)
	return nil
}

func TestAncestors(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	ant := nodeByLabel(t, c, tr.ID, "ant")
	path, pathLength, err := c.Ancestors(tr.ID, ant.ID, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pathLength != 2 {
		t.Fatalf("got path length %d, want 2", pathLength)
	}
	if len(path) != 2 {
		t.Fatalf("got %d ancestors, want 2", len(path))
	}
	if path[len(path)-1].ParentID != "" {
		t.Errorf("last ancestor must be the root")
	}
}

func TestAncestorsMaxDepth(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	ant := nodeByLabel(t, c, tr.ID, "ant")
	path, pathLength, err := c.Ancestors(tr.ID, ant.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pathLength != 2 {
		t.Errorf("path length should reflect the full path even when truncated, got %d", pathLength)
	}
	if len(path) != 1 {
		t.Fatalf("got %d ancestors with max-depth 1, want 1", len(path))
	}
}

func TestAncestorsMissingNode(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "(ant,bee);")

	path, pathLength, err := c.Ancestors(tr.ID, "missing", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != nil || pathLength != 0 {
		t.Errorf("got path %v, length %d for a missing node, want nil, 0", path, pathLength)
	}
}

func TestDescendants(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	root, err := c.Root(tr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, total, err := c.Descendants(tr.ID, root.ID, -1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4 {
		t.Fatalf("got %d descendants, want 4", total)
	}
	if len(all) != total {
		t.Errorf("len(all) = %d, want %d", len(all), total)
	}

	leaves, total2, err := c.Descendants(tr.ID, root.ID, -1, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total2 != total {
		t.Errorf("total changed between leavesOnly runs: %d vs %d", total2, total)
	}
	if len(leaves) != 3 {
		t.Fatalf("got %d leaves, want 3", len(leaves))
	}
	for _, n := range leaves {
		if !n.IsLeaf {
			t.Errorf("node %q returned by a leaves-only query is not a leaf", n.ID)
		}
	}
}

func TestDescendantsMaxDepth(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	root, err := c.Root(tr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near, total, err := c.Descendants(tr.ID, root.ID, 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4 {
		t.Errorf("got total %d, want 4 regardless of max-depth", total)
	}
	if len(near) != 2 {
		t.Fatalf("got %d nodes at depth<=1, want 2", len(near))
	}
}

func TestLCA(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	ant := nodeByLabel(t, c, tr.ID, "ant")
	bee := nodeByLabel(t, c, tr.ID, "bee")
	cat := nodeByLabel(t, c, tr.ID, "cat")
	root, _ := c.Root(tr.ID)

	lca, ok, err := c.LCA(tr.ID, ant.ID, bee.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected LCA(ant, bee) to be found")
	}
	if lca.ID == root.ID {
		t.Errorf("LCA(ant, bee) should be their immediate parent, not the root")
	}

	lca2, ok, err := c.LCA(tr.ID, ant.ID, cat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || lca2.ID != root.ID {
		t.Errorf("LCA(ant, cat) should be the root")
	}
}

func TestLCAMissingNode(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "(ant,bee);")
	ant := nodeByLabel(t, c, tr.ID, "ant")

	_, ok, err := c.LCA(tr.ID, ant.ID, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected ok=false when one node is missing")
	}
}

func TestSubtreeNewick(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant:1,bee:2):3,cat:4);")

	root, _ := c.Root(tr.ID)
	cherry, ok, err := c.LCA(tr.ID, nodeByLabel(t, c, tr.ID, "ant").ID, nodeByLabel(t, c, tr.ID, "bee").ID)
	if err != nil || !ok {
		t.Fatalf("could not find the ant/bee clade: ok=%v err=%v", ok, err)
	}

	nw, ids, err := c.SubtreeNewick(tr.ID, cherry.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nw != "(ant,bee);" {
		t.Errorf("got newick %q, want %q", nw, "(ant,bee);")
	}
	if len(ids) != 3 {
		t.Errorf("got %d node ids, want 3", len(ids))
	}

	nwFull, _, err := c.SubtreeNewick(tr.ID, root.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nwFull != "((ant:1,bee:2):3,cat:4);" {
		t.Errorf("got newick %q, want %q", nwFull, "((ant:1,bee:2):3,cat:4);")
	}
}

func TestSubtreeNewickSanitizesLabels(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "('homo sapiens',bee);")

	root, _ := c.Root(tr.ID)
	nw, _, err := c.SubtreeNewick(tr.ID, root.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nw != "(homo_sapiens,bee);" {
		t.Errorf("got newick %q, want %q", nw, "(homo_sapiens,bee);")
	}
}

func TestRelated(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	ant := nodeByLabel(t, c, tr.ID, "ant")
	related, err := c.Related(tr.ID, ant.ID, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("got %d related leaves, want 2", len(related))
	}
	if related[0].SequenceID != "bee" {
		t.Errorf("nearest related leaf = %q, want %q", related[0].SequenceID, "bee")
	}
	if related[0].EdgeDistance >= related[1].EdgeDistance {
		t.Errorf("related leaves are not sorted by ascending edge distance")
	}
}

func TestRelatedMaxDistance(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	ant := nodeByLabel(t, c, tr.ID, "ant")
	related, err := c.Related(tr.ID, ant.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(related) != 0 {
		t.Fatalf("got %d related leaves within 1 edge of ant, want 0 (bee is 2 edges away)", len(related))
	}
}

func TestSubtreeNodeIDs(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr := mustIngest(t, c, "t", "((ant,bee),cat);")

	root, _ := c.Root(tr.ID)
	ids, err := c.SubtreeNodeIDs(tr.ID, root.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("got %d ids, want 5", len(ids))
	}
	if ids[0] != root.ID {
		t.Errorf("first id should be the start node itself")
	}
}
