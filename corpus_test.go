// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger_test

import (
	"errors"
	"testing"

	"github.com/js-arias/phylofinger"
)

func TestIngestTree(t *testing.T) {
	c := phylofinger.NewCorpus()

	tr, err := c.IngestTree("mammals", "(cat,dog);", map[string]string{"source": "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.NumLeaves != 2 {
		t.Errorf("got %d leaves, want 2", tr.NumLeaves)
	}
	if tr.NumNodes != 3 {
		t.Errorf("got %d nodes, want 3", tr.NumNodes)
	}

	got, err := c.GetTree(tr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Newick != "(cat,dog);" {
		t.Errorf("got newick %q, want %q", got.Newick, "(cat,dog);")
	}

	nodes := c.NodesOf(tr.ID)
	if len(nodes) != 3 {
		t.Errorf("got %d nodes stored, want 3", len(nodes))
	}
}

func TestIngestTreeInvalidNewick(t *testing.T) {
	c := phylofinger.NewCorpus()
	if _, err := c.IngestTree("bad", "(cat,dog;", nil); err == nil {
		t.Fatalf("expected an error for malformed newick")
	}
	if len(c.ListTrees(0)) != 0 {
		t.Errorf("a failed ingest must not leave a partial tree in the corpus")
	}
}

func TestIngestSameNameAndNewickReplaces(t *testing.T) {
	c := phylofinger.NewCorpus()
	t1, _ := c.IngestTree("mammals", "(cat,dog);", nil)
	t2, _ := c.IngestTree("mammals", "(cat,dog);", map[string]string{"k": "v"})

	if t1.ID != t2.ID {
		t.Fatalf("re-ingesting the same name and newick must reuse the same id")
	}
	if len(c.ListTrees(0)) != 1 {
		t.Errorf("got %d trees, want 1 after re-ingesting the same tree", len(c.ListTrees(0)))
	}
}

func TestGetTreeNotFound(t *testing.T) {
	c := phylofinger.NewCorpus()
	_, err := c.GetTree("missing")
	if !errors.Is(err, phylofinger.ErrNotFound) {
		t.Errorf("error %v does not wrap ErrNotFound", err)
	}
}

func TestListTreesOrderAndLimit(t *testing.T) {
	c := phylofinger.NewCorpus()
	names := []string{"a", "b", "c"}
	for _, n := range names {
		if _, err := c.IngestTree(n, "(x,y);", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all := c.ListTrees(0)
	if len(all) != 3 {
		t.Fatalf("got %d trees, want 3", len(all))
	}
	for i, n := range names {
		if all[i].Name != n {
			t.Errorf("position %d: got name %q, want %q", i, all[i].Name, n)
		}
	}

	limited := c.ListTrees(2)
	if len(limited) != 2 {
		t.Errorf("got %d trees with limit 2, want 2", len(limited))
	}
}

func TestSearchOrdersByScoreThenInsertion(t *testing.T) {
	c := phylofinger.NewCorpus()
	t1, _ := c.IngestTree("one", "(ant,bee);", nil)
	t2, _ := c.IngestTree("two", "(cat,dog);", nil)
	t3, _ := c.IngestTree("three", "(ant,(bee,(cat,dog)));", nil)

	results := c.Search(t1.Fingerprint, 10)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].TreeID != t1.ID {
		t.Errorf("top result = %q, want the query's own id %q", results[0].TreeID, t1.ID)
	}
	// t2 is isomorphic to t1 so it ties with t1 for first place; the
	// tie-break falls back to insertion order, which puts t1 before t2.
	// t3 has a different topology and scores lower than both.
	if results[1].TreeID != t2.ID {
		t.Errorf("second result = %q, want %q", results[1].TreeID, t2.ID)
	}
	if results[2].TreeID != t3.ID {
		t.Errorf("third result = %q, want %q", results[2].TreeID, t3.ID)
	}
	for i := 0; i+1 < len(results); i++ {
		if results[i].Score < results[i+1].Score {
			t.Errorf("results are not sorted descending by score at index %d", i)
		}
	}
}

func TestSearchZeroK(t *testing.T) {
	c := phylofinger.NewCorpus()
	t1, _ := c.IngestTree("one", "(ant,bee);", nil)
	if got := c.Search(t1.Fingerprint, 0); got != nil {
		t.Errorf("got %v results for k=0, want nil", got)
	}
}

func TestDelete(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr, _ := c.IngestTree("mammals", "(cat,dog);", nil)

	if n := c.Delete(tr.ID); n != 1 {
		t.Errorf("got %d deletions, want 1", n)
	}
	if n := c.Delete(tr.ID); n != 0 {
		t.Errorf("got %d deletions on a repeat delete, want 0", n)
	}
	if _, err := c.GetTree(tr.ID); !errors.Is(err, phylofinger.ErrNotFound) {
		t.Errorf("tree should be gone after delete")
	}
	if len(c.NodesOf(tr.ID)) != 0 {
		t.Errorf("nodes of a deleted tree must also be gone")
	}
}

func TestRoot(t *testing.T) {
	c := phylofinger.NewCorpus()
	tr, _ := c.IngestTree("mammals", "(cat,dog);", nil)

	root, err := c.Root(tr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.ParentID != "" {
		t.Errorf("root must have no parent")
	}
	if len(root.ChildIDs) != 2 {
		t.Errorf("got %d children, want 2", len(root.ChildIDs))
	}
}
