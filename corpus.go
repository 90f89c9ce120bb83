// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger

import (
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/floats"
)

// A Tree is a persisted, immutable record of an ingested Newick tree: its
// original text, its fingerprint, and summary counts. Re-embedding a tree
// replaces the whole record atomically (Corpus.Insert); nothing mutates a
// Tree in place.
type Tree struct {
	ID          string
	Name        string
	Newick      string
	Fingerprint [FingerprintDim]float64
	NumLeaves   int
	NumNodes    int
	Metadata    map[string]string
	CreatedAt   time.Time
}

// A SearchResult is one hit of a similarity search: the id of a stored
// tree and its cosine similarity to the query, reported in [0, 1].
type SearchResult struct {
	TreeID string
	Score  float64
}

// A Corpus is the in-memory collection of Trees and Nodes this package's
// queries run against. The zero value is not usable; construct one with
// NewCorpus. A Corpus is safe for concurrent use: any number of readers may
// run at once, but writers (Insert, Delete) take an exclusive lock.
type Corpus struct {
	mu    sync.RWMutex
	trees map[string]*Tree
	nodes map[string]*Node
	order []string
}

// NewCorpus returns a new, empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		trees: make(map[string]*Tree),
		nodes: make(map[string]*Node),
	}
}

// TreeID derives the deterministic tree identifier used by IngestTree: the
// 16-hex-character hash of name and newick together. Two ingests of the
// same name and Newick text collide on purpose, so re-ingesting a tree
// updates it in place rather than duplicating it.
func TreeID(name, newick string) string {
	h := xxhash.New()
	h.WriteString(name)
	h.WriteString("\x00")
	h.WriteString(newick)
	return hexString(h.Sum64())
}

func hexString(v uint64) string {
	const digits = "0123456789abcdef"
	b := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		b[i] = digits[v&0xf]
		v >>= 4
	}
	return string(b)
}

// IngestTree parses newick, builds its node graph and fingerprint, and
// inserts the resulting Tree and Nodes into the corpus: parse, build
// the graph, fingerprint, then store. Ingestion is all-or-nothing: a
// parse failure leaves the corpus unchanged.
func (c *Corpus) IngestTree(name, newick string, metadata map[string]string) (*Tree, error) {
	clade, err := ParseNewick(newick)
	if err != nil {
		return nil, err
	}

	id := TreeID(name, newick)
	nodes, numLeaves, numNodes := BuildGraph(id, clade)
	fp := Fingerprint(clade, true)

	t := &Tree{
		ID:          id,
		Name:        name,
		Newick:      newick,
		Fingerprint: fp,
		NumLeaves:   numLeaves,
		NumNodes:    numNodes,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.Insert(t, nodes); err != nil {
		return nil, err
	}
	return t, nil
}

// Insert adds a tree and its nodes to the corpus as a single atomic unit,
// replacing any existing tree with the same ID. No partial mutation is
// observable: this call either commits the whole bundle or leaves the
// corpus untouched.
func (c *Corpus) Insert(t *Tree, nodes []*Node) error {
	if len(t.Fingerprint) != FingerprintDim {
		return invalidArgumentf("fingerprint must have %d dimensions", FingerprintDim)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.trees[t.ID]; dup {
		for id, n := range c.nodes {
			if n.TreeID == t.ID {
				delete(c.nodes, id)
			}
		}
	} else {
		c.order = append(c.order, t.ID)
	}

	c.trees[t.ID] = t
	for _, n := range nodes {
		c.nodes[n.ID] = n
	}
	return nil
}

// GetTree returns the tree with the given id, or an error wrapping
// ErrNotFound.
func (c *Corpus) GetTree(id string) (*Tree, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.trees[id]
	if !ok {
		return nil, notFoundf("tree %q", id)
	}
	return t, nil
}

// ListTrees returns up to limit trees in insertion order. limit <= 0 means
// no bound.
func (c *Corpus) ListTrees(limit int) []*Tree {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Tree, 0, n)
	for _, id := range c.order[:n] {
		out = append(out, c.trees[id])
	}
	return out
}

// GetNode returns the node with the given id, or an error wrapping
// ErrNotFound.
func (c *Corpus) GetNode(id string) (*Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.nodes[id]
	if !ok {
		return nil, notFoundf("node %q", id)
	}
	return n, nil
}

// NodesOf returns every node belonging to treeID, in no particular order.
func (c *Corpus) NodesOf(treeID string) []*Node {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Node
	for _, n := range c.nodes {
		if n.TreeID == treeID {
			out = append(out, n)
		}
	}
	return out
}

// Root returns the root node of treeID: the one node with no parent.
func (c *Corpus) Root(treeID string) (*Node, error) {
	for _, n := range c.NodesOf(treeID) {
		if n.ParentID == "" {
			return n, nil
		}
	}
	return nil, notFoundf("root of tree %q", treeID)
}

// Search returns the up to k trees whose stored fingerprint is most
// cosine-similar to query, descending by score and tie-broken by
// insertion order. query is expected to already be L2-normalised, as
// Fingerprint produces by default; similarity then reduces to a dot
// product. The scan observes a single consistent snapshot of the corpus.
func (c *Corpus) Search(query [FingerprintDim]float64, k int) []SearchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if k <= 0 {
		return nil
	}

	results := make([]SearchResult, 0, len(c.order))
	for _, id := range c.order {
		t := c.trees[id]
		dot := floats.Dot(query[:], t.Fingerprint[:])
		score := clampFloat(dot, 0, 1)
		results = append(results, SearchResult{TreeID: id, Score: score})
	}

	pos := make(map[string]int, len(c.order))
	for i, id := range c.order {
		pos[id] = i
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return pos[results[i].TreeID] < pos[results[j].TreeID]
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}

// Delete removes treeID and all of its nodes from the corpus, returning
// the number of trees removed (0 or 1).
func (c *Corpus) Delete(treeID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteLocked(treeID)
}

func (c *Corpus) deleteLocked(treeID string) int {
	if _, ok := c.trees[treeID]; !ok {
		return 0
	}
	delete(c.trees, treeID)
	for id, n := range c.nodes {
		if n.TreeID == treeID {
			delete(c.nodes, id)
		}
	}
	for i, id := range c.order {
		if id == treeID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return 1
}
