// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

var treeHeader = []string{
	"id",
	"name",
	"newick",
	"fingerprint",
	"numleaves",
	"numnodes",
	"createdat",
	"metadata",
}

var nodeHeader = []string{
	"id",
	"tree",
	"label",
	"parent",
	"children",
	"depth",
	"branchlength",
	"isleaf",
}

// WriteTrees encodes every tree in the corpus into a TSV file, in insertion
// order. Metadata is encoded as "key=value" pairs joined by ";"; the
// fingerprint as comma-joined decimal floats.
func (c *Corpus) WriteTrees(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# phylogenetic tree corpus\n")
	fmt.Fprintf(bw, "# written on: %s\n", time.Now().UTC().Format(time.RFC3339))

	tab := csv.NewWriter(bw)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(treeHeader); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	for _, id := range c.order {
		t := c.trees[id]
		row := []string{
			t.ID,
			t.Name,
			t.Newick,
			joinFingerprint(t.Fingerprint),
			strconv.Itoa(t.NumLeaves),
			strconv.Itoa(t.NumNodes),
			t.CreatedAt.Format(time.RFC3339),
			joinMetadata(t.Metadata),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("while writing tree %q: %v", t.ID, err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return bw.Flush()
}

// WriteNodes encodes every node in the corpus into a TSV file. Nodes are
// grouped by tree, following tree insertion order, and within a tree are
// written in no particular order (ReadCorpus reconstructs links from ids
// alone, so row order does not matter on read).
func (c *Corpus) WriteNodes(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# phylogenetic tree corpus: nodes\n")

	tab := csv.NewWriter(bw)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(nodeHeader); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	for _, treeID := range c.order {
		for _, n := range c.nodes {
			if n.TreeID != treeID {
				continue
			}
			row := []string{
				n.ID,
				n.TreeID,
				n.Label,
				n.ParentID,
				strings.Join(n.ChildIDs, ","),
				strconv.Itoa(n.Depth),
				strconv.FormatFloat(n.BranchLength, 'g', -1, 64),
				strconv.FormatBool(n.IsLeaf),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("while writing node %q: %v", n.ID, err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return bw.Flush()
}

// ReadCorpus rebuilds a Corpus from a tree snapshot and a node snapshot
// produced by WriteTrees and WriteNodes. Trees are inserted in the row
// order found in treesR, which becomes the corpus's insertion order.
func ReadCorpus(treesR, nodesR io.Reader) (*Corpus, error) {
	c := NewCorpus()

	treeTab := csv.NewReader(treesR)
	treeTab.Comma = '\t'
	treeTab.Comment = '#'

	head, err := treeTab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading tree header: %v", err)
	}
	tf, err := fieldIndex(head, treeHeader)
	if err != nil {
		return nil, err
	}

	for {
		row, err := treeTab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := treeTab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on tree row %d: %v", ln, err)
		}

		fp, err := parseFingerprint(row[tf["fingerprint"]])
		if err != nil {
			return nil, fmt.Errorf("on tree row %d: field %q: %v", ln, "fingerprint", err)
		}
		numLeaves, err := strconv.Atoi(row[tf["numleaves"]])
		if err != nil {
			return nil, fmt.Errorf("on tree row %d: field %q: %v", ln, "numleaves", err)
		}
		numNodes, err := strconv.Atoi(row[tf["numnodes"]])
		if err != nil {
			return nil, fmt.Errorf("on tree row %d: field %q: %v", ln, "numnodes", err)
		}
		createdAt, err := time.Parse(time.RFC3339, row[tf["createdat"]])
		if err != nil {
			return nil, fmt.Errorf("on tree row %d: field %q: %v", ln, "createdat", err)
		}

		t := &Tree{
			ID:          row[tf["id"]],
			Name:        row[tf["name"]],
			Newick:      row[tf["newick"]],
			Fingerprint: fp,
			NumLeaves:   numLeaves,
			NumNodes:    numNodes,
			Metadata:    splitMetadata(row[tf["metadata"]]),
			CreatedAt:   createdAt,
		}
		c.trees[t.ID] = t
		c.order = append(c.order, t.ID)
	}

	nodeTab := csv.NewReader(nodesR)
	nodeTab.Comma = '\t'
	nodeTab.Comment = '#'

	head, err = nodeTab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading node header: %v", err)
	}
	nf, err := fieldIndex(head, nodeHeader)
	if err != nil {
		return nil, err
	}

	for {
		row, err := nodeTab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := nodeTab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on node row %d: %v", ln, err)
		}

		depth, err := strconv.Atoi(row[nf["depth"]])
		if err != nil {
			return nil, fmt.Errorf("on node row %d: field %q: %v", ln, "depth", err)
		}
		bl, err := strconv.ParseFloat(row[nf["branchlength"]], 64)
		if err != nil {
			return nil, fmt.Errorf("on node row %d: field %q: %v", ln, "branchlength", err)
		}
		isLeaf, err := strconv.ParseBool(row[nf["isleaf"]])
		if err != nil {
			return nil, fmt.Errorf("on node row %d: field %q: %v", ln, "isleaf", err)
		}

		var children []string
		if s := row[nf["children"]]; s != "" {
			children = strings.Split(s, ",")
		}

		n := &Node{
			ID:           row[nf["id"]],
			TreeID:       row[nf["tree"]],
			Label:        row[nf["label"]],
			ParentID:     row[nf["parent"]],
			ChildIDs:     children,
			Depth:        depth,
			BranchLength: bl,
			IsLeaf:       isLeaf,
		}
		c.nodes[n.ID] = n
	}

	return c, nil
}

func fieldIndex(head, want []string) (map[string]int, error) {
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(h)] = i
	}
	for _, h := range want {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}
	return fields, nil
}

func joinFingerprint(fp [FingerprintDim]float64) string {
	parts := make([]string, FingerprintDim)
	for i, v := range fp {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func parseFingerprint(s string) ([FingerprintDim]float64, error) {
	var fp [FingerprintDim]float64
	parts := strings.Split(s, ",")
	if len(parts) != FingerprintDim {
		return fp, fmt.Errorf("expecting %d comma-separated values, got %d", FingerprintDim, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fp, err
		}
		fp[i] = v
	}
	return fp, nil
}

func joinMetadata(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return strings.Join(parts, ";")
}

func splitMetadata(s string) map[string]string {
	if s == "" {
		return nil
	}
	m := make(map[string]string)
	for _, kv := range strings.Split(s, ";") {
		if kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

