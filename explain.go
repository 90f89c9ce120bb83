// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// A FeatureScore is the contribution of one category to an Explanation's
// overall score.
type FeatureScore struct {
	Category string
	Score    float64 // in [0, 1]
	Weight   float64
}

// A Reason is one human-readable line of an Explanation, classified by
// Type so a caller can render summaries, matches, similarities and
// differences distinctly.
type Reason struct {
	Type     string // "summary", "match", "similar", "different"
	Category string
	Text     string
}

// An Explanation decomposes the similarity between two trees into
// per-category scores, an overall scalar in [0, 100], and an ordered list
// of reasons.
type Explanation struct {
	Overall  float64
	Features []FeatureScore
	Reasons  []Reason
}

// categoryWeights gives the weight of each of the five feature categories
// in the overall score.
var categoryWeights = map[string]float64{
	"size":     0.2,
	"depth":    0.2,
	"balance":  0.2,
	"topology": 0.3,
	"branches": 0.1,
}

// treeMetrics holds the per-tree summary statistics the explanation engine
// compares.
type treeMetrics struct {
	nLeaves, nInternal int
	maxDepth, minDepth int
	avgDepth           float64
	depthVariance      float64
	avgBalance         float64
	branchMean         float64
	branchTotal        float64
	hasBranches        bool
	signature          string
	leafDepths         []int
}

func measure(root *Clade) treeMetrics {
	var m treeMetrics
	var leafDepths []int
	var branchLengths []float64
	var balanceRatios []float64

	var walk func(c *Clade, depth int) (sig string, size int)
	walk = func(c *Clade, depth int) (string, int) {
		if c.HasLength && c.BranchLength > 0 {
			branchLengths = append(branchLengths, c.BranchLength)
		}
		if c.IsLeaf() {
			leafDepths = append(leafDepths, depth)
			return "L", 1
		}
		m.nInternal++
		sigs := make([]string, len(c.Children))
		sizes := make([]int, len(c.Children))
		total := 0
		for i, child := range c.Children {
			sig, sz := walk(child, depth+1)
			sigs[i] = sig
			sizes[i] = sz
			total += sz
		}
		if len(sizes) >= 2 {
			minC, maxC := sizes[0], sizes[0]
			for _, sz := range sizes[1:] {
				if sz < minC {
					minC = sz
				}
				if sz > maxC {
					maxC = sz
				}
			}
			if maxC > 0 {
				balanceRatios = append(balanceRatios, float64(minC)/float64(maxC))
			}
		}
		sort.Strings(sigs)
		return "(" + strings.Join(sigs, ",") + ")", total
	}

	sig, nLeaves := walk(root, 0)
	m.nLeaves = nLeaves
	m.signature = sig
	m.leafDepths = append([]int(nil), leafDepths...)
	sort.Ints(m.leafDepths)

	for _, d := range leafDepths {
		if d > m.maxDepth {
			m.maxDepth = d
		}
	}
	m.minDepth = m.maxDepth
	for _, d := range leafDepths {
		if d < m.minDepth {
			m.minDepth = d
		}
	}
	if len(leafDepths) > 0 {
		m.avgDepth = stat.Mean(intsToFloats(leafDepths), nil)
	}
	m.depthVariance = float64(m.maxDepth - m.minDepth)

	if len(balanceRatios) > 0 {
		m.avgBalance = stat.Mean(balanceRatios, nil)
	}

	if len(branchLengths) > 0 {
		m.hasBranches = true
		m.branchMean = stat.Mean(branchLengths, nil)
		for _, bl := range branchLengths {
			m.branchTotal += bl
		}
	}

	return m
}

// Explain parses queryNewick and resultNewick and produces the
// feature-category breakdown of their similarity.
func Explain(queryNewick, resultNewick string) (*Explanation, error) {
	qc, err := ParseNewick(queryNewick)
	if err != nil {
		return nil, err
	}
	rc, err := ParseNewick(resultNewick)
	if err != nil {
		return nil, err
	}

	q := measure(qc)
	r := measure(rc)

	size := (ratio(float64(q.nLeaves), float64(r.nLeaves)) + ratio(float64(q.nInternal), float64(r.nInternal))) / 2

	depth := (closeness(float64(q.maxDepth), float64(r.maxDepth)) +
		closeness(q.avgDepth, r.avgDepth) +
		closeness(q.depthVariance, r.depthVariance)) / 3

	balance := 1 - absFloat(q.avgBalance-r.avgBalance)
	if balance < 0 {
		balance = 0
	}

	topology := topologyScore(q, r)
	branches := branchScore(q, r)

	scores := map[string]float64{
		"size":     size,
		"depth":    depth,
		"balance":  balance,
		"topology": topology,
		"branches": branches,
	}

	overall := 0.0
	order := []string{"size", "depth", "balance", "topology", "branches"}
	features := make([]FeatureScore, 0, len(order))
	for _, cat := range order {
		w := categoryWeights[cat]
		overall += w * scores[cat]
		features = append(features, FeatureScore{Category: cat, Score: scores[cat], Weight: w})
	}

	ex := &Explanation{
		Overall:  overall * 100,
		Features: features,
		Reasons:  buildReasons(overall, scores, q, r),
	}
	return ex, nil
}

func ratio(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	return lo / hi
}

func closeness(a, b float64) float64 {
	d := absFloat(a - b)
	m := a
	if b > m {
		m = b
	}
	if m == 0 {
		return 1
	}
	return 1 - d/m
}

func topologyScore(q, r treeMetrics) float64 {
	if q.signature == r.signature {
		return 1
	}
	l := len(q.leafDepths)
	if len(r.leafDepths) > l {
		l = len(r.leafDepths)
	}
	if l == 0 {
		return 1
	}
	qd := padInts(q.leafDepths, l)
	rd := padInts(r.leafDepths, l)
	maxD := q.maxDepth
	if r.maxDepth > maxD {
		maxD = r.maxDepth
	}
	if maxD < 1 {
		maxD = 1
	}
	var sum float64
	for i := 0; i < l; i++ {
		sum += absFloat(float64(qd[i] - rd[i]))
	}
	score := 1 - sum/(float64(l)*float64(maxD))
	if score < 0 {
		score = 0
	}
	return score
}

func padInts(in []int, l int) []int {
	out := make([]int, l)
	copy(out, in)
	return out
}

func branchScore(q, r treeMetrics) float64 {
	if !q.hasBranches || !r.hasBranches {
		return 0.5
	}
	denom := q.branchMean
	if r.branchMean > denom {
		denom = r.branchMean
	}
	if denom < 0.001 {
		denom = 0.001
	}
	score := 1 - absFloat(q.branchMean-r.branchMean)/denom
	if score < 0 {
		score = 0
	}
	return score
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func buildReasons(overall float64, scores map[string]float64, q, r treeMetrics) []Reason {
	var reasons []Reason

	level := "limited"
	switch {
	case overall >= 0.8:
		level = "strong"
	case overall >= 0.6:
		level = "moderate"
	case overall >= 0.4:
		level = "some"
	}
	reasons = append(reasons, Reason{
		Type: "summary", Category: "overall",
		Text: fmt.Sprintf("%s overall similarity (%.0f%%)", level, overall*100),
	})

	if q.nLeaves == r.nLeaves {
		reasons = append(reasons, Reason{Type: "match", Category: "size", Text: fmt.Sprintf("identical leaf count (%d)", q.nLeaves)})
	}
	if q.signature == r.signature {
		reasons = append(reasons, Reason{Type: "match", Category: "topology", Text: "identical canonical topology"})
	}

	order := []string{"size", "depth", "balance", "topology", "branches"}
	for _, cat := range order {
		s := scores[cat]
		switch {
		case s >= 0.8:
			reasons = append(reasons, Reason{Type: "similar", Category: cat, Text: fmt.Sprintf("%s is highly similar (%.0f%%)", cat, s*100)})
		case s >= 0.7:
			reasons = append(reasons, Reason{Type: "similar", Category: cat, Text: fmt.Sprintf("%s is fairly similar (%.0f%%)", cat, s*100)})
		case s >= 0.5:
			reasons = append(reasons, Reason{Type: "similar", Category: cat, Text: fmt.Sprintf("%s is moderately similar (%.0f%%)", cat, s*100)})
		default:
			reasons = append(reasons, Reason{Type: "different", Category: cat, Text: fmt.Sprintf("%s differs substantially (%.0f%%)", cat, s*100)})
		}
	}

	return reasons
}
