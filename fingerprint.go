// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FingerprintDim is the dimension of every fingerprint vector produced by
// Fingerprint.
const FingerprintDim = 256

// Fingerprint feature-group boundaries: each group occupies a fixed slice
// of the 256-dimensional vector.
const (
	groupBasicStats     = 0
	groupLeafHistogram  = 32
	groupSubtreeSizes   = 64
	groupSplitPatterns  = 96
	groupTopologyHash   = 160
	groupBranchLengths  = 224
	maxSubtreeSizeSlots = 32
	maxSplitPairs       = 32
	topologyHashBits    = 64
)

// Fingerprint is a pure function from a parsed Newick tree to a
// 256-dimensional feature vector summarising topology, depth, balance and
// branch lengths. If normalize is true, the vector is scaled to unit L2
// norm (the form the corpus stores and searches); otherwise the raw,
// unnormalised vector is returned. A tree with fewer than two leaves is
// degenerate and always yields the all-zero vector.
func Fingerprint(root *Clade, normalize bool) [FingerprintDim]float64 {
	var v [FingerprintDim]float64

	var leafDepths []int
	var internalSizes []int
	var splitPairs [][2]float64
	var branchLengths []float64

	var signature func(c *Clade, depth int) (sig string, size int)
	signature = func(c *Clade, depth int) (string, int) {
		if c.HasLength && c.BranchLength > 0 {
			branchLengths = append(branchLengths, c.BranchLength)
		}
		if c.IsLeaf() {
			leafDepths = append(leafDepths, depth)
			return "L", 1
		}

		// Reserve this node's split-pattern slot before recursing, so slots
		// follow pre-order.
		pairIdx := -1
		if len(splitPairs) < maxSplitPairs && len(c.Children) >= 2 {
			pairIdx = len(splitPairs)
			splitPairs = append(splitPairs, [2]float64{})
		}

		childSigs := make([]string, len(c.Children))
		size := 0
		childSizes := make([]int, len(c.Children))
		for i, child := range c.Children {
			sig, sz := signature(child, depth+1)
			childSigs[i] = sig
			childSizes[i] = sz
			size += sz
		}
		internalSizes = append(internalSizes, size)

		if pairIdx >= 0 {
			l, r := childSizes[0], size-childSizes[0]
			total := float64(l + r)
			lo, hi := float64(l)/total, float64(r)/total
			if lo > hi {
				lo, hi = hi, lo
			}
			splitPairs[pairIdx] = [2]float64{lo, hi}
		}

		sort.Strings(childSigs)
		return "(" + strings.Join(childSigs, ",") + ")", size
	}

	rootSig, nLeaves := signature(root, 0)
	nInternal := len(internalSizes)
	nTotal := nLeaves + nInternal

	if nLeaves < 2 {
		return v
	}

	// Group 1: basic stats.
	v[groupBasicStats+0] = float64(nLeaves) / 100
	v[groupBasicStats+1] = float64(nInternal) / 100
	v[groupBasicStats+2] = float64(nTotal) / 100
	maxDepth := 0
	for _, d := range leafDepths {
		if d > maxDepth {
			maxDepth = d
		}
	}
	v[groupBasicStats+3] = float64(maxDepth) / 20
	v[groupBasicStats+4] = stat.Mean(intsToFloats(leafDepths), nil) / 20

	// Group 2: leaf-depth histogram. maxDepth > 0 always holds here: a
	// tree with nLeaves >= 2 has at least one branching node above its
	// leaves.
	for _, d := range leafDepths {
		idx := clamp(int(float64(d)/float64(maxDepth)*31), 0, 31)
		v[groupLeafHistogram+idx] += 1 / float64(nLeaves)
	}

	// Group 3: subtree sizes, ascending, first 32.
	sort.Ints(internalSizes)
	denom := float64(nLeaves)
	for i := 0; i < len(internalSizes) && i < maxSubtreeSizeSlots; i++ {
		v[groupSubtreeSizes+i] = float64(internalSizes[i]) / denom
	}

	// Group 4: split patterns, sorted (min, max) pairs, pre-order.
	for i, pair := range splitPairs {
		v[groupSplitPatterns+2*i] = pair[0]
		v[groupSplitPatterns+2*i+1] = pair[1]
	}

	// Group 5: topology hash.
	h := xxhash.Sum64String(rootSig)
	for i := 0; i < topologyHashBits; i++ {
		if (h>>uint(i))&1 == 1 {
			v[groupTopologyHash+i] = 0.5
		}
	}

	// Group 6: branch lengths, over non-zero values only.
	if len(branchLengths) > 0 {
		mean := stat.Mean(branchLengths, nil)
		var stddev float64
		if len(branchLengths) > 1 {
			stddev = stat.StdDev(branchLengths, nil)
		}
		max, min := branchLengths[0], branchLengths[0]
		for _, bl := range branchLengths[1:] {
			if bl > max {
				max = bl
			}
			if bl < min {
				min = bl
			}
		}
		v[groupBranchLengths+0] = 0.1 * mean
		v[groupBranchLengths+1] = 0.1 * stddev
		v[groupBranchLengths+2] = 0.1 * max
		v[groupBranchLengths+3] = 0.1 * min
	}

	if normalize {
		norm := floats.Norm(v[:], 2)
		if norm > 0 {
			for i := range v {
				v[i] /= norm
			}
		}
	}

	return v
}

// CosineSimilarity returns the cosine similarity between two vectors of
// equal length, clamped to [-1, 1]. Both fingerprints stored by the corpus
// are already unit-normalised, so in practice this reduces to a dot
// product (see Corpus.Search in corpus.go).
func CosineSimilarity(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	dot := floats.Dot(a, b)
	cos := dot / (na * nb)
	return clampFloat(cos, -1, 1)
}

func intsToFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
