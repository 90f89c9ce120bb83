// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package simulate creates random trees for exercising the corpus and its
// similarity search without requiring a real dataset.
package simulate

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/js-arias/phylofinger"
	"gonum.org/v1/gonum/stat/distuv"
)

// Coalescent builds a random binary tree with terms leaves using the
// Kingman coalescence with a (haploid) population size of n.
// See Felsenstein J. (2004) "Inferring Phylogenies", Sinauer, p.456.
// Coalescent panics if terms < 2.
func Coalescent(n float64, terms int) *phylofinger.Clade {
	return merge(terms, func(k int) float64 {
		rate := float64(k*(k-1)) / (2 * n)
		return distuv.Exponential{Rate: rate}.Rand()
	})
}

// Yule builds a random binary tree with terms leaves under a pure-birth
// process with the given birth rate: every active lineage is equally
// likely to split next, so the waiting time before the next split is
// exponential with rate k*birthRate for k active lineages.
// Yule panics if terms < 2.
func Yule(birthRate float64, terms int) *phylofinger.Clade {
	return merge(terms, func(k int) float64 {
		return distuv.Exponential{Rate: float64(k) * birthRate}.Rand()
	})
}

// merge is the shared engine behind Coalescent and Yule: starting from
// terms independent leaves, it repeatedly draws a waiting time from wait
// (given the current number of active lineages), advances every active
// lineage's branch length by that amount, and merges two lineages picked
// uniformly at random into a new internal node. The last lineage standing
// is the root.
func merge(terms int, wait func(active int) float64) *phylofinger.Clade {
	if terms < 2 {
		panic("expecting more than two terminals")
	}

	active := make([]*phylofinger.Clade, terms)
	for i := range active {
		active[i] = &phylofinger.Clade{Label: fmt.Sprintf("term%d", i)}
	}

	for k := terms; k > 1; k-- {
		dt := wait(k)
		for _, c := range active {
			c.BranchLength += dt
			c.HasLength = true
		}

		i := rand.IntN(len(active))
		j := rand.IntN(len(active) - 1)
		if j >= i {
			j++
		}
		parent := &phylofinger.Clade{Children: []*phylofinger.Clade{active[i], active[j]}}

		next := make([]*phylofinger.Clade, 0, len(active)-1)
		for idx, c := range active {
			if idx != i && idx != j {
				next = append(next, c)
			}
		}
		active = append(next, parent)
	}

	return active[0]
}

// Newick renders c, and every branch length it carries, as a Newick
// string terminated by ";".
func Newick(c *phylofinger.Clade) string {
	return render(c) + ";"
}

func render(c *phylofinger.Clade) string {
	var s string
	if c.IsLeaf() {
		s = c.Label
	} else {
		parts := make([]string, len(c.Children))
		for i, child := range c.Children {
			parts[i] = render(child)
		}
		s = "(" + strings.Join(parts, ",") + ")"
	}
	if c.HasLength {
		s += ":" + strconv.FormatFloat(c.BranchLength, 'g', -1, 64)
	}
	return s
}
