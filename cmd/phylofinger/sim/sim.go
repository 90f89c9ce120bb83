// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to ingest randomly generated trees
// into a corpus snapshot.
package sim

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
	"github.com/js-arias/phylofinger/simulate"
)

var Command = &command.Command{
	Usage: `sim [--trees <file>] [--nodes <file>] [--name <tree-name>]
	[--count <n>] --terms <n>
	[--coalescent <population-size>] [--yule <birth-rate>]`,
	Short: "ingest randomly generated trees",
	Long: `
Command sim creates one or more random binary trees and ingests them into
the corpus snapshot, the same way ingest does for trees read from a file.

The flag --terms is required and gives the number of leaves of each
generated tree.

By default each tree is generated under a pure-birth (Yule) process with
birth rate 1. Use --yule to set a different birth rate, or --coalescent
with a population size to generate a Kingman coalescent tree instead.

By default one tree is created, named "random-tree-0". Use --count to
create more, and --name to change the name prefix.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var nameFlag string
var count int
var numTerms int
var coalescentSize float64
var yuleRate float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().StringVar(&nameFlag, "name", "random-tree", "")
	c.Flags().IntVar(&count, "count", 1, "")
	c.Flags().IntVar(&numTerms, "terms", 0, "")
	c.Flags().Float64Var(&coalescentSize, "coalescent", 0, "")
	c.Flags().Float64Var(&yuleRate, "yule", 0, "")
}

func run(c *command.Command, args []string) error {
	if numTerms < 2 {
		return c.UsageError("flag --terms must be at least 2")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		clade := genClade()
		newick := simulate.Newick(clade)

		name := fmt.Sprintf("%s-%d", nameFlag, i)
		t, err := corpus.IngestTree(name, newick, nil)
		if err != nil {
			return fmt.Errorf("while ingesting generated tree %q: %v", name, err)
		}
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\t%d\n", t.ID, t.Name, t.NumLeaves, t.NumNodes)
	}

	return corpusfile.Save(corpus, treesPath, nodesPath)
}

func genClade() *phylofinger.Clade {
	if coalescentSize > 0 {
		return simulate.Coalescent(coalescentSize, numTerms)
	}
	rate := yuleRate
	if rate <= 0 {
		rate = 1
	}
	return simulate.Yule(rate, numTerms)
}
