// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package search implements a command to find the trees in a corpus
// snapshot most similar to a query tree.
package search

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/textinput"
)

var Command = &command.Command{
	Usage: `search [--trees <file>] [--nodes <file>] [--k <n>]
	[<newick-file>]`,
	Short: "find the trees most similar to a query tree",
	Long: `
Command search parses a query newick tree, computes its fingerprint, and
prints the up to --k (default 10) stored trees whose fingerprint is most
cosine-similar to it, one per line, descending by score.

The query tree is read from <newick-file>, or from the standard input if
no file is given.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var k int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().IntVar(&k, "k", 10, "")
}

func run(c *command.Command, args []string) error {
	path := "-"
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return c.UsageError("expecting a single newick file")
	}

	newick, err := textinput.Read(c.Stdin(), path)
	if err != nil {
		return err
	}
	clade, err := phylofinger.ParseNewick(newick)
	if err != nil {
		return fmt.Errorf("while parsing %q: %v", path, err)
	}
	query := phylofinger.Fingerprint(clade, true)

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	for _, r := range corpus.Search(query, k) {
		fmt.Fprintf(c.Stdout(), "%s\t%.6f\n", r.TreeID, r.Score)
	}
	return nil
}
