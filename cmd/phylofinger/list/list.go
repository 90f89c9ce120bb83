// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print the trees stored in a
// corpus snapshot.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: "list [--trees <file>] [--nodes <file>] [--limit <n>]",
	Short: "print the trees stored in the corpus",
	Long: `
Command list reads a corpus snapshot and prints, one per line, the id,
name, leaf count and node count of every stored tree, in insertion order.

Use --limit to bound the number of trees printed; by default every tree
is listed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var limit int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().IntVar(&limit, "limit", 0, "")
}

func run(c *command.Command, args []string) error {
	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	for _, t := range corpus.ListTrees(limit) {
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\t%d\n", t.ID, t.Name, t.NumLeaves, t.NumNodes)
	}
	return nil
}
