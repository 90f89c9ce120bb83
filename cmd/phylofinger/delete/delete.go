// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package delete implements a command to remove a tree from a corpus
// snapshot.
package delete

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: "delete [--trees <file>] [--nodes <file>] <tree-id>",
	Short: "remove a tree from the corpus",
	Long: `
Command delete removes the tree with the given id, and all of its nodes,
from the corpus snapshot, and writes the result back.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
}

func run(c *command.Command, args []string) error {
	if len(args) != 1 {
		return c.UsageError("expecting a single tree id")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	n := corpus.Delete(args[0])
	fmt.Fprintf(c.Stdout(), "%d\n", n)

	return corpusfile.Save(corpus, treesPath, nodesPath)
}
