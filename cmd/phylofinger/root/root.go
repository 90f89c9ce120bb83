// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package root implements a command to print the root node of a stored
// tree.
package root

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: "root [--trees <file>] [--nodes <file>] <tree-id>",
	Short: "print the root node of a stored tree",
	Long: `
Command root reads a corpus snapshot and prints the id, label and number
of children of the root node of <tree-id>: the one node of the tree with
no parent.
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

	n, err := corpus.Root(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\n", n.ID, n.Label, len(n.ChildIDs))
	return nil
}
