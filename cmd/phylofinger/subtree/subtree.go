// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package subtree implements a command to print the newick text of the
// clade rooted at a node.
package subtree

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: `subtree [--trees <file>] [--nodes <file>] [--branch-lengths]
	<tree-id> <node-id>`,
	Short: "print the newick text of a subtree",
	Long: `
Command subtree renders the clade rooted at <node-id> in <tree-id> back
to newick text, via a post-order build. Labels are sanitised by removing
the newick delimiter characters and replacing spaces with underscores.

Use --branch-lengths to include each node's stored branch length in the
rendered text.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var branchLengths bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().BoolVar(&branchLengths, "branch-lengths", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) != 2 {
		return c.UsageError("expecting a tree id and a node id")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	newick, _, err := corpus.SubtreeNewick(args[0], args[1], branchLengths)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "%s\n", newick)
	return nil
}
