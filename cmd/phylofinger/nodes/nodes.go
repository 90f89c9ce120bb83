// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nodes implements a command to print the nodes of a stored
// tree.
package nodes

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: "nodes [--trees <file>] [--nodes <file>] [--leaves-only] <tree-id>",
	Short: "print the nodes of a stored tree",
	Long: `
Command nodes reads a corpus snapshot and prints, one per line, every
node of the tree with the given id: its id, label, parent id, depth,
branch length and child ids.

Use --leaves-only to print only the terminal nodes.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var leavesOnly bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().BoolVar(&leavesOnly, "leaves-only", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) != 1 {
		return c.UsageError("expecting a single tree id")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	ns := corpus.NodesOf(args[0])
	if len(ns) == 0 {
		return fmt.Errorf("tree %q not found", args[0])
	}

	for _, n := range ns {
		if leavesOnly && !n.IsLeaf {
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%s\t%d\t%g\t%s\n",
			n.ID, n.Label, n.ParentID, n.Depth, n.BranchLength, strings.Join(n.ChildIDs, ","))
	}
	return nil
}
