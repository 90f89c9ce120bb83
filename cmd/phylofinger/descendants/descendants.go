// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package descendants implements a command to print the descendants of
// a node.
package descendants

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: `descendants [--trees <file>] [--nodes <file>] [--max-depth <n>]
	[--leaves-only] <tree-id> <node-id>`,
	Short: "print the descendants of a node",
	Long: `
Command descendants runs a breadth-first search from <node-id> in
<tree-id>, not including the node itself, and prints every node reached.

Use --max-depth to bound the search to that many edges from the start
node; by default the whole subtree is visited. Use --leaves-only to print
only the terminal nodes reached.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var maxDepth int
var leavesOnly bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().IntVar(&maxDepth, "max-depth", -1, "")
	c.Flags().BoolVar(&leavesOnly, "leaves-only", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) != 2 {
		return c.UsageError("expecting a tree id and a node id")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	found, total, err := corpus.Descendants(args[0], args[1], maxDepth, leavesOnly)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "# total\t%d\n", total)
	for _, n := range found {
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\n", n.ID, n.Label, n.Depth)
	}
	return nil
}
