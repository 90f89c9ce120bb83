// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ancestors implements a command to print the ancestors of a
// node, from its parent up to the root of its tree.
package ancestors

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: `ancestors [--trees <file>] [--nodes <file>] [--max-depth <n>]
	<tree-id> <node-id>`,
	Short: "print the ancestors of a node, parent first",
	Long: `
Command ancestors walks the parent links of <node-id> in <tree-id> and
prints them in order, immediate parent first and the root last.

Use --max-depth to truncate the list to that many entries, counted from
the node's end; by default the whole path to the root is printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var maxDepth int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().IntVar(&maxDepth, "max-depth", -1, "")
}

func run(c *command.Command, args []string) error {
	if len(args) != 2 {
		return c.UsageError("expecting a tree id and a node id")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	path, pathLength, err := corpus.Ancestors(args[0], args[1], maxDepth)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "# path-length\t%d\n", pathLength)
	for _, n := range path {
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\n", n.ID, n.Label, n.Depth)
	}
	return nil
}
