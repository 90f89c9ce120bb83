// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lca implements a command to print the lowest common ancestor
// of two nodes.
package lca

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: "lca [--trees <file>] [--nodes <file>] <tree-id> <node-a> <node-b>",
	Short: "print the lowest common ancestor of two nodes",
	Long: `
Command lca finds the deepest node of <tree-id> that is an ancestor of
(or equal to) both <node-a> and <node-b>, and prints its id, label and
depth. If either node is absent from the tree, it prints "not found".
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
	if len(args) != 3 {
		return c.UsageError("expecting a tree id and two node ids")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	n, ok, err := corpus.LCA(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.Stdout(), "not found")
		return nil
	}

	fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\n", n.ID, n.Label, n.Depth)
	return nil
}
