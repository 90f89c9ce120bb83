// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package related implements a command to print the leaves related to a
// node within a given edge distance.
package related

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: `related [--trees <file>] [--nodes <file>] [--max-distance <n>]
	<tree-id> <node-id>`,
	Short: "print the leaves related to a node",
	Long: `
Command related runs an undirected breadth-first search over parent and
child edges starting at <node-id> in <tree-id>, and prints every leaf
reached (excluding the start node itself), sorted by edge distance
ascending then by summed branch length ascending.

Use --max-distance to bound the search to that many edges; by default
the whole tree is searched.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var maxDistance int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().IntVar(&maxDistance, "max-distance", -1, "")
}

func run(c *command.Command, args []string) error {
	if len(args) != 2 {
		return c.UsageError("expecting a tree id and a node id")
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	related, err := corpus.Related(args[0], args[1], maxDistance)
	if err != nil {
		return err
	}

	for _, r := range related {
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\t%g\n", r.NodeID, r.SequenceID, r.EdgeDistance, r.PathLength)
	}
	return nil
}
