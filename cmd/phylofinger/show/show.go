// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package show implements a command to print the stored newick text of a
// tree.
package show

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
)

var Command = &command.Command{
	Usage: "show [--trees <file>] [--nodes <file>] <tree-id>",
	Short: "print the newick text of a stored tree",
	Long: `
Command show reads a corpus snapshot and prints the original newick text
of the tree with the given id, verbatim as it was ingested.
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
	t, err := corpus.GetTree(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "%s\n", t.Newick)
	return nil
}
