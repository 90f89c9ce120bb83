// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package explain implements a command to break down the similarity
// between a query tree and a stored tree into per-category scores and
// reasons.
package explain

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/textinput"
)

var Command = &command.Command{
	Usage: `explain [--trees <file>] [--nodes <file>]
	<query-newick-file> <result-tree-id>`,
	Short: "explain the similarity between a query tree and a stored tree",
	Long: `
Command explain parses the newick tree in <query-newick-file> (use "-"
for the standard input) and the tree stored under <result-tree-id>, and
prints the overall similarity score, the per-category score breakdown,
and a short ordered list of textual reasons.
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
	if len(args) != 2 {
		return c.UsageError("expecting a query newick file and a result tree id")
	}

	query, err := textinput.Read(c.Stdin(), args[0])
	if err != nil {
		return err
	}

	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}
	result, err := corpus.GetTree(args[1])
	if err != nil {
		return err
	}

	ex, err := phylofinger.Explain(query, result.Newick)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "overall\t%.2f\n", ex.Overall)
	for _, f := range ex.Features {
		fmt.Fprintf(c.Stdout(), "feature\t%s\t%.4f\t%.2f\n", f.Category, f.Score, f.Weight)
	}
	for _, r := range ex.Reasons {
		fmt.Fprintf(c.Stdout(), "reason\t%s\t%s\t%s\n", r.Type, r.Category, r.Text)
	}
	return nil
}
