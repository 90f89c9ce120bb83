// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ingest implements a command to add newick trees to a corpus
// snapshot.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/corpusfile"
	"github.com/js-arias/phylofinger/cmd/phylofinger/internal/textinput"
)

var Command = &command.Command{
	Usage: `ingest [--trees <file>] [--nodes <file>]
	[--name <tree-name>]
	[<newick-file>...]`,
	Short: "ingest newick trees into the corpus",
	Long: `
Command ingest reads one or more files, each containing a single newick
tree (parenthetical format, terminated by ';'), and adds them to the
corpus snapshot: for each tree it parses the newick text, builds the node
graph, computes the 256-dimensional fingerprint, and stores the result.

One or more newick files can be given as arguments. If no file is given a
single tree is read from the standard input.

By default the name of an ingested tree is the base name of its file,
without extension ("stdin" when read from standard input). Use --name to
set an explicit name; when multiple files are ingested together with
--name, a sequential number is appended to keep the names distinct.

The corpus snapshot is two files: --trees (default "trees.tsv") for tree
records and --nodes (default "nodes.tsv") for node records. Both are
created if they do not yet exist; if they do, the new trees are added to
the existing corpus.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treesPath string
var nodesPath string
var nameFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treesPath, "trees", "trees.tsv", "")
	c.Flags().StringVar(&nodesPath, "nodes", "nodes.tsv", "")
	c.Flags().StringVar(&nameFlag, "name", "", "")
}

func run(c *command.Command, args []string) error {
	corpus, err := corpusfile.Load(treesPath, nodesPath)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = append(args, "-")
	}
	for i, path := range args {
		newick, err := textinput.Read(c.Stdin(), path)
		if err != nil {
			return err
		}

		name := nameFromPath(path)
		if nameFlag != "" {
			name = nameFlag
			if len(args) > 1 {
				name = fmt.Sprintf("%s.%d", nameFlag, i)
			}
		}

		t, err := corpus.IngestTree(name, newick, nil)
		if err != nil {
			return fmt.Errorf("while ingesting %q: %v", path, err)
		}
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\t%d\n", t.ID, t.Name, t.NumLeaves, t.NumNodes)
	}

	return corpusfile.Save(corpus, treesPath, nodesPath)
}

func nameFromPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
