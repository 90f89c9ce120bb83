// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Phylofinger is a tool to build and query a phylogenetic tree
// similarity index.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phylofinger/cmd/phylofinger/ancestors"
	"github.com/js-arias/phylofinger/cmd/phylofinger/delete"
	"github.com/js-arias/phylofinger/cmd/phylofinger/descendants"
	"github.com/js-arias/phylofinger/cmd/phylofinger/explain"
	"github.com/js-arias/phylofinger/cmd/phylofinger/ingest"
	"github.com/js-arias/phylofinger/cmd/phylofinger/lca"
	"github.com/js-arias/phylofinger/cmd/phylofinger/list"
	"github.com/js-arias/phylofinger/cmd/phylofinger/nodes"
	"github.com/js-arias/phylofinger/cmd/phylofinger/related"
	"github.com/js-arias/phylofinger/cmd/phylofinger/root"
	"github.com/js-arias/phylofinger/cmd/phylofinger/search"
	"github.com/js-arias/phylofinger/cmd/phylofinger/show"
	"github.com/js-arias/phylofinger/cmd/phylofinger/sim"
	"github.com/js-arias/phylofinger/cmd/phylofinger/subtree"
)

var app = &command.Command{
	Usage: "phylofinger <command> [<argument>...]",
	Short: "a tool to build and query a phylogenetic tree similarity index",
}

func init() {
	app.Add(ingest.Command)
	app.Add(list.Command)
	app.Add(show.Command)
	app.Add(nodes.Command)
	app.Add(root.Command)
	app.Add(search.Command)
	app.Add(explain.Command)
	app.Add(ancestors.Command)
	app.Add(descendants.Command)
	app.Add(lca.Command)
	app.Add(related.Command)
	app.Add(subtree.Command)
	app.Add(delete.Command)
	app.Add(sim.Command)
}

func main() {
	app.Main()
}
