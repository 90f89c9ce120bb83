// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger_test

import (
	"errors"
	"testing"

	"github.com/js-arias/phylofinger"
)

func TestParseNewickValid(t *testing.T) {
	tests := map[string]struct {
		in        string
		numLeaves int
		maxDepth  int
	}{
		"single leaf": {
			in:        "ant;",
			numLeaves: 1,
			maxDepth:  0,
		},
		"simple cherry": {
			in:        "(ant,bee);",
			numLeaves: 2,
			maxDepth:  1,
		},
		"branch lengths": {
			in:        "(ant:1.5,bee:2.25):0;",
			numLeaves: 2,
			maxDepth:  1,
		},
		"quoted label": {
			in:        "('homo sapiens',bee);",
			numLeaves: 2,
			maxDepth:  1,
		},
		"underscore folds to space": {
			in:        "(homo_sapiens,bee);",
			numLeaves: 2,
			maxDepth:  1,
		},
		"nested polytomy": {
			in:        "((ant,bee,cat),dog);",
			numLeaves: 4,
			maxDepth:  2,
		},
		"whitespace between tokens": {
			in:        "( ant , bee ) ;",
			numLeaves: 2,
			maxDepth:  1,
		},
		"empty internal labels": {
			in:        "((ant,bee),(cat,dog));",
			numLeaves: 4,
			maxDepth:  2,
		},
	}

	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := phylofinger.ParseNewick(p.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.HasLength {
				t.Errorf("root must never carry a branch length")
			}

			nLeaves, maxDepth := countLeaves(c, 0)
			if nLeaves != p.numLeaves {
				t.Errorf("got %d leaves, want %d", nLeaves, p.numLeaves)
			}
			if maxDepth != p.maxDepth {
				t.Errorf("got max depth %d, want %d", maxDepth, p.maxDepth)
			}
		})
	}
}

func countLeaves(c *phylofinger.Clade, depth int) (leaves, maxDepth int) {
	if c.IsLeaf() {
		return 1, depth
	}
	for _, ch := range c.Children {
		l, d := countLeaves(ch, depth+1)
		leaves += l
		if d > maxDepth {
			maxDepth = d
		}
	}
	return leaves, maxDepth
}

func TestParseNewickLabels(t *testing.T) {
	c, err := phylofinger.ParseNewick("(homo_sapiens:1,'pan troglodytes':1);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(c.Children))
	}
	if got := c.Children[0].Label; got != "homo sapiens" {
		t.Errorf("got label %q, want %q", got, "homo sapiens")
	}
	if got := c.Children[1].Label; got != "pan troglodytes" {
		t.Errorf("got label %q, want %q", got, "pan troglodytes")
	}
}

func TestParseNewickErrors(t *testing.T) {
	tests := map[string]string{
		"empty input":          "",
		"unmatched open paren": "(ant,bee;",
		"missing terminator":   "(ant,bee)",
		"trailing garbage":     "(ant,bee);x",
		"bad branch length":    "(ant:x,bee);",
		"negative branch len":  "(ant:-1,bee);",
		"missing comma":        "(ant bee);",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := phylofinger.ParseNewick(in)
			if err == nil {
				t.Fatalf("expected an error for input %q", in)
			}
			if !errors.Is(err, phylofinger.ErrParse) {
				t.Errorf("error %v does not wrap ErrParse", err)
			}
			var pe *phylofinger.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %v is not a *ParseError", err)
			}
		})
	}
}

func TestIsLeaf(t *testing.T) {
	c, err := phylofinger.ParseNewick("(ant,(bee,cat));")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.IsLeaf() {
		t.Errorf("root must not be a leaf")
	}
	if !c.Children[0].IsLeaf() {
		t.Errorf("ant must be a leaf")
	}
	if c.Children[1].IsLeaf() {
		t.Errorf("internal node must not be a leaf")
	}
}
