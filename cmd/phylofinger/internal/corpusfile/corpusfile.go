// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package corpusfile loads and saves a phylofinger.Corpus from the pair of
// TSV snapshot files every subcommand of this tool reads and writes.
package corpusfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/phylofinger"
)

// Load reads treesPath and nodesPath into a new Corpus. A missing
// treesPath is not an error: it yields an empty corpus, so a first
// ingest can run against files that do not exist yet.
func Load(treesPath, nodesPath string) (*phylofinger.Corpus, error) {
	tf, err := os.Open(treesPath)
	if errors.Is(err, os.ErrNotExist) {
		return phylofinger.NewCorpus(), nil
	}
	if err != nil {
		return nil, err
	}
	defer tf.Close()

	nf, err := os.Open(nodesPath)
	if err != nil {
		return nil, fmt.Errorf("while reading %q: %v", nodesPath, err)
	}
	defer nf.Close()

	c, err := phylofinger.ReadCorpus(tf, nf)
	if err != nil {
		return nil, fmt.Errorf("while reading %q and %q: %v", treesPath, nodesPath, err)
	}
	return c, nil
}

// Save writes c's trees and nodes to treesPath and nodesPath, replacing
// any existing content.
func Save(c *phylofinger.Corpus, treesPath, nodesPath string) (err error) {
	tf, err := os.Create(treesPath)
	if err != nil {
		return err
	}
	defer func() {
		if e := tf.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if err := c.WriteTrees(tf); err != nil {
		return fmt.Errorf("while writing %q: %v", treesPath, err)
	}

	nf, err := os.Create(nodesPath)
	if err != nil {
		return err
	}
	defer func() {
		if e := nf.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if err := c.WriteNodes(nf); err != nil {
		return fmt.Errorf("while writing %q: %v", nodesPath, err)
	}
	return nil
}
