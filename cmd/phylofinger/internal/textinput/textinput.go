// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package textinput reads a single text argument from a named file, or
// from the standard input when the path is "-" or absent.
package textinput

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Read returns the trimmed contents of path, or of stdin when path is "-".
func Read(stdin io.Reader, path string) (string, error) {
	r := stdin
	name := "stdin"
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
		name = path
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("while reading %q: %v", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}
