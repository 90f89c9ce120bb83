// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger

import (
	"errors"
	"fmt"
)

// The four error kinds that parsing, corpus and traversal operations
// report through. A caller classifies such an error with errors.Is against
// one of these, regardless of which of those operations produced it.
// Errors from reading or writing a TSV snapshot (store.go) wrap none of
// them.
var (
	// ErrParse reports malformed Newick input.
	ErrParse = errors.New("malformed newick input")

	// ErrNotFound reports a missing tree or node id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument reports a request that cannot be satisfied
	// regardless of corpus state, such as a fingerprint of the wrong
	// dimension. A non-positive limit is not reported through it:
	// ListTrees treats it as no bound and Search returns no results.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternal reports an invariant violation found while traversing
	// an otherwise well-formed corpus, such as an orphaned node.
	ErrInternal = errors.New("internal invariant violation")
)

// A ParseError describes a failure to read a Newick string, with the byte
// offset at which the parser gave up.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: offset %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func parseErrorf(offset int, format string, args ...interface{}) error {
	return &ParseError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func invalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

func internalf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInternal}, args...)...)
}
