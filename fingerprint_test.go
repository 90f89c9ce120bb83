// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofinger_test

import (
	"math"
	"testing"

	"github.com/js-arias/phylofinger"
)

func parseOrFatal(t *testing.T, s string) *phylofinger.Clade {
	t.Helper()
	c, err := phylofinger.ParseNewick(s)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", s, err)
	}
	return c
}

func TestFingerprintDimension(t *testing.T) {
	c := parseOrFatal(t, "((ant:1,bee:2):1,(cat:1,dog:3):2);")
	v := phylofinger.Fingerprint(c, true)
	if len(v) != phylofinger.FingerprintDim {
		t.Fatalf("got %d dimensions, want %d", len(v), phylofinger.FingerprintDim)
	}
}

func TestFingerprintDegenerate(t *testing.T) {
	c := parseOrFatal(t, "ant;")
	v := phylofinger.Fingerprint(c, true)
	for i, x := range v {
		if x != 0 {
			t.Fatalf("expected all-zero vector for a single-leaf tree, got nonzero at %d", i)
		}
	}
}

func TestFingerprintNormalization(t *testing.T) {
	c := parseOrFatal(t, "((ant:1,bee:2):1,(cat:1,dog:3):2);")
	v := phylofinger.Fingerprint(c, true)

	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	norm := math.Sqrt(sumSq)
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("got L2 norm %v, want 1", norm)
	}
}

func TestFingerprintChildOrderInvariance(t *testing.T) {
	a := parseOrFatal(t, "((ant:1,bee:2):1,(cat:1,dog:3):2);")
	b := parseOrFatal(t, "((dog:3,cat:1):2,(bee:2,ant:1):1);")

	va := phylofinger.Fingerprint(a, true)
	vb := phylofinger.Fingerprint(b, true)

	for i := range va {
		if math.Abs(va[i]-vb[i]) > 1e-12 {
			t.Fatalf("fingerprints differ at index %d: %v vs %v", i, va[i], vb[i])
		}
	}
}

func TestFingerprintIdenticalTopologyIsIdentical(t *testing.T) {
	a := parseOrFatal(t, "(ant,bee);")
	b := parseOrFatal(t, "(cat,dog);")

	va := phylofinger.Fingerprint(a, true)
	vb := phylofinger.Fingerprint(b, true)

	for i := range va {
		if math.Abs(va[i]-vb[i]) > 1e-12 {
			t.Fatalf("fingerprints of isomorphic trees differ at index %d: %v vs %v", i, va[i], vb[i])
		}
	}
}

func TestCosineSimilaritySelf(t *testing.T) {
	c := parseOrFatal(t, "((ant:1,bee:2):1,(cat:1,dog:3):2);")
	v := phylofinger.Fingerprint(c, true)

	got := phylofinger.CosineSimilarity(v[:], v[:])
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("cosine similarity of a vector with itself = %v, want 1", got)
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	var a, b [phylofinger.FingerprintDim]float64
	b[0] = 1
	got := phylofinger.CosineSimilarity(a[:], b[:])
	if got != 0 {
		t.Errorf("cosine similarity against a zero vector = %v, want 0", got)
	}
}
