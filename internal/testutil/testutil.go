// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/jflat"
)

// MustTokenize tokenizes input and returns its tokens and source buffer,
// failing t if input is not valid JSON.
func MustTokenize(t testing.TB, input string) ([]jflat.Token, []byte) {
	t.Helper()
	src := []byte(input)
	toks, err := jflat.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize %#q: unexpected error: %v", input, err)
	}
	return toks, src
}

// MustParse tokenizes input and returns its root element, failing t if input
// is not valid JSON.
func MustParse(t testing.TB, input string) jflat.Element {
	t.Helper()
	return jflat.NewElement(MustTokenize(t, input))
}
