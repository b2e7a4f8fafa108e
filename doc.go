// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jflat implements a JSON tokenizer that produces a flat array of
// tokens, and typed read-only views for navigating that array.
//
// # Tokens
//
// A Token records the kind and byte span of a single JSON element, the
// number of its direct children, and the number of tokens in its subtree.
// Tokens are stored in document order, so the subtree of a composite value
// immediately follows its own token. String spans exclude the quotation
// marks. Object keys are String tokens with Size 1; string values have Size 0.
//
// The Tokenizer type fills a caller-provided token array. The usual pattern
// is two passes over the input, the first to count the tokens required:
//
//	var tz jflat.Tokenizer
//	n, err := tz.Parse(src, nil)
//	...
//	toks := make([]jflat.Token, n)
//	tz.Init()
//	n, err = tz.Parse(src, toks)
//
// Parse reports ErrNoMemory if the array is too small, ErrPartial if the
// input ends in the middle of a value, and ErrInvalid for malformed input.
//
// # Views
//
// An Element is a view of the subtree rooted at the first token of a token
// array. It can be narrowed to an Object or an Array, or coerced to a Go
// value with Text, Unescape, or Int. Each narrowing checks the token kind and
// reports an *Error wrapping ErrInvalidType on mismatch:
//
//	root := jflat.NewElement(toks, src)
//	obj, err := root.Object()
//	...
//	port, err := obj.Get("port")
//	...
//	n, err := port.Int()
//
// The Path method combines these steps for a sequence of keys and indices.
//
// Note that Object.Get scans forward through every token after the object,
// and may match a key nested inside an earlier member. Use Object.Member to
// consider only the direct members of an object.
//
// # Documents
//
// A Document owns an input buffer and the tokens parsed from it:
//
//	d := jflat.NewDocument()
//	if err := d.Load("config.json"); err != nil {
//	   log.Fatalf("Load: %v", err)
//	}
//	root := d.Parse()
//	if !root.IsValid() {
//	   log.Fatalf("Parse: %v", d.Err())
//	}
//
// Elements issued by a Document become stale when it is reloaded or
// reparsed, and then report ErrStale.
//
// # Streaming
//
// The Tokenizer is built on the Stream type, an event-driven parser that
// reports the structure of its input by calling methods on a Handler. The
// Stream is exported for callers that want to process input without
// building a token array.
package jflat
