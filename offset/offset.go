// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package offset provides lookups over a raw token array that report
// defaults instead of errors.
//
// Each function interprets toks[0] as the root of the lookup. Functions that
// locate a composite value return its offset relative to toks, or -1 if it
// is absent, so that navigation can continue with toks[off:]:
//
//	flows := offset.Array(toks, src, "flows")
//	first := offset.ObjectAt(toks[flows:], src, 0)
//	port := offset.Int(toks[flows+first:], src, "port", 0)
//
// Every failure, whether a missing key, a kind mismatch, an index out of
// range, or a malformed number, collapses to the default. Use the views of
// package jflat to distinguish them.
package offset

import "github.com/creachadair/jflat"

// Int returns the integer value of key in the object at toks[0], or def.
func Int(toks []jflat.Token, src []byte, key string, def int) int {
	e, err := lookup(toks, src, key)
	return intOr(e, err, def)
}

// String returns the raw text of the string value of key in the object at
// toks[0], or def. Escape sequences are not decoded.
func String(toks []jflat.Token, src []byte, key string, def string) string {
	e, err := lookup(toks, src, key)
	return textOr(e, err, def)
}

// Array returns the offset of the array value of key in the object at
// toks[0], or -1.
func Array(toks []jflat.Token, src []byte, key string) int {
	e, err := lookup(toks, src, key)
	return offsetOf(toks, e, err, jflat.ArrayKind)
}

// Object returns the offset of the object value of key in the object at
// toks[0], or -1.
func Object(toks []jflat.Token, src []byte, key string) int {
	e, err := lookup(toks, src, key)
	return offsetOf(toks, e, err, jflat.ObjectKind)
}

// IntAt returns the integer value of element i of the array at toks[0], or
// def.
func IntAt(toks []jflat.Token, src []byte, i int, def int) int {
	e, err := index(toks, src, i)
	return intOr(e, err, def)
}

// StringAt returns the raw text of string element i of the array at toks[0],
// or def.
func StringAt(toks []jflat.Token, src []byte, i int, def string) string {
	e, err := index(toks, src, i)
	return textOr(e, err, def)
}

// ArrayAt returns the offset of array element i of the array at toks[0], or
// -1.
func ArrayAt(toks []jflat.Token, src []byte, i int) int {
	e, err := index(toks, src, i)
	return offsetOf(toks, e, err, jflat.ArrayKind)
}

// ObjectAt returns the offset of object element i of the array at toks[0],
// or -1.
func ObjectAt(toks []jflat.Token, src []byte, i int) int {
	e, err := index(toks, src, i)
	return offsetOf(toks, e, err, jflat.ObjectKind)
}

func lookup(toks []jflat.Token, src []byte, key string) (jflat.Element, error) {
	o, err := jflat.NewElement(toks, src).Object()
	if err != nil {
		return jflat.Element{}, err
	}
	return o.Get(key)
}

func index(toks []jflat.Token, src []byte, i int) (jflat.Element, error) {
	a, err := jflat.NewElement(toks, src).Array()
	if err != nil {
		return jflat.Element{}, err
	}
	return a.At(i)
}

func intOr(e jflat.Element, err error, def int) int {
	if err == nil {
		if v, err := e.Int(); err == nil {
			return v
		}
	}
	return def
}

func textOr(e jflat.Element, err error, def string) string {
	if err == nil {
		if v, err := e.Text(); err == nil {
			return v
		}
	}
	return def
}

// offsetOf reports the offset within toks of e, which must have the given
// kind, or -1.
func offsetOf(toks []jflat.Token, e jflat.Element, err error, kind jflat.Kind) int {
	if err != nil || e.Kind() != kind {
		return -1
	}
	return len(toks) - e.Remaining()
}
