// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat

import (
	"fmt"
	"iter"

	"github.com/creachadair/jflat/internal/escape"
	"go4.org/mem"
)

// An Element is a view of the subtree rooted at the first token of a token
// array, together with the source buffer the tokens refer to. The array may
// extend past the end of the subtree; its length is an upper bound on the
// extent of the element.
//
// An Element does not own its tokens or its buffer. If it was obtained from
// a Document, it becomes stale when the document is reloaded or reparsed,
// and every operation on it then reports ErrStale.
//
// The zero Element is invalid.
type Element struct {
	toks []Token
	src  []byte

	doc *Document // the document that issued this element, or nil
	gen uint64    // the generation of doc when this element was issued
}

// NewElement constructs an Element for the first token of toks, whose
// offsets refer to src. The caller must not modify toks or src while the
// element or any view derived from it is in use.
func NewElement(toks []Token, src []byte) Element { return Element{toks: toks, src: src} }

// IsValid reports whether e refers to at least one token and a buffer, and
// is not stale.
func (e Element) IsValid() bool {
	return len(e.toks) != 0 && e.src != nil && !e.isStale()
}

func (e Element) isStale() bool { return e.doc != nil && e.doc.gen != e.gen }

// Kind returns the kind of the first token of e, or UndefinedKind if e is not
// valid.
func (e Element) Kind() Kind {
	if !e.IsValid() {
		return UndefinedKind
	}
	return e.toks[0].Kind
}

// Token returns the first token of e. It returns a zero Token if e is not
// valid.
func (e Element) Token() Token {
	if !e.IsValid() {
		return Token{}
	}
	return e.toks[0]
}

// Remaining reports the number of tokens available to e, starting with its
// own token.
func (e Element) Remaining() int { return len(e.toks) }

// Raw returns the source text spanned by the first token of e, regardless of
// its kind. For strings this excludes the quotation marks. The result aliases
// the source buffer. Raw returns nil if e is not valid.
func (e Element) Raw() []byte {
	if !e.IsValid() {
		return nil
	}
	text, _ := e.textAt(0)
	return text
}

// textAt returns the source text of the token at offset i of e.
func (e Element) textAt(i int) ([]byte, bool) {
	t := e.toks[i]
	if t.Start < 0 || t.End < t.Start || t.End > len(e.src) {
		return nil, false
	}
	return e.src[t.Start:t.End], true
}

func (e Element) sub(i int) Element {
	return Element{toks: e.toks[i:], src: e.src, doc: e.doc, gen: e.gen}
}

// check reports an error if e is not a valid element of the given kind.
func (e Element) check(op string, want Kind) error {
	if e.isStale() {
		return viewError(op, ErrStale, "document was reloaded")
	} else if !e.IsValid() {
		return viewError(op, ErrInvalidType, "invalid element")
	} else if got := e.toks[0].Kind; got != want {
		return viewError(op, ErrInvalidType, "got %v, want %v", got, want)
	}
	return nil
}

// Object narrows e to an object view. It reports ErrInvalidType if e is not
// a valid object.
func (e Element) Object() (Object, error) {
	if err := e.check("Object", ObjectKind); err != nil {
		return Object{}, err
	}
	return Object{e}, nil
}

// Array narrows e to an array view. It reports ErrInvalidType if e is not a
// valid array.
func (e Element) Array() (Array, error) {
	if err := e.check("Array", ArrayKind); err != nil {
		return Array{}, err
	}
	return Array{e}, nil
}

// Text returns the text of a string element exactly as it appears in the
// source, without its quotation marks. Escape sequences are not decoded; use
// Unescape for that. It reports ErrInvalidType if e is not a valid string.
func (e Element) Text() (string, error) {
	if err := e.check("Text", StringKind); err != nil {
		return "", err
	}
	text, ok := e.textAt(0)
	if !ok {
		return "", viewError("Text", ErrInvalidType, "span out of range")
	}
	return string(text), nil
}

// Unescape returns the text of a string element with its escape sequences
// decoded. It reports ErrInvalidType if e is not a valid string.
func (e Element) Unescape() (string, error) {
	if err := e.check("Unescape", StringKind); err != nil {
		return "", err
	}
	text, ok := e.textAt(0)
	if !ok {
		return "", viewError("Unescape", ErrInvalidType, "span out of range")
	}
	dec, err := escape.Unquote(mem.B(text))
	if err != nil {
		return "", viewError("Unescape", ErrInvalidType, "%v", err)
	}
	return string(dec), nil
}

// Int returns the value of an integer element. The text of the element must
// consist of an optional minus sign followed by decimal digits, with nothing
// else. It reports ErrInvalidType for any other element, including numbers
// with a fraction or exponent and the constants true, false, and null.
func (e Element) Int() (int, error) {
	if err := e.check("Int", PrimitiveKind); err != nil {
		return 0, err
	}
	text, ok := e.textAt(0)
	if !ok || len(text) == 0 || !isNumStart(text[0]) {
		return 0, viewError("Int", ErrInvalidType, "%q is not an integer", text)
	}
	v, err := mem.ParseInt(mem.B(text), 10, 0)
	if err != nil {
		return 0, viewError("Int", ErrInvalidType, "%q is not an integer", text)
	}
	return int(v), nil
}

// Path traverses a sequential path into the structure of e, where path
// elements are either strings (denoting object keys, resolved by Get) or
// integers (denoting offsets into arrays). Negative indices count backward
// from the end of the array (-1 is last, -2 second last, etc.).
//
// If the path is valid, the element reached is returned.
func (e Element) Path(path ...any) (Element, error) {
	cur := e
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, err := cur.Object()
			if err != nil {
				return Element{}, err
			}
			cur, err = o.Get(t)
			if err != nil {
				return Element{}, err
			}
		case int:
			a, err := cur.Array()
			if err != nil {
				return Element{}, err
			}
			i, ok := fixArrayBound(a.Len(), t)
			if !ok {
				return Element{}, viewError("Path", ErrOutOfBounds, "index %d, length %d", t, a.Len())
			}
			cur, err = a.At(i)
			if err != nil {
				return Element{}, err
			}
		default:
			return Element{}, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// An Object is an Element known to refer to an object token.
type Object struct{ e Element }

// Element returns the element underlying o.
func (o Object) Element() Element { return o.e }

// Len reports the declared number of members of o.
func (o Object) Len() int {
	if !o.e.IsValid() {
		return 0
	}
	return o.e.toks[0].Size
}

// Get returns the value of the first key matching key, scanning the tokens
// available to o in document order.
//
// A key is any string token with a nonzero size whose text is exactly key.
// The scan is not restricted to the direct members of o: a matching key in a
// nested value, or in a later sibling of o, is found if it comes first. Use
// Member to search only the direct members.
//
// If the matching key is the last available token, Get returns an invalid
// element and no error. If no key matches, Get reports ErrKeyNotFound.
func (o Object) Get(key string) (Element, error) {
	if o.e.isStale() {
		return Element{}, viewError("Get", ErrStale, "document was reloaded")
	}
	for i, tok := range o.e.toks {
		if tok.Kind != StringKind || tok.Size == 0 || tok.End-tok.Start != len(key) {
			continue
		}
		if text, ok := o.e.textAt(i); !ok || !mem.B(text).EqualString(key) {
			continue
		}
		if i+1 == len(o.e.toks) {
			return Element{}, nil
		}
		return o.e.sub(i + 1), nil
	}
	return Element{}, viewError("Get", ErrKeyNotFound, "%q", key)
}

// Member returns the value of the direct member of o whose key is exactly
// key. It reports ErrKeyNotFound if o has no such member.
func (o Object) Member(key string) (Element, error) {
	if o.e.isStale() {
		return Element{}, viewError("Member", ErrStale, "document was reloaded")
	}
	for i := range o.keys() {
		if text, ok := o.e.textAt(i); ok && mem.B(text).EqualString(key) {
			return o.valueAt(i), nil
		}
	}
	return Element{}, viewError("Member", ErrKeyNotFound, "%q", key)
}

// All is a range function over the direct members of o in document order.
// Keys are reported as they appear in the source, without decoding escapes.
func (o Object) All() iter.Seq2[string, Element] {
	return func(yield func(string, Element) bool) {
		for i := range o.keys() {
			text, _ := o.e.textAt(i)
			if !yield(string(text), o.valueAt(i)) {
				return
			}
		}
	}
}

// keys is a range function over the token offsets of the keys of o.
func (o Object) keys() iter.Seq[int] {
	return func(yield func(int) bool) {
		if !o.e.IsValid() {
			return
		}
		toks := o.e.toks
		i := 1
		for range o.Len() {
			if i <= 0 || i >= len(toks) || !yield(i) || i+1 >= len(toks) {
				return
			}
			i = next(toks, i+1)
		}
	}
}

// valueAt returns the value of the key at offset i.
func (o Object) valueAt(i int) Element {
	if i+1 >= len(o.e.toks) {
		return Element{}
	}
	return o.e.sub(i + 1)
}

// An Array is an Element known to refer to an array token.
type Array struct{ e Element }

// Element returns the element underlying a.
func (a Array) Element() Element { return a.e }

// Len reports the declared number of elements of a.
func (a Array) Len() int {
	if !a.e.IsValid() {
		return 0
	}
	return a.e.toks[0].Size
}

// At returns the element at index i of a. It reports ErrOutOfBounds if i is
// not in the range 0 ≤ i < a.Len(), or if the tokens available to a end
// before the element is found.
func (a Array) At(i int) (Element, error) {
	if a.e.isStale() {
		return Element{}, viewError("At", ErrStale, "document was reloaded")
	} else if i < 0 || i >= a.Len() {
		return Element{}, viewError("At", ErrOutOfBounds, "index %d, length %d", i, a.Len())
	}
	off := 1
	for ; i > 0 && off > 0; i-- {
		off = next(a.e.toks, off)
	}
	if off <= 0 || off >= len(a.e.toks) {
		return Element{}, viewError("At", ErrOutOfBounds, "tokens exhausted")
	}
	return a.e.sub(off), nil
}

// All is a range function over the elements of a in order.
func (a Array) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		toks := a.e.toks
		off := 1
		for i := range a.Len() {
			if off <= 0 || off >= len(toks) || !yield(i, a.e.sub(off)) {
				return
			}
			off = next(toks, off)
		}
	}
}

// next returns the offset of the first token following the subtree rooted
// at toks[i], or -1 if there is none or i is out of range. If the extent of
// toks[i] is not known, next scans for the first token that begins after
// toks[i] ends.
func next(toks []Token, i int) int {
	if i < 0 || i >= len(toks) {
		return -1
	}
	if s := toks[i].Skip; s > 0 {
		if i+s < len(toks) {
			return i + s
		}
		return -1
	}
	end := toks[i].End
	for j := i + 1; j < len(toks); j++ {
		if toks[j].Start > end {
			return j
		}
	}
	return -1
}
