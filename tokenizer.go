// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat

import (
	"errors"
	"fmt"
	"io"
)

// Kind is the type of a token in a flat token array.
type Kind byte

// Constants defining the valid Kind values.
const (
	UndefinedKind Kind = iota // zero value, not produced by the tokenizer
	ObjectKind                // object, including its braces
	ArrayKind                 // array, including its brackets
	StringKind                // string, excluding its quotation marks
	PrimitiveKind             // number, true, false, or null
)

var kindStr = [...]string{
	UndefinedKind: "undefined",
	ObjectKind:    "object",
	ArrayKind:     "array",
	StringKind:    "string",
	PrimitiveKind: "primitive",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[UndefinedKind]
	}
	return kindStr[k]
}

// A Token is a single entry of a flat token array.
//
// Tokens are stored in document order. A composite token is immediately
// followed by the tokens of its children; an object member is encoded as a
// key String token, whose Size is 1, followed by the tokens of its value.
type Token struct {
	Kind       Kind
	Start, End int // byte offsets into the source, End is noninclusive
	Size       int // number of direct children

	// Skip is the number of tokens in the subtree rooted at this token,
	// including the token itself. A zero value means the extent is not known.
	Skip int
}

// Span returns the location span of t.
func (t Token) Span() Span { return Span{Pos: t.Start, End: t.End} }

// Errors reported by the Tokenizer.
var (
	// ErrNoMemory is reported when the fill pass runs out of token space.
	ErrNoMemory = errors.New("not enough tokens")

	// ErrInvalid matches syntax errors in the input.
	ErrInvalid = errors.New("invalid JSON input")

	// ErrPartial is reported when the input ends before a value is complete.
	ErrPartial = errors.New("incomplete JSON input")
)

// A Tokenizer converts JSON text into a flat array of tokens.
//
// A Tokenizer is stateful: it records how much of its input it has consumed
// and how many tokens it has produced, and Parse resumes from that state.
// To parse the same input twice, as in a sizing pass followed by a fill pass,
// call Init between the calls.
type Tokenizer struct {
	pos  int     // offset of the next unconsumed input byte
	next int     // index of the next token to be produced
	toks []Token // output; nil during a sizing pass
	stk  []int   // indexes of open objects, arrays, and keys
}

// Init resets t to its initial state.
func (t *Tokenizer) Init() {
	*t = Tokenizer{stk: t.stk[:0]}
}

// Parse tokenizes src, starting from the position recorded in t.
//
// If toks == nil, Parse only counts tokens, and reports the number of tokens
// required to represent src. Otherwise tokens are written to toks, and Parse
// reports the number written. If toks is too small, Parse reports
// ErrNoMemory. If src ends in the middle of a value, Parse reports
// ErrPartial. Other malformed input is reported as a *SyntaxError, which
// matches ErrInvalid.
func (t *Tokenizer) Parse(src []byte, toks []Token) (int, error) {
	t.toks = toks
	defer func() { t.toks = nil }()
	if t.pos >= len(src) {
		return t.next, nil
	}

	var sc Scanner
	sc.Reset(src, t.pos)
	if err := NewStreamWithScanner(&sc).Parse(t); err != nil {
		var serr *SyntaxError
		if errors.As(err, &serr) && (errors.Is(serr.err, io.EOF) || errors.Is(serr.err, io.ErrUnexpectedEOF)) {
			return 0, fmt.Errorf("%w (offset %d)", ErrPartial, serr.Offset)
		}
		return 0, err
	}
	t.pos = len(src)
	return t.next, nil
}

// alloc reserves the next token and returns its index. During a sizing pass
// the token is counted but not stored.
func (t *Tokenizer) alloc(kind Kind, start, end int) (int, error) {
	i := t.next
	if t.toks != nil {
		if i >= len(t.toks) {
			return 0, ErrNoMemory
		}
		t.toks[i] = Token{Kind: kind, Start: start, End: end, Skip: 1}
	}
	t.next++
	return i, nil
}

// addChild records a new child of the innermost open token, if any.
func (t *Tokenizer) addChild() {
	if n := len(t.stk); n != 0 && t.toks != nil {
		t.toks[t.stk[n-1]].Size++
	}
}

func (t *Tokenizer) push(i int) { t.stk = append(t.stk, i) }

// pop closes the innermost open token, setting its extent.
func (t *Tokenizer) pop() int {
	n := len(t.stk) - 1
	i := t.stk[n]
	t.stk = t.stk[:n]
	if t.toks != nil {
		t.toks[i].Skip = t.next - i
	}
	return i
}

func (t *Tokenizer) begin(kind Kind, loc Anchor) error {
	t.addChild()
	i, err := t.alloc(kind, loc.Span().Pos, -1)
	if err != nil {
		return err
	}
	t.push(i)
	return nil
}

func (t *Tokenizer) end(loc Anchor) error {
	i := t.pop()
	if t.toks != nil {
		t.toks[i].End = loc.Span().End
	}
	return nil
}

// BeginObject implements part of the Handler interface.
func (t *Tokenizer) BeginObject(loc Anchor) error { return t.begin(ObjectKind, loc) }

// EndObject implements part of the Handler interface.
func (t *Tokenizer) EndObject(loc Anchor) error { return t.end(loc) }

// BeginArray implements part of the Handler interface.
func (t *Tokenizer) BeginArray(loc Anchor) error { return t.begin(ArrayKind, loc) }

// EndArray implements part of the Handler interface.
func (t *Tokenizer) EndArray(loc Anchor) error { return t.end(loc) }

// BeginMember implements part of the Handler interface. The key becomes a
// String token whose single child is the member value.
func (t *Tokenizer) BeginMember(loc Anchor) error {
	t.addChild()
	sp := loc.Span()
	i, err := t.alloc(StringKind, sp.Pos+1, sp.End-1)
	if err != nil {
		return err
	}
	t.push(i)
	return nil
}

// EndMember implements part of the Handler interface.
func (t *Tokenizer) EndMember(Anchor) error { t.pop(); return nil }

// Value implements part of the Handler interface.
func (t *Tokenizer) Value(loc Anchor) error {
	t.addChild()
	sp := loc.Span()
	if loc.Lexeme() == Quoted {
		_, err := t.alloc(StringKind, sp.Pos+1, sp.End-1)
		return err
	}
	_, err := t.alloc(PrimitiveKind, sp.Pos, sp.End)
	return err
}

// EndOfInput implements part of the Handler interface.
func (t *Tokenizer) EndOfInput(Anchor) {}

// Tokenize is a convenience function that tokenizes src with a sizing pass
// followed by a fill pass, and returns the resulting token array.
func Tokenize(src []byte) ([]Token, error) {
	var t Tokenizer
	n, err := t.Parse(src, nil)
	if err != nil {
		return nil, err
	}
	toks := make([]Token, n)
	t.Init() // the sizing pass consumed the input
	if _, err := t.Parse(src, toks); err != nil {
		return nil, err
	}
	return toks, nil
}
