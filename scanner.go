// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Lexeme is the type of a lexical token in the JSON grammar.
type Lexeme byte

// Constants defining the valid Lexeme values.
const (
	Invalid Lexeme = iota // invalid lexeme
	LBrace                // left brace "{"
	RBrace                // right brace "}"
	LSquare               // left square bracket "["
	RSquare               // right square bracket "]"
	Comma                 // comma ","
	Colon                 // colon ":"
	Integer               // number: integer with no fraction or exponent
	Number                // number with fraction and/or exponent
	Quoted                // quoted string
	True                  // constant: true
	False                 // constant: false
	Null                  // constant: null
)

var lexemeStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	Quoted:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (x Lexeme) String() string {
	if int(x) >= len(lexemeStr) {
		return lexemeStr[Invalid]
	}
	return lexemeStr[x]
}

// A Scanner reads lexical tokens from a byte buffer. Each call to Next
// advances the scanner to the next lexeme, or reports an error.
//
// Offsets reported by the scanner are relative to the start of the buffer,
// so they can be used to slice it directly.
type Scanner struct {
	src []byte
	tok Lexeme
	err error

	pos, end int // start and end offsets of current lexeme
}

// NewScanner constructs a new lexical scanner that consumes src.
func NewScanner(src []byte) *Scanner { return &Scanner{src: src} }

// Reset discards the state of s and restarts it at offset pos of src.
func (s *Scanner) Reset(src []byte, pos int) {
	*s = Scanner{src: src, pos: pos, end: pos}
}

// Next advances s to the next lexeme of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid

	// Discard whitespace.
	for s.end < len(s.src) && isSpace(s.src[s.end]) {
		s.end++
	}
	s.pos = s.end
	if s.end >= len(s.src) {
		return s.setErr(io.EOF)
	}

	ch := s.src[s.end]
	s.end++
	switch ch {
	case '{':
		s.tok = LBrace
	case '}':
		s.tok = RBrace
	case '[':
		s.tok = LSquare
	case ']':
		s.tok = RSquare
	case ',':
		s.tok = Comma
	case ':':
		s.tok = Colon
	case '"':
		return s.scanString()
	case 't':
		return s.scanName(True, "true")
	case 'f':
		return s.scanName(False, "false")
	case 'n':
		return s.scanName(Null, "null")
	default:
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}
		s.end--
		return s.failf("unexpected %q", ch)
	}
	return nil
}

// Lexeme returns the type of the current lexeme.
func (s *Scanner) Lexeme() Lexeme { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current lexeme. The result aliases
// the input buffer.
func (s *Scanner) Text() []byte { return s.src[s.pos:s.end] }

// Span returns the location span of the current lexeme.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Precondition: the opening quote has been consumed.
func (s *Scanner) scanString() error {
	for s.end < len(s.src) {
		ch := s.src[s.end]
		s.end++
		switch {
		case ch == '"':
			s.tok = Quoted
			return nil
		case ch == '\\':
			if s.end >= len(s.src) {
				return s.fail(io.ErrUnexpectedEOF)
			}
			esc := s.src[s.end]
			s.end++
			switch esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				// OK
			case 'u':
				if err := s.readHex4(); err != nil {
					return s.failf("invalid Unicode escape: %w", err)
				}
			default:
				return s.failf("invalid %q after escape", esc)
			}
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		case ch >= utf8.RuneSelf:
			r, n := utf8.DecodeRune(s.src[s.end-1:])
			if r == utf8.RuneError && n <= 1 {
				return s.failf("invalid UTF-8 byte %#x", ch)
			}
			s.end += n - 1
		}
	}
	return s.fail(io.ErrUnexpectedEOF)
}

func (s *Scanner) scanNumber(start byte) error {
	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		if s.readWhile(isDigit) == 0 {
			return s.need("digit")
		}
	} else {
		s.readWhile(isDigit)
	}

	// Check for extra leading zeroes, which are disallowed by RFC 8259.
	if hasExtraLeadingZeroes(s.src[s.pos:s.end]) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	if s.peek() == '.' {
		s.end++
		if s.readWhile(isDigit) == 0 {
			return s.need("digit after decimal point")
		}
		s.tok = Number
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		s.end++
		if c := s.peek(); c == '+' || c == '-' {
			s.end++
		}
		if s.readWhile(isDigit) == 0 {
			return s.need("exponent digits")
		}
		s.tok = Number
	}
	return nil
}

// Precondition: the first byte of the name has been consumed.
func (s *Scanner) scanName(tok Lexeme, want string) error {
	s.readWhile(isNameByte)
	if got := string(s.src[s.pos:s.end]); got != want {
		return s.failf("unknown constant %q", got)
	}
	s.tok = tok
	return nil
}

// peek returns the next unread byte without consuming it, or 0 at the end of
// the input.
func (s *Scanner) peek() byte {
	if s.end < len(s.src) {
		return s.src[s.end]
	}
	return 0
}

// readWhile consumes bytes matching f from the input until the end of the
// input or a byte not matching f. It reports the number of bytes consumed.
func (s *Scanner) readWhile(f func(byte) bool) int {
	start := s.end
	for s.end < len(s.src) && f(s.src[s.end]) {
		s.end++
	}
	return s.end - start
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() error {
	for range 4 {
		if s.end >= len(s.src) {
			return io.ErrUnexpectedEOF
		} else if ch := s.src[s.end]; !isHexDigit(ch) {
			return fmt.Errorf("not a hex digit: %q", ch)
		}
		s.end++
	}
	return nil
}

// need reports an error for a missing lexical element. At the end of input
// the error wraps io.ErrUnexpectedEOF so that callers can tell an incomplete
// input from an invalid one.
func (s *Scanner) need(label string) error {
	if s.end >= len(s.src) {
		return s.failf("want %s, got %w", label, io.ErrUnexpectedEOF)
	}
	return s.failf("got %q, want %s", s.src[s.end], label)
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(err error) error {
	return s.setErr(posError{s.end, err})
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by RFC 8259.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if len(buf) != 0 && buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	return len(buf) > 1 && buf[0] == '0'
}
