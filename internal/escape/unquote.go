// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes the escape sequences of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the body of a JSON string, without its enclosing quotation
// marks.
//
// Unknown escapes and malformed \u escapes are replaced by the Unicode
// replacement rune. A UTF-16 surrogate pair written as two \u escapes is
// combined into a single rune. Unquote reports an error for an escape
// sequence truncated by the end of the input.
func Unquote(src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(make([]byte, 0, src.Len()), src), nil
	}
	dec := make([]byte, 0, src.Len())
	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, n, err := decodeU(src)
			if err != nil {
				return nil, err
			}
			dec = utf8.AppendRune(dec, r)
			src = src.SliceFrom(n)
		default:
			// The input may not have been validated, so an unknown escape is
			// not an error here.
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}

// decodeU decodes the hex digits of a \u escape at the front of src, whose
// "\u" prefix has been consumed. It reports the decoded rune and the number
// of bytes of src it used.
func decodeU(src mem.RO) (rune, int, error) {
	if src.Len() < 4 {
		return 0, 0, errors.New("incomplete Unicode escape")
	}
	hi, ok := parseHex4(src.SliceTo(4))
	if !ok {
		return utf8.RuneError, 4, nil
	}
	if !utf16.IsSurrogate(hi) {
		return hi, 4, nil
	}

	// Look for a low surrogate to pair with.
	if src.Len() >= 10 && src.At(4) == '\\' && src.At(5) == 'u' {
		if lo, ok := parseHex4(src.Slice(6, 10)); ok {
			if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
				return r, 10, nil
			}
		}
	}
	return utf8.RuneError, 4, nil
}

func parseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := range data.Len() {
		b := data.At(i)
		switch {
		case '0' <= b && b <= '9':
			v = v<<4 | rune(b-'0')
		case 'a' <= b && b <= 'f':
			v = v<<4 | rune(b-'a'+10)
		case 'A' <= b && b <= 'F':
			v = v<<4 | rune(b-'A'+10)
		default:
			return 0, false
		}
	}
	return v, true
}
