// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat

import (
	"errors"

	"github.com/creachadair/jflat/internal/escape"
	"go4.org/mem"
)

// Unquote decodes a quoted JSON string value. Double quotation marks are
// removed, and escape sequences are replaced with their unescaped
// equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src []byte) ([]byte, error) {
	s := mem.B(src)
	if s.Len() < 2 || s.At(0) != '"' || s.At(s.Len()-1) != '"' {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(s.Slice(1, s.Len()-1))
}
