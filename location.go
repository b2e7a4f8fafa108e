// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat

import "fmt"

// A Span describes a contiguous span of a source buffer.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Pos }

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }
