// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jpath parses a small subset of JSONPath into the key and index
// sequences accepted by jflat.Element.Path.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jflat"
)

/*
Grammar:

  expr = root [steps]
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" name "]"
  step = "[" INDEX "]"
  name = WORD
  name = "'" QTEXT "'"

  WORD = RE `\w+`
 QTEXT = RE `([^'\\]|\\.)*`, with \' and \\ denoting ' and \
 INDEX = RE `-?\d+`
*/

// An Expr is a parsed path expression.
type Expr []Step

// Parse parses s as a path expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var expr Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", t, err)
		}
		expr = append(expr, step)
		t = rest
	}
	return expr, nil
}

// Keys returns the steps of e as arguments for jflat.Element.Path: a string
// for each member step and an int for each index step.
func (e Expr) Keys() []any {
	keys := make([]any, len(e))
	for i, s := range e {
		if s.Op == Index {
			keys[i] = s.Index
		} else {
			keys[i] = s.Name
		}
	}
	return keys
}

// Eval resolves e against root.
func (e Expr) Eval(root jflat.Element) (jflat.Element, error) { return root.Path(e.Keys()...) }

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member:
			if nameRE.MatchString(s.Name) {
				fmt.Fprintf(&buf, ".%s", s.Name)
			} else {
				fmt.Fprintf(&buf, "['%s']", quoteEscaper.Replace(s.Name))
			}
		case Index:
			fmt.Fprintf(&buf, "[%d]", s.Index)
		}
	}
	return buf.String()
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		name, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return Step{Op: Member, Name: name}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		var step Step
		if m := indexRE.FindStringSubmatch(t); m != nil {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				return Step{}, s, fmt.Errorf("invalid index: %w", err)
			}
			step, t = Step{Op: Index, Index: v}, t[len(m[0]):]
		} else {
			name, u, err := parseName(t)
			if err != nil {
				return Step{}, s, err
			}
			step, t = Step{Op: Member, Name: name}, u
		}
		u, ok := strings.CutPrefix(t, "]")
		if !ok {
			return Step{}, t, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseName(s string) (name, rest string, _ error) {
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return m[1], s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return quoteUnescaper.Replace(m[1]), s[len(m[0]):], nil
	}
	return "", s, errors.New("invalid name")
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	nameRE  = regexp.MustCompile(`^\w+$`)
	indexRE = regexp.MustCompile(`^(-?\d+)`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)

	quoteEscaper   = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	quoteUnescaper = strings.NewReplacer(`\\`, `\`, `\'`, `'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // object member lookup
	Index             // array index lookup
)

func (o Op) String() string {
	switch o {
	case Member:
		return "member"
	case Index:
		return "index"
	}
	return "invalid"
}

// A Step is a single step of a path expression.
type Step struct {
	Op    Op
	Name  string // for Member
	Index int    // for Index
}
