// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jflat"
	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value integer <0>
Value integer <5>
Value number <-6.32>
Value number <0.1e-2>
.`},

		{`"" "a b c" "a\tb"`, `
Value string <"">
Value string <"a b c">
Value string <"a\tb">
.`},

		{`{}`, "BeginObject 0-1\nEndObject 1-2\n."},

		{`{"a":15}`, `
BeginObject 0-1
BeginMember <"a">
Value integer <15>
EndMember "}"
EndObject 7-8
.`},

		{`{"x":null, "y":[true]}`, `
BeginObject 0-1
BeginMember <"x">
Value null <null>
EndMember ","
BeginMember <"y">
BeginArray 15-16
Value true <true>
EndArray 20-21
EndMember "}"
EndObject 21-22
.`},

		{`[]`, "BeginArray 0-1\nEndArray 1-2\n."},
	}

	for _, test := range tests {
		st := jflat.NewStream([]byte(test.input))
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Various kinds of unbalanced object bits.
		{`{`, `BeginObject 0-1`,
			`at offset 1: expected "}" or string, got error: EOF`},
		{`}`, ``, `at offset 0: unexpected "}"`},
		{`{false:1}`, `BeginObject 0-1`,
			`at offset 1: expected "}" or string, got false`},
		{`{"true":}`, `
BeginObject 0-1
BeginMember <"true">`,
			`at offset 8: unexpected "}"`},
		{`{"true":1,`, `
BeginObject 0-1
BeginMember <"true">
Value integer <1>
EndMember ","`,
			`at offset 10: expected string, got error: EOF`},

		// Unbalanced array bits.
		{`[`, `BeginArray 0-1`,
			`at offset 1: expected more input, got error: EOF`},
		{`]`, ``, `at offset 0: unexpected "]"`},
		{`[15,`, `
BeginArray 0-1
Value integer <15>`,
			`at offset 4: expected more input, got error: EOF`},
		{`[15,]`, `
BeginArray 0-1
Value integer <15>`,
			`at offset 4: unexpected "]"`},
		{`[1 2]`, `
BeginArray 0-1
Value integer <1>`,
			`at offset 3: expected "]" or ",", got integer`},

		// Invalid values.
		{`1 2.0 forthright`, `
Value integer <1>
Value number <2.0>`,
			`at offset 6: unknown constant "forthright" (offset 16)`},
	}

	for _, test := range tests {
		st := jflat.NewStream([]byte(test.input))
		th := new(testHandler)
		err := st.Parse(th)
		if err == nil {
			t.Error("Parse did not report an error")
			continue
		}
		if !errors.Is(err, jflat.ErrInvalid) {
			t.Errorf("Parse error %v does not match ErrInvalid", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamHandlerError(t *testing.T) {
	errStop := errors.New("stop")
	st := jflat.NewStream([]byte(`[1, 2, 3]`))
	h := &testHandler{failOn: "2", err: errStop}
	if err := st.Parse(h); err != errStop {
		t.Errorf("Parse: got error %v, want %v", err, errStop)
	}
}

func TestParseOne(t *testing.T) {
	const input = `{ "love": true } [] "ok"`
	const want = `
BeginObject 0-1
BeginMember <"love">
Value true <true>
EndMember "}"
EndObject 15-16
---
BeginArray 17-18
EndArray 18-19
---
Value string <"ok">
---
.`
	th := new(testHandler)

	st := jflat.NewStream([]byte(input))
	for {
		err := st.ParseOne(th)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		th.pr("---")
	}

	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf bytes.Buffer

	failOn string // if set, Value fails with err for this text
	err    error
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) BeginObject(loc jflat.Anchor) error {
	t.pr("BeginObject %v", loc.Span())
	return nil
}

func (t *testHandler) EndObject(loc jflat.Anchor) error {
	t.pr("EndObject %v", loc.Span())
	return nil
}

func (t *testHandler) BeginArray(loc jflat.Anchor) error {
	t.pr("BeginArray %v", loc.Span())
	return nil
}

func (t *testHandler) EndArray(loc jflat.Anchor) error {
	t.pr("EndArray %v", loc.Span())
	return nil
}

func (t *testHandler) EndOfInput(loc jflat.Anchor) { t.pr(".") }

func (t *testHandler) BeginMember(loc jflat.Anchor) error {
	t.pr("BeginMember <%s>", string(loc.Text()))
	return nil
}

func (t *testHandler) EndMember(loc jflat.Anchor) error {
	t.pr("EndMember %s", loc.Lexeme())
	return nil
}

func (t *testHandler) Value(loc jflat.Anchor) error {
	if t.failOn != "" && string(loc.Text()) == t.failOn {
		return t.err
	}
	t.pr(`Value %s <%s>`, loc.Lexeme(), string(loc.Text()))
	return nil
}
