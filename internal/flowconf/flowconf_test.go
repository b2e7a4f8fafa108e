// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package flowconf_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jflat"
	"github.com/creachadair/jflat/internal/flowconf"
	"github.com/creachadair/jflat/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const input = `{
  "bind": "0.0.0.0",
  "flows": [
    {"name": "web", "port": 8080, "file": "/var/log/web.log"},
    {"name": "abc", "port": 9090}
  ]
}`

func TestDecode(t *testing.T) {
	cfg, err := flowconf.Decode(testutil.MustParse(t, input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := &flowconf.Config{
		Bind: "0.0.0.0",
		Flows: []flowconf.Flow{
			{Name: "web", Port: 8080, File: "/var/log/web.log"},
			{Name: "abc", Port: 9090},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Decode (-want, +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{`[]`, jflat.ErrInvalidType},
		{`{"flows": []}`, jflat.ErrKeyNotFound},
		{`{"bind": 1, "flows": []}`, jflat.ErrInvalidType},
		{`{"bind": "x"}`, jflat.ErrKeyNotFound},
		{`{"bind": "x", "flows": {}}`, jflat.ErrInvalidType},
		{`{"bind": "x", "flows": [1]}`, jflat.ErrInvalidType},
		{`{"bind": "x", "flows": [{"port": 1}]}`, jflat.ErrKeyNotFound},
		{`{"bind": "x", "flows": [{"name": "n", "port": "1"}]}`, jflat.ErrInvalidType},
		{`{"bind": "x", "flows": [{"name": "n", "port": 1.5}]}`, jflat.ErrInvalidType},
		{`{"bind": "x", "flows": [{"name": "n", "port": 1, "file": 0}]}`, jflat.ErrInvalidType},

		// A "port" nested in another member does not satisfy the flow.
		{`{"bind": "x", "flows": [{"name": "n", "meta": {"port": 1}}]}`, jflat.ErrKeyNotFound},
	}
	for _, test := range tests {
		_, err := flowconf.Decode(testutil.MustParse(t, test.input))
		if !errors.Is(err, test.want) {
			t.Errorf("Decode %#q: got error %v, want %v", test.input, err, test.want)
		}
	}
}

func TestWriteText(t *testing.T) {
	cfg := &flowconf.Config{
		Bind:  "localhost",
		Flows: []flowconf.Flow{{Name: "a", Port: 1, File: "x.log"}, {Name: "b", Port: 2}},
	}
	var buf strings.Builder
	if err := cfg.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	const want = `g:bind = localhost

Flows
=====

[a]
port = 1
file = x.log

[b]
port = 2
file = 

`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteText (-want, +got):\n%s", diff)
	}
}

func TestWriteYAML(t *testing.T) {
	cfg, err := flowconf.Decode(testutil.MustParse(t, input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var buf strings.Builder
	if err := cfg.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var got flowconf.Config
	if err := yaml.Unmarshal([]byte(buf.String()), &got); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(cfg, &got); diff != "" {
		t.Errorf("YAML output (-want, +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "bind: 0.0.0.0\n") {
		t.Errorf("YAML output missing bind:\n%s", buf.String())
	}
}
