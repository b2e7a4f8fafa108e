// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jflat"
	"github.com/creachadair/jflat/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const config = `{
  "bind": "0.0.0.0",
  "flows": [
    {"meta": {"name": "inner"}, "name": "web", "port": 8080, "file": "/var/log/web.log"},
    {"name": "tab\tbed", "port": 9090, "file": "/var/log/b.log"}
  ]
}`

const jwccConfig = `{
  // Listen everywhere.
  "bind": "0.0.0.0",
  "flows": [
    {"name": "web", "port": 8080, "file": "w.log",},
  ],
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// run executes the command line args and returns its standard output and
// standard error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "v1.2.3", Commit: "abc", Date: "today"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSubcommands(t *testing.T) {
	cmd := cli.NewRootCommand(cli.BuildInfo{})
	assert.Equal(t, "jflat", cmd.Use)
	for _, name := range []string{"tokens", "get", "flows", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, "find %q", name) {
			assert.Equal(t, name, sub.Name())
		}
	}
	for _, flag := range []string{"debug", "jwcc"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q", flag)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jflat v1.2.3 (commit abc, built today)\n", out)
}

func TestGet(t *testing.T) {
	path := writeFile(t, "config.json", config)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"bind"}, "0.0.0.0"},
		{[]string{"flows", "1", "port"}, "9090"},
		{[]string{"--", "flows", "-1", "name"}, "tab\tbed"},
		{[]string{"--raw", "--", "flows", "-1", "name"}, `tab\tbed`},
		{[]string{"$.flows[0].file"}, "/var/log/web.log"},
		{[]string{"flows", "$[0].port"}, "8080"},
		{[]string{"flows", "0", "meta"}, `{"name": "inner"}`},

		// Scanning for a key finds the first match after the object; --member
		// restricts the search to direct members.
		{[]string{"flows", "0", "name"}, "inner"},
		{[]string{"--member", "flows", "0", "name"}, "web"},
		{[]string{"flows", "0", "meta", "port"}, "8080"},
	}
	for _, test := range tests {
		args := append([]string{"get", path}, test.args...)
		out, _, err := run(t, args...)
		if assert.NoError(t, err, "get %q", test.args) {
			assert.Equal(t, test.want+"\n", out, "get %q", test.args)
		}
	}
}

func TestGetErrors(t *testing.T) {
	path := writeFile(t, "config.json", config)
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"nonesuch"}, jflat.ErrKeyNotFound},
		{[]string{"flows", "5"}, jflat.ErrOutOfBounds},
		{[]string{"bind", "x"}, jflat.ErrInvalidType},
		{[]string{"--member", "flows", "0", "meta", "port"}, jflat.ErrKeyNotFound},
	}
	for _, test := range tests {
		args := append([]string{"get", path}, test.args...)
		_, _, err := run(t, args...)
		assert.ErrorIs(t, err, test.want, "get %q", test.args)
	}

	_, _, err := run(t, "get", path, "$.flows[")
	assert.ErrorContains(t, err, "invalid path")

	_, _, err = run(t, "get", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "bad.json", `{"a": [1, 2`)
	_, _, err = run(t, "get", bad)
	assert.ErrorIs(t, err, jflat.ErrPartial)
}

func TestTokens(t *testing.T) {
	path := writeFile(t, "small.json", `{"a": [1, "two"]}`)
	out, _, err := run(t, "tokens", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `   0 object    0-17        size=1 skip=5 "{\"a\": [1, \"two\"]}"`, lines[0])
	assert.Equal(t, `   1 string    2-3         size=1 skip=4 "a"`, lines[1])
	assert.Equal(t, `   4 string    11-14       size=0 skip=1 "two"`, lines[4])
}

func TestTokensJWCC(t *testing.T) {
	path := writeFile(t, "small.jwcc", `[1, /* c */ {"a": 2,},] // end`)
	out, _, err := run(t, "--jwcc", "tokens", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `   0 array     0-23        size=2 skip=5 "[1,         {\"a\": 2 } ]"`, lines[0])
	assert.Equal(t, `   2 object    12-21       size=1 skip=3 "{\"a\": 2 }"`, lines[2])
	assert.NotContains(t, out, "/*")
}

func TestFlows(t *testing.T) {
	path := writeFile(t, "config.json", config)

	out, _, err := run(t, "flows", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "g:bind = 0.0.0.0\n\nFlows\n=====\n\n[web]\nport = 8080\n"), "output:\n%s", out)

	out, _, err = run(t, "flows", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "bind: 0.0.0.0\n")
	assert.Contains(t, out, "port: 9090\n")

	_, _, err = run(t, "flows", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestJWCC(t *testing.T) {
	path := writeFile(t, "config.jwcc", jwccConfig)

	_, _, err := run(t, "flows", path)
	assert.ErrorIs(t, err, jflat.ErrInvalid)

	out, _, err := run(t, "--jwcc", "flows", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[web]\nport = 8080\nfile = w.log\n")
}

func TestDebugLogging(t *testing.T) {
	path := writeFile(t, "config.json", config)

	_, errOut, err := run(t, "get", path, "bind")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	_, errOut, err = run(t, "--debug", "get", path, "bind")
	require.NoError(t, err)
	assert.Contains(t, errOut, "loaded document")
	assert.Contains(t, errOut, "parsed document")
}
