// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jflat

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tailscale/hujson"
)

// initialBufferSize is the capacity of the load buffer before any growth.
const initialBufferSize = 256

// ErrNotLoaded is recorded by Parse when no input has been loaded.
var ErrNotLoaded = errors.New("no document loaded")

// A Document owns a source buffer and the token array produced by parsing
// it. Elements issued by Parse refer to both; they become stale when the
// document is reloaded or reparsed.
//
// A Document is not safe for concurrent use.
type Document struct {
	buf    []byte // the loaded input
	src    []byte // the buffer the current tokens refer to
	loaded bool
	jwcc   bool

	tz   Tokenizer
	toks []Token
	gen  uint64
	err  error
	log  *log.Logger
}

// NewDocument constructs a new empty Document.
func NewDocument() *Document {
	return &Document{log: log.New(io.Discard)}
}

// AllowJWCC configures d to accept (true) or reject (false) JSON With Commas
// and Comments. When enabled, comments and trailing commas are replaced by
// spaces before tokenizing, so token offsets remain valid for the loaded
// buffer.
func (d *Document) AllowJWCC(ok bool) { d.jwcc = ok }

// SetLogger sets the logger used for debug tracing of load and parse
// operations. A nil logger discards the trace.
func (d *Document) SetLogger(lg *log.Logger) {
	if lg == nil {
		lg = log.New(io.Discard)
	}
	d.log = lg
}

func (d *Document) logger() *log.Logger {
	if d.log == nil {
		d.log = log.New(io.Discard)
	}
	return d.log
}

// Load reads the complete contents of the named file into d.
//
// If the file cannot be opened, d is left unchanged: a new document remains
// empty and unloaded, and a subsequent Parse yields an invalid element. The
// error is returned for callers that want to report it.
func (d *Document) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		d.logger().Debug("open failed", "path", path, "error", err)
		return err
	}
	defer f.Close()
	if err := d.LoadReader(f); err != nil {
		return err
	}
	d.logger().Debug("loaded document", "path", path, "bytes", len(d.buf))
	return nil
}

// LoadReader reads the complete contents of r into d, replacing any
// previously loaded input. If reading fails, d is left empty and unloaded.
//
// The buffer starts with a fixed capacity and grows by half its size each
// time it fills before the input is exhausted. The result is trimmed to the
// number of bytes read.
func (d *Document) LoadReader(r io.Reader) error {
	buf := make([]byte, initialBufferSize)
	var n int
	for {
		if n == len(buf) {
			grown := make([]byte, len(buf)+len(buf)/2)
			copy(grown, buf)
			buf = grown
		}
		nr, err := r.Read(buf[n:])
		n += nr
		if err == io.EOF {
			break
		} else if err != nil {
			d.reset(nil, false)
			return err
		}
	}
	d.reset(buf[:n:n], true)
	return nil
}

// SetBuffer makes src the input of d, without copying it. The caller must not
// modify src while d or any element derived from it is in use.
func (d *Document) SetBuffer(src []byte) { d.reset(src, src != nil) }

func (d *Document) reset(buf []byte, loaded bool) {
	d.buf, d.loaded = buf, loaded
	d.src, d.toks, d.err = nil, nil, nil
	d.gen++
}

// Buffer returns the input loaded into d, or nil if nothing is loaded.
func (d *Document) Buffer() []byte { return d.buf }

// Loaded reports whether input has been loaded into d.
func (d *Document) Loaded() bool { return d.loaded }

// Tokens returns the token array produced by the most recent successful
// Parse. The caller must not modify it.
func (d *Document) Tokens() []Token { return d.toks }

// Source returns the buffer the tokens of the most recent successful Parse
// refer to. It has the same length as the loaded input; with JWCC enabled,
// comments and trailing commas are replaced by spaces. The caller must not
// modify it.
func (d *Document) Source() []byte { return d.src }

// Err returns the error recorded by the most recent call to Parse, if any.
func (d *Document) Err() error { return d.err }

// Parse tokenizes the input loaded into d and returns the root element.
//
// The input is tokenized twice: once to count the tokens required, and once
// to fill an array of exactly that size. If d has no input, or the input
// cannot be tokenized, Parse returns an invalid element, leaving any previous
// tokens in place; the cause is available from Err.
//
// A successful Parse replaces the token array of d. Elements issued by
// earlier calls become stale.
func (d *Document) Parse() Element {
	d.err = nil
	if !d.loaded {
		return d.fail(ErrNotLoaded)
	}

	src := d.buf
	if d.jwcc {
		// A line comment must end with a newline, even at the end of input.
		std, err := hujson.Standardize(append(bytes.Clone(d.buf), '\n'))
		if err != nil {
			return d.fail(err)
		}
		src = std[:len(d.buf):len(d.buf)]
	}

	d.tz.Init()
	n, err := d.tz.Parse(src, nil)
	if err != nil {
		return d.fail(err)
	}
	toks := make([]Token, n)
	d.tz.Init() // the sizing pass consumed the input
	if _, err := d.tz.Parse(src, toks); err != nil {
		return d.fail(err)
	}
	d.logger().Debug("parsed document", "bytes", len(src), "tokens", n)

	d.src, d.toks = src, toks
	d.gen++
	return Element{toks: d.toks, src: d.src, doc: d, gen: d.gen}
}

func (d *Document) fail(err error) Element {
	d.logger().Debug("parse failed", "error", err)
	d.err = err
	return Element{}
}
