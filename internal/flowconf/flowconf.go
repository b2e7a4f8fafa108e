// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package flowconf decodes a flow configuration document.
//
// A flow configuration is a JSON object with a "bind" address and an array
// of "flows", each an object naming a port and a log file:
//
//	{
//	  "bind": "0.0.0.0",
//	  "flows": [{"name": "web", "port": 8080, "file": "/var/log/web.log"}]
//	}
package flowconf

import (
	"fmt"
	"io"

	"github.com/creachadair/jflat"
	"gopkg.in/yaml.v3"
)

// Config is a decoded flow configuration.
type Config struct {
	Bind  string `yaml:"bind"`
	Flows []Flow `yaml:"flows"`
}

// A Flow is a single entry of the flows array.
type Flow struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
	File string `yaml:"file"`
}

// Decode decodes the configuration rooted at root.
//
// Each flow must have a name and a port. A flow without a file is accepted
// with an empty File.
func Decode(root jflat.Element) (*Config, error) {
	obj, err := root.Object()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	bind, err := member(obj, "bind")
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if cfg.Bind, err = bind.Unescape(); err != nil {
		return nil, fmt.Errorf("config: bind: %w", err)
	}

	fv, err := member(obj, "flows")
	if err != nil {
		return nil, err
	}
	flows, err := fv.Array()
	if err != nil {
		return nil, fmt.Errorf("config: flows: %w", err)
	}
	for i, elt := range flows.All() {
		f, err := decodeFlow(elt)
		if err != nil {
			return nil, fmt.Errorf("config: flow %d: %w", i, err)
		}
		cfg.Flows = append(cfg.Flows, f)
	}
	return cfg, nil
}

func decodeFlow(elt jflat.Element) (Flow, error) {
	obj, err := elt.Object()
	if err != nil {
		return Flow{}, err
	}
	var f Flow
	name, err := obj.Member("name")
	if err != nil {
		return Flow{}, err
	}
	if f.Name, err = name.Unescape(); err != nil {
		return Flow{}, fmt.Errorf("name: %w", err)
	}
	port, err := obj.Member("port")
	if err != nil {
		return Flow{}, err
	}
	if f.Port, err = port.Int(); err != nil {
		return Flow{}, fmt.Errorf("port: %w", err)
	}
	if file, err := obj.Member("file"); err == nil {
		if f.File, err = file.Unescape(); err != nil {
			return Flow{}, fmt.Errorf("file: %w", err)
		}
	}
	return f, nil
}

// member looks up a required top-level member of obj.
func member(obj jflat.Object, key string) (jflat.Element, error) {
	v, err := obj.Member(key)
	if err != nil {
		return jflat.Element{}, fmt.Errorf("config: %w", err)
	}
	return v, nil
}

// WriteText writes a plain-text listing of c to w.
func (c *Config) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "g:bind = %s\n\nFlows\n=====\n\n", c.Bind); err != nil {
		return err
	}
	for _, f := range c.Flows {
		if _, err := fmt.Fprintf(w, "[%s]\nport = %d\nfile = %s\n\n", f.Name, f.Port, f.File); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML writes c to w as a YAML document.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
