// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jflat"
	"github.com/creachadair/jflat/internal/logging"
	"github.com/creachadair/jflat/jpath"
	"github.com/spf13/cobra"
)

func newGetCommand(opts *options) *cobra.Command {
	var raw, member bool
	cmd := &cobra.Command{
		Use:   "get FILE [PATH...]",
		Short: "Print the value at a path in a JSON file",
		Long: `Print the value reached by following a path from the root of the file.

Each PATH argument is either an object key, an array index (negative indices
count from the end), or a path expression beginning with "$" such as
$.flows[0].port. String values are printed with escapes decoded unless --raw
is set; other values are printed as they appear in the source.

Keys are matched by scanning forward from the enclosing object, so a key may
match inside an earlier member. Use --member to consider only direct members.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parsePath(args[1:])
			if err != nil {
				return err
			}
			_, root, err := loadDocument(cmd, opts, args[0])
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("get",
				logging.FieldPath, args[0], logging.FieldQuery, fmt.Sprint(keys...))

			v, err := walk(root, keys, member)
			if err != nil {
				return err
			}
			if !v.IsValid() {
				return fmt.Errorf("no value at %s", strings.Join(args[1:], " "))
			}
			text := string(v.Raw())
			if v.Kind() == jflat.StringKind && !raw {
				if text, err = v.Unescape(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print strings without decoding escapes")
	cmd.Flags().BoolVar(&member, "member", false, "match keys against direct members only")
	return cmd
}

// parsePath converts command-line path arguments to a key sequence.
func parsePath(args []string) ([]any, error) {
	var keys []any
	for _, arg := range args {
		if strings.HasPrefix(arg, "$") {
			e, err := jpath.Parse(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid path %q: %w", arg, err)
			}
			keys = append(keys, e.Keys()...)
		} else if n, err := strconv.Atoi(arg); err == nil {
			keys = append(keys, n)
		} else {
			keys = append(keys, arg)
		}
	}
	return keys, nil
}

// walk follows keys from root. If member is true, object keys are resolved
// against direct members only.
func walk(root jflat.Element, keys []any, member bool) (jflat.Element, error) {
	if !member {
		return root.Path(keys...)
	}
	cur := root
	for _, key := range keys {
		s, ok := key.(string)
		if !ok {
			v, err := cur.Path(key)
			if err != nil {
				return jflat.Element{}, err
			}
			cur = v
			continue
		}
		obj, err := cur.Object()
		if err != nil {
			return jflat.Element{}, err
		}
		if cur, err = obj.Member(s); err != nil {
			return jflat.Element{}, err
		}
	}
	return cur, nil
}
