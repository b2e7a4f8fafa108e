// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokensCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token array of a JSON file",
		Long: `Print one line for each token of the file: its index, kind, byte span,
child count, subtree size, and source text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadDocument(cmd, opts, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			src := d.Source()
			for i, tk := range d.Tokens() {
				text := src[tk.Start:tk.End]
				if len(text) > 40 {
					text = append(text[:37:37], "..."...)
				}
				fmt.Fprintf(out, "%4d %-9v %-11s size=%d skip=%d %q\n",
					i, tk.Kind, tk.Span(), tk.Size, tk.Skip, text)
			}
			return nil
		},
	}
}
