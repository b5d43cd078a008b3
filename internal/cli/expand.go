package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riverfjs/textexpand"
)

type lookupJSON struct {
	Name   string `json:"name"`
	Depth  int    `json:"depth"`
	Status string `json:"status"`
}

type expandJSON struct {
	Text    string             `json:"text"`
	Ranges  []textexpand.Range `json:"ranges"`
	Caret   int                `json:"caret"`
	Spans   int                `json:"spans"`
	Lookups []lookupJSON       `json:"lookups,omitempty"`
}

func newExpandCmd() *cobra.Command {
	var caretPos int
	var utf16, markdown, asJSON bool

	cmd := &cobra.Command{
		Use:   "expand [file|-]",
		Short: "Expand placeholders and cursor markers",
		Long: `Expand reads text from a file or stdin, replaces every {{trigger}}
placeholder and CURSOR() marker, and prints the result. With --markdown the
result is also rendered and encoded for the raw-span transport.

Caret ranges go to stderr, or into the document with --json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			// 默认光标在末尾
			if caretPos < 0 {
				caretPos = len(input)
				if utf16 {
					caretPos = textexpand.UTF16Len(input)
				}
			}

			opts := append(app.Options(), textexpand.WithUTF16(utf16))
			var res textexpand.Result
			if markdown {
				res = textexpand.ExpandMarkdown(app.Registry, input, caretPos, opts...)
			} else {
				res = textexpand.Expand(app.Registry, input, caretPos, opts...)
			}

			if asJSON {
				return writeExpandJSON(cmd, res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			for i, r := range res.Ranges {
				fmt.Fprintf(cmd.ErrOrStderr(), "range %d: %d-%d\n", i, r.Start, r.End)
			}
			for _, l := range res.Lookups {
				switch l.Status {
				case textexpand.Expanded:
				case textexpand.Unknown:
					if hints := app.Registry.Suggest(l.Name, 3); len(hints) > 0 {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (did you mean %s?)\n", l.Status, l.Name, strings.Join(hints, ", "))
						continue
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", l.Status, l.Name)
				default:
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", l.Status, l.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&caretPos, "caret", -1, "caret offset in the input (default: end of input)")
	cmd.Flags().BoolVar(&utf16, "utf16", false, "count caret and ranges in UTF-16 code units")
	cmd.Flags().BoolVarP(&markdown, "markdown", "m", false, "render the expansion as Markdown")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print text, ranges and lookups as JSON")
	return cmd
}

func writeExpandJSON(cmd *cobra.Command, res textexpand.Result) error {
	out := expandJSON{
		Text:   res.Text,
		Ranges: res.Ranges,
		Caret:  res.Caret,
		Spans:  res.Spans,
	}
	for _, l := range res.Lookups {
		out.Lookups = append(out.Lookups, lookupJSON{Name: l.Name, Depth: l.Depth, Status: l.Status.String()})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
