package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverfjs/textexpand"
)

func newRenderCmd() *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Encode Markdown for the raw-span transport without expanding placeholders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			r := textexpand.Render(input, app.Options()...)
			fmt.Fprintln(cmd.OutOrStdout(), r.Text)
			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "spans: %d, escape cost: %d\n", r.Spans, r.Cost)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "print raw span count and escape cost to stderr")
	return cmd
}
