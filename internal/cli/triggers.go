package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTriggersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triggers",
		Short: "Inspect registered triggers",
	}
	cmd.AddCommand(newTriggersListCmd())
	cmd.AddCommand(newTriggersSearchCmd())
	return cmd
}

func newTriggersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every trigger with its aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAMES\tKIND\tDESCRIPTION")
			for _, d := range app.Registry.Descriptors() {
				kind := "static"
				if d.Value.IsComputed() {
					kind = "computed"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Join(d.Names, ", "), kind, d.Description)
			}
			return w.Flush()
		},
	}
}

func newTriggersSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search trigger names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			names := app.Registry.Suggest(args[0], limit)
			if len(names) == 0 {
				return fmt.Errorf("no trigger matches %q", args[0])
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results (0 for all)")
	return cmd
}
