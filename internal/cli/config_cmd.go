package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverfjs/textexpand/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), config.RenderDefaultYAML())
				return nil
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			out, err := config.RenderSettings(app.V.AllSettings())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the commented default config instead")
	return cmd
}
