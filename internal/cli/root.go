// Package cli implements the textexpand command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riverfjs/textexpand"
	"github.com/riverfjs/textexpand/internal/config"
	"github.com/riverfjs/textexpand/internal/types"
)

type ctxKey string

const appKey ctxKey = "app"

// App carries what subcommands need once flags and config are resolved.
type App struct {
	V        *viper.Viper
	Config   *textexpand.RenderConfig
	Registry *textexpand.Registry
}

// Options returns the expansion options derived from the config.
func (a *App) Options() []textexpand.Option {
	return []textexpand.Option{textexpand.WithConfig(a.Config)}
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	def := types.DefaultRenderConfig()

	cmd := &cobra.Command{
		Use:           "textexpand",
		Short:         "Expand {{trigger}} placeholders and encode Markdown for the raw-span transport",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			app, err := buildApp(v)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey, app))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (yaml|json|toml)")
	pf.Int("max-depth", def.MaxDepth, "maximum placeholder nesting")
	pf.String("root-domain", def.RootDomain, "auto-link bare host names under this domain (empty disables)")
	pf.Bool("breaks", def.Breaks, "render single newlines as line breaks")
	pf.String("triggers", "", "YAML or JSONC file with extra triggers")
	pf.String("raw-open", def.Raw.Open, "raw span open delimiter")
	pf.String("raw-close", def.Raw.Close, "raw span close delimiter")

	cmd.AddCommand(newExpandCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newTriggersCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// buildApp validates the resolved config and loads the trigger table.
func buildApp(v *viper.Viper) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	registry, err := textexpand.RegistryWithBuiltins(config.BuiltinOptions(v))
	if err != nil {
		return nil, err
	}
	if path := config.TriggersFile(v); path != "" {
		if err := textexpand.LoadTriggers(registry, path); err != nil {
			return nil, fmt.Errorf("loading triggers: %w", err)
		}
	}
	return &App{
		V:        v,
		Config:   config.RenderConfig(v),
		Registry: registry,
	}, nil
}

func getApp(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appKey).(*App)
	if !ok {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}
