// Package config resolves CLI configuration with viper.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/riverfjs/textexpand/internal/trigger"
	"github.com/riverfjs/textexpand/internal/types"
)

// ConfigOption is one configuration key with its default and meaning.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	rc := types.DefaultRenderConfig()
	bo := trigger.DefaultBuiltinOptions()
	return []ConfigOption{
		{Key: "max_depth", Default: rc.MaxDepth, Comment: "Maximum placeholder nesting before the sentinel is substituted"},
		{Key: "root_domain", Default: rc.RootDomain, Comment: "Bare host names under this domain become https links"},
		{Key: "breaks", Default: rc.Breaks, Comment: "Render single newlines as line breaks"},
		{Key: "triggers_file", Default: "", Comment: "YAML or JSONC file with extra trigger definitions"},

		{Key: "raw.open", Default: rc.Raw.Open, Comment: "Delimiter that opens a raw span"},
		{Key: "raw.close", Default: rc.Raw.Close, Comment: "Delimiter that closes a raw span"},
		{Key: "placeholder.open", Default: rc.Placeholder.Open, Comment: "Delimiter that opens a placeholder"},
		{Key: "placeholder.close", Default: rc.Placeholder.Close, Comment: "Delimiter that closes a placeholder"},

		{Key: "builtins.date_format", Default: bo.DateFormat, Comment: "Go time layout for {{today}}, {{yesterday}} and {{tomorrow}}"},
		{Key: "builtins.time_format", Default: bo.TimeFormat, Comment: "Go time layout for {{time}}"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env < flags.
// The provided Viper instance is mutated with defaults, file contents, and env.
// A missing config file is not an error unless it was set explicitly.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "textexpand"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "textexpand"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	// Environment variables: TEXTEXPAND_* (e.g. TEXTEXPAND_RAW_OPEN)
	v.SetEnvPrefix("textexpand")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"max-depth":   "max_depth",
	"root-domain": "root_domain",
	"breaks":      "breaks",
	"triggers":    "triggers_file",
	"raw-open":    "raw.open",
	"raw-close":   "raw.close",
}

// BindFlags binds the known flags present in fs so explicitly set flags take
// precedence over every other source.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// RenderConfig builds the renderer configuration from v.
func RenderConfig(v *viper.Viper) *types.RenderConfig {
	return &types.RenderConfig{
		Raw: types.Delimiters{
			Open:  v.GetString("raw.open"),
			Close: v.GetString("raw.close"),
		},
		Placeholder: types.Delimiters{
			Open:  v.GetString("placeholder.open"),
			Close: v.GetString("placeholder.close"),
		},
		MaxDepth:   v.GetInt("max_depth"),
		RootDomain: v.GetString("root_domain"),
		Breaks:     v.GetBool("breaks"),
	}
}

// BuiltinOptions builds the built-in trigger options from v.
func BuiltinOptions(v *viper.Viper) trigger.BuiltinOptions {
	opts := trigger.DefaultBuiltinOptions()
	if s := v.GetString("builtins.date_format"); s != "" {
		opts.DateFormat = s
	}
	if s := v.GetString("builtins.time_format"); s != "" {
		opts.TimeFormat = s
	}
	return opts
}

// TriggersFile returns the configured trigger file with ~ expanded.
func TriggersFile(v *viper.Viper) string {
	path := strings.TrimSpace(v.GetString("triggers_file"))
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// CheckConfigValidity reports every invalid setting in v.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	if v.GetInt("max_depth") < 0 {
		errs = append(errs, errors.New("max_depth must not be negative"))
	}
	for _, section := range []string{"raw", "placeholder"} {
		openDelim, closeDelim := v.GetString(section+".open"), v.GetString(section+".close")
		switch {
		case openDelim == "" || closeDelim == "":
			errs = append(errs, fmt.Errorf("%s.open and %s.close are required", section, section))
		case openDelim == closeDelim:
			errs = append(errs, fmt.Errorf("%s.open and %s.close must differ", section, section))
		}
	}
	if rd := v.GetString("root_domain"); rd != "" && (strings.ContainsAny(rd, " /:") || !strings.Contains(rd, ".")) {
		errs = append(errs, fmt.Errorf("root_domain %q is not a domain name", rd))
	}
	if path := TriggersFile(v); path != "" {
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("triggers_file: %w", err))
		}
	}

	return errors.Join(errs...)
}
