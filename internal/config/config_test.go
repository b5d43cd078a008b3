package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/riverfjs/textexpand/internal/types"
)

// isolate keeps user config files out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	return tmp
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	v := viper.New()
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, types.DefaultRenderConfig(), RenderConfig(v))
	assert.Equal(t, "01/02/2006", BuiltinOptions(v).DateFormat)
	assert.Equal(t, "", TriggersFile(v))
	assert.NoError(t, CheckConfigValidity(v))
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.yaml", `
max_depth: 3
root_domain: example.org
raw:
  open: "<<"
  close: ">>"
builtins:
  date_format: "2006-01-02"
`)
	t.Setenv("TEXTEXPAND_ROOT_DOMAIN", "corp.example.net")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(context.Background(), v))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("max-depth", 10, "")
	fs.Bool("unrelated", false, "")
	require.NoError(t, fs.Parse([]string{"--max-depth=5"}))
	require.NoError(t, BindFlags(v, fs))

	rc := RenderConfig(v)
	assert.Equal(t, 5, rc.MaxDepth, "flag beats file")
	assert.Equal(t, "corp.example.net", rc.RootDomain, "env beats file")
	assert.Equal(t, types.Delimiters{Open: "<<", Close: ">>"}, rc.Raw)
	assert.Equal(t, types.DefaultPlaceholderDelimiters(), rc.Placeholder)
	assert.Equal(t, "2006-01-02", BuiltinOptions(v).DateFormat)
	assert.Equal(t, "15:04", BuiltinOptions(v).TimeFormat)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := isolate(t)
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "missing.yaml"))
	err := Load(context.Background(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("max_depth", -1)
	v.Set("raw.open", "")
	v.Set("raw.close", "[/code]")
	v.Set("placeholder.open", "%%")
	v.Set("placeholder.close", "%%")
	v.Set("root_domain", "not a domain")
	v.Set("triggers_file", "/nonexistent/triggers.yaml")

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"max_depth must not be negative",
		"raw.open and raw.close are required",
		"placeholder.open and placeholder.close must differ",
		`root_domain "not a domain" is not a domain name`,
		"triggers_file:",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestRenderDefaultYAML(t *testing.T) {
	out := RenderDefaultYAML()
	assert.Contains(t, out, "# Delimiter that opens a raw span")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, 10, parsed["max_depth"])
	assert.Equal(t, "service-now.com", parsed["root_domain"])
	raw, ok := parsed["raw"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "[code]", raw["open"])
	assert.Equal(t, "[/code]", raw["close"])
}

func TestRenderSettings(t *testing.T) {
	out, err := RenderSettings(map[string]any{"max_depth": 4})
	require.NoError(t, err)
	assert.Equal(t, "max_depth: 4\n", out)
}
