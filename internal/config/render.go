package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderDefaultYAML renders a commented YAML config with defaults from
// GetConfigOptions.
func RenderDefaultYAML() string {
	var b strings.Builder
	b.WriteString("# textexpand configuration (YAML)\n")

	sections := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)

	for _, o := range GetConfigOptions() {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			writeYAMLOption(&b, "", o.Key, o.Default, o.Comment)
			continue
		}
		if _, seen := sections[section]; !seen {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}

	for _, section := range sectionOrder {
		b.WriteString("\n" + section + ":\n")
		for _, o := range sections[section] {
			writeYAMLOption(&b, "  ", o.Key, o.Default, o.Comment)
		}
	}
	return b.String()
}

func writeYAMLOption(b *strings.Builder, indent, key string, value any, comment string) {
	if comment != "" {
		b.WriteString(indent + "# " + comment + "\n")
	}
	b.WriteString(fmt.Sprintf("%s%s: %s\n", indent, key, yamlScalar(value)))
}

// yamlScalar formats a default value the way yaml.v3 would write it.
func yamlScalar(value any) string {
	out, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return strings.TrimSuffix(string(out), "\n")
}

// RenderSettings renders the effective settings as YAML.
func RenderSettings(settings map[string]any) (string, error) {
	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("encoding settings: %w", err)
	}
	return string(out), nil
}
