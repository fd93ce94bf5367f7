package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// RenderDefaultTOML renders every option with its default value and
// comment, grouped into one TOML table per key prefix.
func RenderDefaultTOML() (string, error) {
	var b strings.Builder
	b.WriteString("# mdview configuration (TOML)\n\n")

	opts := GetConfigOptions()
	sections := make(map[string][]ConfigOption)
	var sectionOrder []string

	for _, o := range opts {
		section, key, found := strings.Cut(o.Key, ".")
		if !found {
			if err := writeTOMLOption(&b, o.Key, o.Default, o.Comment); err != nil {
				return "", err
			}
			continue
		}
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	b.WriteString("\n")

	for _, section := range sectionOrder {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			if err := writeTOMLOption(&b, o.Key, o.Default, o.Comment); err != nil {
				return "", err
			}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) error {
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	// Durations are written the way viper parses them back.
	if d, ok := value.(time.Duration); ok {
		value = d.String()
	}
	line, err := toml.Marshal(map[string]any{key: value})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	b.Write(line)
	return nil
}
