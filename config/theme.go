package config

import (
	"fmt"
	"os"

	"github.com/animus/anima"
	"gopkg.in/yaml.v3"
)

// LoadThemes reads user-defined theme palettes from a YAML file keyed by
// theme name. Entries omit fields freely; omitted colors keep the default
// theme's value.
func LoadThemes(path string) (map[string]anima.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme file: %w", err)
	}

	var raw map[string]anima.Theme
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("theme file %s: %w", path, err)
	}

	themes := make(map[string]anima.Theme, len(raw))
	base := anima.DefaultTheme()
	for name, t := range raw {
		themes[name] = fillTheme(t, base)
	}
	return themes, nil
}

// ResolveTheme picks the theme named in the config, checking the user's
// theme file first, then the built-in palettes. Unknown names fall back to
// the default theme rather than failing startup.
func ResolveTheme(c *Config) anima.Theme {
	if c.ThemeFile != "" {
		if themes, err := LoadThemes(c.ThemeFile); err == nil {
			if t, ok := themes[c.Theme]; ok {
				return t
			}
		}
	}
	if t, ok := anima.NamedTheme(c.Theme); ok {
		return t
	}
	return anima.DefaultTheme()
}

func fillTheme(t, base anima.Theme) anima.Theme {
	if t.UserMsg == "" {
		t.UserMsg = base.UserMsg
	}
	if t.Reasoning == "" {
		t.Reasoning = base.Reasoning
	}
	if t.Error == "" {
		t.Error = base.Error
	}
	if t.Success == "" {
		t.Success = base.Success
	}
	if t.Muted == "" {
		t.Muted = base.Muted
	}
	if t.Accent == "" {
		t.Accent = base.Accent
	}
	return t
}
