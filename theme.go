package anima

// Theme defines semantic color mappings. Values are lipgloss-compatible
// color strings: ANSI indices ("0"–"15") or hex ("#88c0d0"). The default
// theme uses ANSI indices so the user's terminal palette determines the
// actual RGB values; named themes pin explicit colors.
type Theme struct {
	UserMsg   string `yaml:"user_msg"`
	Reasoning string `yaml:"reasoning"`
	Error     string `yaml:"error"`
	Success   string `yaml:"success"`
	Muted     string `yaml:"muted"`
	Accent    string `yaml:"accent"`
}

// DefaultTheme returns the adaptive ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   "4",
		Reasoning: "5",
		Error:     "1",
		Success:   "2",
		Muted:     "8",
		Accent:    "6",
	}
}

// Built-in named themes, ported from the original application's palettes.
var namedThemes = map[string]Theme{
	"default": DefaultTheme(),
	"vscode-dark": {
		UserMsg:   "#007acc",
		Reasoning: "#969696",
		Error:     "#f44747",
		Success:   "#4ec9b0",
		Muted:     "#969696",
		Accent:    "#007acc",
	},
	"nord": {
		UserMsg:   "#88c0d0",
		Reasoning: "#d8dee9",
		Error:     "#bf616a",
		Success:   "#a3be8c",
		Muted:     "#4c566a",
		Accent:    "#88c0d0",
	},
	"dracula": {
		UserMsg:   "#bd93f9",
		Reasoning: "#6272a4",
		Error:     "#ff5555",
		Success:   "#50fa7b",
		Muted:     "#6272a4",
		Accent:    "#bd93f9",
	},
	"gruvbox-dark": {
		UserMsg:   "#458588",
		Reasoning: "#a89984",
		Error:     "#fb4934",
		Success:   "#b8bb26",
		Muted:     "#665c54",
		Accent:    "#fabd2f",
	},
	"monokai": {
		UserMsg:   "#66d9ef",
		Reasoning: "#75715e",
		Error:     "#f92672",
		Success:   "#a6e22e",
		Muted:     "#75715e",
		Accent:    "#66d9ef",
	},
}

// NamedTheme looks up a built-in theme by name.
func NamedTheme(name string) (Theme, bool) {
	t, ok := namedThemes[name]
	return t, ok
}

// ThemeNames returns the built-in theme names. Order is unspecified.
func ThemeNames() []string {
	names := make([]string, 0, len(namedThemes))
	for name := range namedThemes {
		names = append(names, name)
	}
	return names
}
