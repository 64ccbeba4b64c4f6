package render

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names
const (
	ThemePremiere = "premiere"
	ThemeDark     = "dark"
	ThemeLight    = "light"
	ThemeDracula  = "dracula"
	ThemeNoTTY    = "notty"
	ThemeASCII    = "ascii"
)

// Premiere palette
const (
	premiereGold  = "#FFD700"
	premiereText  = "#E0E0E0"
	premiereWhite = "#FFFFFF"
	premiereRed   = "#8B0000"
	premiereCode  = "#2b2b2b"
	premiereMuted = "#8a8a8a"
)

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }

// PremiereStyle returns the glamour style used for replies: gold italic prose on the
// dark chat background, headings set on the curtain red.
func PremiereStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	cfg.Document.Color = stringPtr(premiereGold)
	cfg.Document.Italic = boolPtr(true)

	cfg.Heading.Color = stringPtr(premiereGold)
	cfg.Heading.Bold = boolPtr(true)
	cfg.H1.Color = stringPtr(premiereWhite)
	cfg.H1.BackgroundColor = stringPtr(premiereRed)
	cfg.H2.Color = stringPtr(premiereGold)
	cfg.H3.Color = stringPtr(premiereGold)

	cfg.Strong.Color = stringPtr(premiereWhite)
	cfg.Strong.Bold = boolPtr(true)
	cfg.Emph.Color = stringPtr(premiereText)
	cfg.Emph.Italic = boolPtr(true)

	cfg.Link.Color = stringPtr(premiereText)
	cfg.LinkText.Color = stringPtr(premiereWhite)
	cfg.BlockQuote.Color = stringPtr(premiereMuted)
	cfg.HorizontalRule.Color = stringPtr(premiereRed)

	cfg.Code.Color = stringPtr(premiereWhite)
	cfg.Code.BackgroundColor = stringPtr(premiereCode)

	return cfg
}

// builtinStyle returns the style config for styles defined in this package
func builtinStyle(name string) (ansi.StyleConfig, bool) {
	switch name {
	case ThemePremiere:
		return PremiereStyle(), true
	default:
		return ansi.StyleConfig{}, false
	}
}

// IsBuiltinStyle returns true if the style is a built-in style
// (either glamour built-in or one defined here).
func IsBuiltinStyle(style string) bool {
	if _, ok := builtinStyle(style); ok {
		return true
	}
	_, ok := styles.DefaultStyles[style]
	return ok
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the markdown styles offered to users.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemePremiere, Description: "Gold on black, the opening night look (default)"},
		{Name: ThemeDark, Description: "Glamour dark theme"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
