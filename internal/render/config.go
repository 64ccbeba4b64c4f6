package render

import (
	"os"

	"github.com/diogo/spielberg/internal/config"
)

// StyleEnv overrides the configured markdown style
const StyleEnv = "GLAMOUR_STYLE"

// FromMarkdownConfig converts the markdown section of the config file.
// An empty style keeps the default.
func FromMarkdownConfig(md config.MarkdownConfig) Options {
	opts := DefaultOptions()
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if style := os.Getenv(StyleEnv); style != "" {
		opts.Style = style
	}
	return opts
}

// LoadOptionsFromConfig reads the config file and applies GLAMOUR_STYLE.
// An unreadable config yields the defaults.
func LoadOptionsFromConfig() Options {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return FromMarkdownConfig(cfg.Markdown)
}

// LoadOptionsFromConfigWithWidth is LoadOptionsFromConfig wrapped at width
func LoadOptionsFromConfigWithWidth(width int) Options {
	return LoadOptionsFromConfig().WithWidth(width)
}
