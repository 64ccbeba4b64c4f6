// Package render turns model replies into styled terminal text.
package render

// Options configures the markdown renderer. It is comparable and used as the
// renderer pool key.
type Options struct {
	Width int
	// Style is "premiere", a glamour style name, or a path to a JSON style file
	Style            string
	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the options used when no config file exists
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            ThemePremiere,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns a copy wrapped at width
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns a copy using style
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns a copy with :emoji: expansion on or off
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}
