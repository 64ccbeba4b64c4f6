// Package banner turns the header image into terminal art.
//
// Each terminal cell shows two vertically stacked pixels using the upper half
// block glyph: the foreground paints the top pixel and the background the
// bottom one. Cells are roughly twice as tall as they are wide, so this keeps
// the image's aspect ratio.
package banner

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultWidth matches the window width used when the terminal size is unknown
	DefaultWidth = 78
	// MinWidth is the narrowest banner worth drawing
	MinWidth = 16
	// MaxRows caps the banner height so the chat log keeps most of the screen
	MaxRows = 12

	halfBlock = "▀"
)

// ErrBannerNotFound is returned when the banner file does not exist
var ErrBannerNotFound = fmt.Errorf("banner not found: %w", os.ErrNotExist)

// Banner is a decoded image rendered for a given width
type Banner struct {
	Path string
	// Width and Rows are the rendered size in terminal cells
	Width int
	Rows  int

	source         image.Image
	requestedWidth int
	lines          []string
}

// Load reads the image at path and renders it width cells wide
func Load(path string, width int) (*Banner, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBannerNotFound, path)
		}
		return nil, fmt.Errorf("failed to open banner: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode banner %s: %w", path, err)
	}

	b := &Banner{Path: path, source: img}
	b.Resize(width)
	return b, nil
}

// FromImage renders an already decoded image
func FromImage(img image.Image, width int) *Banner {
	b := &Banner{source: img}
	b.Resize(width)
	return b
}

// Resize re-renders the banner for a new width. A no-op when the width is unchanged.
func (b *Banner) Resize(width int) {
	if width < MinWidth {
		width = MinWidth
	}
	if b.source == nil || (width == b.requestedWidth && b.lines != nil) {
		return
	}
	b.lines = render(b.source, width)
	b.Rows = len(b.lines)
	if b.Rows > 0 {
		b.Width = lipgloss.Width(b.lines[0])
	}
	b.requestedWidth = width
}

// Lines returns the rendered rows
func (b *Banner) Lines() []string {
	return b.lines
}

// String returns the rendered banner, one terminal row per line
func (b *Banner) String() string {
	return strings.Join(b.lines, "\n")
}

// Placeholder is the text shown in the header when the banner cannot be drawn
func Placeholder(path string, err error) string {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Sprintf("Banner '%s' não encontrado", path)
	}
	return "Erro ao carregar banner."
}

// Size returns the cell size an image of w x h pixels takes at width columns
func Size(w, h, width int) (cols, rows int) {
	if w <= 0 || h <= 0 || width <= 0 {
		return 0, 0
	}
	cols = width
	pixelRows := int(float64(h)*float64(cols)/float64(w) + 0.5)
	rows = (pixelRows + 1) / 2
	if rows > MaxRows {
		rows = MaxRows
		cols = int(float64(w)*float64(rows*2)/float64(h) + 0.5)
		if cols < 1 {
			cols = 1
		}
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func render(src image.Image, width int) []string {
	bounds := src.Bounds()
	cols, rows := Size(bounds.Dx(), bounds.Dy(), width)
	if cols == 0 || rows == 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	lines := make([]string, 0, rows)
	var sb strings.Builder
	for y := 0; y < rows*2; y += 2 {
		sb.Reset()
		for x := 0; x < cols; x++ {
			cell := lipgloss.NewStyle().
				Foreground(hexColor(dst.At(x, y))).
				Background(hexColor(dst.At(x, y+1)))
			sb.WriteString(cell.Render(halfBlock))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
