package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// upper half block: foreground paints the top pixel, background the bottom
const halfBlock = "▀"

// renderAvatar draws img as cols x rows terminal cells, two pixels per cell.
func renderAvatar(img image.Image, cols, rows int) string {
	b := img.Bounds()
	if b.Empty() || cols < 1 || rows < 1 {
		return placeholder(cols, rows)
	}

	h := rows * 2
	var sb strings.Builder
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range cols {
			top := sample(img, b, col, row*2, cols, h)
			bottom := sample(img, b, col, row*2+1, cols, h)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render(halfBlock))
		}
	}
	return sb.String()
}

// sample picks the nearest source pixel for target pixel (x, y) of a w x h grid.
func sample(img image.Image, b image.Rectangle, x, y, w, h int) lipgloss.Color {
	sx := b.Min.X + x*b.Dx()/w
	sy := b.Min.Y + y*b.Dy()/h
	c := color.RGBAModel.Convert(img.At(sx, sy)).(color.RGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// placeholder is the grey box shown until an image arrives.
func placeholder(cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	line := zstyle.MutedText.Render(strings.Repeat("░", cols))
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
