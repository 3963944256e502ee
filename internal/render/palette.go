package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	selectedBorder = "#ef4444"
	hoveredBorder  = "#ffffff"
	portFill       = "#ffffff"
	portStroke     = "#1f2937"
	pendingPort    = "#eab308"
	edgeHalo       = "#93c5fd"
)

// parseHex accepts #rgb and #rrggbb. Anything else is mid gray.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{0x66, 0x66, 0x66, 0xff}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

// textOn picks black or white text for legibility on bg.
func textOn(bg color.RGBA) lipgloss.Color {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum > 160 {
		return lipgloss.Color("#111827")
	}
	return lipgloss.Color("#ffffff")
}

// pixelColor un-premultiplies an RGBA pixel into a lipgloss color.
func pixelColor(c color.RGBA) lipgloss.Color {
	if c.A == 0 {
		return ""
	}
	r := uint32(c.R) * 0xff / uint32(c.A)
	g := uint32(c.G) * 0xff / uint32(c.A)
	b := uint32(c.B) * 0xff / uint32(c.A)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", min(r, 0xff), min(g, 0xff), min(b, 0xff)))
}
