// Package render paints an editor frame onto a grid of terminal cells. Shapes are
// rasterised at two pixels per cell and folded into half-block glyphs; labels are fitted
// in the node's font and laid over the result as text.
package render

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mindweaver/internal/editor"
)

// pixels with less coverage than this are treated as empty
const alphaThreshold = 0x80

type cell struct {
	ch     rune
	fg, bg lipgloss.Color
	// cont marks the right half of a wide rune; it prints nothing.
	cont bool
}

type Renderer struct {
	cellW, cellH float64
	raster       raster
	labels       *labeler
	styles       map[[2]lipgloss.Color]lipgloss.Style
}

// New returns a renderer for cells of cellWidth x cellHeight screen pixels.
func New(cellWidth, cellHeight float64) (*Renderer, error) {
	l, err := newLabeler()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		cellW:  cellWidth,
		cellH:  cellHeight,
		raster: raster{cellW: cellWidth, cellH: cellHeight},
		labels: l,
		styles: make(map[[2]lipgloss.Color]lipgloss.Style),
	}, nil
}

// Render returns rows lines of exactly cols cells each, joined by newlines.
func (r *Renderer) Render(f editor.Frame, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	r.raster.reset(cols, rows)
	r.raster.draw(f)

	base := r.fold(cols, rows)
	grid := make([][]cell, rows)
	for y := range base {
		grid[y] = append([]cell(nil), base[y]...)
	}
	// A node hides the labels of the nodes beneath it.
	for _, n := range f.Nodes {
		r.restore(grid, base, n)
		r.overlayLabel(grid, n, f.Transform.Scale)
	}
	return r.paint(grid)
}

func (r *Renderer) restore(grid, base [][]cell, n editor.NodeView) {
	x0 := max(int(math.Floor(n.Rect.Min.X/r.cellW)), 0)
	x1 := min(int(math.Ceil(n.Rect.Max.X/r.cellW)), len(grid[0]))
	y0 := max(int(math.Floor(n.Rect.Min.Y/r.cellH)), 0)
	y1 := min(int(math.Ceil(n.Rect.Max.Y/r.cellH)), len(grid))
	if x0 >= x1 {
		return
	}
	for y := y0; y < y1; y++ {
		copy(grid[y][x0:x1], base[y][x0:x1])
	}
}

// fold turns each vertical pixel pair into one half-block cell.
func (r *Renderer) fold(cols, rows int) [][]cell {
	img := r.raster.dc.Image().(*image.RGBA)
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			top := img.RGBAAt(x, 2*y)
			bot := img.RGBAAt(x, 2*y+1)
			topOn := top.A >= alphaThreshold
			botOn := bot.A >= alphaThreshold

			c := cell{ch: ' '}
			switch {
			case topOn && botOn:
				tc, bc := pixelColor(top), pixelColor(bot)
				if tc == bc {
					c = cell{ch: '█', fg: tc}
				} else {
					c = cell{ch: '▀', fg: tc, bg: bc}
				}
			case topOn:
				c = cell{ch: '▀', fg: pixelColor(top)}
			case botOn:
				c = cell{ch: '▄', fg: pixelColor(bot)}
			}
			grid[y][x] = c
		}
	}
	return grid
}

func (r *Renderer) overlayLabel(grid [][]cell, n editor.NodeView, scale float64) {
	rows, cols := len(grid), len(grid[0])
	rect := n.Rect
	pad := labelPadding * scale

	row := int(math.Floor((rect.Min.Y + rect.Max.Y) / 2 / r.cellH))
	first := int(math.Ceil((rect.Min.X + pad) / r.cellW))
	last := int(math.Floor((rect.Max.X - pad) / r.cellW)) // exclusive
	if row < 0 || row >= rows || last <= first {
		return
	}

	size := float64(n.Node.Size.Dimensions().FontSize) * scale
	text := r.labels.fit(n.Node.Label, size, rect.Width()-2*pad, last-first)
	if text == "" {
		return
	}

	bg := parseHex(n.Node.Color.Hex())
	fg := textOn(bg)
	bgc := pixelColor(bg)

	start := first + (last-first-runewidth.StringWidth(text))/2
	x := start
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w-1 < cols && x+w-1 < last {
			grid[row][x] = cell{ch: ch, fg: fg, bg: bgc}
			if w == 2 {
				grid[row][x+1] = cell{cont: true, fg: fg, bg: bgc}
			}
		}
		x += w
	}
}

func (r *Renderer) style(fg, bg lipgloss.Color) lipgloss.Style {
	key := [2]lipgloss.Color{fg, bg}
	if s, ok := r.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(fg)
	}
	if bg != "" {
		s = s.Background(bg)
	}
	r.styles[key] = s
	return s
}

// paint groups runs of equally styled cells so each run is styled once.
func (r *Renderer) paint(grid [][]cell) string {
	var out strings.Builder
	var run strings.Builder
	for y, line := range grid {
		if y > 0 {
			out.WriteByte('\n')
		}
		var cur [2]lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == ([2]lipgloss.Color{}) {
				out.WriteString(run.String())
			} else {
				out.WriteString(r.style(cur[0], cur[1]).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range line {
			if c.cont {
				continue
			}
			key := [2]lipgloss.Color{c.fg, c.bg}
			if c.ch == ' ' && c.bg == "" {
				key = [2]lipgloss.Color{}
			}
			if key != cur {
				flush()
				cur = key
			}
			run.WriteRune(c.ch)
		}
		flush()
	}
	return out.String()
}
