package render

import (
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	ellipsis = "…"
	// below this many screen pixels a label is not drawn at all
	minLegibleSize = 6.0
	labelPadding   = 8.0
)

// labeler measures labels in the monospace face at a node's font size.
type labeler struct {
	font  *truetype.Font
	faces map[int]font.Face
}

func newLabeler() (*labeler, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &labeler{font: f, faces: make(map[int]font.Face)}, nil
}

// face caches by size in tenths of a point; zooming revisits the same steps.
func (l *labeler) face(size float64) font.Face {
	key := int(math.Round(size * 10))
	if f, ok := l.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(l.font, &truetype.Options{
		Size:    float64(key) / 10,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	l.faces[key] = f
	return f
}

func (l *labeler) width(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// fit returns label, or its longest prefix plus an ellipsis, that is at most maxWidth
// pixels wide when set at size and at most maxRunes runes long. It returns "" when even
// the ellipsis does not fit or the text would be too small to read.
func (l *labeler) fit(label string, size, maxWidth float64, maxRunes int) string {
	if size < minLegibleSize || maxRunes <= 0 || label == "" {
		return ""
	}
	face := l.face(size)
	runes := []rune(label)
	if len(runes) <= maxRunes && l.width(face, label) <= maxWidth {
		return label
	}
	for n := min(len(runes), maxRunes-1); n > 0; n-- {
		s := string(runes[:n]) + ellipsis
		if l.width(face, s) <= maxWidth {
			return s
		}
	}
	if l.width(face, ellipsis) <= maxWidth {
		return ellipsis
	}
	return ""
}
