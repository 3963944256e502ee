package diagram

import (
	"strings"

	"mindweaver/internal/viewport"
)

// SizeClass selects a node's fixed footprint. The table below is the only place the
// pixel dimensions live; layout, hit testing, label fitting and anchor geometry all
// read it from here.
type SizeClass int

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeLarge
	SizeXLarge
	sizeClassCount
)

const DefaultSize = SizeMedium

type Dimensions struct {
	Width    float64
	Height   float64
	FontSize float64
}

var sizeTable = [sizeClassCount]Dimensions{
	SizeSmall:  {Width: 96, Height: 32, FontSize: 12},
	SizeMedium: {Width: 144, Height: 48, FontSize: 14},
	SizeLarge:  {Width: 192, Height: 80, FontSize: 18},
	SizeXLarge: {Width: 256, Height: 96, FontSize: 20},
}

var sizeNames = [sizeClassCount]string{
	SizeSmall:  "small",
	SizeMedium: "medium",
	SizeLarge:  "large",
	SizeXLarge: "xlarge",
}

func (s SizeClass) Valid() bool { return s >= 0 && s < sizeClassCount }

func (s SizeClass) Dimensions() Dimensions {
	if !s.Valid() {
		return sizeTable[DefaultSize]
	}
	return sizeTable[s]
}

func (s SizeClass) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sizeNames[s]
}

func (s SizeClass) Next() SizeClass { return (s + 1) % sizeClassCount }

func ParseSizeClass(name string) (SizeClass, bool) {
	return parseEnum[SizeClass](sizeNames[:], name)
}

func SizeClasses() []SizeClass { return enumValues[SizeClass](int(sizeClassCount)) }

// NodeColor is a node fill token. The zero value is blue.
type NodeColor int

const (
	ColorBlue NodeColor = iota
	ColorGreen
	ColorRed
	ColorPurple
	ColorYellow
	ColorPink
	ColorGray
	ColorOrange
	nodeColorCount
)

var nodeColorNames = [nodeColorCount]string{
	ColorBlue:   "blue",
	ColorGreen:  "green",
	ColorRed:    "red",
	ColorPurple: "purple",
	ColorYellow: "yellow",
	ColorPink:   "pink",
	ColorGray:   "gray",
	ColorOrange: "orange",
}

var nodeColorHex = [nodeColorCount]string{
	ColorBlue:   "#3b82f6",
	ColorGreen:  "#22c55e",
	ColorRed:    "#ef4444",
	ColorPurple: "#a855f7",
	ColorYellow: "#eab308",
	ColorPink:   "#ec4899",
	ColorGray:   "#6b7280",
	ColorOrange: "#f97316",
}

func (c NodeColor) Valid() bool { return c >= 0 && c < nodeColorCount }

func (c NodeColor) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return nodeColorNames[c]
}

// Hex is the fill color used by renderers.
func (c NodeColor) Hex() string {
	if !c.Valid() {
		return nodeColorHex[ColorBlue]
	}
	return nodeColorHex[c]
}

func (c NodeColor) Next() NodeColor { return (c + 1) % nodeColorCount }

func ParseNodeColor(name string) (NodeColor, bool) {
	return parseEnum[NodeColor](nodeColorNames[:], name)
}

func NodeColors() []NodeColor { return enumValues[NodeColor](int(nodeColorCount)) }

// Side names one of the four ports on a node's boundary.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
	sideCount
)

var sideNames = [sideCount]string{
	SideTop:    "top",
	SideRight:  "right",
	SideBottom: "bottom",
	SideLeft:   "left",
}

func (s Side) Valid() bool { return s >= 0 && s < sideCount }

func (s Side) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sideNames[s]
}

func Sides() []Side { return enumValues[Side](int(sideCount)) }

type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	lineStyleCount
)

var lineStyleNames = [lineStyleCount]string{
	LineSolid:  "solid",
	LineDashed: "dashed",
}

func (l LineStyle) Valid() bool { return l >= 0 && l < lineStyleCount }

func (l LineStyle) String() string {
	if !l.Valid() {
		return "unknown"
	}
	return lineStyleNames[l]
}

func (l LineStyle) Next() LineStyle { return (l + 1) % lineStyleCount }

func ParseLineStyle(name string) (LineStyle, bool) {
	return parseEnum[LineStyle](lineStyleNames[:], name)
}

// ArrowKind is the marker drawn at a connection's target end.
type ArrowKind int

const (
	ArrowHead ArrowKind = iota
	ArrowCircle
	ArrowNone
	arrowKindCount
)

var arrowKindNames = [arrowKindCount]string{
	ArrowHead:   "arrow",
	ArrowCircle: "circle",
	ArrowNone:   "none",
}

func (a ArrowKind) Valid() bool { return a >= 0 && a < arrowKindCount }

func (a ArrowKind) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return arrowKindNames[a]
}

func (a ArrowKind) Next() ArrowKind { return (a + 1) % arrowKindCount }

func ParseArrowKind(name string) (ArrowKind, bool) {
	return parseEnum[ArrowKind](arrowKindNames[:], name)
}

const (
	MinStrokeWidth     = 1
	MaxStrokeWidth     = 4
	DefaultStrokeWidth = 2
	DefaultEdgeColor   = "#666"
)

// EdgeColors is the connection palette offered by the editor panel.
var EdgeColors = []string{DefaultEdgeColor, "#ef4444", "#f97316", "#eab308", "#22c55e", "#3b82f6", "#8b5cf6", "#ec4899"}

// NextEdgeColor cycles through EdgeColors; unknown colors restart the cycle.
func NextEdgeColor(current string) string {
	for i, c := range EdgeColors {
		if strings.EqualFold(c, current) {
			return EdgeColors[(i+1)%len(EdgeColors)]
		}
	}
	return EdgeColors[0]
}

type Node struct {
	ID    int
	X     float64
	Y     float64
	Label string
	Size  SizeClass
	Color NodeColor
}

func (n Node) Position() viewport.Point { return viewport.Point{X: n.X, Y: n.Y} }

// Bounds is the node rectangle in logical space.
func (n Node) Bounds() viewport.Rect {
	d := n.Size.Dimensions()
	return viewport.Rect{
		Min: viewport.Point{X: n.X, Y: n.Y},
		Max: viewport.Point{X: n.X + d.Width, Y: n.Y + d.Height},
	}
}

// Endpoint is the symbolic end of a connection. It never carries coordinates.
type Endpoint struct {
	NodeID int
	Side   Side
}

type Style struct {
	Color       string
	StrokeWidth int
	LineStyle   LineStyle
	Arrow       ArrowKind
}

func DefaultStyle() Style {
	return Style{
		Color:       DefaultEdgeColor,
		StrokeWidth: DefaultStrokeWidth,
		LineStyle:   LineSolid,
		Arrow:       ArrowHead,
	}
}

func (s Style) valid() bool {
	return s.Color != "" &&
		validStrokeWidth(s.StrokeWidth) &&
		s.LineStyle.Valid() &&
		s.Arrow.Valid()
}

func validStrokeWidth(w int) bool { return w >= MinStrokeWidth && w <= MaxStrokeWidth }

type Connection struct {
	ID    string
	From  Endpoint
	To    Endpoint
	Style Style
}

// Touches reports whether either end references the node.
func (c Connection) Touches(nodeID int) bool {
	return c.From.NodeID == nodeID || c.To.NodeID == nodeID
}

func parseEnum[T ~int](names []string, name string) (T, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return T(i), true
		}
	}
	return 0, false
}

func enumValues[T ~int](count int) []T {
	out := make([]T, count)
	for i := range out {
		out[i] = T(i)
	}
	return out
}
