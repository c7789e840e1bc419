// Package figure models the slice of the Plotly figure schema that netplot
// emits: scatter traces, markers, axes, annotations, and the enclosing
// layout. The structs marshal to JSON a Plotly client renders directly.
package figure

import (
	"encoding/json"
	"fmt"
)

// Trace is a single scatter trace. Coordinates are nullable so a line trace
// can carry gap sentinels: a nil X/Y entry marshals to JSON null, which
// Plotly treats as a pen lift between segments.
type Trace struct {
	Type      string   `json:"type"`
	X         []*Coord `json:"x"`
	Y         []*Coord `json:"y"`
	Mode      string   `json:"mode"`
	Line      *Line    `json:"line,omitempty"`
	Marker    *Marker  `json:"marker,omitempty"`
	Text      []string `json:"text,omitempty"`
	HoverInfo string   `json:"hoverinfo,omitempty"`
}

// Coord is one nullable coordinate value.
type Coord = float64

// F wraps a value for a nullable coordinate slice.
func F(v float64) *Coord { c := Coord(v); return &c }

// Line styles the stroke of a line-mode trace.
type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color,omitempty"`
}

// Marker styles the points of a markers-mode trace. Size and Color accept
// either a scalar or a per-node list, matching Plotly's own schema.
type Marker struct {
	Size         any       `json:"size,omitempty"`
	Color        any       `json:"color,omitempty"`
	Colorscale   string    `json:"colorscale,omitempty"`
	ShowScale    bool      `json:"showscale,omitempty"`
	ReverseScale bool      `json:"reversescale,omitempty"`
	ColorBar     *ColorBar `json:"colorbar,omitempty"`
	Opacity      *float64  `json:"opacity,omitempty"`
	Line         *Line     `json:"line,omitempty"`
}

// ColorBar labels the color scale legend next to the plot.
type ColorBar struct {
	Thickness float64 `json:"thickness,omitempty"`
	Title     *Title  `json:"title,omitempty"`
	XAnchor   string  `json:"xanchor,omitempty"`
}

// Title is Plotly's nested title object.
type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

// Font carries the subset of font styling netplot sets.
type Font struct {
	Size float64 `json:"size,omitempty"`
}

// Axis controls one plot axis. Node-link drawings hide both axes: no grid,
// no zero line, no tick labels.
type Axis struct {
	ShowGrid       bool `json:"showgrid"`
	ZeroLine       bool `json:"zeroline"`
	ShowTickLabels bool `json:"showticklabels"`
}

// Annotation is a text label pinned in paper coordinates. ArrowX and ArrowY
// are pointers so an explicit zero offset survives marshaling.
type Annotation struct {
	Text      string   `json:"text,omitempty"`
	ShowArrow bool     `json:"showarrow"`
	XRef      string   `json:"xref,omitempty"`
	YRef      string   `json:"yref,omitempty"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	AXRef     string   `json:"axref,omitempty"`
	AYRef     string   `json:"ayref,omitempty"`
	AX        *float64 `json:"ax,omitempty"`
	AY        *float64 `json:"ay,omitempty"`
	ArrowHead int      `json:"arrowhead,omitempty"`
	ArrowSize float64  `json:"arrowsize,omitempty"`
	ArrowW    float64  `json:"arrowwidth,omitempty"`
	Opacity   float64  `json:"opacity,omitempty"`
}

// Layout is the figure-level configuration.
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	ShowLegend  bool         `json:"showlegend"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
}

// Margin is the whitespace around the plot area, in pixels.
type Margin struct {
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
}

// Figure is a complete Plotly figure: ordered traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// HiddenAxis returns the axis configuration for node-link drawings.
func HiddenAxis() *Axis {
	return &Axis{}
}

// MarshalIndent pretty-prints the figure as a Plotly JSON document.
func (f *Figure) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal figure: %w", err)
	}
	return data, nil
}

// Marshal produces the compact JSON document.
func (f *Figure) Marshal() ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal figure: %w", err)
	}
	return data, nil
}
