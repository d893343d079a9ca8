package readqc

import (
	"encoding/json"
	"io"
)

// A Point is one (position, value) sample in a plot series.
type Point struct {
	X, Y float64
}

// A PlotSeries is one named line in a plot.
type PlotSeries struct {
	Name   string
	Points []Point
}

// A Plot is the fully shaped input to a rendering collaborator: title,
// axis labels, one or more series, and axis bounds. This package only
// shapes plots; rendering happens elsewhere.
type Plot struct {
	Title      string
	XLabel     string
	YLabel     string
	Series     []PlotSeries
	XMin, XMax float64
	YMin, YMax float64
}

// Renderer turns a shaped plot into an artifact (image, report page).
// Implementations live outside this package.
type Renderer interface {
	Render(p *Plot) error
}

// Plot shapes the result's series for rendering. Positions are emitted
// 1-based, the x axis spans [0, MaxLen], and the y bounds come from the
// metric. It returns nil when the result carries no series.
func (r *Result) Plot() *Plot {
	if len(r.Series) == 0 {
		return nil
	}
	p := &Plot{
		Title:  r.PlotTitle,
		XLabel: r.XLabel,
		YLabel: r.YLabel,
		XMin:   0,
		XMax:   float64(r.MaxLen),
		YMin:   r.YMin,
		YMax:   r.YMax,
	}
	for _, s := range r.Series {
		ps := PlotSeries{Name: s.Name, Points: make([]Point, len(s.Values))}
		for i, v := range s.Values {
			ps.Points[i] = Point{X: float64(i + 1), Y: v}
		}
		p.Series = append(p.Series, ps)
	}
	return p
}

// EncodeJSON writes the plot as indented JSON, the artifact handed to
// external rendering tools.
func (p *Plot) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
