package main

import (
	"bytes"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderedSeries is one curve as it was drawn
type RenderedSeries struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// HitPoint is a drawn data point in image pixel coordinates, used for hover/click inspection
type HitPoint struct {
	Series  int     `json:"series"`
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Age     int     `json:"age"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
}

// Snapshot is the last successfully painted chart
type Snapshot struct {
	Version     int              `json:"version"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Title       string           `json:"title"`
	XLabel      string           `json:"x_label"`
	YLabel      string           `json:"y_label"`
	Legend      []string         `json:"legend"`
	Series      []RenderedSeries `json:"series"`
	Inspectable bool             `json:"inspectable"`
	Hits        []HitPoint       `json:"hits,omitempty"`
	SVG         []byte           `json:"-"`
}

// seriesPalette cycles in legend order
var seriesPalette = []string{
	"2563eb", "16a34a", "dc2626", "ea580c", "7c3aed",
	"0891b2", "db2777", "65a30d", "ca8a04", "475569",
}

// SVGSurface renders the chart to SVG with go-chart
type SVGSurface struct {
	width  int
	height int

	// built up between Clear and Repaint
	title, xLabel, yLabel string
	series                []RenderedSeries
	inspect               bool
	legend                bool

	current Snapshot
}

// NewSVGSurface creates a surface of the given pixel size
func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

// Clear drops everything plotted since the last repaint
func (s *SVGSurface) Clear() {
	s.title, s.xLabel, s.yLabel = "", "", ""
	s.series = nil
	s.inspect = false
	s.legend = false
}

// SetLabels sets title and axis names
func (s *SVGSurface) SetLabels(title, xLabel, yLabel string) {
	s.title, s.xLabel, s.yLabel = title, xLabel, yLabel
}

// Plot adds a curve
func (s *SVGSurface) Plot(key, label string, points []Point) {
	pts := make([]Point, len(points))
	copy(pts, points)
	s.series = append(s.series, RenderedSeries{
		Key:    key,
		Label:  label,
		Color:  "#" + seriesPalette[len(s.series)%len(seriesPalette)],
		Points: pts,
	})
}

// EnableInspection turns on hit points for hover/click value display
func (s *SVGSurface) EnableInspection() {
	s.inspect = true
}

// DrawLegend adds a legend built from the plotted labels
func (s *SVGSurface) DrawLegend() {
	s.legend = true
}

// Repaint renders the pending chart. On failure the previous snapshot stays current.
func (s *SVGSurface) Repaint() error {
	xMin, xMax, yMax := s.bounds()
	xTicks := ageTicks(xMin, xMax)
	yTicks, yMax := valueTicks(yMax)

	ch := chart.Chart{
		Title:      s.title,
		Width:      s.width,
		Height:     s.height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  s.xLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  s.yLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: yTicks,
		},
	}

	for i, rs := range s.series {
		xs := make([]float64, len(rs.Points))
		ys := make([]float64, len(rs.Points))
		for j, p := range rs.Points {
			xs[j] = float64(p.Age)
			ys[j] = p.Value
		}
		col := drawing.ColorFromHex(seriesPalette[i%len(seriesPalette)])
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    rs.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    2.5,
			},
		})
	}
	if len(ch.Series) == 0 {
		// go-chart refuses to render without a series; keep the empty axes visible
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			XValues: []float64{xMin, xMax},
			YValues: []float64{0, 0},
			Style:   chart.Style{Hidden: true},
		})
	}

	var plotBox chart.Box
	if s.legend && len(s.series) > 0 {
		ch.Elements = append(ch.Elements, chart.Legend(&ch))
	}
	ch.Elements = append(ch.Elements, func(_ chart.Renderer, canvasBox chart.Box, _ chart.Style) {
		plotBox = canvasBox
	})

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}

	snap := Snapshot{
		Version:     s.current.Version + 1,
		Width:       s.width,
		Height:      s.height,
		Title:       s.title,
		XLabel:      s.xLabel,
		YLabel:      s.yLabel,
		Series:      s.series,
		Inspectable: s.inspect,
		SVG:         buf.Bytes(),
	}
	if s.legend {
		snap.Legend = make([]string, len(s.series))
		for i, rs := range s.series {
			snap.Legend[i] = rs.Label
		}
	}
	if s.inspect {
		snap.Hits = hitPoints(s.series, plotBox, xMin, xMax, yMax)
	}
	s.current = snap
	return nil
}

// Snapshot returns the last painted chart
func (s *SVGSurface) Snapshot() Snapshot {
	return s.current
}

// bounds returns the age range and the largest value across all plotted series
func (s *SVGSurface) bounds() (xMin, xMax, yMax float64) {
	xMin, xMax = math.Inf(1), math.Inf(-1)
	for _, rs := range s.series {
		for _, p := range rs.Points {
			xMin = math.Min(xMin, float64(p.Age))
			xMax = math.Max(xMax, float64(p.Age))
			yMax = math.Max(yMax, p.Value)
		}
	}
	if math.IsInf(xMin, 0) {
		xMin, xMax = 0, 10
	}
	if xMax <= xMin {
		xMax = xMin + 1
	}
	return xMin, xMax, yMax
}

// hitPoints maps every data point to pixels the same way go-chart places them
func hitPoints(series []RenderedSeries, box chart.Box, xMin, xMax, yMax float64) []HitPoint {
	if box.Width() <= 0 || box.Height() <= 0 {
		return nil
	}
	xr := &chart.ContinuousRange{Min: xMin, Max: xMax, Domain: box.Width()}
	yr := &chart.ContinuousRange{Min: 0, Max: yMax, Domain: box.Height()}
	var hits []HitPoint
	for i, rs := range series {
		for _, p := range rs.Points {
			hits = append(hits, HitPoint{
				Series:  i,
				Key:     rs.Key,
				Label:   rs.Label,
				Age:     p.Age,
				Value:   p.Value,
				Display: formatValue(p.Value),
				X:       box.Left + xr.Translate(float64(p.Age)),
				Y:       box.Bottom - yr.Translate(p.Value),
			})
		}
	}
	return hits
}

// ageTicks places whole-year ticks on a 1, 2, 5, 10... step
func ageTicks(min, max float64) []chart.Tick {
	step := niceStep(max-min, 10)
	if step < 1 {
		step = 1
	}
	var ticks []chart.Tick
	for v := math.Ceil(min/step) * step; v <= max+step*1e-9; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return ticks
}

// valueTicks returns ticks from zero and the rounded-up axis maximum they reach
func valueTicks(maxValue float64) ([]chart.Tick, float64) {
	if maxValue <= 0 || math.IsNaN(maxValue) {
		maxValue = 1
	}
	step := niceStep(maxValue, 6)
	top := math.Ceil(maxValue/step) * step
	var ticks []chart.Tick
	for v := 0.0; v <= top+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatMoney(v)})
	}
	return ticks, top
}

// niceStep picks a 1, 2, 2.5, 5 × 10^k step giving roughly n intervals over span
func niceStep(span float64, n int) float64 {
	if span <= 0 || n < 1 {
		return 1
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 2.5:
		return 2.5 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// formatMoney formats an axis amount compactly
func formatMoney(amount float64) string {
	switch {
	case amount >= 1000000:
		return decimal.NewFromFloat(amount/1000000).Round(2).String() + "M"
	case amount >= 1000:
		return decimal.NewFromFloat(amount/1000).Round(1).String() + "k"
	}
	return decimal.NewFromFloat(amount).Round(2).String()
}

// formatValue formats a point value for the tooltip
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
