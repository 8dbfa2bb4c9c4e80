// Package antennaplot renders radar antenna diagrams as PNG charts.
//
// Each diagram is drawn as response (dB) over horizontal angle (deg), with
// one line per distinct vertical angle. Transmit lines are solid and
// receive lines dashed.
package antennaplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/sensorview/internal/security"
	"github.com/banshee-data/sensorview/internal/sensorview"
)

// ErrNoDiagram is returned for a radar record without any plottable
// antenna diagram entry.
var ErrNoDiagram = errors.New("radar record has no antenna diagram")

// Series is the plottable part of one diagram at one vertical angle.
type Series struct {
	Diagram       string // "tx" or "rx"
	VerticalAngle float64
	Points        plotter.XYs // X: horizontal angle (deg), Y: response (dB)
}

// Collect groups a diagram's entries by vertical angle and orders each
// group by horizontal angle. Entries missing the horizontal angle or the
// response are skipped; a missing vertical angle counts as zero. The input
// is not modified.
func Collect(name string, entries []sensorview.AntennaDiagramEntry) []Series {
	groups := make(map[float64]plotter.XYs)
	for _, e := range entries {
		if e.HorizontalAngle == nil || e.Response == nil {
			continue
		}
		v := 0.0
		if e.VerticalAngle != nil {
			v = *e.VerticalAngle
		}
		groups[v] = append(groups[v], plotter.XY{X: deg(*e.HorizontalAngle), Y: *e.Response})
	}

	keys := make([]float64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	out := make([]Series, 0, len(keys))
	for _, k := range keys {
		pts := groups[k]
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
		out = append(out, Series{Diagram: name, VerticalAngle: k, Points: pts})
	}
	return out
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Plot builds the chart for a radar record.
func Plot(r sensorview.RadarSensorViewConfiguration) (*plot.Plot, error) {
	series := append(Collect("tx", r.TxAntennaDiagram), Collect("rx", r.RxAntennaDiagram)...)
	if len(series) == 0 {
		return nil, ErrNoDiagram
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Radar %s - Antenna Diagram", sensorLabel(r))
	p.X.Label.Text = "Horizontal angle (deg)"
	p.Y.Label.Text = "Response (dB)"

	colors := generateColors(len(series))
	for i, s := range series {
		line, err := plotter.NewLine(s.Points)
		if err != nil {
			return nil, fmt.Errorf("plotting %s diagram: %w", s.Diagram, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		if s.Diagram == "rx" {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s @ %.1f°", s.Diagram, deg(s.VerticalAngle)), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// FileName returns the default file name for a radar record's chart.
func FileName(r sensorview.RadarSensorViewConfiguration) string {
	return security.SanitizeFilename(fmt.Sprintf("radar_%s_antenna", sensorLabel(r))) + ".png"
}

// Save renders the chart for r into outputDir and returns the file path.
func Save(r sensorview.RadarSensorViewConfiguration, outputDir string) (string, error) {
	p, err := Plot(r)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, FileName(r))
	if err := security.ValidatePathWithinDirectory(path, outputDir); err != nil {
		return "", err
	}
	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save antenna plot: %w", err)
	}
	return path, nil
}

func sensorLabel(r sensorview.RadarSensorViewConfiguration) string {
	if r.SensorID == nil {
		return "unknown"
	}
	return r.SensorID.String()
}

// generateColors spreads n colours evenly around the hue circle.
func generateColors(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		r, g, b := hslToRGB(float64(i)/float64(n), 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return channel(p, q, h+1.0/3.0), channel(p, q, h), channel(p, q, h-1.0/3.0)
}

func channel(p, q, t float64) uint8 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	var v float64
	switch {
	case t < 1.0/6.0:
		v = p + (q-p)*6*t
	case t < 0.5:
		v = q
	case t < 2.0/3.0:
		v = p + (q-p)*(2.0/3.0-t)*6
	default:
		v = p
	}
	return uint8(math.Round(v * 255))
}
