// Package plot samples tan(x) over a range and renders the curve with its
// asymptotes as a PNG.
package plot

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// ErrBadOptions is returned when a range or canvas size is unusable.
var ErrBadOptions = errors.New("invalid plot options")

// #region options
// Options controls sampling and the canvas. XMin and XMax are in Unit.
type Options struct {
	Width   int
	Height  int
	XMin    float64
	XMax    float64
	YLimit  float64 // curve is clipped to [-YLimit, YLimit]
	Unit    tangent.Unit
	Samples int
}

// DefaultOptions plots two periods in radians.
func DefaultOptions() Options {
	return Options{
		Width:   800,
		Height:  600,
		XMin:    -math.Pi,
		XMax:    math.Pi,
		YLimit:  6,
		Unit:    tangent.Radians,
		Samples: 2000,
	}
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrBadOptions, o.Width, o.Height)
	case !(o.XMax > o.XMin):
		return fmt.Errorf("%w: range [%g, %g]", ErrBadOptions, o.XMin, o.XMax)
	case o.YLimit <= 0:
		return fmt.Errorf("%w: y limit %g", ErrBadOptions, o.YLimit)
	case o.Samples < 2:
		return fmt.Errorf("%w: %d samples", ErrBadOptions, o.Samples)
	}
	return nil
}

func (o Options) period() (period, half float64) {
	if o.Unit == tangent.Degrees {
		return 180, 90
	}
	return math.Pi, math.Pi / 2
}

// #endregion options

// #region sampling
// Point is one sampled (x, tan x) pair, x in the plot unit.
type Point struct {
	X, Y float64
}

// Segment is a run of points drawn as one connected line.
type Segment []Point

// Asymptotes returns the odd multiples of 90 degrees (pi/2 radians) inside
// [XMin, XMax], ascending.
func Asymptotes(opt Options) []float64 {
	period, half := opt.period()
	first := math.Ceil((opt.XMin - half) / period)
	last := math.Floor((opt.XMax - half) / period)

	var xs []float64
	for k := first; k <= last; k++ {
		xs = append(xs, half+k*period)
	}
	return xs
}

// Segments samples ev across the range. A segment ends at an undefined point,
// at a point clipped by YLimit, or where consecutive samples straddle an
// asymptote.
func Segments(ev *tangent.Evaluator, opt Options) ([]Segment, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	period, half := opt.period()
	branch := func(x float64) float64 { return math.Floor((x + half) / period) }
	step := (opt.XMax - opt.XMin) / float64(opt.Samples-1)

	var (
		segs []Segment
		cur  Segment
	)
	flush := func() {
		if len(cur) > 1 {
			segs = append(segs, cur)
		}
		cur = nil
	}

	for i := 0; i < opt.Samples; i++ {
		x := opt.XMin + float64(i)*step
		y, ok := ev.Evaluate(x, opt.Unit == tangent.Degrees).Float()
		if !ok || math.Abs(y) > opt.YLimit {
			flush()
			continue
		}
		if n := len(cur); n > 0 && branch(cur[n-1].X) != branch(x) {
			flush()
		}
		cur = append(cur, Point{X: x, Y: y})
	}
	flush()
	return segs, nil
}

// #endregion sampling

// #region render
// Render draws axes, dashed asymptotes and the curve.
func Render(ev *tangent.Evaluator, opt Options) (image.Image, error) {
	segs, err := Segments(ev, opt)
	if err != nil {
		return nil, err
	}

	w, h := float64(opt.Width), float64(opt.Height)
	px := func(x float64) float64 { return (x - opt.XMin) / (opt.XMax - opt.XMin) * w }
	py := func(y float64) float64 { return h/2 - y/opt.YLimit*h/2 }

	dc := gg.NewContext(opt.Width, opt.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// axes
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawLine(0, py(0), w, py(0))
	if opt.XMin <= 0 && opt.XMax >= 0 {
		dc.DrawLine(px(0), 0, px(0), h)
	}
	dc.Stroke()

	dc.SetRGB(0.85, 0.2, 0.2)
	dc.SetDash(6, 4)
	for _, x := range Asymptotes(opt) {
		dc.DrawLine(px(x), 0, px(x), h)
	}
	dc.Stroke()
	dc.SetDash()

	dc.SetRGB(0.1, 0.3, 0.8)
	dc.SetLineWidth(2)
	for _, s := range segs {
		dc.MoveTo(px(s[0].X), py(s[0].Y))
		for _, p := range s[1:] {
			dc.LineTo(px(p.X), py(p.Y))
		}
		dc.Stroke()
	}

	return dc.Image(), nil
}

// Save renders and writes a PNG to path.
func Save(ev *tangent.Evaluator, opt Options, path string) error {
	img, err := Render(ev, opt)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

// #endregion render
