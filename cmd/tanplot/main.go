package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/tancalc/internal/plot"
	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region main

func main() {
	def := plot.DefaultOptions()
	outPath := flag.String("out", "tan.png", "output PNG path")
	method := flag.String("method", tangent.MethodMath, "tangent method: math | series")
	deg := flag.Bool("deg", false, "interpret -min/-max as degrees")
	xmin := flag.Float64("min", def.XMin, "left edge of the plot")
	xmax := flag.Float64("max", def.XMax, "right edge of the plot")
	ylim := flag.Float64("ylim", def.YLimit, "clip |tan x| above this value")
	width := flag.Int("width", def.Width, "image width in pixels")
	height := flag.Int("height", def.Height, "image height in pixels")
	samples := flag.Int("samples", def.Samples, "number of sample points")
	flag.Parse()

	fn, err := tangent.LookupFunc(*method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	opt := plot.Options{
		Width:   *width,
		Height:  *height,
		XMin:    *xmin,
		XMax:    *xmax,
		YLimit:  *ylim,
		Unit:    tangent.Radians,
		Samples: *samples,
	}
	if *deg {
		opt.Unit = tangent.Degrees
		// radian defaults make no sense as degrees
		if !flagSet("min") {
			opt.XMin = -180
		}
		if !flagSet("max") {
			opt.XMax = 180
		}
	}

	if err := plot.Save(tangent.NewEvaluator(fn), opt, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d asymptotes in range)\n", *outPath, len(plot.Asymptotes(opt)))
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// #endregion main
