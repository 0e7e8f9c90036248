// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// genwatermap derives a water map from a terrain height map by
// thresholding pixel intensity.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/marcuserlandsson/procedural-terrain/watermap"
)

const usage = `Usage: genwatermap [-t threshold] [-s] [-sigma n] [-o path] [-v] heightmap

Derives a water map from a height map, marking every pixel darker
than the threshold as water (white) and everything else as land
(black). With -s the hard water/land boundary is smoothed into a
graded shoreline with a Gaussian blur.

The result is saved as an 8 bit grayscale PNG with the same
dimensions as the input. By default it is written to a
derived-watermaps directory next to the height map's own directory,
which is created if necessary; so for maps/heightmaps/island.png the
water map goes to maps/derived-watermaps/island.png.

`

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func main() {
	threshold := flag.Int("t", watermap.DefaultThreshold, "Pixel value threshold (0-255); pixels below this are water")
	smooth := flag.Bool("s", false, "Apply Gaussian smoothing to the water map")
	sigma := flag.Float64("sigma", watermap.DefaultSigma, "Gaussian blur sigma for smoothing (higher = more smoothing)")
	output := flag.String("o", "", "Output path (default: same name in a sibling derived-watermaps directory)")
	verbose := flag.Bool("v", false, "Verbose")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n NullWriter
		verboselog = log.New(n, "", 0)
	}

	cfg := watermap.Config{Threshold: *threshold, Smooth: *smooth, Sigma: *sigma}
	res, err := watermap.Generate(flag.Arg(0), *output, cfg, watermap.GaussianSmoother{}, verboselog)
	if err != nil {
		log.Fatalf("Error generating water map: %v\n", err)
	}

	fmt.Printf("Saved water map to %s (%.1f%% water)\n", res.OutPath, res.Coverage*100)
}
