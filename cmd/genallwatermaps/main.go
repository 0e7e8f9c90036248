// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// genallwatermaps derives a water map for every height map in a
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	terrain "github.com/marcuserlandsson/procedural-terrain"
	"github.com/marcuserlandsson/procedural-terrain/internal/pipeline"
	"github.com/marcuserlandsson/procedural-terrain/watermap"
)

const usage = `Usage: genallwatermaps [-d dir] [-t threshold] [-s] [-sigma n] [-j n] [-report] [-upload bucket] [-v]

Finds every PNG height map in the heightmaps directory and derives a
water map for each, writing them to a sibling derived-watermaps
directory. Several maps are processed in parallel, and a file that
fails doesn't stop the rest of the batch; failures are reported in
the summary at the end.

With -report, a chart of the water coverage of every map and a PDF
showing each height map next to its water map are written alongside
the derived maps. With -upload, the derived maps are also published
to the named S3 bucket.

`

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func main() {
	dir := flag.String("d", filepath.Join("maps", "heightmaps"), "Directory to look for height maps in")
	threshold := flag.Int("t", watermap.DefaultThreshold, "Pixel value threshold (0-255); pixels below this are water")
	smooth := flag.Bool("s", false, "Apply Gaussian smoothing to the water maps")
	sigma := flag.Float64("sigma", watermap.DefaultSigma, "Gaussian blur sigma for smoothing (higher = more smoothing)")
	jobs := flag.Int("j", runtime.NumCPU(), "Number of water maps to generate in parallel")
	report := flag.Bool("report", false, "Write a coverage chart and PDF report next to the water maps")
	upload := flag.String("upload", "", "Upload the generated water maps to this S3 bucket")
	verbose := flag.Bool("v", false, "Verbose")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n NullWriter
		verboselog = log.New(n, "", 0)
	}

	ctx := context.Background()
	cfg := watermap.Config{Threshold: *threshold, Smooth: *smooth, Sigma: *sigma}

	sum, err := pipeline.Process(ctx, *dir, cfg, watermap.GaussianSmoother{}, *jobs, verboselog)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	var covs []terrain.Coverage
	outdir := ""
	for _, r := range sum.Results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Failed to process %s: %v\n", r.Path, r.Err)
			continue
		}
		covs = append(covs, terrain.Coverage{Name: filepath.Base(r.Path), Frac: r.Coverage})
		if outdir == "" {
			outdir = filepath.Dir(r.OutPath)
		}
	}

	fmt.Printf("Processed %d water maps (%d failed)\n", sum.Done, sum.Failed)
	if len(covs) > 0 {
		mean, stddev, median := terrain.CoverageStats(covs)
		fmt.Printf("Water coverage: mean %.1f%%, median %.1f%%, stddev %.1f\n", mean*100, median*100, stddev*100)
	}

	if *report && outdir != "" {
		err = writeReport(sum, covs, outdir, verboselog)
		if err != nil {
			log.Fatalf("Error writing report: %v\n", err)
		}
	}

	if *upload != "" && sum.Done > 0 {
		conn := &terrain.AwsConn{Bucket: *upload, Logger: verboselog}
		err = conn.Init()
		if err != nil {
			log.Fatalf("Error setting up S3 connection: %v\n", err)
		}
		err = pipeline.Publish(ctx, sum.Results, filepath.Base(filepath.Dir(outdir)), conn)
		if err != nil {
			log.Fatalf("Error uploading water maps: %v\n", err)
		}
	}
}

// writeReport saves a water coverage chart and a PDF pairing each
// height map with its water map into outdir.
func writeReport(sum pipeline.Summary, covs []terrain.Coverage, outdir string, logger *log.Logger) error {
	if len(covs) > 1 {
		fn := filepath.Join(outdir, "coverage.png")
		logger.Println("Saving coverage graph to", fn)
		f, err := os.Create(fn)
		if err != nil {
			return fmt.Errorf("Error creating file %s: %v", fn, err)
		}
		defer f.Close()
		err = terrain.Graph(covs, "Water coverage", f)
		if err != nil {
			return fmt.Errorf("Error rendering graph: %v", err)
		}
	}

	pdf := new(terrain.Fpdf)
	err := pdf.Setup()
	if err != nil {
		return fmt.Errorf("Error setting up PDF: %v", err)
	}
	for _, r := range sum.Results {
		if r.Err != nil {
			continue
		}
		err = pdf.AddPair(r.Path, r.OutPath)
		if err != nil {
			return fmt.Errorf("Error adding %s to PDF: %v", r.Path, err)
		}
	}
	fn := filepath.Join(outdir, "report.pdf")
	logger.Println("Saving PDF report to", fn)
	return pdf.Save(fn)
}
