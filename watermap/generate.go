// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package watermap

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/marcuserlandsson/procedural-terrain/heightmap"
)

// OutputWriteError is returned when the derived water map cannot be
// written, for example because the destination directory cannot be
// created.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("Could not write water map %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// Result describes a completed water map generation.
type Result struct {
	// OutPath is the path the water map was written to.
	OutPath string
	// Coverage is the fraction of cells classified as water,
	// measured on the binary map before any smoothing.
	Coverage float64
	// Status reports whether smoothing ran, was skipped for lack
	// of a smoother, or was never requested.
	Status SmoothStatus
}

// OutputPath returns the default output path for a height map: the
// same file name inside a derived-watermaps directory that sits next
// to the input's own parent directory. So maps/heightmaps/a.png maps
// to maps/derived-watermaps/a.png, and the same rule applies whatever
// the parent directory happens to be called.
func OutputPath(in string) string {
	return filepath.Join(filepath.Dir(filepath.Dir(in)), "derived-watermaps", filepath.Base(in))
}

// Generate runs the complete single image transform: the height map
// at in is loaded and normalised, thresholded into a binary water
// map, optionally smoothed with s, and written to out as an 8 bit
// grayscale PNG of the same dimensions. If out is empty the default
// OutputPath rule is used, creating the directory if needed. The
// configuration is validated before any file is touched, and the
// write goes through a temporary file and rename so that a failure
// never leaves a partial image behind. Warnings, such as smoothing
// being skipped, go to logger.
func Generate(in string, out string, cfg Config, s Smoother, logger *log.Logger) (Result, error) {
	var res Result
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	err := cfg.Validate()
	if err != nil {
		return res, err
	}

	gray, err := heightmap.DecodeFile(in)
	if err != nil {
		return res, err
	}

	wmap := Threshold(gray, cfg.Threshold)
	res.Coverage = Coverage(wmap)

	if cfg.Smooth {
		smoothed, status, err := Smooth(wmap, cfg.Sigma, s)
		if err != nil {
			return res, err
		}
		if status == SkippedUnavailable {
			logger.Println("Warning: no smoother available, saving the water map unsmoothed")
		}
		res.Status = status
		wmap = smoothed
	}

	if out == "" {
		out = OutputPath(in)
	}
	err = writePNG(out, wmap)
	if err != nil {
		return res, err
	}
	res.OutPath = out

	return res, nil
}

// writePNG encodes img into a temporary file next to path and
// renames it into place, so readers only ever see a complete image.
func writePNG(path string, img *image.Gray) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	tmp := f.Name()

	err = png.Encode(f, img)
	if err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return &OutputWriteError{Path: path, Err: err}
	}
	err = f.Close()
	if err != nil {
		_ = os.Remove(tmp)
		return &OutputWriteError{Path: path, Err: err}
	}

	err = os.Rename(tmp, path)
	if err != nil {
		_ = os.Remove(tmp)
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}
