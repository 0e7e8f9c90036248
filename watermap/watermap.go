// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// The watermap package classifies normalised height maps into water
// and land by thresholding pixel intensity, optionally smoothing the
// result into graded shorelines, and writes the derived water maps
// out as 8 bit grayscale PNGs.
package watermap

import (
	"fmt"
	"image"
	"image/color"
)

// DefaultThreshold is the pixel value below which terrain counts as
// water when no threshold is given.
const DefaultThreshold = 40

// DefaultSigma is the Gaussian blur sigma used for smoothing when no
// sigma is given.
const DefaultSigma = 2.0

// Config holds the parameters for generating a water map. The zero
// value is not valid; use DefaultConfig and adjust from there.
type Config struct {
	// Threshold is the pixel value cutoff in [0,255]; pixels
	// strictly below it are classified as water.
	Threshold int
	// Smooth turns on Gaussian smoothing of the binary water map.
	Smooth bool
	// Sigma is the standard deviation of the smoothing blur.
	Sigma float64
}

// DefaultConfig returns a Config with the default threshold and
// sigma, and smoothing off.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, Sigma: DefaultSigma}
}

// InvalidParameterError is returned when a configuration value is
// out of range. It is surfaced before any file is read or written.
type InvalidParameterError struct {
	Param string
	Value interface{}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("Invalid parameter %s: %v", e.Param, e.Value)
}

// Validate checks that the configuration values are in range.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return &InvalidParameterError{Param: "threshold", Value: c.Threshold}
	}
	if c.Sigma <= 0 {
		return &InvalidParameterError{Param: "sigma", Value: c.Sigma}
	}
	return nil
}

// Threshold classifies every cell of a normalised height map,
// returning a binary water map of the same dimensions where water is
// 255 and land is 0. A cell is water iff its intensity is strictly
// below t, so t = 0 classifies nothing as water and t = 255
// classifies everything but full-intensity cells as water. It is a
// pure function of its inputs; img is not modified.
func Threshold(img *image.Gray, t int) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if int(img.GrayAt(x, y).Y) < t {
				out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 255})
			} else {
				out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 0})
			}
		}
	}

	return out
}

// Coverage returns the fraction of cells classified as water, in
// [0,1]. On a smoothed map it counts the cells that are majority
// water.
func Coverage(img *image.Gray) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	water := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y >= 128 {
				water++
			}
		}
	}
	return float64(water) / float64(n)
}
