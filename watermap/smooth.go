// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package watermap

import (
	"image"

	"github.com/disintegration/gift"
)

// SmoothStatus records whether the smoothing pass ran.
type SmoothStatus int

const (
	// NotRequested means smoothing was not asked for.
	NotRequested SmoothStatus = iota
	// Smoothed means the Gaussian pass ran over the water map.
	Smoothed
	// SkippedUnavailable means no smoother was available, so the
	// binary water map was passed through untouched.
	SkippedUnavailable
)

// A Smoother turns a binary water map into a graded one of the same
// dimensions.
type Smoother interface {
	Smooth(img *image.Gray, sigma float64) (*image.Gray, error)
}

// GaussianSmoother smooths water maps with an isotropic Gaussian
// blur of standard deviation sigma. The kernel is truncated at
// 3 sigma, and samples past the image edge take the value of the
// nearest edge pixel. Blurring spreads the binary 0/255 values
// across the full 8 bit range, so shorelines come out graded rather
// than hard.
type GaussianSmoother struct{}

func (GaussianSmoother) Smooth(img *image.Gray, sigma float64) (*image.Gray, error) {
	if sigma <= 0 {
		return nil, &InvalidParameterError{Param: "sigma", Value: sigma}
	}

	g := gift.New(gift.GaussianBlur(float32(sigma)))
	out := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(out, img)
	return out, nil
}

// Smooth runs s over a binary water map. A nil s means the smoothing
// capability is unavailable, in which case the input map is returned
// untouched with SkippedUnavailable: a missing smoother degrades the
// output rather than failing the whole generation, and the status
// lets callers tell smoothing being declined apart from it failing.
func Smooth(img *image.Gray, sigma float64, s Smoother) (*image.Gray, SmoothStatus, error) {
	if s == nil {
		return img, SkippedUnavailable, nil
	}
	out, err := s.Smooth(img, sigma)
	if err != nil {
		return nil, Smoothed, err
	}
	return out, Smoothed, nil
}
