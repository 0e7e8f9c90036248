// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// The heightmap package loads height map images and normalises them
// to single channel 8 bit intensity grids, whatever the bit depth or
// colour model of the source. Pixel intensity encodes elevation, with
// darker pixels being lower terrain.
package heightmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// UnreadableImageError is returned when a source image is missing,
// can't be decoded, or has no pixels.
type UnreadableImageError struct {
	Path string
	Err  error
}

func (e *UnreadableImageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("Unreadable image: %v", e.Err)
	}
	return fmt.Sprintf("Unreadable image %s: %v", e.Path, e.Err)
}

func (e *UnreadableImageError) Unwrap() error {
	return e.Err
}

// Normalize reduces an image to an 8 bit grayscale image with the
// same dimensions. An 8 bit grayscale source passes through with its
// values unchanged. A 16 bit grayscale source is rescaled so that its
// brightest pixel maps to 255, as 16 bit height data typically uses
// the full dynamic range and rescaling keeps the relative relief
// rather than clipping it. Anything else is converted to grayscale
// with the usual perceptual luma weighting.
func Normalize(img image.Image) (*image.Gray, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &UnreadableImageError{Err: errors.New("image has zero area")}
	}

	switch src := img.(type) {
	case *image.Gray16:
		return rescale16(src), nil
	default:
		gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
		return gray, nil
	}
}

// rescale16 maps a 16 bit grayscale image onto the full 8 bit range.
// An all zero image stays all zero rather than dividing by zero.
func rescale16(src *image.Gray16) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	var max uint16
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v := src.Gray16At(x, y).Y; v > max {
				max = v
			}
		}
	}
	if max == 0 {
		return gray
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(src.Gray16At(x, y).Y) / float64(max) * 255
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: uint8(math.Round(v))})
		}
	}
	return gray
}

// Decode reads an image from r and normalises it with Normalize.
func Decode(r io.Reader) (*image.Gray, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &UnreadableImageError{Err: err}
	}
	return Normalize(img)
}

// DecodeFile reads the image at path and normalises it with
// Normalize. Any failure to read or decode the file is reported as
// an UnreadableImageError naming the path.
func DecodeFile(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableImageError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &UnreadableImageError{Path: path, Err: err}
	}
	gray, err := Normalize(img)
	if err != nil {
		var uerr *UnreadableImageError
		if errors.As(err, &uerr) {
			uerr.Path = path
		}
		return nil, err
	}
	return gray, nil
}
