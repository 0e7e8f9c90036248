// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package heightmap

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func imgsequal(img1 *image.Gray, img2 *image.Gray) bool {
	b := img1.Bounds()
	if !b.Eq(img2.Bounds()) {
		return false
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img1.GrayAt(x, y).Y != img2.GrayAt(x, y).Y {
				return false
			}
		}
	}
	return true
}

func uniformgray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestNormalizeGrayPassthrough(t *testing.T) {
	orig := uniformgray(4, 4, 77)
	orig.SetGray(2, 1, color.Gray{Y: 3})

	got, err := Normalize(orig)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !imgsequal(orig, got) {
		t.Errorf("8 bit grayscale image was not passed through unchanged")
	}
}

func TestNormalizeGray16(t *testing.T) {
	cases := []struct {
		name string
		in   []uint16
		want []uint8
	}{
		{"fullrange", []uint16{0, 250, 500, 1000}, []uint8{0, 64, 128, 255}},
		{"allzero", []uint16{0, 0, 0, 0}, []uint8{0, 0, 0, 0}},
		{"maxvalue", []uint16{65535, 0, 32768, 65535}, []uint8{255, 0, 128, 255}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := image.NewGray16(image.Rect(0, 0, 2, 2))
			for i, v := range c.in {
				src.SetGray16(i%2, i/2, color.Gray16{Y: v})
			}

			got, err := Normalize(src)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if !got.Bounds().Eq(src.Bounds()) {
				t.Fatalf("Dimensions changed from %v to %v", src.Bounds(), got.Bounds())
			}
			for i, want := range c.want {
				if v := got.GrayAt(i%2, i/2).Y; v != want {
					t.Errorf("Pixel %d rescaled to %d, expected %d", i, v, want)
				}
			}
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.Set(x, y, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}
	// a neutral gray converts to the same gray value under luma
	// weighting, and a saturated red to its luma share
	src.Set(0, 0, color.RGBA{R: 255, A: 255})

	got, err := Normalize(src)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !got.Bounds().Eq(src.Bounds()) {
		t.Fatalf("Dimensions changed from %v to %v", src.Bounds(), got.Bounds())
	}
	if v := got.GrayAt(1, 0).Y; v != 100 {
		t.Errorf("Neutral gray pixel converted to %d, expected 100", v)
	}
	if v := got.GrayAt(0, 0).Y; v != 76 {
		t.Errorf("Red pixel converted to %d, expected 76", v)
	}
}

func TestNormalizeZeroArea(t *testing.T) {
	_, err := Normalize(image.NewGray(image.Rect(0, 0, 0, 0)))
	var uerr *UnreadableImageError
	if !errors.As(err, &uerr) {
		t.Fatalf("Expected UnreadableImageError for zero area image, got %v", err)
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	writepng := func(name string, img image.Image) string {
		fn := filepath.Join(dir, name)
		f, err := os.Create(fn)
		if err != nil {
			t.Fatalf("Could not create file %s: %v", fn, err)
		}
		defer f.Close()
		err = png.Encode(f, img)
		if err != nil {
			t.Fatalf("Could not encode image: %v", err)
		}
		return fn
	}

	t.Run("gray", func(t *testing.T) {
		orig := uniformgray(4, 4, 42)
		fn := writepng("gray.png", orig)
		got, err := DecodeFile(fn)
		if err != nil {
			t.Fatalf("DecodeFile failed: %v", err)
		}
		if !imgsequal(orig, got) {
			t.Errorf("Decoded grayscale image differs from original")
		}
	})

	t.Run("gray16", func(t *testing.T) {
		src := image.NewGray16(image.Rect(0, 0, 2, 2))
		src.SetGray16(0, 0, color.Gray16{Y: 1000})
		src.SetGray16(1, 1, color.Gray16{Y: 500})
		fn := writepng("gray16.png", src)
		got, err := DecodeFile(fn)
		if err != nil {
			t.Fatalf("DecodeFile failed: %v", err)
		}
		if v := got.GrayAt(0, 0).Y; v != 255 {
			t.Errorf("Brightest 16 bit pixel rescaled to %d, expected 255", v)
		}
		if v := got.GrayAt(1, 1).Y; v != 128 {
			t.Errorf("Half-intensity 16 bit pixel rescaled to %d, expected 128", v)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := DecodeFile(filepath.Join(dir, "nosuchfile.png"))
		var uerr *UnreadableImageError
		if !errors.As(err, &uerr) {
			t.Fatalf("Expected UnreadableImageError for missing file, got %v", err)
		}
		if uerr.Path == "" {
			t.Errorf("UnreadableImageError does not name the file")
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		fn := filepath.Join(dir, "corrupt.png")
		err := os.WriteFile(fn, []byte("this is not a png"), 0644)
		if err != nil {
			t.Fatalf("Could not write file %s: %v", fn, err)
		}
		_, err = DecodeFile(fn)
		var uerr *UnreadableImageError
		if !errors.As(err, &uerr) {
			t.Fatalf("Expected UnreadableImageError for corrupt file, got %v", err)
		}
	})
}
