// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package terrain

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

const pageWidth = 5 // pageWidth in inches

const labelHeight = 20 // room for the file name under each image, in pt

// pxToPt converts a pixel value into a pt value (72 pts per inch)
// This uses pageWidth to determine the appropriate value
func pxToPt(i int) float64 {
	return float64(i) / pageWidth
}

// Fpdf builds a report PDF in which each page shows a height map
// next to the water map derived from it.
type Fpdf struct {
	fpdf *gofpdf.Fpdf
}

// Setup creates a new PDF with appropriate settings and fonts
func (p *Fpdf) Setup() error {
	p.fpdf = gofpdf.New("L", "pt", "A4", "")
	p.fpdf.SetFont("Helvetica", "", 10)
	p.fpdf.SetAutoPageBreak(false, float64(0))
	return p.fpdf.Error()
}

func imgsize(path string) (image.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Rectangle{}, errors.New(fmt.Sprintf("Could not open file %s: %v", path, err))
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return image.Rectangle{}, errors.New(fmt.Sprintf("Could not decode image %s: %v", path, err))
	}
	return img.Bounds(), nil
}

// AddPair adds a page to the pdf showing the height map at
// heightpath on the left and its derived water map at waterpath on
// the right, with the file name labelled underneath.
func (p *Fpdf) AddPair(heightpath string, waterpath string) error {
	hb, err := imgsize(heightpath)
	if err != nil {
		return err
	}
	wb, err := imgsize(waterpath)
	if err != nil {
		return err
	}

	ht := hb.Dy()
	if wb.Dy() > ht {
		ht = wb.Dy()
	}
	p.fpdf.AddPageFormat("L", gofpdf.SizeType{
		Wd: pxToPt(hb.Dx() + wb.Dx()),
		Ht: pxToPt(ht) + labelHeight,
	})

	_ = p.fpdf.RegisterImageOptions(heightpath, gofpdf.ImageOptions{})
	p.fpdf.ImageOptions(heightpath, 0, 0, pxToPt(hb.Dx()), pxToPt(hb.Dy()), false, gofpdf.ImageOptions{}, 0, "")
	_ = p.fpdf.RegisterImageOptions(waterpath, gofpdf.ImageOptions{})
	p.fpdf.ImageOptions(waterpath, pxToPt(hb.Dx()), 0, pxToPt(wb.Dx()), pxToPt(wb.Dy()), false, gofpdf.ImageOptions{}, 0, "")

	p.fpdf.SetXY(0, pxToPt(ht))
	p.fpdf.CellFormat(pxToPt(hb.Dx()+wb.Dx()), labelHeight, filepath.Base(heightpath), "", 0, "C", false, 0, "")

	return p.fpdf.Error()
}

// Save saves the PDF to the file at path
func (p *Fpdf) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}
