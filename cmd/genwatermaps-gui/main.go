// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// genwatermaps-gui wraps batch water map generation in a small
// graphical interface.
package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/marcuserlandsson/procedural-terrain/internal/pipeline"
	"github.com/marcuserlandsson/procedural-terrain/watermap"
)

// logWriter appends log output to the log area, keeping the cursor
// on the last line so the entry scrolls with the output
type logWriter struct {
	area *widget.Entry
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.area.SetText(w.area.Text + string(p))
	w.area.CursorRow = strings.Count(w.area.Text, "\n")
	return len(p), nil
}

func main() {
	myApp := app.New()
	myWindow := myApp.NewWindow("Water maps")

	var gobtn *widget.Button

	dir := widget.NewEntry()
	dir.SetPlaceHolder("Heightmaps folder")
	dir.OnChanged = func(s string) {
		if dir.Text != "" {
			gobtn.Enable()
		} else {
			gobtn.Disable()
		}
	}

	openbtn := widget.NewButtonWithIcon("Choose folder", theme.FolderOpenIcon(), func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err == nil && uri != nil {
				dir.SetText(uri.Path())
			}
		}, myWindow)
	})

	thresholdlabel := widget.NewLabel(fmt.Sprintf("Threshold: %d", watermap.DefaultThreshold))
	threshold := widget.NewSlider(0, 255)
	threshold.SetValue(float64(watermap.DefaultThreshold))
	threshold.OnChanged = func(v float64) {
		thresholdlabel.SetText(fmt.Sprintf("Threshold: %.0f", v))
	}

	smooth := widget.NewCheck("Smooth shorelines", nil)
	sigma := widget.NewEntry()
	sigma.SetText(fmt.Sprintf("%.1f", watermap.DefaultSigma))

	progressBar := widget.NewProgressBar()

	logarea := widget.NewMultiLineEntry()
	logarea.Disable()

	gobtn = widget.NewButtonWithIcon("Generate water maps", theme.MediaPlayIcon(), func() {
		if dir.Text == "" {
			return
		}

		gobtn.Disable()
		gobtn.SetText("Generating...")
		progressBar.SetValue(0.5)

		cfg := watermap.DefaultConfig()
		cfg.Threshold = int(threshold.Value)
		cfg.Smooth = smooth.Checked
		if s, err := strconv.ParseFloat(sigma.Text, 64); err == nil {
			cfg.Sigma = s
		}

		logger := log.New(&logWriter{area: logarea}, "", 0)

		go func() {
			sum, err := pipeline.Process(context.Background(), dir.Text, cfg, watermap.GaussianSmoother{}, runtime.NumCPU(), logger)
			if err != nil {
				logger.Println("Error:", err)
			} else {
				logger.Printf("Processed %d water maps (%d failed)\n", sum.Done, sum.Failed)
			}

			progressBar.SetValue(1.0)
			gobtn.SetText("Generate water maps")
			gobtn.Enable()
		}()
	})
	gobtn.Disable()

	diropener := container.New(layout.NewGridLayout(2), dir, openbtn)
	smoothing := container.New(layout.NewGridLayout(2), smooth, sigma)

	content := container.NewVBox(diropener, thresholdlabel, threshold, smoothing, gobtn, progressBar, logarea)

	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(600, 450))
	myWindow.Show()
	myApp.Run()
}
