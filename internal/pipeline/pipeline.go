// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the genallwatermaps command, which
// handles batch generation of water maps, using channels to feed a
// bounded pool of workers. Note that it is considered an "internal"
// package, not intended for external use, and no guarantee is made
// of the stability of any interfaces provided.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/marcuserlandsson/procedural-terrain/watermap"
)

// Uploader is the part of a storage connection the batch needs to
// publish derived water maps.
type Uploader interface {
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
	WIPStorageId() string
}

// FileResult is the outcome of generating a water map for one file.
type FileResult struct {
	Path     string
	OutPath  string
	Coverage float64
	Err      error
}

// Summary totals a batch run. Results are sorted by input path.
type Summary struct {
	Done    int
	Failed  int
	Results []FileResult
}

// FindHeightmaps lists the PNG files directly under dir, sorted by
// name and skipping dotfiles. A missing directory, or one with no
// PNG files in it, is an error, as the batch tools treat both as
// misconfiguration.
func FindHeightmaps(dir string) ([]string, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("Error reading heightmap directory %s: %v", dir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("Error: %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Error reading heightmap directory %s: %v", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		// skip files starting with . to prevent automatically
		// generated files like .DS_Store getting in the way
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != ".png" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("No PNG files found in %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// generate reads height map paths from togen and runs the single
// image transform on each, sending the outcome of every file to
// results. A failure is sent on like a success, so one bad input
// doesn't stop the rest of the batch.
func generate(ctx context.Context, togen chan string, results chan FileResult, cfg watermap.Config, s watermap.Smoother, logger *log.Logger) {
	for path := range togen {
		select {
		case <-ctx.Done():
			for range togen {
			} // consume the rest of the receiving channel so it isn't blocked
			return
		default:
		}
		logger.Println("Generating water map for", path)
		res, err := watermap.Generate(path, "", cfg, s, logger)
		results <- FileResult{Path: path, OutPath: res.OutPath, Coverage: res.Coverage, Err: err}
	}
}

// Process generates water maps for every height map in dir, running
// up to workers generations at once. Each generation is independent,
// so the only coordination needed is feeding paths in and collecting
// results out. Per-file failures are recorded in the summary rather
// than aborting the batch; the returned error covers batch-level
// problems only, like a missing directory or cancellation.
func Process(ctx context.Context, dir string, cfg watermap.Config, s watermap.Smoother, workers int, logger *log.Logger) (Summary, error) {
	var sum Summary

	err := cfg.Validate()
	if err != nil {
		return sum, err
	}
	paths, err := FindHeightmaps(dir)
	if err != nil {
		return sum, err
	}
	if workers < 1 {
		workers = 1
	}

	togen := make(chan string)
	results := make(chan FileResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			generate(ctx, togen, results, cfg, s, logger)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, p := range paths {
			togen <- p
		}
		close(togen)
	}()

	for r := range results {
		if r.Err != nil {
			sum.Failed++
			logger.Println("Error generating water map for", r.Path, r.Err)
		} else {
			sum.Done++
			logger.Println("Saved water map for", r.Path, "to", r.OutPath)
		}
		sum.Results = append(sum.Results, r)
	}
	sort.Slice(sum.Results, func(i, j int) bool { return sum.Results[i].Path < sum.Results[j].Path })

	select {
	case <-ctx.Done():
		return sum, ctx.Err()
	default:
	}
	return sum, nil
}

// Publish uploads every successfully generated water map in results
// to conn's storage, under prefix. Note that keys use the '/'
// delimiter regardless of platform.
func Publish(ctx context.Context, results []FileResult, prefix string, conn Uploader) error {
	for _, r := range results {
		if r.Err != nil || r.OutPath == "" {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		key := prefix + "/" + filepath.Base(r.OutPath)
		conn.Log("Uploading", key)
		err := conn.Upload(conn.WIPStorageId(), key, r.OutPath)
		if err != nil {
			return fmt.Errorf("Failed to upload %s: %v", r.OutPath, err)
		}
	}
	return nil
}
