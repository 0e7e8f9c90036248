// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrain "github.com/marcuserlandsson/procedural-terrain"
	"github.com/marcuserlandsson/procedural-terrain/watermap"
)

// StrLog is a simple logger that saves to a string, so it can be
// printed out only when needed.
type StrLog struct {
	log string
}

func (t *StrLog) Write(p []byte) (n int, err error) {
	t.log += string(p)
	return len(p), nil
}

func writeheightmap(t *testing.T, fn string, v uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	f, err := os.Create(fn)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func Test_FindHeightmaps(t *testing.T) {
	dir := t.TempDir()

	t.Run("missingdir", func(t *testing.T) {
		_, err := FindHeightmaps(filepath.Join(dir, "nosuchdir"))
		require.Error(t, err)
	})

	t.Run("nopngs", func(t *testing.T) {
		empty := filepath.Join(dir, "empty")
		require.NoError(t, os.Mkdir(empty, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(empty, "readme.txt"), []byte("hi"), 0644))
		_, err := FindHeightmaps(empty)
		require.Error(t, err)
	})

	t.Run("sortedpngs", func(t *testing.T) {
		hm := filepath.Join(dir, "heightmaps")
		require.NoError(t, os.Mkdir(hm, 0755))
		writeheightmap(t, filepath.Join(hm, "b.png"), 10)
		writeheightmap(t, filepath.Join(hm, "a.PNG"), 10)
		require.NoError(t, os.WriteFile(filepath.Join(hm, ".hidden.png"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(hm, "notes.txt"), []byte("x"), 0644))

		paths, err := FindHeightmaps(hm)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(hm, "a.PNG"), filepath.Join(hm, "b.png")}, paths)
	})
}

func Test_Process(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	dir := t.TempDir()
	hm := filepath.Join(dir, "heightmaps")
	require.NoError(t, os.Mkdir(hm, 0755))
	writeheightmap(t, filepath.Join(hm, "low.png"), 10)
	writeheightmap(t, filepath.Join(hm, "high.png"), 200)
	require.NoError(t, os.WriteFile(filepath.Join(hm, "corrupt.png"), []byte("not a png"), 0644))

	sum, err := Process(context.Background(), hm, watermap.DefaultConfig(), nil, 2, vlog)
	if err != nil {
		t.Logf("Log: %s", slog.log)
	}
	require.NoError(t, err)

	// one bad input must not stop the others from being processed
	assert.Equal(t, 2, sum.Done)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Results, 3)

	byname := make(map[string]FileResult)
	for _, r := range sum.Results {
		byname[filepath.Base(r.Path)] = r
	}

	assert.Error(t, byname["corrupt.png"].Err)
	require.NoError(t, byname["low.png"].Err)
	require.NoError(t, byname["high.png"].Err)
	assert.Equal(t, 1.0, byname["low.png"].Coverage)
	assert.Equal(t, 0.0, byname["high.png"].Coverage)

	for _, name := range []string{"low.png", "high.png"} {
		out := filepath.Join(dir, "derived-watermaps", name)
		assert.Equal(t, out, byname[name].OutPath)
		_, err := os.Stat(out)
		assert.NoError(t, err)
	}
}

func Test_ProcessInvalidConfig(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	cfg := watermap.Config{Threshold: 300, Sigma: 2}
	_, err := Process(context.Background(), t.TempDir(), cfg, nil, 1, vlog)
	require.Error(t, err)
}

func Test_Publish(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	dir := t.TempDir()
	fn := filepath.Join(dir, "map.png")
	writeheightmap(t, fn, 10)

	conn := &terrain.LocalConn{TempDir: filepath.Join(dir, "store"), Logger: vlog}
	require.NoError(t, conn.Init())

	results := []FileResult{
		{Path: "in/map.png", OutPath: fn},
		{Path: "in/bad.png", Err: os.ErrNotExist},
	}
	require.NoError(t, Publish(context.Background(), results, "maps", conn))

	names, err := conn.ListObjects(conn.WIPStorageId(), "maps")
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], "map.png")
}
