// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The terrain package contains tools and functions for deriving water
maps from procedurally generated terrain height maps.

A height map is a grayscale raster in which pixel intensity encodes
elevation, darker being lower. The tools here classify each cell as
water or land by thresholding that intensity, on the idea that
anything below a certain elevation is underwater, and optionally
smooth the hard water/land boundary into a graded shoreline with a
Gaussian blur.

Generating a single water map

The genwatermap command converts one height map:

  genwatermap -t 40 maps/heightmaps/island.png

By default the result is written to a derived-watermaps directory
that sits next to the height map's own directory, so the example
above writes maps/derived-watermaps/island.png. Pass -s to smooth
the shorelines, and -sigma to control how soft they are.

Generating water maps in bulk

The genallwatermaps command runs the same transform over every PNG in
a heightmaps directory, processing several maps in parallel and
carrying on past any file that fails:

  genallwatermaps -d maps/heightmaps -s

It can also write a water coverage chart and a PDF report of every
height map alongside its derived water map (-report), and publish
the results to S3 (-upload). The genwatermaps-gui command wraps the
same batch processing in a small graphical interface.

This package itself holds the parts shared between those commands:
storage connections for publishing results (LocalConn and AwsConn),
the coverage chart, and the PDF report builder. The core image work
lives in the heightmap and watermap packages.
*/
package terrain
