// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package terrain

// This file contains cloud account specific stuff; change this if
// you want to use the cloud functionality on your own site.

// Storage bucket names
const (
	storageWatermaps = "terrain-watermaps"
)
