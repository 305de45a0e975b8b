// Package lfs2 decodes the on-disk structures of a LevelFS v2 volume:
// the superblock, the two-tier HLAT allocation index (LIT/LAB), and the
// four fixed-size record schemas (directory entry, version entry, level
// descriptor, symlink payload). It knows nothing about how bytes reach
// it; pkg/lfsio supplies that.
package lfs2

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

// Geometry constants. All on-disk integers are little-endian.
const (
	SectorSize        = 512
	ClusterSize       = 4096
	SectorsPerCluster = ClusterSize / SectorSize

	Magic   uint32 = 0x4C465332 // "LFS2"
	Version uint32 = 2

	SuperblockSize = 512

	LITEntrySize        = 24
	LABEntrySize        = 16
	VersionEntrySize    = 68
	LevelDescriptorSize = 104
	DirEntrySize        = 64

	// ClustersPerLITEntry is the width of the stripe governed by a single
	// LIT entry: every 256 contiguous clusters share one LAB cluster.
	ClustersPerLITEntry = 256

	// LABEntriesPerCluster is how many LAB entries fit in one cluster
	// (4096 / 16).
	LABEntriesPerCluster = ClusterSize / LABEntrySize

	// LITEntriesPerCluster is how many LIT entries fit in one cluster
	// (4096 / 24 = 170, with 16 bytes of trailing padding).
	LITEntriesPerCluster = ClusterSize / LITEntrySize

	// MaxChainLength bounds a single chain traversal. A malformed image
	// with a self-referential successor pointer must not hang the reader.
	MaxChainLength = 100000
)

// Successor sentinels for a LAB entry's next_cluster field.
const (
	SentinelFree uint64 = 0x0000000000000000
	SentinelEnd  uint64 = 0xFFFFFFFFFFFFFFFF
	SentinelBad  uint64 = 0xFFFFFFFFFFFFFFFE
)

// DirEntry.Type values.
const (
	EntryTypeFree       uint8 = 0
	EntryTypeFile       uint8 = 1
	EntryTypeLeveledDir uint8 = 2
	EntryTypeSymlink    uint8 = 3
	EntryTypeHardlink   uint8 = 4
	EntryTypeLevelMount uint8 = 5
)

// LevelDescriptor.Flags bit for "live".
const LevelFlagLive uint32 = 0x0001

// ValidCluster reports whether c is a usable cluster number: spec.md
// invariant 1, 0 < c < totalClusters.
func ValidCluster(c, totalClusters uint64) bool {
	return c > 0 && c < totalClusters
}

// IsSentinel reports whether c terminates a chain traversal.
func IsSentinel(c uint64) bool {
	return c == SentinelFree || c == SentinelEnd || c == SentinelBad
}
