package lfs2

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Superblock is the structure of a LevelFS v2 volume header as written to
// sector 0, 512 bytes total. Field order and widths match spec.md's data
// model exactly; on-disk values are little-endian.
type Superblock struct {
	Magic   uint32
	Version uint32

	TotalSectors  uint64
	ClusterSize   uint32
	TotalClusters uint64

	LITStartCluster uint64
	LITClusters     uint64

	LABPoolStart    uint64
	LABPoolClusters uint64
	NextFreeLAB     uint64

	LevelRegistryCluster  uint64
	LevelRegistryClusters uint64

	JournalStartCluster uint64
	JournalSectors      uint64
	LastTxID            uint64

	NextLevelID uint64
	TotalLevels uint64
	RootLevelID uint64

	RootDirCluster  uint64
	BackupSBCluster uint64

	FreeClusterHint   uint64
	TotalFreeClusters uint64

	LATStartCluster uint64
	LATSectors      uint64

	VolumeNameRaw [32]byte

	Pad [300]byte
}

// VolumeName decodes the null-padded UTF-8 volume name.
func (sb *Superblock) VolumeName() string {
	return decodeName(sb.VolumeNameRaw[:])
}

// FreeSpace returns the free-space accounting fields exposed read-only to
// callers per spec.md §6.
func (sb *Superblock) FreeSpace() (hint, total uint64) {
	return sb.FreeClusterHint, sb.TotalFreeClusters
}

// ParseSuperblock validates and decodes a 512-byte superblock buffer.
// Magic, version and cluster_size are validated; every other field is
// accepted as-is — a damaged volume should still surface as much intact
// data as the rest of the core can manage.
func ParseSuperblock(buf []byte) (*Superblock, error) {
	if len(buf) < SuperblockSize {
		return nil, fmt.Errorf("%w: header is %d bytes, need %d", ErrInvalidHeader, len(buf), SuperblockSize)
	}

	sb := new(Superblock)
	err := binary.Read(bytes.NewReader(buf[:SuperblockSize]), binary.LittleEndian, sb)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	if sb.Magic != Magic {
		return nil, fmt.Errorf("%w: magic %#x, want %#x", ErrInvalidHeader, sb.Magic, Magic)
	}

	if sb.Version != Version {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrInvalidHeader, sb.Version, Version)
	}

	if sb.ClusterSize != ClusterSize {
		return nil, fmt.Errorf("%w: cluster_size %d, want %d", ErrInvalidHeader, sb.ClusterSize, ClusterSize)
	}

	return sb, nil
}
