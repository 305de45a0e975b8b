// Package lfsio composes pkg/lfs2's record decoders into a working
// read-only driver: positioned block I/O, the HLAT resolver, the chain
// walker, and the Filesystem Facade exposed to callers (spec.md §4.6).
package lfsio

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"fmt"
	"io"

	"github.com/vorteil/levelfs/pkg/lfs2"
)

// BlockDevice performs positioned, unbuffered reads of fixed-size
// sectors/clusters from an underlying byte source. Reads land at
// base+index*SectorSize; it holds no other state and issues only
// sector-aligned reads, matching the constraint that raw devices on at
// least one host platform require it.
type BlockDevice struct {
	src        io.ReaderAt
	baseOffset int64
}

// NewBlockDevice wraps src, reading all positions relative to
// baseOffset. src must support random access (io.ReaderAt); callers that
// only have an io.ReadSeeker should adapt it — the core does not do so
// itself since that would require buffering reads it cannot un-read.
func NewBlockDevice(src io.ReaderAt, baseOffset int64) *BlockDevice {
	return &BlockDevice{src: src, baseOffset: baseOffset}
}

// ReadSector reads count sectors starting at sector index.
func (d *BlockDevice) ReadSector(index int64, count int) ([]byte, error) {
	buf := make([]byte, count*lfs2.SectorSize)
	off := d.baseOffset + index*lfs2.SectorSize

	_, err := d.src.ReadAt(buf, off)
	if err != nil {
		return nil, lfs2.NewDeviceReadError(index, err)
	}

	return buf, nil
}

// ReadCluster reads one 4096-byte cluster. read_cluster(c) is defined in
// spec.md §4.1 as read_sector(c*8, 8).
func (d *BlockDevice) ReadCluster(cluster uint64) ([]byte, error) {
	return d.ReadSector(int64(cluster)*lfs2.SectorsPerCluster, lfs2.SectorsPerCluster)
}

// ReadSuperblockBytes reads the fixed 512-byte header at sector 0.
func (d *BlockDevice) ReadSuperblockBytes() ([]byte, error) {
	return d.ReadSector(0, 1)
}

func sliceAt(buf []byte, offset, size int) ([]byte, error) {
	if offset+size > len(buf) {
		return nil, fmt.Errorf("%w: offset %d size %d exceeds buffer of %d bytes", lfs2.ErrCorruptMetadata, offset, size, len(buf))
	}
	return buf[offset : offset+size], nil
}
