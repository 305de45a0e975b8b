package lfsio

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"github.com/vorteil/levelfs/pkg/lfs2"
)

// readTable walks the chain starting at start, slices each cluster in
// turn into fixed-size records (a record never spans two clusters), and
// hands each whole record to decode. Slices smaller than one record (a cluster's trailing
// padding) are discarded rather than decoded, per spec.md §4.5. Any
// error encountered mid-chain degrades gracefully: the clusters read so
// far are still sliced and decoded, matching the CorruptMetadata
// handling in spec.md §7 (truncate, don't fail the whole read).
func readTable(resolver *Resolver, start uint64, recordSize int, decode func([]byte) error) {
	it := NewChainIterator(resolver, start)

	for {
		cluster, ok, err := it.Next()
		if err != nil || !ok {
			return
		}

		buf, err := resolver.dev.ReadCluster(cluster)
		if err != nil {
			return
		}

		for off := 0; off+recordSize <= len(buf); off += recordSize {
			// A decode error means one structurally impossible record;
			// the offending record is dropped and the table keeps going.
			_ = decode(buf[off : off+recordSize])
		}
	}
}

// ReadVersionEntries reads the version table (chain of VersionEntry
// records) starting at cluster start, filtering to active, named entries
// per spec.md §4.5.
func ReadVersionEntries(resolver *Resolver, start uint64) []*lfs2.VersionEntry {
	var out []*lfs2.VersionEntry
	readTable(resolver, start, lfs2.VersionEntrySize, func(buf []byte) error {
		v, err := lfs2.DecodeVersionEntry(buf)
		if err != nil {
			return err
		}
		if v.Active() {
			out = append(out, v)
		}
		return nil
	})
	return out
}

// ReadDirEntries reads a directory content chain starting at cluster
// start, filtering to non-free, named entries per spec.md §4.5.
func ReadDirEntries(resolver *Resolver, start uint64) []*lfs2.DirEntry {
	var out []*lfs2.DirEntry
	readTable(resolver, start, lfs2.DirEntrySize, func(buf []byte) error {
		d, err := lfs2.DecodeDirEntry(buf)
		if err != nil {
			return err
		}
		if d.Active() {
			out = append(out, d)
		}
		return nil
	})
	return out
}

// ReadLevelDescriptors reads the global level registry chain starting at
// cluster start, filtering to live descriptors per spec.md §4.5.
func ReadLevelDescriptors(resolver *Resolver, start uint64) []*lfs2.LevelDescriptor {
	var out []*lfs2.LevelDescriptor
	readTable(resolver, start, lfs2.LevelDescriptorSize, func(buf []byte) error {
		d, err := lfs2.DecodeLevelDescriptor(buf)
		if err != nil {
			return err
		}
		if d.Live() {
			out = append(out, d)
		}
		return nil
	})
	return out
}
