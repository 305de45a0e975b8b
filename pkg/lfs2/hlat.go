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

// LITEntry is a Level-Indirect Table entry (24 bytes). It governs one
// 256-cluster stripe (ClustersPerLITEntry) and points at the LAB cluster
// holding that stripe's successor pointers. LABCluster == 0 means the
// stripe is unindexed, i.e. entirely free.
type LITEntry struct {
	LABCluster     uint64
	BaseCluster    uint64
	AllocatedCount uint32
	Flags          uint32
}

// DecodeLITEntry decodes a single 24-byte LIT entry.
func DecodeLITEntry(buf []byte) (*LITEntry, error) {
	if len(buf) < LITEntrySize {
		return nil, fmt.Errorf("%w: LIT entry truncated to %d bytes", ErrCorruptMetadata, len(buf))
	}

	e := new(LITEntry)
	err := binary.Read(bytes.NewReader(buf[:LITEntrySize]), binary.LittleEndian, e)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	return e, nil
}

// LABEntry is a Level-Allocation Block entry (16 bytes): the successor
// pointer for one cluster, plus the level that owns it.
type LABEntry struct {
	NextCluster uint64
	LevelID     uint32
	Flags       uint16
	RefCount    uint16
}

// FreeLABEntry is the synthetic entry returned by the HLAT resolver for a
// cluster number that is out of range or whose stripe is unindexed: a
// zero successor, treated by callers as end-of-chain.
func FreeLABEntry() *LABEntry {
	return &LABEntry{}
}

// DecodeLABEntry decodes a single 16-byte LAB entry.
func DecodeLABEntry(buf []byte) (*LABEntry, error) {
	if len(buf) < LABEntrySize {
		return nil, fmt.Errorf("%w: LAB entry truncated to %d bytes", ErrCorruptMetadata, len(buf))
	}

	e := new(LABEntry)
	err := binary.Read(bytes.NewReader(buf[:LABEntrySize]), binary.LittleEndian, e)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	return e, nil
}

// LITCoordinates splits an absolute LIT entry index into the cluster that
// holds it and its offset within that cluster, per spec.md §4.3 step 3:
// a single LIT cluster holds 4096/24 = 170 entries, with 16 bytes of
// trailing padding ignored.
func LITCoordinates(litIndex uint64) (clusterOffset, entryIndex uint64) {
	return litIndex / LITEntriesPerCluster, litIndex % LITEntriesPerCluster
}

// HLATCoordinates splits a cluster number into its LIT entry index and its
// offset within the LAB cluster that entry points to, per spec.md §4.3
// steps 2 and 6.
func HLATCoordinates(cluster uint64) (litIndex, labOffset uint64) {
	return cluster / ClustersPerLITEntry, cluster % ClustersPerLITEntry
}
