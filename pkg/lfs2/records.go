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

// rawVersionEntry mirrors the 68-byte on-disk layout exactly; VersionEntry
// is the decoded value type callers work with.
type rawVersionEntry struct {
	Name            [32]byte
	ContentCluster  uint64
	LevelID         uint64
	ParentLevelID   uint64
	Flags           uint32
	IsActive        uint8
	Pad             [7]byte
}

// Active reports whether a VersionEntry should be emitted by a table
// reader: is_active != 0 and a non-empty name.
func (v *VersionEntry) Active() bool {
	return v.IsActive && v.Name != ""
}

// VersionEntry records a named level rooted at ContentCluster. It appears
// in the root version table and in per-folder version tables attached to
// a LEVELED_DIR entry.
type VersionEntry struct {
	Name           string
	ContentCluster uint64
	LevelID        uint64
	ParentLevelID  uint64
	Flags          uint32
	IsActive       bool
}

// DecodeVersionEntry decodes one 68-byte VersionEntry record.
func DecodeVersionEntry(buf []byte) (*VersionEntry, error) {
	if len(buf) < VersionEntrySize {
		return nil, fmt.Errorf("%w: version entry truncated to %d bytes", ErrCorruptMetadata, len(buf))
	}

	raw := new(rawVersionEntry)
	err := binary.Read(bytes.NewReader(buf[:VersionEntrySize]), binary.LittleEndian, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}

	return &VersionEntry{
		Name:           decodeName(raw.Name[:]),
		ContentCluster: raw.ContentCluster,
		LevelID:        raw.LevelID,
		ParentLevelID:  raw.ParentLevelID,
		Flags:          raw.Flags,
		IsActive:       raw.IsActive != 0,
	}, nil
}

// rawLevelDescriptor mirrors the 104-byte on-disk layout.
type rawLevelDescriptor struct {
	Name               [32]byte
	LevelID            uint64
	ParentLevelID      uint64
	RootContentCluster uint64
	CreateTime         uint64
	ModTime            uint64
	Flags              uint32
	RefCount           uint32
	ChildCount         uint64
	TotalSize          uint64
	Pad                [8]byte
}

// LevelDescriptor is a global level-registry entry.
type LevelDescriptor struct {
	Name               string
	LevelID            uint64
	ParentLevelID      uint64
	RootContentCluster uint64
	CreateTime         uint64
	ModTime            uint64
	Flags              uint32
	RefCount           uint32
	ChildCount         uint64
	TotalSize          uint64
}

// Live reports whether the descriptor is considered live: level_id != 0
// and flags & 0x0001.
func (d *LevelDescriptor) Live() bool {
	return d.LevelID != 0 && d.Flags&LevelFlagLive != 0
}

// DecodeLevelDescriptor decodes one 104-byte LevelDescriptor record.
func DecodeLevelDescriptor(buf []byte) (*LevelDescriptor, error) {
	if len(buf) < LevelDescriptorSize {
		return nil, fmt.Errorf("%w: level descriptor truncated to %d bytes", ErrCorruptMetadata, len(buf))
	}

	raw := new(rawLevelDescriptor)
	err := binary.Read(bytes.NewReader(buf[:LevelDescriptorSize]), binary.LittleEndian, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}

	return &LevelDescriptor{
		Name:               decodeName(raw.Name[:]),
		LevelID:            raw.LevelID,
		ParentLevelID:      raw.ParentLevelID,
		RootContentCluster: raw.RootContentCluster,
		CreateTime:         raw.CreateTime,
		ModTime:            raw.ModTime,
		Flags:              raw.Flags,
		RefCount:           raw.RefCount,
		ChildCount:         raw.ChildCount,
		TotalSize:          raw.TotalSize,
	}, nil
}

// rawDirEntry mirrors the 64-byte on-disk layout.
type rawDirEntry struct {
	Name         [32]byte
	Type         uint8
	StartCluster uint64
	Size         uint64
	Attributes   uint32
	CreateTime   uint32
	ModTime      uint32
	Pad          [3]byte
}

// Active reports whether a DirEntry should be emitted by a table reader:
// type != FREE and a non-empty name.
func (d *DirEntry) Active() bool {
	return d.Type != EntryTypeFree && d.Name != ""
}

// DirEntry is one child of a directory content chain.
type DirEntry struct {
	Name         string
	Type         uint8
	StartCluster uint64
	Size         uint64
	Attributes   uint32
	CreateTime   uint32
	ModTime      uint32
}

// DecodeDirEntry decodes one 64-byte DirEntry record.
func DecodeDirEntry(buf []byte) (*DirEntry, error) {
	if len(buf) < DirEntrySize {
		return nil, fmt.Errorf("%w: dir entry truncated to %d bytes", ErrCorruptMetadata, len(buf))
	}

	raw := new(rawDirEntry)
	err := binary.Read(bytes.NewReader(buf[:DirEntrySize]), binary.LittleEndian, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}

	return &DirEntry{
		Name:         decodeName(raw.Name[:]),
		Type:         raw.Type,
		StartCluster: raw.StartCluster,
		Size:         raw.Size,
		Attributes:   raw.Attributes,
		CreateTime:   raw.CreateTime,
		ModTime:      raw.ModTime,
	}, nil
}
