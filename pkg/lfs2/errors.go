package lfs2

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four error kinds the core distinguishes.
// DeviceError and InvalidHeader are fatal to the in-flight operation;
// CorruptMetadata is handled by degrading gracefully (callers in pkg/lfsio
// truncate/drop rather than propagate it); NotFound is a normal "absent"
// result, not a failure.
var (
	// ErrDeviceRead marks an I/O failure at the byte-source boundary.
	ErrDeviceRead = errors.New("levelfs: device read failed")

	// ErrInvalidHeader marks a superblock that is too short, has the
	// wrong magic, an unsupported version, or a cluster size other than
	// 4096.
	ErrInvalidHeader = errors.New("levelfs: invalid superblock header")

	// ErrCorruptMetadata marks a structurally impossible record or an
	// out-of-range cluster reference encountered mid-traversal.
	ErrCorruptMetadata = errors.New("levelfs: corrupt metadata")

	// ErrNotFound marks a lookup that completed without finding its
	// target.
	ErrNotFound = errors.New("levelfs: not found")
)

// DeviceReadError wraps ErrDeviceRead with the sector index that failed.
type DeviceReadError struct {
	Sector int64
	Err    error
}

func (e *DeviceReadError) Error() string {
	return fmt.Sprintf("levelfs: device read failed at sector %d: %v", e.Sector, e.Err)
}

func (e *DeviceReadError) Unwrap() error { return ErrDeviceRead }

// NewDeviceReadError constructs a DeviceReadError tagged with the sector
// index that was being read when err occurred.
func NewDeviceReadError(sector int64, err error) error {
	return &DeviceReadError{Sector: sector, Err: err}
}
