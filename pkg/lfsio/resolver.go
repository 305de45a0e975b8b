package lfsio

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"github.com/vorteil/levelfs/pkg/lfs2"
)

// Resolver implements the HLAT two-tier lookup: given a cluster number,
// return the LABEntry describing its successor. It memoizes the most
// recently read LIT and LAB clusters so that a sequential chain walk
// within one 256-cluster stripe does not re-read them on every step —
// an optional optimization per spec.md §4.3, not required for
// correctness.
type Resolver struct {
	dev *BlockDevice
	sb  *lfs2.Superblock

	litClusterIdx uint64
	litCluster    []byte
	litValid      bool

	labClusterIdx uint64
	labCluster    []byte
	labValid      bool
}

// NewResolver constructs a Resolver over dev using sb's LIT geometry.
func NewResolver(dev *BlockDevice, sb *lfs2.Superblock) *Resolver {
	return &Resolver{dev: dev, sb: sb}
}

// Resolve returns the LAB entry for cluster c, per spec.md §4.3.
func (r *Resolver) Resolve(c uint64) (*lfs2.LABEntry, error) {
	if !lfs2.ValidCluster(c, r.sb.TotalClusters) {
		return lfs2.FreeLABEntry(), nil
	}

	litIndex, labOffset := lfs2.HLATCoordinates(c)
	litClusterOffset, litEntryIndex := lfs2.LITCoordinates(litIndex)
	litClusterNo := r.sb.LITStartCluster + litClusterOffset

	litBuf, err := r.loadLITCluster(litClusterNo)
	if err != nil {
		return nil, err
	}

	entryBuf, err := sliceAt(litBuf, int(litEntryIndex)*lfs2.LITEntrySize, lfs2.LITEntrySize)
	if err != nil {
		return nil, err
	}

	lit, err := lfs2.DecodeLITEntry(entryBuf)
	if err != nil {
		return nil, err
	}

	if lit.LABCluster == 0 {
		return lfs2.FreeLABEntry(), nil
	}

	labBuf, err := r.loadLABCluster(lit.LABCluster)
	if err != nil {
		return nil, err
	}

	labEntryBuf, err := sliceAt(labBuf, int(labOffset)*lfs2.LABEntrySize, lfs2.LABEntrySize)
	if err != nil {
		return nil, err
	}

	return lfs2.DecodeLABEntry(labEntryBuf)
}

func (r *Resolver) loadLITCluster(clusterNo uint64) ([]byte, error) {
	if r.litValid && r.litClusterIdx == clusterNo {
		return r.litCluster, nil
	}

	buf, err := r.dev.ReadCluster(clusterNo)
	if err != nil {
		return nil, err
	}

	r.litClusterIdx = clusterNo
	r.litCluster = buf
	r.litValid = true
	return buf, nil
}

func (r *Resolver) loadLABCluster(clusterNo uint64) ([]byte, error) {
	if r.labValid && r.labClusterIdx == clusterNo {
		return r.labCluster, nil
	}

	buf, err := r.dev.ReadCluster(clusterNo)
	if err != nil {
		return nil, err
	}

	r.labClusterIdx = clusterNo
	r.labCluster = buf
	r.labValid = true
	return buf, nil
}
