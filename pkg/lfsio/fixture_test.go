package lfsio

import (
	"encoding/binary"

	"github.com/vorteil/levelfs/pkg/lfs2"
)

// imageBuilder assembles a minimal, byte-exact LevelFS v2 image in memory
// for facade-level tests: a real superblock, a real (if tiny) HLAT index,
// and whatever content clusters a test needs. It exists so the pkg/lfsio
// tests exercise the resolver/chain/facade against bytes built the same
// way a real volume would be, rather than against mocks of those layers.
type imageBuilder struct {
	totalClusters uint64
	clusters      map[uint64][]byte
	successors    map[uint64]uint64
}

func newImageBuilder(totalClusters uint64) *imageBuilder {
	return &imageBuilder{
		totalClusters: totalClusters,
		clusters:      make(map[uint64][]byte),
		successors:    make(map[uint64]uint64),
	}
}

func (b *imageBuilder) setCluster(c uint64, data []byte) {
	buf := make([]byte, lfs2.ClusterSize)
	copy(buf, data)
	b.clusters[c] = buf
}

// link records cluster c's successor. Every cluster referenced as the
// start of a chain, or that is itself chained from another, needs a
// successor recorded here (even if it is just lfs2.SentinelEnd) so the
// builder knows to index it in the HLAT.
func (b *imageBuilder) link(c uint64, next uint64) {
	b.successors[c] = next
}

func putVersionEntry(buf []byte, off int, name string, contentCluster, levelID, parentLevelID uint64, isActive bool) {
	copy(buf[off:off+32], name)
	binary.LittleEndian.PutUint64(buf[off+32:], contentCluster)
	binary.LittleEndian.PutUint64(buf[off+40:], levelID)
	binary.LittleEndian.PutUint64(buf[off+48:], parentLevelID)
	if isActive {
		buf[off+60] = 1
	}
}

func putDirEntry(buf []byte, off int, name string, typ uint8, startCluster, size uint64) {
	copy(buf[off:off+32], name)
	buf[off+32] = typ
	binary.LittleEndian.PutUint64(buf[off+33:], startCluster)
	binary.LittleEndian.PutUint64(buf[off+41:], size)
}

func putLevelDescriptor(buf []byte, off int, name string, levelID, parentLevelID, rootContentCluster uint64, flags uint32) {
	copy(buf[off:off+32], name)
	binary.LittleEndian.PutUint64(buf[off+32:], levelID)
	binary.LittleEndian.PutUint64(buf[off+40:], parentLevelID)
	binary.LittleEndian.PutUint64(buf[off+48:], rootContentCluster)
	binary.LittleEndian.PutUint32(buf[off+72:], flags)
}

// build lays out the superblock (cluster 0), one LIT cluster at cluster
// 1, and however many LAB clusters the recorded successors need, then
// returns the full device image.
func (b *imageBuilder) build(rootDirCluster, levelRegistryCluster uint64) []byte {
	const litStartCluster = 1

	stripes := make(map[uint64]uint64) // litIndex -> allocated LAB cluster
	nextFreeLAB := uint64(2000)

	litIndexOf := func(c uint64) uint64 {
		litIndex, _ := lfs2.HLATCoordinates(c)
		return litIndex
	}

	// allocLAB picks the next LAB cluster not already claimed as a data
	// cluster by the test (via setCluster), so the HLAT index never
	// clobbers content a test explicitly placed at that cluster number.
	allocLAB := func() uint64 {
		for {
			if _, used := b.clusters[nextFreeLAB]; !used {
				c := nextFreeLAB
				nextFreeLAB++
				return c
			}
			nextFreeLAB++
		}
	}

	for c := range b.successors {
		li := litIndexOf(c)
		if _, ok := stripes[li]; !ok {
			stripes[li] = allocLAB()
		}
	}

	litBuf := make([]byte, lfs2.ClusterSize)
	for li, labCluster := range stripes {
		clusterOffset, entryIdx := lfs2.LITCoordinates(li)
		if clusterOffset != 0 {
			panic("fixture: LIT index spans more than one LIT cluster, extend imageBuilder")
		}
		off := int(entryIdx) * lfs2.LITEntrySize
		binary.LittleEndian.PutUint64(litBuf[off:], labCluster)
	}
	b.clusters[litStartCluster] = litBuf

	labBufs := make(map[uint64][]byte)
	for c, next := range b.successors {
		li := litIndexOf(c)
		labCluster := stripes[li]
		buf, ok := labBufs[labCluster]
		if !ok {
			buf = make([]byte, lfs2.ClusterSize)
			labBufs[labCluster] = buf
		}
		_, labOffset := lfs2.HLATCoordinates(c)
		off := int(labOffset) * lfs2.LABEntrySize
		binary.LittleEndian.PutUint64(buf[off:], next)
	}
	for c, buf := range labBufs {
		b.clusters[c] = buf
	}

	sbBuf := make([]byte, lfs2.SuperblockSize)
	binary.LittleEndian.PutUint32(sbBuf[0:], lfs2.Magic)
	binary.LittleEndian.PutUint32(sbBuf[4:], lfs2.Version)
	binary.LittleEndian.PutUint32(sbBuf[16:], lfs2.ClusterSize)
	binary.LittleEndian.PutUint64(sbBuf[20:], b.totalClusters)
	binary.LittleEndian.PutUint64(sbBuf[28:], litStartCluster)
	binary.LittleEndian.PutUint64(sbBuf[68:], levelRegistryCluster)
	binary.LittleEndian.PutUint64(sbBuf[132:], rootDirCluster)
	copy(sbBuf[180:212], "fixture-volume")

	image := make([]byte, b.totalClusters*lfs2.ClusterSize)
	copy(image, sbBuf)
	for c, data := range b.clusters {
		copy(image[c*lfs2.ClusterSize:], data)
	}

	return image
}
