package lfs2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildSuperblockBytes encodes sb the same way the on-disk layout requires,
// so fixtures stay correct even if fields are reordered later.
func buildSuperblockBytes(t *testing.T, sb *Superblock) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, sb); err != nil {
		t.Fatalf("encoding fixture superblock: %v", err)
	}
	if buf.Len() != SuperblockSize {
		t.Fatalf("fixture superblock encoded to %d bytes, want %d", buf.Len(), SuperblockSize)
	}
	return buf.Bytes()
}

func validSuperblockFixture() *Superblock {
	sb := &Superblock{
		Magic:                 Magic,
		Version:               Version,
		TotalSectors:          4096 * 8,
		ClusterSize:           ClusterSize,
		TotalClusters:         4096,
		LITStartCluster:       10,
		LevelRegistryCluster:  50,
		RootDirCluster:        100,
		TotalLevels:           1,
		RootLevelID:           1,
		FreeClusterHint:       2000,
		TotalFreeClusters:     3000,
	}
	copy(sb.VolumeNameRaw[:], "test-volume")
	return sb
}

func TestParseSuperblockRejectsForeignVolume(t *testing.T) {
	buf := make([]byte, SuperblockSize)
	binary.LittleEndian.PutUint32(buf[0:4], 0xDEADBEEF)

	_, err := ParseSuperblock(buf)
	if err == nil {
		t.Fatalf("ParseSuperblock should reject a non-LevelFS magic")
	}
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("ParseSuperblock error = %v, want wrapping ErrInvalidHeader", err)
	}
}

func TestParseSuperblockRejectsShortBuffer(t *testing.T) {
	_, err := ParseSuperblock(make([]byte, 511))
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("ParseSuperblock on a short buffer should wrap ErrInvalidHeader, got %v", err)
	}
}

func TestParseSuperblockRejectsBadVersion(t *testing.T) {
	sb := validSuperblockFixture()
	sb.Version = 1
	buf := buildSuperblockBytes(t, sb)

	_, err := ParseSuperblock(buf)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("ParseSuperblock with version 1 should wrap ErrInvalidHeader, got %v", err)
	}
}

func TestParseSuperblockRejectsBadClusterSize(t *testing.T) {
	sb := validSuperblockFixture()
	sb.ClusterSize = 512
	buf := buildSuperblockBytes(t, sb)

	_, err := ParseSuperblock(buf)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("ParseSuperblock with cluster_size 512 should wrap ErrInvalidHeader, got %v", err)
	}
}

func TestParseSuperblockAcceptsValidV2(t *testing.T) {
	sb := validSuperblockFixture()
	buf := buildSuperblockBytes(t, sb)

	got, err := ParseSuperblock(buf)
	if err != nil {
		t.Fatalf("ParseSuperblock on a valid v2 header failed: %v", err)
	}

	if got.TotalClusters != 4096 {
		t.Fatalf("TotalClusters = %d, want 4096", got.TotalClusters)
	}
	if got.RootDirCluster != 100 {
		t.Fatalf("RootDirCluster = %d, want 100", got.RootDirCluster)
	}
	if got.VolumeName() != "test-volume" {
		t.Fatalf("VolumeName() = %q, want %q", got.VolumeName(), "test-volume")
	}

	hint, total := got.FreeSpace()
	if hint != 2000 || total != 3000 {
		t.Fatalf("FreeSpace() = (%d, %d), want (2000, 3000)", hint, total)
	}
}
