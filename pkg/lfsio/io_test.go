package lfsio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vorteil/levelfs/pkg/lfs2"
)

func TestMountRejectsForeignVolume(t *testing.T) {
	buf := make([]byte, lfs2.SuperblockSize)
	buf[0], buf[1], buf[2], buf[3] = 0xEF, 0xBE, 0xAD, 0xDE

	_, err := Mount(bytes.NewReader(buf), 0)
	assert.Error(t, err, "mount should reject a header with foreign magic")
}

func TestMountAcceptsValidV2(t *testing.T) {
	b := newImageBuilder(4096)
	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err, "mount should accept a well-formed v2 header")
	assert.Equal(t, uint64(4096), iio.Superblock().TotalClusters)
	assert.Equal(t, "fixture-volume", iio.Superblock().VolumeName())
}

func TestReadFileSingleCluster(t *testing.T) {
	b := newImageBuilder(4096)
	b.setCluster(200, bytes.Repeat([]byte{0x41}, lfs2.ClusterSize))
	b.link(200, lfs2.SentinelEnd)
	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err)

	got := iio.ReadFile(200, 10)
	assert.Equal(t, bytes.Repeat([]byte{0x41}, 10), got)
}

func TestReadFileTwoClusterTruncatedBySize(t *testing.T) {
	b := newImageBuilder(4096)
	b.setCluster(200, bytes.Repeat([]byte{0x41}, lfs2.ClusterSize))
	b.setCluster(201, bytes.Repeat([]byte{0x42}, lfs2.ClusterSize))
	b.link(200, 201)
	b.link(201, lfs2.SentinelEnd)
	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err)

	got := iio.ReadFile(200, 4100)
	assert.Len(t, got, 4100)
	assert.Equal(t, bytes.Repeat([]byte{0x41}, lfs2.ClusterSize), got[:lfs2.ClusterSize])
	assert.Equal(t, bytes.Repeat([]byte{0x42}, 4), got[lfs2.ClusterSize:])
}

func TestLeveledDirectoryNavigation(t *testing.T) {
	b := newImageBuilder(4096)

	rootVersions := make([]byte, lfs2.ClusterSize)
	putVersionEntry(rootVersions, 0, "master", 300, 1, 0, true)
	b.setCluster(100, rootVersions)
	b.link(100, lfs2.SentinelEnd)

	dirContent := make([]byte, lfs2.ClusterSize)
	putDirEntry(dirContent, 0, "docs", lfs2.EntryTypeLeveledDir, 400, 0)
	b.setCluster(300, dirContent)
	b.link(300, lfs2.SentinelEnd)

	docsVersions := make([]byte, lfs2.ClusterSize)
	putVersionEntry(docsVersions, 0, "master", 500, 2, 1, true)
	putVersionEntry(docsVersions, lfs2.VersionEntrySize, "draft", 600, 3, 1, true)
	b.setCluster(400, docsVersions)
	b.link(400, lfs2.SentinelEnd)

	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err)

	versions := iio.ListVersions(400)
	assert.Len(t, versions, 2)
	assert.Equal(t, "master", versions[0].Name)
	assert.Equal(t, uint64(500), versions[0].ContentCluster)
	assert.Equal(t, "draft", versions[1].Name)
	assert.Equal(t, uint64(600), versions[1].ContentCluster)

	entry, err := iio.ResolvePath("/docs", "")
	assert.NoError(t, err)
	assert.Equal(t, lfs2.EntryTypeLeveledDir, entry.Type)
	assert.Equal(t, uint64(400), entry.StartCluster)
}

func TestCycleDefense(t *testing.T) {
	b := newImageBuilder(4096)
	b.setCluster(200, make([]byte, lfs2.ClusterSize))
	b.link(200, 200)
	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err)

	chain, err := Chain(iio.resolver, 200)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(chain), lfs2.MaxChainLength)
	assert.Equal(t, lfs2.MaxChainLength, len(chain))
}

func TestResolveOutOfRangeClusterIsSyntheticFree(t *testing.T) {
	b := newImageBuilder(4096)
	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err)

	lab, err := iio.resolver.Resolve(0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), lab.NextCluster)

	lab, err = iio.resolver.Resolve(iio.sb.TotalClusters)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), lab.NextCluster)
}

func TestListLevelsFiltersToLive(t *testing.T) {
	b := newImageBuilder(4096)

	registry := make([]byte, lfs2.ClusterSize)
	putLevelDescriptor(registry, 0, "root", 1, 0, 100, lfs2.LevelFlagLive)
	putLevelDescriptor(registry, lfs2.LevelDescriptorSize, "stale", 2, 1, 200, 0)
	b.setCluster(50, registry)
	b.link(50, lfs2.SentinelEnd)

	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err)

	levels := iio.ListLevels()
	assert.Len(t, levels, 1)
	assert.Equal(t, "root", levels[0].Name)

	_, ok := iio.FindLevel(2)
	assert.False(t, ok, "a descriptor without the live flag must not be findable")

	d, ok := iio.FindLevel(1)
	assert.True(t, ok)
	assert.Equal(t, uint64(100), d.RootContentCluster)
}

func TestReadSymlinkTarget(t *testing.T) {
	b := newImageBuilder(4096)
	payload := make([]byte, lfs2.ClusterSize)
	copy(payload, "../shared/lib.so")
	b.setCluster(700, payload)
	b.link(700, lfs2.SentinelEnd)
	image := b.build(100, 50)

	iio, err := Mount(bytes.NewReader(image), 0)
	assert.NoError(t, err)

	target, ok := iio.ReadSymlinkTarget(700)
	assert.True(t, ok)
	assert.Equal(t, "../shared/lib.so", target)

	_, ok = iio.ReadSymlinkTarget(0)
	assert.False(t, ok, "cluster 0 must never resolve to a symlink target")
}
