package lfsio

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vorteil/levelfs/pkg/lfs2"
)

// IO is the Filesystem Facade: it composes the Block Device, HLAT
// Resolver, Chain Walker, and Record Decoders into the seven operations
// spec.md §4.6 exposes to callers. It holds no mutable state beyond the
// device handle, the parsed superblock, and the resolver's small
// per-call-site LIT/LAB memo.
type IO struct {
	dev      *BlockDevice
	resolver *Resolver
	sb       *lfs2.Superblock
	closer   io.Closer
}

// Open opens the file at path and mounts it as a LevelFS v2 volume. This
// is the common entry point for a CLI or any other caller that has a
// plain file on disk; callers with an already-open byte source should
// use Mount directly.
func Open(path string) (*IO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	iio, err := Mount(f, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	iio.closer = f
	return iio, nil
}

// Mount validates the volume header at baseOffset within src and, on
// success, returns an IO ready to serve the read-only operations. It
// fails if the header is short, the magic/version/cluster size don't
// match, or the
// underlying read fails — the only fatal error kind at this layer, per
// spec.md §7.
func Mount(src io.ReaderAt, baseOffset int64) (*IO, error) {
	dev := NewBlockDevice(src, baseOffset)

	buf, err := dev.ReadSuperblockBytes()
	if err != nil {
		return nil, err
	}

	sb, err := lfs2.ParseSuperblock(buf)
	if err != nil {
		return nil, err
	}

	return &IO{
		dev:      dev,
		resolver: NewResolver(dev, sb),
		sb:       sb,
	}, nil
}

// Close closes the underlying byte source, if Open (rather than Mount)
// was used to obtain it.
func (iio *IO) Close() error {
	if iio.closer == nil {
		return nil
	}
	return iio.closer.Close()
}

// Superblock returns the parsed volume header, for read-only access to
// geometry and free-space accounting per spec.md §6.
func (iio *IO) Superblock() *lfs2.Superblock {
	return iio.sb
}

// ListVersions returns the ordered VersionEntry records of the version
// table starting at cluster, per spec.md §4.6. It never fails: a bad
// cluster number yields an empty list.
func (iio *IO) ListVersions(cluster uint64) []*lfs2.VersionEntry {
	if out := ReadVersionEntries(iio.resolver, cluster); out != nil {
		return out
	}
	return []*lfs2.VersionEntry{}
}

// ListDir returns the ordered DirEntry records of the directory content
// chain starting at contentCluster.
func (iio *IO) ListDir(contentCluster uint64) []*lfs2.DirEntry {
	if out := ReadDirEntries(iio.resolver, contentCluster); out != nil {
		return out
	}
	return []*lfs2.DirEntry{}
}

// ListLevels returns every live LevelDescriptor from the global level
// registry (rooted at the superblock's level_registry_cluster).
func (iio *IO) ListLevels() []*lfs2.LevelDescriptor {
	if out := ReadLevelDescriptors(iio.resolver, iio.sb.LevelRegistryCluster); out != nil {
		return out
	}
	return []*lfs2.LevelDescriptor{}
}

// FindLevel looks up a LevelDescriptor by level ID in the global
// registry. The second return value is false if no live descriptor
// carries that ID — spec.md's NotFound is a value, not an error.
func (iio *IO) FindLevel(levelID uint64) (*lfs2.LevelDescriptor, bool) {
	for _, d := range iio.ListLevels() {
		if d.LevelID == levelID {
			return d, true
		}
	}
	return nil, false
}

// ReadFile returns up to size bytes from the cluster chain starting at
// start, concatenated in chain order and truncated to size even if the
// chain extends further (spec.md §4.6 read_file ordering).
func (iio *IO) ReadFile(start uint64, size uint64) []byte {
	out := make([]byte, 0, size)
	it := NewChainIterator(iio.resolver, start)

	for uint64(len(out)) < size {
		cluster, ok, err := it.Next()
		if err != nil || !ok {
			break
		}

		buf, err := iio.dev.ReadCluster(cluster)
		if err != nil {
			break
		}

		remaining := size - uint64(len(out))
		if remaining < uint64(len(buf)) {
			buf = buf[:remaining]
		}
		out = append(out, buf...)
	}

	return out
}

// ReadSymlinkTarget reads the UTF-8 target string stored in the symlink
// payload chain starting at cluster, up to the first NUL. It returns
// ok == false if cluster == 0 (spec.md §4.6).
func (iio *IO) ReadSymlinkTarget(cluster uint64) (target string, ok bool) {
	if cluster == 0 {
		return "", false
	}

	clusters, err := Chain(iio.resolver, cluster)
	if err != nil && len(clusters) == 0 {
		return "", false
	}

	var buf []byte
	for _, c := range clusters {
		data, err := iio.dev.ReadCluster(c)
		if err != nil {
			break
		}
		buf = append(buf, data...)
	}

	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), true
		}
	}

	return string(buf), true
}

// ErrOpaqueMount is returned by ResolvePath when path traversal reaches a
// LEVEL_MOUNT entry. Per spec.md §9's open question, its content
// resolution semantics are undefined in this core; ResolvePath surfaces
// it as an opaque node rather than guessing.
var ErrOpaqueMount = fmt.Errorf("%w: LEVEL_MOUNT entries are opaque", lfs2.ErrNotFound)

// ResolvePath walks a slash-separated path from the root version table,
// selecting levelName at every LEVELED_DIR boundary it crosses (or, if
// levelName is empty, the version named "master", falling back to the
// first active version), and returns the DirEntry
// for the final path component. This composes ListVersions/ListDir; it
// is additive convenience on top of the cluster-addressed core
// operations, grounded in vdecompiler.ResolvePathToInodeNo.
func (iio *IO) ResolvePath(path string, levelName string) (*lfs2.DirEntry, error) {
	path = filepath.ToSlash(filepath.Join("/", path))
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 1 && parts[0] == "" {
		parts = nil
	}

	versions := iio.ListVersions(iio.sb.RootDirCluster)
	version, ok := selectVersion(versions, levelName)
	if !ok {
		return nil, lfs2.ErrNotFound
	}

	dirCluster := version.ContentCluster
	var current *lfs2.DirEntry

	for _, name := range parts {
		entries := iio.ListDir(dirCluster)
		var next *lfs2.DirEntry
		for _, e := range entries {
			if e.Name == name {
				next = e
				break
			}
		}
		if next == nil {
			return nil, lfs2.ErrNotFound
		}

		current = next

		switch next.Type {
		case lfs2.EntryTypeLeveledDir:
			sub := iio.ListVersions(next.StartCluster)
			v, ok := selectVersion(sub, levelName)
			if !ok {
				return nil, lfs2.ErrNotFound
			}
			dirCluster = v.ContentCluster
		case lfs2.EntryTypeLevelMount:
			return next, ErrOpaqueMount
		default:
			dirCluster = next.StartCluster
		}
	}

	if current == nil {
		// The root itself was requested: synthesize a DirEntry describing
		// the selected level's root directory.
		return &lfs2.DirEntry{
			Name:         version.Name,
			Type:         lfs2.EntryTypeLeveledDir,
			StartCluster: version.ContentCluster,
		}, nil
	}

	return current, nil
}

func selectVersion(versions []*lfs2.VersionEntry, name string) (*lfs2.VersionEntry, bool) {
	if name != "" {
		for _, v := range versions {
			if v.Name == name {
				return v, true
			}
		}
		return nil, false
	}

	for _, v := range versions {
		if v.Name == "master" {
			return v, true
		}
	}

	if len(versions) > 0 {
		return versions[0], true
	}

	return nil, false
}
