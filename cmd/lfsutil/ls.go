package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vorteil/levelfs/pkg/lfs2"
	"github.com/vorteil/levelfs/pkg/lfsio"
)

var lsCmd = &cobra.Command{
	Use:   "ls IMAGE [PATH]",
	Short: "List the children of a directory, at the selected level",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "ls")
		}
		defer iio.Close()

		path := "/"
		if len(args) > 1 {
			path = args[1]
		}

		dirCluster, err := resolveDirCluster(iio, path)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", path)
		}

		var rows [][]string
		for _, e := range iio.ListDir(dirCluster) {
			rows = append(rows, []string{
				entryTypeString(e.Type),
				e.Name,
				PrintableSize(e.Size).String(),
				PrintableSize(e.StartCluster).String(),
			})
		}
		PlainTable([]string{"TYPE", "NAME", "SIZE", "CLUSTER"}, rows)

		return nil
	},
}

// resolveDirCluster resolves path to the content cluster of the directory
// it names, handling the root path specially since ResolvePath returns a
// DirEntry rather than a bare cluster number.
func resolveDirCluster(iio *lfsio.IO, path string) (uint64, error) {
	entry, err := iio.ResolvePath(path, flagLevel)
	if err != nil {
		if err == lfsio.ErrOpaqueMount {
			return 0, errors.New("path resolves to an opaque LEVEL_MOUNT entry")
		}
		return 0, err
	}

	switch entry.Type {
	case lfs2.EntryTypeLeveledDir:
		if filepath.Clean("/"+path) == "/" {
			return entry.StartCluster, nil
		}
		versions := iio.ListVersions(entry.StartCluster)
		for _, v := range versions {
			if v.Name == flagLevel || (flagLevel == "" && v.Name == "master") {
				return v.ContentCluster, nil
			}
		}
		if flagLevel == "" && len(versions) > 0 {
			return versions[0].ContentCluster, nil
		}
		return 0, errors.Errorf("%s has no level %q", path, flagLevel)
	default:
		return 0, errors.Errorf("%s is not a directory", path)
	}
}

func entryTypeString(t uint8) string {
	switch t {
	case lfs2.EntryTypeFree:
		return "free"
	case lfs2.EntryTypeFile:
		return "file"
	case lfs2.EntryTypeLeveledDir:
		return "dir"
	case lfs2.EntryTypeSymlink:
		return "symlink"
	case lfs2.EntryTypeHardlink:
		return "hardlink"
	case lfs2.EntryTypeLevelMount:
		return "level-mount"
	default:
		return "unknown"
	}
}
