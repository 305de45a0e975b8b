package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vorteil/levelfs/pkg/lfs2"
	"github.com/vorteil/levelfs/pkg/lfsio"
)

var versionsCmd = &cobra.Command{
	Use:   "versions IMAGE [PATH]",
	Short: "List the levels attached to a directory's version table",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "versions")
		}
		defer iio.Close()

		cluster := iio.Superblock().RootDirCluster
		if len(args) > 1 && args[1] != "/" && args[1] != "" {
			entry, err := iio.ResolvePath(args[1], flagLevel)
			if err != nil && err != lfsio.ErrOpaqueMount {
				return errors.Wrapf(err, "resolving %s", args[1])
			}
			if entry.Type != lfs2.EntryTypeLeveledDir {
				return errors.Errorf("%s is not a leveled directory", args[1])
			}
			cluster = entry.StartCluster
		}

		versions := iio.ListVersions(cluster)

		var rows [][]string
		for _, v := range versions {
			rows = append(rows, []string{
				v.Name,
				PrintableSize(v.LevelID).String(),
				PrintableSize(v.ParentLevelID).String(),
				PrintableSize(v.ContentCluster).String(),
			})
		}
		PlainTable([]string{"NAME", "LEVEL ID", "PARENT", "CONTENT CLUSTER"}, rows)

		return nil
	},
}
