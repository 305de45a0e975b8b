package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"fmt"
	"path"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vorteil/levelfs/pkg/lfs2"
	"github.com/vorteil/levelfs/pkg/lfsio"
)

var treeCmd = &cobra.Command{
	Use:   "tree IMAGE [PATH]",
	Short: "Recursively list a directory tree at the selected level",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "tree")
		}
		defer iio.Close()

		root := "/"
		if len(args) > 1 {
			root = args[1]
		}

		dirCluster, err := resolveDirCluster(iio, root)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", root)
		}

		log.Printf("%s", root)
		return walkTree(iio, dirCluster, root, "")
	},
}

// walkTree prints entries the way the teacher's image explorer renders a
// directory tree: one line per entry, recursing into leveled directories
// by resolving their master (or selected) version.
func walkTree(iio *lfsio.IO, dirCluster uint64, dirPath string, prefix string) error {
	entries := iio.ListDir(dirCluster)

	for i, e := range entries {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(entries)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		log.Printf("%s%s%s", prefix, connector, e.Name)

		if e.Type != lfs2.EntryTypeLeveledDir {
			continue
		}

		childPath := path.Join(dirPath, e.Name)
		childCluster, err := resolveDirCluster(iio, childPath)
		if err != nil {
			log.Warnf("%s: %v", childPath, err)
			continue
		}

		if err := walkTree(iio, childCluster, childPath, childPrefix); err != nil {
			return fmt.Errorf("walking %s: %w", childPath, err)
		}
	}

	return nil
}
