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

var readlinkCmd = &cobra.Command{
	Use:   "readlink IMAGE PATH",
	Short: "Print the target of a symlink entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "readlink")
		}
		defer iio.Close()

		entry, err := iio.ResolvePath(args[1], flagLevel)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", args[1])
		}
		if entry.Type != lfs2.EntryTypeSymlink {
			return errors.Errorf("%s is not a symlink", args[1])
		}

		target, ok := iio.ReadSymlinkTarget(entry.StartCluster)
		if !ok {
			return errors.Errorf("%s has no symlink target", args[1])
		}

		log.Printf("%s", target)

		return nil
	},
}
