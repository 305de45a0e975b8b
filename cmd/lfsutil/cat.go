package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vorteil/levelfs/pkg/lfs2"
	"github.com/vorteil/levelfs/pkg/lfsio"
)

var catCmd = &cobra.Command{
	Use:   "cat IMAGE PATH",
	Short: "Stream a file's contents to stdout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "cat")
		}
		defer iio.Close()

		entry, err := iio.ResolvePath(args[1], flagLevel)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", args[1])
		}
		if entry.Type != lfs2.EntryTypeFile {
			return errors.Errorf("%s is not a regular file", args[1])
		}

		progress := log.NewProgress(args[1], int64(entry.Size))
		defer progress.Finish(true)

		data := iio.ReadFile(entry.StartCluster, entry.Size)
		if _, err := progress.Write(data); err != nil {
			return errors.Wrap(err, "writing progress")
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return errors.Wrap(err, "writing stdout")
		}

		return nil
	},
}
