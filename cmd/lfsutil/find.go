package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"path"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vorteil/levelfs/pkg/lfs2"
	"github.com/vorteil/levelfs/pkg/lfsio"
)

var findCmd = &cobra.Command{
	Use:   "find IMAGE PATTERN",
	Short: "Find entries under the root whose name matches a glob pattern",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "find")
		}
		defer iio.Close()

		g, err := glob.Compile(args[1])
		if err != nil {
			return errors.Wrap(err, "compiling pattern")
		}

		rootCluster, err := resolveDirCluster(iio, "/")
		if err != nil {
			return errors.Wrap(err, "resolving root")
		}

		return findWalk(iio, g, rootCluster, "/")
	},
}

func findWalk(iio *lfsio.IO, g glob.Glob, dirCluster uint64, dirPath string) error {
	for _, e := range iio.ListDir(dirCluster) {
		p := path.Join(dirPath, e.Name)
		if g.Match(e.Name) || g.Match(p) {
			log.Printf("%s", p)
		}

		if e.Type != lfs2.EntryTypeLeveledDir {
			continue
		}

		childCluster, err := resolveDirCluster(iio, p)
		if err != nil {
			log.Warnf("%s: %v", p, err)
			continue
		}

		if err := findWalk(iio, g, childCluster, p); err != nil {
			return err
		}
	}

	return nil
}
