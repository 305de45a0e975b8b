package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vorteil/levelfs/pkg/lfsio"
)

var levelsCmd = &cobra.Command{
	Use:   "levels IMAGE",
	Short: "Dump the global level registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "levels")
		}
		defer iio.Close()

		var rows [][]string
		for _, d := range iio.ListLevels() {
			rows = append(rows, []string{
				d.Name,
				PrintableSize(d.LevelID).String(),
				PrintableSize(d.ParentLevelID).String(),
				PrintableSize(d.RootContentCluster).String(),
				PrintableSize(d.TotalSize).String(),
			})
		}
		PlainTable([]string{"NAME", "LEVEL ID", "PARENT", "ROOT CLUSTER", "SIZE"}, rows)

		return nil
	},
}

var findLevelCmd = &cobra.Command{
	Use:   "find-level IMAGE LEVEL_ID",
	Short: "Look up a single level descriptor by ID",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "find-level")
		}
		defer iio.Close()

		id, err := parseUint(args[1])
		if err != nil {
			return errors.Wrap(err, "parsing LEVEL_ID")
		}

		d, ok := iio.FindLevel(id)
		if !ok {
			return errors.Errorf("no live level with id %d", id)
		}

		log.Printf("Name:           \t%s", d.Name)
		log.Printf("Level ID:       \t%s", PrintableSize(d.LevelID))
		log.Printf("Parent level ID:\t%s", PrintableSize(d.ParentLevelID))
		log.Printf("Root cluster:   \t%s", PrintableSize(d.RootContentCluster))
		log.Printf("Child count:    \t%s", PrintableSize(d.ChildCount))
		log.Printf("Total size:     \t%s", PrintableSize(d.TotalSize))

		return nil
	},
}
