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

var mountCmd = &cobra.Command{
	Use:   "mount IMAGE",
	Short: "Validate a volume header and print its geometry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		iio, err := lfsio.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "mount")
		}
		defer iio.Close()

		sb := iio.Superblock()
		hint, total := sb.FreeSpace()

		log.Printf("Volume name:       \t%s", sb.VolumeName())
		log.Printf("Total clusters:    \t%s", PrintableSize(sb.TotalClusters))
		log.Printf("Cluster size:      \t%s", PrintableSize(uint64(sb.ClusterSize)))
		log.Printf("LIT start cluster: \t%s", PrintableSize(sb.LITStartCluster))
		log.Printf("Level registry:    \t%s", PrintableSize(sb.LevelRegistryCluster))
		log.Printf("Root dir cluster:  \t%s", PrintableSize(sb.RootDirCluster))
		log.Printf("Total levels:      \t%s", PrintableSize(sb.TotalLevels))
		log.Printf("Root level ID:     \t%s", PrintableSize(sb.RootLevelID))
		log.Printf("Free clusters:     \t%s / %s (hint %s)", PrintableSize(total), PrintableSize(sb.TotalClusters), PrintableSize(hint))

		return nil
	},
}
