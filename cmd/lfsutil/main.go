// Command lfsutil is a read-only explorer for LevelFS v2 volumes. It is
// a thin caller of pkg/lfsio's Filesystem Facade, the external UI
// collaborator spec.md §1 describes without specifying.
package main

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"os"

	"github.com/google/uuid"
	colorable "github.com/mattn/go-colorable"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vorteil/levelfs/pkg/elog"
)

var log elog.View

var (
	flagVerbose bool
	flagDebug   bool
	flagLevel   string
)

func main() {
	commandInit()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lfsutil",
	Short: "Explore LevelFS v2 volumes",
	Long: `lfsutil is a read-only explorer for LevelFS v2 volumes: it mounts a
volume, walks its HLAT allocation chains, and lists or reads whichever
level of a leveled directory you select.`,
}

func commandInit() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().Var(numbersFlag{}, "numbers", "size format: short, dec, or hex")
	rootCmd.PersistentFlags().StringVarP(&flagLevel, "level", "l", "", "level name to select at each leveled directory (defaults to master, then the first active version)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger := &elog.CLI{}
		logrus.SetFormatter(logger)
		logrus.SetLevel(logrus.TraceLevel)
		logrus.SetOutput(colorable.NewColorableStdout())

		if flagDebug {
			logger.IsDebug = true
			logger.IsVerbose = true
		} else if flagVerbose {
			logger.IsVerbose = true
		}

		log = logger

		// Tag every invocation with a run ID, the same correlation-id
		// pattern the teacher's provisioners use to name one-off
		// artifacts, so debug logs from concurrent runs can be told
		// apart.
		logger.Debugf("run %s", uuid.New().String())

		if !cmd.Flags().Changed("numbers") {
			if v := viper.GetString("numbers"); v != "" {
				return numbersFlag{}.Set(v)
			}
		}

		return nil
	}

	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(findLevelCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(readlinkCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(findCmd)

	initConfig()
}

// initConfig reads optional defaults from ~/.lfsutilrc, mirroring the
// teacher's vorteild config pattern in cmd/vorteil/main.go: CLI flags
// always win, the file only supplies fallbacks (currently just the
// default --numbers mode).
func initConfig() {
	viper.SetConfigName(".lfsutilrc")
	viper.SetConfigType("yaml")

	home, err := homedir.Dir()
	if err == nil {
		viper.AddConfigPath(home)
	}

	// Missing/unreadable config is not an error: there is nothing to
	// fall back to, so every flag keeps its zero-value default.
	_ = viper.ReadInConfig()
}
