// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

func newRootCommand() *cobra.Command {
	var toolVersion string
	var verbose bool

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	fsys := afero.NewOsFs()

	root := &cobra.Command{
		Use:           "csp",
		Short:         "csp translates C++ host templates into plain C++ source",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if toolVersion != "" && !semver.IsValid(toolVersion) {
				return fmt.Errorf("--tool-version %q is not a valid semantic version", toolVersion)
			}
			if verbose {
				log = log.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&toolVersion, "tool-version", "", "tool version; must be a valid semantic version (it is not checked against templates)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newTranslateCommand(&log, fsys))
	root.AddCommand(newWatchCommand(&log, fsys))
	root.AddCommand(newDocsCommand(&log))

	return root
}
