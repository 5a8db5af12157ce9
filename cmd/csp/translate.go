// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/open2b/csp"
)

func newTranslateCommand(log *zerolog.Logger, fsys afero.Fs) *cobra.Command {
	var outExt string
	cmd := &cobra.Command{
		Use:   "translate [patterns...]",
		Short: "translate .csp templates into host-language source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(fsys, defaultConfigPath)
			if err != nil {
				return err
			}
			patterns := args
			if len(patterns) == 0 {
				patterns = cfg.Include
			}
			sink, err := cfg.sinkConfig()
			if err != nil {
				return err
			}
			runLog := log.With().Str("run_id", uuid.New().String()).Logger()
			return translateAll(runLog, fsys, patterns, outExt, csp.Config{
				EnableLine: cfg.EnableLine,
				Sink:       sink,
			})
		},
	}
	cmd.Flags().StringVar(&outExt, "ext", ".cpp", "extension for generated files")
	return cmd
}

// translateAll translates every file matching patterns, collecting every
// per-file failure instead of stopping at the first one.
func translateAll(log zerolog.Logger, fsys afero.Fs, patterns []string, outExt string, cfg csp.Config) error {
	var paths []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(afero.NewIOFS(fsys), pattern)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	var result *multierror.Error
	for _, path := range paths {
		if err := translateOne(fsys, path, outExt, cfg); err != nil {
			log.Error().Err(err).Str("path", path).Msg("translation failed")
			result = multierror.Append(result, err)
			continue
		}
		log.Info().Str("path", path).Msg("translated")
	}
	return result.ErrorOrNil()
}

func translateOne(fsys afero.Fs, path, outExt string, cfg csp.Config) error {
	input, err := afero.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	out, err := csp.Translate(input, path, cfg)
	if err != nil {
		return err
	}
	dest := strings.TrimSuffix(path, filepath.Ext(path)) + outExt
	return afero.WriteFile(fsys, dest, []byte(out), 0o644)
}
