// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/open2b/csp"
)

func newWatchCommand(log *zerolog.Logger, fsys afero.Fs) *cobra.Command {
	var dir, outExt, metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "retranslate templates as they change on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(fsys, defaultConfigPath)
			if err != nil {
				return err
			}
			sink, err := cfg.sinkConfig()
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			metrics := newWatchMetrics(reg)
			if metricsAddr != "" {
				go serveMetrics(*log, metricsAddr, reg)
			}
			return watch(cmd.Context(), *log, dir, outExt, csp.Config{EnableLine: cfg.EnableLine, Sink: sink}, metrics)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to watch")
	cmd.Flags().StringVar(&outExt, "ext", ".cpp", "extension for generated files")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, empty to disable")
	return cmd
}

// watch is grounded on the original server's newTemplateFS: an
// fsnotify.Watcher recursively registered on dir, translating on every
// write to a .csp file until ctx is done.
func watch(ctx context.Context, log zerolog.Logger, dir, outExt string, cfg csp.Config, metrics *watchMetrics) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	osFs := afero.NewOsFs()
	log.Info().Str("dir", dir).Msg("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write || !strings.HasSuffix(event.Name, ".csp") {
				continue
			}
			start := time.Now()
			err := translateOne(osFs, event.Name, outExt, cfg)
			outcome := "ok"
			if err != nil {
				outcome = "error"
				log.Error().Err(err).Str("path", event.Name).Msg("translation failed")
			} else {
				log.Info().Str("path", event.Name).Msg("translated")
			}
			metrics.observe(outcome, time.Since(start).Seconds())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

func serveMetrics(log zerolog.Logger, addr string, reg *prometheus.Registry) {
	log.Info().Str("addr", addr).Msg("serving metrics")
	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}
