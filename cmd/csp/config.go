// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/open2b/csp"
)

// projectConfig is the shape of a .csprc.yaml file, the project
// defaults read by the translate and watch commands.
type projectConfig struct {
	// EnableLine mirrors csp.Config.EnableLine.
	EnableLine bool `yaml:"enable_line"`
	// Sink selects the emission target: "co_yield", "callback:<name>" or
	// "append:<name>".
	Sink string `yaml:"sink"`
	// Include lists doublestar glob patterns of templates to translate
	// when no paths are given on the command line.
	Include []string `yaml:"include"`
	// LogLevel is a zerolog level name: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

const defaultConfigPath = ".csprc.yaml"

func defaultProjectConfig() projectConfig {
	return projectConfig{
		EnableLine: true,
		Sink:       "co_yield",
		Include:    []string{"**/*.csp"},
		LogLevel:   "info",
	}
}

// loadProjectConfig reads path from fsys, falling back to defaults when
// the file does not exist.
func loadProjectConfig(fsys afero.Fs, path string) (projectConfig, error) {
	cfg := defaultProjectConfig()
	f, err := fsys.Open(path)
	if err != nil {
		if afero.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// sinkConfig parses the "sink" field of a projectConfig into a csp.Sink.
func (c projectConfig) sinkConfig() (csp.Sink, error) {
	switch {
	case c.Sink == "" || c.Sink == "co_yield":
		return csp.Sink{Kind: csp.SinkCoYield}, nil
	case len(c.Sink) > len("callback:") && c.Sink[:len("callback:")] == "callback:":
		return csp.Sink{Kind: csp.SinkCallback, Name: c.Sink[len("callback:"):]}, nil
	case len(c.Sink) > len("append:") && c.Sink[:len("append:")] == "append:":
		return csp.Sink{Kind: csp.SinkAppend, Name: c.Sink[len("append:"):]}, nil
	default:
		return csp.Sink{}, fmt.Errorf("invalid sink %q: want \"co_yield\", \"callback:<name>\" or \"append:<name>\"", c.Sink)
	}
}
