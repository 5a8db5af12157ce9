// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

//go:embed SYNTAX.md
var syntaxDoc []byte

func newDocsCommand(log *zerolog.Logger) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "serve the template syntax reference as HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().Str("addr", addr).Msg("serving syntax reference")
			return http.ListenAndServe(addr, http.HandlerFunc(serveSyntaxDoc))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":6060", "address to serve on")
	return cmd
}

func serveSyntaxDoc(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := goldmark.Convert(syntaxDoc, &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
