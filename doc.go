// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csp compiles a template that mixes host-language source with
// template text and placeholders into plain host-language source.
//
// The package is a pure function of bytes in, bytes out: it does not
// touch the file system, spawn a host compiler, or run generated code.
// Reading templates from disk, watching them for changes, and driving a
// host toolchain are the job of the csp command in cmd/csp.
//
//	src, err := csp.Translate(input, "index.csp", csp.Config{
//		EnableLine: true,
//		Sink:       csp.Sink{Kind: csp.SinkCoYield},
//	})
package csp
