// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// watchMetrics tracks the outcome of every translation triggered by the
// watch command, replacing the header-counter struct the original serve
// command kept in memory with real, scrapeable time series.
type watchMetrics struct {
	translations *prometheus.CounterVec
	duration     prometheus.Histogram
}

func newWatchMetrics(reg prometheus.Registerer) *watchMetrics {
	m := &watchMetrics{
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "csp",
			Name:      "translations_total",
			Help:      "Templates translated by the watch command, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "csp",
			Name:      "translation_duration_seconds",
			Help:      "Time spent translating one template.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.translations, m.duration)
	return m
}

func (m *watchMetrics) observe(outcome string, seconds float64) {
	m.translations.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
}
