// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package chain

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the package-level counters/gauges exposed by a running
// Blockchain, following the same "plain package-scoped collectors" style
// erigon-lib/kv uses for its Tx/Cursor instrumentation. A fresh Metrics is
// registered into its own Registry per Blockchain instance rather than
// prometheus.DefaultRegisterer, so multiple Blockchains (e.g. one per
// test) never collide on collector registration.
type Metrics struct {
	Registry *prometheus.Registry

	ActionsDispatched    prometheus.Counter
	InlineEnqueued       prometheus.Counter
	NotificationsEnqueued prometheus.Counter
	RowsStored           prometheus.Counter
	RowsRemoved          prometheus.Counter
	IteratorHandles      prometheus.Counter
}

// NewMetrics constructs and registers a fresh Metrics collector set.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		ActionsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vert_actions_dispatched_total",
			Help: "Total number of actions (top-level, inline, and notification) dispatched.",
		}),
		InlineEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vert_inline_actions_enqueued_total",
			Help: "Total number of inline actions enqueued via send_inline.",
		}),
		NotificationsEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vert_notifications_enqueued_total",
			Help: "Total number of notifications enqueued via require_recipient.",
		}),
		RowsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vert_rows_stored_total",
			Help: "Total number of multi-index rows inserted.",
		}),
		RowsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vert_rows_removed_total",
			Help: "Total number of multi-index rows removed.",
		}),
		IteratorHandles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vert_iterator_handles_allocated_total",
			Help: "Total number of iterator handles allocated across all iterator caches.",
		}),
	}
	reg.MustRegister(m.ActionsDispatched, m.InlineEnqueued, m.NotificationsEnqueued,
		m.RowsStored, m.RowsRemoved, m.IteratorHandles)
	return m
}
