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

package store

import (
	"sync"

	"github.com/aaroncox/vert/chain"
)

type tableKey struct {
	Code  chain.Name
	Scope chain.Name
	Table chain.Name
}

// Store is the process-global (but explicitly owned, never package-level)
// collection of every multi-index Table a contract has created, keyed by
// (code, scope, table). It is the direct analogue of erigon-lib/kv's
// RwDB, generalized from "one database of many named buckets" down to
// "one in-process store of many named tables" — table lookup here plays
// the role kv's bucket-name lookup plays there.
type Store struct {
	mu        sync.Mutex
	tables    map[tableKey]*Table
	tablesByID map[TableID]*Table
	nextID    TableID
	metrics   *chain.Metrics
}

// NewStore constructs an empty Store. metrics may be nil; the Store keeps
// it but updates no counter itself (the row and iterator counters are
// incremented by vm.HostEnv through chain.Blockchain.Metrics).
func NewStore(metrics *chain.Metrics) *Store {
	return &Store{
		tables:     make(map[tableKey]*Table),
		tablesByID: make(map[TableID]*Table),
		metrics:    metrics,
	}
}

// GetOrCreateTable returns the Table for (code, scope, tableName),
// creating it (with a freshly allocated TableID) if it does not yet
// exist. Table creation itself never fails and never bills RAM; spec.md
// treats "the table doesn't exist" purely as an iterator-cache concept
// (cache_table allocates the end-iterator sentinel lazily), not as a
// precondition failure at the Store level.
func (s *Store) GetOrCreateTable(code, scope, tableName chain.Name) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tableKey{Code: code, Scope: scope, Table: tableName}
	if t, ok := s.tables[key]; ok {
		return t
	}
	s.nextID++
	t := newTable(s.nextID, code, scope, tableName)
	s.tables[key] = t
	s.tablesByID[t.ID] = t
	return t
}

// FindTable looks up a Table without creating it.
func (s *Store) FindTable(code, scope, tableName chain.Name) (*Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[tableKey{Code: code, Scope: scope, Table: tableName}]
	return t, ok
}

// TableByID looks up a Table by its allocated TableID, used by
// IteratorCache to resolve a cached handle back to its owning table.
func (s *Store) TableByID(id TableID) (*Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tablesByID[id]
	return t, ok
}

// Reset drops every table, returning the Store to its just-constructed
// state. Used by the Supplemented-feature Blockchain.Reset() composition
// (dispatch.Chain) to clear Store state alongside chain.Blockchain state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[tableKey]*Table)
	s.tablesByID = make(map[TableID]*Table)
	s.nextID = 0
}

// DebugDump writes a human-readable dump of every table and row to w,
// backing the "$vertPrintStorage" console-token convention (spec.md §6):
// the dump itself is never appended to the console buffer, only written
// directly to the given writer (typically stderr).
func (s *Store) DebugDump(w debugWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.tables {
		w.Write([]byte(
			"table " + key.Code.String() + "/" + key.Scope.String() + "/" + key.Table.String() + "\n",
		))
		t.primary.Ascend(func(r *Row) bool {
			w.Write([]byte("  pk=" + rowPKString(r.PrimaryKey) + " payer=" + r.Payer.String() + "\n"))
			return true
		})
	}
}

// debugWriter is the minimal io.Writer-shaped interface DebugDump needs,
// declared locally so this package does not need to import io just for
// this one diagnostic helper's signature.
type debugWriter interface {
	Write(p []byte) (n int, err error)
}

func rowPKString(pk uint64) string {
	return chain.Name(pk).String()
}
