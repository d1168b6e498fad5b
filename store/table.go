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
	"github.com/google/btree"

	"github.com/aaroncox/vert/chain"
)

// TableID uniquely identifies a (code, scope, table) triple within a
// Store; it is what IteratorCache handles and secondary-index lookups key
// off internally.
type TableID uint64

const btreeDegree = 32

func rowLess(a, b *Row) bool {
	return a.PrimaryKey < b.PrimaryKey
}

// entryLess orders IndexEntry records by (Secondary, PrimaryKey). The
// spec's comparator formula also folds in TableID and an
// ignore_primary_key flag, but every Table here owns its own independent
// btree per index kind, so entries from other tables never appear in the
// same tree and TableID would be a constant within any one comparison —
// dropping it is a deliberate simplification (see DESIGN.md), not a
// behavior change. The ignore_primary_key flag is likewise unnecessary:
// lower_bound/upper_bound achieve the same effect with a pivot PrimaryKey
// of 0 or math.MaxUint64 respectively (see secondary.go).
func entryLess(a, b *IndexEntry) bool {
	if c := a.Secondary.Compare(b.Secondary); c != 0 {
		return c < 0
	}
	return a.PrimaryKey < b.PrimaryKey
}

// Table is one (code, scope, table) multi-index table: a primary index
// ordered by primary key, plus four secondary indices, one per
// SecondaryKind, each ordered by (secondary key, primary key).
type Table struct {
	ID    TableID
	Code  chain.Name
	Scope chain.Name
	Name  chain.Name

	primary   *btree.BTreeG[*Row]
	secondary [4]*btree.BTreeG[*IndexEntry]
	rowByPK   map[uint64]*Row
	entryByPK [4]map[uint64]*IndexEntry
}

func newTable(id TableID, code, scope, name chain.Name) *Table {
	t := &Table{
		ID:      id,
		Code:    code,
		Scope:   scope,
		Name:    name,
		primary: btree.NewG(btreeDegree, rowLess),
		rowByPK: make(map[uint64]*Row),
	}
	for i := range t.secondary {
		t.secondary[i] = btree.NewG(btreeDegree, entryLess)
		t.entryByPK[i] = make(map[uint64]*IndexEntry)
	}
	return t
}

func (t *Table) secondaryTree(kind SecondaryKind) *btree.BTreeG[*IndexEntry] {
	return t.secondary[kind]
}

// Len reports the number of rows currently in the primary index.
func (t *Table) Len() int {
	return t.primary.Len()
}
