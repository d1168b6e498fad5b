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

import "github.com/aaroncox/vert/chain"

// Insert adds a new row with a fresh primary key. payer must not be the
// empty Name (spec.md §7: "payer==0 on insert" is a host precondition
// failure) and pk must not already exist (unique primary keys, spec.md
// §4.3).
func (t *Table) Insert(pk uint64, payer chain.Name, value []byte) (*Row, error) {
	if payer == chain.Empty {
		return nil, ErrZeroPayer
	}
	if _, exists := t.rowByPK[pk]; exists {
		return nil, ErrDuplicateKey
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	r := &Row{TableID: t.ID, PrimaryKey: pk, Payer: payer, Value: cp}
	t.primary.ReplaceOrInsert(r)
	t.rowByPK[pk] = r
	return r, nil
}

// Update overwrites an existing row's payer and value in place, preserving
// its identity (the same *Row pointer survives db_update_i64, so iterator
// handles referencing it by identity stay valid).
func (t *Table) Update(pk uint64, payer chain.Name, value []byte) (*Row, error) {
	if payer == chain.Empty {
		return nil, ErrZeroPayer
	}
	r, ok := t.rowByPK[pk]
	if !ok {
		return nil, ErrRowNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	r.Payer = payer
	r.Value = cp
	return r, nil
}

// Remove deletes a row by primary key and returns the removed row so the
// caller (vm.HostEnv) can clean up any secondary-index entries that
// referenced it and invalidate iterator-cache handles.
func (t *Table) Remove(pk uint64) (*Row, error) {
	r, ok := t.rowByPK[pk]
	if !ok {
		return nil, ErrRowNotFound
	}
	t.primary.Delete(r)
	delete(t.rowByPK, pk)
	return r, nil
}

// Find returns the row with the exact given primary key.
func (t *Table) Find(pk uint64) (*Row, bool) {
	r, ok := t.rowByPK[pk]
	return r, ok
}

// LowerBound returns the row with the least primary key >= pk.
func (t *Table) LowerBound(pk uint64) (*Row, bool) {
	var found *Row
	t.primary.AscendGreaterOrEqual(&Row{PrimaryKey: pk}, func(r *Row) bool {
		found = r
		return false
	})
	return found, found != nil
}

// UpperBound returns the row with the least primary key > pk.
func (t *Table) UpperBound(pk uint64) (*Row, bool) {
	var found *Row
	t.primary.AscendGreaterOrEqual(&Row{PrimaryKey: pk + 1}, func(r *Row) bool {
		found = r
		return false
	})
	if pk == ^uint64(0) {
		return nil, false
	}
	return found, found != nil
}

// Next returns the row with the least primary key strictly greater than
// the given row's primary key.
func (t *Table) Next(pk uint64) (*Row, bool) {
	return t.UpperBound(pk)
}

// Prev returns the row with the greatest primary key strictly less than
// the given primary key.
func (t *Table) Prev(pk uint64) (*Row, bool) {
	var found *Row
	t.primary.DescendLessOrEqual(&Row{PrimaryKey: pk - 1}, func(r *Row) bool {
		found = r
		return false
	})
	if pk == 0 {
		return nil, false
	}
	return found, found != nil
}

// Min returns the row with the least primary key, or ok=false if empty.
func (t *Table) Min() (*Row, bool) {
	r, ok := t.primary.Min()
	return r, ok
}

// Max returns the row with the greatest primary key ("penultimate" in
// spec.md §4.3's terminology: the row previous(end_iterator) resolves to),
// or ok=false if empty.
func (t *Table) Max() (*Row, bool) {
	r, ok := t.primary.Max()
	return r, ok
}
