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

// One generic secondary-index implementation backs all four kinds
// (idx64/idx128/idx256/idxDouble), as spec.md §9 prefers over four
// near-duplicate copies. vm.HostEnv's db_idx64_*/db_idx128_*/... methods
// are thin wrappers that build the right SecondaryKind of SecondaryKey and
// call through to these.
//
// EOSIO secondary indices allow duplicate secondary-key values across
// distinct rows (only the primary index is unique); ties are broken by
// primary key via entryLess, and FindExact/LowerBound/UpperBound below
// never need a runtime "ignore primary key" flag because the pivot's
// PrimaryKey field alone selects the right tie-break behavior.

// SecondaryStore adds a new secondary-index entry for the given primary
// key; pk must not already have an entry in this index kind.
func (t *Table) SecondaryStore(kind SecondaryKind, pk uint64, payer chain.Name, key SecondaryKey) (*IndexEntry, error) {
	if payer == chain.Empty {
		return nil, ErrZeroPayer
	}
	if _, exists := t.entryByPK[kind][pk]; exists {
		return nil, ErrDuplicateKey
	}
	e := &IndexEntry{TableID: t.ID, PrimaryKey: pk, Secondary: key, Payer: payer}
	t.secondaryTree(kind).ReplaceOrInsert(e)
	t.entryByPK[kind][pk] = e
	return e, nil
}

// SecondaryUpdate changes the payer and/or secondary key value of an
// existing entry. Because the tree orders by key, a changed key requires
// delete-then-reinsert rather than an in-place mutation.
func (t *Table) SecondaryUpdate(kind SecondaryKind, pk uint64, payer chain.Name, key SecondaryKey) (*IndexEntry, error) {
	if payer == chain.Empty {
		return nil, ErrZeroPayer
	}
	old, ok := t.entryByPK[kind][pk]
	if !ok {
		return nil, ErrRowNotFound
	}
	t.secondaryTree(kind).Delete(old)
	updated := &IndexEntry{TableID: t.ID, PrimaryKey: pk, Secondary: key, Payer: payer}
	t.secondaryTree(kind).ReplaceOrInsert(updated)
	t.entryByPK[kind][pk] = updated
	return updated, nil
}

// SecondaryRemove deletes the entry for the given primary key from the
// given index kind.
func (t *Table) SecondaryRemove(kind SecondaryKind, pk uint64) (*IndexEntry, error) {
	e, ok := t.entryByPK[kind][pk]
	if !ok {
		return nil, ErrRowNotFound
	}
	t.secondaryTree(kind).Delete(e)
	delete(t.entryByPK[kind], pk)
	return e, nil
}

// SecondaryFindByPK looks up the secondary-index entry for a given
// primary key without touching the ordered tree, used when a row is
// removed and every index kind's entry for it must be cleaned up.
func (t *Table) SecondaryFindByPK(kind SecondaryKind, pk uint64) (*IndexEntry, bool) {
	e, ok := t.entryByPK[kind][pk]
	return e, ok
}

// SecondaryFindExact returns the lowest-primary-key entry whose secondary
// key equals key exactly, or ok=false if none matches.
func (t *Table) SecondaryFindExact(kind SecondaryKind, key SecondaryKey) (*IndexEntry, bool) {
	e, ok := t.SecondaryLowerBound(kind, key)
	if !ok || e.Secondary.Compare(key) != 0 {
		return nil, false
	}
	return e, true
}

// SecondaryLowerBound returns the lowest-ordered entry whose secondary key
// is >= key, breaking ties toward the lowest primary key by pivoting on
// PrimaryKey 0 (spec.md §9's "pivot trick", avoiding a runtime
// ignore_primary_key flag).
func (t *Table) SecondaryLowerBound(kind SecondaryKind, key SecondaryKey) (*IndexEntry, bool) {
	pivot := &IndexEntry{Secondary: key, PrimaryKey: 0}
	var found *IndexEntry
	t.secondaryTree(kind).AscendGreaterOrEqual(pivot, func(e *IndexEntry) bool {
		found = e
		return false
	})
	return found, found != nil
}

// SecondaryUpperBound returns the lowest-ordered entry whose secondary key
// is strictly > key, by pivoting on PrimaryKey = MaxUint64 as a tie-break
// sentinel that sorts past every entry sharing that secondary key value.
func (t *Table) SecondaryUpperBound(kind SecondaryKind, key SecondaryKey) (*IndexEntry, bool) {
	pivot := &IndexEntry{Secondary: key, PrimaryKey: ^uint64(0)}
	var found *IndexEntry
	t.secondaryTree(kind).AscendGreaterOrEqual(pivot, func(e *IndexEntry) bool {
		if e.Secondary.Compare(key) == 0 && e.PrimaryKey == ^uint64(0) {
			return true // exact pivot match (pk==MaxUint64 for this key); keep scanning
		}
		found = e
		return false
	})
	return found, found != nil
}

// SecondaryNext returns the entry immediately after the one identified by
// (kind, pk) in index order, or ok=false if pk names the last entry.
func (t *Table) SecondaryNext(kind SecondaryKind, pk uint64) (*IndexEntry, bool) {
	cur, ok := t.entryByPK[kind][pk]
	if !ok {
		return nil, false
	}
	var found *IndexEntry
	skippedSelf := false
	t.secondaryTree(kind).AscendGreaterOrEqual(cur, func(e *IndexEntry) bool {
		if !skippedSelf {
			skippedSelf = true
			return true
		}
		found = e
		return false
	})
	return found, found != nil
}

// SecondaryPrev returns the entry immediately before the one identified by
// (kind, pk) in index order, or ok=false if pk names the first entry.
func (t *Table) SecondaryPrev(kind SecondaryKind, pk uint64) (*IndexEntry, bool) {
	cur, ok := t.entryByPK[kind][pk]
	if !ok {
		return nil, false
	}
	var found *IndexEntry
	skippedSelf := false
	t.secondaryTree(kind).DescendLessOrEqual(cur, func(e *IndexEntry) bool {
		if !skippedSelf {
			skippedSelf = true
			return true
		}
		found = e
		return false
	})
	return found, found != nil
}

// SecondaryMin returns the first entry in index order for the given kind.
func (t *Table) SecondaryMin(kind SecondaryKind) (*IndexEntry, bool) {
	return t.secondaryTree(kind).Min()
}

// SecondaryMax returns the last entry in index order for the given kind
// ("penultimate" relative to previous(end_iterator), mirroring Table.Max).
func (t *Table) SecondaryMax(kind SecondaryKind) (*IndexEntry, bool) {
	return t.secondaryTree(kind).Max()
}

// SecondaryLen reports how many entries exist for the given index kind.
func (t *Table) SecondaryLen(kind SecondaryKind) int {
	return t.secondaryTree(kind).Len()
}
