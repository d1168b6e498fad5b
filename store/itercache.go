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

// IterKind distinguishes which of the five orderings (primary, or one of
// the four secondary index kinds) an iterator handle walks.
type IterKind uint8

const (
	IterPrimary IterKind = iota
	IterU64
	IterU128
	IterChecksum256
	IterF64
)

func (k IterKind) secondaryKind() SecondaryKind {
	return SecondaryKind(k - IterU64)
}

// rowRef identifies a specific row by its stable (table, primary key)
// identity — not by pointer, and not by re-querying a position — so a
// removed-then-recreated primary key in the same action never causes a
// stale handle to silently resolve to the wrong row. Every handle across
// every IterKind for a given row is reachable from one rowRef, which is
// exactly what Cache.InvalidateRow needs.
type rowRef struct {
	Table      TableID
	PrimaryKey uint64
}

type cacheSlot struct {
	kind  IterKind
	table TableID
	pk    uint64
	valid bool
}

type endKey struct {
	Table TableID
	Kind  IterKind
}

// Cache is one action's iterator handle table, created empty at the start
// of every Context (spec.md §3 "per-Context iterator cache") and discarded
// at Context end; Store rows themselves outlive it. Handles are
// non-negative arena indices into slots; per-table end iterators are
// negative values allocated lazily and decreasing from -2 (-1 is reserved
// for "table does not exist"); handles resolve by (table, kind,
// primaryKey) identity rather than by pointer, per spec.md §9.
type Cache struct {
	store   *Store
	slots   []cacheSlot
	ends    map[endKey]int64
	endInfo map[int64]endKey
	nextEnd int64

	byRow map[rowRef][]int64 // reverse index for InvalidateRow
}

// NewCache constructs an empty iterator cache bound to store.
func NewCache(s *Store) *Cache {
	return &Cache{
		store:   s,
		ends:    make(map[endKey]int64),
		endInfo: make(map[int64]endKey),
		nextEnd: -2,
		byRow:   make(map[rowRef][]int64),
	}
}

// CacheTable ensures t's end iterator for kind is allocated and returns
// it; used by every db_find_i64/db_lowerbound_i64/etc. path whose "no row
// matched" result must still be a valid, table-specific end iterator
// rather than -1 (which is reserved for "table does not exist").
func (c *Cache) CacheTable(t *Table, kind IterKind) int64 {
	k := endKey{Table: t.ID, Kind: kind}
	if v, ok := c.ends[k]; ok {
		return v
	}
	v := c.nextEnd
	c.nextEnd--
	c.ends[k] = v
	c.endInfo[v] = k
	return v
}

// EndIteratorOfTable returns t's end iterator for kind without requiring a
// *Table lookup to have happened yet; equivalent to CacheTable.
func (c *Cache) EndIteratorOfTable(t *Table, kind IterKind) int64 {
	return c.CacheTable(t, kind)
}

// TableFromEndIterator resolves a negative end-iterator handle back to
// its table and kind, returning ok=false for -1 (table doesn't exist) or
// any handle that is not a known end iterator.
func (c *Cache) TableFromEndIterator(handle int64) (TableID, IterKind, bool) {
	k, ok := c.endInfo[handle]
	if !ok {
		return 0, 0, false
	}
	return k.Table, k.Kind, true
}

// Add caches a primary-index row and returns a stable handle for it. A
// second Add for the same (table, pk) returns the same handle rather than
// allocating a new slot.
func (c *Cache) Add(t *Table, pk uint64) int64 {
	return c.add(t.ID, IterPrimary, pk)
}

// AddSecondary caches a secondary-index entry and returns a stable handle
// for it.
func (c *Cache) AddSecondary(t *Table, kind SecondaryKind, pk uint64) int64 {
	return c.add(t.ID, IterKind(kind)+IterU64, pk)
}

func (c *Cache) add(tableID TableID, kind IterKind, pk uint64) int64 {
	ref := rowRef{Table: tableID, PrimaryKey: pk}
	for _, h := range c.byRow[ref] {
		if c.slots[h].kind == kind && c.slots[h].valid {
			return h
		}
	}
	h := int64(len(c.slots))
	c.slots = append(c.slots, cacheSlot{kind: kind, table: tableID, pk: pk, valid: true})
	c.byRow[ref] = append(c.byRow[ref], h)
	return h
}

// Get resolves a non-negative handle to its (table, kind, primaryKey).
// ok is false for a negative handle, an out-of-range handle, or a handle
// whose row has since been invalidated.
func (c *Cache) Get(handle int64) (table TableID, kind IterKind, pk uint64, ok bool) {
	if handle < 0 || handle >= int64(len(c.slots)) {
		return 0, 0, 0, false
	}
	s := c.slots[handle]
	if !s.valid {
		return 0, 0, 0, false
	}
	return s.table, s.kind, s.pk, true
}

// Remove invalidates a single handle without affecting any other handle
// referencing the same row under a different IterKind.
func (c *Cache) Remove(handle int64) {
	if handle < 0 || handle >= int64(len(c.slots)) {
		return
	}
	c.slots[handle].valid = false
}

// InvalidateRow tombstones every handle — across all five IterKinds —
// that references (tableID, pk). Called whenever a row (and therefore all
// of its secondary-index entries) is removed from the Store, so a stale
// handle can never resolve to an unrelated row that later reuses the same
// primary key within the same action.
func (c *Cache) InvalidateRow(tableID TableID, pk uint64) {
	ref := rowRef{Table: tableID, PrimaryKey: pk}
	for _, h := range c.byRow[ref] {
		c.slots[h].valid = false
	}
	delete(c.byRow, ref)
}
