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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aaroncox/vert/chain"
)

func TestCacheTableAllocatesDistinctEndIterators(t *testing.T) {
	s := NewStore(nil)
	t1 := s.GetOrCreateTable(chain.Name(1), chain.Name(1), chain.Name(1))
	t2 := s.GetOrCreateTable(chain.Name(1), chain.Name(1), chain.Name(2))
	c := NewCache(s)

	e1 := c.CacheTable(t1, IterPrimary)
	e2 := c.CacheTable(t2, IterPrimary)
	require.Less(t, e1, int64(-1))
	require.Less(t, e2, int64(-1))
	require.NotEqual(t, e1, e2)

	// Calling again for the same table/kind returns the same sentinel.
	require.Equal(t, e1, c.CacheTable(t1, IterPrimary))

	tbl, kind, ok := c.TableFromEndIterator(e1)
	require.True(t, ok)
	require.Equal(t, t1.ID, tbl)
	require.Equal(t, IterPrimary, kind)
}

func TestCacheAddIsStableByRowIdentity(t *testing.T) {
	s := NewStore(nil)
	tbl := s.GetOrCreateTable(chain.Name(1), chain.Name(1), chain.Name(1))
	_, err := tbl.Insert(5, chain.Name(9), nil)
	require.NoError(t, err)

	c := NewCache(s)
	h1 := c.Add(tbl, 5)
	h2 := c.Add(tbl, 5)
	require.Equal(t, h1, h2)

	table, kind, pk, ok := c.Get(h1)
	require.True(t, ok)
	require.Equal(t, tbl.ID, table)
	require.Equal(t, IterPrimary, kind)
	require.Equal(t, uint64(5), pk)
}

func TestInvalidateRowTombstonesAllKinds(t *testing.T) {
	s := NewStore(nil)
	tbl := s.GetOrCreateTable(chain.Name(1), chain.Name(1), chain.Name(1))
	_, err := tbl.Insert(5, chain.Name(9), nil)
	require.NoError(t, err)
	_, err = tbl.SecondaryStore(KindU64, 5, chain.Name(9), NewU64Key(42))
	require.NoError(t, err)

	c := NewCache(s)
	hPrimary := c.Add(tbl, 5)
	hSecondary := c.AddSecondary(tbl, KindU64, 5)

	_, err = tbl.Remove(5)
	require.NoError(t, err)
	_, err = tbl.SecondaryRemove(KindU64, 5)
	require.NoError(t, err)
	c.InvalidateRow(tbl.ID, 5)

	_, _, _, ok := c.Get(hPrimary)
	require.False(t, ok)
	_, _, _, ok = c.Get(hSecondary)
	require.False(t, ok)
}

// TestStaleHandleDoesNotResolveToReusedPrimaryKey guards exactly the
// hazard spec.md §9 calls out: removing a row and inserting a new row
// under the same primary key within one action must not let a handle
// obtained before the removal silently resolve to the new row.
func TestStaleHandleDoesNotResolveToReusedPrimaryKey(t *testing.T) {
	s := NewStore(nil)
	tbl := s.GetOrCreateTable(chain.Name(1), chain.Name(1), chain.Name(1))
	_, err := tbl.Insert(5, chain.Name(1), []byte("old"))
	require.NoError(t, err)

	c := NewCache(s)
	h := c.Add(tbl, 5)

	_, err = tbl.Remove(5)
	require.NoError(t, err)
	c.InvalidateRow(tbl.ID, 5)

	_, err = tbl.Insert(5, chain.Name(2), []byte("new"))
	require.NoError(t, err)

	_, _, _, ok := c.Get(h)
	require.False(t, ok)
}
