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
	"github.com/aaroncox/vert/chain/math128"
)

func TestIdx128FindSecondaryWalksDuplicates(t *testing.T) {
	tbl := newTestTable()

	entries := []struct {
		pk  uint64
		val uint64
	}{
		{1, 100},
		{2, 100}, // duplicate secondary key, tie-broken by pk
		{3, 200},
	}
	for _, e := range entries {
		_, err := tbl.SecondaryStore(KindU128, e.pk, chain.Name(9), NewU128Key(math128.U128{Lo: e.val}))
		require.NoError(t, err)
	}

	found, ok := tbl.SecondaryFindExact(KindU128, NewU128Key(math128.U128{Lo: 100}))
	require.True(t, ok)
	require.Equal(t, uint64(1), found.PrimaryKey) // lowest pk among the duplicate-100 rows

	next, ok := tbl.SecondaryNext(KindU128, found.PrimaryKey)
	require.True(t, ok)
	require.Equal(t, uint64(2), next.PrimaryKey)

	next2, ok := tbl.SecondaryNext(KindU128, next.PrimaryKey)
	require.True(t, ok)
	require.Equal(t, uint64(3), next2.PrimaryKey)

	_, ok = tbl.SecondaryNext(KindU128, next2.PrimaryKey)
	require.False(t, ok)
}

func TestChecksum256TransformIsInvolution(t *testing.T) {
	var raw [32]byte
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	k := NewChecksum256Key(raw)
	require.Equal(t, raw, k.ToChecksum256())
}

func TestF64TotalOrderTransformPreservesNumericOrder(t *testing.T) {
	values := []float64{-100.5, -1, 0, 1, 100.5}
	var keys []SecondaryKey
	for _, v := range values {
		keys = append(keys, NewF64Key(v))
	}
	for i := 1; i < len(keys); i++ {
		require.Equal(t, -1, keys[i-1].Compare(keys[i]))
	}
	for i, k := range keys {
		require.Equal(t, values[i], k.ToF64())
	}
}

func TestSecondaryUpdateReordersEntry(t *testing.T) {
	tbl := newTestTable()
	_, err := tbl.SecondaryStore(KindU64, 1, chain.Name(1), NewU64Key(10))
	require.NoError(t, err)
	_, err = tbl.SecondaryStore(KindU64, 2, chain.Name(1), NewU64Key(20))
	require.NoError(t, err)

	_, err = tbl.SecondaryUpdate(KindU64, 1, chain.Name(1), NewU64Key(30))
	require.NoError(t, err)

	min, ok := tbl.SecondaryMin(KindU64)
	require.True(t, ok)
	require.Equal(t, uint64(2), min.PrimaryKey)

	max, ok := tbl.SecondaryMax(KindU64)
	require.True(t, ok)
	require.Equal(t, uint64(1), max.PrimaryKey)
}
