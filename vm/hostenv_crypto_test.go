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

package vm

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSha256WritesExpectedDigest(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	require.NoError(t, ctx.Memory.WriteBytes(0, []byte("eosio")))
	require.NoError(t, h.Sha256(0, 5, 100))
	got, err := ctx.Memory.ReadBytes(100, 32)
	require.NoError(t, err)
	want := sha256.Sum256([]byte("eosio"))
	require.Equal(t, want[:], got)
}

func TestAssertSha256MismatchIsAssertionError(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	require.NoError(t, ctx.Memory.WriteBytes(0, []byte("eosio")))
	require.NoError(t, ctx.Memory.WriteBytes(100, make([]byte, 32))) // all zero, wrong
	err := h.AssertSha256(0, 5, 100)
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
}

func TestAssertSha256MatchPasses(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	require.NoError(t, ctx.Memory.WriteBytes(0, []byte("eosio")))
	want := sha256.Sum256([]byte("eosio"))
	require.NoError(t, ctx.Memory.WriteBytes(100, want[:]))
	require.NoError(t, h.AssertSha256(0, 5, 100))
}

func TestAltBn128AddIdentityPlusIdentity(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	// two 64-byte (0,0) points: the point at infinity, valid input.
	require.NoError(t, ctx.Memory.WriteBytes(0, make([]byte, 64)))
	require.NoError(t, ctx.Memory.WriteBytes(64, make([]byte, 64)))
	code, err := h.AltBn128Add(0, 64, 64, 64, 200, 64)
	require.NoError(t, err)
	require.EqualValues(t, 0, code)
	out, err := ctx.Memory.ReadBytes(200, 64)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 64), out)
}

func TestAltBn128AddInvalidPointReturnsMinusOne(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	garbage := make([]byte, 64)
	for i := range garbage {
		garbage[i] = 0xFF
	}
	require.NoError(t, ctx.Memory.WriteBytes(0, garbage))
	require.NoError(t, ctx.Memory.WriteBytes(64, make([]byte, 64)))
	code, err := h.AltBn128Add(0, 64, 64, 64, 200, 64)
	require.NoError(t, err)
	require.EqualValues(t, -1, code)
}

func TestModExpZeroModulusReturnsMinusOne(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	require.NoError(t, ctx.Memory.WriteBytes(0, []byte{2}))
	require.NoError(t, ctx.Memory.WriteBytes(8, []byte{3}))
	require.NoError(t, ctx.Memory.WriteBytes(16, []byte{0}))
	code, err := h.ModExp(0, 1, 8, 1, 16, 1, 200, 32)
	require.NoError(t, err)
	require.EqualValues(t, -1, code)
}

func TestModExpComputesExpectedResult(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	require.NoError(t, ctx.Memory.WriteBytes(0, []byte{4}))  // base=4
	require.NoError(t, ctx.Memory.WriteBytes(8, []byte{3}))  // exp=3
	require.NoError(t, ctx.Memory.WriteBytes(16, []byte{7})) // mod=7 -> 64 mod 7 = 1
	code, err := h.ModExp(0, 1, 8, 1, 16, 1, 200, 1)
	require.NoError(t, err)
	require.EqualValues(t, 0, code)
	out, err := ctx.Memory.ReadBytes(200, 1)
	require.NoError(t, err)
	require.Equal(t, byte(1), out[0])
}
