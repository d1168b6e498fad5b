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

// Package math128 implements the 128-bit compiler-rt helpers a WASM module
// compiled with a standard C/C++ toolchain imports for __int128/unsigned
// __int128 arithmetic: __multi3, __divti3, __udivti3, __modti3, __umodti3.
// Each operand is a 128-bit value split into two uint64 limbs (lo, hi) the
// way clang/LLVM lays out __int128 in linear memory; we zero- or
// sign-extend each operand into the low 128 bits of a 256-bit
// github.com/holiman/uint256.Int, perform the operation there (uint256
// already has overflow-checked, constant-width 256-bit arithmetic that
// covers the full 128-bit product of two 128-bit operands without
// overflowing), and truncate the result back to 128 bits on the way out.
package math128

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// U128 is an unsigned 128-bit value as two 64-bit limbs, matching the
// layout the WASM ABI passes __int128/unsigned __int128 operands in.
type U128 struct {
	Lo, Hi uint64
}

// I128 is a signed 128-bit value with the same limb layout as U128; Hi's
// top bit is the sign.
type I128 struct {
	Lo, Hi uint64
}

func (u U128) toUint256() *uint256.Int {
	return uint256.NewInt(0).SetBytes(beBytes(u.Hi, u.Lo))
}

func beBytes(hi, lo uint64) []byte {
	var b [16]byte
	putBE64(b[0:8], hi)
	putBE64(b[8:16], lo)
	return b[:]
}

func putBE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v)
		v >>= 8
	}
}

func u256ToU128(x *uint256.Int) U128 {
	var b [32]byte
	x.WriteToArray32(&b)
	return U128{
		Hi: beToU64(b[16:24]),
		Lo: beToU64(b[24:32]),
	}
}

func beToU64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// IsNeg reports whether the 128-bit two's-complement value is negative.
func (i I128) IsNeg() bool {
	return i.Hi>>63 != 0
}

// Neg returns the two's-complement negation of i.
func (i I128) Neg() I128 {
	lo, borrow := bits.Sub64(0, i.Lo, 0)
	hi, _ := bits.Sub64(0, i.Hi, borrow)
	return I128{Lo: lo, Hi: hi}
}

func (i I128) abs() (U128, bool) {
	if i.IsNeg() {
		n := i.Neg()
		return U128{Lo: n.Lo, Hi: n.Hi}, true
	}
	return U128{Lo: i.Lo, Hi: i.Hi}, false
}

// Mul128 implements __multi3: signed 128x128 -> 128 multiplication with
// wraparound on overflow (matching C's defined-overflow-free but
// truncating __int128 multiply).
func Mul128(a, b I128) I128 {
	x := (U128{Lo: a.Lo, Hi: a.Hi}).toUint256()
	y := (U128{Lo: b.Lo, Hi: b.Hi}).toUint256()
	signExtend256(x, a.Hi>>63 != 0)
	signExtend256(y, b.Hi>>63 != 0)
	prod := uint256.NewInt(0).Mul(x, y)
	u := u256ToU128(prod)
	return I128{Lo: u.Lo, Hi: u.Hi}
}

// signExtend256 fills the upper 128 bits of x with 1s when neg is true,
// turning a 128-bit two's-complement value zero-extended into 256 bits
// into its correctly sign-extended 256-bit form.
func signExtend256(x *uint256.Int, neg bool) {
	if !neg {
		return
	}
	var low128Ones uint256.Int
	low128Ones.SetAllOne()
	low128Ones.Rsh(&low128Ones, 128) // 0x000...000 ffff...ffff (low 128 bits set)
	var hiMask uint256.Int
	hiMask.Not(&low128Ones) // upper 128 bits set, low 128 bits clear
	x.Or(x, &hiMask)
}

// DivMod128 implements __divti3/__modti3 (signed) when signed is true, and
// __udivti3/__umodti3 (unsigned) otherwise. Division by zero panics; this
// package defines no error type. The vm package's divmod checks for a zero
// divisor before calling and returns a PreconditionError instead.
func DivMod128(a, b I128, signed bool) (quot, rem I128) {
	if b.Lo == 0 && b.Hi == 0 {
		panic("math128: division by zero")
	}
	if !signed {
		x := (U128{Lo: a.Lo, Hi: a.Hi}).toUint256()
		y := (U128{Lo: b.Lo, Hi: b.Hi}).toUint256()
		q := uint256.NewInt(0)
		r := uint256.NewInt(0)
		q.DivMod(x, y, r)
		qu := u256ToU128(q)
		ru := u256ToU128(r)
		return I128{Lo: qu.Lo, Hi: qu.Hi}, I128{Lo: ru.Lo, Hi: ru.Hi}
	}

	aAbs, aNeg := a.abs()
	bAbs, bNeg := b.abs()
	x := aAbs.toUint256()
	y := bAbs.toUint256()
	q := uint256.NewInt(0)
	r := uint256.NewInt(0)
	q.DivMod(x, y, r)
	qu := u256ToU128(q)
	ru := u256ToU128(r)
	quot = I128{Lo: qu.Lo, Hi: qu.Hi}
	rem = I128{Lo: ru.Lo, Hi: ru.Hi}
	if aNeg != bNeg {
		quot = quot.Neg()
	}
	if aNeg {
		rem = rem.Neg()
	}
	return quot, rem
}
