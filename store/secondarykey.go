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
	"bytes"
	"math"

	"github.com/aaroncox/vert/chain/math128"
)

// SecondaryKind tags which of the four secondary index flavors a
// SecondaryKey holds, mirroring erigon-lib/kv's Domain/InvertedIdx enum
// pattern of a small tagged set with a String() for diagnostics.
type SecondaryKind uint8

const (
	KindU64 SecondaryKind = iota
	KindU128
	KindChecksum256
	KindF64
)

func (k SecondaryKind) String() string {
	switch k {
	case KindU64:
		return "idx64"
	case KindU128:
		return "idx128"
	case KindChecksum256:
		return "idx256"
	case KindF64:
		return "idxDouble"
	default:
		return "unknown"
	}
}

// SecondaryKey is a tagged-variant secondary key value, already transformed
// into its sort-order form where a transform is required (checksum256 and
// double). A single generic index implementation operates over this type
// rather than maintaining four near-identical copies of the btree/compare
// logic, per spec.md §9's stated preference.
type SecondaryKey struct {
	Kind    SecondaryKind
	U64     uint64       // KindU64
	U128    math128.U128 // KindU128, raw unsigned 128-bit value
	Sort256 [32]byte     // KindChecksum256, already half-swap-reversed
	SortF64 uint64       // KindF64, already IEEE-754 total-order transformed
}

// NewU64Key builds a KindU64 SecondaryKey.
func NewU64Key(v uint64) SecondaryKey {
	return SecondaryKey{Kind: KindU64, U64: v}
}

// NewU128Key builds a KindU128 SecondaryKey from a raw unsigned 128-bit
// value; EOSIO's idx128 index compares the 128-bit value as unsigned.
func NewU128Key(v math128.U128) SecondaryKey {
	return SecondaryKey{Kind: KindU128, U128: v}
}

// NewChecksum256Key builds a KindChecksum256 SecondaryKey, applying the
// half-swap-reverse sort transform exactly once at this boundary.
//
// The transform is: split the 32 bytes into two 16-byte halves, swap the
// halves, then reverse the bytes within each half. It is its own inverse
// (an involution): swapping two halves is self-inverse, and reversing a
// byte string is self-inverse, and the two operations commute because they
// act on disjoint halves — so ToChecksum256 below recovers the original
// value by applying the identical transform a second time.
func NewChecksum256Key(raw [32]byte) SecondaryKey {
	return SecondaryKey{Kind: KindChecksum256, Sort256: checksum256Transform(raw)}
}

// ToChecksum256 recovers the original 32-byte value from its sort form.
func (k SecondaryKey) ToChecksum256() [32]byte {
	return checksum256Transform(k.Sort256)
}

func checksum256Transform(in [32]byte) [32]byte {
	var out [32]byte
	// Swap halves: in[16:32] -> out[0:16], in[0:16] -> out[16:32].
	copy(out[0:16], in[16:32])
	copy(out[16:32], in[0:16])
	// Reverse each 16-byte half in place.
	reverse16(out[0:16])
	reverse16(out[16:32])
	return out
}

func reverse16(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// NewF64Key builds a KindF64 SecondaryKey, applying the IEEE-754
// total-order transform exactly once: flip the sign bit if the value is
// positive (including +0), or invert every bit if it is negative. The
// result orders as an unsigned uint64 compare, matching IEEE-754 total
// order for all non-NaN values; NaN payloads land somewhere consistent but
// not numerically meaningful, which spec.md §4.4 explicitly allows ("any
// total order is acceptable for NaN").
func NewF64Key(f float64) SecondaryKey {
	return SecondaryKey{Kind: KindF64, SortF64: f64TotalOrderTransform(floatBits(f))}
}

// ToF64 recovers the float64 bit pattern from its sort form. The transform
// is self-inverse given the sign bit of the *transformed* value indicates
// whether the original was negative (transformed negative-original values
// have their top bit cleared, since all bits including the sign were
// inverted).
func (k SecondaryKey) ToF64() float64 {
	bitsVal := k.SortF64
	var orig uint64
	if bitsVal>>63 != 0 {
		// Top bit set => original was non-negative; undo the sign flip.
		orig = bitsVal &^ (uint64(1) << 63)
	} else {
		// Top bit clear => original was negative; undo the full inversion.
		orig = ^bitsVal
	}
	return bitsToFloat(orig)
}

func f64TotalOrderTransform(b uint64) uint64 {
	if b>>63 == 0 {
		// Non-negative (including +0): flip the sign bit.
		return b | (uint64(1) << 63)
	}
	// Negative: invert every bit.
	return ^b
}

func floatBits(f float64) uint64   { return math.Float64bits(f) }
func bitsToFloat(b uint64) float64 { return math.Float64frombits(b) }

// Compare orders two SecondaryKeys of the same Kind. Comparing keys of
// differing Kind is a programming error in this package (callers always
// route through a single Table's per-kind btree, which only ever holds one
// kind) and panics rather than silently misordering.
func (k SecondaryKey) Compare(o SecondaryKey) int {
	if k.Kind != o.Kind {
		panic("store: comparing SecondaryKeys of different kinds")
	}
	switch k.Kind {
	case KindU64:
		switch {
		case k.U64 < o.U64:
			return -1
		case k.U64 > o.U64:
			return 1
		default:
			return 0
		}
	case KindU128:
		return compareU128(k.U128, o.U128)
	case KindChecksum256:
		return bytes.Compare(k.Sort256[:], o.Sort256[:])
	case KindF64:
		switch {
		case k.SortF64 < o.SortF64:
			return -1
		case k.SortF64 > o.SortF64:
			return 1
		default:
			return 0
		}
	default:
		panic("store: unknown SecondaryKind")
	}
}

func compareU128(a, b math128.U128) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	}
	if a.Lo != b.Lo {
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	}
	return 0
}
