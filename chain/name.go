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

package chain

import "strconv"

// Name is the 64-bit account/action/table/scope identifier used throughout
// the host ABI. Equality and ordering are plain unsigned 64-bit comparisons.
//
// The human-readable base-32 text form (and its decoder) is part of the
// Antelope primitive codec, which is an external collaborator to this core
// (see SPEC_FULL.md §1). This package neither parses nor renders that text
// form; the only renderer in this module is the printn encoder in
// vm/hostenv_print.go, and no parser exists.
type Name uint64

// Empty is the zero Name, used as "no sender" (non-inline) and "no payer".
const Empty Name = 0

// ActivePermission and OwnerPermission are the two permission Names
// require_auth/has_auth accept (spec.md §4.5: "permission ∈ {active,
// owner}"). These are the base-32 Name encodings of the literal strings
// "active" and "owner" baked in as numeric constants, the same way the
// Antelope reference implementation's std_names.hpp does — the text
// encoder itself stays out of scope (see the doc comment above).
const (
	ActivePermission Name = 3617214756542218240
	OwnerPermission  Name = 12044502819693133824
)

func (n Name) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

// AsInt64 reinterprets the Name as a signed 64-bit value, matching the
// WASM linear ABI's signed-integer calling convention (spec.md §6).
func (n Name) AsInt64() int64 {
	return int64(n)
}

// NameFromInt64 reinterprets a signed 64-bit ABI value as a Name.
func NameFromInt64(v int64) Name {
	return Name(uint64(v))
}
