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

// Package vm implements the host ABI intrinsic surface: guest linear
// memory access, the per-action Context, and HostEnv, the set of
// functions a WASM module imports under the "env" module name. The
// actual WASM engine that executes guest bytecode and calls into HostEnv
// is an external collaborator (spec.md §1 scopes it out); this package
// only needs a GuestMemory to read/write that engine's linear memory.
package vm

// GuestMemory is the minimal surface this package needs from a WASM
// engine's linear memory: bounds-checked reads and writes by byte offset.
// Implementations must never let Read/Write return a slice aliasing their
// own backing array past the call that produced it — LinearMemoryView
// never retains a GuestMemory-returned slice across a host-call boundary,
// matching spec.md §4.1.
type GuestMemory interface {
	// Read returns a copy of length bytes starting at offset, or an error
	// if the range is out of bounds.
	Read(offset, length uint32) ([]byte, error)
	// Write copies data into linear memory starting at offset, or returns
	// an error if the range is out of bounds.
	Write(offset uint32, data []byte) error
	// Size returns the current linear memory size in bytes.
	Size() uint32
}
