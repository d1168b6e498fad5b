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

import "encoding/binary"

// LinearMemoryView adds the small set of typed helpers HostEnv needs on
// top of a raw GuestMemory: bounds-checked integer/byte-slice reads and
// writes, plus the "size idiom" every *_get_* intrinsic uses (a zero
// destination length means "just tell me how big the value is").
type LinearMemoryView struct {
	mem GuestMemory
}

// NewLinearMemoryView wraps mem.
func NewLinearMemoryView(mem GuestMemory) *LinearMemoryView {
	return &LinearMemoryView{mem: mem}
}

// ReadBytes reads length bytes at offset, translating any out-of-bounds
// access into a MemoryFaultError.
func (m *LinearMemoryView) ReadBytes(offset, length uint32) ([]byte, error) {
	b, err := m.mem.Read(offset, length)
	if err != nil {
		return nil, &MemoryFaultError{Offset: offset, Length: length}
	}
	return b, nil
}

// WriteBytes writes data at offset, translating any out-of-bounds access
// into a MemoryFaultError.
func (m *LinearMemoryView) WriteBytes(offset uint32, data []byte) error {
	if err := m.mem.Write(offset, data); err != nil {
		return &MemoryFaultError{Offset: offset, Length: uint32(len(data))}
	}
	return nil
}

// WriteSized implements the host ABI's "size idiom": if destLen is 0, no
// bytes are written and the full length of value is returned so the guest
// can size its own buffer and call again. Otherwise up to destLen bytes of
// value are copied to destOffset and the full length of value is still
// returned (the guest compares the return value against destLen to detect
// truncation), matching db_get_i64 and friends (spec.md §4.5).
func (m *LinearMemoryView) WriteSized(destOffset, destLen uint32, value []byte) (int32, error) {
	if destLen == 0 {
		return int32(len(value)), nil
	}
	n := uint32(len(value))
	if n > destLen {
		n = destLen
	}
	if err := m.WriteBytes(destOffset, value[:n]); err != nil {
		return 0, err
	}
	return int32(len(value)), nil
}

func (m *LinearMemoryView) ReadUint32(offset uint32) (uint32, error) {
	b, err := m.ReadBytes(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (m *LinearMemoryView) WriteUint32(offset, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return m.WriteBytes(offset, b[:])
}

func (m *LinearMemoryView) ReadUint64(offset uint32) (uint64, error) {
	b, err := m.ReadBytes(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (m *LinearMemoryView) WriteUint64(offset uint32, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return m.WriteBytes(offset, b[:])
}

// ReadString reads a length-prefixed-by-caller byte range and returns it
// as a string, used for the prints_l family of console intrinsics.
func (m *LinearMemoryView) ReadString(offset, length uint32) (string, error) {
	b, err := m.ReadBytes(offset, length)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
