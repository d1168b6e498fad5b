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
	"errors"

	"github.com/aaroncox/vert/chain"
	"github.com/aaroncox/vert/store"
	"github.com/aaroncox/vert/vm/cryptohost"
)

// fakeMemory is a flat byte slice standing in for a WASM engine's linear
// memory, the same role a real engine's memory export plays in production;
// every HostEnv test below drives it directly instead of a WASM runtime.
type fakeMemory struct {
	buf []byte
}

func newFakeMemory(size int) *fakeMemory {
	return &fakeMemory{buf: make([]byte, size)}
}

func (m *fakeMemory) Read(offset, length uint32) ([]byte, error) {
	if uint64(offset)+uint64(length) > uint64(len(m.buf)) {
		return nil, errors.New("out of bounds read")
	}
	out := make([]byte, length)
	copy(out, m.buf[offset:offset+length])
	return out, nil
}

func (m *fakeMemory) Write(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(len(m.buf)) {
		return errors.New("out of bounds write")
	}
	copy(m.buf[offset:], data)
	return nil
}

func (m *fakeMemory) Size() uint32 { return uint32(len(m.buf)) }

// fakeCodec decodes raw bytes as an 8-byte little-endian account name
// followed by the payload; the action name is always 1. That is just enough for SendInline
// tests to exercise Context.SendInline without a real Antelope codec.
type fakeCodec struct{}

func (fakeCodec) Decode(data []byte) (chain.Action, error) {
	if len(data) < 8 {
		return chain.Action{}, errors.New("short payload")
	}
	var acct uint64
	for i := 0; i < 8; i++ {
		acct |= uint64(data[i]) << (8 * i)
	}
	return chain.Action{Account: chain.Name(acct), Name: chain.Name(1), Data: data[8:]}, nil
}

func newTestEnv() (*HostEnv, *Context, *chain.Blockchain, *store.Store) {
	bc := chain.New(chain.Options{})
	st := store.NewStore(bc.Metrics)
	ctx := NewContext(bc, st, newFakeMemory(65536), fakeCodec{})
	return NewHostEnv(ctx, cryptohost.DefaultProvider{}), ctx, bc, st
}
