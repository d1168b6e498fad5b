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

// Package dispatch ties chain.Blockchain, store.Store and vm.HostEnv
// together into a runnable action-dispatch pipeline: given a top-level
// action it installs a fresh vm.Context per action (top-level,
// notification, or inline), calls into an external WasmModule's apply
// export, and drains the notification/inline queues the action produced,
// recursively, the same way tests/state_test_util.go's Run/RunNoVerify
// walks a block's transactions and their receipts one level at a time.
package dispatch

import (
	"github.com/aaroncox/vert/chain"
	"github.com/aaroncox/vert/store"
)

// Chain composes a chain.Blockchain and a *store.Store into the single
// "blockchain" concept spec.md §1 describes. The two live in separate
// packages specifically so chain and store never need to import each
// other (see DESIGN.md); Chain is where they are finally used together.
type Chain struct {
	Blockchain *chain.Blockchain
	Store      *store.Store
}

// NewChain constructs a Chain with a fresh Blockchain (per opts) and an
// empty Store sharing the Blockchain's Metrics.
func NewChain(opts chain.Options) *Chain {
	bc := chain.New(opts)
	return &Chain{
		Blockchain: bc,
		Store:      store.NewStore(bc.Metrics),
	}
}

// Reset clears both halves of the Chain, returning it to its
// just-constructed state.
func (c *Chain) Reset() {
	c.Blockchain.Reset()
	c.Store.Reset()
}
