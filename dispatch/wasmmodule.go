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

package dispatch

import (
	"github.com/aaroncox/vert/chain"
	"github.com/aaroncox/vert/vm"
)

// WasmModule is one contract's instantiated code: a WASM engine (external
// collaborator, spec.md §1) bound to a fresh linear memory and ready to
// call its apply export against a HostEnv the Dispatcher has already wired
// up for the current action. This package never compiles or interprets
// WASM bytecode itself.
type WasmModule interface {
	// NewMemory returns a fresh GuestMemory for one action invocation.
	NewMemory() vm.GuestMemory
	// Apply invokes the module's apply(receiver, firstReceiver, action)
	// export against host, returning whatever error the guest's execution
	// produced (including host's own intrinsic errors, which propagate
	// back out through the engine unchanged).
	Apply(host *vm.HostEnv, receiver, firstReceiver, action chain.Name) error
}

// ModuleLoader compiles/loads an account's installed WASM bytecode into a
// ready-to-run WasmModule. Also an external collaborator: this package
// only needs one already bound to a HostEnv-compatible engine.
type ModuleLoader interface {
	Load(code []byte) (WasmModule, error)
}
