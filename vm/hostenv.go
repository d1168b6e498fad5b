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

import "github.com/aaroncox/vert/vm/cryptohost"

// HostEnv implements every intrinsic spec.md §6 lists under the "env"
// WASM import module, bound to one Context at a time. A WASM engine
// (external collaborator) looks up each method here by name and calls it
// with arguments decoded from the guest stack; this package never touches
// the stack itself; that translation is the engine's job.
type HostEnv struct {
	ctx      *Context
	crypto   cryptohost.Provider
}

// NewHostEnv binds a HostEnv to ctx using provider for every crypto
// intrinsic.
func NewHostEnv(ctx *Context, provider cryptohost.Provider) *HostEnv {
	return &HostEnv{ctx: ctx, crypto: provider}
}

// Context exposes the bound Context, e.g. so dispatch.Dispatcher can read
// back PendingInline/PendingNotify/ReturnValue once apply() returns.
func (h *HostEnv) Context() *Context { return h.ctx }
