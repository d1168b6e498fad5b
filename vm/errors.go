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

import "fmt"

// ExitError is the eosio_exit sentinel: it unwinds the running action like
// an error at the Go call-stack level, but dispatch.Dispatcher must treat
// it as a clean, successful return (spec.md §4.6/§7), not a failure.
type ExitError struct {
	Code int32
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("eosio_exit(%d)", e.Code)
}

// AssertionError is a guest-triggered eosio_assert/eosio_assert_code
// failure.
type AssertionError struct {
	Message string
	Code    uint64
	HasCode bool
}

func (e *AssertionError) Error() string {
	if e.HasCode {
		return fmt.Sprintf("assertion failure with code %d: %s", e.Code, e.Message)
	}
	return "assertion failure: " + e.Message
}

// PreconditionError wraps a host precondition failure (payer zero,
// duplicate key, unknown account, invalid iterator, malformed signature,
// access violation against another contract's table, ...) coming from a
// lower layer (store, cryptohost) so HostEnv callers can propagate it
// without needing to know which package originated it.
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string { return e.Err.Error() }
func (e *PreconditionError) Unwrap() error { return e.Err }

// MemoryFaultError is an out-of-bounds guest memory access.
type MemoryFaultError struct {
	Offset, Length uint32
}

func (e *MemoryFaultError) Error() string {
	return fmt.Sprintf("guest memory fault at offset %d length %d", e.Offset, e.Length)
}

// NotImplementedError is returned by the intrinsics spec.md §4.5/§6 list as
// permanently unsupported (long double, 128-bit shifts, deferred
// transactions, context-free data, producer scheduling, ...): a deliberate
// trap, not a bug.
type NotImplementedError struct {
	Name string
}

func (e *NotImplementedError) Error() string {
	return "not implemented: " + e.Name
}
