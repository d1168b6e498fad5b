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
	"errors"
	"fmt"

	"github.com/aaroncox/vert/vm"
)

// ActionErrorKind classifies why an action's dispatch failed, one step
// coarser than the concrete vm error type so callers that only care about
// "was this the guest's fault or the host's" don't need to import vm.
type ActionErrorKind int

const (
	KindUnknown ActionErrorKind = iota
	KindGuestAssertion
	KindHostPrecondition
	KindMemoryFault
	KindNotImplemented
	KindAuthorization
)

func (k ActionErrorKind) String() string {
	switch k {
	case KindGuestAssertion:
		return "guest_assertion"
	case KindHostPrecondition:
		return "host_precondition"
	case KindMemoryFault:
		return "memory_fault"
	case KindNotImplemented:
		return "not_implemented"
	case KindAuthorization:
		return "authorization"
	default:
		return "unknown"
	}
}

// ActionError wraps a failed action's underlying error with its
// classification; it is what Dispatcher.Execute returns for any failure
// that is not a clean eosio_exit.
type ActionError struct {
	Kind ActionErrorKind
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// classify type-switches a vm-layer error into an ActionError. vm cannot
// import dispatch (it would cycle back through chain/store), so this is
// the one place that knows about both layers.
func classify(err error) *ActionError {
	var assertion *vm.AssertionError
	if errors.As(err, &assertion) {
		return &ActionError{Kind: KindGuestAssertion, Err: err}
	}
	var precondition *vm.PreconditionError
	if errors.As(err, &precondition) {
		return &ActionError{Kind: KindHostPrecondition, Err: err}
	}
	var fault *vm.MemoryFaultError
	if errors.As(err, &fault) {
		return &ActionError{Kind: KindMemoryFault, Err: err}
	}
	var notImpl *vm.NotImplementedError
	if errors.As(err, &notImpl) {
		return &ActionError{Kind: KindNotImplemented, Err: err}
	}
	return &ActionError{Kind: KindUnknown, Err: err}
}

// errAuthorizationMissing reports a permission level an inline action
// declared that the dispatch loop could not justify: neither the implicit
// (sender, eosio.code) grant, an authorization level already carried down
// from the top-level action, nor the named permission's own weighted
// Authority being satisfied by one of those carried-down levels.
type errAuthorizationMissing struct {
	level  string
	action string
}

func (e errAuthorizationMissing) Error() string {
	return fmt.Sprintf("missing authority of %s for action %s", e.level, e.action)
}
