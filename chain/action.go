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

// Action is a single action invocation: an account, an action name, a set
// of authorizations and opaque payload data. It is the unit the Dispatcher
// schedules, whether the top-level action, a queued notification, or a
// queued inline action.
//
// Action lives in the base chain package (rather than dispatch, which
// would be the more obvious home) because both vm.Context, which produces
// pending inline/notification actions from host-intrinsic calls, and
// dispatch.Dispatcher, which consumes them, need a shared concrete type
// without either package importing the other.
type Action struct {
	Account Name
	Name    Name
	Auth    []PermissionLevel
	Data    []byte
}

// HasAuth reports whether level appears verbatim among the action's
// declared authorizations.
func (a Action) HasAuth(level PermissionLevel) bool {
	for _, l := range a.Auth {
		if l == level {
			return true
		}
	}
	return false
}

// PendingAction is an Action queued for later dispatch, tagged with the
// sender/receiver context it must run under. Notification and inline
// actions both use this shape; Notify distinguishes a require_recipient
// notification (Action name is unchanged, only the receiver differs and
// the guest export called is a no-op-tolerant notification handler) from
// a genuine send_inline (the Action, receiver and sender may all differ).
type PendingAction struct {
	Action        Action
	Sender        Name
	Receiver      Name
	FirstReceiver Name
	Notify        bool
}
