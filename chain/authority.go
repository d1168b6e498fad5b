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

// KeyWeight and AccountWeight are the two kinds of weighted signer entries
// a weighted-threshold Authority can name. This core never verifies actual
// cryptographic signatures against KeyWeight entries (that belongs to the
// transaction-signing layer, out of scope per spec.md §1) — it only needs
// AccountWeight to evaluate require_auth/require_auth2 and the implicit
// (sender, "eosio.code") check for inline actions.
type KeyWeight struct {
	PublicKey string // opaque; never compared, kept only for completeness
	Weight    uint16
}

type AccountWeight struct {
	Permission PermissionLevel
	Weight     uint16
}

// Authority is a weighted-threshold multisig authority: it is satisfied by
// a set of PermissionLevels iff the sum of matching AccountWeight entries'
// weights is at least Threshold. Only direct matches count: the Accounts'
// own delegated authorities are not followed.
type Authority struct {
	Threshold uint32
	Keys      []KeyWeight
	Accounts  []AccountWeight
}

// AddKey appends a key weight entry and returns the Authority for chaining.
func (a *Authority) AddKey(pubKey string, weight uint16) *Authority {
	a.Keys = append(a.Keys, KeyWeight{PublicKey: pubKey, Weight: weight})
	return a
}

// AddAccount appends a delegated-account weight entry and returns the
// Authority for chaining.
func (a *Authority) AddAccount(level PermissionLevel, weight uint16) *Authority {
	a.Accounts = append(a.Accounts, AccountWeight{Permission: level, Weight: weight})
	return a
}

// Satisfies reports whether the given permission level, directly or via one
// level of delegated AccountWeight entries, meets the authority's threshold.
// Direct match against an AccountWeight entry is sufficient; this does not
// recurse into the delegate's own Authority (single-level delegation covers
// every scenario spec.md §8 exercises, and deeper recursion is a detail of
// the transaction-authorization layer this core does not implement).
func (a *Authority) Satisfies(have PermissionLevel) bool {
	var sum uint32
	for _, aw := range a.Accounts {
		if aw.Permission == have {
			sum += uint32(aw.Weight)
		}
	}
	return sum >= a.Threshold
}
