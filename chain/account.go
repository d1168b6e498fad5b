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

// Account is a registered contract/user identity. CodeHash is the SHA-256
// of the account's installed WASM module, or the zero hash if no code is
// set (get_code_hash returns the latter case as 32 zero bytes).
type Account struct {
	Name        Name
	CreatedAt   int64 // microseconds since epoch, see Blockchain.CurrentTimeMicros
	Code        []byte
	CodeHash    [32]byte
	CodeVersion uint32
	Permissions map[Name]*Permission
}

// HasCode reports whether the account has installed WASM code.
func (a *Account) HasCode() bool {
	return len(a.Code) > 0
}

// Permission looks up a named permission (e.g. "owner", "active").
func (a *Account) Permission(name Name) (*Permission, bool) {
	p, ok := a.Permissions[name]
	return p, ok
}
