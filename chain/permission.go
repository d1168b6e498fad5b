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

// Permission is a named permission on an account, e.g. "owner" or "active".
// Parent is the empty Name for a root permission.
type Permission struct {
	Owner     Name
	Name      Name
	Parent    Name
	Authority Authority
}

// PermissionLevel identifies a specific permission of a specific account,
// the unit authorization checks and notifications operate on.
type PermissionLevel struct {
	Actor      Name
	Permission Name
}

func (p PermissionLevel) String() string {
	return p.Actor.String() + "@" + p.Permission.String()
}
