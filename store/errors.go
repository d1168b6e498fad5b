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

package store

import "github.com/pkg/errors"

// Sentinel errors for the host-precondition failures spec.md §7 lists:
// payer zero on insert, duplicate primary key, row/table not found, and a
// stale or out-of-range iterator handle. vm.HostEnv wraps these in
// vm.PreconditionError, which dispatch classifies as KindHostPrecondition.
var (
	ErrZeroPayer       = errors.New("store: payer must not be the empty name")
	ErrDuplicateKey    = errors.New("store: primary key already exists")
	ErrRowNotFound     = errors.New("store: row not found")
	ErrTableNotFound   = errors.New("store: table not found")
	ErrInvalidIterator = errors.New("store: invalid iterator handle")
	ErrSecondaryExists = errors.New("store: secondary key already exists")
)
