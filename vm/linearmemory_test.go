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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSizedZeroLengthReportsSizeOnly(t *testing.T) {
	mem := NewLinearMemoryView(newFakeMemory(64))
	n, err := mem.WriteSized(0, 0, []byte("hello world"))
	require.NoError(t, err)
	require.EqualValues(t, 11, n)
	b, err := mem.ReadBytes(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestWriteSizedTruncatesButReportsFullLength(t *testing.T) {
	mem := NewLinearMemoryView(newFakeMemory(64))
	n, err := mem.WriteSized(0, 4, []byte("hello world"))
	require.NoError(t, err)
	require.EqualValues(t, 11, n)
	b, err := mem.ReadBytes(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte("hell"), b)
}

func TestReadWriteRoundTripsUint64(t *testing.T) {
	mem := NewLinearMemoryView(newFakeMemory(64))
	require.NoError(t, mem.WriteUint64(8, 0xdeadbeefcafe))
	v, err := mem.ReadUint64(8)
	require.NoError(t, err)
	require.EqualValues(t, 0xdeadbeefcafe, v)
}

func TestReadBytesOutOfBoundsIsMemoryFault(t *testing.T) {
	mem := NewLinearMemoryView(newFakeMemory(8))
	_, err := mem.ReadBytes(4, 100)
	require.Error(t, err)
	var fault *MemoryFaultError
	require.ErrorAs(t, err, &fault)
}
