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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockchainClockScenario(t *testing.T) {
	bc := New(Options{})

	bc.SetClockMillis(0)
	require.Equal(t, int64(0), bc.CurrentTimeMicros())

	bc.SetClockMillis(500)
	require.Equal(t, int64(500000), bc.CurrentTimeMicros())

	bc.SetClockMillis(1000)
	require.Equal(t, int64(1000000), bc.CurrentTimeMicros())
}

func TestBlockchainConsoleOutput(t *testing.T) {
	bc := New(Options{})
	bc.AppendConsole("hello")
	bc.AppendConsole(" world")
	require.Equal(t, "hello world", bc.ConsoleOutput())

	bc.ResetConsole()
	require.Equal(t, "", bc.ConsoleOutput())
}

func TestBlockchainAccountCodeHash(t *testing.T) {
	bc := New(Options{})
	bc.CreateAccount(Name(1), 0)

	a, ok := bc.Account(Name(1))
	require.True(t, ok)
	require.Equal(t, [32]byte{}, a.CodeHash)
	require.False(t, a.HasCode())

	bc.SetCode(Name(1), []byte("(module)"), 0)
	a, _ = bc.Account(Name(1))
	require.True(t, a.HasCode())
	require.NotEqual(t, [32]byte{}, a.CodeHash)
}

func TestAuthoritySatisfiesThreshold(t *testing.T) {
	var auth Authority
	auth.Threshold = 2
	level := PermissionLevel{Actor: Name(10), Permission: Name(20)}
	auth.AddAccount(level, 1)

	require.False(t, auth.Satisfies(level))

	auth.AddAccount(level, 1)
	require.True(t, auth.Satisfies(level))
}

func TestBlockchainBlockNum(t *testing.T) {
	bc := New(Options{BlockNum: 5})
	require.EqualValues(t, 5, bc.BlockNum())

	bc.SetBlockNum(10)
	require.EqualValues(t, 10, bc.BlockNum())
}

func TestFeatureActivation(t *testing.T) {
	bc := New(Options{})
	require.False(t, bc.IsFeatureActivated("FOO"))
	bc.ActivateFeature("FOO")
	require.True(t, bc.IsFeatureActivated("FOO"))
}

func TestBlockchainReset(t *testing.T) {
	bc := New(Options{})
	bc.CreateAccount(Name(1), 0)
	bc.SetClockMillis(42)
	bc.SetBlockNum(7)
	bc.AppendConsole("x")
	bc.ActivateFeature("FOO")

	bc.Reset()

	_, ok := bc.Account(Name(1))
	require.False(t, ok)
	require.Equal(t, int64(0), bc.CurrentTimeMicros())
	require.EqualValues(t, 0, bc.BlockNum())
	require.Equal(t, "", bc.ConsoleOutput())
	require.False(t, bc.IsFeatureActivated("FOO"))
}
