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

	"github.com/aaroncox/vert/chain"
)

func TestRequireAuthAcceptsActiveOrOwner(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.Action = chain.Action{
		Auth: []chain.PermissionLevel{{Actor: chain.Name(100), Permission: chain.ActivePermission}},
	}
	require.NoError(t, h.RequireAuth(chain.Name(100).AsInt64()))

	ctx.Action = chain.Action{
		Auth: []chain.PermissionLevel{{Actor: chain.Name(100), Permission: chain.OwnerPermission}},
	}
	require.NoError(t, h.RequireAuth(chain.Name(100).AsInt64()))
}

func TestRequireAuthRejectsUndeclaredAccount(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.Action = chain.Action{
		Auth: []chain.PermissionLevel{{Actor: chain.Name(100), Permission: chain.ActivePermission}},
	}
	err := h.RequireAuth(chain.Name(999).AsInt64())
	require.Error(t, err)
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
}

// TestRequireAuthRejectsCustomPermission pins spec.md §8 scenario 5:
// require_auth(acct) with authorization list [{acct, "active"}] succeeds;
// with [{acct, "custom"}] it fails, naming acct in the error.
func TestRequireAuthRejectsCustomPermission(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	acct := chain.Name(100)
	ctx.Action = chain.Action{
		Auth: []chain.PermissionLevel{{Actor: acct, Permission: chain.Name(200) /* "custom" */}},
	}
	err := h.RequireAuth(acct.AsInt64())
	require.Error(t, err)
	require.Contains(t, err.Error(), acct.String())
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
}

func TestRequireAuth2ExactPermissionMustMatch(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.Action = chain.Action{
		Auth: []chain.PermissionLevel{{Actor: chain.Name(100), Permission: chain.Name(200)}},
	}
	require.NoError(t, h.RequireAuth2(chain.Name(100).AsInt64(), chain.Name(200).AsInt64()))
	require.Error(t, h.RequireAuth2(chain.Name(100).AsInt64(), chain.Name(201).AsInt64()))
}

func TestHasAuthDoesNotError(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.Action = chain.Action{
		Auth: []chain.PermissionLevel{{Actor: chain.Name(100), Permission: chain.ActivePermission}},
	}
	require.True(t, h.HasAuth(chain.Name(100).AsInt64()))
	require.False(t, h.HasAuth(chain.Name(101).AsInt64()))
}

func TestHasAuthRejectsCustomPermission(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.Action = chain.Action{
		Auth: []chain.PermissionLevel{{Actor: chain.Name(100), Permission: chain.Name(200)}},
	}
	require.False(t, h.HasAuth(chain.Name(100).AsInt64()))
}

func TestGetSenderIsEmptyWhenNotInline(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.IsInline = false
	require.Equal(t, chain.Empty.AsInt64(), h.GetSender())
}

func TestGetSenderReturnsSenderWhenInline(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.IsInline = true
	ctx.Sender = chain.Name(42)
	require.Equal(t, chain.Name(42).AsInt64(), h.GetSender())
}

// TestGetCodeHashClampsVerbatim pins the spec's deliberately-verbatim
// struct_version = min(0, v) behavior (see DESIGN.md Open Question
// decisions): a positive requested version is clamped down to zero, not up.
func TestGetCodeHashClampsVerbatim(t *testing.T) {
	h, _, bc, _ := newTestEnv()
	bc.CreateAccount(chain.Name(7), 0)
	bc.SetCode(chain.Name(7), []byte("wasm bytes"), 3)

	sv, hash, seq, err := h.GetCodeHash(chain.Name(7).AsInt64(), 5)
	require.NoError(t, err)
	require.EqualValues(t, 0, sv)
	require.EqualValues(t, 3, seq)
	require.NotEqual(t, [32]byte{}, hash)

	sv, _, _, err = h.GetCodeHash(chain.Name(7).AsInt64(), -5)
	require.NoError(t, err)
	require.EqualValues(t, -5, sv)
}

func TestGetCodeHashUnknownAccountErrors(t *testing.T) {
	h, _, _, _ := newTestEnv()
	_, _, _, err := h.GetCodeHash(chain.Name(404).AsInt64(), 0)
	require.Error(t, err)
}

func TestRequireRecipientSkipsSelfAndDedupes(t *testing.T) {
	h, ctx, bc, _ := newTestEnv()
	ctx.Receiver = chain.Name(1)
	ctx.Action = chain.Action{Account: chain.Name(1), Name: chain.Name(2)}
	bc.CreateAccount(chain.Name(2), 0)
	bc.SetCode(chain.Name(2), []byte("x"), 1)

	h.RequireRecipient(chain.Name(1).AsInt64()) // self, ignored
	h.RequireRecipient(chain.Name(2).AsInt64())
	h.RequireRecipient(chain.Name(2).AsInt64()) // duplicate, ignored

	require.Len(t, ctx.PendingNotify, 1)
	require.Equal(t, chain.Name(2), ctx.PendingNotify[0].Receiver)
}

func TestRequireRecipientSkipsAccountWithoutCode(t *testing.T) {
	h, ctx, bc, _ := newTestEnv()
	ctx.Receiver = chain.Name(1)
	bc.CreateAccount(chain.Name(3), 0) // no code installed

	h.RequireRecipient(chain.Name(3).AsInt64())
	require.Empty(t, ctx.PendingNotify)
}

func TestSendInlineDecodesAndEnqueues(t *testing.T) {
	h, ctx, _, _ := newTestEnv()
	ctx.Receiver = chain.Name(55)

	target := uint64(chain.Name(99))
	var payload []byte
	for i := 0; i < 8; i++ {
		payload = append(payload, byte(target>>(8*i)))
	}
	payload = append(payload, []byte("payload")...)
	require.NoError(t, ctx.Memory.WriteBytes(0, payload))

	require.NoError(t, h.SendInline(0, uint32(len(payload))))
	require.Len(t, ctx.PendingInline, 1)
	require.Equal(t, chain.Name(99), ctx.PendingInline[0].Receiver)
	require.Equal(t, chain.Name(55), ctx.PendingInline[0].Sender)
	require.False(t, ctx.PendingInline[0].Notify)
}
