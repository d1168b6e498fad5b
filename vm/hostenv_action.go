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

import "github.com/aaroncox/vert/chain"

// ReadActionData implements read_action_data: copies the current action's
// payload into guest memory using the size idiom.
func (h *HostEnv) ReadActionData(destOffset, destLen uint32) (int32, error) {
	return h.ctx.Memory.WriteSized(destOffset, destLen, h.ctx.Action.Data)
}

// ActionDataSize implements action_data_size.
func (h *HostEnv) ActionDataSize() int32 {
	return int32(len(h.ctx.Action.Data))
}

// CurrentReceiver implements current_receiver.
func (h *HostEnv) CurrentReceiver() int64 {
	return h.ctx.Receiver.AsInt64()
}

// GetSender implements get_sender: returns the empty Name (0) when the
// action is not running as an inline action, matching spec.md §4.5.
func (h *HostEnv) GetSender() int64 {
	if !h.ctx.IsInline {
		return chain.Empty.AsInt64()
	}
	return h.ctx.Sender.AsInt64()
}

// SetActionReturnValue implements set_action_return_value.
func (h *HostEnv) SetActionReturnValue(dataOffset, dataLen uint32) error {
	b, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	h.ctx.ReturnValue = cp
	return nil
}

// RequireAuth implements require_auth: some declared authorization must
// name account under its active or owner permission (spec.md §4.5: "fails
// unless some entry ... has that actor with permission ∈ {active,
// owner}") — a custom permission does not satisfy it, even if declared.
func (h *HostEnv) RequireAuth(account int64) error {
	acctName := chain.NameFromInt64(account)
	for _, auth := range h.ctx.Action.Auth {
		if auth.Actor == acctName && isActiveOrOwner(auth.Permission) {
			return nil
		}
	}
	return &PreconditionError{Err: errAuthMissing{account: acctName}}
}

// RequireAuth2 implements require_auth2: an exact (account, permission)
// pair must be declared, with no active/owner restriction.
func (h *HostEnv) RequireAuth2(account, permission int64) error {
	acctName := chain.NameFromInt64(account)
	permName := chain.NameFromInt64(permission)
	for _, auth := range h.ctx.Action.Auth {
		if auth.Actor == acctName && auth.Permission == permName {
			return nil
		}
	}
	return &PreconditionError{Err: errAuthMissing{account: acctName, permission: permName}}
}

func isActiveOrOwner(p chain.Name) bool {
	return p == chain.ActivePermission || p == chain.OwnerPermission
}

type errAuthMissing struct {
	account, permission chain.Name
}

func (e errAuthMissing) Error() string {
	return "missing required authority of " + e.account.String()
}

// HasAuth implements has_auth: like RequireAuth but reports a bool instead
// of erroring, restricted to the same active/owner permissions.
func (h *HostEnv) HasAuth(account int64) bool {
	acctName := chain.NameFromInt64(account)
	for _, auth := range h.ctx.Action.Auth {
		if auth.Actor == acctName && isActiveOrOwner(auth.Permission) {
			return true
		}
	}
	return false
}

// IsAccount implements is_account.
func (h *HostEnv) IsAccount(account int64) bool {
	_, ok := h.ctx.Blockchain.Account(chain.NameFromInt64(account))
	return ok
}

// GetCodeHash implements get_code_hash. structVersion is specified as
// min(0, v) rather than max(0, v); this looks inverted from the more
// obviously intended "clamp to at least zero" but is preserved verbatim
// per the spec's explicit instruction (see DESIGN.md Open Questions).
func (h *HostEnv) GetCodeHash(account int64, v int64) (structVersion int64, codeHash [32]byte, codeSequence int64, err error) {
	acct, ok := h.ctx.Blockchain.Account(chain.NameFromInt64(account))
	if !ok {
		return 0, [32]byte{}, 0, &PreconditionError{Err: errUnknownAccount{account: chain.NameFromInt64(account)}}
	}
	sv := v
	if sv > 0 {
		sv = 0
	}
	return sv, acct.CodeHash, int64(acct.CodeVersion), nil
}

type errUnknownAccount struct{ account chain.Name }

func (e errUnknownAccount) Error() string { return "unknown account " + e.account.String() }

// GetAccountCreationTime implements get_account_creation_time, returning
// microseconds since epoch.
func (h *HostEnv) GetAccountCreationTime(account int64) (int64, error) {
	acct, ok := h.ctx.Blockchain.Account(chain.NameFromInt64(account))
	if !ok {
		return 0, &PreconditionError{Err: errUnknownAccount{account: chain.NameFromInt64(account)}}
	}
	return acct.CreatedAt, nil
}

// RequireRecipient implements require_recipient.
func (h *HostEnv) RequireRecipient(recipient int64) {
	h.ctx.RequireRecipient(chain.NameFromInt64(recipient))
}

// SendInline implements send_inline.
func (h *HostEnv) SendInline(dataOffset, dataLen uint32) error {
	b, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	act, err := h.ctx.Codec.Decode(b)
	if err != nil {
		return &PreconditionError{Err: err}
	}
	h.ctx.SendInline(act.Account, act)
	return nil
}
