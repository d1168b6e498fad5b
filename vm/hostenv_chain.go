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

// CurrentTime implements current_time, returning microseconds since
// epoch.
func (h *HostEnv) CurrentTime() int64 {
	return h.ctx.Blockchain.CurrentTimeMicros()
}

// IsFeatureActivated implements is_feature_activated.
func (h *HostEnv) IsFeatureActivated(name string) bool {
	return h.ctx.Blockchain.IsFeatureActivated(name)
}

// GetBlockNum implements get_block_num: the current block height, read
// from the same kind of externally-injected source current_time reads
// its clock from (spec.md §1 treats "block time and block number
// sources" as an external collaborator; this core only consumes the
// value, via Blockchain.SetBlockNum/BlockNum, the same shape as
// Blockchain.SetClockMillis/CurrentTimeMicros).
func (h *HostEnv) GetBlockNum() (int64, error) {
	return int64(h.ctx.Blockchain.BlockNum()), nil
}

// The following intrinsics remain deliberate traps per spec.md §6: block
// production, deferred transactions, context-free data and chain
// parameter mutation are all out of this core's scope (spec.md §1
// Non-goals), so rather than fabricate plausible-looking values this core
// traps loudly, the same way the long-double/shift helpers do.
//
// read_transaction/transaction_size/tapos_*/expiration/get_action all
// read back an ambient Transaction (the encoded transaction the current
// action is part of) that this core does not model anywhere — there is
// no Transaction type, no decoder for it, and no field on Context a
// Dispatcher could populate one from, unlike current_time/get_block_num
// which read a single injected scalar. Modeling it properly would mean
// either absorbing the Antelope transaction codec (explicitly an
// external collaborator, spec.md §1) or inventing a parallel ad hoc
// encoding neither the ABI nor any contract would recognize; both are
// out of scope for this core, so these six stay traps rather than
// return a fabricated or partial encoding a contract could silently
// misread as real transaction data.

func (h *HostEnv) ReadTransaction(destOffset, destLen uint32) (int32, error) {
	return 0, &NotImplementedError{Name: "read_transaction"}
}

func (h *HostEnv) TransactionSize() (int32, error) {
	return 0, &NotImplementedError{Name: "transaction_size"}
}

func (h *HostEnv) TaposBlockNum() (int32, error) {
	return 0, &NotImplementedError{Name: "tapos_block_num"}
}

func (h *HostEnv) TaposBlockPrefix() (int32, error) {
	return 0, &NotImplementedError{Name: "tapos_block_prefix"}
}

func (h *HostEnv) Expiration() (int32, error) {
	return 0, &NotImplementedError{Name: "expiration"}
}

func (h *HostEnv) GetAction(typ, index uint32, destOffset, destLen uint32) (int32, error) {
	return 0, &NotImplementedError{Name: "get_action"}
}

func (h *HostEnv) SendContextFreeInline() error {
	return &NotImplementedError{Name: "send_context_free_inline"}
}

func (h *HostEnv) PublicationTime() (int64, error) {
	return 0, &NotImplementedError{Name: "publication_time"}
}

func (h *HostEnv) GetActiveProducers(destOffset, destLen uint32) (int32, error) {
	return 0, &NotImplementedError{Name: "get_active_producers"}
}

func (h *HostEnv) CheckTransactionAuthorization() (int32, error) {
	return 0, &NotImplementedError{Name: "check_transaction_authorization"}
}

func (h *HostEnv) CheckPermissionAuthorization() (int32, error) {
	return 0, &NotImplementedError{Name: "check_permission_authorization"}
}

func (h *HostEnv) GetPermissionLastUsed() (int64, error) {
	return 0, &NotImplementedError{Name: "get_permission_last_used"}
}

func (h *HostEnv) SetProposedProducers() (int64, error) {
	return 0, &NotImplementedError{Name: "set_proposed_producers"}
}

func (h *HostEnv) SetBlockchainParametersPacked() error {
	return &NotImplementedError{Name: "set_blockchain_parameters_packed"}
}

func (h *HostEnv) GetBlockchainParametersPacked(destOffset, destLen uint32) (int32, error) {
	return 0, &NotImplementedError{Name: "get_blockchain_parameters_packed"}
}

func (h *HostEnv) SendDeferred() error {
	return &NotImplementedError{Name: "send_deferred"}
}

func (h *HostEnv) CancelDeferred() (int32, error) {
	return 0, &NotImplementedError{Name: "cancel_deferred"}
}

func (h *HostEnv) GetContextFreeData(index uint32, destOffset, destLen uint32) (int32, error) {
	return 0, &NotImplementedError{Name: "get_context_free_data"}
}
