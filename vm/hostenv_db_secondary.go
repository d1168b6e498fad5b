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
	"github.com/aaroncox/vert/chain"
	"github.com/aaroncox/vert/chain/math128"
	"github.com/aaroncox/vert/store"
)

// One generic engine backs all four secondary-index intrinsic groups
// (idx64/idx128/idx256/idxDouble), per spec.md §9's "tagged-variant
// SecondaryKey + single generic index implementation" preference. Each
// exported DbIdx64*/DbIdx128*/DbIdx256*/DbIdxDouble* method below is a
// thin wrapper translating between the ABI's per-kind key encoding and a
// store.SecondaryKey before calling into this engine.

func (h *HostEnv) idxTableForIterator(iterator int64, kind store.SecondaryKind) (*store.Table, uint64, error) {
	tableID, ik, pk, ok := h.ctx.IterCache.Get(iterator)
	if !ok || ik != store.IterKind(kind)+store.IterU64 {
		return nil, 0, &PreconditionError{Err: store.ErrInvalidIterator}
	}
	t, ok := h.ctx.Store.TableByID(tableID)
	if !ok {
		return nil, 0, &PreconditionError{Err: store.ErrTableNotFound}
	}
	return t, pk, nil
}

func (h *HostEnv) idxStore(kind store.SecondaryKind, scope, tableName, payer int64, pk uint64, key store.SecondaryKey) (int32, error) {
	t := h.ctx.Store.GetOrCreateTable(h.ctx.Receiver, chain.NameFromInt64(scope), chain.NameFromInt64(tableName))
	_, err := t.SecondaryStore(kind, pk, chain.NameFromInt64(payer), key)
	if err != nil {
		return 0, &PreconditionError{Err: err}
	}
	return int32(h.ctx.IterCache.AddSecondary(t, kind, pk)), nil
}

func (h *HostEnv) idxUpdate(kind store.SecondaryKind, iterator, payer int64, key store.SecondaryKey) error {
	t, pk, err := h.idxTableForIterator(iterator, kind)
	if err != nil {
		return err
	}
	if err := h.requireOwnTable(t); err != nil {
		return err
	}
	if _, err := t.SecondaryUpdate(kind, pk, chain.NameFromInt64(payer), key); err != nil {
		return &PreconditionError{Err: err}
	}
	return nil
}

func (h *HostEnv) idxRemove(kind store.SecondaryKind, iterator int64) error {
	t, pk, err := h.idxTableForIterator(iterator, kind)
	if err != nil {
		return err
	}
	if err := h.requireOwnTable(t); err != nil {
		return err
	}
	if _, err := t.SecondaryRemove(kind, pk); err != nil {
		return &PreconditionError{Err: err}
	}
	h.ctx.IterCache.Remove(iterator)
	return nil
}

func (h *HostEnv) idxFindTable(kind store.SecondaryKind, code, scope, tableName int64) (*store.Table, bool) {
	return h.ctx.Store.FindTable(chain.NameFromInt64(code), chain.NameFromInt64(scope), chain.NameFromInt64(tableName))
}

func (h *HostEnv) idxFindSecondary(kind store.SecondaryKind, code, scope, tableName int64, key store.SecondaryKey) (iterator int32, pk uint64) {
	t, ok := h.idxFindTable(kind, code, scope, tableName)
	if !ok {
		return -1, 0
	}
	e, found := t.SecondaryFindExact(kind, key)
	if !found {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterKind(kind)+store.IterU64)), 0
	}
	return int32(h.ctx.IterCache.AddSecondary(t, kind, e.PrimaryKey)), e.PrimaryKey
}

func (h *HostEnv) idxFindPrimary(kind store.SecondaryKind, code, scope, tableName int64, pk uint64) (iterator int32, key store.SecondaryKey, ok bool) {
	t, tOK := h.idxFindTable(kind, code, scope, tableName)
	if !tOK {
		return -1, store.SecondaryKey{}, false
	}
	e, found := t.SecondaryFindByPK(kind, pk)
	if !found {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterKind(kind)+store.IterU64)), store.SecondaryKey{}, false
	}
	return int32(h.ctx.IterCache.AddSecondary(t, kind, pk)), e.Secondary, true
}

func (h *HostEnv) idxLowerbound(kind store.SecondaryKind, code, scope, tableName int64, key store.SecondaryKey) (iterator int32, pk uint64, out store.SecondaryKey) {
	t, ok := h.idxFindTable(kind, code, scope, tableName)
	if !ok {
		return -1, 0, store.SecondaryKey{}
	}
	e, found := t.SecondaryLowerBound(kind, key)
	if !found {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterKind(kind)+store.IterU64)), 0, store.SecondaryKey{}
	}
	return int32(h.ctx.IterCache.AddSecondary(t, kind, e.PrimaryKey)), e.PrimaryKey, e.Secondary
}

func (h *HostEnv) idxUpperbound(kind store.SecondaryKind, code, scope, tableName int64, key store.SecondaryKey) (iterator int32, pk uint64, out store.SecondaryKey) {
	t, ok := h.idxFindTable(kind, code, scope, tableName)
	if !ok {
		return -1, 0, store.SecondaryKey{}
	}
	e, found := t.SecondaryUpperBound(kind, key)
	if !found {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterKind(kind)+store.IterU64)), 0, store.SecondaryKey{}
	}
	return int32(h.ctx.IterCache.AddSecondary(t, kind, e.PrimaryKey)), e.PrimaryKey, e.Secondary
}

func (h *HostEnv) idxEnd(kind store.SecondaryKind, code, scope, tableName int64) int32 {
	t, ok := h.idxFindTable(kind, code, scope, tableName)
	if !ok {
		return -1
	}
	return int32(h.ctx.IterCache.CacheTable(t, store.IterKind(kind)+store.IterU64))
}

func (h *HostEnv) idxNext(kind store.SecondaryKind, iterator int64) (int32, uint64, bool) {
	tableID, ik, pk, ok := h.ctx.IterCache.Get(iterator)
	if !ok || ik != store.IterKind(kind)+store.IterU64 {
		return -1, 0, false
	}
	t, tOK := h.ctx.Store.TableByID(tableID)
	if !tOK {
		return -1, 0, false
	}
	next, nOK := t.SecondaryNext(kind, pk)
	if !nOK {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterKind(kind)+store.IterU64)), 0, false
	}
	return int32(h.ctx.IterCache.AddSecondary(t, kind, next.PrimaryKey)), next.PrimaryKey, true
}

func (h *HostEnv) idxPrevious(kind store.SecondaryKind, iterator int64) (int32, uint64, bool) {
	if tableID, ik, pk, ok := h.ctx.IterCache.Get(iterator); ok && ik == store.IterKind(kind)+store.IterU64 {
		t, tOK := h.ctx.Store.TableByID(tableID)
		if !tOK {
			return -1, 0, false
		}
		prev, pOK := t.SecondaryPrev(kind, pk)
		if !pOK {
			return -1, 0, false
		}
		return int32(h.ctx.IterCache.AddSecondary(t, kind, prev.PrimaryKey)), prev.PrimaryKey, true
	}
	if tableID, _, ok := h.ctx.IterCache.TableFromEndIterator(iterator); ok {
		t, tOK := h.ctx.Store.TableByID(tableID)
		if !tOK {
			return -1, 0, false
		}
		last, lOK := t.SecondaryMax(kind)
		if !lOK {
			return -1, 0, false
		}
		return int32(h.ctx.IterCache.AddSecondary(t, kind, last.PrimaryKey)), last.PrimaryKey, true
	}
	return -1, 0, false
}

// --- db_idx64_* ---

func (h *HostEnv) DbIdx64Store(scope, tableName, payer int64, pk uint64, secondary uint64) (int32, error) {
	return h.idxStore(store.KindU64, scope, tableName, payer, pk, store.NewU64Key(secondary))
}

func (h *HostEnv) DbIdx64Update(iterator, payer int64, secondary uint64) error {
	return h.idxUpdate(store.KindU64, iterator, payer, store.NewU64Key(secondary))
}

func (h *HostEnv) DbIdx64Remove(iterator int64) error {
	return h.idxRemove(store.KindU64, iterator)
}

func (h *HostEnv) DbIdx64FindSecondary(code, scope, tableName int64, secondary uint64) (int32, uint64) {
	return h.idxFindSecondary(store.KindU64, code, scope, tableName, store.NewU64Key(secondary))
}

func (h *HostEnv) DbIdx64FindPrimary(code, scope, tableName int64, pk uint64) (int32, uint64, bool) {
	it, key, ok := h.idxFindPrimary(store.KindU64, code, scope, tableName, pk)
	return it, key.U64, ok
}

func (h *HostEnv) DbIdx64Lowerbound(code, scope, tableName int64, secondary uint64) (int32, uint64, uint64) {
	it, pk, key := h.idxLowerbound(store.KindU64, code, scope, tableName, store.NewU64Key(secondary))
	return it, pk, key.U64
}

func (h *HostEnv) DbIdx64Upperbound(code, scope, tableName int64, secondary uint64) (int32, uint64, uint64) {
	it, pk, key := h.idxUpperbound(store.KindU64, code, scope, tableName, store.NewU64Key(secondary))
	return it, pk, key.U64
}

func (h *HostEnv) DbIdx64End(code, scope, tableName int64) int32 {
	return h.idxEnd(store.KindU64, code, scope, tableName)
}

func (h *HostEnv) DbIdx64Next(iterator int64) (int32, uint64, bool) {
	return h.idxNext(store.KindU64, iterator)
}

func (h *HostEnv) DbIdx64Previous(iterator int64) (int32, uint64, bool) {
	return h.idxPrevious(store.KindU64, iterator)
}

// --- db_idx128_* ---

func (h *HostEnv) DbIdx128Store(scope, tableName, payer int64, pk uint64, secondary math128.U128) (int32, error) {
	return h.idxStore(store.KindU128, scope, tableName, payer, pk, store.NewU128Key(secondary))
}

func (h *HostEnv) DbIdx128Update(iterator, payer int64, secondary math128.U128) error {
	return h.idxUpdate(store.KindU128, iterator, payer, store.NewU128Key(secondary))
}

func (h *HostEnv) DbIdx128Remove(iterator int64) error {
	return h.idxRemove(store.KindU128, iterator)
}

func (h *HostEnv) DbIdx128FindSecondary(code, scope, tableName int64, secondary math128.U128) (int32, uint64) {
	return h.idxFindSecondary(store.KindU128, code, scope, tableName, store.NewU128Key(secondary))
}

func (h *HostEnv) DbIdx128FindPrimary(code, scope, tableName int64, pk uint64) (int32, math128.U128, bool) {
	it, key, ok := h.idxFindPrimary(store.KindU128, code, scope, tableName, pk)
	return it, key.U128, ok
}

func (h *HostEnv) DbIdx128Lowerbound(code, scope, tableName int64, secondary math128.U128) (int32, uint64, math128.U128) {
	it, pk, key := h.idxLowerbound(store.KindU128, code, scope, tableName, store.NewU128Key(secondary))
	return it, pk, key.U128
}

func (h *HostEnv) DbIdx128Upperbound(code, scope, tableName int64, secondary math128.U128) (int32, uint64, math128.U128) {
	it, pk, key := h.idxUpperbound(store.KindU128, code, scope, tableName, store.NewU128Key(secondary))
	return it, pk, key.U128
}

func (h *HostEnv) DbIdx128End(code, scope, tableName int64) int32 {
	return h.idxEnd(store.KindU128, code, scope, tableName)
}

func (h *HostEnv) DbIdx128Next(iterator int64) (int32, uint64, bool) {
	return h.idxNext(store.KindU128, iterator)
}

func (h *HostEnv) DbIdx128Previous(iterator int64) (int32, uint64, bool) {
	return h.idxPrevious(store.KindU128, iterator)
}

// --- db_idx256_* ---

func (h *HostEnv) DbIdx256Store(scope, tableName, payer int64, pk uint64, secondary [32]byte) (int32, error) {
	return h.idxStore(store.KindChecksum256, scope, tableName, payer, pk, store.NewChecksum256Key(secondary))
}

func (h *HostEnv) DbIdx256Update(iterator, payer int64, secondary [32]byte) error {
	return h.idxUpdate(store.KindChecksum256, iterator, payer, store.NewChecksum256Key(secondary))
}

func (h *HostEnv) DbIdx256Remove(iterator int64) error {
	return h.idxRemove(store.KindChecksum256, iterator)
}

func (h *HostEnv) DbIdx256FindSecondary(code, scope, tableName int64, secondary [32]byte) (int32, uint64) {
	return h.idxFindSecondary(store.KindChecksum256, code, scope, tableName, store.NewChecksum256Key(secondary))
}

func (h *HostEnv) DbIdx256FindPrimary(code, scope, tableName int64, pk uint64) (int32, [32]byte, bool) {
	it, key, ok := h.idxFindPrimary(store.KindChecksum256, code, scope, tableName, pk)
	return it, key.ToChecksum256(), ok
}

func (h *HostEnv) DbIdx256Lowerbound(code, scope, tableName int64, secondary [32]byte) (int32, uint64, [32]byte) {
	it, pk, key := h.idxLowerbound(store.KindChecksum256, code, scope, tableName, store.NewChecksum256Key(secondary))
	return it, pk, key.ToChecksum256()
}

func (h *HostEnv) DbIdx256Upperbound(code, scope, tableName int64, secondary [32]byte) (int32, uint64, [32]byte) {
	it, pk, key := h.idxUpperbound(store.KindChecksum256, code, scope, tableName, store.NewChecksum256Key(secondary))
	return it, pk, key.ToChecksum256()
}

func (h *HostEnv) DbIdx256End(code, scope, tableName int64) int32 {
	return h.idxEnd(store.KindChecksum256, code, scope, tableName)
}

func (h *HostEnv) DbIdx256Next(iterator int64) (int32, uint64, bool) {
	return h.idxNext(store.KindChecksum256, iterator)
}

func (h *HostEnv) DbIdx256Previous(iterator int64) (int32, uint64, bool) {
	return h.idxPrevious(store.KindChecksum256, iterator)
}

// --- db_idx_double_* ---

func (h *HostEnv) DbIdxDoubleStore(scope, tableName, payer int64, pk uint64, secondary float64) (int32, error) {
	return h.idxStore(store.KindF64, scope, tableName, payer, pk, store.NewF64Key(secondary))
}

func (h *HostEnv) DbIdxDoubleUpdate(iterator, payer int64, secondary float64) error {
	return h.idxUpdate(store.KindF64, iterator, payer, store.NewF64Key(secondary))
}

func (h *HostEnv) DbIdxDoubleRemove(iterator int64) error {
	return h.idxRemove(store.KindF64, iterator)
}

func (h *HostEnv) DbIdxDoubleFindSecondary(code, scope, tableName int64, secondary float64) (int32, uint64) {
	return h.idxFindSecondary(store.KindF64, code, scope, tableName, store.NewF64Key(secondary))
}

func (h *HostEnv) DbIdxDoubleFindPrimary(code, scope, tableName int64, pk uint64) (int32, float64, bool) {
	it, key, ok := h.idxFindPrimary(store.KindF64, code, scope, tableName, pk)
	return it, key.ToF64(), ok
}

func (h *HostEnv) DbIdxDoubleLowerbound(code, scope, tableName int64, secondary float64) (int32, uint64, float64) {
	it, pk, key := h.idxLowerbound(store.KindF64, code, scope, tableName, store.NewF64Key(secondary))
	return it, pk, key.ToF64()
}

func (h *HostEnv) DbIdxDoubleUpperbound(code, scope, tableName int64, secondary float64) (int32, uint64, float64) {
	it, pk, key := h.idxUpperbound(store.KindF64, code, scope, tableName, store.NewF64Key(secondary))
	return it, pk, key.ToF64()
}

func (h *HostEnv) DbIdxDoubleEnd(code, scope, tableName int64) int32 {
	return h.idxEnd(store.KindF64, code, scope, tableName)
}

func (h *HostEnv) DbIdxDoubleNext(iterator int64) (int32, uint64, bool) {
	return h.idxNext(store.KindF64, iterator)
}

func (h *HostEnv) DbIdxDoublePrevious(iterator int64) (int32, uint64, bool) {
	return h.idxPrevious(store.KindF64, iterator)
}
