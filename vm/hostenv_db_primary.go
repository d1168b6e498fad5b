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
	"github.com/aaroncox/vert/store"
)

// tableForIterator resolves a cached iterator handle to its Table,
// failing with PreconditionError for an invalid/stale handle.
func (h *HostEnv) tableForIterator(iterator int64) (*store.Table, uint64, error) {
	tableID, kind, pk, ok := h.ctx.IterCache.Get(iterator)
	if !ok || kind != store.IterPrimary {
		return nil, 0, &PreconditionError{Err: store.ErrInvalidIterator}
	}
	t, ok := h.ctx.Store.TableByID(tableID)
	if !ok {
		return nil, 0, &PreconditionError{Err: store.ErrTableNotFound}
	}
	return t, pk, nil
}

func (h *HostEnv) requireOwnTable(t *store.Table) error {
	if t.Code != h.ctx.Receiver {
		return &PreconditionError{Err: errForeignTable{table: t.Name}}
	}
	return nil
}

type errForeignTable struct{ table chain.Name }

func (e errForeignTable) Error() string {
	return "cannot modify another contract's table: " + e.table.String()
}

// DbStoreI64 implements db_store_i64. The table's code is always the
// current receiver: a contract can only create rows in its own tables.
func (h *HostEnv) DbStoreI64(scope, tableName, payer int64, id uint64, dataOffset, dataLen uint32) (int32, error) {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return 0, err
	}
	t := h.ctx.Store.GetOrCreateTable(h.ctx.Receiver, chain.NameFromInt64(scope), chain.NameFromInt64(tableName))
	row, err := t.Insert(id, chain.NameFromInt64(payer), data)
	if err != nil {
		return 0, &PreconditionError{Err: err}
	}
	if h.ctx.Blockchain.Metrics != nil {
		h.ctx.Blockchain.Metrics.RowsStored.Inc()
	}
	handle := h.ctx.IterCache.Add(t, row.PrimaryKey)
	if h.ctx.Blockchain.Metrics != nil {
		h.ctx.Blockchain.Metrics.IteratorHandles.Inc()
	}
	return int32(handle), nil
}

// DbUpdateI64 implements db_update_i64.
func (h *HostEnv) DbUpdateI64(iterator int64, payer int64, dataOffset, dataLen uint32) error {
	t, pk, err := h.tableForIterator(iterator)
	if err != nil {
		return err
	}
	if err := h.requireOwnTable(t); err != nil {
		return err
	}
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	if _, err := t.Update(pk, chain.NameFromInt64(payer), data); err != nil {
		return &PreconditionError{Err: err}
	}
	return nil
}

// DbRemoveI64 implements db_remove_i64.
func (h *HostEnv) DbRemoveI64(iterator int64) error {
	t, pk, err := h.tableForIterator(iterator)
	if err != nil {
		return err
	}
	if err := h.requireOwnTable(t); err != nil {
		return err
	}
	if _, err := t.Remove(pk); err != nil {
		return &PreconditionError{Err: err}
	}
	for k := store.KindU64; k <= store.KindF64; k++ {
		if _, ok := t.SecondaryFindByPK(k, pk); ok {
			_, _ = t.SecondaryRemove(k, pk)
		}
	}
	if h.ctx.Blockchain.Metrics != nil {
		h.ctx.Blockchain.Metrics.RowsRemoved.Inc()
	}
	h.ctx.IterCache.InvalidateRow(t.ID, pk)
	return nil
}

// DbGetI64 implements db_get_i64, using the size idiom.
func (h *HostEnv) DbGetI64(iterator int64, destOffset, destLen uint32) (int32, error) {
	t, pk, err := h.tableForIterator(iterator)
	if err != nil {
		return 0, err
	}
	row, ok := t.Find(pk)
	if !ok {
		return 0, &PreconditionError{Err: store.ErrRowNotFound}
	}
	return h.ctx.Memory.WriteSized(destOffset, destLen, row.Value)
}

// DbNextI64 implements db_next_i64: writes the next row's primary key to
// primaryOffset and returns a handle to it, or returns the table's end
// iterator (and leaves primaryOffset untouched) when iterator names the
// last row.
func (h *HostEnv) DbNextI64(iterator int64, primaryOffset uint32) (int32, error) {
	tableID, kind, pk, ok := h.ctx.IterCache.Get(iterator)
	if ok && kind == store.IterPrimary {
		t, tOK := h.ctx.Store.TableByID(tableID)
		if !tOK {
			return -1, nil
		}
		next, nOK := t.Next(pk)
		if !nOK {
			return int32(h.ctx.IterCache.CacheTable(t, store.IterPrimary)), nil
		}
		if err := h.ctx.Memory.WriteUint64(primaryOffset, next.PrimaryKey); err != nil {
			return 0, err
		}
		return int32(h.ctx.IterCache.Add(t, next.PrimaryKey)), nil
	}
	// iterator may itself be a table's end iterator; next(end) is -1.
	return -1, nil
}

// DbPreviousI64 implements db_previous_i64: previous(end iterator)
// resolves to the table's last row; previous(first row) is -1.
func (h *HostEnv) DbPreviousI64(iterator int64, primaryOffset uint32) (int32, error) {
	if tableID, kind, pk, ok := h.ctx.IterCache.Get(iterator); ok && kind == store.IterPrimary {
		t, tOK := h.ctx.Store.TableByID(tableID)
		if !tOK {
			return -1, nil
		}
		prev, pOK := t.Prev(pk)
		if !pOK {
			return -1, nil
		}
		if err := h.ctx.Memory.WriteUint64(primaryOffset, prev.PrimaryKey); err != nil {
			return 0, err
		}
		return int32(h.ctx.IterCache.Add(t, prev.PrimaryKey)), nil
	}
	if tableID, _, ok := h.ctx.IterCache.TableFromEndIterator(iterator); ok {
		t, tOK := h.ctx.Store.TableByID(tableID)
		if !tOK {
			return -1, nil
		}
		last, lOK := t.Max()
		if !lOK {
			return -1, nil
		}
		if err := h.ctx.Memory.WriteUint64(primaryOffset, last.PrimaryKey); err != nil {
			return 0, err
		}
		return int32(h.ctx.IterCache.Add(t, last.PrimaryKey)), nil
	}
	return -1, nil
}

// DbFindI64 implements db_find_i64: -1 if the table doesn't exist, the
// table's end iterator if the table exists but id isn't found, else a
// handle to the matching row.
func (h *HostEnv) DbFindI64(code, scope, tableName int64, id uint64) int32 {
	t, ok := h.ctx.Store.FindTable(chain.NameFromInt64(code), chain.NameFromInt64(scope), chain.NameFromInt64(tableName))
	if !ok {
		return -1
	}
	row, found := t.Find(id)
	if !found {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterPrimary))
	}
	return int32(h.ctx.IterCache.Add(t, row.PrimaryKey))
}

// DbLowerboundI64 implements db_lowerbound_i64.
func (h *HostEnv) DbLowerboundI64(code, scope, tableName int64, id uint64) int32 {
	t, ok := h.ctx.Store.FindTable(chain.NameFromInt64(code), chain.NameFromInt64(scope), chain.NameFromInt64(tableName))
	if !ok {
		return -1
	}
	row, found := t.LowerBound(id)
	if !found {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterPrimary))
	}
	return int32(h.ctx.IterCache.Add(t, row.PrimaryKey))
}

// DbUpperboundI64 implements db_upperbound_i64.
func (h *HostEnv) DbUpperboundI64(code, scope, tableName int64, id uint64) int32 {
	t, ok := h.ctx.Store.FindTable(chain.NameFromInt64(code), chain.NameFromInt64(scope), chain.NameFromInt64(tableName))
	if !ok {
		return -1
	}
	row, found := t.UpperBound(id)
	if !found {
		return int32(h.ctx.IterCache.CacheTable(t, store.IterPrimary))
	}
	return int32(h.ctx.IterCache.Add(t, row.PrimaryKey))
}

// DbEndI64 implements db_end_i64.
func (h *HostEnv) DbEndI64(code, scope, tableName int64) int32 {
	t, ok := h.ctx.Store.FindTable(chain.NameFromInt64(code), chain.NameFromInt64(scope), chain.NameFromInt64(tableName))
	if !ok {
		return -1
	}
	return int32(h.ctx.IterCache.CacheTable(t, store.IterPrimary))
}
