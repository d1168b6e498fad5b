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

package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aaroncox/vert/chain"
	"github.com/aaroncox/vert/vm"
	"github.com/aaroncox/vert/vm/cryptohost"
)

// fakeMemory is a flat byte-slice linear memory, standing in for a WASM
// engine's memory export the same way vm's own test harness does.
type fakeMemory struct{ buf []byte }

func newFakeMemory(size int) *fakeMemory { return &fakeMemory{buf: make([]byte, size)} }

func (m *fakeMemory) Read(offset, length uint32) ([]byte, error) {
	if uint64(offset)+uint64(length) > uint64(len(m.buf)) {
		return nil, errors.New("out of bounds read")
	}
	out := make([]byte, length)
	copy(out, m.buf[offset:offset+length])
	return out, nil
}

func (m *fakeMemory) Write(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(len(m.buf)) {
		return errors.New("out of bounds write")
	}
	copy(m.buf[offset:], data)
	return nil
}

func (m *fakeMemory) Size() uint32 { return uint32(len(m.buf)) }

// fakeCodec decodes send_inline's raw payload as an 8-byte little-endian
// target account Name followed by the action name (8 bytes) and whatever
// remains as Data — enough to drive Context.SendInline from a test
// contract without a real Antelope codec.
type fakeCodec struct{}

func (fakeCodec) Decode(data []byte) (chain.Action, error) {
	if len(data) < 16 {
		return chain.Action{}, errors.New("short inline payload")
	}
	acct := chain.NameFromInt64(int64(leUint64(data[0:8])))
	name := chain.NameFromInt64(int64(leUint64(data[8:16])))
	return chain.Action{Account: acct, Name: name, Data: data[16:]}, nil
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// apply is a test contract's behavior for one apply() invocation.
type apply func(h *vm.HostEnv) error

// fakeModule wires a single apply func into the WasmModule interface.
type fakeModule struct {
	fn apply
}

func (m *fakeModule) NewMemory() vm.GuestMemory { return newFakeMemory(65536) }

func (m *fakeModule) Apply(host *vm.HostEnv, receiver, firstReceiver, action chain.Name) error {
	return m.fn(host)
}

// fakeLoader dispatches by receiver account name to a fixed contract
// behavior, mimicking how a real ModuleLoader would compile per-account
// WASM bytes but letting tests name behavior directly instead.
type fakeLoader struct {
	behaviors map[byte]apply
}

// behaviors is keyed by marker byte rather than account, since Load only
// receives the installed code bytes (not the account name).
func (l *fakeLoader) Load(code []byte) (WasmModule, error) {
	if len(code) != 1 {
		return nil, errors.New("fakeLoader: expected 1-byte behavior marker")
	}
	fn, ok := l.behaviors[code[0]]
	if !ok {
		return nil, errors.New("fakeLoader: unknown behavior marker")
	}
	return &fakeModule{fn: fn}, nil
}

type harness struct {
	t      *testing.T
	chain  *Chain
	loader *fakeLoader
	disp   *Dispatcher
	next   byte
}

func newHarness(t *testing.T) *harness {
	c := NewChain(chain.Options{})
	l := &fakeLoader{behaviors: make(map[byte]apply)}
	d := NewDispatcher(c, l, fakeCodec{}, cryptohost.DefaultProvider{}, chain.Name(0x656f7369 /* placeholder, unused numeric */))
	return &harness{t: t, chain: c, loader: l, disp: d}
}

// registerContract installs an account with fn as its apply behavior.
func (h *harness) registerContract(name chain.Name, fn apply) {
	h.chain.Blockchain.CreateAccount(name, 0)
	h.loader.behaviors[h.next] = fn
	h.chain.Blockchain.SetCode(name, []byte{h.next}, 0)
	h.next++
}

func TestDispatcherTimeScenario(t *testing.T) {
	// spec.md §8 scenario 1: a contract whose apply() prints current_time()
	// in microseconds; the console must reflect whatever clock was set
	// before each top-level dispatch.
	h := newHarness(t)
	const acct = chain.Name(100)
	h.registerContract(acct, func(env *vm.HostEnv) error {
		env.Printi(env.CurrentTime())
		return nil
	})

	for _, tc := range []struct {
		clockMs int64
		want    string
	}{
		{0, "0"},
		{500, "500000"},
		{1000, "1000000"},
	} {
		h.chain.Blockchain.SetClockMillis(tc.clockMs)
		receipt, err := h.disp.Execute(chain.Action{Account: acct, Name: chain.Name(1)})
		require.NoError(t, err)
		require.Equal(t, tc.want, receipt.Console)
	}
}

func TestDispatcherInlineActionObservesSenderAndMutatesStore(t *testing.T) {
	// spec.md §8 scenario 2: a calls send_inline targeting b::foo; after
	// dispatch, b's store mutation is observable and get_sender() inside
	// b::foo returns a's Name.
	h := newHarness(t)
	const a = chain.Name(10)
	const b = chain.Name(20)
	const fooAction = chain.Name(1)

	h.registerContract(b, func(env *vm.HostEnv) error {
		require.Equal(t, a.AsInt64(), env.GetSender())
		_, err := env.DbStoreI64(0, int64(chain.Name(7)), b.AsInt64(), 42, 0, 0)
		return err
	})
	h.registerContract(a, func(env *vm.HostEnv) error {
		payload := make([]byte, 16)
		putLE64(payload[0:8], uint64(b))
		putLE64(payload[8:16], uint64(fooAction))
		return env.SendInline(mustWrite(env, payload), uint32(len(payload)))
	})

	_, err := h.disp.Execute(chain.Action{Account: a, Name: chain.Name(1)})
	require.NoError(t, err)

	tbl, ok := h.chain.Store.FindTable(b, chain.Name(0), chain.Name(7))
	require.True(t, ok)
	row, ok := tbl.Find(42)
	require.True(t, ok)
	require.Equal(t, b, row.Payer)
}

func TestDispatcherEosioExitKeepsStoreWritesDropsQueues(t *testing.T) {
	// spec.md §8 scenario 6: eosio_exit(0) mid-action after one
	// db_store_i64; Dispatcher returns success, the row is present, and
	// no inline queue is drained.
	h := newHarness(t)
	const contractAcct = chain.Name(30)
	const target = chain.Name(31)
	h.registerContract(target, func(env *vm.HostEnv) error {
		t.Fatal("inline target must not run: eosio_exit must drop the queue")
		return nil
	})
	h.registerContract(contractAcct, func(env *vm.HostEnv) error {
		if _, err := env.DbStoreI64(0, int64(chain.Name(9)), contractAcct.AsInt64(), 1, 0, 0); err != nil {
			return err
		}
		payload := make([]byte, 16)
		putLE64(payload[0:8], uint64(target))
		putLE64(payload[8:16], uint64(chain.Name(1)))
		if err := env.SendInline(mustWrite(env, payload), uint32(len(payload))); err != nil {
			return err
		}
		return env.EosioExit(0)
	})

	receipt, err := h.disp.Execute(chain.Action{Account: contractAcct, Name: chain.Name(1)})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	tbl, ok := h.chain.Store.FindTable(contractAcct, chain.Name(0), chain.Name(9))
	require.True(t, ok)
	row, ok := tbl.Find(1)
	require.True(t, ok)
	require.NotNil(t, row)
}

func TestDispatcherGuestAssertionUnwindsAndClassifies(t *testing.T) {
	h := newHarness(t)
	const acct = chain.Name(40)
	h.registerContract(acct, func(env *vm.HostEnv) error {
		return env.EosioAssert(false, 0, 0)
	})

	_, err := h.disp.Execute(chain.Action{Account: acct, Name: chain.Name(1)})
	require.Error(t, err)
	var actionErr *ActionError
	require.True(t, errors.As(err, &actionErr))
	require.Equal(t, KindGuestAssertion, actionErr.Kind)
}

func TestDispatcherUnknownReceiverFails(t *testing.T) {
	h := newHarness(t)
	_, err := h.disp.Execute(chain.Action{Account: chain.Name(999), Name: chain.Name(1)})
	require.Error(t, err)
	var actionErr *ActionError
	require.True(t, errors.As(err, &actionErr))
	require.Equal(t, KindHostPrecondition, actionErr.Kind)
}

func TestDispatcherNotificationFanout(t *testing.T) {
	// require_recipient enqueues at most one notification; the notified
	// contract's Context.IsNotification must be true and its
	// FirstReceiver must still be the originating receiver.
	h := newHarness(t)
	const origin = chain.Name(50)
	const watcher = chain.Name(51)
	notified := false
	h.registerContract(watcher, func(env *vm.HostEnv) error {
		notified = true
		require.True(t, env.Context().IsNotification)
		require.Equal(t, origin, env.Context().FirstReceiver)
		return nil
	})
	h.registerContract(origin, func(env *vm.HostEnv) error {
		env.RequireRecipient(watcher.AsInt64())
		env.RequireRecipient(watcher.AsInt64()) // duplicate, must not re-dispatch
		return nil
	})

	_, err := h.disp.Execute(chain.Action{Account: origin, Name: chain.Name(1)})
	require.NoError(t, err)
	require.True(t, notified)
}

func putLE64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

// mustWrite copies payload into the contract's own linear memory at
// offset 0 and returns that offset, for tests that need to stage bytes
// before calling a HostEnv method that reads them back out of memory.
func mustWrite(env *vm.HostEnv, payload []byte) uint32 {
	if err := env.Context().Memory.WriteBytes(0, payload); err != nil {
		panic(err)
	}
	return 0
}
