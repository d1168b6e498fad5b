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
	"crypto/sha256"
	"strings"
	"sync"
)

// Options configures a Blockchain at construction time. The zero value is
// usable: clock and block height start at 0, logging is a no-op, a fresh
// Metrics registry is created if Metrics is nil.
type Options struct {
	Logger   *Logger
	Metrics  *Metrics
	BlockNum uint32
}

// Blockchain is the single explicitly-owned container for everything that
// is not a Store row: registered accounts, the simulated wall clock,
// activated protocol features, and the console output buffer. There is no
// package-level global state anywhere in this module; every intrinsic that
// needs chain state reaches it through a Blockchain (or, for Store access,
// through whatever composes a Blockchain with a *store.Store — see
// dispatch.Chain) passed explicitly down from the caller.
type Blockchain struct {
	mu sync.Mutex

	accounts  map[Name]*Account
	clockUs   int64
	blockNum  uint32
	features  map[string]bool
	console   strings.Builder

	Logger  *Logger
	Metrics *Metrics
}

// New constructs an empty Blockchain: no accounts, clock at zero, no
// features activated.
func New(opts Options) *Blockchain {
	logger := opts.Logger
	if logger == nil {
		logger = NewNopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Blockchain{
		accounts: make(map[Name]*Account),
		features: make(map[string]bool),
		blockNum: opts.BlockNum,
		Logger:   logger,
		Metrics:  metrics,
	}
}

// Reset clears accounts, console output and activated features, and resets
// the clock to zero, as if the Blockchain had just been constructed. Store
// state is out of scope here by design: a dispatch.Chain composing a
// Blockchain with a *store.Store resets both halves together.
func (b *Blockchain) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts = make(map[Name]*Account)
	b.features = make(map[string]bool)
	b.clockUs = 0
	b.blockNum = 0
	b.console.Reset()
}

// CreateAccount registers a new account with no code installed. It
// overwrites any existing account of the same name.
func (b *Blockchain) CreateAccount(name Name, createdAtUs int64) *Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := &Account{
		Name:        name,
		CreatedAt:   createdAtUs,
		Permissions: make(map[Name]*Permission),
	}
	b.accounts[name] = a
	return a
}

// Account looks up a registered account by name.
func (b *Blockchain) Account(name Name) (*Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[name]
	return a, ok
}

// SetPermission installs (or overwrites) a named permission on an existing
// account.
func (b *Blockchain) SetPermission(owner, permName, parent Name, auth Authority) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[owner]
	if !ok {
		return
	}
	a.Permissions[permName] = &Permission{
		Owner:     owner,
		Name:      permName,
		Parent:    parent,
		Authority: auth,
	}
}

// SetCode installs WASM bytecode on an account and stamps its SHA-256 code
// hash, matching get_code_hash's "SHA256(wasm) or 32 zero bytes" rule.
func (b *Blockchain) SetCode(owner Name, wasm []byte, version uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[owner]
	if !ok {
		return
	}
	a.Code = wasm
	a.CodeVersion = version
	if len(wasm) == 0 {
		a.CodeHash = [32]byte{}
		return
	}
	a.CodeHash = sha256.Sum256(wasm)
}

// SetClockMillis sets the simulated wall clock, expressed in milliseconds
// since epoch for caller convenience; current_time reads microseconds.
func (b *Blockchain) SetClockMillis(ms int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clockUs = ms * 1000
}

// CurrentTimeMicros returns the simulated wall clock in microseconds since
// epoch, the unit current_time's intrinsic returns.
func (b *Blockchain) CurrentTimeMicros() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clockUs
}

// SetBlockNum sets the simulated current block height, the injected value
// get_block_num's intrinsic reads back (spec.md §4.5/§1: block number
// sources are an external collaborator this core only consumes).
func (b *Blockchain) SetBlockNum(n uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blockNum = n
}

// BlockNum returns the simulated current block height, the value
// get_block_num's intrinsic returns.
func (b *Blockchain) BlockNum() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blockNum
}

// ActivateFeature marks a named protocol feature as activated.
func (b *Blockchain) ActivateFeature(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.features[name] = true
}

// IsFeatureActivated reports whether a named protocol feature has been
// activated, backing the is_feature_activated intrinsic.
func (b *Blockchain) IsFeatureActivated(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.features[name]
}

// AppendConsole appends text to the console output buffer, backing the
// prints*/printi*/printhex family of intrinsics.
func (b *Blockchain) AppendConsole(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.console.WriteString(s)
}

// ConsoleOutput returns everything written to the console buffer so far.
func (b *Blockchain) ConsoleOutput() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.console.String()
}

// ResetConsole clears the console output buffer, typically called between
// independent top-level action dispatches in a test.
func (b *Blockchain) ResetConsole() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.console.Reset()
}
