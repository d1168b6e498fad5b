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

// ActionCodec decodes the opaque byte payload send_inline hands the host,
// and is the external collaborator spec.md §1 calls out as the "Antelope
// primitive codec" this core does not itself implement.
type ActionCodec interface {
	Decode(data []byte) (chain.Action, error)
}

// Context is the dynamic per-action state HostEnv's intrinsics read and
// mutate: which action is running, under which receiver/sender, its own
// fresh iterator cache, and the notification/inline-action queues it
// fills in for dispatch.Dispatcher to drain afterward. One Context exists
// per action invocation (top-level, notification, or inline), is built
// fresh by the Dispatcher for each, and is discarded at action end —
// Store rows are the only state that outlives it (spec.md §3/§5).
type Context struct {
	Blockchain *chain.Blockchain
	Store      *store.Store
	Memory     *LinearMemoryView
	Codec      ActionCodec

	Action        chain.Action
	Receiver      chain.Name
	FirstReceiver chain.Name
	Sender        chain.Name // empty unless IsInline
	IsInline      bool
	IsNotification bool

	IterCache *store.Cache

	ReturnValue []byte

	notifiedRecipients map[chain.Name]bool
	PendingNotify       []chain.PendingAction
	PendingInline       []chain.PendingAction
}

// NewContext builds a fresh Context with an empty iterator cache, as
// dispatch.Dispatcher does for every action it installs (spec.md §4.6).
func NewContext(bc *chain.Blockchain, st *store.Store, mem GuestMemory, codec ActionCodec) *Context {
	return &Context{
		Blockchain:         bc,
		Store:              st,
		Memory:             NewLinearMemoryView(mem),
		Codec:              codec,
		IterCache:          store.NewCache(st),
		notifiedRecipients: make(map[chain.Name]bool),
	}
}

// RequireRecipient enqueues a notification to recipient, honoring
// spec.md §4.6's require_recipient rules: at most one notification per
// recipient per action, self-notification is silently skipped, and a
// recipient with no installed contract code is silently skipped (there is
// nothing to notify). The notification inherits this Context's
// FirstReceiver.
func (c *Context) RequireRecipient(recipient chain.Name) {
	if recipient == c.Receiver {
		return
	}
	if c.notifiedRecipients[recipient] {
		return
	}
	acct, ok := c.Blockchain.Account(recipient)
	if !ok || !acct.HasCode() {
		return
	}
	c.notifiedRecipients[recipient] = true
	c.PendingNotify = append(c.PendingNotify, chain.PendingAction{
		Action:        c.Action,
		Sender:        c.Sender,
		Receiver:      recipient,
		FirstReceiver: c.FirstReceiver,
		Notify:        true,
	})
	if c.Blockchain.Metrics != nil {
		c.Blockchain.Metrics.NotificationsEnqueued.Inc()
	}
}

// SendInline enqueues an already-decoded Action as an inline action sent
// from the current receiver to target, per spec.md §4.6's send_inline
// semantics. Neither this method nor HostEnv.SendInline checks that the
// target account exists or that it declares the action in an ABI; an
// inline action whose target is unknown or has no code fails later, when
// the Dispatcher runs it.
func (c *Context) SendInline(target chain.Name, act chain.Action) {
	c.PendingInline = append(c.PendingInline, chain.PendingAction{
		Action:        act,
		Sender:        c.Receiver,
		Receiver:      target,
		FirstReceiver: target,
		Notify:        false,
	})
	if c.Blockchain.Metrics != nil {
		c.Blockchain.Metrics.InlineEnqueued.Inc()
	}
}
