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

	"github.com/aaroncox/vert/chain"
	"github.com/aaroncox/vert/vm"
	"github.com/aaroncox/vert/vm/cryptohost"
)

// Dispatcher walks a top-level action and everything it schedules
// (notifications via require_recipient, inline actions via send_inline),
// running each through a freshly installed vm.Context/vm.HostEnv pair.
type Dispatcher struct {
	Chain  *Chain
	Loader ModuleLoader
	Codec  vm.ActionCodec
	Crypto cryptohost.Provider

	// CodePermission is this deployment's Name for the "eosio.code"
	// permission, the one every account implicitly grants to its own
	// installed contract code for actions it sends inline on its own
	// behalf (spec.md §4.6). Rendering the text "eosio.code" into a Name
	// belongs to the Antelope primitive codec (an external collaborator,
	// see vm.ActionCodec's doc comment); the caller supplies the already
	// encoded value here rather than this package hardcoding a numeric
	// constant derived from a text codec it does not implement.
	CodePermission chain.Name
}

// NewDispatcher constructs a Dispatcher bound to c.
func NewDispatcher(c *Chain, loader ModuleLoader, codec vm.ActionCodec, crypto cryptohost.Provider, codePermission chain.Name) *Dispatcher {
	return &Dispatcher{
		Chain:          c,
		Loader:         loader,
		Codec:          codec,
		Crypto:         crypto,
		CodePermission: codePermission,
	}
}

// Receipt is what a successful top-level Execute call returns.
type Receipt struct {
	Console     string
	ReturnValue []byte
}

// Execute dispatches a top-level action: act.Auth is taken as already
// authorized (signature verification against the declared keys happens
// upstream of this core, see chain.KeyWeight's doc comment), then the
// action and everything it schedules is run to completion.
func (d *Dispatcher) Execute(act chain.Action) (*Receipt, error) {
	d.Chain.Blockchain.ResetConsole()
	root := chain.PendingAction{
		Action:        act,
		Sender:        chain.Empty,
		Receiver:      act.Account,
		FirstReceiver: act.Account,
		Notify:        false,
	}
	var ret []byte
	if err := d.run(root, act.Auth, &ret); err != nil {
		return nil, err
	}
	return &Receipt{
		Console:     d.Chain.Blockchain.ConsoleOutput(),
		ReturnValue: ret,
	}, nil
}

// run dispatches one PendingAction (top-level, notification, or inline)
// and recursively drains every queue it produces. authorizedLevels is the
// permission set the original top-level action carried; inline actions may
// reuse it (directly, via the implicit eosio.code grant, or via a target
// permission's own weighted Authority) but can never introduce an
// authorization the top-level action never had. lastReturn is overwritten
// by every action that calls set_action_return_value, mirroring how only
// the most recently set return value is observable (spec.md §4.5).
func (d *Dispatcher) run(pending chain.PendingAction, authorizedLevels []chain.PermissionLevel, lastReturn *[]byte) error {
	if pending.Sender != chain.Empty && !pending.Notify {
		if err := d.authorizeInline(pending, authorizedLevels); err != nil {
			return err
		}
	}

	acct, ok := d.Chain.Blockchain.Account(pending.Receiver)
	if !ok || !acct.HasCode() {
		if pending.Notify {
			// require_recipient already filters recipients without code;
			// a direct Execute call naming one defensively no-ops instead
			// of failing the whole action.
			return nil
		}
		return classify(&vm.PreconditionError{Err: errUnknownReceiver{receiver: pending.Receiver}})
	}

	module, err := d.Loader.Load(acct.Code)
	if err != nil {
		return classify(&vm.PreconditionError{Err: err})
	}

	ctx := vm.NewContext(d.Chain.Blockchain, d.Chain.Store, module.NewMemory(), d.Codec)
	ctx.Action = pending.Action
	ctx.Receiver = pending.Receiver
	ctx.FirstReceiver = pending.FirstReceiver
	ctx.Sender = pending.Sender
	ctx.IsInline = pending.Sender != chain.Empty
	ctx.IsNotification = pending.Notify

	host := vm.NewHostEnv(ctx, d.Crypto)
	applyErr := module.Apply(host, pending.Receiver, pending.FirstReceiver, pending.Action.Name)
	if applyErr != nil {
		var exit *vm.ExitError
		if errors.As(applyErr, &exit) {
			// A clean eosio_exit unwinds this action successfully but
			// deliberately does NOT drain whatever it had already queued
			// (spec.md §4.6/§7): those notifications/inline actions never
			// happened.
			return nil
		}
		return classify(applyErr)
	}

	if d.Chain.Blockchain.Metrics != nil {
		d.Chain.Blockchain.Metrics.ActionsDispatched.Inc()
	}
	if len(ctx.ReturnValue) > 0 {
		*lastReturn = ctx.ReturnValue
	}

	for _, note := range ctx.PendingNotify {
		if err := d.run(note, authorizedLevels, lastReturn); err != nil {
			return err
		}
	}
	for _, inline := range ctx.PendingInline {
		if err := d.run(inline, authorizedLevels, lastReturn); err != nil {
			return err
		}
	}
	return nil
}

// authorizeInline checks every permission level an inline action declares
// against three justifications, any one of which is sufficient: the level
// was already authorized at the top of this dispatch chain, it is the
// implicit (sender, eosio.code) grant, or the permission's own Authority is
// satisfied by one of the top-level levels.
func (d *Dispatcher) authorizeInline(pending chain.PendingAction, authorizedLevels []chain.PermissionLevel) error {
	for _, lvl := range pending.Action.Auth {
		if lvl.Actor == pending.Sender && lvl.Permission == d.CodePermission {
			continue
		}
		if containsLevel(authorizedLevels, lvl) {
			continue
		}
		if d.authoritySatisfied(lvl, authorizedLevels) {
			continue
		}
		return &ActionError{Kind: KindAuthorization, Err: errAuthorizationMissing{
			level:  lvl.String(),
			action: pending.Action.Name.String(),
		}}
	}
	return nil
}

func (d *Dispatcher) authoritySatisfied(required chain.PermissionLevel, have []chain.PermissionLevel) bool {
	acct, ok := d.Chain.Blockchain.Account(required.Actor)
	if !ok {
		return false
	}
	perm, ok := acct.Permission(required.Permission)
	if !ok {
		return false
	}
	for _, h := range have {
		if perm.Authority.Satisfies(h) {
			return true
		}
	}
	return false
}

func containsLevel(levels []chain.PermissionLevel, level chain.PermissionLevel) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

type errUnknownReceiver struct{ receiver chain.Name }

func (e errUnknownReceiver) Error() string {
	return "account " + e.receiver.String() + " has no installed code"
}
