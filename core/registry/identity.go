// Copyright 2026 The go-said Authors
// This file is part of the go-said library.
//
// The go-said library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-said library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-said library. If not, see <http://www.gnu.org/licenses/>.

package registry

import (
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/params"
)

// loadIdentity reads the identity at meta and checks that it sits at the
// address derived from its owner.
func loadIdentity(ctx *vm.Context, meta types.AccountMeta) (*AgentIdentity, error) {
	id := new(AgentIdentity)
	if err := loadRecord(ctx.State, meta, id); err != nil {
		return nil, err
	}
	if err := requireDerived(meta, id.Bump, params.AgentSeed, id.Owner.Bytes()); err != nil {
		return nil, err
	}
	return id, nil
}

func registerAgent(ctx *vm.Context, accs accounts, args *decoder) error {
	uri := args.string()
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	owner, err := accs.writableSigner(1)
	if err != nil {
		return err
	}
	if err := accs.systemProgram(2); err != nil {
		return err
	}
	if err := checkURI(uri); err != nil {
		return err
	}
	addr, bump := IdentityAddress(owner.PublicKey)
	if err := requireAddress(identityMeta, addr); err != nil {
		return err
	}
	if err := requireWritable(identityMeta); err != nil {
		return err
	}
	id := &AgentIdentity{
		Owner:       owner.PublicKey,
		Authority:   owner.PublicKey,
		MetadataURI: uri,
		CreatedAt:   ctx.Time,
		Bump:        bump,
	}
	if err := initRecord(ctx.State, owner.PublicKey, addr, id); err != nil {
		return err
	}
	emit(ctx, &AgentRegistered{AgentID: addr, Owner: id.Owner, MetadataURI: uri})
	log.Debug("Agent registered", "agent", addr, "owner", id.Owner)
	return nil
}

func updateAgent(ctx *vm.Context, accs accounts, args *decoder) error {
	uri := args.string()
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	authority, err := accs.signer(1)
	if err != nil {
		return err
	}
	if err := requireWritable(identityMeta); err != nil {
		return err
	}
	id, err := loadIdentity(ctx, identityMeta)
	if err != nil {
		return err
	}
	if err := requireAuthority(id, authority.PublicKey); err != nil {
		return err
	}
	if err := checkURI(uri); err != nil {
		return err
	}
	id.MetadataURI = uri
	if err := storeRecord(ctx.State, identityMeta.PublicKey, id); err != nil {
		return err
	}
	emit(ctx, &AgentUpdated{AgentID: identityMeta.PublicKey, NewMetadataURI: uri})
	log.Debug("Agent updated", "agent", identityMeta.PublicKey)
	return nil
}

// getVerified charges the verification fee on every call, re-stamping
// verified_at each time.
func getVerified(ctx *vm.Context, accs accounts, args *decoder) error {
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	treasuryMeta, err := accs.get(1)
	if err != nil {
		return err
	}
	authority, err := accs.writableSigner(2)
	if err != nil {
		return err
	}
	if err := accs.systemProgram(3); err != nil {
		return err
	}
	if err := requireWritable(identityMeta); err != nil {
		return err
	}
	if err := requireWritable(treasuryMeta); err != nil {
		return err
	}
	id, err := loadIdentity(ctx, identityMeta)
	if err != nil {
		return err
	}
	t, err := loadTreasury(ctx, treasuryMeta)
	if err != nil {
		return err
	}
	if err := requireAuthority(id, authority.PublicKey); err != nil {
		return err
	}
	if err := collectFee(ctx.State, authority.PublicKey, treasuryMeta.PublicKey, t, params.VerificationFee); err != nil {
		return err
	}
	now := ctx.Time
	id.IsVerified = true
	id.VerifiedAt = &now

	if err := storeRecord(ctx.State, identityMeta.PublicKey, id); err != nil {
		return err
	}
	if err := storeRecord(ctx.State, treasuryMeta.PublicKey, t); err != nil {
		return err
	}
	emit(ctx, &AgentVerified{
		AgentID:    identityMeta.PublicKey,
		Authority:  authority.PublicKey,
		Fee:        params.VerificationFee,
		VerifiedAt: now,
	})
	log.Debug("Agent verified", "agent", identityMeta.PublicKey, "fee", params.VerificationFee, "collected", t.TotalCollected)
	return nil
}
