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
	"errors"
	"fmt"

	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/params"
)

// loadWalletLink reads the link at meta and checks its address against the
// wallet it names.
func loadWalletLink(ctx *vm.Context, meta types.AccountMeta) (*WalletLink, error) {
	link := new(WalletLink)
	if err := loadRecord(ctx.State, meta, link); err != nil {
		return nil, err
	}
	if err := requireDerived(meta, link.Bump, params.WalletSeed, link.Wallet.Bytes()); err != nil {
		return nil, err
	}
	return link, nil
}

func linkWallet(ctx *vm.Context, accs accounts, args *decoder) error {
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	linkMeta, err := accs.get(1)
	if err != nil {
		return err
	}
	wallet, err := accs.signer(2)
	if err != nil {
		return err
	}
	authority, err := accs.writableSigner(3)
	if err != nil {
		return err
	}
	if err := accs.systemProgram(4); err != nil {
		return err
	}
	id, err := loadIdentity(ctx, identityMeta)
	if err != nil {
		return err
	}
	if err := requireAuthority(id, authority.PublicKey); err != nil {
		return err
	}
	addr, bump := WalletLinkAddress(wallet.PublicKey)
	if err := requireAddress(linkMeta, addr); err != nil {
		return err
	}
	if err := requireWritable(linkMeta); err != nil {
		return err
	}
	link := &WalletLink{
		AgentID: identityMeta.PublicKey,
		Wallet:  wallet.PublicKey,
		Bump:    bump,
	}
	if err := initRecord(ctx.State, authority.PublicKey, addr, link); err != nil {
		return err
	}
	emit(ctx, &WalletLinked{AgentID: link.AgentID, Wallet: link.Wallet})
	log.Debug("Wallet linked", "agent", link.AgentID, "wallet", link.Wallet)
	return nil
}

// unlinkWallet is self-service: the authority or the linked wallet may close
// the link, and the closer collects the rent.
func unlinkWallet(ctx *vm.Context, accs accounts, args *decoder) error {
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	linkMeta, err := accs.get(1)
	if err != nil {
		return err
	}
	signer, err := accs.writableSigner(2)
	if err != nil {
		return err
	}
	if err := requireWritable(linkMeta); err != nil {
		return err
	}
	id, err := loadIdentity(ctx, identityMeta)
	if err != nil {
		return err
	}
	link, err := loadWalletLink(ctx, linkMeta)
	if err != nil {
		return err
	}
	if link.AgentID != identityMeta.PublicKey {
		return fmt.Errorf("%w: link points at %s", ErrWalletNotLinked, link.AgentID)
	}
	if signer.PublicKey != id.Authority && signer.PublicKey != link.Wallet {
		return fmt.Errorf("%w: signer %s is neither authority nor linked wallet", ErrUnauthorized, signer.PublicKey)
	}
	if err := ctx.State.CloseAccount(linkMeta.PublicKey, signer.PublicKey); err != nil {
		return err
	}
	emit(ctx, &WalletUnlinked{AgentID: link.AgentID, Wallet: link.Wallet, ClosedBy: signer.PublicKey})
	log.Debug("Wallet unlinked", "agent", link.AgentID, "wallet", link.Wallet, "by", signer.PublicKey)
	return nil
}

// transferAuthority is the recovery path. The outgoing authority does not
// sign; holding a link to the identity is the proof.
func transferAuthority(ctx *vm.Context, accs accounts, args *decoder) error {
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	linkMeta, err := accs.get(1)
	if err != nil {
		return err
	}
	candidate, err := accs.signer(2)
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
	addr, _ := WalletLinkAddress(candidate.PublicKey)
	if err := requireAddress(linkMeta, addr); err != nil {
		return err
	}
	link, err := loadWalletLink(ctx, linkMeta)
	if errors.Is(err, ErrAccountNotInitialized) {
		return fmt.Errorf("%w: no link for %s", ErrWalletNotLinked, candidate.PublicKey)
	}
	if err != nil {
		return err
	}
	if link.AgentID != identityMeta.PublicKey || link.Wallet != candidate.PublicKey {
		return fmt.Errorf("%w: link points at %s", ErrWalletNotLinked, link.AgentID)
	}
	old := id.Authority
	id.Authority = candidate.PublicKey
	if err := storeRecord(ctx.State, identityMeta.PublicKey, id); err != nil {
		return err
	}
	emit(ctx, &AuthorityTransferred{
		AgentID:      identityMeta.PublicKey,
		OldAuthority: old,
		NewAuthority: id.Authority,
	})
	log.Debug("Agent authority transferred", "agent", identityMeta.PublicKey, "old", old, "new", id.Authority)
	return nil
}
