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
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
)

// AccountReader is the read-only part of the account store.
type AccountReader interface {
	GetAccount(common.PublicKey) *types.Account
}

// Reader resolves registry records by their natural keys. Every lookup is a
// direct address derivation, no index is kept.
type Reader struct {
	state AccountReader
}

// NewReader creates a reader over the given account store.
func NewReader(state AccountReader) *Reader {
	return &Reader{state: state}
}

func (r *Reader) load(addr common.PublicKey, rec record) error {
	return loadRecord(r.state, types.Meta(addr, false, false), rec)
}

// Treasury returns the treasury record and its address.
func (r *Reader) Treasury() (*Treasury, common.PublicKey, error) {
	addr, _ := TreasuryAddress()
	t := new(Treasury)
	if err := r.load(addr, t); err != nil {
		return nil, addr, err
	}
	return t, addr, nil
}

// TreasuryBalance returns the lamports held by the treasury, zero if it
// does not exist.
func (r *Reader) TreasuryBalance() uint64 {
	addr, _ := TreasuryAddress()
	if acc := r.state.GetAccount(addr); acc != nil {
		return acc.Lamports
	}
	return 0
}

// Identity returns the identity registered by owner and its address.
func (r *Reader) Identity(owner common.PublicKey) (*AgentIdentity, common.PublicKey, error) {
	addr, _ := IdentityAddress(owner)
	id, err := r.IdentityAt(addr)
	return id, addr, err
}

// IdentityAt returns the identity stored at addr.
func (r *Reader) IdentityAt(addr common.PublicKey) (*AgentIdentity, error) {
	id := new(AgentIdentity)
	if err := r.load(addr, id); err != nil {
		return nil, err
	}
	return id, nil
}

// ResolveWallet returns the link of wallet together with the identity it
// points at.
func (r *Reader) ResolveWallet(wallet common.PublicKey) (*WalletLink, *AgentIdentity, error) {
	addr, _ := WalletLinkAddress(wallet)
	link := new(WalletLink)
	if err := r.load(addr, link); err != nil {
		return nil, nil, err
	}
	id, err := r.IdentityAt(link.AgentID)
	if err != nil {
		return link, nil, err
	}
	return link, id, nil
}

// Reputation returns the reputation record of the identity at addr.
func (r *Reader) Reputation(identity common.PublicKey) (*AgentReputation, error) {
	addr, _ := ReputationAddress(identity)
	rep := new(AgentReputation)
	if err := r.load(addr, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Validation returns the attestation for task on the identity at addr.
func (r *Reader) Validation(identity common.PublicKey, task common.Hash) (*ValidationRecord, error) {
	addr, _ := ValidationAddress(identity, task)
	rec := new(ValidationRecord)
	if err := r.load(addr, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
