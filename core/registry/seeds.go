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
	"github.com/probechain/go-said/crypto"
	"github.com/probechain/go-said/params"
)

// findAddress derives a registry record address. Seeds are at most 32 bytes
// by construction, and exhausting all 256 bumps has negligible probability,
// so a failure here is a programming error.
func findAddress(seeds ...[]byte) (common.PublicKey, uint8) {
	addr, bump, err := crypto.FindProgramAddress(seeds, params.ProgramID)
	if err != nil {
		panic("registry: address derivation failed: " + err.Error())
	}
	return addr, bump
}

// createAddress re-derives a record address from its stored bump.
func createAddress(bump uint8, seeds ...[]byte) (common.PublicKey, error) {
	return crypto.CreateProgramAddress(append(seeds, []byte{bump}), params.ProgramID)
}

// TreasuryAddress returns the address of the singleton treasury.
func TreasuryAddress() (common.PublicKey, uint8) {
	return findAddress(params.TreasurySeed)
}

// IdentityAddress returns the address of the identity registered by owner.
func IdentityAddress(owner common.PublicKey) (common.PublicKey, uint8) {
	return findAddress(params.AgentSeed, owner.Bytes())
}

// WalletLinkAddress returns the address of the link record for wallet.
func WalletLinkAddress(wallet common.PublicKey) (common.PublicKey, uint8) {
	return findAddress(params.WalletSeed, wallet.Bytes())
}

// ReputationAddress returns the address of an identity's reputation record.
func ReputationAddress(identity common.PublicKey) (common.PublicKey, uint8) {
	return findAddress(params.ReputationSeed, identity.Bytes())
}

// ValidationAddress returns the address of the attestation for one task.
func ValidationAddress(identity common.PublicKey, task common.Hash) (common.PublicKey, uint8) {
	return findAddress(params.ValidationSeed, identity.Bytes(), task.Bytes())
}
