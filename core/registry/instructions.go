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
	"github.com/probechain/go-said/params"
)

// Instruction names, as hashed into their discriminators.
const (
	InitializeTreasuryName = "initialize_treasury"
	WithdrawFeesName       = "withdraw_fees"
	RegisterAgentName      = "register_agent"
	UpdateAgentName        = "update_agent"
	GetVerifiedName        = "get_verified"
	LinkWalletName         = "link_wallet"
	UnlinkWalletName       = "unlink_wallet"
	TransferAuthorityName  = "transfer_authority"
	SubmitFeedbackName     = "submit_feedback"
	ValidateWorkName       = "validate_work"
)

// InstructionDiscriminator returns the 8 byte tag of a named instruction.
func InstructionDiscriminator(name string) Discriminator {
	return discriminator("global", name)
}

func newInstruction(name string, metas []types.AccountMeta, args func(*encoder)) types.Instruction {
	disc := InstructionDiscriminator(name)
	e := &encoder{buf: append([]byte{}, disc[:]...)}
	if args != nil {
		args(e)
	}
	return types.Instruction{
		ProgramID: params.ProgramID,
		Accounts:  metas,
		Data:      e.buf,
	}
}

var systemProgramMeta = types.Meta(params.SystemProgramID, false, false)

// InitializeTreasury creates the treasury. Only the compiled-in authority
// may send it.
//
// Accounts: [treasury (w), authority (s, w), system program]
func InitializeTreasury(authority common.PublicKey) types.Instruction {
	treasury, _ := TreasuryAddress()
	return newInstruction(InitializeTreasuryName, []types.AccountMeta{
		types.Meta(treasury, false, true),
		types.Meta(authority, true, true),
		systemProgramMeta,
	}, nil)
}

// WithdrawFees moves amount lamports from the treasury to the authority.
//
// Accounts: [treasury (w), authority (s, w)]
func WithdrawFees(authority common.PublicKey, amount uint64) types.Instruction {
	treasury, _ := TreasuryAddress()
	return newInstruction(WithdrawFeesName, []types.AccountMeta{
		types.Meta(treasury, false, true),
		types.Meta(authority, true, true),
	}, func(e *encoder) { e.u64(amount) })
}

// RegisterAgent creates the identity of owner.
//
// Accounts: [identity (w), owner (s, w), system program]
func RegisterAgent(owner common.PublicKey, metadataURI string) types.Instruction {
	identity, _ := IdentityAddress(owner)
	return newInstruction(RegisterAgentName, []types.AccountMeta{
		types.Meta(identity, false, true),
		types.Meta(owner, true, true),
		systemProgramMeta,
	}, func(e *encoder) { e.string(metadataURI) })
}

// UpdateAgent replaces the metadata pointer of an identity.
//
// Accounts: [identity (w), authority (s)]
func UpdateAgent(identity, authority common.PublicKey, newMetadataURI string) types.Instruction {
	return newInstruction(UpdateAgentName, []types.AccountMeta{
		types.Meta(identity, false, true),
		types.Meta(authority, true, false),
	}, func(e *encoder) { e.string(newMetadataURI) })
}

// GetVerified pays the verification fee and marks the identity verified.
//
// Accounts: [identity (w), treasury (w), authority (s, w), system program]
func GetVerified(identity, authority common.PublicKey) types.Instruction {
	treasury, _ := TreasuryAddress()
	return newInstruction(GetVerifiedName, []types.AccountMeta{
		types.Meta(identity, false, true),
		types.Meta(treasury, false, true),
		types.Meta(authority, true, true),
		systemProgramMeta,
	}, nil)
}

// LinkWallet attaches wallet to an identity. Both the authority and the
// wallet have to sign.
//
// Accounts: [identity, wallet link (w), wallet (s), authority (s, w), system program]
func LinkWallet(identity, authority, wallet common.PublicKey) types.Instruction {
	link, _ := WalletLinkAddress(wallet)
	return newInstruction(LinkWalletName, []types.AccountMeta{
		types.Meta(identity, false, false),
		types.Meta(link, false, true),
		types.Meta(wallet, true, false),
		types.Meta(authority, true, true),
		systemProgramMeta,
	}, nil)
}

// UnlinkWallet closes the link of wallet. The signer is the identity's
// authority or the wallet itself and receives the reclaimed rent.
//
// Accounts: [identity, wallet link (w), signer (s, w)]
func UnlinkWallet(identity, wallet, signer common.PublicKey) types.Instruction {
	link, _ := WalletLinkAddress(wallet)
	return newInstruction(UnlinkWalletName, []types.AccountMeta{
		types.Meta(identity, false, false),
		types.Meta(link, false, true),
		types.Meta(signer, true, true),
	}, nil)
}

// TransferAuthority hands an identity to a linked wallet. Only the new
// authority signs.
//
// Accounts: [identity (w), wallet link of new authority, new authority (s)]
func TransferAuthority(identity, newAuthority common.PublicKey) types.Instruction {
	link, _ := WalletLinkAddress(newAuthority)
	return newInstruction(TransferAuthorityName, []types.AccountMeta{
		types.Meta(identity, false, true),
		types.Meta(link, false, false),
		types.Meta(newAuthority, true, false),
	}, nil)
}

// SubmitFeedback records one review of an identity.
//
// Accounts: [identity, reputation (w), reviewer (s, w), system program]
func SubmitFeedback(identity, reviewer common.PublicKey, positive bool, context string) types.Instruction {
	reputation, _ := ReputationAddress(identity)
	return newInstruction(SubmitFeedbackName, []types.AccountMeta{
		types.Meta(identity, false, false),
		types.Meta(reputation, false, true),
		types.Meta(reviewer, true, true),
		systemProgramMeta,
	}, func(e *encoder) {
		e.bool(positive)
		e.string(context)
	})
}

// ValidateWork records an attestation about task.
//
// Accounts: [identity, validation record (w), validator (s, w), system program]
func ValidateWork(identity, validator common.PublicKey, task common.Hash, passed bool, evidenceURI string) types.Instruction {
	validation, _ := ValidationAddress(identity, task)
	return newInstruction(ValidateWorkName, []types.AccountMeta{
		types.Meta(identity, false, false),
		types.Meta(validation, false, true),
		types.Meta(validator, true, true),
		systemProgramMeta,
	}, func(e *encoder) {
		e.hash(task)
		e.bool(passed)
		e.string(evidenceURI)
	})
}
