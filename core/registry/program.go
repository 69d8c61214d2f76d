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

// Package registry implements the agent identity, reputation, validation
// and treasury program.
//
// The program is a deterministic state transition over records owned by
// params.ProgramID. It trusts the host for signature checks and atomicity:
// every AccountMeta marked as signer has been verified, and any error
// returned from Execute rolls back the whole transaction.
package registry

import (
	"fmt"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/params"
)

type handler func(ctx *vm.Context, accs accounts, args *decoder) error

// Program is the registry program.
type Program struct {
	handlers map[Discriminator]handler
	names    map[Discriminator]string
	log      log.Logger
}

// New creates the registry program.
func New() *Program {
	p := &Program{
		handlers: make(map[Discriminator]handler),
		names:    make(map[Discriminator]string),
		log:      log.New("program", "registry"),
	}
	p.register(InitializeTreasuryName, initializeTreasury)
	p.register(WithdrawFeesName, withdrawFees)
	p.register(RegisterAgentName, registerAgent)
	p.register(UpdateAgentName, updateAgent)
	p.register(GetVerifiedName, getVerified)
	p.register(LinkWalletName, linkWallet)
	p.register(UnlinkWalletName, unlinkWallet)
	p.register(TransferAuthorityName, transferAuthority)
	p.register(SubmitFeedbackName, submitFeedback)
	p.register(ValidateWorkName, validateWork)
	return p
}

func (p *Program) register(name string, h handler) {
	disc := InstructionDiscriminator(name)
	p.handlers[disc] = h
	p.names[disc] = name
}

// ID implements vm.Program.
func (p *Program) ID() common.PublicKey {
	return params.ProgramID
}

// InstructionName returns the name of the instruction encoded in data, or
// the empty string if it is not a registry instruction.
func (p *Program) InstructionName(data []byte) string {
	if len(data) < params.DiscriminatorLength {
		return ""
	}
	var disc Discriminator
	copy(disc[:], data)
	return p.names[disc]
}

// Execute implements vm.Program.
func (p *Program) Execute(ctx *vm.Context, metas []types.AccountMeta, data []byte) error {
	if len(data) < params.DiscriminatorLength {
		return ErrInstructionMissing
	}
	var disc Discriminator
	copy(disc[:], data)

	h, ok := p.handlers[disc]
	if !ok {
		return fmt.Errorf("%w: discriminator %x", ErrInstructionFallbackNotFound, disc[:])
	}
	p.log.Debug("Executing instruction", "ix", p.names[disc], "tx", ctx.TxHash, "accounts", len(metas))

	if err := h(ctx, accounts(metas), &decoder{buf: data[params.DiscriminatorLength:]}); err != nil {
		p.log.Debug("Instruction failed", "ix", p.names[disc], "tx", ctx.TxHash, "err", err)
		return err
	}
	return nil
}

// finishArgs converts argument decoding failures into the program error.
func finishArgs(d *decoder) error {
	if err := d.finish(); err != nil {
		return fmt.Errorf("%w: %v", ErrInstructionDidNotDeserialize, err)
	}
	return nil
}
