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

package vm

import (
	"encoding/binary"
	"errors"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/params"
)

// System program instruction tags, u32 little endian.
const (
	SystemTransfer uint32 = 2
)

var (
	ErrInvalidInstructionData = errors.New("invalid instruction data")
	ErrNotEnoughAccountKeys   = errors.New("not enough account keys for instruction")
	ErrMissingRequiredSig     = errors.New("missing required signature for instruction")
	ErrFromMustNotCarryData   = errors.New("from must not carry data")
	ErrAccountNotWritable     = errors.New("account is not writable")
)

// SystemProgram moves native value between plain wallets.
type SystemProgram struct{}

// ID implements Program.
func (SystemProgram) ID() common.PublicKey { return params.SystemProgramID }

// Execute implements Program.
func (SystemProgram) Execute(ctx *Context, accounts []types.AccountMeta, data []byte) error {
	if len(data) < 4 {
		return ErrInvalidInstructionData
	}
	switch binary.LittleEndian.Uint32(data) {
	case SystemTransfer:
		if len(data) != 12 {
			return ErrInvalidInstructionData
		}
		if len(accounts) < 2 {
			return ErrNotEnoughAccountKeys
		}
		from, to := accounts[0], accounts[1]
		if !from.IsSigner {
			return ErrMissingRequiredSig
		}
		if !from.IsWritable || !to.IsWritable {
			return ErrAccountNotWritable
		}
		if acc := ctx.State.GetAccount(from.PublicKey); acc != nil && (len(acc.Data) > 0 || acc.Owner != params.SystemProgramID) {
			return ErrFromMustNotCarryData
		}
		return ctx.State.Transfer(from.PublicKey, to.PublicKey, binary.LittleEndian.Uint64(data[4:]))
	default:
		return ErrInvalidInstructionData
	}
}

// TransferInstruction builds a system transfer of lamports from one wallet
// to another.
func TransferInstruction(from, to common.PublicKey, lamports uint64) types.Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data, SystemTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return types.Instruction{
		ProgramID: params.SystemProgramID,
		Accounts: []types.AccountMeta{
			types.Meta(from, true, true),
			types.Meta(to, false, true),
		},
		Data: data,
	}
}
