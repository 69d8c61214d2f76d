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
	"errors"
	"testing"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/state"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/params"
	"github.com/probechain/go-said/saiddb/memorydb"
)

func TestSystemTransfer(t *testing.T) {
	var (
		statedb = state.New(state.NewDatabase(memorydb.New()))
		ctx     = &Context{State: statedb, Time: 1}
		alice   = common.BytesToPublicKey([]byte("alice"))
		bob     = common.BytesToPublicKey([]byte("bob"))
	)
	if err := statedb.AddBalance(alice, 100); err != nil {
		t.Fatal(err)
	}
	ix := TransferInstruction(alice, bob, 40)

	if err := (SystemProgram{}).Execute(ctx, ix.Accounts, ix.Data); err != nil {
		t.Fatal(err)
	}
	if alice, bob := statedb.GetBalance(alice), statedb.GetBalance(bob); alice != 60 || bob != 40 {
		t.Fatalf("balances after transfer: alice %d bob %d", alice, bob)
	}
	over := TransferInstruction(alice, bob, 61)
	if err := (SystemProgram{}).Execute(ctx, over.Accounts, over.Data); !errors.Is(err, state.ErrInsufficientFunds) {
		t.Fatalf("overdraft: have %v, want %v", err, state.ErrInsufficientFunds)
	}
}

func TestSystemTransferChecks(t *testing.T) {
	var (
		statedb = state.New(state.NewDatabase(memorydb.New()))
		ctx     = &Context{State: statedb}
		alice   = common.BytesToPublicKey([]byte("alice"))
		record  = common.BytesToPublicKey([]byte("record"))
	)
	statedb.AddBalance(alice, params.LamportsPerSol)
	if err := statedb.CreateAccount(alice, record, params.ProgramID, 8); err != nil {
		t.Fatal(err)
	}
	unsigned := TransferInstruction(alice, record, 1)
	unsigned.Accounts[0].IsSigner = false

	fromRecord := TransferInstruction(record, alice, 1)

	tests := []struct {
		name     string
		accounts []types.AccountMeta
		data     []byte
		err      error
	}{
		{"short data", unsigned.Accounts, []byte{2}, ErrInvalidInstructionData},
		{"unknown tag", unsigned.Accounts, []byte{9, 0, 0, 0}, ErrInvalidInstructionData},
		{"missing accounts", unsigned.Accounts[:1], unsigned.Data, ErrNotEnoughAccountKeys},
		{"unsigned", unsigned.Accounts, unsigned.Data, ErrMissingRequiredSig},
		{"program owned source", fromRecord.Accounts, fromRecord.Data, ErrFromMustNotCarryData},
	}
	for _, tt := range tests {
		if err := (SystemProgram{}).Execute(ctx, tt.accounts, tt.data); err != tt.err {
			t.Errorf("%s: have %v, want %v", tt.name, err, tt.err)
		}
	}
}
