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

// Package vm defines the surface a program sees while executing an
// instruction, and hosts the built-in system program.
package vm

import (
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
)

// StateDB is the account store a program executes against. All mutations
// are journalled by the host and rolled back if the transaction fails.
type StateDB interface {
	Exist(common.PublicKey) bool
	GetAccount(common.PublicKey) *types.Account
	GetBalance(common.PublicKey) uint64
	GetOwner(common.PublicKey) common.PublicKey

	// CreateAccount allocates space zeroed bytes at addr, assigns it to owner
	// and funds it to the rent-exempt minimum from payer.
	CreateAccount(payer, addr, owner common.PublicKey, space int) error
	SetData(common.PublicKey, []byte) error
	Transfer(from, to common.PublicKey, amount uint64) error
	CloseAccount(addr, dest common.PublicKey) error

	AddLog(*types.Log)
}

// Context provides the program with the state and the transaction
// environment.
type Context struct {
	State  StateDB
	Time   int64 // Unix seconds, never decreasing between transactions
	TxHash common.Hash
}

// Program is an on-chain program addressed by its ID.
type Program interface {
	ID() common.PublicKey
	Execute(ctx *Context, accounts []types.AccountMeta, data []byte) error
}
