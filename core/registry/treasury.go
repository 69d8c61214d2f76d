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
	"fmt"

	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/params"
)

// loadTreasury reads the treasury at meta and checks its address.
func loadTreasury(ctx *vm.Context, meta types.AccountMeta) (*Treasury, error) {
	t := new(Treasury)
	if err := loadRecord(ctx.State, meta, t); err != nil {
		return nil, err
	}
	if err := requireDerived(meta, t.Bump, params.TreasurySeed); err != nil {
		return nil, err
	}
	return t, nil
}

func initializeTreasury(ctx *vm.Context, accs accounts, args *decoder) error {
	if err := finishArgs(args); err != nil {
		return err
	}
	treasuryMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	authority, err := accs.writableSigner(1)
	if err != nil {
		return err
	}
	if err := accs.systemProgram(2); err != nil {
		return err
	}
	if !isTreasuryAuthority(authority.PublicKey) {
		return fmt.Errorf("%w: signer %s", ErrUnauthorizedAuthority, authority.PublicKey)
	}
	addr, bump := TreasuryAddress()
	if err := requireAddress(treasuryMeta, addr); err != nil {
		return err
	}
	if err := requireWritable(treasuryMeta); err != nil {
		return err
	}
	t := &Treasury{
		Authority: authority.PublicKey,
		Bump:      bump,
	}
	if err := initRecord(ctx.State, authority.PublicKey, addr, t); err != nil {
		return err
	}
	emit(ctx, &TreasuryInitialized{Treasury: addr, Authority: t.Authority})
	log.Debug("Treasury initialized", "treasury", addr, "authority", t.Authority)
	return nil
}

func withdrawFees(ctx *vm.Context, accs accounts, args *decoder) error {
	amount := args.u64()
	if err := finishArgs(args); err != nil {
		return err
	}
	treasuryMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	authority, err := accs.writableSigner(1)
	if err != nil {
		return err
	}
	if !isTreasuryAuthority(authority.PublicKey) {
		return fmt.Errorf("%w: signer %s", ErrUnauthorizedAuthority, authority.PublicKey)
	}
	if err := requireWritable(treasuryMeta); err != nil {
		return err
	}
	t, err := loadTreasury(ctx, treasuryMeta)
	if err != nil {
		return err
	}
	var (
		balance = ctx.State.GetBalance(treasuryMeta.PublicKey)
		reserve = params.MinimumBalance(TreasurySpace)
	)
	if amount > balance || balance-amount < reserve {
		return fmt.Errorf("%w: balance %d, reserve %d, requested %d", ErrInsufficientTreasuryBalance, balance, reserve, amount)
	}
	if err := ctx.State.Transfer(treasuryMeta.PublicKey, authority.PublicKey, amount); err != nil {
		return err
	}
	emit(ctx, &FeesWithdrawn{
		Treasury:  treasuryMeta.PublicKey,
		Authority: authority.PublicKey,
		Amount:    amount,
		Remaining: balance - amount,
	})
	log.Debug("Treasury fees withdrawn", "amount", amount, "remaining", balance-amount, "collected", t.TotalCollected)
	return nil
}
