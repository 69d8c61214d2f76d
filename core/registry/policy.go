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
	"math/bits"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/params"
)

// accounts gives positional access to an instruction's account list.
type accounts []types.AccountMeta

func (a accounts) get(i int) (types.AccountMeta, error) {
	if i >= len(a) {
		return types.AccountMeta{}, fmt.Errorf("%w: want account #%d, have %d", ErrAccountNotEnoughKeys, i, len(a))
	}
	return a[i], nil
}

// signer fetches account i and requires it to have signed.
func (a accounts) signer(i int) (types.AccountMeta, error) {
	meta, err := a.get(i)
	if err != nil {
		return meta, err
	}
	if !meta.IsSigner {
		return meta, fmt.Errorf("%w: %s", ErrAccountNotSigner, meta.PublicKey)
	}
	return meta, nil
}

// writableSigner fetches account i and requires it to be a mutable signer,
// as payers and fee sources must be.
func (a accounts) writableSigner(i int) (types.AccountMeta, error) {
	meta, err := a.signer(i)
	if err != nil {
		return meta, err
	}
	return meta, requireWritable(meta)
}

// systemProgram requires account i to be the system program.
func (a accounts) systemProgram(i int) error {
	meta, err := a.get(i)
	if err != nil {
		return err
	}
	if meta.PublicKey != params.SystemProgramID {
		return fmt.Errorf("%w: have %s", ErrInvalidProgramID, meta.PublicKey)
	}
	return nil
}

func requireWritable(meta types.AccountMeta) error {
	if !meta.IsWritable {
		return fmt.Errorf("%w: %s", ErrConstraintMut, meta.PublicKey)
	}
	return nil
}

func requireAddress(meta types.AccountMeta, want common.PublicKey) error {
	if meta.PublicKey != want {
		return fmt.Errorf("%w: have %s, want %s", ErrConstraintSeeds, meta.PublicKey, want)
	}
	return nil
}

// requireDerived checks that meta sits at the address re-derived from the
// stored bump.
func requireDerived(meta types.AccountMeta, bump uint8, seeds ...[]byte) error {
	want, err := createAddress(bump, seeds...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConstraintSeeds, err)
	}
	return requireAddress(meta, want)
}

// loadRecord reads and decodes the registry record at meta.
func loadRecord(state AccountReader, meta types.AccountMeta, r record) error {
	acc := state.GetAccount(meta.PublicKey)
	if acc == nil || len(acc.Data) == 0 {
		return fmt.Errorf("%w: %s %s", ErrAccountNotInitialized, r.recordName(), meta.PublicKey)
	}
	if acc.Owner != params.ProgramID {
		return fmt.Errorf("%w: %s owned by %s", ErrAccountOwnedByWrongProgram, meta.PublicKey, acc.Owner)
	}
	if err := decodeRecord(acc.Data, r); err != nil {
		return fmt.Errorf("%w: %s", err, meta.PublicKey)
	}
	return nil
}

// storeRecord writes r back to its account.
func storeRecord(state vm.StateDB, addr common.PublicKey, r record) error {
	return state.SetData(addr, encodeRecord(r))
}

// initRecord creates the account for r at addr, funded by payer, and
// writes it. An address that is already taken fails with the host's
// account-in-use error.
func initRecord(state vm.StateDB, payer, addr common.PublicKey, r record) error {
	if err := state.CreateAccount(payer, addr, params.ProgramID, r.space()); err != nil {
		return err
	}
	return storeRecord(state, addr, r)
}

// checkURI enforces the persisted string cap.
func checkURI(uri string) error {
	if len(uri) > params.MaxURILength {
		return fmt.Errorf("%w: %d bytes, max %d", ErrURITooLong, len(uri), params.MaxURILength)
	}
	return nil
}

// isTreasuryAuthority reports whether key is the compiled-in authority.
func isTreasuryAuthority(key common.PublicKey) bool {
	return key == params.TreasuryAuthority
}

// requireAuthority checks that signer is the identity's current authority.
func requireAuthority(id *AgentIdentity, signer common.PublicKey) error {
	if id.Authority != signer {
		return fmt.Errorf("%w: signer %s, authority %s", ErrUnauthorized, signer, id.Authority)
	}
	return nil
}

// collectFee moves a fee from payer into the treasury and books it as
// intake.
func collectFee(state vm.StateDB, payer, treasuryAddr common.PublicKey, t *Treasury, fee uint64) error {
	total, carry := bits.Add64(t.TotalCollected, fee, 0)
	if carry != 0 {
		return ErrArithmeticOverflow
	}
	if err := state.Transfer(payer, treasuryAddr, fee); err != nil {
		return err
	}
	t.TotalCollected = total
	return nil
}

// increment adds one to a counter, failing instead of wrapping.
func increment(v uint64) (uint64, error) {
	sum, carry := bits.Add64(v, 1, 0)
	if carry != 0 {
		return v, ErrArithmeticOverflow
	}
	return sum, nil
}
