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

package types

import (
	"github.com/probechain/go-said/codec"
	"github.com/probechain/go-said/common"
)

// Account is the host's view of a single record: a native balance, the
// program allowed to mutate it and an opaque data blob. Accounts owned by
// the system program with no data are plain wallets.
type Account struct {
	Lamports uint64           `cbor:"1,keyasint" json:"lamports"`
	Owner    common.PublicKey `cbor:"2,keyasint" json:"owner"`
	Data     []byte           `cbor:"3,keyasint,omitempty" json:"data"`
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cpy := &Account{
		Lamports: a.Lamports,
		Owner:    a.Owner,
	}
	if a.Data != nil {
		cpy.Data = make([]byte, len(a.Data))
		copy(cpy.Data, a.Data)
	}
	return cpy
}

// IsEmpty reports whether the account carries nothing worth persisting.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0
}

// EncodeAccount returns the persisted form of an account.
func EncodeAccount(a *Account) ([]byte, error) {
	return codec.Marshal(a)
}

// DecodeAccount parses an account previously produced by EncodeAccount.
func DecodeAccount(blob []byte) (*Account, error) {
	a := new(Account)
	if err := codec.Unmarshal(blob, a); err != nil {
		return nil, err
	}
	return a, nil
}
