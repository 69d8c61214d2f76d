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

package state

import (
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
)

// stateObject represents an account which is being modified.
//
// The usage pattern is as follows:
// First you need to obtain a state object.
// Account values can be accessed and modified through the object.
// Finally, call Commit on the StateDB to write the modified accounts to disk.
type stateObject struct {
	address common.PublicKey
	data    types.Account
	db      *StateDB

	// Flag whether the account was closed in the current transaction. A
	// closed object is removed from the database on commit and can no longer
	// be used.
	deleted bool
}

// newObject creates a state object.
func newObject(db *StateDB, address common.PublicKey, data types.Account) *stateObject {
	return &stateObject{
		address: address,
		data:    data,
		db:      db,
	}
}

// empty returns whether the account is considered empty.
func (s *stateObject) empty() bool {
	return s.data.IsEmpty()
}

func (s *stateObject) deepCopy(db *StateDB) *stateObject {
	obj := newObject(db, s.address, *s.data.Copy())
	obj.deleted = s.deleted
	return obj
}

// Address returns the address of the account.
func (s *stateObject) Address() common.PublicKey {
	return s.address
}

func (s *stateObject) Lamports() uint64 {
	return s.data.Lamports
}

func (s *stateObject) Owner() common.PublicKey {
	return s.data.Owner
}

func (s *stateObject) Data() []byte {
	return s.data.Data
}

func (s *stateObject) SetLamports(amount uint64) {
	s.db.journal.append(balanceChange{
		account: &s.address,
		prev:    s.data.Lamports,
	})
	s.setLamports(amount)
}

func (s *stateObject) setLamports(amount uint64) {
	s.data.Lamports = amount
}

func (s *stateObject) SetOwner(owner common.PublicKey) {
	s.db.journal.append(ownerChange{
		account: &s.address,
		prev:    s.data.Owner,
	})
	s.setOwner(owner)
}

func (s *stateObject) setOwner(owner common.PublicKey) {
	s.data.Owner = owner
}

func (s *stateObject) SetData(data []byte) {
	s.db.journal.append(dataChange{
		account: &s.address,
		prev:    s.data.Data,
	})
	cpy := make([]byte, len(data))
	copy(cpy, data)
	s.setData(cpy)
}

func (s *stateObject) setData(data []byte) {
	s.data.Data = data
}

func (s *stateObject) markDeleted() {
	s.db.journal.append(closeChange{
		account: &s.address,
	})
	s.deleted = true
}
