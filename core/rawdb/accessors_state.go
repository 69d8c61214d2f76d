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

package rawdb

import (
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/saiddb"
)

// ReadAccountBlob retrieves the encoded account stored at addr, or nil.
func ReadAccountBlob(db saiddb.KeyValueReader, addr common.PublicKey) []byte {
	data, _ := db.Get(accountKey(addr))
	return data
}

// HasAccount checks whether an account is stored at addr.
func HasAccount(db saiddb.KeyValueReader, addr common.PublicKey) bool {
	ok, _ := db.Has(accountKey(addr))
	return ok
}

// WriteAccountBlob stores the encoded account at addr.
func WriteAccountBlob(db saiddb.KeyValueWriter, addr common.PublicKey, blob []byte) {
	if err := db.Put(accountKey(addr), blob); err != nil {
		log.Crit("Failed to store account", "addr", addr, "err", err)
	}
}

// DeleteAccountBlob removes the account stored at addr.
func DeleteAccountBlob(db saiddb.KeyValueWriter, addr common.PublicKey) {
	if err := db.Delete(accountKey(addr)); err != nil {
		log.Crit("Failed to delete account", "addr", addr, "err", err)
	}
}

// IterateAccounts calls fn for every stored account until fn returns false.
func IterateAccounts(db saiddb.Iteratee, fn func(addr common.PublicKey, blob []byte) bool) error {
	it := db.NewIterator(accountPrefix, nil)
	defer it.Release()

	for it.Next() {
		key := it.Key()
		if len(key) != len(accountPrefix)+common.PublicKeyLength {
			continue
		}
		if !fn(common.BytesToPublicKey(key[len(accountPrefix):]), it.Value()) {
			break
		}
	}
	return it.Error()
}
