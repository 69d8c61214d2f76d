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

// Package rawdb contains a collection of low level database accessors.
package rawdb

import (
	"github.com/probechain/go-said/common"
)

// The fields below define the low level database schema prefixing.
var (
	// lastTimestampKey tracks the timestamp of the latest committed transaction.
	lastTimestampKey = []byte("LastTimestamp")

	// txCountKey tracks the number of committed transactions.
	txCountKey = []byte("TxCount")

	accountPrefix = []byte("a") // accountPrefix + address -> encoded account
	receiptPrefix = []byte("r") // receiptPrefix + tx hash -> encoded receipt
)

// accountKey = accountPrefix + address
func accountKey(addr common.PublicKey) []byte {
	return append(append([]byte{}, accountPrefix...), addr.Bytes()...)
}

// receiptKey = receiptPrefix + hash
func receiptKey(hash common.Hash) []byte {
	return append(append([]byte{}, receiptPrefix...), hash.Bytes()...)
}
