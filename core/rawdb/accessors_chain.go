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
	"encoding/binary"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/saiddb"
)

// ReadReceipt retrieves the receipt of the given transaction, or nil.
func ReadReceipt(db saiddb.KeyValueReader, hash common.Hash) *types.Receipt {
	data, _ := db.Get(receiptKey(hash))
	if len(data) == 0 {
		return nil
	}
	receipt, err := types.DecodeReceipt(data)
	if err != nil {
		log.Error("Invalid receipt CBOR", "hash", hash, "err", err)
		return nil
	}
	return receipt
}

// WriteReceipt stores the receipt of a transaction.
func WriteReceipt(db saiddb.KeyValueWriter, receipt *types.Receipt) {
	data, err := types.EncodeReceipt(receipt)
	if err != nil {
		log.Crit("Failed to encode receipt", "err", err)
	}
	if err := db.Put(receiptKey(receipt.TxHash), data); err != nil {
		log.Crit("Failed to store receipt", "err", err)
	}
}

// ReadLastTimestamp retrieves the timestamp of the latest committed
// transaction, zero if none.
func ReadLastTimestamp(db saiddb.KeyValueReader) int64 {
	data, _ := db.Get(lastTimestampKey)
	if len(data) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(data))
}

// WriteLastTimestamp stores the timestamp of the latest committed transaction.
func WriteLastTimestamp(db saiddb.KeyValueWriter, ts int64) {
	var enc [8]byte
	binary.BigEndian.PutUint64(enc[:], uint64(ts))
	if err := db.Put(lastTimestampKey, enc[:]); err != nil {
		log.Crit("Failed to store last timestamp", "err", err)
	}
}

// ReadTxCount retrieves the number of committed transactions.
func ReadTxCount(db saiddb.KeyValueReader) uint64 {
	data, _ := db.Get(txCountKey)
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// WriteTxCount stores the number of committed transactions.
func WriteTxCount(db saiddb.KeyValueWriter, n uint64) {
	var enc [8]byte
	binary.BigEndian.PutUint64(enc[:], n)
	if err := db.Put(txCountKey, enc[:]); err != nil {
		log.Crit("Failed to store transaction count", "err", err)
	}
}
