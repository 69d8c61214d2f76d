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

const (
	// ReceiptStatusFailed is the status code of a transaction if execution failed.
	ReceiptStatusFailed = uint64(0)

	// ReceiptStatusSuccessful is the status code of a transaction if execution succeeded.
	ReceiptStatusSuccessful = uint64(1)
)

// Log represents a program event.
type Log struct {
	// Consensus fields:
	// address of the program that generated the event
	Address common.PublicKey `cbor:"1,keyasint" json:"address"`
	// list of topics provided by the program, the first one names the event
	Topics []common.Hash `cbor:"2,keyasint" json:"topics"`
	// supplied by the program, CBOR encoded event payload
	Data []byte `cbor:"3,keyasint" json:"data"`

	// Derived fields. These fields are filled in by the host
	// but not secured by consensus.
	// hash of the transaction
	TxHash common.Hash `cbor:"4,keyasint" json:"transactionHash"`
	// index of the log in the transaction
	Index uint `cbor:"5,keyasint" json:"logIndex"`
}

// Receipt represents the results of a transaction.
type Receipt struct {
	TxHash    common.Hash `cbor:"1,keyasint" json:"transactionHash"`
	Status    uint64      `cbor:"2,keyasint" json:"status"`
	Err       string      `cbor:"3,keyasint,omitempty" json:"error,omitempty"`
	Logs      []*Log      `cbor:"4,keyasint" json:"logs"`
	Timestamp int64       `cbor:"5,keyasint" json:"timestamp"`
}

// Succeeded reports whether the transaction committed.
func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}

// EncodeReceipt returns the persisted form of a receipt.
func EncodeReceipt(r *Receipt) ([]byte, error) {
	return codec.Marshal(r)
}

// DecodeReceipt parses a receipt produced by EncodeReceipt.
func DecodeReceipt(blob []byte) (*Receipt, error) {
	r := new(Receipt)
	if err := codec.Unmarshal(blob, r); err != nil {
		return nil, err
	}
	return r, nil
}
