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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/saiddb/memorydb"
)

func TestAccountStorage(t *testing.T) {
	db := memorydb.New()

	addr := common.BytesToPublicKey([]byte{0x01, 0x02})
	if HasAccount(db, addr) {
		t.Fatal("non existent account returned")
	}
	WriteAccountBlob(db, addr, []byte("blob"))
	if blob := ReadAccountBlob(db, addr); string(blob) != "blob" {
		t.Fatalf("account blob mismatch: have %q", blob)
	}
	WriteAccountBlob(db, common.BytesToPublicKey([]byte{0x03}), []byte("other"))

	var seen int
	if err := IterateAccounts(db, func(common.PublicKey, []byte) bool { seen++; return true }); err != nil {
		t.Fatal(err)
	}
	if seen != 2 {
		t.Fatalf("iterated %d accounts, want 2", seen)
	}
	DeleteAccountBlob(db, addr)
	if HasAccount(db, addr) {
		t.Fatal("deleted account returned")
	}
}

func TestReceiptStorage(t *testing.T) {
	db := memorydb.New()

	receipt := &types.Receipt{
		TxHash: common.HexToHash("0x01"),
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{{
			Address: common.BytesToPublicKey([]byte{0x11}),
			Topics:  []common.Hash{common.HexToHash("0x22")},
			Data:    []byte{0x33},
			TxHash:  common.HexToHash("0x01"),
		}},
		Timestamp: 1700000000,
	}
	if ReadReceipt(db, receipt.TxHash) != nil {
		t.Fatal("non existent receipt returned")
	}
	WriteReceipt(db, receipt)
	if diff := cmp.Diff(receipt, ReadReceipt(db, receipt.TxHash)); diff != "" {
		t.Fatalf("receipt mismatch (-want +have):\n%s", diff)
	}
}

func TestChainMarkers(t *testing.T) {
	db := memorydb.New()
	if ReadLastTimestamp(db) != 0 || ReadTxCount(db) != 0 {
		t.Fatal("fresh database has markers")
	}
	WriteLastTimestamp(db, 1700000123)
	WriteTxCount(db, 42)
	if have := ReadLastTimestamp(db); have != 1700000123 {
		t.Fatalf("last timestamp mismatch: have %d", have)
	}
	if have := ReadTxCount(db); have != 42 {
		t.Fatalf("tx count mismatch: have %d", have)
	}
}
