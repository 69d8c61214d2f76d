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
	"github.com/VictoriaMetrics/fastcache"
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/rawdb"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/saiddb"
)

// defaultCacheSize is the clean account cache allowance in megabytes.
const defaultCacheSize = 16

// Database wraps access to the persisted accounts and caches recently
// used ones in their encoded form.
type Database interface {
	// ReadAccount loads the committed account at addr, nil if absent.
	ReadAccount(addr common.PublicKey) (*types.Account, error)

	// DiskDB returns the underlying key-value disk database.
	DiskDB() saiddb.KeyValueStore

	// commit writes the encoded accounts in a single batch, a nil blob
	// deleting its account. The clean cache only changes once the batch
	// is on disk.
	commit(blobs map[common.PublicKey][]byte) error
}

// NewDatabase creates a backing store for state with the default cache.
func NewDatabase(db saiddb.KeyValueStore) Database {
	return NewDatabaseWithCache(db, defaultCacheSize)
}

// NewDatabaseWithCache creates a backing store for state with a clean account
// cache of the given size in megabytes. A zero size disables the cache.
func NewDatabaseWithCache(db saiddb.KeyValueStore, cache int) Database {
	cdb := &cachingDB{disk: db}
	if cache > 0 {
		cdb.clean = fastcache.New(cache * 1024 * 1024)
	}
	return cdb
}

type cachingDB struct {
	disk  saiddb.KeyValueStore
	clean *fastcache.Cache
}

// ReadAccount implements Database, serving from the clean cache when possible.
func (db *cachingDB) ReadAccount(addr common.PublicKey) (*types.Account, error) {
	if db.clean != nil {
		if blob, found := db.clean.HasGet(nil, addr[:]); found && len(blob) > 0 {
			return types.DecodeAccount(blob)
		}
	}
	blob := rawdb.ReadAccountBlob(db.disk, addr)
	if len(blob) == 0 {
		return nil, nil
	}
	if db.clean != nil {
		db.clean.Set(addr[:], blob)
	}
	return types.DecodeAccount(blob)
}

// DiskDB implements Database.
func (db *cachingDB) DiskDB() saiddb.KeyValueStore {
	return db.disk
}

func (db *cachingDB) commit(blobs map[common.PublicKey][]byte) error {
	if len(blobs) == 0 {
		return nil
	}
	batch := db.disk.NewBatch()
	for addr, blob := range blobs {
		if blob == nil {
			rawdb.DeleteAccountBlob(batch, addr)
		} else {
			rawdb.WriteAccountBlob(batch, addr, blob)
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	if db.clean != nil {
		for addr, blob := range blobs {
			if blob == nil {
				db.clean.Del(addr[:])
			} else {
				db.clean.Set(addr[:], blob)
			}
		}
	}
	return nil
}
