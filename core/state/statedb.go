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

// Package state provides the account store the registry program runs against.
package state

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/params"
)

var (
	// ErrAccountInUse is returned when creating an account at an address that
	// already holds one.
	ErrAccountInUse = errors.New("account already in use")

	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient lamports")

	// ErrAccountNotFound is returned when mutating an account that does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrBalanceOverflow is returned when a credit would overflow the balance.
	ErrBalanceOverflow = errors.New("balance overflow")
)

type revision struct {
	id           int
	journalIndex int
}

// StateDB caches accounts loaded from the database and journals every change
// so a failed transaction can be rolled back as a whole.
type StateDB struct {
	db Database

	// This map holds 'live' objects, which will get modified while processing a state transition.
	stateObjects map[common.PublicKey]*stateObject

	// DB error.
	// Any error that occurs during a database read is memoized here and will
	// eventually be returned by StateDB.Commit.
	dbErr error

	thash   common.Hash
	logs    map[common.Hash][]*types.Log
	logSize uint

	// Journal of state modifications. This is the backbone of
	// Snapshot and RevertToSnapshot.
	journal        *journal
	validRevisions []revision
	nextRevisionId int
}

// New creates a new state over the committed accounts in db.
func New(db Database) *StateDB {
	return &StateDB{
		db:           db,
		stateObjects: make(map[common.PublicKey]*stateObject),
		logs:         make(map[common.Hash][]*types.Log),
		journal:      newJournal(),
	}
}

// setError remembers the first non-nil error it is called with.
func (s *StateDB) setError(err error) {
	if s.dbErr == nil {
		s.dbErr = err
	}
}

func (s *StateDB) Error() error {
	return s.dbErr
}

// Prepare sets the current transaction hash which is used when the program
// emits new events.
func (s *StateDB) Prepare(thash common.Hash) {
	s.thash = thash
	s.logSize = 0
}

func (s *StateDB) AddLog(log *types.Log) {
	s.journal.append(addLogChange{txhash: s.thash})

	log.TxHash = s.thash
	log.Index = s.logSize
	s.logs[s.thash] = append(s.logs[s.thash], log)
	s.logSize++
}

// GetLogs returns the events emitted by the given transaction.
func (s *StateDB) GetLogs(hash common.Hash) []*types.Log {
	return s.logs[hash]
}

// Exist reports whether the given account exists in state.
// Notably this should also return true for closed accounts until commit.
func (s *StateDB) Exist(addr common.PublicKey) bool {
	return s.getStateObject(addr) != nil
}

// GetAccount returns a copy of the account at addr, nil if there is none.
func (s *StateDB) GetAccount(addr common.PublicKey) *types.Account {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.data.Copy()
	}
	return nil
}

// GetBalance retrieves the lamports held by addr.
func (s *StateDB) GetBalance(addr common.PublicKey) uint64 {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Lamports()
	}
	return 0
}

// GetOwner retrieves the program owning addr. Missing accounts are owned by
// the system program.
func (s *StateDB) GetOwner(addr common.PublicKey) common.PublicKey {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Owner()
	}
	return params.SystemProgramID
}

// AddBalance credits amount to addr, creating a system account if needed.
func (s *StateDB) AddBalance(addr common.PublicKey, amount uint64) error {
	obj := s.getOrNewStateObject(addr)
	sum, carry := bits.Add64(obj.Lamports(), amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	obj.SetLamports(sum)
	return nil
}

// SubBalance debits amount from addr.
func (s *StateDB) SubBalance(addr common.PublicKey, amount uint64) error {
	obj := s.getStateObject(addr)
	if obj == nil || obj.Lamports() < amount {
		return fmt.Errorf("%w: address %s has %d, need %d", ErrInsufficientFunds, addr, s.GetBalance(addr), amount)
	}
	obj.SetLamports(obj.Lamports() - amount)
	return nil
}

// Transfer moves lamports between two accounts.
func (s *StateDB) Transfer(from, to common.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := s.SubBalance(from, amount); err != nil {
		return err
	}
	return s.AddBalance(to, amount)
}

// CreateAccount allocates a zeroed data region of the given space at addr,
// assigns it to owner and funds it to the rent-exempt minimum from payer.
// An address that already carries data or is assigned to a program is in use.
func (s *StateDB) CreateAccount(payer, addr, owner common.PublicKey, space int) error {
	prev := s.getStateObject(addr)
	if prev != nil && (len(prev.Data()) > 0 || prev.Owner() != params.SystemProgramID) {
		return fmt.Errorf("%w: address %s", ErrAccountInUse, addr)
	}
	var (
		required = params.MinimumBalance(space)
		held     uint64
	)
	if prev != nil {
		held = prev.Lamports()
	}
	if required > held {
		if err := s.Transfer(payer, addr, required-held); err != nil {
			return err
		}
	}
	obj := s.getOrNewStateObject(addr)
	obj.SetOwner(owner)
	obj.SetData(make([]byte, space))
	return nil
}

// SetData overwrites the data of an existing account.
func (s *StateDB) SetData(addr common.PublicKey, data []byte) error {
	obj := s.getStateObject(addr)
	if obj == nil {
		return fmt.Errorf("%w: address %s", ErrAccountNotFound, addr)
	}
	obj.SetData(data)
	return nil
}

// CloseAccount moves every lamport held by addr to dest and removes the
// account. It is deleted from the database on commit.
func (s *StateDB) CloseAccount(addr, dest common.PublicKey) error {
	obj := s.getStateObject(addr)
	if obj == nil {
		return fmt.Errorf("%w: address %s", ErrAccountNotFound, addr)
	}
	if err := s.Transfer(addr, dest, obj.Lamports()); err != nil {
		return err
	}
	obj.SetData(nil)
	obj.SetOwner(params.SystemProgramID)
	obj.markDeleted()
	return nil
}

// getStateObject retrieves a state object given by the address, returning nil if
// the object is not found or was closed in this execution context.
func (s *StateDB) getStateObject(addr common.PublicKey) *stateObject {
	if obj := s.getDeletedStateObject(addr); obj != nil && !obj.deleted {
		return obj
	}
	return nil
}

// getDeletedStateObject is similar to getStateObject, but instead of returning
// nil for a closed state object, it returns the actual object with the deleted
// flag set. This is needed by the state journal to revert to the correct
// object instead of wiping all knowledge about it.
func (s *StateDB) getDeletedStateObject(addr common.PublicKey) *stateObject {
	// Prefer live objects if any is available
	if obj := s.stateObjects[addr]; obj != nil {
		return obj
	}
	acc, err := s.db.ReadAccount(addr)
	if err != nil {
		s.setError(fmt.Errorf("getDeletedStateObject (%s) error: %v", addr, err))
		return nil
	}
	if acc == nil {
		return nil
	}
	// Insert into the live set
	obj := newObject(s, addr, *acc)
	s.setStateObject(obj)
	return obj
}

func (s *StateDB) setStateObject(object *stateObject) {
	s.stateObjects[object.Address()] = object
}

// getOrNewStateObject retrieves a state object or create a new system owned
// one if nil.
func (s *StateDB) getOrNewStateObject(addr common.PublicKey) *stateObject {
	obj := s.getStateObject(addr)
	if obj == nil {
		obj = s.createObject(addr)
	}
	return obj
}

// createObject creates a new state object. If there is a closed account with
// the given address, it is replaced and restored again on revert.
func (s *StateDB) createObject(addr common.PublicKey) *stateObject {
	prev := s.getDeletedStateObject(addr) // Note, prev might have been deleted, we need that!

	newobj := newObject(s, addr, types.Account{Owner: params.SystemProgramID})
	if prev == nil {
		s.journal.append(createObjectChange{account: &addr})
	} else {
		s.journal.append(resetObjectChange{prev: prev})
	}
	s.setStateObject(newobj)
	return newobj
}

// Copy creates a deep, independent copy of the state.
// Snapshots of the copied state cannot be applied to the copy.
func (s *StateDB) Copy() *StateDB {
	state := &StateDB{
		db:           s.db,
		stateObjects: make(map[common.PublicKey]*stateObject, len(s.stateObjects)),
		logs:         make(map[common.Hash][]*types.Log, len(s.logs)),
		logSize:      s.logSize,
		thash:        s.thash,
		journal:      newJournal(),
	}
	for addr, obj := range s.stateObjects {
		state.stateObjects[addr] = obj.deepCopy(state)
	}
	for hash, logs := range s.logs {
		cpy := make([]*types.Log, len(logs))
		for i, l := range logs {
			cpy[i] = new(types.Log)
			*cpy[i] = *l
		}
		state.logs[hash] = cpy
	}
	return state
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	id := s.nextRevisionId
	s.nextRevisionId++
	s.validRevisions = append(s.validRevisions, revision{id, s.journal.length()})
	return id
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (s *StateDB) RevertToSnapshot(revid int) {
	// Find the snapshot in the stack of valid snapshots.
	idx := sort.Search(len(s.validRevisions), func(i int) bool {
		return s.validRevisions[i].id >= revid
	})
	if idx == len(s.validRevisions) || s.validRevisions[idx].id != revid {
		panic(fmt.Errorf("revision id %v cannot be reverted", revid))
	}
	snapshot := s.validRevisions[idx].journalIndex

	// Replay the journal to undo changes and remove invalidated snapshots
	s.journal.revert(s, snapshot)
	s.validRevisions = s.validRevisions[:idx]
}

// Dirty returns the number of accounts modified since the last commit.
func (s *StateDB) Dirty() int {
	return len(s.journal.dirties)
}

// Commit writes every modified account to the database in one batch, then
// clears the journal and the collected events.
func (s *StateDB) Commit() error {
	if s.dbErr != nil {
		return fmt.Errorf("commit aborted due to earlier error: %v", s.dbErr)
	}
	blobs := make(map[common.PublicKey][]byte, len(s.journal.dirties))
	for addr := range s.journal.dirties {
		obj, exist := s.stateObjects[addr]
		if !exist {
			continue
		}
		if obj.deleted || obj.empty() {
			blobs[addr] = nil
			continue
		}
		blob, err := types.EncodeAccount(&obj.data)
		if err != nil {
			return fmt.Errorf("commit account %s: %v", addr, err)
		}
		blobs[addr] = blob
	}
	if err := s.db.commit(blobs); err != nil {
		log.Error("Failed to commit dirty accounts", "accounts", len(blobs), "err", err)
		return fmt.Errorf("commit: %w", err)
	}
	for addr, blob := range blobs {
		if blob == nil {
			delete(s.stateObjects, addr)
		}
	}
	s.journal = newJournal()
	s.validRevisions = s.validRevisions[:0]
	s.logs = make(map[common.Hash][]*types.Log)
	return nil
}
