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
)

// journalEntry is a modification entry in the state change journal that can be
// reverted on demand.
type journalEntry interface {
	// revert undoes the changes introduced by this journal entry.
	revert(*StateDB)

	// dirtied returns the address modified by this journal entry.
	dirtied() *common.PublicKey
}

// journal contains the list of state modifications applied since the last state
// commit. These are tracked to be able to be reverted in case of an execution
// exception or revertal request.
type journal struct {
	entries []journalEntry           // Current changes tracked by the journal
	dirties map[common.PublicKey]int // Dirty accounts and the number of changes
}

// newJournal create a new initialized journal.
func newJournal() *journal {
	return &journal{
		dirties: make(map[common.PublicKey]int),
	}
}

// append inserts a new modification entry to the end of the change journal.
func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
	if addr := entry.dirtied(); addr != nil {
		j.dirties[*addr]++
	}
}

// revert undoes a batch of journalled modifications along with any reverted
// dirty handling too.
func (j *journal) revert(statedb *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		// Undo the changes made by the operation
		j.entries[i].revert(statedb)

		// Drop any dirty tracking induced by the change
		if addr := j.entries[i].dirtied(); addr != nil {
			if j.dirties[*addr]--; j.dirties[*addr] == 0 {
				delete(j.dirties, *addr)
			}
		}
	}
	j.entries = j.entries[:snapshot]
}

// length returns the current number of entries in the journal.
func (j *journal) length() int {
	return len(j.entries)
}

type (
	// Changes to the account set.
	createObjectChange struct {
		account *common.PublicKey
	}
	resetObjectChange struct {
		prev *stateObject
	}
	closeChange struct {
		account *common.PublicKey
	}

	// Changes to individual accounts.
	balanceChange struct {
		account *common.PublicKey
		prev    uint64
	}
	ownerChange struct {
		account *common.PublicKey
		prev    common.PublicKey
	}
	dataChange struct {
		account *common.PublicKey
		prev    []byte
	}

	// Changes to other state values.
	addLogChange struct {
		txhash common.Hash
	}
)

func (ch createObjectChange) revert(s *StateDB) {
	delete(s.stateObjects, *ch.account)
}

func (ch createObjectChange) dirtied() *common.PublicKey {
	return ch.account
}

func (ch resetObjectChange) revert(s *StateDB) {
	s.setStateObject(ch.prev)
}

func (ch resetObjectChange) dirtied() *common.PublicKey {
	return nil
}

func (ch closeChange) revert(s *StateDB) {
	if obj := s.stateObjects[*ch.account]; obj != nil {
		obj.deleted = false
	}
}

func (ch closeChange) dirtied() *common.PublicKey {
	return ch.account
}

func (ch balanceChange) revert(s *StateDB) {
	s.stateObjects[*ch.account].setLamports(ch.prev)
}

func (ch balanceChange) dirtied() *common.PublicKey {
	return ch.account
}

func (ch ownerChange) revert(s *StateDB) {
	s.stateObjects[*ch.account].setOwner(ch.prev)
}

func (ch ownerChange) dirtied() *common.PublicKey {
	return ch.account
}

func (ch dataChange) revert(s *StateDB) {
	s.stateObjects[*ch.account].setData(ch.prev)
}

func (ch dataChange) dirtied() *common.PublicKey {
	return ch.account
}

func (ch addLogChange) revert(s *StateDB) {
	logs := s.logs[ch.txhash]
	if len(logs) == 1 {
		delete(s.logs, ch.txhash)
	} else {
		s.logs[ch.txhash] = logs[:len(logs)-1]
	}
	s.logSize--
}

func (ch addLogChange) dirtied() *common.PublicKey {
	return nil
}
