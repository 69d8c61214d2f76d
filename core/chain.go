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

// Package core implements the host runtime the registry program executes on.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/rawdb"
	"github.com/probechain/go-said/core/registry"
	"github.com/probechain/go-said/core/state"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/params"
	"github.com/probechain/go-said/saiddb"
)

var (
	// ErrMissingSignature is returned if an account marked as signer did not
	// sign the transaction.
	ErrMissingSignature = errors.New("missing signature")

	// ErrUnknownProgram is returned for instructions addressed to a program
	// the chain does not host.
	ErrUnknownProgram = errors.New("unknown program")

	// ErrAlreadyProcessed is returned when a transaction with the same hash
	// was executed before.
	ErrAlreadyProcessed = errors.New("transaction already processed")
)

// Config holds the tunables of the host runtime.
type Config struct {
	StateCache   int // Megabytes of clean account cache
	ReceiptCache int // Number of recent receipts kept in memory
}

// DefaultConfig contains the default runtime settings.
var DefaultConfig = Config{
	StateCache:   16,
	ReceiptCache: 256,
}

// Chain executes transactions against the account store one at a time. A
// transaction either commits all of its instructions or none of them.
type Chain struct {
	db       saiddb.KeyValueStore
	statedb  state.Database
	state    *state.StateDB // live state, equal to the committed state between transactions
	programs map[common.PublicKey]vm.Program
	registry *registry.Program
	clock    Clock
	receipts *lru.Cache

	lastTime int64
	txCount  uint64

	mu sync.Mutex // serializes transaction execution
}

// NewChain opens the chain stored in db.
func NewChain(db saiddb.KeyValueStore, config *Config, clock Clock) (*Chain, error) {
	cfg := DefaultConfig
	if config != nil {
		cfg = *config
	}
	if cfg.ReceiptCache <= 0 {
		cfg.ReceiptCache = DefaultConfig.ReceiptCache
	}
	if clock == nil {
		clock = SystemClock()
	}
	receipts, err := lru.New(cfg.ReceiptCache)
	if err != nil {
		return nil, err
	}
	sdb := state.NewDatabaseWithCache(db, cfg.StateCache)
	c := &Chain{
		db:       db,
		statedb:  sdb,
		state:    state.New(sdb),
		registry: registry.New(),
		clock:    clock,
		receipts: receipts,
		lastTime: rawdb.ReadLastTimestamp(db),
		txCount:  rawdb.ReadTxCount(db),
	}
	c.programs = map[common.PublicKey]vm.Program{
		vm.SystemProgram{}.ID(): vm.SystemProgram{},
		c.registry.ID():         c.registry,
	}
	log.Info("Opened chain", "transactions", c.txCount, "last", c.lastTime)
	if params.IsDevnetTreasury() {
		log.Warn("Treasury authority is the public devnet key", "authority", params.TreasuryAuthority)
	}
	return c, nil
}

// now returns the current timestamp, never earlier than the previous one.
func (c *Chain) now() int64 {
	now := c.clock.Now().Unix()
	if now < c.lastTime {
		log.Warn("Clock went backwards, holding timestamp", "clock", now, "last", c.lastTime)
		return c.lastTime
	}
	return now
}

// SendTransaction verifies the signatures of tx and executes it. On failure
// every change is reverted, and the returned receipt records the error.
func (c *Chain) SendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	signers, err := tx.Signers()
	if err != nil {
		return nil, err
	}
	for _, key := range tx.RequiredSigners() {
		if !signers.Contains(key) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSignature, key)
		}
	}
	hash := tx.Hash()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.receipt(hash) != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyProcessed, hash)
	}
	var (
		now   = c.now()
		vmctx = &vm.Context{State: c.state, Time: now, TxHash: hash}
		snap  = c.state.Snapshot()
	)
	c.state.Prepare(hash)

	receipt := &types.Receipt{TxHash: hash, Timestamp: now}
	if err := c.execute(vmctx, tx); err != nil {
		c.state.RevertToSnapshot(snap)
		receipt.Status = types.ReceiptStatusFailed
		receipt.Err = err.Error()
		receipt.Logs = []*types.Log{}
		c.persist(receipt)
		log.Warn("Transaction reverted", "hash", hash, "err", err)
		return receipt, err
	}
	receipt.Status = types.ReceiptStatusSuccessful
	receipt.Logs = append([]*types.Log{}, c.state.GetLogs(hash)...)

	if err := c.state.Commit(); err != nil {
		c.resetState()
		log.Error("Failed to commit transaction", "hash", hash, "err", err)
		return nil, err
	}
	c.persist(receipt)
	log.Info("Transaction committed", "hash", hash, "instructions", len(tx.Message.Instructions), "events", len(receipt.Logs))
	return receipt, nil
}

func (c *Chain) execute(ctx *vm.Context, tx *types.Transaction) error {
	for i, ix := range tx.Message.Instructions {
		program, ok := c.programs[ix.ProgramID]
		if !ok {
			return fmt.Errorf("instruction %d: %w: %s", i, ErrUnknownProgram, ix.ProgramID)
		}
		if err := program.Execute(ctx, ix.Accounts, ix.Data); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return nil
}

// resetState drops every uncommitted change by reloading the account store
// from disk.
func (c *Chain) resetState() {
	c.state = state.New(c.statedb)
}

// persist records a processed transaction.
func (c *Chain) persist(receipt *types.Receipt) {
	c.txCount++
	c.lastTime = receipt.Timestamp

	batch := c.db.NewBatch()
	rawdb.WriteReceipt(batch, receipt)
	rawdb.WriteLastTimestamp(batch, c.lastTime)
	rawdb.WriteTxCount(batch, c.txCount)
	if err := batch.Write(); err != nil {
		log.Crit("Failed to write receipt", "hash", receipt.TxHash, "err", err)
	}
	c.receipts.Add(receipt.TxHash, receipt)
}

// Airdrop credits lamports to addr out of thin air. It exists for local
// development networks.
func (c *Chain) Airdrop(addr common.PublicKey, lamports uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state.Snapshot()
	if err := c.state.AddBalance(addr, lamports); err != nil {
		c.state.RevertToSnapshot(snap)
		return err
	}
	if err := c.state.Commit(); err != nil {
		c.resetState()
		return err
	}
	log.Info("Airdropped lamports", "to", addr, "amount", lamports)
	return nil
}

// Receipt returns the receipt of a processed transaction, or nil.
func (c *Chain) Receipt(hash common.Hash) *types.Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipt(hash)
}

func (c *Chain) receipt(hash common.Hash) *types.Receipt {
	if cached, ok := c.receipts.Get(hash); ok {
		return cached.(*types.Receipt)
	}
	receipt := rawdb.ReadReceipt(c.db, hash)
	if receipt != nil {
		c.receipts.Add(hash, receipt)
	}
	return receipt
}

// Account returns the committed account at addr, or nil.
func (c *Chain) Account(addr common.PublicKey) *types.Account {
	return state.New(c.statedb).GetAccount(addr)
}

// Balance returns the committed lamports of addr.
func (c *Chain) Balance(addr common.PublicKey) uint64 {
	return state.New(c.statedb).GetBalance(addr)
}

// Reader returns a registry view of the committed state.
func (c *Chain) Reader() *registry.Reader {
	return registry.NewReader(state.New(c.statedb))
}

// Registry returns the hosted registry program.
func (c *Chain) Registry() *registry.Program {
	return c.registry
}

// TxCount returns the number of processed transactions.
func (c *Chain) TxCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txCount
}
