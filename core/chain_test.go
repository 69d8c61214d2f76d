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

package core

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/registry"
	"github.com/probechain/go-said/core/state"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/crypto"
	"github.com/probechain/go-said/params"
	"github.com/probechain/go-said/saiddb"
	"github.com/probechain/go-said/saiddb/memorydb"
	"github.com/stretchr/testify/require"
)

var genesisTime = time.Unix(1700000000, 0)

// treasuryKey is the devnet key behind params.TreasuryAuthority. Tests that
// sign as the treasury are skipped on builds with another authority.
func treasuryKey(t *testing.T) ed25519.PrivateKey {
	if !params.IsDevnetTreasury() {
		t.Skip("treasury authority is not the devnet key")
	}
	seed := sha256.Sum256([]byte("go-said devnet treasury authority"))
	return ed25519.NewKeyFromSeed(seed[:])
}

type testChain struct {
	*Chain
	t     *testing.T
	clock *ManualClock
	nonce uint64
}

func newTestChain(t *testing.T, db saiddb.KeyValueStore) *testChain {
	clock := NewManualClock(genesisTime)
	chain, err := NewChain(db, nil, clock)
	require.NoError(t, err)
	return &testChain{Chain: chain, t: t, clock: clock}
}

func (c *testChain) newAccount() (ed25519.PrivateKey, common.PublicKey) {
	priv, err := crypto.GenerateKey()
	require.NoError(c.t, err)
	pub := crypto.PubkeyOf(priv)
	require.NoError(c.t, c.Airdrop(pub, params.LamportsPerSol))
	return priv, pub
}

func (c *testChain) send(ix types.Instruction, keys ...ed25519.PrivateKey) (*types.Receipt, error) {
	c.nonce++
	c.clock.Advance(time.Second)
	return c.SendTransaction(context.Background(), types.NewTransaction(c.nonce, ix).Sign(keys...))
}

func (c *testChain) mustSend(ix types.Instruction, keys ...ed25519.PrivateKey) *types.Receipt {
	receipt, err := c.send(ix, keys...)
	require.NoError(c.t, err)
	require.True(c.t, receipt.Succeeded())
	return receipt
}

func (c *testChain) initTreasury() {
	require.NoError(c.t, c.Airdrop(params.TreasuryAuthority, params.LamportsPerSol))
	c.mustSend(registry.InitializeTreasury(params.TreasuryAuthority), treasuryKey(c.t))
}

func TestTreasuryKeyMatchesAuthority(t *testing.T) {
	require.Equal(t, params.TreasuryAuthority, crypto.PubkeyOf(treasuryKey(t)))
}

func TestChainRecoveryScenario(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	chain.initTreasury()

	xKey, x := chain.newAccount()
	receipt := chain.mustSend(registry.RegisterAgent(x, "ipfs://agent-a"), xKey)
	require.Len(t, receipt.Logs, 1)
	name, _, err := registry.DecodeEvent(receipt.Logs[0])
	require.NoError(t, err)
	require.Equal(t, "AgentRegistered", name)

	id, identity, err := chain.Reader().Identity(x)
	require.NoError(t, err)
	require.Equal(t, genesisTime.Unix()+2, id.CreatedAt)

	for _, positive := range []bool{true, true, true, false} {
		reviewerKey, reviewer := chain.newAccount()
		chain.mustSend(registry.SubmitFeedback(identity, reviewer, positive, "review"), reviewerKey)
	}
	rep, err := chain.Reader().Reputation(identity)
	require.NoError(t, err)
	require.Equal(t, uint16(7500), rep.ReputationScore)

	before := chain.Balance(x)
	chain.mustSend(registry.GetVerified(identity, x), xKey)
	require.Equal(t, before-params.VerificationFee, chain.Balance(x))
	require.Equal(t, params.MinimumBalance(registry.TreasurySpace)+params.VerificationFee, chain.Reader().TreasuryBalance())

	yKey, y := chain.newAccount()
	chain.mustSend(registry.LinkWallet(identity, x, y), xKey, yKey)
	chain.mustSend(registry.TransferAuthority(identity, y), yKey)

	id, err = chain.Reader().IdentityAt(identity)
	require.NoError(t, err)
	require.Equal(t, y, id.Authority)
	require.True(t, id.IsVerified)

	receipt, err = chain.send(registry.UpdateAgent(identity, x, "ipfs://hijack"), xKey)
	require.ErrorIs(t, err, registry.ErrUnauthorized)
	require.False(t, receipt.Succeeded())
	chain.mustSend(registry.UpdateAgent(identity, y, "ipfs://agent-a-v2"), yKey)

	chain.mustSend(registry.WithdrawFees(params.TreasuryAuthority, params.VerificationFee), treasuryKey(t))
	require.Equal(t, params.MinimumBalance(registry.TreasurySpace), chain.Reader().TreasuryBalance())
}

func TestMissingSignature(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()
	chain.mustSend(registry.RegisterAgent(x, "ipfs://agent"), xKey)
	_, identity, err := chain.Reader().Identity(x)
	require.NoError(t, err)

	// The wallet is flagged as signer but only the authority signed.
	_, y := chain.newAccount()
	count := chain.TxCount()
	receipt, err := chain.send(registry.LinkWallet(identity, x, y), xKey)
	require.ErrorIs(t, err, ErrMissingSignature)
	require.Nil(t, receipt)
	require.Equal(t, count, chain.TxCount(), "rejected transactions are not recorded")

	_, _, err = chain.Reader().ResolveWallet(y)
	require.ErrorIs(t, err, registry.ErrAccountNotInitialized)
}

func TestTamperedTransactionRejected(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()

	tx := types.NewTransaction(1, registry.RegisterAgent(x, "ipfs://agent")).Sign(xKey)
	tx.Message.Nonce = 2
	_, err := chain.SendTransaction(context.Background(), tx)
	require.ErrorIs(t, err, types.ErrInvalidSig)
}

func TestFailedTransactionIsAtomic(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()
	_, sink := chain.newAccount()

	// The transfer succeeds, then registration fails on the URI check.
	tx := types.NewTransaction(7,
		vm.TransferInstruction(x, sink, 1000),
		registry.RegisterAgent(x, string(make([]byte, params.MaxURILength+1))),
	).Sign(xKey)

	receipt, err := chain.SendTransaction(context.Background(), tx)
	require.ErrorIs(t, err, registry.ErrURITooLong)
	require.Equal(t, types.ReceiptStatusFailed, receipt.Status)
	require.Contains(t, receipt.Err, "instruction 1")
	require.Empty(t, receipt.Logs)

	require.Equal(t, uint64(params.LamportsPerSol), chain.Balance(x))
	require.Equal(t, uint64(params.LamportsPerSol), chain.Balance(sink))
	stored := chain.Receipt(tx.Hash())
	require.NotNil(t, stored)
	require.Equal(t, types.ReceiptStatusFailed, stored.Status)

	_, err = chain.SendTransaction(context.Background(), tx)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestAlreadyProcessed(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()

	tx := types.NewTransaction(1, registry.RegisterAgent(x, "ipfs://agent")).Sign(xKey)
	_, err := chain.SendTransaction(context.Background(), tx)
	require.NoError(t, err)
	_, err = chain.SendTransaction(context.Background(), tx)
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	// A different nonce makes it a different transaction.
	_, err = chain.SendTransaction(context.Background(), types.NewTransaction(2, registry.RegisterAgent(x, "ipfs://agent")).Sign(xKey))
	require.ErrorIs(t, err, state.ErrAccountInUse)
}

func TestUnknownProgram(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()
	ix := vm.TransferInstruction(x, x, 1)
	ix.ProgramID = common.BytesToPublicKey([]byte("nope"))
	_, err := chain.send(ix, xKey)
	require.ErrorIs(t, err, ErrUnknownProgram)
}

func TestCanceledContext(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := chain.SendTransaction(ctx, types.NewTransaction(1, registry.RegisterAgent(x, "ipfs://agent")).Sign(xKey))
	require.ErrorIs(t, err, context.Canceled)
}

func TestTimestampsNeverDecrease(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()
	_, sink := chain.newAccount()

	first := chain.mustSend(vm.TransferInstruction(x, sink, 1), xKey)
	chain.clock.Set(genesisTime.Add(-time.Hour))
	chain.nonce++
	second, err := chain.SendTransaction(context.Background(), types.NewTransaction(chain.nonce, vm.TransferInstruction(x, sink, 1)).Sign(xKey))
	require.NoError(t, err)
	require.Equal(t, first.Timestamp, second.Timestamp)

	// Registration during the clock skew is stamped with the held time.
	chain.nonce++
	_, err = chain.SendTransaction(context.Background(), types.NewTransaction(chain.nonce, registry.RegisterAgent(x, "ipfs://agent")).Sign(xKey))
	require.NoError(t, err)
	id, _, err := chain.Reader().Identity(x)
	require.NoError(t, err)
	require.Equal(t, first.Timestamp, id.CreatedAt)
}

func TestChainReopen(t *testing.T) {
	db := memorydb.New()
	chain := newTestChain(t, db)
	xKey, x := chain.newAccount()
	receipt := chain.mustSend(registry.RegisterAgent(x, "ipfs://agent"), xKey)

	reopened := newTestChain(t, db)
	require.Equal(t, chain.TxCount(), reopened.TxCount())
	stored := reopened.Receipt(receipt.TxHash)
	require.NotNil(t, stored)
	require.Equal(t, receipt.Logs[0].Topics, stored.Logs[0].Topics)
	require.Equal(t, receipt.Timestamp, stored.Timestamp)

	id, _, err := reopened.Reader().Identity(x)
	require.NoError(t, err)
	require.Equal(t, "ipfs://agent", id.MetadataURI)

	// The reopened chain keeps the timestamp floor of the old one.
	reopened.clock.Set(genesisTime)
	_, sink := reopened.newAccount()
	r, err := reopened.SendTransaction(context.Background(), types.NewTransaction(99, vm.TransferInstruction(x, sink, 1)).Sign(xKey))
	require.NoError(t, err)
	require.Equal(t, receipt.Timestamp, r.Timestamp)
}

var errWriteFailed = errors.New("write failed")

// flakyDB fails every batch write while failing is set.
type flakyDB struct {
	saiddb.KeyValueStore
	failing bool
}

func (db *flakyDB) NewBatch() saiddb.Batch {
	return &flakyBatch{Batch: db.KeyValueStore.NewBatch(), db: db}
}

type flakyBatch struct {
	saiddb.Batch
	db *flakyDB
}

func (b *flakyBatch) Write() error {
	if b.db.failing {
		return errWriteFailed
	}
	return b.Batch.Write()
}

func TestCommitFailureDropsChanges(t *testing.T) {
	db := &flakyDB{KeyValueStore: memorydb.New()}
	chain := newTestChain(t, db)
	xKey, x := chain.newAccount()
	y := common.BytesToPublicKey([]byte("sink"))
	count := chain.TxCount()

	db.failing = true
	tx := types.NewTransaction(1000, vm.TransferInstruction(x, y, 5000)).Sign(xKey)
	receipt, err := chain.SendTransaction(context.Background(), tx)
	require.ErrorIs(t, err, errWriteFailed)
	require.Nil(t, receipt)
	require.Equal(t, count, chain.TxCount())
	require.Nil(t, chain.Receipt(tx.Hash()))
	require.Nil(t, chain.Account(y))

	db.failing = false
	chain.mustSend(vm.TransferInstruction(x, y, 1000), xKey)
	require.Equal(t, uint64(1000), chain.Balance(y))
	require.Equal(t, uint64(params.LamportsPerSol-1000), chain.Balance(x))

	// The same transaction goes through once the disk recovers.
	receipt, err = chain.SendTransaction(context.Background(), tx)
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())
	require.Equal(t, uint64(6000), chain.Balance(y))
}

func TestSystemTransferAndAirdrop(t *testing.T) {
	chain := newTestChain(t, memorydb.New())
	xKey, x := chain.newAccount()
	y := common.BytesToPublicKey([]byte("fresh wallet"))

	require.Nil(t, chain.Account(y))
	chain.mustSend(vm.TransferInstruction(x, y, 5000), xKey)
	require.Equal(t, uint64(5000), chain.Balance(y))
	require.Equal(t, uint64(params.LamportsPerSol-5000), chain.Balance(x))

	_, err := chain.send(vm.TransferInstruction(x, y, 2*params.LamportsPerSol), xKey)
	require.ErrorIs(t, err, state.ErrInsufficientFunds)

	require.ErrorIs(t, chain.Airdrop(y, ^uint64(0)), state.ErrBalanceOverflow)
	require.Equal(t, uint64(5000), chain.Balance(y))
}
