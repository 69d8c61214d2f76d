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

package registry

import (
	"strings"
	"testing"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/state"
	"github.com/probechain/go-said/params"
	"github.com/stretchr/testify/require"
)

func TestInitializeTreasury(t *testing.T) {
	env := newTestEnv(t)

	impostor := env.newKey()
	require.ErrorIs(t, env.exec(InitializeTreasury(impostor)), ErrUnauthorizedAuthority)

	env.initTreasury()
	treasury, addr, err := env.reader().Treasury()
	require.NoError(t, err)
	require.Equal(t, params.TreasuryAuthority, treasury.Authority)
	require.Zero(t, treasury.TotalCollected)
	require.Equal(t, params.MinimumBalance(TreasurySpace), env.state.GetBalance(addr))

	require.ErrorIs(t, env.exec(InitializeTreasury(params.TreasuryAuthority)), state.ErrAccountInUse)
}

func TestWithdrawFees(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury()
	owner, identity := env.register("ipfs://agent")
	env.mustExec(GetVerified(identity, owner))

	_, addr, err := env.reader().Treasury()
	require.NoError(t, err)
	reserve := params.MinimumBalance(TreasurySpace)
	require.Equal(t, reserve+params.VerificationFee, env.state.GetBalance(addr))

	stranger := env.newKey()
	require.ErrorIs(t, env.exec(WithdrawFees(stranger, 1)), ErrUnauthorizedAuthority)

	// Dipping into the rent reserve is refused.
	require.ErrorIs(t, env.exec(WithdrawFees(params.TreasuryAuthority, params.VerificationFee+1)), ErrInsufficientTreasuryBalance)
	require.ErrorIs(t, env.exec(WithdrawFees(params.TreasuryAuthority, reserve+params.VerificationFee+1)), ErrInsufficientTreasuryBalance)

	before := env.state.GetBalance(params.TreasuryAuthority)
	env.mustExec(WithdrawFees(params.TreasuryAuthority, params.VerificationFee))
	require.Equal(t, reserve, env.state.GetBalance(addr))
	require.Equal(t, before+params.VerificationFee, env.state.GetBalance(params.TreasuryAuthority))

	// Withdrawals do not touch the lifetime intake counter.
	treasury, _, err := env.reader().Treasury()
	require.NoError(t, err)
	require.Equal(t, params.VerificationFee, treasury.TotalCollected)

	require.ErrorIs(t, env.exec(WithdrawFees(params.TreasuryAuthority, 1)), ErrInsufficientTreasuryBalance)
	env.mustExec(WithdrawFees(params.TreasuryAuthority, 0))
}

func TestRegisterAgent(t *testing.T) {
	env := newTestEnv(t)
	env.now = 1700000123

	owner, identity := env.register("ipfs://first")
	id := env.identity(identity)
	require.Equal(t, owner, id.Owner)
	require.Equal(t, owner, id.Authority)
	require.Equal(t, "ipfs://first", id.MetadataURI)
	require.Equal(t, int64(1700000123), id.CreatedAt)
	require.False(t, id.IsVerified)
	require.Nil(t, id.VerifiedAt)
	require.Equal(t, params.LamportsPerSol-params.MinimumBalance(IdentitySpace), env.state.GetBalance(owner))

	// A second registration by the same owner fails and leaves the record alone.
	env.now += 10
	require.ErrorIs(t, env.exec(RegisterAgent(owner, "ipfs://second")), state.ErrAccountInUse)
	again := env.identity(identity)
	require.Equal(t, "ipfs://first", again.MetadataURI)
	require.Equal(t, int64(1700000123), again.CreatedAt)

	viaOwner, addr, err := env.reader().Identity(owner)
	require.NoError(t, err)
	require.Equal(t, identity, addr)
	require.Equal(t, id, viaOwner)
}

func TestRegisterAgentURILimit(t *testing.T) {
	env := newTestEnv(t)

	long := env.newKey()
	require.ErrorIs(t, env.exec(RegisterAgent(long, strings.Repeat("x", params.MaxURILength+1))), ErrURITooLong)
	require.False(t, env.state.Exist(mustIdentityAddress(long)))

	fits := env.newKey()
	env.mustExec(RegisterAgent(fits, strings.Repeat("x", params.MaxURILength)))
}

func TestUpdateAgentRequiresAuthority(t *testing.T) {
	env := newTestEnv(t)
	owner, identity := env.register("ipfs://v1")

	stranger := env.newKey()
	require.ErrorIs(t, env.exec(UpdateAgent(identity, stranger, "ipfs://evil")), ErrUnauthorized)
	require.Equal(t, "ipfs://v1", env.identity(identity).MetadataURI)

	env.mustExec(UpdateAgent(identity, owner, "ipfs://v2"))
	require.Equal(t, "ipfs://v2", env.identity(identity).MetadataURI)

	require.ErrorIs(t, env.exec(UpdateAgent(identity, owner, strings.Repeat("y", params.MaxURILength+1))), ErrURITooLong)
	require.Equal(t, "ipfs://v2", env.identity(identity).MetadataURI)
}

func TestGetVerified(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury()
	owner, identity := env.register("ipfs://agent")

	stranger := env.newKey()
	require.ErrorIs(t, env.exec(GetVerified(identity, stranger)), ErrUnauthorized)

	before := env.state.GetBalance(owner)
	env.now = 1700000500
	env.mustExec(GetVerified(identity, owner))

	id := env.identity(identity)
	require.True(t, id.IsVerified)
	require.NotNil(t, id.VerifiedAt)
	require.Equal(t, int64(1700000500), *id.VerifiedAt)
	require.Equal(t, before-params.VerificationFee, env.state.GetBalance(owner))

	// Verifying again charges again and re-stamps.
	env.now = 1700000600
	env.mustExec(GetVerified(identity, owner))
	require.Equal(t, int64(1700000600), *env.identity(identity).VerifiedAt)
	require.Equal(t, before-2*params.VerificationFee, env.state.GetBalance(owner))

	treasury, _, err := env.reader().Treasury()
	require.NoError(t, err)
	require.Equal(t, 2*params.VerificationFee, treasury.TotalCollected)
}

func TestGetVerifiedInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury()

	owner, identity := env.register("ipfs://agent")
	// Drain the owner to just below the fee.
	sink := common.BytesToPublicKey([]byte("sink"))
	require.NoError(t, env.state.Transfer(owner, sink, env.state.GetBalance(owner)-params.VerificationFee+1))
	require.NoError(t, env.state.Commit())

	require.ErrorIs(t, env.exec(GetVerified(identity, owner)), state.ErrInsufficientFunds)
	require.False(t, env.identity(identity).IsVerified)
	treasury, _, err := env.reader().Treasury()
	require.NoError(t, err)
	require.Zero(t, treasury.TotalCollected)
}

func TestGetVerifiedWithoutTreasury(t *testing.T) {
	env := newTestEnv(t)
	owner, identity := env.register("ipfs://agent")
	require.ErrorIs(t, env.exec(GetVerified(identity, owner)), ErrAccountNotInitialized)
}

func TestLinkWallet(t *testing.T) {
	env := newTestEnv(t)
	owner, identity := env.register("ipfs://agent")
	wallet := env.newKey()

	stranger := env.newKey()
	require.ErrorIs(t, env.exec(LinkWallet(identity, stranger, wallet)), ErrUnauthorized)

	unsigned := LinkWallet(identity, owner, wallet)
	unsigned.Accounts[2].IsSigner = false
	require.ErrorIs(t, env.exec(unsigned), ErrAccountNotSigner)

	before := env.state.GetBalance(owner)
	env.mustExec(LinkWallet(identity, owner, wallet))
	require.Equal(t, before-params.MinimumBalance(WalletLinkSpace), env.state.GetBalance(owner))

	link, id, err := env.reader().ResolveWallet(wallet)
	require.NoError(t, err)
	require.Equal(t, identity, link.AgentID)
	require.Equal(t, wallet, link.Wallet)
	require.Equal(t, owner, id.Owner)

	// One link per wallet, even towards another identity.
	otherOwner, otherIdentity := env.register("ipfs://other")
	require.ErrorIs(t, env.exec(LinkWallet(otherIdentity, otherOwner, wallet)), state.ErrAccountInUse)
	require.ErrorIs(t, env.exec(LinkWallet(identity, owner, wallet)), state.ErrAccountInUse)
}

func TestUnlinkWallet(t *testing.T) {
	env := newTestEnv(t)
	owner, identity := env.register("ipfs://agent")
	wallet := env.newKey()
	env.mustExec(LinkWallet(identity, owner, wallet))

	stranger := env.newKey()
	require.ErrorIs(t, env.exec(UnlinkWallet(identity, wallet, stranger)), ErrUnauthorized)

	// The link must belong to the stated identity.
	otherOwner, otherIdentity := env.register("ipfs://other")
	require.ErrorIs(t, env.exec(UnlinkWallet(otherIdentity, wallet, otherOwner)), ErrWalletNotLinked)

	before := env.state.GetBalance(owner)
	env.mustExec(UnlinkWallet(identity, wallet, owner))
	require.Equal(t, before+params.MinimumBalance(WalletLinkSpace), env.state.GetBalance(owner))

	_, _, err := env.reader().ResolveWallet(wallet)
	require.ErrorIs(t, err, ErrAccountNotInitialized)
	require.ErrorIs(t, env.exec(UnlinkWallet(identity, wallet, owner)), ErrAccountNotInitialized)

	// The wallet may remove its own link, and may be linked again later.
	env.mustExec(LinkWallet(identity, owner, wallet))
	walletBefore := env.state.GetBalance(wallet)
	env.mustExec(UnlinkWallet(identity, wallet, wallet))
	require.Equal(t, walletBefore+params.MinimumBalance(WalletLinkSpace), env.state.GetBalance(wallet))
}

func TestTransferAuthority(t *testing.T) {
	env := newTestEnv(t)
	owner, identity := env.register("ipfs://agent")
	backup := env.newKey()

	require.ErrorIs(t, env.exec(TransferAuthority(identity, backup)), ErrWalletNotLinked)

	// A link to some other identity is not enough.
	otherOwner, otherIdentity := env.register("ipfs://other")
	env.mustExec(LinkWallet(otherIdentity, otherOwner, backup))
	require.ErrorIs(t, env.exec(TransferAuthority(identity, backup)), ErrWalletNotLinked)
	require.Equal(t, owner, env.identity(identity).Authority)

	env.mustExec(UnlinkWallet(otherIdentity, backup, backup))
	env.mustExec(LinkWallet(identity, owner, backup))
	env.mustExec(TransferAuthority(identity, backup))

	id := env.identity(identity)
	require.Equal(t, backup, id.Authority)
	require.Equal(t, owner, id.Owner, "owner never changes")

	require.ErrorIs(t, env.exec(UpdateAgent(identity, owner, "ipfs://old")), ErrUnauthorized)
	env.mustExec(UpdateAgent(identity, backup, "ipfs://new"))

	// The recovered authority manages links from now on.
	next := env.newKey()
	require.ErrorIs(t, env.exec(LinkWallet(identity, owner, next)), ErrUnauthorized)
	env.mustExec(LinkWallet(identity, backup, next))

	// The identity address is still derived from the original owner.
	viaOwner, addr, err := env.reader().Identity(owner)
	require.NoError(t, err)
	require.Equal(t, identity, addr)
	require.Equal(t, backup, viaOwner.Authority)
}

func TestTransferAuthorityWrongLinkAccount(t *testing.T) {
	env := newTestEnv(t)
	owner, identity := env.register("ipfs://agent")
	backup, other := env.newKey(), env.newKey()
	env.mustExec(LinkWallet(identity, owner, other))

	// Presenting someone else's link for the candidate is a seeds violation.
	ix := TransferAuthority(identity, backup)
	ix.Accounts[1].PublicKey = mustWalletLinkAddress(other)
	require.ErrorIs(t, env.exec(ix), ErrConstraintSeeds)
}

func TestSubmitFeedback(t *testing.T) {
	env := newTestEnv(t)
	_, identity := env.register("ipfs://agent")
	reviewer := env.newKey()

	_, err := env.reader().Reputation(identity)
	require.ErrorIs(t, err, ErrAccountNotInitialized)

	before := env.state.GetBalance(reviewer)
	env.mustExec(SubmitFeedback(identity, reviewer, true, "great"))
	require.Equal(t, before-params.MinimumBalance(ReputationSpace), env.state.GetBalance(reviewer), "first reviewer funds the record")

	rep, err := env.reader().Reputation(identity)
	require.NoError(t, err)
	require.Equal(t, uint16(10000), rep.ReputationScore)

	env.mustExec(SubmitFeedback(identity, reviewer, false, "meh"))
	rep, err = env.reader().Reputation(identity)
	require.NoError(t, err)
	require.Equal(t, uint16(5000), rep.ReputationScore)
	require.Equal(t, before-params.MinimumBalance(ReputationSpace), env.state.GetBalance(reviewer), "later reviews are free")
}

func TestFeedbackInvariants(t *testing.T) {
	env := newTestEnv(t)
	_, identity := env.register("ipfs://agent")
	reviewer := env.newKey()

	var positive uint64
	pattern := []bool{true, false, true, true, false, false, true, true, true, false, true}
	for i, good := range pattern {
		env.now++
		env.mustExec(SubmitFeedback(identity, reviewer, good, "review"))
		if good {
			positive++
		}
		rep, err := env.reader().Reputation(identity)
		require.NoError(t, err)
		require.Equal(t, identity, rep.AgentID)
		require.Equal(t, uint64(i+1), rep.TotalInteractions)
		require.Equal(t, rep.TotalInteractions, rep.PositiveFeedback+rep.NegativeFeedback)
		require.Equal(t, positive, rep.PositiveFeedback)
		require.Equal(t, uint16(positive*10000/uint64(i+1)), rep.ReputationScore)
		require.Equal(t, env.now, rep.LastUpdated)
	}
}

func TestFeedbackOverflow(t *testing.T) {
	env := newTestEnv(t)
	_, identity := env.register("ipfs://agent")
	reviewer := env.newKey()
	env.mustExec(SubmitFeedback(identity, reviewer, true, ""))

	addr := mustReputationAddress(identity)
	rep, err := env.reader().Reputation(identity)
	require.NoError(t, err)
	rep.TotalInteractions = ^uint64(0)
	rep.PositiveFeedback = ^uint64(0)
	require.NoError(t, storeRecord(env.state, addr, rep))
	require.NoError(t, env.state.Commit())

	require.ErrorIs(t, env.exec(SubmitFeedback(identity, reviewer, true, "")), ErrArithmeticOverflow)
}

func TestFeedbackForUnknownAgent(t *testing.T) {
	env := newTestEnv(t)
	reviewer := env.newKey()
	ghost := mustIdentityAddress(env.newKey())
	require.ErrorIs(t, env.exec(SubmitFeedback(ghost, reviewer, true, "")), ErrAccountNotInitialized)
}

func TestValidateWork(t *testing.T) {
	env := newTestEnv(t)
	_, identity := env.register("ipfs://agent")
	validator := env.newKey()
	task := common.HexToHash("0x1234")

	env.now = 1700000900
	env.mustExec(ValidateWork(identity, validator, task, true, "ipfs://evidence"))

	rec, err := env.reader().Validation(identity, task)
	require.NoError(t, err)
	require.Equal(t, &ValidationRecord{
		AgentID:     identity,
		Validator:   validator,
		TaskHash:    task,
		Passed:      true,
		EvidenceURI: "ipfs://evidence",
		Timestamp:   1700000900,
		Bump:        rec.Bump,
	}, rec)

	// Same task again fails whatever the verdict, also for other validators.
	require.ErrorIs(t, env.exec(ValidateWork(identity, validator, task, false, "ipfs://retry")), state.ErrAccountInUse)
	require.ErrorIs(t, env.exec(ValidateWork(identity, env.newKey(), task, true, "ipfs://retry")), state.ErrAccountInUse)

	rec, err = env.reader().Validation(identity, task)
	require.NoError(t, err)
	require.True(t, rec.Passed)

	other := common.HexToHash("0x5678")
	env.mustExec(ValidateWork(identity, validator, other, false, ""))
	rec, err = env.reader().Validation(identity, other)
	require.NoError(t, err)
	require.False(t, rec.Passed)

	require.ErrorIs(t, env.exec(ValidateWork(identity, validator, common.HexToHash("0x9"), true, strings.Repeat("e", params.MaxURILength+1))), ErrURITooLong)
}

// TestRecoveryScenario walks through the full agent lifecycle: registration,
// reputation, verification, wallet linking and key recovery.
func TestRecoveryScenario(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury()

	x, identity := env.register("ipfs://agent-a")
	for i, positive := range []bool{true, true, true, false} {
		env.mustExec(SubmitFeedback(identity, env.newKey(), positive, "review"))
		env.now += int64(i + 1)
	}
	rep, err := env.reader().Reputation(identity)
	require.NoError(t, err)
	require.Equal(t, uint64(4), rep.TotalInteractions)
	require.Equal(t, uint64(3), rep.PositiveFeedback)
	require.Equal(t, uint16(7500), rep.ReputationScore)

	before := env.state.GetBalance(x)
	env.mustExec(GetVerified(identity, x))
	require.Equal(t, before-params.VerificationFee, env.state.GetBalance(x))
	require.True(t, env.identity(identity).IsVerified)

	y := env.newKey()
	env.mustExec(LinkWallet(identity, x, y))
	link, _, err := env.reader().ResolveWallet(y)
	require.NoError(t, err)
	require.Equal(t, identity, link.AgentID)

	env.mustExec(TransferAuthority(identity, y))
	require.Equal(t, y, env.identity(identity).Authority)
	require.ErrorIs(t, env.exec(UpdateAgent(identity, x, "ipfs://hijack")), ErrUnauthorized)
}

func mustIdentityAddress(owner common.PublicKey) common.PublicKey {
	addr, _ := IdentityAddress(owner)
	return addr
}

func mustWalletLinkAddress(wallet common.PublicKey) common.PublicKey {
	addr, _ := WalletLinkAddress(wallet)
	return addr
}

func mustReputationAddress(identity common.PublicKey) common.PublicKey {
	addr, _ := ReputationAddress(identity)
	return addr
}
