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
	"testing"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/state"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/crypto"
	"github.com/probechain/go-said/params"
	"github.com/probechain/go-said/saiddb/memorydb"
	"github.com/stretchr/testify/require"
)

// testEnv runs instructions directly against the program. Signer flags on
// account metas are taken at face value, as the host would have verified
// them.
type testEnv struct {
	t       *testing.T
	state   *state.StateDB
	program *Program
	now     int64
	txs     uint64
	logs    []*types.Log // events of the last successful exec
}

func newTestEnv(t *testing.T) *testEnv {
	return &testEnv{
		t:       t,
		state:   state.New(state.NewDatabase(memorydb.New())),
		program: New(),
		now:     1700000000,
	}
}

func (e *testEnv) newKey() common.PublicKey {
	priv, err := crypto.GenerateKey()
	require.NoError(e.t, err)
	key := crypto.PubkeyOf(priv)
	e.fund(key, params.LamportsPerSol)
	return key
}

func (e *testEnv) fund(key common.PublicKey, lamports uint64) {
	require.NoError(e.t, e.state.AddBalance(key, lamports))
	require.NoError(e.t, e.state.Commit())
}

// exec runs the instructions as one transaction.
func (e *testEnv) exec(ixs ...types.Instruction) error {
	e.txs++
	hash := crypto.Keccak256Hash([]byte{byte(e.txs), byte(e.txs >> 8)})
	ctx := &vm.Context{State: e.state, Time: e.now, TxHash: hash}

	e.state.Prepare(hash)
	snap := e.state.Snapshot()
	for _, ix := range ixs {
		if err := e.program.Execute(ctx, ix.Accounts, ix.Data); err != nil {
			e.state.RevertToSnapshot(snap)
			return err
		}
	}
	e.logs = e.state.GetLogs(hash)
	return e.state.Commit()
}

func (e *testEnv) mustExec(ixs ...types.Instruction) {
	require.NoError(e.t, e.exec(ixs...))
}

func (e *testEnv) reader() *Reader {
	return NewReader(e.state)
}

// initTreasury creates the treasury as the compiled-in authority.
func (e *testEnv) initTreasury() {
	e.fund(params.TreasuryAuthority, params.LamportsPerSol)
	e.mustExec(InitializeTreasury(params.TreasuryAuthority))
}

// register creates an identity for a fresh key and returns both.
func (e *testEnv) register(uri string) (owner, identity common.PublicKey) {
	owner = e.newKey()
	e.mustExec(RegisterAgent(owner, uri))
	identity, _ = IdentityAddress(owner)
	return owner, identity
}

func (e *testEnv) identity(addr common.PublicKey) *AgentIdentity {
	id, err := e.reader().IdentityAt(addr)
	require.NoError(e.t, err)
	return id
}
