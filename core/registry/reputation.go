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
	"github.com/holiman/uint256"
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/log"
)

// MaxScore is the reputation score of an agent with only positive feedback.
const MaxScore = 10000

// Score returns floor(positive * MaxScore / total), zero for no feedback.
// The product is computed in 256 bits so it is exact for any counters.
func Score(positive, total uint64) uint16 {
	if total == 0 {
		return 0
	}
	num := new(uint256.Int).SetUint64(positive)
	num.Mul(num, new(uint256.Int).SetUint64(MaxScore))
	num.Div(num, new(uint256.Int).SetUint64(total))
	return uint16(num.Uint64())
}

// loadOrCreateReputation returns the reputation record at meta, creating it
// funded by payer on first use.
func loadOrCreateReputation(ctx *vm.Context, meta types.AccountMeta, identity, payer common.PublicKey) (*AgentReputation, error) {
	addr, bump := ReputationAddress(identity)
	if err := requireAddress(meta, addr); err != nil {
		return nil, err
	}
	if err := requireWritable(meta); err != nil {
		return nil, err
	}
	if acc := ctx.State.GetAccount(addr); acc != nil && len(acc.Data) > 0 {
		rep := new(AgentReputation)
		if err := loadRecord(ctx.State, meta, rep); err != nil {
			return nil, err
		}
		return rep, nil
	}
	rep := &AgentReputation{AgentID: identity, Bump: bump}
	if err := initRecord(ctx.State, payer, addr, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func submitFeedback(ctx *vm.Context, accs accounts, args *decoder) error {
	var (
		positive = args.bool()
		context  = args.string()
	)
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	reputationMeta, err := accs.get(1)
	if err != nil {
		return err
	}
	reviewer, err := accs.writableSigner(2)
	if err != nil {
		return err
	}
	if err := accs.systemProgram(3); err != nil {
		return err
	}
	if _, err := loadIdentity(ctx, identityMeta); err != nil {
		return err
	}
	rep, err := loadOrCreateReputation(ctx, reputationMeta, identityMeta.PublicKey, reviewer.PublicKey)
	if err != nil {
		return err
	}
	if rep.TotalInteractions, err = increment(rep.TotalInteractions); err != nil {
		return err
	}
	if positive {
		rep.PositiveFeedback, err = increment(rep.PositiveFeedback)
	} else {
		rep.NegativeFeedback, err = increment(rep.NegativeFeedback)
	}
	if err != nil {
		return err
	}
	rep.ReputationScore = Score(rep.PositiveFeedback, rep.TotalInteractions)
	rep.LastUpdated = ctx.Time

	if err := storeRecord(ctx.State, reputationMeta.PublicKey, rep); err != nil {
		return err
	}
	emit(ctx, &FeedbackSubmitted{
		AgentID:  rep.AgentID,
		From:     reviewer.PublicKey,
		Positive: positive,
		Context:  context,
		NewScore: rep.ReputationScore,
	})
	log.Debug("Feedback submitted", "agent", rep.AgentID, "positive", positive, "score", rep.ReputationScore, "total", rep.TotalInteractions)
	return nil
}
