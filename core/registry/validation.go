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
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/log"
)

// validateWork records an attestation. The record address is derived from
// the task hash, so a second attestation for the same task fails no matter
// what it claims.
func validateWork(ctx *vm.Context, accs accounts, args *decoder) error {
	var (
		task     = args.hash()
		passed   = args.bool()
		evidence = args.string()
	)
	if err := finishArgs(args); err != nil {
		return err
	}
	identityMeta, err := accs.get(0)
	if err != nil {
		return err
	}
	validationMeta, err := accs.get(1)
	if err != nil {
		return err
	}
	validator, err := accs.writableSigner(2)
	if err != nil {
		return err
	}
	if err := accs.systemProgram(3); err != nil {
		return err
	}
	if err := checkURI(evidence); err != nil {
		return err
	}
	if _, err := loadIdentity(ctx, identityMeta); err != nil {
		return err
	}
	addr, bump := ValidationAddress(identityMeta.PublicKey, task)
	if err := requireAddress(validationMeta, addr); err != nil {
		return err
	}
	if err := requireWritable(validationMeta); err != nil {
		return err
	}
	rec := &ValidationRecord{
		AgentID:     identityMeta.PublicKey,
		Validator:   validator.PublicKey,
		TaskHash:    task,
		Passed:      passed,
		EvidenceURI: evidence,
		Timestamp:   ctx.Time,
		Bump:        bump,
	}
	if err := initRecord(ctx.State, validator.PublicKey, addr, rec); err != nil {
		return err
	}
	emit(ctx, &WorkValidated{
		AgentID:     rec.AgentID,
		Validator:   rec.Validator,
		TaskHash:    task,
		Passed:      passed,
		EvidenceURI: evidence,
	})
	log.Debug("Work validated", "agent", rec.AgentID, "task", task, "passed", passed)
	return nil
}
