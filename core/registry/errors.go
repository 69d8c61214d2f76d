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

import "fmt"

// ProgramError is an error raised by the registry program. Errors are
// compared by identity, so callers can match them with errors.Is even when
// wrapped with more context.
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("Error Code: %s. Error Number: %d. Error Message: %s.", e.Name, e.Code, e.Msg)
}

func newError(code uint32, name, msg string) *ProgramError {
	err := &ProgramError{Code: code, Name: name, Msg: msg}
	errorsByCode[code] = err
	return err
}

var errorsByCode = make(map[uint32]*ProgramError)

// ErrorByCode returns the registry error with the given code, nil if the
// code is unknown.
func ErrorByCode(code uint32) *ProgramError {
	return errorsByCode[code]
}

// Instruction decoding errors.
var (
	ErrInstructionMissing           = newError(100, "InstructionMissing", "8 byte instruction identifier not provided")
	ErrInstructionFallbackNotFound  = newError(101, "InstructionFallbackNotFound", "Fallback functions are not supported")
	ErrInstructionDidNotDeserialize = newError(102, "InstructionDidNotDeserialize", "The program could not deserialize the given instruction")
)

// Account constraint errors.
var (
	ErrConstraintMut                = newError(2000, "ConstraintMut", "A mut constraint was violated")
	ErrConstraintSeeds              = newError(2006, "ConstraintSeeds", "A seeds constraint was violated")
	ErrAccountDiscriminatorNotFound = newError(3001, "AccountDiscriminatorNotFound", "No discriminator was found on the account")
	ErrAccountDiscriminatorMismatch = newError(3002, "AccountDiscriminatorMismatch", "Account discriminator did not match what was expected")
	ErrAccountDidNotDeserialize     = newError(3003, "AccountDidNotDeserialize", "Failed to deserialize the account")
	ErrAccountNotEnoughKeys         = newError(3005, "AccountNotEnoughKeys", "Not enough account keys given to the instruction")
	ErrAccountOwnedByWrongProgram   = newError(3007, "AccountOwnedByWrongProgram", "The given account is owned by a different program than expected")
	ErrInvalidProgramID             = newError(3008, "InvalidProgramId", "Program ID was not as expected")
	ErrAccountNotSigner             = newError(3010, "AccountNotSigner", "The given account did not sign")
	ErrAccountNotInitialized        = newError(3012, "AccountNotInitialized", "The program expected this account to be already initialized")
)

// Registry errors.
var (
	ErrUnauthorized                = newError(6000, "Unauthorized", "Unauthorized: only the agent authority can perform this action")
	ErrUnauthorizedAuthority       = newError(6001, "UnauthorizedAuthority", "Unauthorized: only the treasury authority can perform this action")
	ErrWalletNotLinked             = newError(6002, "WalletNotLinked", "Wallet is not linked to this agent")
	ErrInsufficientTreasuryBalance = newError(6003, "InsufficientTreasuryBalance", "Insufficient treasury balance")
	ErrURITooLong                  = newError(6004, "URITooLong", "URI exceeds the maximum length")
	ErrArithmeticOverflow          = newError(6005, "ArithmeticOverflow", "Arithmetic overflow")
)
