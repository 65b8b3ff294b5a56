// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrRevert is a rejected operation. The whole operation is rolled back,
// no state mutation survives it.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Named revert conditions.
var (
	ErrInvalidAmount         = New("invalid amount")
	ErrInvalidLockPeriod     = New("invalid lock period")
	ErrStakeNotFound         = New("stake not found")
	ErrStakeAlreadyWithdrawn = New("stake already withdrawn")
	ErrPaused                = New("staking paused")
	ErrUnauthorized          = New("unauthorized")
	ErrInvalidConfiguration  = New("invalid configuration")
)

// InsufficientBalanceError carries the required and available amounts so
// callers do not need to re-derive balances.
type InsufficientBalanceError struct {
	*ErrRevert
	Required  *big.Int
	Available *big.Int
}

func NewInsufficientBalance(required, available *big.Int) *InsufficientBalanceError {
	return &InsufficientBalanceError{
		ErrRevert: New(fmt.Sprintf("insufficient balance: required %s, available %s", required, available)),
		Required:  required,
		Available: available,
	}
}

func (e *InsufficientBalanceError) Unwrap() error {
	return e.ErrRevert
}

// NotMaturedError carries the maturity time of the stake.
type NotMaturedError struct {
	*ErrRevert
	MaturesAt uint64
}

func NewNotMatured(maturesAt uint64) *NotMaturedError {
	return &NotMaturedError{
		ErrRevert: New(fmt.Sprintf("stake not matured, matures at %d", maturesAt)),
		MaturesAt: maturesAt,
	}
}

func (e *NotMaturedError) Unwrap() error {
	return e.ErrRevert
}
