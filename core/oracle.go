/*
SPDX-License-Identifier: Apache-2.0
*/

package core

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// ExchangeOracle converts between the chain's native value unit and the
// reference currency ("euro cent") at the currently observed rate.
type ExchangeOracle interface {
	NativeToReferenceCents(native uint64) (uint64, error)
	ReferenceCentsToNative(cents uint64) (uint64, error)
}

var (
	ErrInvalidRate = errors.New("exchange rate must be positive")
	// ErrAmountOverflow is raised when a converted amount does not fit a
	// 64 bit value.
	ErrAmountOverflow = errors.New("converted amount overflows")
)

// Rate is an ExchangeOracle backed by a fixed observed exchange rate,
// expressed as native units per euro cent.
type Rate struct {
	nativePerCent decimal.Decimal
}

func NewRate(nativePerCent decimal.Decimal) (Rate, error) {
	if !nativePerCent.IsPositive() {
		return Rate{}, ErrInvalidRate
	}
	return Rate{nativePerCent: nativePerCent}, nil
}

// NativeToReferenceCents rounds down: a partial cent never counts toward a
// raise.
func (r Rate) NativeToReferenceCents(native uint64) (uint64, error) {
	cents := decimalFromUint64(native).Div(r.nativePerCent).Floor()
	return uint64FromDecimal(cents)
}

// ReferenceCentsToNative rounds up, so the returned native amount is never
// worth less than the requested cents.
func (r Rate) ReferenceCentsToNative(cents uint64) (uint64, error) {
	native := decimalFromUint64(cents).Mul(r.nativePerCent).Ceil()
	return uint64FromDecimal(native)
}

func decimalFromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

func uint64FromDecimal(d decimal.Decimal) (uint64, error) {
	i := d.BigInt()
	if i.Sign() < 0 || i.Cmp(maxUint64) > 0 {
		return 0, ErrAmountOverflow
	}
	return i.Uint64(), nil
}
