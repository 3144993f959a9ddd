/*
SPDX-License-Identifier: Apache-2.0
*/

package core

// TokenClient transfers an escrowed token from the auction's custody to a
// receiver. The wire encoding of the transfer is the token contract's
// business.
type TokenClient interface {
	Transfer(item ItemReference, from Address, to AccountAddress) error
}

// FundsClient moves custodied native funds out of the auction's escrow,
// for bidder refunds and the owner payout.
type FundsClient interface {
	Transfer(to AccountAddress, amount uint64) error
}
