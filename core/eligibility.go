/*
SPDX-License-Identifier: Apache-2.0
*/

package core

import "time"

// CanBid validates that caller may place a bid at time now and returns the
// account that would become the leading bidder. It mutates nothing.
func (a *Auction) CanBid(caller Address, now time.Time) (AccountAddress, error) {
	account, ok := caller.Account()
	if !ok {
		return "", ErrOnlyAccount
	}

	if !a.State.IsOpen() {
		return "", ErrAuctionNotOpen
	}

	if now.Before(a.Start) {
		return "", ErrBidTooEarly
	}
	if now.After(a.End) {
		return "", ErrBidTooLate
	}

	if a.IsPrivate() && !a.IsParticipant(account) {
		return "", ErrNotAParticipant
	}

	return account, nil
}

// NextMinimumBid returns the smallest native amount that would currently be
// accepted as the caller's next bid, without mutating any state.
func (a *Auction) NextMinimumBid(caller Address, now time.Time, oracle ExchangeOracle) (uint64, error) {
	if _, err := a.CanBid(caller, now); err != nil {
		return 0, err
	}

	highestBidCents, err := oracle.NativeToReferenceCents(a.EscrowBalance)
	if err != nil {
		return 0, err
	}
	return oracle.ReferenceCentsToNative(highestBidCents + a.MinimumRaise)
}
