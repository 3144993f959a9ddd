/*
SPDX-License-Identifier: Apache-2.0
*/

package core

import (
	"fmt"
	"time"
)

// Finalize settles the auction once the time window has closed: the
// escrowed item goes to the leading bidder and the entire custodied balance
// to the owner. With no leading bidder it succeeds without transfers or
// state change and the item stays unsold; no event is produced. A second
// productive call is impossible because the Sold state is no longer open.
func (a *Auction) Finalize(now time.Time, owner AccountAddress, custodian Address, tokens TokenClient, funds FundsClient, oracle ExchangeOracle) (*AuctionUpdatedEvent, error) {
	if !a.State.IsOpen() {
		return nil, ErrAuctionNotOpen
	}
	if !now.After(a.End) {
		return nil, ErrAuctionStillActive
	}

	if a.HighestBidder == nil {
		return nil, nil
	}
	winner := *a.HighestBidder
	item := *a.State.Item

	// Nothing has been mutated yet, so a failed item transfer leaves the
	// auction in NotSoldYet and finalize can be retried.
	if err := tokens.Transfer(item, custodian, winner); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrItemTransfer, err)
	}

	a.State = Sold(item, winner)

	payout := a.EscrowBalance
	a.EscrowBalance = 0
	// The owner account is known valid and the funds are on hand, so the
	// payout is expected to succeed. A failure is escalated so the host
	// discards the Sold transition together with the payout.
	if err := funds.Transfer(owner, payout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutTransfer, err)
	}

	return a.updatedEvent(oracle)
}
