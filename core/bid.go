/*
SPDX-License-Identifier: Apache-2.0
*/

package core

import (
	"fmt"
	"time"
)

// PlaceBid applies a single bid. tendered is the full bid amount in native
// units, already collected into the auction's escrow by the host layer, so
// EscrowBalance before this call equals the prior highest bid.
//
// The leading-bidder pointer and the balance are updated before the
// displaced bidder's refund is issued, so a reentrant call triggered by the
// refund observes the new leader.
func (a *Auction) PlaceBid(bidder Address, tendered uint64, now time.Time, oracle ExchangeOracle, funds FundsClient) (*AuctionUpdatedEvent, error) {
	account, err := a.CanBid(bidder, now)
	if err != nil {
		return nil, err
	}

	previousHighest := a.EscrowBalance
	if tendered <= previousHighest {
		return nil, ErrBidBelowCurrentBid
	}

	raiseCents, err := oracle.NativeToReferenceCents(tendered - previousHighest)
	if err != nil {
		return nil, err
	}
	if raiseCents < a.MinimumRaise {
		return nil, ErrBidBelowMinimumRaise
	}

	displaced := a.HighestBidder
	a.HighestBidder = &account
	a.EscrowBalance = tendered

	if displaced != nil {
		// The displaced account was validated when it bid and the refunded
		// amount is custodied, so this transfer is expected to succeed. A
		// failure still fails the whole call rather than dropping the
		// refund.
		if err := funds.Transfer(*displaced, previousHighest); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRefundTransfer, err)
		}
	}

	return a.updatedEvent(oracle)
}
