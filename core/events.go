/*
SPDX-License-Identifier: Apache-2.0
*/

package core

import "time"

// AuctionUpdatedEvent describes the auction after a successful mutation.
// HighestBid is re-derived from the custodied balance via the oracle at
// emission time, never cached.
type AuctionUpdatedEvent struct {
	State              AuctionState                 `json:"auctionState"`
	HighestBidder      *AccountAddress              `json:"highestBidder"`
	MinimumRaise       uint64                       `json:"minimumRaise"`
	Start              time.Time                    `json:"start"`
	End                time.Time                    `json:"end"`
	ParticipationToken *ParticipationTokenReference `json:"participationToken"`
	HighestBid         uint64                       `json:"highestBid"`
}

// ParticipantAddedEvent announces an admission to a private auction.
type ParticipantAddedEvent struct {
	Account AccountAddress `json:"account"`
}

func (a *Auction) updatedEvent(oracle ExchangeOracle) (*AuctionUpdatedEvent, error) {
	highestBidCents, err := oracle.NativeToReferenceCents(a.EscrowBalance)
	if err != nil {
		return nil, err
	}
	return &AuctionUpdatedEvent{
		State:              a.State,
		HighestBidder:      a.HighestBidder,
		MinimumRaise:       a.MinimumRaise,
		Start:              a.Start,
		End:                a.End,
		ParticipationToken: a.ParticipationToken,
		HighestBid:         highestBidCents,
	}, nil
}
