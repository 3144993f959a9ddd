/*
SPDX-License-Identifier: Apache-2.0
*/

package auction

import (
	"time"

	"github.com/hyperledger/fabric-samples/auction/escrow-auction/chaincode-go/core"
)

// auctionRecord is the persisted world-state form of the auction singleton:
// the core auction state plus the integration configuration fixed at
// Initialize.
type auctionRecord struct {
	Auction *core.Auction `json:"auction"`
	// Owner is the client that created the auction and receives the payout.
	Owner core.AccountAddress `json:"owner"`
	// EscrowAccount custodies the item and the tendered funds on the token
	// chaincodes until settlement.
	EscrowAccount     core.AccountAddress  `json:"escrowAccount"`
	CurrencyChaincode core.ContractAddress `json:"currencyChaincode"`
	OracleChaincode   core.ContractAddress `json:"oracleChaincode"`
}

// AuctionView is the auction state information presented to query clients.
type AuctionView struct {
	State              core.AuctionState                 `json:"auctionState"`
	HighestBidder      *core.AccountAddress              `json:"highestBidder"`
	HighestBid         uint64                            `json:"highestBid"` // reference-currency cents
	EscrowBalance      uint64                            `json:"escrowBalance"`
	MinimumRaise       uint64                            `json:"minimumRaise"`
	Start              time.Time                         `json:"start"`
	End                time.Time                         `json:"end"`
	ParticipationToken *core.ParticipationTokenReference `json:"participationToken"`
	Owner              core.AccountAddress               `json:"owner"`
}
