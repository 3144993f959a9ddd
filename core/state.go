/*
SPDX-License-Identifier: Apache-2.0
*/

// Package core implements the auction state machine and its protocols:
// item and participant onboarding, bid acceptance with refund of the
// displaced bidder, and terminal settlement. The package is free of host
// I/O; currency conversion and token transfers are injected collaborators
// and notifications are returned as values for the host layer to dispatch.
package core

import "time"

// AccountAddress identifies an individually-owned account.
type AccountAddress string

// ContractAddress identifies a deployed contract.
type ContractAddress string

// Address is a caller identity: either an account or a contract.
// Use AccountAddr or ContractAddr to construct one.
type Address struct {
	account    AccountAddress
	contract   ContractAddress
	isContract bool
}

func AccountAddr(account AccountAddress) Address {
	return Address{account: account}
}

func ContractAddr(contract ContractAddress) Address {
	return Address{contract: contract, isContract: true}
}

// Account returns the account identity, if the address is an account.
func (a Address) Account() (AccountAddress, bool) {
	if a.isContract {
		return "", false
	}
	return a.account, true
}

// Contract returns the contract identity, if the address is a contract.
func (a Address) Contract() (ContractAddress, bool) {
	if !a.isContract {
		return "", false
	}
	return a.contract, true
}

// enum possible status: not initialized, not sold yet, sold
type AuctionStatus int

const (
	StatusNotInitialized AuctionStatus = iota // No item has been deposited yet
	StatusNotSoldYet                          // Item is in escrow; the auction may or may not still accept bids
	StatusSold                                // Auction is finalized and the item and funds are released
)

// ItemReference identifies the escrowed item being auctioned.
// It is immutable once set by onboarding.
type ItemReference struct {
	Contract ContractAddress `json:"contract"`
	TokenID  string          `json:"tokenId"`
	Amount   uint64          `json:"amount"`
}

// ParticipationTokenReference identifies the token gating a private auction.
// Possession is binary, so no amount is carried.
type ParticipationTokenReference struct {
	Contract ContractAddress `json:"contract"`
	TokenID  string          `json:"tokenId"`
}

// Matches reports whether both references name the same token.
func (p ParticipationTokenReference) Matches(other ParticipationTokenReference) bool {
	return p.Contract == other.Contract && p.TokenID == other.TokenID
}

// AuctionState is the authoritative auction status. Item is set from
// NotSoldYet on and Winner only in Sold; use the constructors so the two
// can never disagree with the status. Transitions are strictly forward,
// no state is revisited.
type AuctionState struct {
	Status AuctionStatus   `json:"status"`
	Item   *ItemReference  `json:"item,omitempty"`
	Winner *AccountAddress `json:"winner,omitempty"`
}

func NotInitialized() AuctionState {
	return AuctionState{Status: StatusNotInitialized}
}

func NotSoldYet(item ItemReference) AuctionState {
	return AuctionState{Status: StatusNotSoldYet, Item: &item}
}

func Sold(item ItemReference, winner AccountAddress) AuctionState {
	return AuctionState{Status: StatusSold, Item: &item, Winner: &winner}
}

// IsOpen reports whether the auction can still accept bids and be finalized.
func (s AuctionState) IsOpen() bool {
	return s.Status == StatusNotSoldYet
}

// AuctionConfig carries the immutable parameters fixed at construction.
// Bids are accepted for Start <= t <= End. MinimumRaise is expressed in
// reference-currency cents. A nil ParticipationToken means the auction is
// public.
type AuctionConfig struct {
	Start              time.Time
	End                time.Time
	MinimumRaise       uint64
	ParticipationToken *ParticipationTokenReference
}

// Auction holds the full authoritative auction state.
//
// EscrowBalance is the custodied native balance and doubles as the current
// highest bid; the bid magnitude is never stored separately, so the escrow
// and the bid ledger cannot drift apart. Only the bid and finalize
// protocols mutate it.
type Auction struct {
	State              AuctionState                 `json:"auctionState"`
	HighestBidder      *AccountAddress              `json:"highestBidder,omitempty"`
	EscrowBalance      uint64                       `json:"escrowBalance"`
	MinimumRaise       uint64                       `json:"minimumRaise"`
	Start              time.Time                    `json:"start"`
	End                time.Time                    `json:"end"`
	ParticipationToken *ParticipationTokenReference `json:"participationToken,omitempty"`
	Participants       map[AccountAddress]bool      `json:"participants,omitempty"`
}

// NewAuction creates an auction in the NotInitialized state.
func NewAuction(config AuctionConfig) *Auction {
	return &Auction{
		State:              NotInitialized(),
		MinimumRaise:       config.MinimumRaise,
		Start:              config.Start,
		End:                config.End,
		ParticipationToken: config.ParticipationToken,
		Participants:       map[AccountAddress]bool{},
	}
}

// IsPublic reports whether the auction requires no participation token.
func (a *Auction) IsPublic() bool {
	return a.ParticipationToken == nil
}

func (a *Auction) IsPrivate() bool {
	return !a.IsPublic()
}

// IsParticipant reports whether the account has been admitted to bid.
func (a *Auction) IsParticipant(account AccountAddress) bool {
	return a.Participants[account]
}
