/*
SPDX-License-Identifier: Apache-2.0
*/

package core

import "errors"

// Eligibility and bid rejections.
var (
	// ErrOnlyAccount is raised when a contract tries to bid or deposit;
	// only individually-owned accounts are allowed.
	ErrOnlyAccount = errors.New("only accounts can take part in the auction")
	// ErrAuctionNotOpen is raised when bidding or finalizing an auction
	// that is not in the NotSoldYet state.
	ErrAuctionNotOpen = errors.New("auction is not open")
	ErrBidTooEarly    = errors.New("auction has not started yet")
	ErrBidTooLate     = errors.New("auction has already ended")
	// ErrNotAParticipant is raised when a private auction is bid on by an
	// account that has not presented the participation token.
	ErrNotAParticipant = errors.New("account is not an admitted participant")
	// ErrBidBelowCurrentBid is raised when the tendered amount does not
	// strictly exceed the current highest bid.
	ErrBidBelowCurrentBid = errors.New("bid is not above the current highest bid")
	// ErrBidBelowMinimumRaise is raised when the raise, converted to
	// reference-currency cents, is below the configured minimum.
	ErrBidBelowMinimumRaise = errors.New("raise is below the minimum raise")
	// ErrRefundTransfer is raised when the displaced bidder could not be
	// refunded. The refund is never silently dropped.
	ErrRefundTransfer = errors.New("could not refund the displaced bidder")
)

// Onboarding rejections.
var (
	ErrSenderNotContract         = errors.New("token notifications must come from a contract")
	ErrUnauthorized              = errors.New("only the auction owner can deposit the item")
	ErrAlreadyInitialized        = errors.New("auction is already initialized")
	ErrInvalidParticipationToken = errors.New("token does not match the configured participation token")
	ErrPublicAuction             = errors.New("auction is public and has no participation token")
)

// Finalize rejections.
var (
	ErrAuctionStillActive = errors.New("auction end time has not passed yet")
	ErrItemTransfer       = errors.New("could not transfer the escrowed item to the winner")
	// ErrPayoutTransfer is raised when the owner payout fails. The caller
	// aborts so the Sold transition is discarded along with the payout.
	ErrPayoutTransfer = errors.New("could not pay out the custodied balance to the owner")
)
